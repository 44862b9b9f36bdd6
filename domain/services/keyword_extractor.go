package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/aggregates"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/entities"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
)

// KeywordExtractor turns free text into a small topic graph. It is the local
// fallback whenever external generation is unavailable.
type KeywordExtractor struct {
	minLength   int
	maxKeywords int
	rootLabel   valueobjects.Label
	placeholder valueobjects.Label
	layout      RadialLayout
}

// NewKeywordExtractor builds an extractor from the domain config
func NewKeywordExtractor(cfg *config.DomainConfig) *KeywordExtractor {
	return &KeywordExtractor{
		minLength:   cfg.MinKeywordLength,
		maxKeywords: cfg.MaxKeywords,
		rootLabel:   valueobjects.MustLabel(cfg.RootNodeLabel),
		placeholder: valueobjects.MustLabel(cfg.DefaultNodeLabel),
		layout:      NewRadialLayout(cfg),
	}
}

// Extract splits text on runs of non-word characters and returns the first
// distinct tokens longer than three characters, in first-seen order. Case is
// preserved and matching is case-sensitive.
func (e *KeywordExtractor) Extract(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})

	keywords := make([]string, 0, e.maxKeywords)
	seen := make(map[string]bool)
	for _, token := range tokens {
		if len(keywords) == e.maxKeywords {
			break
		}
		if utf8.RuneCountInString(token) < e.minLength || seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
	}
	return keywords
}

// BuildGraph returns a root node plus one child per keyword, each joined to the
// root by a directed connection, laid out radially.
func (e *KeywordExtractor) BuildGraph(text string) *aggregates.Graph {
	keywords := e.Extract(text)
	positions := e.layout.Positions(len(keywords) + 1)

	g := aggregates.NewGraph(aggregates.WithPlaceholderLabel(e.placeholder))
	root, _ := entities.NewNode(e.rootLabel, positions[0], 0)
	g.InsertNode(root)

	for i, kw := range keywords {
		label, err := valueobjects.NewLabel(kw)
		if err != nil {
			continue
		}
		child, _ := entities.NewNode(label, positions[i+1], 1)
		g.InsertNode(child)
		g.AddConnection(root.ID(), child.ID())
	}
	g.PullEvents()
	return g
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
