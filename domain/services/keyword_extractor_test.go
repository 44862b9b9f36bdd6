package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaheyak/Content-Studio-sub000/domain/config"
)

func TestKeywordExtractor_Extract(t *testing.T) {
	extractor := NewKeywordExtractor(config.DefaultDomainConfig())

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "short words are dropped",
			text: "Learn JavaScript variables and functions today",
			want: []string{"Learn", "JavaScript", "variables", "functions", "today"},
		},
		{
			name: "punctuation splits tokens",
			text: "cell-division, (mitosis); meiosis!",
			want: []string{"cell", "division", "mitosis", "meiosis"},
		},
		{
			name: "duplicates keep first occurrence",
			text: "atoms bond atoms share electrons bond",
			want: []string{"atoms", "bond", "share", "electrons"},
		},
		{
			name: "matching is case sensitive",
			text: "Energy energy ENERGY",
			want: []string{"Energy", "energy", "ENERGY"},
		},
		{
			name: "at most eight keywords",
			text: "alpha bravo charlie delta echoes foxtrot golf hotel india juliet",
			want: []string{"alpha", "bravo", "charlie", "delta", "echoes", "foxtrot", "golf", "hotel"},
		},
		{
			name: "underscores and digits are word characters",
			text: "user_id 2024 abc",
			want: []string{"user_id", "2024"},
		},
		{
			name: "accented words stay whole and length counts runes",
			text: "Photosynthèse: Über élan née",
			want: []string{"Photosynthèse", "Über", "élan"},
		},
		{name: "empty text", text: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.Extract(tt.text))
		})
	}
}

func TestKeywordExtractor_BuildGraph(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	extractor := NewKeywordExtractor(cfg)

	g := extractor.BuildGraph("Photosynthesis converts light energy into chemical energy")

	nodes := g.Nodes()
	require.Len(t, nodes, 7)
	assert.Equal(t, "Main Topic", nodes[0].Label().String())
	assert.Equal(t, 0, nodes[0].Level())
	assert.InDelta(t, cfg.LayoutCenterX, nodes[0].Position().X(), tolerance)

	labels := make([]string, 0, len(nodes)-1)
	for _, n := range nodes[1:] {
		labels = append(labels, n.Label().String())
		assert.Equal(t, 1, n.Level())
		assert.True(t, g.HasConnection(nodes[0].ID(), n.ID()))
		assert.InDelta(t, cfg.LayoutRadius, n.Position().DistanceTo(nodes[0].Position()), 1e-6)
	}
	assert.Equal(t, []string{"Photosynthesis", "converts", "light", "energy", "into", "chemical"}, labels)
	assert.Equal(t, 6, g.ConnectionCount())
	assert.Empty(t, g.PullEvents())

	t.Run("no keywords gives a lone root", func(t *testing.T) {
		lone := extractor.BuildGraph("a an the")
		assert.Equal(t, 1, lone.NodeCount())
		assert.Equal(t, 0, lone.ConnectionCount())
	})
}

func TestKeywordExtractor_Properties(t *testing.T) {
	extractor := NewKeywordExtractor(config.DefaultDomainConfig())
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	words := gen.SliceOf(gen.OneGenOf(gen.AlphaString(), gen.Const("and"), gen.Const("variables")))

	properties.Property("deterministic, bounded and long tokens only", prop.ForAll(
		func(parts []string) bool {
			text := strings.Join(parts, " ")
			first, second := extractor.Extract(text), extractor.Extract(text)
			if !assert.ObjectsAreEqual(first, second) || len(first) > 8 {
				return false
			}
			seen := map[string]bool{}
			for _, tok := range first {
				if utf8.RuneCountInString(tok) <= 3 || seen[tok] {
					return false
				}
				seen[tok] = true
			}
			return true
		},
		words,
	))

	properties.TestingRun(t)
}
