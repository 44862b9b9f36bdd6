package validators

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/pkg/errors"
)

// MindMapValidator checks payloads submitted for storage. Loading is lenient
// and drops broken entries; storing is strict and rejects them.
type MindMapValidator struct {
	maxNodes       int
	maxConnections int
	maxLabelLength int
	maxLevel       int
}

// NewMindMapValidator creates a validator with the default limits
func NewMindMapValidator() *MindMapValidator {
	return &MindMapValidator{
		maxNodes:       500,
		maxConnections: 2000,
		maxLabelLength: 200,
		maxLevel:       32,
	}
}

// Validate returns a *errors.ValidationErrors listing every problem, or nil
func (v *MindMapValidator) Validate(data content.MindMapData) error {
	validationErrors := errors.NewValidationErrors()

	if len(data.Nodes) > v.maxNodes {
		validationErrors.Add("nodes", fmt.Sprintf("a mind map holds at most %d nodes", v.maxNodes))
	}
	if len(data.Connections) > v.maxConnections {
		validationErrors.Add("connections", fmt.Sprintf("a mind map holds at most %d connections", v.maxConnections))
	}

	ids := make(map[string]bool, len(data.Nodes))
	for i, n := range data.Nodes {
		field := fmt.Sprintf("nodes[%d]", i)

		id := strings.TrimSpace(n.ID)
		switch {
		case id == "":
			validationErrors.Add(field+".id", "node id is required")
		case ids[id]:
			validationErrors.Add(field+".id", fmt.Sprintf("node id %q is used more than once", id))
		default:
			ids[id] = true
		}

		if strings.TrimSpace(n.Label) == "" {
			validationErrors.Add(field+".label", "label cannot be empty")
		} else if utf8.RuneCountInString(n.Label) > v.maxLabelLength {
			validationErrors.Add(field+".label", fmt.Sprintf("label must be at most %d characters", v.maxLabelLength))
		}

		if !finite(n.X) || !finite(n.Y) {
			validationErrors.Add(field+".position", "coordinates must be finite numbers")
		}
		if n.Level < 0 || n.Level > v.maxLevel {
			validationErrors.Add(field+".level", fmt.Sprintf("level must be between 0 and %d", v.maxLevel))
		}
	}

	pairs := make(map[string]bool, len(data.Connections))
	for i, c := range data.Connections {
		field := fmt.Sprintf("connections[%d]", i)
		if !ids[c.From] || !ids[c.To] {
			validationErrors.Add(field, "connection references an unknown node")
			continue
		}
		if c.From == c.To {
			validationErrors.Add(field, "a node cannot connect to itself")
			continue
		}
		key := c.From + "->" + c.To
		if pairs[key] {
			validationErrors.Add(field, "connection is listed more than once")
			continue
		}
		pairs[key] = true
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
