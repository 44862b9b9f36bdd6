package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/aggregates"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
)

func TestRenderer_Render(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	renderer := NewRenderer(cfg)
	policy := valueobjects.DefaultZoomPolicy()

	g := aggregates.NewGraph()
	root := g.AddNode(valueobjects.NewPosition(0, 0), 0)
	child := g.AddNode(valueobjects.NewPosition(300, 0), 7)
	g.AddConnection(root.ID(), child.ID())

	tests := []struct {
		name     string
		viewport valueobjects.Viewport
		wantW    float64
		rootAt   valueobjects.Position
		childAt  valueobjects.Position
	}{
		{
			name:     "identity",
			viewport: valueobjects.IdentityViewport(policy),
			wantW:    120,
			rootAt:   valueobjects.NewPosition(0, 0),
			childAt:  valueobjects.NewPosition(300, 0),
		},
		{
			name:     "pan translates only",
			viewport: valueobjects.NewViewport(valueobjects.NewPosition(10, 20), 1, policy),
			wantW:    120,
			rootAt:   valueobjects.NewPosition(10, 20),
			childAt:  valueobjects.NewPosition(310, 20),
		},
		{
			name:     "zoom scales boxes",
			viewport: valueobjects.NewViewport(valueobjects.Origin(), 2, policy),
			wantW:    240,
			rootAt:   valueobjects.NewPosition(0, 0),
			childAt:  valueobjects.NewPosition(600, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := renderer.Render(g, tt.viewport)

			require.Len(t, scene.Nodes, 2)
			require.Len(t, scene.Edges, 1)

			assert.True(t, scene.Nodes[0].Center.Equals(tt.rootAt))
			assert.True(t, scene.Nodes[1].Center.Equals(tt.childAt))
			assert.InDelta(t, tt.wantW, scene.Nodes[0].Width, tolerance)
			assert.InDelta(t, tt.wantW/2, scene.Nodes[0].Height, tolerance)

			edge := scene.Edges[0]
			assert.True(t, edge.From.Equals(tt.rootAt))
			assert.True(t, edge.To.Equals(tt.childAt))
			// The arrow tip sits on the left side of the target box.
			assert.InDelta(t, tt.childAt.X()-tt.wantW/2, edge.Arrow.Tip.X(), 1e-6)
			assert.InDelta(t, tt.childAt.Y(), edge.Arrow.Tip.Y(), 1e-6)
		})
	}
}

func TestRenderer_FillAndSelection(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	renderer := NewRenderer(cfg)

	g := aggregates.NewGraph()
	a := g.AddNode(valueobjects.NewPosition(0, 0), 0)
	b := g.AddNode(valueobjects.NewPosition(0, 0), len(cfg.Palette)+1)

	scene := renderer.Render(g, valueobjects.IdentityViewport(valueobjects.DefaultZoomPolicy()))

	assert.Equal(t, cfg.Palette[0], scene.Nodes[0].Fill)
	assert.Equal(t, cfg.Palette[1], scene.Nodes[1].Fill)
	assert.False(t, scene.Nodes[0].Selected)
	assert.True(t, scene.Nodes[1].Selected, "last added node is selected")
	assert.Equal(t, a.ID().String(), scene.Nodes[0].ID)
	assert.Equal(t, b.ID().String(), scene.Nodes[1].ID)
	assert.Empty(t, scene.Edges)
}

func TestArrowHead_OverlappingNodes(t *testing.T) {
	p := valueobjects.NewPosition(5, 5)
	head := arrowHead(p, p, 60, 30, 1)
	assert.True(t, head.Tip.Equals(p))
}
