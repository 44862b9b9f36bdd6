package services

import (
	"math"

	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/aggregates"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
)

// LayoutStrategy names how the nodes of a graph got their positions
type LayoutStrategy string

const (
	LayoutManual LayoutStrategy = "manual"
	LayoutRadial LayoutStrategy = "radial"
)

// ManualPlacement places a new node exactly under the click. Existing nodes
// are never moved by it.
func ManualPlacement(viewport valueobjects.Viewport, click valueobjects.Position) valueobjects.Position {
	return viewport.ScreenToWorld(click)
}

// RadialLayout puts the first node at Center and spreads the rest evenly on a
// circle of Radius around it. The result depends only on the node count.
type RadialLayout struct {
	Center valueobjects.Position
	Radius float64
}

// NewRadialLayout reads center and radius from the domain config
func NewRadialLayout(cfg *config.DomainConfig) RadialLayout {
	return RadialLayout{
		Center: valueobjects.NewPosition(cfg.LayoutCenterX, cfg.LayoutCenterY),
		Radius: cfg.LayoutRadius,
	}
}

// Positions returns n world positions. Index 0 is the root; index i+1 sits at
// angle i*2π/(n-1).
func (l RadialLayout) Positions(n int) []valueobjects.Position {
	if n <= 0 {
		return nil
	}
	out := make([]valueobjects.Position, n)
	out[0] = l.Center
	if n == 1 {
		return out
	}

	step := 2 * math.Pi / float64(n-1)
	for i := 0; i < n-1; i++ {
		theta := float64(i) * step
		out[i+1] = valueobjects.NewPosition(
			l.Center.X()+l.Radius*math.Cos(theta),
			l.Center.Y()+l.Radius*math.Sin(theta),
		)
	}
	return out
}

// Apply moves every node of g, in insertion order, to its radial slot
func (l RadialLayout) Apply(g *aggregates.Graph) {
	nodes := g.Nodes()
	for i, p := range l.Positions(len(nodes)) {
		g.MoveNode(nodes[i].ID(), p)
	}
}
