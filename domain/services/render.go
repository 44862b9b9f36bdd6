package services

import (
	"math"

	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/aggregates"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/entities"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
)

const (
	arrowLength    = 10.0
	arrowHalfWidth = 5.0
)

// ArrowHead is the triangle drawn at the target end of an edge
type ArrowHead struct {
	Tip   valueobjects.Position `json:"tip"`
	Left  valueobjects.Position `json:"left"`
	Right valueobjects.Position `json:"right"`
}

// EdgePrimitive is a directed line in screen space
type EdgePrimitive struct {
	FromID string                `json:"fromId"`
	ToID   string                `json:"toId"`
	From   valueobjects.Position `json:"from"`
	To     valueobjects.Position `json:"to"`
	Arrow  ArrowHead             `json:"arrow"`
}

// NodePrimitive is a filled label box centered on the node in screen space
type NodePrimitive struct {
	ID       string                `json:"id"`
	Label    string                `json:"label"`
	Center   valueobjects.Position `json:"center"`
	Width    float64               `json:"width"`
	Height   float64               `json:"height"`
	Fill     string                `json:"fill"`
	Level    int                   `json:"level"`
	Selected bool                  `json:"selected"`
}

// Scene is the ordered primitive list for one frame. Edges are drawn first so
// node boxes cover their ends.
type Scene struct {
	Edges []EdgePrimitive       `json:"edges"`
	Nodes []NodePrimitive       `json:"nodes"`
	Zoom  float64               `json:"zoom"`
	Pan   valueobjects.Position `json:"pan"`
}

// Renderer maps a graph seen through a viewport onto drawable primitives.
type Renderer struct {
	palette    valueobjects.Palette
	nodeWidth  float64
	nodeHeight float64
}

// NewRenderer builds a renderer from the domain config
func NewRenderer(cfg *config.DomainConfig) *Renderer {
	return &Renderer{
		palette:    valueobjects.NewPalette(cfg.Palette),
		nodeWidth:  cfg.NodeWidth,
		nodeHeight: cfg.NodeHeight,
	}
}

// Palette returns the level palette in use
func (r *Renderer) Palette() valueobjects.Palette {
	return r.palette
}

// Render is pure: it reads g and viewport and returns a new Scene. Box size
// scales with zoom; pan only translates.
func (r *Renderer) Render(g *aggregates.Graph, viewport valueobjects.Viewport) Scene {
	zoom := viewport.Zoom()
	w, h := r.nodeWidth*zoom, r.nodeHeight*zoom

	nodes := g.Nodes()
	screen := make(map[valueobjects.NodeID]valueobjects.Position, len(nodes))
	for _, n := range nodes {
		screen[n.ID()] = viewport.WorldToScreen(n.Position())
	}

	scene := Scene{
		Edges: make([]EdgePrimitive, 0, g.ConnectionCount()),
		Nodes: make([]NodePrimitive, 0, len(nodes)),
		Zoom:  zoom,
		Pan:   viewport.Pan(),
	}

	for _, c := range g.Connections() {
		from, to := screen[c.From], screen[c.To]
		scene.Edges = append(scene.Edges, EdgePrimitive{
			FromID: c.From.String(),
			ToID:   c.To.String(),
			From:   from,
			To:     to,
			Arrow:  arrowHead(from, to, w/2, h/2, zoom),
		})
	}

	selected, _ := g.Selected()
	for _, n := range nodes {
		scene.Nodes = append(scene.Nodes, r.nodePrimitive(n, screen[n.ID()], w, h, n.ID().Equals(selected)))
	}
	return scene
}

func (r *Renderer) nodePrimitive(n entities.Node, center valueobjects.Position, w, h float64, selected bool) NodePrimitive {
	return NodePrimitive{
		ID:       n.ID().String(),
		Label:    n.Label().String(),
		Center:   center,
		Width:    w,
		Height:   h,
		Fill:     n.Color(r.palette),
		Level:    n.Level(),
		Selected: selected,
	}
}

// arrowHead places the tip where the edge enters the target box, so the arrow
// stays visible instead of hiding under the node.
func arrowHead(from, to valueobjects.Position, halfW, halfH, zoom float64) ArrowHead {
	dx, dy := from.X()-to.X(), from.Y()-to.Y()
	length := math.Hypot(dx, dy)
	if length == 0 {
		return ArrowHead{Tip: to, Left: to, Right: to}
	}

	t := math.Inf(1)
	if dx != 0 {
		t = math.Min(t, halfW/math.Abs(dx))
	}
	if dy != 0 {
		t = math.Min(t, halfH/math.Abs(dy))
	}
	if t > 1 {
		t = 1
	}
	tip := valueobjects.NewPosition(to.X()+dx*t, to.Y()+dy*t)

	ux, uy := dx/length, dy/length
	base := valueobjects.NewPosition(tip.X()+ux*arrowLength*zoom, tip.Y()+uy*arrowLength*zoom)
	px, py := -uy*arrowHalfWidth*zoom, ux*arrowHalfWidth*zoom

	return ArrowHead{
		Tip:   tip,
		Left:  valueobjects.NewPosition(base.X()+px, base.Y()+py),
		Right: valueobjects.NewPosition(base.X()-px, base.Y()-py),
	}
}
