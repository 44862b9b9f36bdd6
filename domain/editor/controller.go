package editor

import (
	"math"

	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/aggregates"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	"github.com/zaheyak/Content-Studio-sub000/domain/services"
)

// Controller is the pointer/wheel state machine of one open editor. It is the
// only writer of its graph and viewport. It is not safe for concurrent use;
// callers serialize events per editor.
type Controller struct {
	graph    *aggregates.Graph
	viewport valueobjects.Viewport

	state  State
	target valueobjects.NodeID
	draft  string

	// pointer bookkeeping between press and release
	pressAt valueobjects.Position
	last    valueobjects.Position
	moved   bool

	generating bool

	hitHalfWidth  float64
	hitHalfHeight float64
}

// NewController creates a controller over graph. A nil graph starts empty.
// The viewport always starts at identity.
func NewController(cfg *config.DomainConfig, graph *aggregates.Graph) *Controller {
	if graph == nil {
		graph = aggregates.NewGraph(aggregates.WithPlaceholderLabel(valueobjects.MustLabel(cfg.DefaultNodeLabel)))
	}
	return &Controller{
		graph: graph,
		viewport: valueobjects.IdentityViewport(valueobjects.ZoomPolicy{
			Min:       cfg.MinZoom,
			Max:       cfg.MaxZoom,
			InFactor:  cfg.ZoomInFactor,
			OutFactor: cfg.ZoomOutFactor,
		}),
		state:         StateIdle,
		hitHalfWidth:  cfg.HitHalfWidth,
		hitHalfHeight: cfg.HitHalfHeight,
	}
}

// Graph returns the graph the controller edits
func (c *Controller) Graph() *aggregates.Graph {
	return c.graph
}

// Viewport returns the current viewport
func (c *Controller) Viewport() valueobjects.Viewport {
	return c.viewport
}

// State returns the interaction state
func (c *Controller) State() State {
	return c.state
}

// Target returns the node being dragged or edited
func (c *Controller) Target() (valueobjects.NodeID, bool) {
	return c.target, !c.target.IsZero()
}

// Draft returns the label text being edited
func (c *Controller) Draft() string {
	return c.draft
}

// Snapshot reports the controller state
func (c *Controller) Snapshot() Snapshot {
	selected, _ := c.graph.Selected()
	return Snapshot{
		State:      c.state,
		TargetID:   c.target.String(),
		Draft:      c.draft,
		SelectedID: selected.String(),
		Generating: c.generating,
		Version:    c.graph.Version(),
	}
}

// HitTest returns the first node, in insertion order, whose screen position lies
// within the hit box around p.
func (c *Controller) HitTest(p valueobjects.Position) (valueobjects.NodeID, bool) {
	for _, n := range c.graph.Nodes() {
		s := c.viewport.WorldToScreen(n.Position())
		if math.Abs(s.X()-p.X()) <= c.hitHalfWidth && math.Abs(s.Y()-p.Y()) <= c.hitHalfHeight {
			return n.ID(), true
		}
	}
	return valueobjects.NodeID{}, false
}

// Dispatch routes an input to its handler
func (c *Controller) Dispatch(in Input) {
	switch in.Kind {
	case InputPress:
		c.Press(in.Point)
	case InputMove:
		c.Move(in.Point)
	case InputRelease:
		c.Release(in.Point)
	case InputWheel:
		c.Wheel(in.DeltaY)
	case InputType:
		c.UpdateDraft(in.Text)
	case InputCommit:
		c.Commit(in.Text)
	case InputCancel:
		c.Cancel()
	case InputDelete:
		c.DeleteSelected()
	case InputConnect:
		c.Connect(in.From, in.To)
	case InputDisconnect:
		c.Disconnect(in.From, in.To)
	case InputResetView:
		c.ResetView()
	}
}

// Press starts a pan on empty canvas or a drag on a hit node. Ignored unless idle.
func (c *Controller) Press(p valueobjects.Position) {
	if c.state != StateIdle {
		return
	}
	c.pressAt, c.last, c.moved = p, p, false

	if id, ok := c.HitTest(p); ok {
		c.graph.Select(id)
		c.state, c.target = StateDraggingNode, id
		return
	}
	c.state = StatePanning
}

// Move pans the view or drags the target node
func (c *Controller) Move(p valueobjects.Position) {
	switch c.state {
	case StatePanning:
		delta := p.Sub(c.last)
		if delta.Equals(valueobjects.Origin()) {
			return
		}
		c.viewport = c.viewport.ApplyPan(delta)
		c.last, c.moved = p, true
	case StateDraggingNode:
		if p.Equals(c.last) {
			return
		}
		c.graph.MoveNode(c.target, c.viewport.ScreenToWorld(p))
		c.last, c.moved = p, true
	}
}

// Release ends a pan or drag. A release without movement is a click: on a node
// it opens label edit, on empty canvas it creates a node there and opens label
// edit on it.
func (c *Controller) Release(p valueobjects.Position) {
	switch c.state {
	case StatePanning:
		if c.moved {
			c.toIdle()
			return
		}
		c.createAndEdit(c.pressAt)
	case StateDraggingNode:
		if c.moved {
			c.toIdle()
			return
		}
		c.editNode(c.target)
	}
}

// Wheel zooms by one tick in any state without changing it
func (c *Controller) Wheel(deltaY float64) {
	c.viewport = c.viewport.ApplyZoom(valueobjects.ZoomDirectionFromWheel(deltaY))
}

// UpdateDraft replaces the text being typed while editing a label
func (c *Controller) UpdateDraft(text string) {
	if c.state == StateEditingLabel {
		c.draft = text
	}
}

// Commit applies text to the edited node and returns to idle. An empty label
// is rejected by the graph and the old one stays.
func (c *Controller) Commit(text string) {
	if c.state != StateEditingLabel {
		return
	}
	c.graph.UpdateNodeLabel(c.target, text)
	c.toIdle()
}

// Cancel discards the draft and returns to idle
func (c *Controller) Cancel() {
	if c.state != StateEditingLabel {
		return
	}
	c.toIdle()
}

// DeleteSelected removes the selected node and its connections. Idle only.
func (c *Controller) DeleteSelected() {
	if c.state != StateIdle {
		return
	}
	if id, ok := c.graph.Selected(); ok {
		c.graph.DeleteNode(id)
	}
}

// Connect adds a directed connection. Not available while editing a label.
func (c *Controller) Connect(from, to valueobjects.NodeID) {
	if c.state == StateEditingLabel {
		return
	}
	c.graph.AddConnection(from, to)
}

// Disconnect removes a directed connection. Not available while editing a label.
func (c *Controller) Disconnect(from, to valueobjects.NodeID) {
	if c.state == StateEditingLabel {
		return
	}
	c.graph.RemoveConnection(from, to)
}

// ResetView returns the viewport to identity
func (c *Controller) ResetView() {
	c.viewport = c.viewport.Reset()
}

// Generating reports whether a generation request is outstanding
func (c *Controller) Generating() bool {
	return c.generating
}

// BeginGeneration enters the generating sub-state. It returns false when a
// request is already outstanding. Manual editing stays available.
func (c *Controller) BeginGeneration() bool {
	if c.generating {
		return false
	}
	c.generating = true
	return true
}

// CompleteGeneration replaces the whole graph with the result, discarding any
// edits made while the request was pending, and leaves the sub-state. A drag
// or edit whose node vanished falls back to idle.
func (c *Controller) CompleteGeneration(result *aggregates.Graph) {
	c.generating = false
	if result == nil {
		return
	}
	c.graph.Replace(result)
	if c.state != StatePanning && !c.target.IsZero() && !c.graph.HasNode(c.target) {
		c.toIdle()
	}
}

// Load replaces the graph with a stored one and resets the viewport, since a
// viewport is never part of stored content.
func (c *Controller) Load(stored *aggregates.Graph) {
	c.graph.Replace(stored)
	c.viewport = c.viewport.Reset()
	c.toIdle()
}

func (c *Controller) createAndEdit(click valueobjects.Position) {
	level := 0
	if !c.graph.IsEmpty() {
		level = 1
	}
	node := c.graph.AddNode(services.ManualPlacement(c.viewport, click), level)
	if node.ID().IsZero() {
		c.toIdle()
		return
	}
	c.state, c.target, c.draft = StateEditingLabel, node.ID(), node.Label().String()
}

func (c *Controller) editNode(id valueobjects.NodeID) {
	node, ok := c.graph.Node(id)
	if !ok {
		c.toIdle()
		return
	}
	c.graph.Select(id)
	c.state, c.target, c.draft = StateEditingLabel, id, node.Label().String()
}

func (c *Controller) toIdle() {
	c.state = StateIdle
	c.target = valueobjects.NodeID{}
	c.draft = ""
	c.moved = false
}
