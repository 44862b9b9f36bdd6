package entities

import (
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
)

// Node is a labeled, positioned vertex of a mind map.
// Nodes are handed out by value; only the Graph aggregate mutates its own copies.
type Node struct {
	id       valueobjects.NodeID
	label    valueobjects.Label
	position valueobjects.Position
	level    int
}

// NewNode creates a node with a fresh id
func NewNode(label valueobjects.Label, position valueobjects.Position, level int) (Node, error) {
	return ReconstructNode(valueobjects.NewNodeID(), label, position, level)
}

// ReconstructNode rebuilds a node from stored or generated data, keeping its id
func ReconstructNode(id valueobjects.NodeID, label valueobjects.Label, position valueobjects.Position, level int) (Node, error) {
	if id.IsZero() {
		return Node{}, pkgerrors.NewValidationError("node ID cannot be empty")
	}
	if level < 0 {
		return Node{}, pkgerrors.NewValidationError("node level cannot be negative")
	}
	return Node{
		id:       id,
		label:    label,
		position: position,
		level:    level,
	}, nil
}

// ID returns the node's ID
func (n Node) ID() valueobjects.NodeID {
	return n.id
}

// Label returns the node's label
func (n Node) Label() valueobjects.Label {
	return n.label
}

// Position returns the node's world position
func (n Node) Position() valueobjects.Position {
	return n.position
}

// Level returns the hierarchy depth used for styling
func (n Node) Level() int {
	return n.level
}

// Color derives the display color from the level. It is never stored.
func (n Node) Color(palette valueobjects.Palette) string {
	return palette.ColorFor(n.level)
}

// WithLabel returns a copy carrying the new label
func (n Node) WithLabel(label valueobjects.Label) Node {
	n.label = label
	return n
}

// WithPosition returns a copy at the new position
func (n Node) WithPosition(position valueobjects.Position) Node {
	n.position = position
	return n
}

// Connection is a directed edge between two nodes. The struct itself is the
// identity of the ordered pair.
type Connection struct {
	From valueobjects.NodeID
	To   valueobjects.NodeID
}

// NewConnection builds a connection
func NewConnection(from, to valueobjects.NodeID) Connection {
	return Connection{From: from, To: to}
}

// IsSelfLoop reports whether both ends are the same node
func (c Connection) IsSelfLoop() bool {
	return c.From.Equals(c.To)
}

// Touches reports whether id is either endpoint
func (c Connection) Touches(id valueobjects.NodeID) bool {
	return c.From.Equals(id) || c.To.Equals(id)
}
