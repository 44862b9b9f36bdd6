package aggregates

import (
	"time"

	"github.com/google/uuid"

	"github.com/zaheyak/Content-Studio-sub000/domain/core/entities"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	"github.com/zaheyak/Content-Studio-sub000/domain/events"
)

// DefaultPlaceholderLabel is the label a freshly created node carries until edited.
const DefaultPlaceholderLabel = "New Node"

// GraphID represents a unique graph identifier
type GraphID string

// NewGraphID creates a new random GraphID
func NewGraphID() GraphID {
	return GraphID(uuid.New().String())
}

// String returns the string representation
func (id GraphID) String() string {
	return string(id)
}

// Graph is the aggregate root of a mind map. It owns the nodes, the directed
// connections between them and the current selection.
//
// Operations that reference unknown ids do nothing and report false. Nodes keep
// their insertion order because hit-testing and radial layout depend on it.
type Graph struct {
	id          GraphID
	placeholder valueobjects.Label
	order       []valueobjects.NodeID
	nodes       map[valueobjects.NodeID]entities.Node
	connections []entities.Connection
	edgeIndex   map[entities.Connection]struct{}
	selected    valueobjects.NodeID
	version     int64
	events      []events.DomainEvent
}

// GraphOption configures a new graph
type GraphOption func(*Graph)

// WithPlaceholderLabel overrides the label given to newly created nodes
func WithPlaceholderLabel(label valueobjects.Label) GraphOption {
	return func(g *Graph) {
		g.placeholder = label
	}
}

// WithGraphID pins the aggregate id, used when reconstructing
func WithGraphID(id GraphID) GraphOption {
	return func(g *Graph) {
		if id != "" {
			g.id = id
		}
	}
}

// NewGraph creates an empty graph
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		id:          NewGraphID(),
		placeholder: valueobjects.MustLabel(DefaultPlaceholderLabel),
		nodes:       make(map[valueobjects.NodeID]entities.Node),
		edgeIndex:   make(map[entities.Connection]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the graph's unique identifier
func (g *Graph) ID() GraphID {
	return g.id
}

// Version increases with every successful mutation
func (g *Graph) Version() int64 {
	return g.version
}

// PlaceholderLabel returns the label new nodes start with
func (g *Graph) PlaceholderLabel() valueobjects.Label {
	return g.placeholder
}

// AddNode creates a node with a fresh id and the placeholder label, selects it
// and returns it. Entering label edit is the caller's half of the operation.
// A zero node is returned if the node could not be built.
func (g *Graph) AddNode(position valueobjects.Position, level int) entities.Node {
	if level < 0 {
		level = 0
	}
	node, err := entities.NewNode(g.placeholder, position, level)
	if err != nil {
		return entities.Node{}
	}
	g.insert(node)
	g.selected = node.ID()
	g.touch()
	g.addEvent(events.NewNodeAdded(g.id.String(), g.version, node.ID(), position, level, now()))
	return node
}

// InsertNode adds an existing node, keeping its id. Used when restoring stored or
// generated graphs. Returns false if a node with that id already exists.
func (g *Graph) InsertNode(node entities.Node) bool {
	if node.ID().IsZero() {
		return false
	}
	if _, exists := g.nodes[node.ID()]; exists {
		return false
	}
	g.insert(node)
	g.touch()
	g.addEvent(events.NewNodeAdded(g.id.String(), g.version, node.ID(), node.Position(), node.Level(), now()))
	return true
}

// UpdateNodeLabel trims text and applies it. Empty text is rejected and the
// previous label is kept.
func (g *Graph) UpdateNodeLabel(id valueobjects.NodeID, text string) bool {
	node, exists := g.nodes[id]
	if !exists {
		return false
	}
	label, err := valueobjects.NewLabel(text)
	if err != nil {
		return false
	}
	if label.Equals(node.Label()) {
		return true
	}
	old := node.Label()
	g.nodes[id] = node.WithLabel(label)
	g.touch()
	g.addEvent(events.NewNodeLabelChanged(g.id.String(), g.version, id, old.String(), label.String(), now()))
	return true
}

// MoveNode overwrites the world position without bounds checking
func (g *Graph) MoveNode(id valueobjects.NodeID, position valueobjects.Position) bool {
	node, exists := g.nodes[id]
	if !exists {
		return false
	}
	old := node.Position()
	g.nodes[id] = node.WithPosition(position)
	g.touch()
	g.addEvent(events.NewNodeMoved(g.id.String(), g.version, id, old, position, now()))
	return true
}

// DeleteNode removes a node together with every connection touching it and
// clears the selection if it pointed at the node.
func (g *Graph) DeleteNode(id valueobjects.NodeID) bool {
	if _, exists := g.nodes[id]; !exists {
		return false
	}

	kept := g.connections[:0]
	removed := 0
	for _, c := range g.connections {
		if c.Touches(id) {
			delete(g.edgeIndex, c)
			removed++
			continue
		}
		kept = append(kept, c)
	}
	g.connections = kept

	delete(g.nodes, id)
	for i, nid := range g.order {
		if nid.Equals(id) {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	if g.selected.Equals(id) {
		g.selected = valueobjects.NodeID{}
	}

	g.touch()
	g.addEvent(events.NewNodeDeleted(g.id.String(), g.version, id, removed, now()))
	return true
}

// AddConnection inserts the directed pair. Self-loops, duplicates and unknown
// endpoints are ignored.
func (g *Graph) AddConnection(from, to valueobjects.NodeID) bool {
	c := entities.NewConnection(from, to)
	if c.IsSelfLoop() || !g.HasNode(from) || !g.HasNode(to) {
		return false
	}
	if _, exists := g.edgeIndex[c]; exists {
		return false
	}
	g.connections = append(g.connections, c)
	g.edgeIndex[c] = struct{}{}
	g.touch()
	g.addEvent(events.NewConnectionAdded(g.id.String(), g.version, from, to, now()))
	return true
}

// RemoveConnection removes the directed pair if present
func (g *Graph) RemoveConnection(from, to valueobjects.NodeID) bool {
	c := entities.NewConnection(from, to)
	if _, exists := g.edgeIndex[c]; !exists {
		return false
	}
	for i, existing := range g.connections {
		if existing == c {
			g.connections = append(g.connections[:i], g.connections[i+1:]...)
			break
		}
	}
	delete(g.edgeIndex, c)
	g.touch()
	g.addEvent(events.NewConnectionRemoved(g.id.String(), g.version, from, to, now()))
	return true
}

// Select marks a node as selected
func (g *Graph) Select(id valueobjects.NodeID) bool {
	if !g.HasNode(id) {
		return false
	}
	g.selected = id
	return true
}

// ClearSelection drops the selection
func (g *Graph) ClearSelection() {
	g.selected = valueobjects.NodeID{}
}

// Selected returns the selected node id, if any
func (g *Graph) Selected() (valueobjects.NodeID, bool) {
	return g.selected, !g.selected.IsZero()
}

// Replace swaps in the content of other wholesale. The selection is cleared and
// other is left untouched.
func (g *Graph) Replace(other *Graph) {
	g.order = append([]valueobjects.NodeID(nil), other.order...)
	g.nodes = make(map[valueobjects.NodeID]entities.Node, len(other.nodes))
	for id, n := range other.nodes {
		g.nodes[id] = n
	}
	g.connections = append([]entities.Connection(nil), other.connections...)
	g.edgeIndex = make(map[entities.Connection]struct{}, len(other.edgeIndex))
	for k := range other.edgeIndex {
		g.edgeIndex[k] = struct{}{}
	}
	g.selected = valueobjects.NodeID{}
	g.touch()
	g.addEvent(events.NewGraphReplaced(g.id.String(), g.version, len(g.order), len(g.connections), now()))
}

// Clone returns an independent copy with the same id and no pending events
func (g *Graph) Clone() *Graph {
	c := NewGraph(WithGraphID(g.id), WithPlaceholderLabel(g.placeholder))
	c.order = append([]valueobjects.NodeID(nil), g.order...)
	for id, n := range g.nodes {
		c.nodes[id] = n
	}
	c.connections = append([]entities.Connection(nil), g.connections...)
	for k := range g.edgeIndex {
		c.edgeIndex[k] = struct{}{}
	}
	c.selected = g.selected
	c.version = g.version
	return c
}

// Node returns a node by id
func (g *Graph) Node(id valueobjects.NodeID) (entities.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode checks if a node exists in the graph
func (g *Graph) HasNode(id valueobjects.NodeID) bool {
	_, exists := g.nodes[id]
	return exists
}

// HasConnection checks if the directed pair exists
func (g *Graph) HasConnection(from, to valueobjects.NodeID) bool {
	_, exists := g.edgeIndex[entities.NewConnection(from, to)]
	return exists
}

// Nodes returns the nodes in insertion order
func (g *Graph) Nodes() []entities.Node {
	nodes := make([]entities.Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Connections returns the connections in insertion order
func (g *Graph) Connections() []entities.Connection {
	return append([]entities.Connection(nil), g.connections...)
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// ConnectionCount returns the number of connections
func (g *Graph) ConnectionCount() int {
	return len(g.connections)
}

// IsEmpty reports whether the graph has no nodes
func (g *Graph) IsEmpty() bool {
	return len(g.order) == 0
}

// PullEvents returns and clears the pending domain events
func (g *Graph) PullEvents() []events.DomainEvent {
	pending := g.events
	g.events = nil
	return pending
}

func (g *Graph) insert(node entities.Node) {
	g.nodes[node.ID()] = node
	g.order = append(g.order, node.ID())
}

func (g *Graph) touch() {
	g.version++
}

func (g *Graph) addEvent(event events.DomainEvent) {
	g.events = append(g.events, event)
}

var now = time.Now
