package events

import (
	"time"

	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int64
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int64     `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int64       { return e.Version }

func newBase(aggregateID, eventType string, version int64, timestamp time.Time) BaseEvent {
	return BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		Timestamp:   timestamp,
		Version:     version,
	}
}

// Node events

// NodeAdded is raised when a node joins the graph
type NodeAdded struct {
	BaseEvent
	NodeID   valueobjects.NodeID   `json:"node_id"`
	Position valueobjects.Position `json:"position"`
	Level    int                   `json:"level"`
}

// NewNodeAdded creates a NodeAdded event
func NewNodeAdded(graphID string, version int64, nodeID valueobjects.NodeID, pos valueobjects.Position, level int, timestamp time.Time) NodeAdded {
	return NodeAdded{
		BaseEvent: newBase(graphID, "mindmap.node_added", version, timestamp),
		NodeID:    nodeID,
		Position:  pos,
		Level:     level,
	}
}

// NodeLabelChanged is raised when a label commit is accepted
type NodeLabelChanged struct {
	BaseEvent
	NodeID   valueobjects.NodeID `json:"node_id"`
	OldLabel string              `json:"old_label"`
	NewLabel string              `json:"new_label"`
}

// NewNodeLabelChanged creates a NodeLabelChanged event
func NewNodeLabelChanged(graphID string, version int64, nodeID valueobjects.NodeID, oldLabel, newLabel string, timestamp time.Time) NodeLabelChanged {
	return NodeLabelChanged{
		BaseEvent: newBase(graphID, "mindmap.node_label_changed", version, timestamp),
		NodeID:    nodeID,
		OldLabel:  oldLabel,
		NewLabel:  newLabel,
	}
}

// NodeMoved is raised when a node is moved to a new position
type NodeMoved struct {
	BaseEvent
	NodeID      valueobjects.NodeID   `json:"node_id"`
	OldPosition valueobjects.Position `json:"old_position"`
	NewPosition valueobjects.Position `json:"new_position"`
}

// NewNodeMoved creates a NodeMoved event
func NewNodeMoved(graphID string, version int64, nodeID valueobjects.NodeID, oldPos, newPos valueobjects.Position, timestamp time.Time) NodeMoved {
	return NodeMoved{
		BaseEvent:   newBase(graphID, "mindmap.node_moved", version, timestamp),
		NodeID:      nodeID,
		OldPosition: oldPos,
		NewPosition: newPos,
	}
}

// NodeDeleted is raised when a node and its incident connections are removed
type NodeDeleted struct {
	BaseEvent
	NodeID             valueobjects.NodeID `json:"node_id"`
	RemovedConnections int                 `json:"removed_connections"`
}

// NewNodeDeleted creates a NodeDeleted event
func NewNodeDeleted(graphID string, version int64, nodeID valueobjects.NodeID, removed int, timestamp time.Time) NodeDeleted {
	return NodeDeleted{
		BaseEvent:          newBase(graphID, "mindmap.node_deleted", version, timestamp),
		NodeID:             nodeID,
		RemovedConnections: removed,
	}
}

// Connection events

// ConnectionAdded is raised when a directed edge is inserted
type ConnectionAdded struct {
	BaseEvent
	From valueobjects.NodeID `json:"from"`
	To   valueobjects.NodeID `json:"to"`
}

// NewConnectionAdded creates a ConnectionAdded event
func NewConnectionAdded(graphID string, version int64, from, to valueobjects.NodeID, timestamp time.Time) ConnectionAdded {
	return ConnectionAdded{
		BaseEvent: newBase(graphID, "mindmap.connection_added", version, timestamp),
		From:      from,
		To:        to,
	}
}

// ConnectionRemoved is raised when a directed edge is removed on request
type ConnectionRemoved struct {
	BaseEvent
	From valueobjects.NodeID `json:"from"`
	To   valueobjects.NodeID `json:"to"`
}

// NewConnectionRemoved creates a ConnectionRemoved event
func NewConnectionRemoved(graphID string, version int64, from, to valueobjects.NodeID, timestamp time.Time) ConnectionRemoved {
	return ConnectionRemoved{
		BaseEvent: newBase(graphID, "mindmap.connection_removed", version, timestamp),
		From:      from,
		To:        to,
	}
}

// Graph events

// GraphReplaced is raised when the whole graph is superseded, for example by a
// generation result.
type GraphReplaced struct {
	BaseEvent
	NodeCount       int `json:"node_count"`
	ConnectionCount int `json:"connection_count"`
}

// NewGraphReplaced creates a GraphReplaced event
func NewGraphReplaced(graphID string, version int64, nodes, connections int, timestamp time.Time) GraphReplaced {
	return GraphReplaced{
		BaseEvent:       newBase(graphID, "mindmap.graph_replaced", version, timestamp),
		NodeCount:       nodes,
		ConnectionCount: connections,
	}
}
