package content

import (
	"encoding/json"

	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
)

// NodeData is the stored form of a mind map node. Color is written for
// consumers of the payload and recomputed from the level on load.
type NodeData struct {
	ID    string  `json:"id" dynamodbav:"id" validate:"required"`
	Label string  `json:"label" dynamodbav:"label"`
	X     float64 `json:"x" dynamodbav:"x"`
	Y     float64 `json:"y" dynamodbav:"y"`
	Level int     `json:"level" dynamodbav:"level" validate:"gte=0"`
	Color string  `json:"color,omitempty" dynamodbav:"color,omitempty"`
}

// UnmarshalJSON accepts numeric ids as well as strings
func (n *NodeData) UnmarshalJSON(data []byte) error {
	type plain NodeData
	aux := struct {
		*plain
		ID valueobjects.NodeID `json:"id"`
	}{plain: (*plain)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	n.ID = aux.ID.String()
	return nil
}

// ConnectionData is the stored form of a directed edge
type ConnectionData struct {
	From string `json:"from" dynamodbav:"from" validate:"required"`
	To   string `json:"to" dynamodbav:"to" validate:"required"`
}

// UnmarshalJSON accepts numeric endpoints as well as strings
func (c *ConnectionData) UnmarshalJSON(data []byte) error {
	var aux struct {
		From valueobjects.NodeID `json:"from"`
		To   valueobjects.NodeID `json:"to"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.From, c.To = aux.From.String(), aux.To.String()
	return nil
}

// MindMapData is the persisted payload of a mind map. The viewport is never
// part of it.
type MindMapData struct {
	Nodes           []NodeData       `json:"nodes" dynamodbav:"nodes" validate:"dive"`
	Connections     []ConnectionData `json:"connections" dynamodbav:"connections" validate:"dive"`
	NodeCount       int              `json:"nodeCount" dynamodbav:"nodeCount"`
	ConnectionCount int              `json:"connectionCount" dynamodbav:"connectionCount"`
}

// EmptyMindMapData returns a payload with no nodes, with non-nil slices so it
// encodes as [] rather than null.
func EmptyMindMapData() MindMapData {
	return MindMapData{Nodes: []NodeData{}, Connections: []ConnectionData{}}
}
