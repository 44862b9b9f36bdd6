package services

import (
	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/aggregates"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/entities"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
)

// Serializer converts between the Graph aggregate and its stored payload.
type Serializer struct {
	palette     valueobjects.Palette
	placeholder valueobjects.Label
}

// NewSerializer builds a serializer from the domain config
func NewSerializer(cfg *config.DomainConfig) *Serializer {
	return &Serializer{
		palette:     valueobjects.NewPalette(cfg.Palette),
		placeholder: valueobjects.MustLabel(cfg.DefaultNodeLabel),
	}
}

// Serialize writes nodes and connections in insertion order with their counts
func (s *Serializer) Serialize(g *aggregates.Graph) content.MindMapData {
	data := content.EmptyMindMapData()
	for _, n := range g.Nodes() {
		data.Nodes = append(data.Nodes, content.NodeData{
			ID:    n.ID().String(),
			Label: n.Label().String(),
			X:     n.Position().X(),
			Y:     n.Position().Y(),
			Level: n.Level(),
			Color: n.Color(s.palette),
		})
	}
	for _, c := range g.Connections() {
		data.Connections = append(data.Connections, content.ConnectionData{
			From: c.From.String(),
			To:   c.To.String(),
		})
	}
	data.NodeCount = len(data.Nodes)
	data.ConnectionCount = len(data.Connections)
	return data
}

// Deserialize restores a graph verbatim. Entries that would break a graph
// invariant are dropped: nodes without an id or with a repeated id, and
// connections that are self-loops, repeats or reference a missing node.
// Empty labels fall back to the placeholder and negative levels to 0.
// Stored colors and counts are ignored; both are derived.
func (s *Serializer) Deserialize(data content.MindMapData) *aggregates.Graph {
	g := aggregates.NewGraph(aggregates.WithPlaceholderLabel(s.placeholder))

	for _, nd := range data.Nodes {
		id, err := valueobjects.NewNodeIDFromString(nd.ID)
		if err != nil {
			continue
		}
		label, err := valueobjects.NewLabel(nd.Label)
		if err != nil {
			label = s.placeholder
		}
		level := nd.Level
		if level < 0 {
			level = 0
		}
		node, err := entities.ReconstructNode(id, label, valueobjects.NewPosition(nd.X, nd.Y), level)
		if err != nil {
			continue
		}
		g.InsertNode(node)
	}

	for _, cd := range data.Connections {
		from, errFrom := valueobjects.NewNodeIDFromString(cd.From)
		to, errTo := valueobjects.NewNodeIDFromString(cd.To)
		if errFrom != nil || errTo != nil {
			continue
		}
		g.AddConnection(from, to)
	}

	g.PullEvents()
	return g
}
