package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/aggregates"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
)

func TestSerializer_Serialize(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	s := NewSerializer(cfg)

	g := aggregates.NewGraph()
	root := g.AddNode(valueobjects.NewPosition(1.5, -2), 0)
	child := g.AddNode(valueobjects.NewPosition(10, 20), 2)
	g.UpdateNodeLabel(child.ID(), "Leaves")
	g.AddConnection(root.ID(), child.ID())

	data := s.Serialize(g)

	assert.Equal(t, 2, data.NodeCount)
	assert.Equal(t, 1, data.ConnectionCount)
	assert.Equal(t, content.NodeData{
		ID: child.ID().String(), Label: "Leaves", X: 10, Y: 20, Level: 2, Color: cfg.Palette[2],
	}, data.Nodes[1])
	assert.Equal(t, content.ConnectionData{From: root.ID().String(), To: child.ID().String()}, data.Connections[0])

	empty := s.Serialize(aggregates.NewGraph())
	assert.NotNil(t, empty.Nodes)
	assert.NotNil(t, empty.Connections)
	assert.Zero(t, empty.NodeCount)
}

func TestSerializer_DeserializeVerbatim(t *testing.T) {
	s := NewSerializer(config.DefaultDomainConfig())

	data := content.MindMapData{
		Nodes: []content.NodeData{
			{ID: "1", Label: "Cells", X: 400, Y: 300, Level: 0},
			{ID: "2", Label: "Nucleus", X: 600, Y: 300, Level: 1, Color: "#bogus"},
		},
		Connections: []content.ConnectionData{{From: "1", To: "2"}},
		NodeCount:   99,
	}

	g := s.Deserialize(data)
	out := s.Serialize(g)

	require.Len(t, out.Nodes, 2)
	assert.Equal(t, "1", out.Nodes[0].ID)
	assert.Equal(t, "Nucleus", out.Nodes[1].Label)
	assert.Equal(t, 600.0, out.Nodes[1].X)
	assert.NotEqual(t, "#bogus", out.Nodes[1].Color, "color is derived from level")
	assert.Equal(t, 2, out.NodeCount, "counts are recomputed")
	assert.Equal(t, data.Connections, out.Connections)

	_, selected := g.Selected()
	assert.False(t, selected)
}

func TestSerializer_DeserializeDropsBrokenEntries(t *testing.T) {
	s := NewSerializer(config.DefaultDomainConfig())

	g := s.Deserialize(content.MindMapData{
		Nodes: []content.NodeData{
			{ID: "a", Label: "A"},
			{ID: "", Label: "no id"},
			{ID: "a", Label: "repeat"},
			{ID: "b", Label: "   ", Level: -2},
		},
		Connections: []content.ConnectionData{
			{From: "a", To: "b"},
			{From: "a", To: "b"},
			{From: "a", To: "a"},
			{From: "a", To: "ghost"},
			{From: "", To: "b"},
		},
	})

	require.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.ConnectionCount())

	b, ok := g.Node(mustID(t, "b"))
	require.True(t, ok)
	assert.Equal(t, aggregates.DefaultPlaceholderLabel, b.Label().String())
	assert.Equal(t, 0, b.Level())

	a, _ := g.Node(mustID(t, "a"))
	assert.Equal(t, "A", a.Label().String())
}

func mustID(t *testing.T, s string) valueobjects.NodeID {
	t.Helper()
	id, err := valueobjects.NewNodeIDFromString(s)
	require.NoError(t, err)
	return id
}
