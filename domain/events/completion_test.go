package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaheyak/Content-Studio-sub000/domain/content"
)

func TestNewMindMapCompleted(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		data      content.MindMapData
		method    content.Method
		completed bool
	}{
		{name: "empty map is not completed", data: content.EmptyMindMapData(), method: content.MethodManual, completed: false},
		{
			name: "map with nodes is completed",
			data: content.MindMapData{
				Nodes:       []content.NodeData{{ID: "r", Label: "Main Topic"}},
				Connections: []content.ConnectionData{},
				NodeCount:   1,
			},
			method:    content.MethodGenerated,
			completed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt, err := NewMindMapCompleted("lesson-1", 3, content.MindMap{Method: tt.method, Data: tt.data}, ts)
			require.NoError(t, err)

			assert.Equal(t, MindMapCompletedType, evt.GetEventType())
			assert.Equal(t, "lesson-1", evt.GetAggregateID())
			assert.Equal(t, content.KindMindMap, evt.Content.Type)
			assert.Equal(t, tt.method, evt.Content.Method)
			assert.Equal(t, tt.completed, evt.Content.Completed)

			var data content.MindMapData
			require.NoError(t, json.Unmarshal(evt.Content.Data, &data))
			assert.Equal(t, tt.data.NodeCount, data.NodeCount)
		})
	}
}
