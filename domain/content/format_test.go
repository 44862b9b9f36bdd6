package content

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
)

func TestEncode_MindMapEnvelope(t *testing.T) {
	f := MindMap{
		Method: MethodManual,
		Data: MindMapData{
			Nodes:           []NodeData{{ID: "n1", Label: "Root", X: 400, Y: 300, Level: 0, Color: "#4F46E5"}},
			Connections:     []ConnectionData{},
			NodeCount:       1,
			ConnectionCount: 0,
		},
	}

	raw, err := Encode(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "mindmap",
		"method": "manual",
		"completed": true,
		"data": {
			"nodes": [{"id":"n1","label":"Root","x":400,"y":300,"level":0,"color":"#4F46E5"}],
			"connections": [],
			"nodeCount": 1,
			"connectionCount": 0
		}
	}`, string(raw))
}

func TestMindMap_CompletedFollowsNodeCount(t *testing.T) {
	assert.False(t, MindMap{Data: EmptyMindMapData()}.Completed())
	assert.True(t, MindMap{Data: MindMapData{NodeCount: 3}}.Completed())
}

func TestDecode_DispatchesOnType(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantKind  Kind
		completed bool
	}{
		{name: "video", raw: `{"type":"video","method":"upload","data":{"url":"https://cdn/x.mp4"}}`, wantKind: KindVideo, completed: true},
		{name: "text", raw: `{"type":"text","method":"manual","data":{"body":""}}`, wantKind: KindText},
		{name: "presentation", raw: `{"type":"presentation","method":"generated","data":{"slides":[{"title":"Intro"}]}}`, wantKind: KindPresentation, completed: true},
		{name: "mindmap", raw: `{"type":"mindmap","method":"fallback","data":{"nodes":[{"id":"a","label":"A"}],"connections":[],"nodeCount":1,"connectionCount":0}}`, wantKind: KindMindMap, completed: true},
		{name: "code", raw: `{"type":"code","method":"manual","data":{"language":"go","source":"package main"}}`, wantKind: KindCode, completed: true},
		{name: "images without data", raw: `{"type":"images","method":"upload"}`, wantKind: KindImages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decode([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, f.Kind())
			assert.Equal(t, tt.completed, f.Completed())
		})
	}
}

func TestDecode_RejectsUnknownAndMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"type":"podcast","method":"manual","data":{}}`))
	assert.True(t, errors.Is(err, pkgerrors.ErrUnknownContentFormat))

	_, err = Decode([]byte(`{"type":"mindmap","data":{"nodes":"oops"}}`))
	assert.True(t, errors.Is(err, pkgerrors.ErrInvalidPayload))

	_, err = Decode([]byte(`not json`))
	assert.True(t, errors.Is(err, pkgerrors.ErrInvalidPayload))
}

func TestFormat_RoundTripKeepsVariant(t *testing.T) {
	original := Code{Method: MethodGenerated, Data: CodeData{Language: "python", Source: "print(1)"}}

	raw, err := Encode(original)
	require.NoError(t, err)
	decoded, err := Decode(raw)
	require.NoError(t, err)

	code, ok := decoded.(Code)
	require.True(t, ok)
	assert.Equal(t, original, code)
}

func TestMindMapData_AcceptsNumericIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  MindMapData
	}{
		{
			name:  "numbers",
			input: `{"nodes":[{"id":1,"label":"Root","x":400,"y":300},{"id":2,"label":"Leaf","level":1}],"connections":[{"from":1,"to":2}]}`,
			want: MindMapData{
				Nodes:       []NodeData{{ID: "1", Label: "Root", X: 400, Y: 300}, {ID: "2", Label: "Leaf", Level: 1}},
				Connections: []ConnectionData{{From: "1", To: "2"}},
			},
		},
		{
			name:  "strings",
			input: `{"nodes":[{"id":"a","label":"Root","color":"#fff"}],"connections":[{"from":"a","to":"b"}]}`,
			want: MindMapData{
				Nodes:       []NodeData{{ID: "a", Label: "Root", Color: "#fff"}},
				Connections: []ConnectionData{{From: "a", To: "b"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got MindMapData
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var bad MindMapData
	assert.Error(t, json.Unmarshal([]byte(`{"nodes":[{"id":{}}]}`), &bad))
}
