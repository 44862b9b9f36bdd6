package valueobjects

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_Arithmetic(t *testing.T) {
	a := NewPosition(3, 4)
	b := NewPosition(1, -2)

	assert.True(t, a.Add(b).Equals(NewPosition(4, 2)))
	assert.True(t, a.Sub(b).Equals(NewPosition(2, 6)))
	assert.True(t, a.Scale(0.5).Equals(NewPosition(1.5, 2)))
	assert.InDelta(t, 5.0, a.DistanceTo(Origin()), 1e-12)
}

func TestPosition_IsFinite(t *testing.T) {
	assert.True(t, NewPosition(-1e12, 1e12).IsFinite())
	assert.False(t, NewPosition(math.NaN(), 0).IsFinite())
	assert.False(t, NewPosition(0, math.Inf(1)).IsFinite())
}

func TestPosition_JSON(t *testing.T) {
	data, err := json.Marshal(NewPosition(12.5, -3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":12.5,"y":-3}`, string(data))

	var p Position
	require.NoError(t, json.Unmarshal([]byte(`{"x":1,"y":2}`), &p))
	assert.True(t, p.Equals(NewPosition(1, 2)))
}

func TestNodeID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "string id", input: `"node-1"`, want: "node-1"},
		{name: "numeric id", input: `7`, want: "7"},
		{name: "object is rejected", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id NodeID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
		})
	}
}

func TestNewLabel(t *testing.T) {
	l, err := NewLabel("  Photosynthesis \n")
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis", l.String())

	_, err = NewLabel("   ")
	assert.Error(t, err)
}

func TestPalette_ColorFor(t *testing.T) {
	p := NewPalette([]string{"#a", "#b", "#c"})

	assert.Equal(t, "#a", p.ColorFor(0))
	assert.Equal(t, "#c", p.ColorFor(2))
	assert.Equal(t, "#a", p.ColorFor(3))
	assert.Equal(t, "#b", p.ColorFor(7))
	assert.Equal(t, "#6B7280", NewPalette(nil).ColorFor(4))
}
