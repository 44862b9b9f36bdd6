package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/ports"
	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/pkg/observability"
)

var biologyRequest = ports.GenerationRequest{Prompt: "Photosynthesis basics", Context: "Plants convert light"}

func newGenerationService(gen ports.Generator) *GenerationService {
	return NewGenerationService(gen, config.DefaultDomainConfig(), observability.NewNopCollector(), zap.NewNop())
}

func labels(result GenerationResult) []string {
	out := []string{}
	for _, n := range result.Graph.Nodes() {
		out = append(out, n.Label().String())
	}
	return out
}

func TestGenerationService_Success(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, biologyRequest).Return(&ports.GenerationResponse{
		Success: true,
		Data: content.MindMapData{
			Nodes: []content.NodeData{
				{ID: "1", Label: "Photosynthesis", X: 400, Y: 300, Level: 0},
				{ID: "2", Label: "Light", X: 600, Y: 300, Level: 1},
			},
			Connections: []content.ConnectionData{{From: "1", To: "2"}},
		},
	}, nil)

	result := newGenerationService(gen).Generate(context.Background(), biologyRequest)

	assert.Equal(t, content.MethodGenerated, result.Method)
	assert.Equal(t, []string{"Photosynthesis", "Light"}, labels(result))
	assert.Equal(t, 1, result.Graph.ConnectionCount())
	nodes := result.Graph.Nodes()
	assert.InDelta(t, 600.0, nodes[1].Position().X(), 1e-9, "generator positions are kept")
	gen.AssertExpectations(t)
}

func TestGenerationService_CollapsedPositionsGetRadialLayout(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(&ports.GenerationResponse{
		Success: true,
		Data: content.MindMapData{
			Nodes: []content.NodeData{
				{ID: "a", Label: "Root"},
				{ID: "b", Label: "Left", Level: 1},
				{ID: "c", Label: "Right", Level: 1},
			},
		},
	}, nil)

	result := newGenerationService(gen).Generate(context.Background(), biologyRequest)

	require.Equal(t, content.MethodGenerated, result.Method)
	nodes := result.Graph.Nodes()
	assert.InDelta(t, 400.0, nodes[0].Position().X(), 1e-9)
	assert.InDelta(t, 300.0, nodes[0].Position().Y(), 1e-9)
	assert.InDelta(t, 600.0, nodes[1].Position().X(), 1e-9)
	assert.InDelta(t, 200.0, nodes[2].Position().X(), 1e-9)
	assert.Empty(t, result.Graph.PullEvents())
}

func TestGenerationService_Fallback(t *testing.T) {
	tests := []struct {
		name string
		gen  func() ports.Generator
	}{
		{
			name: "transport error",
			gen: func() ports.Generator {
				g := new(MockGenerator)
				g.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
				return g
			},
		},
		{
			name: "unsuccessful envelope",
			gen: func() ports.Generator {
				g := new(MockGenerator)
				g.On("Generate", mock.Anything, mock.Anything).Return(&ports.GenerationResponse{Success: false, Error: "quota"}, nil)
				return g
			},
		},
		{
			name: "empty data",
			gen: func() ports.Generator {
				g := new(MockGenerator)
				g.On("Generate", mock.Anything, mock.Anything).Return(&ports.GenerationResponse{Success: true}, nil)
				return g
			},
		},
		{
			name: "nil response",
			gen: func() ports.Generator {
				g := new(MockGenerator)
				g.On("Generate", mock.Anything, mock.Anything).Return(nil, nil)
				return g
			},
		},
		{
			name: "panic",
			gen:  func() ports.Generator { return panickingGenerator{} },
		},
		{
			name: "no generator",
			gen:  func() ports.Generator { return nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newGenerationService(tt.gen()).Generate(context.Background(), biologyRequest)

			assert.Equal(t, content.MethodFallback, result.Method)
			assert.NotEmpty(t, result.Reason)
			assert.Equal(t, []string{"Main Topic", "Photosynthesis", "basics", "Plants", "convert", "light"}, labels(result))
			assert.Equal(t, 5, result.Graph.ConnectionCount())
		})
	}
}

func TestGenerationService_OpenBreakerSkipsGenerator(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	svc := newGenerationService(gen)

	for i := 0; i < 5; i++ {
		svc.Generate(context.Background(), biologyRequest)
	}
	gen.AssertNumberOfCalls(t, "Generate", 5)

	result := svc.Generate(context.Background(), biologyRequest)

	assert.Equal(t, content.MethodFallback, result.Method)
	gen.AssertNumberOfCalls(t, "Generate", 5)
}

func TestGenerationService_SetTimeout(t *testing.T) {
	svc := newGenerationService(nil)
	assert.Equal(t, config.DefaultDomainConfig().GenerationTimeout, svc.Timeout())

	svc.SetTimeout(0)
	assert.Equal(t, config.DefaultDomainConfig().GenerationTimeout, svc.Timeout(), "non-positive timeouts are ignored")

	svc.SetTimeout(5_000_000_000)
	assert.Equal(t, int64(5_000_000_000), int64(svc.Timeout()))
}

func TestFallbackText(t *testing.T) {
	assert.Equal(t, "a b", FallbackText(ports.GenerationRequest{Prompt: "a", Context: "b"}))
	assert.Equal(t, " ", FallbackText(ports.GenerationRequest{}))
}
