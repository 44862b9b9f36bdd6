package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/ports"
	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/aggregates"
	domainservices "github.com/zaheyak/Content-Studio-sub000/domain/services"
	"github.com/zaheyak/Content-Studio-sub000/pkg/observability"
)

// GenerationResult is what a generation always yields: a graph and how it was made
type GenerationResult struct {
	Graph  *aggregates.Graph
	Method content.Method
	// Reason is set when the local fallback was used
	Reason string
}

// GenerationService asks the external generator for a mind map and falls back
// to local keyword extraction whenever that fails. It never returns an error.
type GenerationService struct {
	generator  ports.Generator
	breaker    *gobreaker.CircuitBreaker
	extractor  *domainservices.KeywordExtractor
	serializer *domainservices.Serializer
	layout     domainservices.RadialLayout
	metrics    *observability.Collector
	logger     *zap.Logger

	mu      sync.RWMutex
	timeout time.Duration
}

// NewGenerationService creates the generation service. A nil generator means
// every request takes the fallback path.
func NewGenerationService(
	generator ports.Generator,
	cfg *config.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) *GenerationService {
	s := &GenerationService{
		generator:  generator,
		extractor:  domainservices.NewKeywordExtractor(cfg),
		serializer: domainservices.NewSerializer(cfg),
		layout:     domainservices.NewRadialLayout(cfg),
		metrics:    metrics,
		logger:     logger,
		timeout:    cfg.GenerationTimeout,
	}

	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mindmap-generator",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Generator circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if metrics != nil {
				metrics.BreakerState.Set(float64(to))
			}
		},
	})

	return s
}

// SetTimeout changes the per-request timeout; used by config hot reload
func (s *GenerationService) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	s.mu.Lock()
	s.timeout = timeout
	s.mu.Unlock()
	s.logger.Info("Generation timeout updated", zap.Duration("timeout", timeout))
}

// Timeout returns the current per-request timeout
func (s *GenerationService) Timeout() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeout
}

// Generate produces a graph for prompt and context. Transport errors,
// unsuccessful or empty responses, panics and an open breaker all yield the
// locally extracted graph from prompt and context joined by a space.
func (s *GenerationService) Generate(ctx context.Context, req ports.GenerationRequest) GenerationResult {
	start := time.Now()

	result, err := s.generate(ctx, req)
	if err != nil {
		s.logger.Warn("Mind map generation failed, using keyword fallback",
			zap.Error(err),
			zap.Int("promptLength", len(req.Prompt)),
		)
		result = GenerationResult{
			Graph:  s.extractor.BuildGraph(FallbackText(req)),
			Method: content.MethodFallback,
			Reason: err.Error(),
		}
	}

	if s.metrics != nil {
		s.metrics.RecordGeneration(string(result.Method), time.Since(start))
	}
	return result
}

// FallbackText is the text the keyword extractor sees when generation fails
func FallbackText(req ports.GenerationRequest) string {
	return req.Prompt + " " + req.Context
}

func (s *GenerationService) generate(ctx context.Context, req ports.GenerationRequest) (GenerationResult, error) {
	if s.generator == nil {
		return GenerationResult{}, fmt.Errorf("no generator configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout())
	defer cancel()

	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.call(ctx, req)
	})
	if err != nil {
		return GenerationResult{}, err
	}

	data := out.(content.MindMapData)
	g := s.serializer.Deserialize(data)
	if g.IsEmpty() {
		return GenerationResult{}, fmt.Errorf("generator returned no usable nodes")
	}
	if collapsed(g) {
		s.layout.Apply(g)
		g.PullEvents()
	}

	return GenerationResult{Graph: g, Method: content.MethodGenerated}, nil
}

// call invokes the generator, turning panics and unsuccessful envelopes into errors
func (s *GenerationService) call(ctx context.Context, req ports.GenerationRequest) (data interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panicked: %v", r)
		}
	}()

	resp, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("generator returned no response")
	}
	if !resp.Success {
		msg := strings.TrimSpace(resp.Error)
		if msg == "" {
			msg = "unspecified error"
		}
		return nil, fmt.Errorf("generator reported failure: %s", msg)
	}
	return resp.Data, nil
}

// collapsed reports whether a multi-node graph has every node on one spot,
// which is what generators that ignore layout send back.
func collapsed(g *aggregates.Graph) bool {
	nodes := g.Nodes()
	if len(nodes) < 2 {
		return false
	}
	first := nodes[0].Position()
	for _, n := range nodes[1:] {
		if !n.Position().Equals(first) {
			return false
		}
	}
	return true
}
