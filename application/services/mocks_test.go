package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/zaheyak/Content-Studio-sub000/application/ports"
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	"github.com/zaheyak/Content-Studio-sub000/domain/events"
)

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) SaveFormat(ctx context.Context, lessonID valueobjects.LessonID, format content.Format) error {
	args := m.Called(ctx, lessonID, format)
	return args.Error(0)
}

func (m *MockContentRepository) GetFormat(ctx context.Context, lessonID valueobjects.LessonID, kind content.Kind) (content.Format, error) {
	args := m.Called(ctx, lessonID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(content.Format), args.Error(1)
}

func (m *MockContentRepository) ListFormats(ctx context.Context, lessonID valueobjects.LessonID) ([]content.Format, error) {
	args := m.Called(ctx, lessonID)
	return args.Get(0).([]content.Format), args.Error(1)
}

func (m *MockContentRepository) DeleteFormat(ctx context.Context, lessonID valueobjects.LessonID, kind content.Kind) error {
	args := m.Called(ctx, lessonID, kind)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req ports.GenerationRequest) (*ports.GenerationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.GenerationResponse), args.Error(1)
}

// blockingGenerator holds every call until release is closed
type blockingGenerator struct {
	release chan struct{}
	resp    *ports.GenerationResponse

	mu    sync.Mutex
	calls int
}

func (g *blockingGenerator) Generate(ctx context.Context, req ports.GenerationRequest) (*ports.GenerationResponse, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	<-g.release
	return g.resp, nil
}

// panickingGenerator fails in the worst way
type panickingGenerator struct{}

func (panickingGenerator) Generate(ctx context.Context, req ports.GenerationRequest) (*ports.GenerationResponse, error) {
	panic("generator exploded")
}

// mapCache is a minimal ports.Cache
type mapCache struct {
	mu    sync.Mutex
	items map[string]interface{}
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]interface{})}
}

func (c *mapCache) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}, ttl int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}
