package ports

import (
	"context"
	"io"

	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	"github.com/zaheyak/Content-Studio-sub000/domain/events"
	"github.com/zaheyak/Content-Studio-sub000/domain/services"
)

// ContentRepository stores the content formats of a lesson, one item per
// (lesson, format) pair. This is a port in hexagonal architecture.
type ContentRepository interface {
	// SaveFormat creates or replaces the given format of a lesson
	SaveFormat(ctx context.Context, lessonID valueobjects.LessonID, format content.Format) error

	// GetFormat loads one format of a lesson; a missing item is a NotFound error
	GetFormat(ctx context.Context, lessonID valueobjects.LessonID, kind content.Kind) (content.Format, error)

	// ListFormats loads every stored format of a lesson
	ListFormats(ctx context.Context, lessonID valueobjects.LessonID) ([]content.Format, error)

	// DeleteFormat removes a format of a lesson; deleting a missing item is not an error
	DeleteFormat(ctx context.Context, lessonID valueobjects.LessonID, kind content.Kind) error
}

// GenerationRequest is sent to the external text-to-graph generator
type GenerationRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
}

// GenerationResponse is the generator's envelope
type GenerationResponse struct {
	Success bool                `json:"success"`
	Data    content.MindMapData `json:"data"`
	Error   string              `json:"error,omitempty"`
}

// Generator is the external text-to-graph service
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResponse, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache defines the interface for caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error
}

// SnapshotRenderer writes a scene as a downloadable image
type SnapshotRenderer interface {
	// Format is the short name clients ask for, e.g. "svg"
	Format() string

	// ContentType is the MIME type of the output
	ContentType() string

	// Render writes the scene to w
	Render(w io.Writer, scene services.Scene) error
}
