package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/ports"
	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/aggregates"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	"github.com/zaheyak/Content-Studio-sub000/domain/events"
	domainservices "github.com/zaheyak/Content-Studio-sub000/domain/services"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
	"github.com/zaheyak/Content-Studio-sub000/pkg/observability"
)

const mindMapCacheTTL = 300 // seconds

// PersistenceService stores mind maps as the mindmap format of a lesson and
// hands completed maps to the lesson workflow through the event publisher.
type PersistenceService struct {
	repo       ports.ContentRepository
	publisher  ports.EventPublisher
	cache      ports.Cache
	serializer *domainservices.Serializer
	metrics    *observability.Collector
	tracer     *observability.Tracer
	logger     *zap.Logger
}

// NewPersistenceService creates the persistence service. Cache, metrics and
// tracer may be nil.
func NewPersistenceService(
	repo ports.ContentRepository,
	publisher ports.EventPublisher,
	cache ports.Cache,
	cfg *config.DomainConfig,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *PersistenceService {
	return &PersistenceService{
		repo:       repo,
		publisher:  publisher,
		cache:      cache,
		serializer: domainservices.NewSerializer(cfg),
		metrics:    metrics,
		tracer:     tracer,
		logger:     logger,
	}
}

// Serializer exposes the graph codec used for stored payloads
func (s *PersistenceService) Serializer() *domainservices.Serializer {
	return s.serializer
}

// LoadData returns the stored payload of a lesson. found is false when the
// lesson has no mind map yet, in which case the payload is empty.
func (s *PersistenceService) LoadData(ctx context.Context, lessonID valueobjects.LessonID) (data content.MindMapData, found bool, err error) {
	key := cacheKey(lessonID)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			if d, ok := cached.(content.MindMapData); ok {
				s.countCache(true)
				return d, true, nil
			}
		}
		s.countCache(false)
	}

	err = s.tracer.Trace(ctx, "LoadMindMap", func(ctx context.Context) error {
		f, err := s.repo.GetFormat(ctx, lessonID, content.KindMindMap)
		if err != nil {
			return err
		}
		mm, ok := f.(content.MindMap)
		if !ok {
			return pkgerrors.NewInternalError(fmt.Sprintf("stored format is %s, not mindmap", f.Kind()))
		}
		data, found = mm.Data, true
		return nil
	})
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return content.EmptyMindMapData(), false, nil
		}
		s.logger.Error("Failed to load mind map",
			zap.String("lessonID", lessonID.String()),
			zap.Error(err),
		)
		return content.MindMapData{}, false, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, data, mindMapCacheTTL)
	}
	return data, true, nil
}

// Load restores the stored graph of a lesson, or an empty graph when none exists
func (s *PersistenceService) Load(ctx context.Context, lessonID valueobjects.LessonID) (*aggregates.Graph, error) {
	data, _, err := s.LoadData(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	return s.serializer.Deserialize(data), nil
}

// Save stores the payload and publishes the completion event. A failed
// publish fails the save so that a retry hands the map over again; storing
// is idempotent.
func (s *PersistenceService) Save(ctx context.Context, lessonID valueobjects.LessonID, data content.MindMapData, method content.Method) error {
	mm := content.MindMap{Method: method, Data: data}

	err := s.tracer.Trace(ctx, "SaveMindMap", func(ctx context.Context) error {
		return s.repo.SaveFormat(ctx, lessonID, mm)
	})
	if s.cache != nil {
		_ = s.cache.Delete(ctx, cacheKey(lessonID))
	}
	if err != nil {
		s.recordSave("failed")
		s.logger.Error("Failed to save mind map",
			zap.String("lessonID", lessonID.String()),
			zap.Error(err),
		)
		return pkgerrors.ErrSaveFailed.New().WithCause(err).WithDetail("lessonID", lessonID.String())
	}

	if err := s.publishCompleted(ctx, lessonID, mm); err != nil {
		s.recordSave("failed")
		return err
	}

	s.recordSave("saved")
	s.logger.Info("Mind map saved",
		zap.String("lessonID", lessonID.String()),
		zap.String("method", string(method)),
		zap.Int("nodes", data.NodeCount),
		zap.Int("connections", data.ConnectionCount),
	)
	return nil
}

// ListFormats returns every stored content format of a lesson
func (s *PersistenceService) ListFormats(ctx context.Context, lessonID valueobjects.LessonID) ([]content.Format, error) {
	return s.repo.ListFormats(ctx, lessonID)
}

func (s *PersistenceService) publishCompleted(ctx context.Context, lessonID valueobjects.LessonID, mm content.MindMap) error {
	if s.publisher == nil {
		return nil
	}

	event, err := events.NewMindMapCompleted(lessonID.String(), time.Now().UnixNano(), mm, time.Now())
	if err != nil {
		return pkgerrors.ErrInvalidPayload.New().WithCause(err)
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish mind map completion",
			zap.String("lessonID", lessonID.String()),
			zap.Error(err),
		)
		return pkgerrors.ErrEventPublishFailed.New().WithCause(err).WithDetail("lessonID", lessonID.String())
	}
	return nil
}

func (s *PersistenceService) recordSave(status string) {
	if s.metrics != nil {
		s.metrics.RecordSave(status)
	}
}

func (s *PersistenceService) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHits.Inc()
	} else {
		s.metrics.CacheMisses.Inc()
	}
}

func cacheKey(lessonID valueobjects.LessonID) string {
	return "mindmap:" + lessonID.String()
}
