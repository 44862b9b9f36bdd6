// Package memory provides an in-process content store used for local runs and
// tests when no DynamoDB table is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
)

// ContentRepository keeps formats in a map keyed by lesson. Stored values
// are copied in and out through their envelopes so callers never share
// slices with the store.
type ContentRepository struct {
	mu      sync.RWMutex
	lessons map[string]map[content.Kind]content.Envelope
	logger  *zap.Logger
}

// NewContentRepository creates an empty repository
func NewContentRepository(logger *zap.Logger) *ContentRepository {
	return &ContentRepository{
		lessons: make(map[string]map[content.Kind]content.Envelope),
		logger:  logger,
	}
}

func (r *ContentRepository) SaveFormat(ctx context.Context, lessonID valueobjects.LessonID, format content.Format) error {
	env, err := content.ToEnvelope(format)
	if err != nil {
		return pkgerrors.ErrInvalidPayload.New().WithCause(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	formats, ok := r.lessons[lessonID.String()]
	if !ok {
		formats = make(map[content.Kind]content.Envelope)
		r.lessons[lessonID.String()] = formats
	}
	formats[format.Kind()] = env

	r.logger.Debug("Content format stored in memory",
		zap.String("lessonID", lessonID.String()),
		zap.String("type", string(format.Kind())),
	)
	return nil
}

func (r *ContentRepository) GetFormat(ctx context.Context, lessonID valueobjects.LessonID, kind content.Kind) (content.Format, error) {
	r.mu.RLock()
	env, ok := r.lessons[lessonID.String()][kind]
	r.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("%s content of lesson %s", kind, lessonID))
	}
	return content.FromEnvelope(env)
}

// ListFormats returns the stored formats in display order
func (r *ContentRepository) ListFormats(ctx context.Context, lessonID valueobjects.LessonID) ([]content.Format, error) {
	r.mu.RLock()
	stored := r.lessons[lessonID.String()]
	envs := make([]content.Envelope, 0, len(stored))
	for _, kind := range content.Kinds {
		if env, ok := stored[kind]; ok {
			envs = append(envs, env)
		}
	}
	r.mu.RUnlock()

	formats := make([]content.Format, 0, len(envs))
	for _, env := range envs {
		f, err := content.FromEnvelope(env)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

func (r *ContentRepository) DeleteFormat(ctx context.Context, lessonID valueobjects.LessonID, kind content.Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lessons[lessonID.String()], kind)
	return nil
}
