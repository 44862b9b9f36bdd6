package handlers

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/ports"
	"github.com/zaheyak/Content-Studio-sub000/application/queries"
	"github.com/zaheyak/Content-Studio-sub000/application/queries/bus"
	"github.com/zaheyak/Content-Studio-sub000/application/services"
	"github.com/zaheyak/Content-Studio-sub000/domain/config"
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	domainservices "github.com/zaheyak/Content-Studio-sub000/domain/services"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
)

// MindMapQueryHandler answers read queries about lessons and sessions
type MindMapQueryHandler struct {
	persistence *services.PersistenceService
	sessions    *services.SessionManager
	renderer    *domainservices.Renderer
	viewport    valueobjects.Viewport
	exporters   map[string]ports.SnapshotRenderer
	logger      *zap.Logger
}

// NewMindMapQueryHandler creates a new query handler
func NewMindMapQueryHandler(
	cfg *config.DomainConfig,
	persistence *services.PersistenceService,
	sessions *services.SessionManager,
	exporters []ports.SnapshotRenderer,
	logger *zap.Logger,
) *MindMapQueryHandler {
	byFormat := make(map[string]ports.SnapshotRenderer, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}
	return &MindMapQueryHandler{
		persistence: persistence,
		sessions:    sessions,
		renderer:    domainservices.NewRenderer(cfg),
		viewport: valueobjects.IdentityViewport(valueobjects.ZoomPolicy{
			Min:       cfg.MinZoom,
			Max:       cfg.MaxZoom,
			InFactor:  cfg.ZoomInFactor,
			OutFactor: cfg.ZoomOutFactor,
		}),
		exporters: byFormat,
		logger:    logger,
	}
}

// Register binds the handler to its query types
func (h *MindMapQueryHandler) Register(b *bus.QueryBus, wrap ...func(bus.QueryHandler) bus.QueryHandler) error {
	var handler bus.QueryHandler = h
	for i := len(wrap) - 1; i >= 0; i-- {
		handler = wrap[i](handler)
	}
	for _, q := range []bus.Query{
		queries.GetMindMapQuery{},
		queries.ListFormatsQuery{},
		queries.ExportSnapshotQuery{},
		queries.GetSessionQuery{},
		queries.RenderSessionQuery{},
	} {
		if err := b.Register(q, handler); err != nil {
			return err
		}
	}
	return nil
}

// Handle dispatches on the query type
func (h *MindMapQueryHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	switch q := query.(type) {
	case queries.GetMindMapQuery:
		return h.getMindMap(ctx, q)
	case queries.ListFormatsQuery:
		return h.listFormats(ctx, q)
	case queries.ExportSnapshotQuery:
		return h.export(ctx, q)
	case queries.GetSessionQuery:
		return h.sessions.View(q.SessionID)
	case queries.RenderSessionQuery:
		return h.sessions.Render(q.SessionID)
	default:
		return nil, fmt.Errorf("unexpected query %T", query)
	}
}

func (h *MindMapQueryHandler) getMindMap(ctx context.Context, q queries.GetMindMapQuery) (*queries.GetMindMapResult, error) {
	lessonID, err := valueobjects.NewLessonID(q.LessonID)
	if err != nil {
		return nil, err
	}
	data, found, err := h.persistence.LoadData(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	// Normalize through the graph so colors follow the current palette
	serializer := h.persistence.Serializer()
	return &queries.GetMindMapResult{
		LessonID: lessonID.String(),
		Found:    found,
		Data:     serializer.Serialize(serializer.Deserialize(data)),
	}, nil
}

func (h *MindMapQueryHandler) listFormats(ctx context.Context, q queries.ListFormatsQuery) (*queries.ListFormatsResult, error) {
	lessonID, err := valueobjects.NewLessonID(q.LessonID)
	if err != nil {
		return nil, err
	}
	formats, err := h.persistence.ListFormats(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	result := &queries.ListFormatsResult{LessonID: lessonID.String(), Formats: make([]content.Envelope, 0, len(formats))}
	for _, f := range formats {
		env, err := content.ToEnvelope(f)
		if err != nil {
			h.logger.Warn("Skipping unencodable content format",
				zap.String("lessonID", lessonID.String()),
				zap.String("type", string(f.Kind())),
				zap.Error(err),
			)
			continue
		}
		result.Formats = append(result.Formats, env)
	}
	return result, nil
}

func (h *MindMapQueryHandler) export(ctx context.Context, q queries.ExportSnapshotQuery) (*queries.ExportSnapshotResult, error) {
	exporter, ok := h.exporters[q.Format]
	if !ok {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("export format %q is not available", q.Format))
	}

	var scene domainservices.Scene
	if q.SessionID != "" {
		view, err := h.sessions.Render(q.SessionID)
		if err != nil {
			return nil, err
		}
		scene = view.Scene
	} else {
		lessonID, err := valueobjects.NewLessonID(q.LessonID)
		if err != nil {
			return nil, err
		}
		data, found, err := h.persistence.LoadData(ctx, lessonID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, pkgerrors.ErrMindMapNotFound
		}
		scene = h.renderer.Render(h.persistence.Serializer().Deserialize(data), h.viewport)
	}

	var buf bytes.Buffer
	if err := exporter.Render(&buf, scene); err != nil {
		return nil, pkgerrors.NewInternalError("snapshot rendering failed").WithCause(err)
	}
	return &queries.ExportSnapshotResult{ContentType: exporter.ContentType(), Body: buf.Bytes()}, nil
}
