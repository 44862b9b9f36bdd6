package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/commands"
	"github.com/zaheyak/Content-Studio-sub000/application/commands/bus"
	"github.com/zaheyak/Content-Studio-sub000/application/queries"
	querybus "github.com/zaheyak/Content-Studio-sub000/application/queries/bus"
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
)

// MindMapHandler serves the stored mind maps of lessons
type MindMapHandler struct {
	base
}

// NewMindMapHandler creates a new mind map handler
func NewMindMapHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errHandler *pkgerrors.ErrorHandler,
	maxBodyBytes int64,
	logger *zap.Logger,
) *MindMapHandler {
	return &MindMapHandler{base: newBase(commandBus, queryBus, errHandler, maxBodyBytes, logger)}
}

// SaveMindMapRequest is the body of PUT /lessons/{lessonID}/mindmap
type SaveMindMapRequest struct {
	Method content.Method      `json:"method"`
	Data   content.MindMapData `json:"data"`
}

// GenerateRequest is the body of the generation endpoints
type GenerateRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
	Store   bool   `json:"store,omitempty"`
}

// GetMindMap handles GET /lessons/{lessonID}/mindmap
func (h *MindMapHandler) GetMindMap(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetMindMapQuery{LessonID: chi.URLParam(r, "lessonID")})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, result)
}

// SaveMindMap handles PUT /lessons/{lessonID}/mindmap
func (h *MindMapHandler) SaveMindMap(w http.ResponseWriter, r *http.Request) {
	var req SaveMindMapRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	lessonID := chi.URLParam(r, "lessonID")
	data, err := h.commandBus.Send(r.Context(), commands.SaveMindMapCommand{
		LessonID: lessonID,
		Method:   req.Method,
		Data:     req.Data,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info("Mind map stored", zap.String("lessonID", lessonID))
	h.respond(w, r, http.StatusOK, map[string]interface{}{
		"lessonId": lessonID,
		"data":     data,
	})
}

// ListFormats handles GET /lessons/{lessonID}/formats
func (h *MindMapHandler) ListFormats(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListFormatsQuery{LessonID: chi.URLParam(r, "lessonID")})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, result)
}

// Generate handles POST /lessons/{lessonID}/mindmap/generate. It always
// answers with a graph; generator failures show up only as the fallback
// method.
func (h *MindMapHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.GenerateForLessonCommand{
		LessonID: chi.URLParam(r, "lessonID"),
		Prompt:   req.Prompt,
		Context:  req.Context,
		Store:    req.Store,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, result)
}

// Export handles GET /lessons/{lessonID}/mindmap/export?format=svg|png
func (h *MindMapHandler) Export(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonID")
	h.export(w, r, queries.ExportSnapshotQuery{LessonID: lessonID, Format: exportFormat(r)}, "mindmap-"+lessonID)
}

func (b base) export(w http.ResponseWriter, r *http.Request, q queries.ExportSnapshotQuery, name string) {
	result, err := b.queryBus.Ask(r.Context(), q)
	if err != nil {
		b.fail(w, r, err)
		return
	}
	snapshot := result.(*queries.ExportSnapshotResult)

	w.Header().Set("Content-Type", snapshot.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(snapshot.Body)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"."+q.Format))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(snapshot.Body); err != nil {
		b.logger.Warn("Failed to write snapshot", zap.Error(err))
	}
}

func exportFormat(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	return "svg"
}
