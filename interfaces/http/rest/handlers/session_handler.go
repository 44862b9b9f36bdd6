package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/commands"
	"github.com/zaheyak/Content-Studio-sub000/application/commands/bus"
	"github.com/zaheyak/Content-Studio-sub000/application/queries"
	querybus "github.com/zaheyak/Content-Studio-sub000/application/queries/bus"
	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
)

// SessionHandler drives editor sessions
type SessionHandler struct {
	base
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errHandler *pkgerrors.ErrorHandler,
	maxBodyBytes int64,
	logger *zap.Logger,
) *SessionHandler {
	return &SessionHandler{base: newBase(commandBus, queryBus, errHandler, maxBodyBytes, logger)}
}

// OpenSessionRequest is the body of POST /sessions
type OpenSessionRequest struct {
	LessonID string `json:"lessonId"`
}

// ApplyInputRequest is the body of POST /sessions/{sessionID}/input
type ApplyInputRequest struct {
	Inputs []commands.InputEvent `json:"inputs"`
}

// Open handles POST /sessions
func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.send(w, r, http.StatusCreated, commands.OpenSessionCommand{LessonID: req.LessonID})
}

// Get handles GET /sessions/{sessionID}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetSessionQuery{SessionID: chi.URLParam(r, "sessionID")})
}

// ApplyInput handles POST /sessions/{sessionID}/input
func (h *SessionHandler) ApplyInput(w http.ResponseWriter, r *http.Request) {
	var req ApplyInputRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.send(w, r, http.StatusOK, commands.ApplyInputCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		Inputs:    req.Inputs,
	})
}

// Render handles GET /sessions/{sessionID}/render
func (h *SessionHandler) Render(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.RenderSessionQuery{SessionID: chi.URLParam(r, "sessionID")})
}

// Generate handles POST /sessions/{sessionID}/generate. The result lands in
// the session later; clients poll the session state.
func (h *SessionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.send(w, r, http.StatusAccepted, commands.GenerateMindMapCommand{
		SessionID: chi.URLParam(r, "sessionID"),
		Prompt:    req.Prompt,
		Context:   req.Context,
	})
}

// Save handles POST /sessions/{sessionID}/save
func (h *SessionHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, http.StatusAccepted, commands.SaveSessionCommand{SessionID: chi.URLParam(r, "sessionID")})
}

// RetrySave handles POST /sessions/{sessionID}/save/retry
func (h *SessionHandler) RetrySave(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, http.StatusAccepted, commands.RetrySaveCommand{SessionID: chi.URLParam(r, "sessionID")})
}

// Export handles GET /sessions/{sessionID}/export?format=svg|png
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	h.export(w, r, queries.ExportSnapshotQuery{SessionID: sessionID, Format: exportFormat(r)}, "session-"+sessionID)
}

// Close handles DELETE /sessions/{sessionID}
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	if _, err := h.commandBus.Send(r.Context(), commands.CloseSessionCommand{SessionID: chi.URLParam(r, "sessionID")}); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) send(w http.ResponseWriter, r *http.Request, status int, cmd bus.Command) {
	view, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, status, view)
}

func (h *SessionHandler) ask(w http.ResponseWriter, r *http.Request, q querybus.Query) {
	result, err := h.queryBus.Ask(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, result)
}
