package handlers

import (
	"context"
	"fmt"

	"github.com/zaheyak/Content-Studio-sub000/application/commands"
	"github.com/zaheyak/Content-Studio-sub000/application/commands/bus"
	"github.com/zaheyak/Content-Studio-sub000/application/ports"
	"github.com/zaheyak/Content-Studio-sub000/application/services"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	"github.com/zaheyak/Content-Studio-sub000/domain/editor"
)

// SessionCommandHandler handles every command addressed to an editor session
type SessionCommandHandler struct {
	sessions *services.SessionManager
}

// NewSessionCommandHandler creates a new session command handler
func NewSessionCommandHandler(sessions *services.SessionManager) *SessionCommandHandler {
	return &SessionCommandHandler{sessions: sessions}
}

// Register binds the handler to its command types
func (h *SessionCommandHandler) Register(b *bus.CommandBus) error {
	for _, cmd := range []bus.Command{
		commands.OpenSessionCommand{},
		commands.ApplyInputCommand{},
		commands.GenerateMindMapCommand{},
		commands.SaveSessionCommand{},
		commands.RetrySaveCommand{},
		commands.CloseSessionCommand{},
	} {
		if err := b.Register(cmd, h); err != nil {
			return err
		}
	}
	return nil
}

// Handle dispatches on the command type and returns the resulting session view
func (h *SessionCommandHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	switch c := cmd.(type) {
	case commands.OpenSessionCommand:
		lessonID, err := valueobjects.NewLessonID(c.LessonID)
		if err != nil {
			return nil, err
		}
		return h.sessions.Open(ctx, lessonID)

	case commands.ApplyInputCommand:
		inputs := make([]editor.Input, len(c.Inputs))
		for i, e := range c.Inputs {
			inputs[i] = e.ToInput()
		}
		return h.sessions.ApplyInputs(c.SessionID, inputs)

	case commands.GenerateMindMapCommand:
		return h.sessions.Generate(c.SessionID, ports.GenerationRequest{Prompt: c.Prompt, Context: c.Context})

	case commands.SaveSessionCommand:
		return h.sessions.Save(c.SessionID)

	case commands.RetrySaveCommand:
		return h.sessions.RetrySave(c.SessionID)

	case commands.CloseSessionCommand:
		return nil, h.sessions.Close(c.SessionID)

	default:
		return nil, fmt.Errorf("unexpected command %T", cmd)
	}
}
