package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zaheyak/Content-Studio-sub000/application/commands"
	"github.com/zaheyak/Content-Studio-sub000/application/commands/bus"
	"github.com/zaheyak/Content-Studio-sub000/application/ports"
	"github.com/zaheyak/Content-Studio-sub000/application/services"
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/validators"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
)

// MindMapCommandHandler handles lesson-level commands that need no session
type MindMapCommandHandler struct {
	persistence *services.PersistenceService
	generation  *services.GenerationService
	validator   *validators.MindMapValidator
	logger      *zap.Logger
}

// NewMindMapCommandHandler creates a new mind map command handler
func NewMindMapCommandHandler(
	persistence *services.PersistenceService,
	generation *services.GenerationService,
	logger *zap.Logger,
) *MindMapCommandHandler {
	return &MindMapCommandHandler{
		persistence: persistence,
		generation:  generation,
		validator:   validators.NewMindMapValidator(),
		logger:      logger,
	}
}

// Register binds the handler to its command types
func (h *MindMapCommandHandler) Register(b *bus.CommandBus) error {
	if err := b.Register(commands.SaveMindMapCommand{}, h); err != nil {
		return err
	}
	return b.Register(commands.GenerateForLessonCommand{}, h)
}

// Handle dispatches on the command type
func (h *MindMapCommandHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	switch c := cmd.(type) {
	case commands.SaveMindMapCommand:
		return h.save(ctx, c)
	case commands.GenerateForLessonCommand:
		return h.generate(ctx, c)
	default:
		return nil, fmt.Errorf("unexpected command %T", cmd)
	}
}

func (h *MindMapCommandHandler) save(ctx context.Context, c commands.SaveMindMapCommand) (interface{}, error) {
	if err := h.validator.Validate(c.Data); err != nil {
		return nil, err
	}
	lessonID, err := valueobjects.NewLessonID(c.LessonID)
	if err != nil {
		return nil, err
	}

	method := c.Method
	if method == "" {
		method = content.MethodManual
	}

	// Round-trip through the graph so counts and colors are derived, never trusted
	serializer := h.persistence.Serializer()
	data := serializer.Serialize(serializer.Deserialize(c.Data))

	if err := h.persistence.Save(ctx, lessonID, data, method); err != nil {
		return nil, err
	}
	return data, nil
}

func (h *MindMapCommandHandler) generate(ctx context.Context, c commands.GenerateForLessonCommand) (interface{}, error) {
	lessonID, err := valueobjects.NewLessonID(c.LessonID)
	if err != nil {
		return nil, err
	}

	result := h.generation.Generate(ctx, ports.GenerationRequest{Prompt: c.Prompt, Context: c.Context})
	out := &commands.GenerateForLessonResult{
		LessonID: lessonID.String(),
		Method:   result.Method,
		Data:     h.persistence.Serializer().Serialize(result.Graph),
	}

	if c.Store {
		if err := h.persistence.Save(ctx, lessonID, out.Data, out.Method); err != nil {
			h.logger.Warn("Generated mind map could not be stored",
				zap.String("lessonID", lessonID.String()),
				zap.Error(err),
			)
			return out, nil
		}
		out.Stored = true
	}
	return out, nil
}
