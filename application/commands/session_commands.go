package commands

import (
	"strings"

	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	"github.com/zaheyak/Content-Studio-sub000/domain/editor"
	"github.com/zaheyak/Content-Studio-sub000/pkg/utils"
)

// OpenSessionCommand opens an editor on a lesson's mind map
type OpenSessionCommand struct {
	LessonID string `json:"lessonId" validate:"required,max=128"`
}

// Validate validates the command
func (c OpenSessionCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	_, err := valueobjects.NewLessonID(c.LessonID)
	return err
}

// InputEvent is the wire form of one pointer, wheel or keyboard input
type InputEvent struct {
	Kind   string  `json:"kind" validate:"required,oneof=press move release wheel type commit cancel delete connect disconnect reset_view"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaY float64 `json:"deltaY"`
	Text   string  `json:"text" validate:"max=500"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

// ToInput converts the wire form into a controller input. Unknown node ids
// stay opaque; the graph ignores them.
func (e InputEvent) ToInput() editor.Input {
	in := editor.Input{
		Kind:   editor.InputKind(e.Kind),
		Point:  valueobjects.NewPosition(e.X, e.Y),
		DeltaY: e.DeltaY,
		Text:   e.Text,
	}
	if from, err := valueobjects.NewNodeIDFromString(strings.TrimSpace(e.From)); err == nil {
		in.From = from
	}
	if to, err := valueobjects.NewNodeIDFromString(strings.TrimSpace(e.To)); err == nil {
		in.To = to
	}
	return in
}

// ApplyInputCommand feeds a batch of inputs to a session in order
type ApplyInputCommand struct {
	SessionID string       `json:"sessionId" validate:"required"`
	Inputs    []InputEvent `json:"inputs" validate:"required,min=1,max=500,dive"`
}

// Validate validates the command
func (c ApplyInputCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// GenerateMindMapCommand starts a background generation in a session
type GenerateMindMapCommand struct {
	SessionID string `json:"sessionId" validate:"required"`
	Prompt    string `json:"prompt" validate:"max=10000"`
	Context   string `json:"context" validate:"max=50000"`
}

// Validate validates the command
func (c GenerateMindMapCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// SaveSessionCommand stores a session's graph in the background
type SaveSessionCommand struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// Validate validates the command
func (c SaveSessionCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// RetrySaveCommand re-submits the payload of a session's failed save
type RetrySaveCommand struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// Validate validates the command
func (c RetrySaveCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// CloseSessionCommand ends a session
type CloseSessionCommand struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// Validate validates the command
func (c CloseSessionCommand) Validate() error {
	return utils.ValidateStruct(c)
}
