package commands

import (
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	"github.com/zaheyak/Content-Studio-sub000/pkg/utils"
)

// SaveMindMapCommand stores a complete mind map payload for a lesson without
// an editor session
type SaveMindMapCommand struct {
	LessonID string              `json:"lessonId" validate:"required,max=128"`
	Method   content.Method      `json:"method" validate:"omitempty,oneof=manual generated fallback upload"`
	Data     content.MindMapData `json:"data"`
}

// Validate validates the command
func (c SaveMindMapCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	_, err := valueobjects.NewLessonID(c.LessonID)
	return err
}

// GenerateForLessonCommand produces a mind map for a lesson and stores it
type GenerateForLessonCommand struct {
	LessonID string `json:"lessonId" validate:"required,max=128"`
	Prompt   string `json:"prompt" validate:"max=10000"`
	Context  string `json:"context" validate:"max=50000"`
	Store    bool   `json:"store"`
}

// Validate validates the command
func (c GenerateForLessonCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	_, err := valueobjects.NewLessonID(c.LessonID)
	return err
}

// GenerateForLessonResult is the generated payload and how it was made
type GenerateForLessonResult struct {
	LessonID string              `json:"lessonId"`
	Method   content.Method      `json:"method"`
	Data     content.MindMapData `json:"data"`
	Stored   bool                `json:"stored"`
}
