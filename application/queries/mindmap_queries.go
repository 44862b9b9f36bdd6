package queries

import (
	"github.com/zaheyak/Content-Studio-sub000/domain/content"
	"github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"
	"github.com/zaheyak/Content-Studio-sub000/pkg/utils"
)

// GetMindMapQuery loads the stored mind map of a lesson
type GetMindMapQuery struct {
	LessonID string `validate:"required,max=128"`
}

// Validate validates the query
func (q GetMindMapQuery) Validate() error {
	return validateLesson(q, q.LessonID)
}

// GetMindMapResult is the stored payload. Found is false for lessons without
// a mind map, whose payload is empty.
type GetMindMapResult struct {
	LessonID string              `json:"lessonId"`
	Found    bool                `json:"found"`
	Data     content.MindMapData `json:"data"`
}

// ListFormatsQuery lists every stored content format of a lesson
type ListFormatsQuery struct {
	LessonID string `validate:"required,max=128"`
}

// Validate validates the query
func (q ListFormatsQuery) Validate() error {
	return validateLesson(q, q.LessonID)
}

// ListFormatsResult holds the formats in their wire envelope
type ListFormatsResult struct {
	LessonID string             `json:"lessonId"`
	Formats  []content.Envelope `json:"formats"`
}

// ExportSnapshotQuery renders a mind map as an image. With SessionID set the
// live session is drawn through its viewport; otherwise the lesson's stored
// map is drawn at identity.
type ExportSnapshotQuery struct {
	LessonID  string `validate:"required_without=SessionID,max=128"`
	SessionID string `validate:"required_without=LessonID"`
	Format    string `validate:"required,oneof=svg png"`
}

// Validate validates the query
func (q ExportSnapshotQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return err
	}
	if q.SessionID != "" {
		return nil
	}
	_, err := valueobjects.NewLessonID(q.LessonID)
	return err
}

// ExportSnapshotResult is an encoded image
type ExportSnapshotResult struct {
	ContentType string
	Body        []byte
}

func validateLesson(q interface{}, lessonID string) error {
	if err := utils.ValidateStruct(q); err != nil {
		return err
	}
	_, err := valueobjects.NewLessonID(lessonID)
	return err
}
