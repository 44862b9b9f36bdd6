package valueobjects

import (
	"strings"

	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
)

// LessonID identifies the lesson a mind map belongs to. Lesson ids are
// assigned by the course workflow and are opaque here.
type LessonID struct {
	value string
}

// NewLessonID validates a lesson id
func NewLessonID(id string) (LessonID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return LessonID{}, pkgerrors.NewValidationError("lesson ID cannot be empty")
	}
	if strings.ContainsAny(id, "#/") {
		return LessonID{}, pkgerrors.NewValidationError("lesson ID contains reserved characters")
	}
	return LessonID{value: id}, nil
}

// String returns the string representation of the LessonID
func (id LessonID) String() string {
	return id.value
}

// IsZero checks if the LessonID is the zero value
func (id LessonID) IsZero() bool {
	return id.value == ""
}
