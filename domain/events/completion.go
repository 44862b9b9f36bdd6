package events

import (
	"time"

	"github.com/zaheyak/Content-Studio-sub000/domain/content"
)

// MindMapCompletedType is the event type published to the content workflow
const MindMapCompletedType = "mindmap.completed"

// MindMapCompleted hands a finished mind map to the owning lesson workflow,
// which stores it as the mindmap format of the lesson.
type MindMapCompleted struct {
	BaseEvent
	LessonID string           `json:"lesson_id"`
	Content  content.Envelope `json:"content"`
}

// NewMindMapCompleted wraps the mind map in its content envelope. Completed is
// true exactly when the map has at least one node.
func NewMindMapCompleted(lessonID string, version int64, mindMap content.MindMap, timestamp time.Time) (MindMapCompleted, error) {
	env, err := content.ToEnvelope(mindMap)
	if err != nil {
		return MindMapCompleted{}, err
	}
	return MindMapCompleted{
		BaseEvent: newBase(lessonID, MindMapCompletedType, version, timestamp),
		LessonID:  lessonID,
		Content:   env,
	}, nil
}
