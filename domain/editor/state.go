package editor

import "github.com/zaheyak/Content-Studio-sub000/domain/core/valueobjects"

// State is the pointer interaction mode of an editor.
type State string

const (
	StateIdle         State = "idle"
	StatePanning      State = "panning"
	StateDraggingNode State = "dragging_node"
	StateEditingLabel State = "editing_label"
)

// InputKind tags an input event
type InputKind string

const (
	InputPress      InputKind = "press"
	InputMove       InputKind = "move"
	InputRelease    InputKind = "release"
	InputWheel      InputKind = "wheel"
	InputType       InputKind = "type"
	InputCommit     InputKind = "commit"
	InputCancel     InputKind = "cancel"
	InputDelete     InputKind = "delete"
	InputConnect    InputKind = "connect"
	InputDisconnect InputKind = "disconnect"
	InputResetView  InputKind = "reset_view"
)

// Input is one pointer, wheel or keyboard event. Point is in screen space.
type Input struct {
	Kind   InputKind
	Point  valueobjects.Position
	DeltaY float64
	Text   string
	From   valueobjects.NodeID
	To     valueobjects.NodeID
}

// Snapshot is a read-only view of the controller for status reporting
type Snapshot struct {
	State      State  `json:"state"`
	TargetID   string `json:"targetId,omitempty"`
	Draft      string `json:"draft,omitempty"`
	SelectedID string `json:"selectedId,omitempty"`
	Generating bool   `json:"generating"`
	Version    int64  `json:"version"`
}
