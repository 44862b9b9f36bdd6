package valueobjects

import (
	"strings"

	pkgerrors "github.com/zaheyak/Content-Studio-sub000/pkg/errors"
)

// Label is the display text of a node. A label is never empty.
type Label struct {
	text string
}

// NewLabel trims the input and rejects text that is empty afterwards.
func NewLabel(text string) (Label, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Label{}, pkgerrors.NewValidationError("label cannot be empty")
	}
	return Label{text: text}, nil
}

// MustLabel is NewLabel for known-good constants.
func MustLabel(text string) Label {
	l, err := NewLabel(text)
	if err != nil {
		panic(err)
	}
	return l
}

// String returns the label text
func (l Label) String() string {
	return l.text
}

// Equals checks if two labels are equal
func (l Label) Equals(other Label) bool {
	return l.text == other.text
}
