package queries

import "github.com/zaheyak/Content-Studio-sub000/pkg/utils"

// GetSessionQuery reports the state of an editor session
type GetSessionQuery struct {
	SessionID string `validate:"required"`
}

// Validate validates the query
func (q GetSessionQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// RenderSessionQuery returns the drawing list of a session
type RenderSessionQuery struct {
	SessionID string `validate:"required"`
}

// Validate validates the query
func (q RenderSessionQuery) Validate() error {
	return utils.ValidateStruct(q)
}
