package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates an insert collided with an existing entity.
	ErrAlreadyExists = errors.New("already exists")
)
