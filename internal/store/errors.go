package store

import "errors"

// Errors returned by store operations.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrDuplicate          = errors.New("record already exists")
)
