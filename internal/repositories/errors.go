package repositories

import "errors"

var (
	// ErrNotFound reports that no record matched the query.
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports that a write collided with a uniqueness constraint.
	ErrConflict = errors.New("record conflict")
)
