package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken
	ErrDuplicate = errors.New("record already exists")
	// ErrStale is returned when a record changed since it was read
	ErrStale = errors.New("record changed concurrently")
)
