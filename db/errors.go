package db

import "errors"

var (
	// ErrNotFound means a referenced deal, LP, vote or founder does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput means a required identifying field was missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict means the write would leave dependent rows behind.
	ErrConflict = errors.New("conflict")
)
