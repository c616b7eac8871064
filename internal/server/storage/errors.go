package storage

import "errors"

// Common storage errors
var (
	// ErrRecordNotFound indicates that sync record was not found
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidChange indicates that change cannot be applied (unknown table or operation)
	ErrInvalidChange = errors.New("invalid change")
)
