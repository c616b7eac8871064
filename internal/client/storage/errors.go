package storage

import "errors"

// Common client storage errors
var (
	// ErrRecordNotFound indicates that local record was not found
	ErrRecordNotFound = errors.New("record not found")

	// ErrOutboxItemNotFound indicates that outbox item was not found
	ErrOutboxItemNotFound = errors.New("outbox item not found")

	// ErrInvalidTransition indicates a forbidden outbox status transition
	ErrInvalidTransition = errors.New("invalid outbox status transition")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrStorageLocked indicates that the database file is held by another process
	ErrStorageLocked = errors.New("storage is locked by another process")
)
