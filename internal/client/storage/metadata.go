package storage

import (
	"context"
	"time"
)

// MetadataStorage defines interface for storing client sync metadata
type MetadataStorage interface {
	// SaveWatermark saves the server timestamp through which pull has incorporated changes
	SaveWatermark(ctx context.Context, watermark time.Time) error

	// GetWatermark retrieves the pull watermark
	// Returns zero time if no pull has been performed yet
	GetWatermark(ctx context.Context) (time.Time, error)

	// SaveLastPushTimestamp saves the server timestamp of the last processed push batch
	SaveLastPushTimestamp(ctx context.Context, timestamp time.Time) error

	// GetLastPushTimestamp retrieves the last push timestamp, zero if none
	GetLastPushTimestamp(ctx context.Context) (time.Time, error)
}
