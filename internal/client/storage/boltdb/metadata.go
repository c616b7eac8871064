package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gymkeeper/internal/client/storage"
)

const (
	keyWatermark         = "last_pull_watermark"
	keyLastPushTimestamp = "last_push_timestamp"
)

// SaveWatermark saves the pull watermark
func (s *Storage) SaveWatermark(ctx context.Context, watermark time.Time) error {
	return s.saveTimestamp(keyWatermark, watermark)
}

// GetWatermark retrieves the pull watermark
// Returns zero time if no pull has been performed yet
func (s *Storage) GetWatermark(ctx context.Context) (time.Time, error) {
	return s.getTimestamp(keyWatermark)
}

// SaveLastPushTimestamp saves the server timestamp of the last processed push batch
func (s *Storage) SaveLastPushTimestamp(ctx context.Context, timestamp time.Time) error {
	return s.saveTimestamp(keyLastPushTimestamp, timestamp)
}

// GetLastPushTimestamp retrieves the last push timestamp
func (s *Storage) GetLastPushTimestamp(ctx context.Context) (time.Time, error) {
	return s.getTimestamp(keyLastPushTimestamp)
}

func (s *Storage) saveTimestamp(key string, ts time.Time) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Храним как unix nano в big-endian
		tsBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(tsBytes, uint64(ts.UnixNano()))

		if err := bucket.Put([]byte(key), tsBytes); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}

		return nil
	})
}

func (s *Storage) getTimestamp(key string) (time.Time, error) {
	if s.closed.Load() {
		return time.Time{}, storage.ErrStorageClosed
	}

	var ts time.Time

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		tsBytes := bucket.Get([]byte(key))
		if tsBytes == nil {
			// Значение еще не сохранялось
			return nil
		}

		ts = time.Unix(0, int64(binary.BigEndian.Uint64(tsBytes))).UTC()
		return nil
	})

	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return ts, nil
}
