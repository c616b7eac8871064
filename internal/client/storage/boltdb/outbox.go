package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gymkeeper/internal/client/storage"
	"github.com/iudanet/gymkeeper/internal/models"
)

// itemKey ключ элемента очереди: big-endian id, курсор обходит элементы в порядке постановки
func itemKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func recordKey(table models.TableName, clientID string) string {
	return string(table) + "/" + clientID
}

// Enqueue appends a new pending item
func (s *Storage) Enqueue(ctx context.Context, req storage.EnqueueRequest) (*models.OutboxItem, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	var item *models.OutboxItem
	err := s.update(func(tx *bbolt.Tx) error {
		var err error
		item, err = s.putNewItem(tx, req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue: %w", err)
	}

	return item, nil
}

func (s *Storage) putNewItem(tx *bbolt.Tx, req storage.EnqueueRequest) (*models.OutboxItem, error) {
	if !req.Table.Valid() {
		return nil, fmt.Errorf("unknown table %q", req.Table)
	}
	if !req.Operation.Valid() {
		return nil, fmt.Errorf("unsupported operation %q", req.Operation)
	}
	if req.RecordClientID == "" {
		return nil, fmt.Errorf("record client_id is required")
	}

	bucket := tx.Bucket(bucketOutbox)
	id, err := bucket.NextSequence()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate outbox id: %w", err)
	}

	item := &models.OutboxItem{
		ID:              id,
		CreatedAt:       s.clock.Now(),
		ClientUpdatedAt: req.ClientUpdatedAt,
		Table:           req.Table,
		Operation:       req.Operation,
		RecordClientID:  req.RecordClientID,
		Status:          models.OutboxStatusPending,
		Payload:         req.Payload,
		MaxRetries:      models.DefaultMaxRetries,
	}

	if err := putItem(bucket, item); err != nil {
		return nil, err
	}

	return item, nil
}

// DequeuePending returns pending items in id order, table "" means all tables
func (s *Storage) DequeuePending(ctx context.Context, table models.TableName) ([]*models.OutboxItem, error) {
	return s.listItems(func(item *models.OutboxItem) bool {
		return item.Status == models.OutboxStatusPending && (table == "" || item.Table == table)
	})
}

// ListByStatus returns items with given status in id order
func (s *Storage) ListByStatus(ctx context.Context, status models.OutboxStatus) ([]*models.OutboxItem, error) {
	return s.listItems(func(item *models.OutboxItem) bool {
		return item.Status == status
	})
}

// GetOutboxItem retrieves an item by id
func (s *Storage) GetOutboxItem(ctx context.Context, id uint64) (*models.OutboxItem, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	var item *models.OutboxItem
	err := s.view(func(tx *bbolt.Tx) error {
		var err error
		item, err = getItem(tx.Bucket(bucketOutbox), id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// Mark performs a status transition validated by models.CanTransition
func (s *Storage) Mark(ctx context.Context, id uint64, status models.OutboxStatus, errMsg string) error {
	return s.updateItem(id, status, func(item *models.OutboxItem) {
		item.ErrorMessage = errMsg
		if status == models.OutboxStatusInProgress {
			now := s.clock.Now()
			item.LastAttemptedAt = &now
		}
	})
}

// Reschedule returns an in_progress item to pending with backoff
func (s *Storage) Reschedule(ctx context.Context, id uint64, retryCount int, nextAttemptAt time.Time, errMsg string) error {
	return s.updateItem(id, models.OutboxStatusPending, func(item *models.OutboxItem) {
		item.RetryCount = retryCount
		item.NextAttemptAt = &nextAttemptAt
		item.ErrorMessage = errMsg
	})
}

// Fail marks an in_progress item as permanently failed
func (s *Storage) Fail(ctx context.Context, id uint64, retryCount int, errMsg string) error {
	return s.updateItem(id, models.OutboxStatusFailed, func(item *models.OutboxItem) {
		item.RetryCount = retryCount
		item.NextAttemptAt = nil
		item.ErrorMessage = errMsg
	})
}

// Requeue returns a failed item to pending with a fresh retry budget
func (s *Storage) Requeue(ctx context.Context, id uint64) error {
	return s.updateItem(id, models.OutboxStatusPending, func(item *models.OutboxItem) {
		item.RetryCount = 0
		item.NextAttemptAt = nil
		item.ErrorMessage = ""
	})
}

// ClaimPending marks eligible pending items in_progress within one transaction.
// На запись приходится не более одной "волны": если у записи уже есть in_progress элемент
// или ее ранний элемент еще ждет backoff, более поздние элементы этой записи не берутся.
func (s *Storage) ClaimPending(ctx context.Context, now time.Time) ([]*models.OutboxItem, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	var claimed []*models.OutboxItem

	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOutbox)

		var items []*models.OutboxItem
		blocked := make(map[string]bool)

		err := bucket.ForEach(func(k, v []byte) error {
			item := &models.OutboxItem{}
			if err := json.Unmarshal(v, item); err != nil {
				return fmt.Errorf("failed to unmarshal outbox item: %w", err)
			}
			if item.Status == models.OutboxStatusInProgress {
				blocked[recordKey(item.Table, item.RecordClientID)] = true
			}
			items = append(items, item)
			return nil
		})
		if err != nil {
			return err
		}

		for _, item := range items {
			if item.Status != models.OutboxStatusPending {
				continue
			}

			key := recordKey(item.Table, item.RecordClientID)
			if blocked[key] {
				continue
			}
			if !item.Eligible(now) {
				blocked[key] = true
				continue
			}

			attempted := now
			item.Status = models.OutboxStatusInProgress
			item.LastAttemptedAt = &attempted
			if err := putItem(bucket, item); err != nil {
				return err
			}
			claimed = append(claimed, item)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending items: %w", err)
	}

	return claimed, nil
}

// CountByStatus returns number of items per status
func (s *Storage) CountByStatus(ctx context.Context) (map[models.OutboxStatus]int, error) {
	items, err := s.listItems(nil)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.OutboxStatus]int, 4)
	for _, item := range items {
		counts[item.Status]++
	}
	return counts, nil
}

// HasUnresolved reports whether a pending or in_progress item references the record
func (s *Storage) HasUnresolved(ctx context.Context, table models.TableName, clientID string) (bool, error) {
	items, err := s.listItems(func(item *models.OutboxItem) bool {
		return item.Table == table && item.RecordClientID == clientID && item.Unresolved()
	})
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

// ResetInProgress returns items left in_progress by an interrupted push to pending
func (s *Storage) ResetInProgress(ctx context.Context) (int, error) {
	if s.closed.Load() {
		return 0, storage.ErrStorageClosed
	}

	var n int
	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOutbox)

		var stuck []*models.OutboxItem
		err := bucket.ForEach(func(k, v []byte) error {
			item := &models.OutboxItem{}
			if err := json.Unmarshal(v, item); err != nil {
				return fmt.Errorf("failed to unmarshal outbox item: %w", err)
			}
			if item.Status == models.OutboxStatusInProgress {
				stuck = append(stuck, item)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, item := range stuck {
			item.Status = models.OutboxStatusPending
			if err := putItem(bucket, item); err != nil {
				return err
			}
		}
		n = len(stuck)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to reset in_progress items: %w", err)
	}

	return n, nil
}

// PurgeCompleted removes completed items created before the given time
func (s *Storage) PurgeCompleted(ctx context.Context, before time.Time) (int, error) {
	if s.closed.Load() {
		return 0, storage.ErrStorageClosed
	}

	var n int
	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOutbox)

		var keys [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var item models.OutboxItem
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("failed to unmarshal outbox item: %w", err)
			}
			if item.Status == models.OutboxStatusCompleted && item.CreatedAt.Before(before) {
				keys = append(keys, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		// Удаляем после обхода: изменять bucket внутри ForEach нельзя
		for _, k := range keys {
			if err := bucket.Delete(k); err != nil {
				return fmt.Errorf("failed to delete outbox item: %w", err)
			}
		}
		n = len(keys)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge completed items: %w", err)
	}

	return n, nil
}

func (s *Storage) listItems(predicate func(*models.OutboxItem) bool) ([]*models.OutboxItem, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	var items []*models.OutboxItem

	err := s.view(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketOutbox).ForEach(func(k, v []byte) error {
			item := &models.OutboxItem{}
			if err := json.Unmarshal(v, item); err != nil {
				return fmt.Errorf("failed to unmarshal outbox item: %w", err)
			}
			if predicate == nil || predicate(item) {
				items = append(items, item)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox items: %w", err)
	}

	return items, nil
}

// updateItem выполняет переход в статус to и применяет mutate в одной транзакции
func (s *Storage) updateItem(id uint64, to models.OutboxStatus, mutate func(*models.OutboxItem)) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOutbox)

		item, err := getItem(bucket, id)
		if err != nil {
			return err
		}

		if !models.CanTransition(item.Status, to) {
			return fmt.Errorf("%w: %s -> %s (item %d)", storage.ErrInvalidTransition, item.Status, to, id)
		}

		item.Status = to
		mutate(item)
		return putItem(bucket, item)
	})
}

func getItem(bucket *bbolt.Bucket, id uint64) (*models.OutboxItem, error) {
	data := bucket.Get(itemKey(id))
	if data == nil {
		return nil, storage.ErrOutboxItemNotFound
	}

	item := &models.OutboxItem{}
	if err := json.Unmarshal(data, item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outbox item: %w", err)
	}
	return item, nil
}

func putItem(bucket *bbolt.Bucket, item *models.OutboxItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox item: %w", err)
	}
	if err := bucket.Put(itemKey(item.ID), data); err != nil {
		return fmt.Errorf("failed to save outbox item: %w", err)
	}
	return nil
}
