package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gymkeeper/internal/client/storage"
	"github.com/iudanet/gymkeeper/internal/models"
)

// GetRecord retrieves a record by client_id
func (s *Storage) GetRecord(ctx context.Context, table models.TableName, clientID string) (*models.LocalRecord, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	var record *models.LocalRecord
	err := s.view(func(tx *bbolt.Tx) error {
		var err error
		record, err = getRecord(tx, table, clientID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetRecordByServerID retrieves a record using the server_id index
func (s *Storage) GetRecordByServerID(ctx context.Context, table models.TableName, serverID string) (*models.LocalRecord, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	var record *models.LocalRecord
	err := s.view(func(tx *bbolt.Tx) error {
		index := tx.Bucket(serverIDBucket(table))
		if index == nil {
			return storage.ErrRecordNotFound
		}

		clientID := index.Get([]byte(serverID))
		if clientID == nil {
			return storage.ErrRecordNotFound
		}

		var err error
		record, err = getRecord(tx, table, string(clientID))
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// SaveRecord stores or replaces a record
func (s *Storage) SaveRecord(ctx context.Context, record *models.LocalRecord) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}

	err := s.update(func(tx *bbolt.Tx) error {
		return putRecord(tx, record)
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// DeleteRecord removes a record and its server_id index entry
func (s *Storage) DeleteRecord(ctx context.Context, table models.TableName, clientID string) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}

	return s.update(func(tx *bbolt.Tx) error {
		existing, err := getRecord(tx, table, clientID)
		if err != nil {
			return err
		}

		if existing.ServerID != "" {
			if err := tx.Bucket(serverIDBucket(table)).Delete([]byte(existing.ServerID)); err != nil {
				return fmt.Errorf("failed to delete server_id index: %w", err)
			}
		}

		if err := tx.Bucket(recordsBucket(table)).Delete([]byte(clientID)); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}

		return nil
	})
}

// ListRecords returns records of the table matching predicate, ordered by client_id
func (s *Storage) ListRecords(ctx context.Context, table models.TableName, predicate func(*models.LocalRecord) bool) ([]*models.LocalRecord, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	var records []*models.LocalRecord

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(recordsBucket(table))
		if bucket == nil {
			// Неизвестная таблица - пустой результат
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var record models.LocalRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}

			if predicate == nil || predicate(&record) {
				records = append(records, &record)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return records, nil
}

func getRecord(tx *bbolt.Tx, table models.TableName, clientID string) (*models.LocalRecord, error) {
	bucket := tx.Bucket(recordsBucket(table))
	if bucket == nil {
		return nil, storage.ErrRecordNotFound
	}

	data := bucket.Get([]byte(clientID))
	if data == nil {
		return nil, storage.ErrRecordNotFound
	}

	record := &models.LocalRecord{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return record, nil
}

// putRecord сохраняет запись и поддерживает индекс server_id
func putRecord(tx *bbolt.Tx, record *models.LocalRecord) error {
	if !record.Table.Valid() {
		return fmt.Errorf("unknown table %q", record.Table)
	}
	if record.ClientID == "" {
		return fmt.Errorf("record client_id is required")
	}
	if err := record.CheckInvariant(); err != nil {
		return err
	}

	bucket := tx.Bucket(recordsBucket(record.Table))
	index := tx.Bucket(serverIDBucket(record.Table))

	// Если server_id изменился, убираем старую запись индекса
	if prev := bucket.Get([]byte(record.ClientID)); prev != nil {
		var old models.LocalRecord
		if err := json.Unmarshal(prev, &old); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		if old.ServerID != "" && old.ServerID != record.ServerID {
			if err := index.Delete([]byte(old.ServerID)); err != nil {
				return fmt.Errorf("failed to delete server_id index: %w", err)
			}
		}
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := bucket.Put([]byte(record.ClientID), data); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	if record.ServerID != "" {
		if err := index.Put([]byte(record.ServerID), []byte(record.ClientID)); err != nil {
			return fmt.Errorf("failed to save server_id index: %w", err)
		}
	}

	return nil
}
