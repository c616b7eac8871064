package storage

import (
	"context"

	"github.com/iudanet/gymkeeper/internal/models"
)

// LocalStore объединяет хранилища, которые движок синхронизации использует совместно.
// boltdb.Storage реализует его целиком.
type LocalStore interface {
	RecordStorage
	OutboxStorage
	MetadataStorage

	// ApplyLocalMutation saves the record and appends one outbox item in a single transaction.
	// For OperationDelete the record is kept as a tombstone until the item resolves.
	ApplyLocalMutation(ctx context.Context, record *models.LocalRecord, op models.Operation) (*models.OutboxItem, error)
}
