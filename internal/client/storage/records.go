package storage

import (
	"context"

	"github.com/iudanet/gymkeeper/internal/models"
)

// RecordStorage defines interface for local domain records with sync metadata
type RecordStorage interface {
	// GetRecord retrieves a record by its client_id
	// Returns ErrRecordNotFound if record doesn't exist
	GetRecord(ctx context.Context, table models.TableName, clientID string) (*models.LocalRecord, error)

	// GetRecordByServerID retrieves a record by server_id
	// Returns ErrRecordNotFound if no record has this server_id
	GetRecordByServerID(ctx context.Context, table models.TableName, serverID string) (*models.LocalRecord, error)

	// SaveRecord creates or replaces a record (keeps server_id index in sync)
	SaveRecord(ctx context.Context, record *models.LocalRecord) error

	// DeleteRecord removes a record permanently
	DeleteRecord(ctx context.Context, table models.TableName, clientID string) error

	// ListRecords returns records of the table matching predicate (nil means all)
	ListRecords(ctx context.Context, table models.TableName, predicate func(*models.LocalRecord) bool) ([]*models.LocalRecord, error)
}
