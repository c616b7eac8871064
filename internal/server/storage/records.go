package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iudanet/gymkeeper/internal/models"
)

//go:generate moq -out records_mock.go . RecordStorage

// Change одно входящее изменение из push запроса
type Change struct {
	ClientUpdatedAt time.Time
	Table           models.TableName
	Operation       models.Operation
	ClientID        string
	ServerID        string
	Data            json.RawMessage
}

// ApplyResult результат применения изменения
type ApplyResult struct {
	Record  *models.ServerRecord // Record состояние записи после применения (nil для not_found и удаления неизвестной записи)
	Outcome models.ChangeOutcome
}

// RecordStorage defines interface for server-side sync records persistence
type RecordStorage interface {
	// ApplyChange applies one pushed change in a single transaction using LWW:
	// same version is a replay, strictly newer version overwrites, anything else is a conflict.
	// A create for a known client_id that is not newer is a replay.
	ApplyChange(ctx context.Context, userID string, change *Change) (*ApplyResult, error)

	// ChangesSince returns records of the user (including tombstones)
	// with updated_at strictly after since, ordered by updated_at
	ChangesSince(ctx context.Context, userID string, since time.Time) ([]*models.ServerRecord, error)

	// GetRecord retrieves a record by server_id
	// Returns ErrRecordNotFound if record doesn't exist
	GetRecord(ctx context.Context, userID string, table models.TableName, serverID string) (*models.ServerRecord, error)

	// Now returns the current server change stamp (strictly increasing)
	Now() time.Time
}
