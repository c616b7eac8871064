package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iudanet/gymkeeper/internal/models"
)

// EnqueueRequest describes a new outbox item
type EnqueueRequest struct {
	ClientUpdatedAt time.Time
	Table           models.TableName
	Operation       models.Operation
	RecordClientID  string
	Payload         json.RawMessage
}

// OutboxStorage defines the durable queue of pending local mutations
type OutboxStorage interface {
	// Enqueue appends a new pending item, never touches the network
	Enqueue(ctx context.Context, req EnqueueRequest) (*models.OutboxItem, error)

	// DequeuePending returns pending items ordered by id, optionally filtered by table ("" = all)
	DequeuePending(ctx context.Context, table models.TableName) ([]*models.OutboxItem, error)

	// Mark performs an atomic status transition
	// Returns ErrInvalidTransition if the transition is not allowed
	Mark(ctx context.Context, id uint64, status models.OutboxStatus, errMsg string) error

	// ClaimPending atomically marks eligible pending items as in_progress and returns them in id order.
	// Items of a record are skipped after the first one that is not eligible
	// or while the record already has an in_progress item.
	ClaimPending(ctx context.Context, now time.Time) ([]*models.OutboxItem, error)

	// Reschedule returns an in_progress item to pending with a new retry count and next attempt time
	Reschedule(ctx context.Context, id uint64, retryCount int, nextAttemptAt time.Time, errMsg string) error

	// Fail marks an in_progress item as failed permanently
	Fail(ctx context.Context, id uint64, retryCount int, errMsg string) error

	// GetOutboxItem retrieves an item by id
	GetOutboxItem(ctx context.Context, id uint64) (*models.OutboxItem, error)

	// ListByStatus returns items with given status ordered by id
	ListByStatus(ctx context.Context, status models.OutboxStatus) ([]*models.OutboxItem, error)

	// CountByStatus returns number of items per status
	CountByStatus(ctx context.Context) (map[models.OutboxStatus]int, error)

	// HasUnresolved reports whether a pending or in_progress item references the record
	HasUnresolved(ctx context.Context, table models.TableName, clientID string) (bool, error)

	// ResetInProgress returns items stuck in in_progress (crash during push) to pending
	ResetInProgress(ctx context.Context) (int, error)

	// Requeue returns a failed item to pending and resets its retry counter
	Requeue(ctx context.Context, id uint64) error

	// PurgeCompleted removes completed items created before the given time
	PurgeCompleted(ctx context.Context, before time.Time) (int, error)
}
