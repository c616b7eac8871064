package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gymkeeper/internal/lww"
	"github.com/iudanet/gymkeeper/internal/models"
	"github.com/iudanet/gymkeeper/internal/server/storage"
)

const recordColumns = `
	server_id, user_id, table_name, client_id, data,
	client_updated_at, updated_at, created_at, deleted
`

// queryer общий интерфейс *sql.DB и *sql.Tx для чтения
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Now returns a fresh, strictly increasing change stamp
func (s *Storage) Now() time.Time {
	return s.clock.Now()
}

// ApplyChange applies one pushed change in a single transaction
func (s *Storage) ApplyChange(ctx context.Context, userID string, change *storage.Change) (*storage.ApplyResult, error) {
	if !change.Table.Valid() || !change.Operation.Valid() {
		return nil, fmt.Errorf("%w: table=%q operation=%q", storage.ErrInvalidChange, change.Table, change.Operation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	existing, err := s.findForChange(ctx, tx, userID, change)
	if err != nil {
		return nil, err
	}

	var result *storage.ApplyResult
	if change.Operation == models.OperationDelete {
		result, err = s.applyDelete(ctx, tx, existing, change)
	} else {
		result, err = s.applyWrite(ctx, tx, userID, existing, change)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}

// findForChange ищет запись по server_id, затем по client_id. nil, если записи нет.
func (s *Storage) findForChange(ctx context.Context, q queryer, userID string, change *storage.Change) (*models.ServerRecord, error) {
	if change.ServerID != "" {
		rec, err := getRecord(ctx, q, `user_id = ? AND table_name = ? AND server_id = ?`,
			userID, string(change.Table), change.ServerID)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, storage.ErrRecordNotFound) {
			return nil, err
		}
	}

	if change.ClientID != "" {
		rec, err := getRecord(ctx, q, `user_id = ? AND table_name = ? AND client_id = ?`,
			userID, string(change.Table), change.ClientID)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, storage.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, nil
}

func (s *Storage) applyWrite(ctx context.Context, tx *sql.Tx, userID string, existing *models.ServerRecord, change *storage.Change) (*storage.ApplyResult, error) {
	if existing == nil {
		if change.Operation == models.OperationUpdate {
			return &storage.ApplyResult{Outcome: models.OutcomeNotFound}, nil
		}

		now := s.clock.Now()
		rec := &models.ServerRecord{
			ServerID:        uuid.New().String(),
			UserID:          userID,
			Table:           change.Table,
			ClientID:        change.ClientID,
			Data:            change.Data,
			ClientUpdatedAt: change.ClientUpdatedAt,
			UpdatedAt:       now,
			CreatedAt:       now,
		}

		query := `
			INSERT INTO sync_records (
				server_id, user_id, table_name, client_id, data,
				client_updated_at, updated_at, created_at, deleted
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
		`
		_, err := tx.ExecContext(ctx, query,
			rec.ServerID,
			rec.UserID,
			string(rec.Table),
			rec.ClientID,
			dataBytes(rec.Data),
			rec.ClientUpdatedAt.UnixNano(),
			rec.UpdatedAt.UnixNano(),
			rec.CreatedAt.UnixNano(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert record: %w", err)
		}

		return &storage.ApplyResult{Record: rec, Outcome: models.OutcomeInserted}, nil
	}

	decision := lww.Resolve(change.ClientUpdatedAt, existing.ClientUpdatedAt)
	if change.Operation == models.OperationCreate {
		decision = lww.ResolveCreate(change.ClientUpdatedAt, existing.ClientUpdatedAt)
	}

	switch decision {
	case lww.Replay:
		return &storage.ApplyResult{Record: existing, Outcome: models.OutcomeReplayed}, nil
	case lww.Conflict:
		return &storage.ApplyResult{Record: existing, Outcome: models.OutcomeConflict}, nil
	}

	existing.Data = change.Data
	existing.ClientUpdatedAt = change.ClientUpdatedAt
	existing.UpdatedAt = s.clock.Now()
	existing.Deleted = false

	query := `
		UPDATE sync_records
		SET data = ?, client_updated_at = ?, updated_at = ?, deleted = 0
		WHERE server_id = ?
	`
	_, err := tx.ExecContext(ctx, query,
		dataBytes(existing.Data),
		existing.ClientUpdatedAt.UnixNano(),
		existing.UpdatedAt.UnixNano(),
		existing.ServerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	return &storage.ApplyResult{Record: existing, Outcome: models.OutcomeUpdated}, nil
}

func (s *Storage) applyDelete(ctx context.Context, tx *sql.Tx, existing *models.ServerRecord, change *storage.Change) (*storage.ApplyResult, error) {
	// Удаление неизвестной записи - успех без изменений
	if existing == nil {
		return &storage.ApplyResult{Outcome: models.OutcomeDeleted}, nil
	}

	switch lww.Resolve(change.ClientUpdatedAt, existing.ClientUpdatedAt) {
	case lww.Replay:
		return &storage.ApplyResult{Record: existing, Outcome: models.OutcomeReplayed}, nil
	case lww.Conflict:
		return &storage.ApplyResult{Record: existing, Outcome: models.OutcomeConflict}, nil
	}

	existing.ClientUpdatedAt = change.ClientUpdatedAt
	existing.UpdatedAt = s.clock.Now()
	existing.Deleted = true

	query := `
		UPDATE sync_records
		SET deleted = 1, client_updated_at = ?, updated_at = ?
		WHERE server_id = ?
	`
	_, err := tx.ExecContext(ctx, query,
		existing.ClientUpdatedAt.UnixNano(),
		existing.UpdatedAt.UnixNano(),
		existing.ServerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to delete record: %w", err)
	}

	return &storage.ApplyResult{Record: existing, Outcome: models.OutcomeDeleted}, nil
}

// GetRecord retrieves a record by server_id
func (s *Storage) GetRecord(ctx context.Context, userID string, table models.TableName, serverID string) (*models.ServerRecord, error) {
	return getRecord(ctx, s.db, `user_id = ? AND table_name = ? AND server_id = ?`, userID, string(table), serverID)
}

// ChangesSince returns records changed strictly after since, tombstones included
func (s *Storage) ChangesSince(ctx context.Context, userID string, since time.Time) ([]*models.ServerRecord, error) {
	var sinceNano int64
	if !since.IsZero() {
		sinceNano = since.UnixNano()
	}

	query := `SELECT ` + recordColumns + `
		FROM sync_records
		WHERE user_id = ? AND updated_at > ?
		ORDER BY updated_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, sinceNano)
	if err != nil {
		return nil, fmt.Errorf("failed to query changes since: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*models.ServerRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func getRecord(ctx context.Context, q queryer, where string, args ...any) (*models.ServerRecord, error) {
	row := q.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM sync_records WHERE `+where, args...)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

func scanRecord(row scanner) (*models.ServerRecord, error) {
	rec := &models.ServerRecord{}
	var table string
	var data []byte
	var clientUpdatedAt, updatedAt, createdAt int64
	var deleted int

	err := row.Scan(
		&rec.ServerID,
		&rec.UserID,
		&table,
		&rec.ClientID,
		&data,
		&clientUpdatedAt,
		&updatedAt,
		&createdAt,
		&deleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	rec.Table = models.TableName(table)
	rec.Data = data
	rec.ClientUpdatedAt = nanoToTime(clientUpdatedAt)
	rec.UpdatedAt = nanoToTime(updatedAt)
	rec.CreatedAt = nanoToTime(createdAt)
	rec.Deleted = intToBool(deleted)

	return rec, nil
}

// Helper functions for conversion
func dataBytes(data []byte) []byte {
	if len(data) == 0 {
		return []byte("{}")
	}
	return data
}

func intToBool(i int) bool {
	return i != 0
}

func nanoToTime(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}
