package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/gymkeeper/internal/client/storage"
	"github.com/iudanet/gymkeeper/internal/lww"
	"github.com/iudanet/gymkeeper/internal/models"
	"github.com/iudanet/gymkeeper/pkg/api"
)

// PullResult итог одного pull
type PullResult struct {
	Watermark       time.Time // Watermark сохраненная граница после pull
	ServerTimestamp time.Time
	Received        int // Received изменений получено
	Applied         int // Applied изменений применено локально
	Skipped         int // Skipped изменений проиграли LWW или неизвестны
}

// Puller забирает изменения сервера после watermark и применяет их по правилу LWW
type Puller struct {
	api    APIClient
	store  storage.LocalStore
	logger *slog.Logger
}

// NewPuller creates a new pull exchanger
func NewPuller(apiClient APIClient, store storage.LocalStore, logger *slog.Logger) *Puller {
	return &Puller{
		api:    apiClient,
		store:  store,
		logger: logger,
	}
}

// Pull fetches server changes since the stored watermark and merges them.
// Watermark сохраняется только после применения всего ответа и никогда не уменьшается.
func (p *Puller) Pull(ctx context.Context) (*PullResult, error) {
	watermark, err := p.store.GetWatermark(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get watermark: %w", err)
	}

	resp, err := p.api.Pull(ctx, watermark)
	if err != nil {
		return nil, fmt.Errorf("pull failed: %w", err)
	}

	result := &PullResult{
		Watermark:       watermark,
		ServerTimestamp: resp.ServerTimestamp,
		Received:        len(resp.Changes),
	}

	p.logger.Info("Received server changes",
		"count", len(resp.Changes),
		"since", watermark,
		"server_timestamp", resp.ServerTimestamp)

	next := watermark
	for _, change := range resp.Changes {
		applied, err := p.applyChange(ctx, change)
		if err != nil {
			return result, fmt.Errorf("failed to apply %s change %s: %w", change.TableName, change.ServerID, err)
		}
		if applied {
			result.Applied++
		} else {
			result.Skipped++
		}

		next = lww.Latest(next, change.UpdatedAt)
	}

	if next.After(watermark) {
		if err := p.store.SaveWatermark(ctx, next); err != nil {
			return result, fmt.Errorf("failed to save watermark: %w", err)
		}
		result.Watermark = next
	}

	p.logger.Info("Pull completed",
		"applied", result.Applied,
		"skipped", result.Skipped,
		"watermark", result.Watermark)

	return result, nil
}

// applyChange применяет одно изменение сервера. Возвращает false, если локальная версия победила.
func (p *Puller) applyChange(ctx context.Context, change api.ServerChange) (bool, error) {
	table := models.TableName(change.TableName)
	if !table.Valid() {
		p.logger.Warn("Skipping change for unknown table", "table", change.TableName, "server_id", change.ServerID)
		return false, nil
	}
	if change.ServerID == "" {
		p.logger.Warn("Skipping change without server_id", "table", change.TableName, "client_id", change.ClientID)
		return false, nil
	}

	local, err := p.lookup(ctx, table, change.ClientID, change.ServerID)
	if err != nil {
		return false, err
	}

	version := change.ClientUpdatedAt
	if version.IsZero() {
		version = change.UpdatedAt
	}

	switch models.Operation(change.Operation) {
	case models.OperationCreate, models.OperationUpdate:
		if local == nil {
			clientID := change.ClientID
			if clientID == "" {
				clientID = change.ServerID
			}
			return true, p.store.SaveRecord(ctx, &models.LocalRecord{
				Table:           table,
				ClientID:        clientID,
				ServerID:        change.ServerID,
				SyncStatus:      models.SyncStatusSynced,
				ClientUpdatedAt: version,
				Data:            change.Data,
			})
		}

		if !lww.ServerWins(version, local.ClientUpdatedAt) {
			p.logger.Debug("Skipping server change (local is newer)",
				"table", table,
				"client_id", local.ClientID,
				"server_version", version,
				"local_version", local.ClientUpdatedAt)
			return false, nil
		}

		local.Data = change.Data
		local.ServerID = change.ServerID
		local.SyncStatus = models.SyncStatusSynced
		local.ClientUpdatedAt = version
		local.Deleted = false
		return true, p.store.SaveRecord(ctx, local)

	case models.OperationDelete:
		if local == nil {
			return false, nil
		}
		if !lww.ServerWins(version, local.ClientUpdatedAt) {
			return false, nil
		}

		unresolved, err := p.store.HasUnresolved(ctx, table, local.ClientID)
		if err != nil {
			return false, fmt.Errorf("failed to check outbox: %w", err)
		}
		if !unresolved {
			return true, p.store.DeleteRecord(ctx, table, local.ClientID)
		}

		// На запись еще ссылаются элементы очереди - оставляем tombstone
		local.ServerID = change.ServerID
		local.SyncStatus = models.SyncStatusSynced
		local.ClientUpdatedAt = version
		local.Deleted = true
		return true, p.store.SaveRecord(ctx, local)

	default:
		p.logger.Warn("Skipping change with unknown operation", "operation", change.Operation, "server_id", change.ServerID)
		return false, nil
	}
}

// lookup ищет локальную запись по client_id, затем по server_id. nil, если записи нет.
func (p *Puller) lookup(ctx context.Context, table models.TableName, clientID, serverID string) (*models.LocalRecord, error) {
	if clientID != "" {
		rec, err := p.store.GetRecord(ctx, table, clientID)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, storage.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get record: %w", err)
		}
	}

	if serverID != "" {
		rec, err := p.store.GetRecordByServerID(ctx, table, serverID)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, storage.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get record by server_id: %w", err)
		}
	}

	return nil, nil
}
