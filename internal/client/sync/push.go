package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/gymkeeper/internal/client/storage"
	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/internal/models"
	"github.com/iudanet/gymkeeper/pkg/api"
)

// ErrProtocolViolation ответ push не соответствует запросу по количеству или порядку результатов
var ErrProtocolViolation = errors.New("push response does not match request")

// PushResult итог одного push
type PushResult struct {
	ServerTimestamp time.Time
	Claimed         int // Claimed элементов отправлено
	Succeeded       int // Succeeded принято сервером
	Conflicts       int // Conflicts отклонено как конфликт
	Retried         int // Retried возвращено в pending с backoff
	Failed          int // Failed исчерпали попытки
}

// Pusher отправляет pending элементы очереди одним пакетом и применяет результаты
type Pusher struct {
	api       APIClient
	store     storage.LocalStore
	scheduler *Scheduler
	clock     clock.Clock
	logger    *slog.Logger
}

// NewPusher creates a new push exchanger
func NewPusher(apiClient APIClient, store storage.LocalStore, scheduler *Scheduler, clk clock.Clock, logger *slog.Logger) *Pusher {
	return &Pusher{
		api:       apiClient,
		store:     store,
		scheduler: scheduler,
		clock:     clk,
		logger:    logger,
	}
}

// Push claims eligible items, sends them as one batch and applies per-item results.
// Транспортная ошибка или нарушение протокола возвращают все элементы в backoff
// и возвращаются как ошибка: цикл синхронизации прерывается.
func (p *Pusher) Push(ctx context.Context) (*PushResult, error) {
	result := &PushResult{}

	items, err := p.store.ClaimPending(ctx, p.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending items: %w", err)
	}
	if len(items) == 0 {
		p.logger.Debug("Outbox is empty, nothing to push")
		return result, nil
	}

	result.Claimed = len(items)
	p.logger.Info("Pushing local changes", "count", len(items))

	req := &api.PushRequest{Changes: make([]api.Change, 0, len(items))}
	for _, item := range items {
		req.Changes = append(req.Changes, p.toChange(ctx, item))
	}

	resp, err := p.api.Push(ctx, req)
	if err == nil {
		err = checkResults(req, resp)
	}
	if err != nil {
		p.logger.Warn("Push batch failed, scheduling retry", "count", len(items), "error", err)
		for _, item := range items {
			p.retry(ctx, item, err.Error(), result)
		}
		return result, fmt.Errorf("push failed: %w", err)
	}

	var errs []error
	touched := make(map[string]*models.OutboxItem)

	for i, item := range items {
		res := resp.Results[i]
		touched[recordRef(item.Table, item.RecordClientID)] = item

		switch {
		case res.Success:
			if err := p.applySuccess(ctx, item, res); err != nil {
				errs = append(errs, err)
				continue
			}
			result.Succeeded++
		case res.Conflict:
			if err := p.applyConflict(ctx, item, res); err != nil {
				errs = append(errs, err)
				continue
			}
			result.Conflicts++
		default:
			errMsg := res.Error
			if errMsg == "" {
				errMsg = "rejected by server"
			}
			p.retry(ctx, item, errMsg, result)
		}
	}

	for _, item := range touched {
		if err := p.purgeTombstone(ctx, item.Table, item.RecordClientID); err != nil {
			errs = append(errs, err)
		}
	}

	result.ServerTimestamp = resp.ServerTimestamp
	if err := p.store.SaveLastPushTimestamp(ctx, resp.ServerTimestamp); err != nil {
		errs = append(errs, fmt.Errorf("failed to save last push timestamp: %w", err))
	}

	p.logger.Info("Push completed",
		"succeeded", result.Succeeded,
		"conflicts", result.Conflicts,
		"retried", result.Retried,
		"failed", result.Failed,
		"server_timestamp", resp.ServerTimestamp)

	if len(errs) > 0 {
		return result, errors.Join(errs...)
	}
	return result, nil
}

func (p *Pusher) toChange(ctx context.Context, item *models.OutboxItem) api.Change {
	change := api.Change{
		ClientUpdatedAt: item.ClientUpdatedAt,
		TableName:       string(item.Table),
		Operation:       string(item.Operation),
		ClientID:        item.RecordClientID,
		Data:            item.Payload,
	}
	if len(change.Data) == 0 {
		change.Data = []byte("{}")
	}

	// server_id берем из записи: он мог появиться после постановки элемента в очередь
	if rec, err := p.store.GetRecord(ctx, item.Table, item.RecordClientID); err == nil {
		change.ServerID = rec.ServerID
	}

	return change
}

func checkResults(req *api.PushRequest, resp *api.PushResponse) error {
	if len(resp.Results) != len(req.Changes) {
		return fmt.Errorf("%w: %d results for %d changes", ErrProtocolViolation, len(resp.Results), len(req.Changes))
	}
	for i := range req.Changes {
		if resp.Results[i].ClientID != req.Changes[i].ClientID {
			return fmt.Errorf("%w: result %d is for %q, expected %q",
				ErrProtocolViolation, i, resp.Results[i].ClientID, req.Changes[i].ClientID)
		}
	}
	return nil
}

// retry передает неудачный элемент планировщику
func (p *Pusher) retry(ctx context.Context, item *models.OutboxItem, errMsg string, result *PushResult) {
	failed, err := p.scheduler.Fail(ctx, item, errMsg)
	if err != nil {
		// Элемент останется in_progress до следующего цикла, где будет сброшен в pending
		p.logger.Error("Failed to schedule retry", "item_id", item.ID, "error", err)
		return
	}

	if failed {
		result.Failed++
		p.logger.Warn("Outbox item exhausted retries",
			"item_id", item.ID,
			"table", item.Table,
			"client_id", item.RecordClientID,
			"error", errMsg)
		return
	}
	result.Retried++
}

func (p *Pusher) applySuccess(ctx context.Context, item *models.OutboxItem, res api.ChangeResult) error {
	rec, err := p.store.GetRecord(ctx, item.Table, item.RecordClientID)
	switch {
	case errors.Is(err, storage.ErrRecordNotFound):
		// Запись уже удалена локально, подтверждаем только элемент
	case err != nil:
		return fmt.Errorf("failed to load record %s: %w", item.RecordClientID, err)
	default:
		if res.ServerID != "" {
			rec.ServerID = res.ServerID
		}
		// Более новая локальная правка оставляет запись pending
		if !rec.ClientUpdatedAt.After(item.ClientUpdatedAt) && rec.ServerID != "" {
			rec.SyncStatus = models.SyncStatusSynced
		}
		if err := p.store.SaveRecord(ctx, rec); err != nil {
			return fmt.Errorf("failed to save record %s: %w", item.RecordClientID, err)
		}
	}

	if err := p.store.Mark(ctx, item.ID, models.OutboxStatusCompleted, ""); err != nil {
		return fmt.Errorf("failed to complete item %d: %w", item.ID, err)
	}
	return nil
}

func (p *Pusher) applyConflict(ctx context.Context, item *models.OutboxItem, res api.ChangeResult) error {
	errMsg := res.Error
	if errMsg == "" {
		errMsg = "conflict: server version is newer"
	}

	rec, err := p.store.GetRecord(ctx, item.Table, item.RecordClientID)
	switch {
	case errors.Is(err, storage.ErrRecordNotFound):
	case err != nil:
		return fmt.Errorf("failed to load record %s: %w", item.RecordClientID, err)
	default:
		if res.ServerID != "" {
			rec.ServerID = res.ServerID
		}
		if !rec.ClientUpdatedAt.After(item.ClientUpdatedAt) {
			rec.SyncStatus = models.SyncStatusConflict
		}
		if err := p.store.SaveRecord(ctx, rec); err != nil {
			return fmt.Errorf("failed to save record %s: %w", item.RecordClientID, err)
		}
	}

	p.logger.Warn("Server rejected change as conflict",
		"table", item.Table,
		"client_id", item.RecordClientID,
		"item_id", item.ID)

	if err := p.store.Mark(ctx, item.ID, models.OutboxStatusFailed, errMsg); err != nil {
		return fmt.Errorf("failed to mark item %d failed: %w", item.ID, err)
	}
	return nil
}

// purgeTombstone удаляет локальный tombstone, когда на него больше не ссылается ни один элемент очереди
func (p *Pusher) purgeTombstone(ctx context.Context, table models.TableName, clientID string) error {
	rec, err := p.store.GetRecord(ctx, table, clientID)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load record %s: %w", clientID, err)
	}
	// Конфликтный tombstone ждет серверную версию из pull
	if !rec.Deleted || rec.SyncStatus == models.SyncStatusConflict {
		return nil
	}

	unresolved, err := p.store.HasUnresolved(ctx, table, clientID)
	if err != nil {
		return fmt.Errorf("failed to check outbox for %s: %w", clientID, err)
	}
	if unresolved {
		return nil
	}

	if err := p.store.DeleteRecord(ctx, table, clientID); err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		return fmt.Errorf("failed to purge tombstone %s: %w", clientID, err)
	}
	return nil
}

func recordRef(table models.TableName, clientID string) string {
	return string(table) + "/" + clientID
}
