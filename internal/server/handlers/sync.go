package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/gymkeeper/internal/models"
	"github.com/iudanet/gymkeeper/internal/server/storage"
	"github.com/iudanet/gymkeeper/internal/validation"
	"github.com/iudanet/gymkeeper/pkg/api"
)

const (
	// MaxPushChanges максимальное количество изменений в одном push запросе
	MaxPushChanges = 500
	// maxPushBodyBytes ограничение размера тела push запроса
	maxPushBodyBytes = 8 << 20
)

// Сообщения об ошибках отдельных изменений в push ответе
const (
	errMsgRecordNotFound = "record not found"
	errMsgConflict       = "server version is newer"
	errMsgInternal       = "internal server error"
)

// SyncMetrics принимает счетчики синхронизации
type SyncMetrics interface {
	ObservePushChange(table, outcome string)
	ObservePulledChange(table string)
}

// SyncHandler handles push and pull synchronization requests
type SyncHandler struct {
	logger  *slog.Logger
	storage storage.RecordStorage
	metrics SyncMetrics
}

// NewSyncHandler creates a new sync handler. metrics может быть nil.
func NewSyncHandler(logger *slog.Logger, storage storage.RecordStorage, metrics SyncMetrics) *SyncHandler {
	return &SyncHandler{
		logger:  logger,
		storage: storage,
		metrics: metrics,
	}
}

// Push обрабатывает POST /api/v1/sync/push.
// Каждое изменение применяется независимо: ошибка одного изменения
// возвращается в его результате и не прерывает batch.
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req api.PushRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPushBodyBytes)).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode push request", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.Changes) > MaxPushChanges {
		writeError(w, h.logger, http.StatusRequestEntityTooLarge, "too many changes",
			fmt.Sprintf("at most %d changes per request", MaxPushChanges))
		return
	}

	h.logger.Info("Push request", "user_id", userID, "changes_count", len(req.Changes))

	results := make([]api.ChangeResult, 0, len(req.Changes))
	conflicts := 0
	for i := range req.Changes {
		result := h.applyChange(r, userID, &req.Changes[i])
		if result.Conflict {
			conflicts++
		}
		results = append(results, result)
	}

	resp := api.PushResponse{
		Results:         results,
		ServerTimestamp: h.storage.Now(),
	}
	writeJSON(w, h.logger, http.StatusOK, resp)

	h.logger.Info("Push completed",
		"user_id", userID,
		"received_changes", len(req.Changes),
		"conflicts", conflicts)
}

// applyChange применяет одно изменение и формирует его результат
func (h *SyncHandler) applyChange(r *http.Request, userID string, change *api.Change) api.ChangeResult {
	result := api.ChangeResult{ClientID: change.ClientID}

	if err := validateChange(change); err != nil {
		h.logger.Debug("Rejected invalid change", "client_id", change.ClientID, "error", err)
		result.Error = err.Error()
		h.observePush(change.TableName, "invalid")
		return result
	}

	applied, err := h.storage.ApplyChange(r.Context(), userID, &storage.Change{
		ClientUpdatedAt: change.ClientUpdatedAt,
		Table:           models.TableName(change.TableName),
		Operation:       models.Operation(change.Operation),
		ClientID:        change.ClientID,
		ServerID:        change.ServerID,
		Data:            change.Data,
	})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidChange) {
			result.Error = err.Error()
			h.observePush(change.TableName, "invalid")
			return result
		}
		h.logger.Error("Failed to apply change", "error", err, "user_id", userID, "client_id", change.ClientID)
		result.Error = errMsgInternal
		h.observePush(change.TableName, "error")
		return result
	}

	h.observePush(change.TableName, string(applied.Outcome))

	switch applied.Outcome {
	case models.OutcomeConflict:
		result.Conflict = true
		result.Error = errMsgConflict
		if applied.Record != nil {
			result.ServerID = applied.Record.ServerID
		}
	case models.OutcomeNotFound:
		result.Error = errMsgRecordNotFound
	default:
		result.Success = true
		if applied.Record != nil {
			result.ServerID = applied.Record.ServerID
		} else {
			result.ServerID = change.ServerID
		}
	}

	return result
}

// validateChange проверяет поля изменения и доменные ограничения payload
func validateChange(change *api.Change) error {
	if change.ClientID == "" {
		return errors.New("client_id is required")
	}

	table := models.TableName(change.TableName)
	if !table.Valid() {
		return fmt.Errorf("unknown table %q", change.TableName)
	}

	op := models.Operation(change.Operation)
	if !op.Valid() {
		return fmt.Errorf("unknown operation %q", change.Operation)
	}

	if change.ClientUpdatedAt.IsZero() {
		return errors.New("client_updated_at is required")
	}

	if op == models.OperationDelete {
		return nil
	}

	payload, err := models.DecodePayload(table, change.Data)
	if err != nil {
		return err
	}

	if err := validation.ValidatePayload(payload); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// Pull обрабатывает GET /api/v1/sync/pull?since=<RFC3339Nano>.
// Возвращает записи пользователя, измененные строго после since, включая tombstones.
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		writeError(w, h.logger, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var since time.Time
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		var err error
		since, err = time.Parse(time.RFC3339Nano, sinceStr)
		if err != nil {
			h.logger.Warn("Invalid since parameter", "since", sinceStr, "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "invalid since parameter", err.Error())
			return
		}
	}

	h.logger.Info("Pull request", "user_id", userID, "since", since)

	// Штамп берется до чтения: изменения после него попадут в следующий pull
	serverTimestamp := h.storage.Now()

	records, err := h.storage.ChangesSince(ctx, userID, since)
	if err != nil {
		h.logger.Error("Failed to get changes", "error", err, "user_id", userID)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error", "")
		return
	}

	changes := make([]api.ServerChange, 0, len(records))
	for _, rec := range records {
		changes = append(changes, toServerChange(rec))
		if h.metrics != nil {
			h.metrics.ObservePulledChange(string(rec.Table))
		}
	}

	writeJSON(w, h.logger, http.StatusOK, api.PullResponse{
		Changes:         changes,
		ServerTimestamp: serverTimestamp,
	})

	h.logger.Info("Pull completed", "user_id", userID, "changes_count", len(changes))
}

// toServerChange конвертирует серверную запись в формат pull ответа
func toServerChange(rec *models.ServerRecord) api.ServerChange {
	op := models.OperationUpdate
	switch {
	case rec.Deleted:
		op = models.OperationDelete
	case rec.CreatedAt.Equal(rec.UpdatedAt):
		op = models.OperationCreate
	}

	data := rec.Data
	if len(data) == 0 || rec.Deleted {
		data = json.RawMessage(`{}`)
	}

	return api.ServerChange{
		UpdatedAt:       rec.UpdatedAt,
		ClientUpdatedAt: rec.ClientUpdatedAt,
		TableName:       string(rec.Table),
		Operation:       string(op),
		ServerID:        rec.ServerID,
		ClientID:        rec.ClientID,
		Data:            data,
	}
}

func (h *SyncHandler) observePush(table, outcome string) {
	if h.metrics == nil {
		return
	}
	if !models.TableName(table).Valid() {
		table = "unknown"
	}
	h.metrics.ObservePushChange(table, outcome)
}

// writeJSON отправляет JSON ответ
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError отправляет ошибку в формате api.ErrorResponse
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg, details string) {
	writeJSON(w, logger, status, api.ErrorResponse{Error: msg, Message: details})
}
