package models

import (
	"encoding/json"
	"time"
)

// OutboxStatus состояние элемента очереди отправки
type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "pending"
	OutboxStatusInProgress OutboxStatus = "in_progress"
	OutboxStatusFailed     OutboxStatus = "failed"
	OutboxStatusCompleted  OutboxStatus = "completed"
)

// DefaultMaxRetries количество попыток, после которого элемент помечается failed
const DefaultMaxRetries = 3

// OutboxItem представляет одну локальную мутацию, ожидающую отправки на сервер.
// Payload содержит снимок полей записи на момент постановки в очередь, а не ссылку на запись;
// последующие локальные правки порождают новый OutboxItem.
type OutboxItem struct {
	CreatedAt       time.Time       `json:"created_at"`
	ClientUpdatedAt time.Time       `json:"client_updated_at"`           // ClientUpdatedAt версия записи в снимке
	LastAttemptedAt *time.Time      `json:"last_attempted_at,omitempty"` // LastAttemptedAt время последней попытки отправки
	NextAttemptAt   *time.Time      `json:"next_attempt_at,omitempty"`   // NextAttemptAt раньше этого времени элемент не отправляется
	Table           TableName       `json:"table_name"`
	Operation       Operation       `json:"operation"`
	RecordClientID  string          `json:"record_client_id"`
	Status          OutboxStatus    `json:"status"`
	ErrorMessage    string          `json:"error_message,omitempty"`
	Payload         json.RawMessage `json:"payload"`
	ID              uint64          `json:"id"` // ID локальный монотонный номер, задает порядок отправки
	RetryCount      int             `json:"retry_count"`
	MaxRetries      int             `json:"max_retries"`
}

// Eligible сообщает, можно ли отправлять pending элемент в момент now
func (i *OutboxItem) Eligible(now time.Time) bool {
	if i.Status != OutboxStatusPending {
		return false
	}
	return i.NextAttemptAt == nil || !i.NextAttemptAt.After(now)
}

// Unresolved возвращает true, пока элемент может быть отправлен (pending или in_progress)
func (i *OutboxItem) Unresolved() bool {
	return i.Status == OutboxStatusPending || i.Status == OutboxStatusInProgress
}

// CanTransition проверяет допустимость перехода статуса элемента очереди.
// failed -> pending разрешен только для явного повтора пользователем.
func CanTransition(from, to OutboxStatus) bool {
	switch from {
	case OutboxStatusPending:
		return to == OutboxStatusInProgress
	case OutboxStatusInProgress:
		return to == OutboxStatusCompleted || to == OutboxStatusPending || to == OutboxStatusFailed
	case OutboxStatusFailed:
		return to == OutboxStatusPending
	default:
		return false
	}
}
