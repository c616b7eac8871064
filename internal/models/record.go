package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TableName идентифицирует тип синхронизируемой сущности
type TableName string

const (
	TableSessions TableName = "workout_sessions" // тренировки
	TableSets     TableName = "workout_sets"     // подходы внутри тренировки
)

// Tables перечисляет все синхронизируемые таблицы в порядке, в котором их удобно обходить
var Tables = []TableName{TableSessions, TableSets}

// Valid проверяет, что таблица известна движку синхронизации
func (t TableName) Valid() bool {
	switch t {
	case TableSessions, TableSets:
		return true
	default:
		return false
	}
}

// Operation тип изменения записи
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Valid проверяет, что операция поддерживается протоколом
func (o Operation) Valid() bool {
	switch o {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	default:
		return false
	}
}

// SyncStatus состояние синхронизации локальной записи
type SyncStatus string

const (
	SyncStatusPending  SyncStatus = "pending"  // есть неотправленные локальные изменения
	SyncStatusSynced   SyncStatus = "synced"   // сервер принял последнюю версию
	SyncStatusConflict SyncStatus = "conflict" // сервер отклонил запись, его версия новее
)

// LocalRecord представляет синхронизируемую запись в локальном хранилище клиента.
// Data содержит JSON доменного payload (SessionPayload или SetPayload),
// движок синхронизации его не интерпретирует.
type LocalRecord struct {
	ClientUpdatedAt time.Time       `json:"client_updated_at"`   // ClientUpdatedAt время последнего локального изменения (ключ LWW)
	Table           TableName       `json:"table_name"`          // Table таблица, к которой относится запись
	ClientID        string          `json:"client_id"`           // ClientID постоянный идентификатор, выданный клиентом
	ServerID        string          `json:"server_id,omitempty"` // ServerID идентификатор, выданный сервером после первого успешного push
	SyncStatus      SyncStatus      `json:"sync_status"`         // SyncStatus состояние синхронизации
	Data            json.RawMessage `json:"data"`                // Data доменные поля записи
	Deleted         bool            `json:"deleted,omitempty"`   // Deleted локальный tombstone, ждущий отправки delete
}

// CheckInvariant проверяет, что synced запись имеет server_id
func (r *LocalRecord) CheckInvariant() error {
	if r.SyncStatus == SyncStatusSynced && r.ServerID == "" {
		return fmt.Errorf("record %s/%s is synced without server_id", r.Table, r.ClientID)
	}
	return nil
}

// Clone создает глубокую копию записи
func (r *LocalRecord) Clone() *LocalRecord {
	data := make(json.RawMessage, len(r.Data))
	copy(data, r.Data)

	clone := *r
	clone.Data = data
	return &clone
}
