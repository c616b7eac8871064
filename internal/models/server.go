package models

import (
	"encoding/json"
	"time"
)

// ServerRecord представляет запись в серверном хранилище синхронизации.
// Хранит два штампа: ClientUpdatedAt - версию, принятую по правилу LWW,
// и UpdatedAt - монотонный серверный штамп изменения, по которому работает pull.
type ServerRecord struct {
	ClientUpdatedAt time.Time       // ClientUpdatedAt версия последней принятой записи
	UpdatedAt       time.Time       // UpdatedAt серверный штамп последнего изменения
	CreatedAt       time.Time       // CreatedAt время первой вставки
	UserID          string          // UserID владелец записи
	Table           TableName       // Table таблица записи
	ServerID        string          // ServerID идентификатор, выданный сервером
	ClientID        string          // ClientID идентификатор, выданный клиентом
	Data            json.RawMessage // Data доменные поля
	Deleted         bool            // Deleted soft delete (tombstone)
}

// ChangeOutcome результат применения одного изменения на сервере
type ChangeOutcome string

const (
	OutcomeInserted ChangeOutcome = "inserted" // новая запись
	OutcomeUpdated  ChangeOutcome = "updated"  // перезапись более новой версией
	OutcomeDeleted  ChangeOutcome = "deleted"  // tombstone
	OutcomeReplayed ChangeOutcome = "replayed" // повторная доставка, no-op
	OutcomeConflict ChangeOutcome = "conflict" // сохраненная версия не старее входящей
	OutcomeNotFound ChangeOutcome = "not_found"
)

// Success сообщает, считается ли исход успешным для клиента
func (o ChangeOutcome) Success() bool {
	switch o {
	case OutcomeInserted, OutcomeUpdated, OutcomeDeleted, OutcomeReplayed:
		return true
	default:
		return false
	}
}
