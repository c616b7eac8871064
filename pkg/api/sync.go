package api

import (
	"encoding/json"
	"time"
)

// Change представляет одну локальную мутацию в push запросе
type Change struct {
	ClientUpdatedAt time.Time       `json:"client_updated_at"`   // ClientUpdatedAt версия записи (ключ LWW)
	TableName       string          `json:"table_name"`          // TableName workout_sessions или workout_sets
	Operation       string          `json:"operation"`           // Operation create, update или delete
	ClientID        string          `json:"client_id"`           // ClientID постоянный клиентский идентификатор записи
	ServerID        string          `json:"server_id,omitempty"` // ServerID известный клиенту серверный идентификатор
	Data            json.RawMessage `json:"data"`                // Data снимок полей записи
}

// PushRequest представляет batch локальных изменений
type PushRequest struct {
	Changes []Change `json:"changes"`
}

// ChangeResult результат применения одного изменения.
// Порядок и количество результатов совпадают с Changes запроса.
type ChangeResult struct {
	ClientID string `json:"client_id"`
	ServerID string `json:"server_id,omitempty"`
	Error    string `json:"error,omitempty"`
	Success  bool   `json:"success"`
	Conflict bool   `json:"conflict,omitempty"` // Conflict серверная версия новее, изменение отклонено
}

// PushResponse представляет ответ сервера на push
type PushResponse struct {
	ServerTimestamp time.Time      `json:"server_timestamp"`
	Results         []ChangeResult `json:"results"`
}

// ServerChange представляет одно изменение на сервере в pull ответе
type ServerChange struct {
	UpdatedAt       time.Time       `json:"updated_at"`        // UpdatedAt серверный штамп изменения (граница watermark)
	ClientUpdatedAt time.Time       `json:"client_updated_at"` // ClientUpdatedAt версия записи, принятая сервером
	TableName       string          `json:"table_name"`
	Operation       string          `json:"operation"`
	ServerID        string          `json:"server_id"`
	ClientID        string          `json:"client_id,omitempty"`
	Data            json.RawMessage `json:"data"`
}

// PullResponse представляет ответ сервера на pull
type PullResponse struct {
	ServerTimestamp time.Time      `json:"server_timestamp"`
	Changes         []ServerChange `json:"changes"`
}
