package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Payload доменные данные синхронизируемой записи.
// Реализации: *SessionPayload (workout_sessions) и *SetPayload (workout_sets).
type Payload interface {
	Table() TableName
}

// SessionType способ записи тренировки
type SessionType string

const (
	SessionTypeRealtime SessionType = "realtime" // тренировка записывается по ходу выполнения
	SessionTypeManual   SessionType = "manual"   // тренировка внесена задним числом
)

// SessionPayload представляет тренировку.
type SessionPayload struct {
	StartedAt       time.Time   `json:"started_at"`                 // StartedAt время начала тренировки
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`     // CompletedAt время завершения (nil пока тренировка идет)
	TotalVolume     *float64    `json:"total_volume,omitempty"`     // TotalVolume суммарный тоннаж
	RoutineID       string      `json:"routine_id,omitempty"`       // RoutineID программа, по которой выполнялась тренировка
	Notes           string      `json:"notes,omitempty"`            // Notes заметки пользователя
	WorkoutDate     string      `json:"workout_date,omitempty"`     // WorkoutDate дата тренировки в формате YYYY-MM-DD
	SessionType     SessionType `json:"session_type,omitempty"`     // SessionType realtime или manual
	DurationSeconds int         `json:"duration_seconds,omitempty"` // DurationSeconds длительность в секундах
}

// Table реализует Payload
func (p *SessionPayload) Table() TableName { return TableSessions }

// SetPayload представляет один подход упражнения.
type SetPayload struct {
	CompletedAt     time.Time `json:"completed_at"`
	Weight          *float64  `json:"weight,omitempty"`
	RPE             *int      `json:"rpe,omitempty"`
	SessionClientID string    `json:"session_client_id"` // SessionClientID client_id тренировки, к которой относится подход
	ExerciseID      string    `json:"exercise_id"`
	SetNumber       int       `json:"set_number"`
	Reps            int       `json:"reps"`
	IsWarmup        bool      `json:"is_warmup"`
	IsPR            bool      `json:"is_pr"`
}

// Table реализует Payload
func (p *SetPayload) Table() TableName { return TableSets }

// DecodePayload декодирует data в вариант Payload, соответствующий таблице
func DecodePayload(table TableName, data json.RawMessage) (Payload, error) {
	var payload Payload

	switch table {
	case TableSessions:
		payload = &SessionPayload{}
	case TableSets:
		payload = &SetPayload{}
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty payload for table %s", table)
	}

	if err := json.Unmarshal(data, payload); err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", table, err)
	}

	return payload, nil
}

// EncodePayload сериализует payload для хранения и передачи
func EncodePayload(payload Payload) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", payload.Table(), err)
	}
	return data, nil
}
