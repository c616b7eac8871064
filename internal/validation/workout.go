package validation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gymkeeper/internal/models"
)

const (
	// MaxReps максимальное количество повторений в подходе
	MaxReps = 999
	// MinRPE и MaxRPE границы шкалы субъективной нагрузки
	MinRPE = 1
	MaxRPE = 10
	// MaxNotesLen максимальная длина заметки к тренировке
	MaxNotesLen = 500
)

// workoutDateLayout формат поля workout_date
const workoutDateLayout = "2006-01-02"

// ValidatePayload проверяет доменные ограничения payload в зависимости от его типа
func ValidatePayload(payload models.Payload) error {
	switch p := payload.(type) {
	case *models.SessionPayload:
		return ValidateSession(p)
	case *models.SetPayload:
		return ValidateSet(p)
	default:
		return fmt.Errorf("unsupported payload type %T", payload)
	}
}

// ValidateSession проверяет поля тренировки
func ValidateSession(p *models.SessionPayload) error {
	if p.StartedAt.IsZero() {
		return fmt.Errorf("started_at is required")
	}

	if p.RoutineID != "" {
		if _, err := uuid.Parse(p.RoutineID); err != nil {
			return fmt.Errorf("routine_id must be a UUID: %w", err)
		}
	}

	if p.CompletedAt != nil && p.CompletedAt.Before(p.StartedAt) {
		return fmt.Errorf("completed_at must not be before started_at")
	}

	if p.DurationSeconds < 0 {
		return fmt.Errorf("duration_seconds must not be negative")
	}

	if p.TotalVolume != nil && *p.TotalVolume < 0 {
		return fmt.Errorf("total_volume must not be negative")
	}

	if len(p.Notes) > MaxNotesLen {
		return fmt.Errorf("notes must not exceed %d characters", MaxNotesLen)
	}

	if p.WorkoutDate != "" {
		if _, err := time.Parse(workoutDateLayout, p.WorkoutDate); err != nil {
			return fmt.Errorf("workout_date must be in YYYY-MM-DD format")
		}
	}

	switch p.SessionType {
	case "", models.SessionTypeRealtime, models.SessionTypeManual:
	default:
		return fmt.Errorf("session_type must be %q or %q", models.SessionTypeRealtime, models.SessionTypeManual)
	}

	return nil
}

// ValidateSet проверяет поля подхода
func ValidateSet(p *models.SetPayload) error {
	if p.SessionClientID == "" {
		return fmt.Errorf("session_client_id is required")
	}

	if _, err := uuid.Parse(p.ExerciseID); err != nil {
		return fmt.Errorf("exercise_id must be a UUID")
	}

	if p.SetNumber < 1 {
		return fmt.Errorf("set_number must be at least 1")
	}

	if p.Reps < 0 || p.Reps > MaxReps {
		return fmt.Errorf("reps must be between 0 and %d", MaxReps)
	}

	if p.Weight != nil && *p.Weight < 0 {
		return fmt.Errorf("weight must not be negative")
	}

	if p.RPE != nil && (*p.RPE < MinRPE || *p.RPE > MaxRPE) {
		return fmt.Errorf("rpe must be between %d and %d", MinRPE, MaxRPE)
	}

	return nil
}
