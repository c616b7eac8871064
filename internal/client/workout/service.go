// Package workout реализует локальные операции с тренировками и подходами.
// Каждая мутация сохраняет запись и ставит изменение в outbox одной транзакцией.
package workout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gymkeeper/internal/client/storage"
	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/internal/models"
	"github.com/iudanet/gymkeeper/internal/validation"
)

//go:generate moq -out service_mock.go . Service

// ErrNotFound тренировка или подход не найдены (или удалены локально)
var ErrNotFound = errors.New("not found")

// Service определяет интерфейс клиентского сервиса тренировок
type Service interface {
	CreateSession(ctx context.Context, payload *models.SessionPayload) (*Session, error)
	UpdateSession(ctx context.Context, clientID string, payload *models.SessionPayload) (*Session, error)
	DeleteSession(ctx context.Context, clientID string) error
	ListSessions(ctx context.Context) ([]*Session, error)
	GetSessionWithSets(ctx context.Context, clientID string) (*SessionWithSets, error)

	GetSet(ctx context.Context, clientID string) (*Set, error)
	AddSet(ctx context.Context, payload *models.SetPayload) (*Set, error)
	UpdateSet(ctx context.Context, clientID string, payload *models.SetPayload) (*Set, error)
	DeleteSet(ctx context.Context, clientID string) error
}

// RecordInfo синхронизационные поля записи
type RecordInfo struct {
	ClientID   string
	ServerID   string
	SyncStatus models.SyncStatus
	UpdatedAt  time.Time // UpdatedAt client_updated_at последней локальной правки
}

// Session тренировка вместе с состоянием синхронизации
type Session struct {
	RecordInfo
	Payload models.SessionPayload
}

// Set подход вместе с состоянием синхронизации
type Set struct {
	RecordInfo
	Payload models.SetPayload
}

// SessionWithSets тренировка с подходами, упорядоченными по set_number
type SessionWithSets struct {
	Session *Session
	Sets    []*Set
}

// service handles local workout writes through the outbox
type service struct {
	store storage.LocalStore
	clock clock.Clock
	newID func() string
}

// NewService создает сервис тренировок.
// clk должен выдавать строго возрастающие штампы (clock.Monotonic).
func NewService(store storage.LocalStore, clk clock.Clock) Service {
	return &service{
		store: store,
		clock: clk,
		newID: func() string { return uuid.New().String() },
	}
}

// CreateSession создает тренировку с новым client_id
func (s *service) CreateSession(ctx context.Context, payload *models.SessionPayload) (*Session, error) {
	if err := validation.ValidateSession(payload); err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}

	rec, err := s.write(ctx, &models.LocalRecord{Table: models.TableSessions, ClientID: s.newID()}, payload, models.OperationCreate)
	if err != nil {
		return nil, err
	}
	return toSession(rec)
}

// UpdateSession заменяет поля тренировки целиком
func (s *service) UpdateSession(ctx context.Context, clientID string, payload *models.SessionPayload) (*Session, error) {
	if err := validation.ValidateSession(payload); err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}

	rec, err := s.load(ctx, models.TableSessions, clientID)
	if err != nil {
		return nil, err
	}

	rec, err = s.write(ctx, rec, payload, models.OperationUpdate)
	if err != nil {
		return nil, err
	}
	return toSession(rec)
}

// DeleteSession удаляет тренировку и все ее подходы
func (s *service) DeleteSession(ctx context.Context, clientID string) error {
	rec, err := s.load(ctx, models.TableSessions, clientID)
	if err != nil {
		return err
	}

	sets, err := s.listSets(ctx, clientID)
	if err != nil {
		return err
	}

	// Подходы удаляются раньше тренировки, чтобы сервер не видел подходов без тренировки
	for _, set := range sets {
		if err := s.remove(ctx, set); err != nil {
			return err
		}
	}

	return s.remove(ctx, rec)
}

// ListSessions возвращает тренировки, начиная с последней
func (s *service) ListSessions(ctx context.Context) ([]*Session, error) {
	records, err := s.store.ListRecords(ctx, models.TableSessions, live)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*Session, 0, len(records))
	for _, rec := range records {
		session, err := toSession(rec)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Payload.StartedAt.After(sessions[j].Payload.StartedAt)
	})

	return sessions, nil
}

// GetSessionWithSets возвращает тренировку с подходами
func (s *service) GetSessionWithSets(ctx context.Context, clientID string) (*SessionWithSets, error) {
	rec, err := s.load(ctx, models.TableSessions, clientID)
	if err != nil {
		return nil, err
	}

	session, err := toSession(rec)
	if err != nil {
		return nil, err
	}

	setRecords, err := s.listSets(ctx, clientID)
	if err != nil {
		return nil, err
	}

	sets := make([]*Set, 0, len(setRecords))
	for _, setRec := range setRecords {
		set, err := toSet(setRec)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}

	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].Payload.SetNumber < sets[j].Payload.SetNumber
	})

	return &SessionWithSets{Session: session, Sets: sets}, nil
}

// GetSet возвращает подход по client_id
func (s *service) GetSet(ctx context.Context, clientID string) (*Set, error) {
	rec, err := s.load(ctx, models.TableSets, clientID)
	if err != nil {
		return nil, err
	}
	return toSet(rec)
}

// AddSet добавляет подход к существующей тренировке.
// Нулевой set_number заменяется следующим номером в тренировке.
func (s *service) AddSet(ctx context.Context, payload *models.SetPayload) (*Set, error) {
	if _, err := s.load(ctx, models.TableSessions, payload.SessionClientID); err != nil {
		return nil, fmt.Errorf("session %s: %w", payload.SessionClientID, err)
	}

	if payload.SetNumber == 0 {
		next, err := s.nextSetNumber(ctx, payload.SessionClientID)
		if err != nil {
			return nil, err
		}
		payload.SetNumber = next
	}

	if err := validation.ValidateSet(payload); err != nil {
		return nil, fmt.Errorf("invalid set: %w", err)
	}

	rec, err := s.write(ctx, &models.LocalRecord{Table: models.TableSets, ClientID: s.newID()}, payload, models.OperationCreate)
	if err != nil {
		return nil, err
	}
	return toSet(rec)
}

// UpdateSet заменяет поля подхода целиком
func (s *service) UpdateSet(ctx context.Context, clientID string, payload *models.SetPayload) (*Set, error) {
	if err := validation.ValidateSet(payload); err != nil {
		return nil, fmt.Errorf("invalid set: %w", err)
	}

	rec, err := s.load(ctx, models.TableSets, clientID)
	if err != nil {
		return nil, err
	}

	rec, err = s.write(ctx, rec, payload, models.OperationUpdate)
	if err != nil {
		return nil, err
	}
	return toSet(rec)
}

// DeleteSet удаляет подход
func (s *service) DeleteSet(ctx context.Context, clientID string) error {
	rec, err := s.load(ctx, models.TableSets, clientID)
	if err != nil {
		return err
	}
	return s.remove(ctx, rec)
}

// load возвращает живую запись или ErrNotFound
func (s *service) load(ctx context.Context, table models.TableName, clientID string) (*models.LocalRecord, error) {
	rec, err := s.store.GetRecord(ctx, table, clientID)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s %s: %w", table, clientID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", table, clientID, err)
	}
	if rec.Deleted {
		return nil, fmt.Errorf("%s %s: %w", table, clientID, ErrNotFound)
	}
	return rec, nil
}

func (s *service) write(ctx context.Context, rec *models.LocalRecord, payload models.Payload, op models.Operation) (*models.LocalRecord, error) {
	data, err := models.EncodePayload(payload)
	if err != nil {
		return nil, err
	}

	rec.Data = data
	rec.ClientUpdatedAt = s.clock.Now()

	if _, err := s.store.ApplyLocalMutation(ctx, rec, op); err != nil {
		return nil, fmt.Errorf("failed to %s %s %s: %w", op, rec.Table, rec.ClientID, err)
	}
	return rec, nil
}

func (s *service) remove(ctx context.Context, rec *models.LocalRecord) error {
	rec.ClientUpdatedAt = s.clock.Now()
	if _, err := s.store.ApplyLocalMutation(ctx, rec, models.OperationDelete); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", rec.Table, rec.ClientID, err)
	}
	return nil
}

func (s *service) listSets(ctx context.Context, sessionClientID string) ([]*models.LocalRecord, error) {
	records, err := s.store.ListRecords(ctx, models.TableSets, func(r *models.LocalRecord) bool {
		if r.Deleted {
			return false
		}
		payload, err := models.DecodePayload(models.TableSets, r.Data)
		if err != nil {
			return false
		}
		return payload.(*models.SetPayload).SessionClientID == sessionClientID
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}
	return records, nil
}

func (s *service) nextSetNumber(ctx context.Context, sessionClientID string) (int, error) {
	records, err := s.listSets(ctx, sessionClientID)
	if err != nil {
		return 0, err
	}

	next := 1
	for _, rec := range records {
		set, err := toSet(rec)
		if err != nil {
			return 0, err
		}
		if set.Payload.SetNumber >= next {
			next = set.Payload.SetNumber + 1
		}
	}
	return next, nil
}

// StampObserver принимает уже выданные штампы (реализует clock.Monotonic)
type StampObserver interface {
	Observe(t time.Time)
}

// RestoreClock продолжает последовательность штампов после перезапуска:
// следующая локальная правка получит client_updated_at больше любой сохраненной версии.
func RestoreClock(ctx context.Context, records storage.RecordStorage, clk StampObserver) error {
	for _, table := range models.Tables {
		recs, err := records.ListRecords(ctx, table, nil)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", table, err)
		}
		for _, rec := range recs {
			clk.Observe(rec.ClientUpdatedAt)
		}
	}
	return nil
}

func live(r *models.LocalRecord) bool {
	return !r.Deleted
}

func recordInfo(rec *models.LocalRecord) RecordInfo {
	return RecordInfo{
		ClientID:   rec.ClientID,
		ServerID:   rec.ServerID,
		SyncStatus: rec.SyncStatus,
		UpdatedAt:  rec.ClientUpdatedAt,
	}
}

func toSession(rec *models.LocalRecord) (*Session, error) {
	payload, err := models.DecodePayload(models.TableSessions, rec.Data)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", rec.ClientID, err)
	}
	return &Session{RecordInfo: recordInfo(rec), Payload: *payload.(*models.SessionPayload)}, nil
}

func toSet(rec *models.LocalRecord) (*Set, error) {
	payload, err := models.DecodePayload(models.TableSets, rec.Data)
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", rec.ClientID, err)
	}
	return &Set{RecordInfo: recordInfo(rec), Payload: *payload.(*models.SetPayload)}, nil
}
