package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/gymkeeper/internal/client/storage"
	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/internal/models"
)

var (
	// ErrSyncInProgress триггер пришел во время активного цикла и был поглощен
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrOffline триггер требует сети, а клиент считается offline
	ErrOffline = errors.New("client is offline")
)

// State состояние оркестратора
type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
	StateError   State = "error"
)

// Trigger источник запуска цикла синхронизации
type Trigger string

const (
	TriggerConnectivity Trigger = "connectivity" // связь восстановлена
	TriggerForeground   Trigger = "foreground"   // приложение на переднем плане при наличии сети
	TriggerManual       Trigger = "manual"       // явная команда пользователя
	TriggerRetry        Trigger = "retry"        // истек backoff одного из элементов
)

// requiresOnline сообщает, пропускается ли триггер в offline
func (t Trigger) requiresOnline() bool {
	return t == TriggerForeground || t == TriggerRetry
}

// StateListener получает переходы состояния; err заполнен только для StateError
type StateListener func(state State, err error)

// CycleResult итог одного цикла push-then-pull
type CycleResult struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Push       *PushResult
	Pull       *PullResult
	Trigger    Trigger
}

// Indicator значение индикатора синхронизации для пользователя
type Indicator string

const (
	IndicatorSyncing Indicator = "syncing"
	IndicatorOffline Indicator = "offline"
	IndicatorError   Indicator = "error"
	IndicatorIdle    Indicator = "idle"
)

// Status снимок состояния синхронизации
type Status struct {
	LastSyncAt time.Time
	LastError  string
	Indicator  Indicator
	State      State
	Pending    int // Pending элементов ждут отправки (включая in_progress)
	Failed     int // Failed элементов требуют внимания пользователя
	Conflicts  int // Conflicts записей в статусе conflict
	Online     bool
}

// String форматирует индикатор: syncing, offline, error(N) или idle.
// Ошибка последнего цикла без failed и conflict записей выводится как error без счетчика.
func (s *Status) String() string {
	if s.Indicator == IndicatorError {
		if n := s.Failed + s.Conflicts; n > 0 {
			return fmt.Sprintf("error(%d)", n)
		}
	}
	return string(s.Indicator)
}

// Orchestrator запускает циклы синхронизации и гарантирует, что одновременно идет не более одного
type Orchestrator struct {
	pusher *Pusher
	puller *Puller
	store  storage.LocalStore
	clock  clock.Clock
	logger *slog.Logger

	running atomic.Bool
	online  atomic.Bool

	mu         stdsync.Mutex
	state      State
	lastErr    error
	lastSyncAt time.Time
	listeners  map[int]StateListener
	nextID     int
}

// NewOrchestrator creates a new sync orchestrator, initially idle and online
func NewOrchestrator(pusher *Pusher, puller *Puller, store storage.LocalStore, clk clock.Clock, logger *slog.Logger) *Orchestrator {
	o := &Orchestrator{
		pusher:    pusher,
		puller:    puller,
		store:     store,
		clock:     clk,
		logger:    logger,
		state:     StateIdle,
		listeners: make(map[int]StateListener),
	}
	o.online.Store(true)
	return o
}

// Subscribe registers a state listener and returns a function removing it
func (o *Orchestrator) Subscribe(fn StateListener) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextID
	o.nextID++
	o.listeners[id] = fn

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.listeners, id)
	}
}

// SetOnline обновляет признак наличия сети (вызывается монитором соединения)
func (o *Orchestrator) SetOnline(online bool) {
	o.online.Store(online)
}

// Online reports the last known connectivity
func (o *Orchestrator) Online() bool {
	return o.online.Load()
}

// State returns the current state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastError returns the error of the last failed cycle, nil after a successful one
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Trigger runs one push-then-pull cycle in the caller's goroutine.
// Если цикл уже идет, возвращает ErrSyncInProgress сразу, не ставя запуск в очередь.
func (o *Orchestrator) Trigger(ctx context.Context, trigger Trigger) (*CycleResult, error) {
	if trigger.requiresOnline() && !o.online.Load() {
		return nil, ErrOffline
	}

	if !o.running.CompareAndSwap(false, true) {
		o.logger.Debug("Sync trigger coalesced", "trigger", trigger)
		return nil, ErrSyncInProgress
	}
	defer o.running.Store(false)

	o.setState(StateSyncing, nil)
	o.logger.Info("Starting synchronization", "trigger", trigger)

	result, err := o.runCycle(ctx, trigger)
	if err != nil {
		o.logger.Error("Synchronization failed", "trigger", trigger, "error", err)
		o.setState(StateError, err)
		o.setState(StateIdle, nil)
		return result, err
	}

	o.mu.Lock()
	o.lastErr = nil
	o.lastSyncAt = result.FinishedAt
	o.mu.Unlock()

	o.setState(StateIdle, nil)
	return result, nil
}

func (o *Orchestrator) runCycle(ctx context.Context, trigger Trigger) (*CycleResult, error) {
	result := &CycleResult{Trigger: trigger, StartedAt: o.clock.Now()}

	// in_progress на старте цикла остался от прерванной попытки
	if n, err := o.store.ResetInProgress(ctx); err != nil {
		return result, fmt.Errorf("failed to reset interrupted items: %w", err)
	} else if n > 0 {
		o.logger.Warn("Returned interrupted items to pending", "count", n)
	}

	push, err := o.pusher.Push(ctx)
	result.Push = push
	if err != nil {
		// Ошибка push завершает цикл без pull
		result.FinishedAt = o.clock.Now()
		return result, err
	}

	pull, err := o.puller.Pull(ctx)
	result.Pull = pull
	result.FinishedAt = o.clock.Now()
	if err != nil {
		return result, err
	}

	return result, nil
}

func (o *Orchestrator) setState(state State, err error) {
	o.mu.Lock()
	o.state = state
	if state == StateError {
		o.lastErr = err
	}
	listeners := make([]StateListener, 0, len(o.listeners))
	for _, l := range o.listeners {
		listeners = append(listeners, l)
	}
	o.mu.Unlock()

	for _, l := range listeners {
		l(state, err)
	}
}

// Status собирает индикатор и счетчики очереди
func (o *Orchestrator) Status(ctx context.Context) (*Status, error) {
	counts, err := o.store.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count outbox items: %w", err)
	}

	conflicts := 0
	for _, table := range models.Tables {
		records, err := o.store.ListRecords(ctx, table, func(r *models.LocalRecord) bool {
			return r.SyncStatus == models.SyncStatusConflict
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list conflicts: %w", err)
		}
		conflicts += len(records)
	}

	o.mu.Lock()
	st := &Status{
		State:      o.state,
		LastSyncAt: o.lastSyncAt,
		Online:     o.online.Load(),
		Pending:    counts[models.OutboxStatusPending] + counts[models.OutboxStatusInProgress],
		Failed:     counts[models.OutboxStatusFailed],
		Conflicts:  conflicts,
	}
	if o.lastErr != nil {
		st.LastError = o.lastErr.Error()
	}
	o.mu.Unlock()

	switch {
	case st.State == StateSyncing:
		st.Indicator = IndicatorSyncing
	case !st.Online:
		st.Indicator = IndicatorOffline
	case st.LastError != "" || st.Failed > 0 || st.Conflicts > 0:
		st.Indicator = IndicatorError
	default:
		st.Indicator = IndicatorIdle
	}

	return st, nil
}
