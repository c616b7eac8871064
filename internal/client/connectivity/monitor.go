// Package connectivity следит за доступностью сервера синхронизации.
package connectivity

import (
	"context"
	"errors"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/iudanet/gymkeeper/internal/client/sync"
	"github.com/iudanet/gymkeeper/pkg/api"
)

const (
	// DefaultInterval период опроса health по умолчанию
	DefaultInterval = 30 * time.Second

	// probeTimeout ограничивает один health запрос
	probeTimeout = 5 * time.Second

	statusOK = "ok"
)

//go:generate moq -out monitor_mock.go . HealthChecker Syncer

// HealthChecker выполняет health запрос к серверу
type HealthChecker interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// Syncer принимает признак сети и запускает синхронизацию
type Syncer interface {
	SetOnline(online bool)
	Trigger(ctx context.Context, trigger sync.Trigger) (*sync.CycleResult, error)
}

// Monitor периодически опрашивает сервер и сообщает оркестратору о переходах online/offline.
// До первой удачной проверки клиент считается offline, поэтому первая же
// доступность сервера запускает синхронизацию.
type Monitor struct {
	checker  HealthChecker
	syncer   Syncer
	logger   *slog.Logger
	interval time.Duration

	mu     stdsync.Mutex
	online bool
}

// NewMonitor создает монитор; interval <= 0 заменяется DefaultInterval
func NewMonitor(checker HealthChecker, syncer Syncer, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		checker:  checker,
		syncer:   syncer,
		logger:   logger,
		interval: interval,
	}
}

// SetInterval меняет период опроса, новое значение применяется со следующего тика
func (m *Monitor) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	m.mu.Lock()
	m.interval = interval
	m.mu.Unlock()
}

// Online возвращает результат последней проверки
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Run опрашивает сервер до отмены ctx
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	for {
		m.mu.Lock()
		interval := m.interval
		m.mu.Unlock()

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			m.Check(ctx)
		}
	}
}

// Check выполняет одну проверку и возвращает текущую доступность сервера.
// Переход offline -> online синхронно запускает цикл с TriggerConnectivity.
func (m *Monitor) Check(ctx context.Context) bool {
	online := m.probe(ctx)

	m.mu.Lock()
	wasOnline := m.online
	m.online = online
	m.mu.Unlock()

	m.syncer.SetOnline(online)

	switch {
	case online && !wasOnline:
		m.logger.Info("Server is reachable")
		m.trigger(ctx)
	case !online && wasOnline:
		m.logger.Warn("Server is unreachable, switching to offline")
	}

	return online
}

func (m *Monitor) probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	resp, err := m.checker.Health(probeCtx)
	if err != nil {
		m.logger.Debug("Health check failed", "error", err)
		return false
	}
	if resp.Status != statusOK {
		m.logger.Debug("Server reported unhealthy status", "status", resp.Status)
		return false
	}
	return true
}

func (m *Monitor) trigger(ctx context.Context) {
	_, err := m.syncer.Trigger(ctx, sync.TriggerConnectivity)
	switch {
	case err == nil:
	case errors.Is(err, sync.ErrSyncInProgress):
		m.logger.Debug("Sync already running, connectivity trigger coalesced")
	default:
		m.logger.Warn("Sync after reconnect failed", "error", err)
	}
}
