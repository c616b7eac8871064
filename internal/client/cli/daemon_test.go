package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gymkeeper/internal/client/config"
	"github.com/iudanet/gymkeeper/internal/client/connectivity"
	"github.com/iudanet/gymkeeper/internal/client/sync"
	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/pkg/api"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// daemonFixture демон с моками; triggers получает каждый запуск синхронизации
type daemonFixture struct {
	daemon   *Daemon
	syncer   *SyncEngineMock
	planner  *RetryPlannerMock
	resetter *InterruptedResetterMock
	tokens   *TokenSetterMock
	signals  chan os.Signal
	triggers chan sync.Trigger
}

func newDaemonFixture(t *testing.T, syncInterval time.Duration) *daemonFixture {
	t.Helper()

	f := &daemonFixture{
		signals:  make(chan os.Signal, 1),
		triggers: make(chan sync.Trigger, 16),
	}
	f.syncer = &SyncEngineMock{
		SetOnlineFunc: func(online bool) {},
		TriggerFunc: func(ctx context.Context, trigger sync.Trigger) (*sync.CycleResult, error) {
			f.record(trigger)
			return &sync.CycleResult{Trigger: trigger}, nil
		},
	}
	f.planner = &RetryPlannerMock{
		NextAttemptFunc: func(ctx context.Context) (time.Time, bool, error) {
			return time.Time{}, false, nil
		},
	}
	f.resetter = &InterruptedResetterMock{
		ResetInProgressFunc: func(ctx context.Context) (int, error) { return 2, nil },
	}
	f.tokens = &TokenSetterMock{SetTokenFunc: func(token string) {}}

	checker := &connectivity.HealthCheckerMock{
		HealthFunc: func(ctx context.Context) (*api.HealthResponse, error) {
			return &api.HealthResponse{Status: "ok"}, nil
		},
	}

	f.daemon = NewDaemon(DaemonDeps{
		Syncer:       f.syncer,
		Planner:      f.planner,
		Resetter:     f.resetter,
		Tokens:       f.tokens,
		Monitor:      connectivity.NewMonitor(checker, f.syncer, time.Hour, discardLogger()),
		Clock:        clock.System{},
		Logger:       discardLogger(),
		SyncInterval: syncInterval,
		Foreground:   f.signals,
	})
	return f
}

// record запоминает запуск; запуск монитора соединения здесь не интересен
func (f *daemonFixture) record(trigger sync.Trigger) {
	if trigger == sync.TriggerConnectivity {
		return
	}
	select {
	case f.triggers <- trigger:
	default:
	}
}

// run запускает демон и возвращает функцию остановки, дожидающуюся выхода
func (f *daemonFixture) run(t *testing.T) func() {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.daemon.Run(ctx) }()

	return func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("daemon did not stop")
		}
	}
}

func (f *daemonFixture) waitTrigger(t *testing.T) sync.Trigger {
	t.Helper()
	select {
	case trigger := <-f.triggers:
		return trigger
	case <-time.After(2 * time.Second):
		t.Fatal("no sync was triggered")
		return ""
	}
}

func TestDaemon_ForegroundSignal(t *testing.T) {
	f := newDaemonFixture(t, time.Hour)
	stop := f.run(t)
	defer stop()

	f.signals <- syscall.SIGUSR1
	assert.Equal(t, sync.TriggerForeground, f.waitTrigger(t))
	assert.Len(t, f.resetter.ResetInProgressCalls(), 1)
}

func TestDaemon_RetryWhenBackoffExpires(t *testing.T) {
	f := newDaemonFixture(t, time.Hour)
	fired := false
	f.planner.NextAttemptFunc = func(ctx context.Context) (time.Time, bool, error) {
		if fired {
			return time.Time{}, false, nil
		}
		fired = true
		return time.Now().Add(20 * time.Millisecond), true, nil
	}

	stop := f.run(t)
	defer stop()

	assert.Equal(t, sync.TriggerRetry, f.waitTrigger(t))
}

func TestDaemon_PeriodicSync(t *testing.T) {
	f := newDaemonFixture(t, 20*time.Millisecond)
	stop := f.run(t)
	defer stop()

	assert.Equal(t, sync.TriggerForeground, f.waitTrigger(t))
}

func TestDaemon_SyncErrorsKeepRunning(t *testing.T) {
	f := newDaemonFixture(t, time.Hour)
	f.syncer.TriggerFunc = func(ctx context.Context, trigger sync.Trigger) (*sync.CycleResult, error) {
		f.record(trigger)
		return nil, sync.ErrOffline
	}

	stop := f.run(t)
	defer stop()

	f.signals <- syscall.SIGUSR1
	f.waitTrigger(t)
	f.signals <- syscall.SIGUSR1
	f.waitTrigger(t)
}

func TestDaemon_Reload(t *testing.T) {
	f := newDaemonFixture(t, time.Hour)
	tokens := make(chan string, 1)
	f.tokens.SetTokenFunc = func(token string) { tokens <- token }

	stop := f.run(t)
	defer stop()

	f.daemon.Reload(&config.Config{Token: "rotated", HealthInterval: time.Minute, SyncInterval: 20 * time.Millisecond})

	select {
	case token := <-tokens:
		assert.Equal(t, "rotated", token)
	case <-time.After(2 * time.Second):
		t.Fatal("config was not applied")
	}

	// новый интервал синхронизации подхвачен
	assert.Equal(t, sync.TriggerForeground, f.waitTrigger(t))
}

func TestDaemon_ReloadKeepsLatest(t *testing.T) {
	f := newDaemonFixture(t, time.Hour)

	f.daemon.Reload(&config.Config{Token: "first"})
	f.daemon.Reload(&config.Config{Token: "second"})

	require.Len(t, f.daemon.reloads, 1)
	assert.Equal(t, "second", (<-f.daemon.reloads).Token)
}

func TestDaemon_ResetFailureStops(t *testing.T) {
	f := newDaemonFixture(t, time.Hour)
	f.resetter.ResetInProgressFunc = func(ctx context.Context) (int, error) {
		return 0, assert.AnError
	}

	err := f.daemon.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
