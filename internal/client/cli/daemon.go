package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/gymkeeper/internal/client/config"
	"github.com/iudanet/gymkeeper/internal/client/connectivity"
	"github.com/iudanet/gymkeeper/internal/client/sync"
	"github.com/iudanet/gymkeeper/internal/clock"
)

//go:generate moq -out daemon_mock.go . RetryPlanner InterruptedResetter TokenSetter

// RetryPlanner сообщает ближайшее время повторной отправки (реализует sync.Scheduler)
type RetryPlanner interface {
	NextAttempt(ctx context.Context) (time.Time, bool, error)
}

// InterruptedResetter возвращает в pending элементы, прерванные предыдущим запуском
type InterruptedResetter interface {
	ResetInProgress(ctx context.Context) (int, error)
}

// TokenSetter меняет bearer токен API клиента
type TokenSetter interface {
	SetToken(token string)
}

// Daemon держит синхронизацию в фоне: следит за сетью, повторяет отправку
// по истечении backoff, синхронизирует периодически и по SIGUSR1.
type Daemon struct {
	syncer   SyncEngine
	planner  RetryPlanner
	resetter InterruptedResetter
	tokens   TokenSetter
	monitor  *connectivity.Monitor
	clock    clock.Clock
	logger   *slog.Logger

	syncInterval time.Duration
	foreground   <-chan os.Signal
	reloads      chan *config.Config
}

// DaemonDeps зависимости демона
type DaemonDeps struct {
	Syncer       SyncEngine
	Planner      RetryPlanner
	Resetter     InterruptedResetter
	Tokens       TokenSetter
	Monitor      *connectivity.Monitor
	Clock        clock.Clock
	Logger       *slog.Logger
	SyncInterval time.Duration
	Foreground   <-chan os.Signal // Foreground сигналы, запускающие TriggerForeground
}

func NewDaemon(deps DaemonDeps) *Daemon {
	return &Daemon{
		syncer:       deps.Syncer,
		planner:      deps.Planner,
		resetter:     deps.Resetter,
		tokens:       deps.Tokens,
		monitor:      deps.Monitor,
		clock:        deps.Clock,
		logger:       deps.Logger,
		syncInterval: deps.SyncInterval,
		foreground:   deps.Foreground,
		reloads:      make(chan *config.Config, 1),
	}
}

// Reload передает новую конфигурацию в цикл демона; устаревшая непримененная заменяется
func (d *Daemon) Reload(cfg *config.Config) {
	for {
		select {
		case d.reloads <- cfg:
			return
		default:
		}
		select {
		case <-d.reloads:
		default:
		}
	}
}

// Run работает до отмены ctx
func (d *Daemon) Run(ctx context.Context) error {
	n, err := d.resetter.ResetInProgress(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset interrupted items: %w", err)
	}
	if n > 0 {
		d.logger.Warn("Returned interrupted items to pending", "count", n)
	}

	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		d.monitor.Run(ctx)
	}()

	d.logger.Info("Daemon started", "sync_interval", d.syncInterval)

	ticker := time.NewTicker(d.syncInterval)
	defer ticker.Stop()

	for {
		retryC, stopRetry := d.retryTimer(ctx)

		select {
		case <-ctx.Done():
			stopRetry()
			<-monitorDone
			d.logger.Info("Daemon stopped")
			return nil
		case <-d.foreground:
			d.trigger(ctx, sync.TriggerForeground)
		case <-retryC:
			d.trigger(ctx, sync.TriggerRetry)
		case <-ticker.C:
			d.trigger(ctx, sync.TriggerForeground)
		case cfg := <-d.reloads:
			d.apply(cfg, ticker)
		}

		stopRetry()
	}
}

// retryTimer возвращает канал, срабатывающий в ближайшее next_attempt_at.
// Нечего ждать - канал nil и ветка select не срабатывает.
func (d *Daemon) retryTimer(ctx context.Context) (<-chan time.Time, func()) {
	at, ok, err := d.planner.NextAttempt(ctx)
	if err != nil {
		d.logger.Error("Failed to plan retry", "error", err)
		return nil, func() {}
	}
	if !ok {
		return nil, func() {}
	}

	wait := at.Sub(d.clock.Now())
	if wait < 0 {
		wait = 0
	}
	d.logger.Debug("Next retry scheduled", "at", at, "in", wait)

	timer := time.NewTimer(wait)
	return timer.C, func() { timer.Stop() }
}

func (d *Daemon) trigger(ctx context.Context, trigger sync.Trigger) {
	_, err := d.syncer.Trigger(ctx, trigger)
	switch {
	case err == nil:
	case errors.Is(err, sync.ErrOffline):
		d.logger.Debug("Skipping sync while offline", "trigger", trigger)
	case errors.Is(err, sync.ErrSyncInProgress):
		d.logger.Debug("Sync trigger coalesced", "trigger", trigger)
	case ctx.Err() != nil:
	default:
		d.logger.Warn("Sync failed", "trigger", trigger, "error", err)
	}
}

func (d *Daemon) apply(cfg *config.Config, ticker *time.Ticker) {
	d.tokens.SetToken(cfg.Token)
	d.monitor.SetInterval(cfg.HealthInterval)
	if cfg.SyncInterval != d.syncInterval {
		d.syncInterval = cfg.SyncInterval
		ticker.Reset(cfg.SyncInterval)
	}
	d.logger.Info("Configuration reloaded",
		"health_interval", cfg.HealthInterval,
		"sync_interval", cfg.SyncInterval)
}

func newDaemonCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Keep synchronizing in the background",
		Long: `Run synchronization in the background.

The daemon syncs when the server becomes reachable, when a backoff delay
expires, every sync_interval and on SIGUSR1. Token and intervals are
reloaded when the configuration file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			usr1 := make(chan os.Signal, 1)
			signal.Notify(usr1, syscall.SIGUSR1)
			defer signal.Stop(usr1)

			d := app.Daemon(usr1)
			app.WatchConfig(d.Reload)

			return d.Run(ctx)
		},
	}
}
