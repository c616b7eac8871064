package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iudanet/gymkeeper/internal/client/api"
	"github.com/iudanet/gymkeeper/internal/client/config"
	"github.com/iudanet/gymkeeper/internal/client/connectivity"
	"github.com/iudanet/gymkeeper/internal/client/iocli"
	"github.com/iudanet/gymkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/gymkeeper/internal/client/sync"
	"github.com/iudanet/gymkeeper/internal/client/workout"
	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/internal/logger"
)

// RootOptions глобальные флаги
type RootOptions struct {
	ConfigFile string
	ServerURL  string
	Token      string
	DBPath     string
	LogLevel   string
}

// flagKeys связывает глобальные флаги с ключами конфигурации
var flagKeys = map[string]string{
	"server":    config.KeyServerURL,
	"token":     config.KeyToken,
	"db":        config.KeyDBPath,
	"log-level": config.KeyLogLevel,
}

// App собирает компоненты клиента для выполняемой команды
type App struct {
	opts    RootOptions
	version string

	loader    *config.Loader
	cfg       *config.Config
	logger    *slog.Logger
	store     *boltdb.Storage
	client    *api.Client
	clock     clock.Clock
	scheduler *sync.Scheduler
	orch      *sync.Orchestrator
	cli       *Cli
	closers   []io.Closer
}

func NewApp(version string) *App {
	return &App{version: version}
}

// Cli возвращает обработчики команд; доступен после PersistentPreRunE
func (a *App) Cli() *Cli {
	return a.cli
}

// Close освобождает ресурсы в обратном порядке открытия
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Daemon создает демон поверх открытых компонентов
func (a *App) Daemon(foreground <-chan os.Signal) *Daemon {
	return NewDaemon(DaemonDeps{
		Syncer:       a.orch,
		Planner:      a.scheduler,
		Resetter:     a.store,
		Tokens:       a.client,
		Monitor:      connectivity.NewMonitor(a.client, a.orch, a.cfg.HealthInterval, a.logger),
		Clock:        a.clock,
		Logger:       a.logger,
		SyncInterval: a.cfg.SyncInterval,
		Foreground:   foreground,
	})
}

// WatchConfig передает в onChange каждую корректную новую конфигурацию
func (a *App) WatchConfig(onChange func(*config.Config)) {
	if a.loader.ConfigFileUsed() == "" {
		a.logger.Info("No config file, live reload disabled")
		return
	}

	a.loader.Watch(func(cfg *config.Config, err error) {
		if err != nil {
			a.logger.Error("Ignoring invalid configuration change", "error", err)
			return
		}
		onChange(cfg)
	})
}

func (a *App) open(cmd *cobra.Command) error {
	a.loader = config.NewLoader(a.opts.ConfigFile)
	for name, key := range flagKeys {
		if err := a.loader.BindFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return err
		}
	}

	cfg, err := a.loader.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	// В файл с ротацией пишет только демон, остальные команды логируют в stderr
	logCfg := cfg.Log.Logger()
	if cmd.Name() != "daemon" {
		logCfg.File = ""
	}
	log, logCloser, err := logger.New(logCfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.closers = append(a.closers, logCloser)
	a.logger = log

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	clk := clock.NewMonotonic(clock.System{})
	// CLI и daemon работают с одним файлом, блокировка держится только на время транзакции
	store, err := boltdb.New(ctx, cfg.DBPath, boltdb.WithClock(clk), boltdb.WithSharedFile())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.closers = append(a.closers, store)
	a.store = store

	if err := workout.RestoreClock(ctx, store, clk); err != nil {
		return err
	}
	a.clock = clk

	a.client = api.NewClient(cfg.ServerURL, cfg.Token, api.WithTimeout(cfg.RequestTimeout))
	a.scheduler = sync.NewScheduler(store, clk, cfg.BackoffBase, cfg.MaxRetries)
	pusher := sync.NewPusher(a.client, store, a.scheduler, clk, log)
	puller := sync.NewPuller(a.client, store, log)
	a.orch = sync.NewOrchestrator(pusher, puller, store, clk, log)

	a.cli = New(
		iocli.NewStreams(cmd.InOrStdin(), cmd.OutOrStdout()),
		workout.NewService(store, clk),
		a.orch,
		store,
		a.client,
	)

	return nil
}

// NewRootCommand создает корневую команду gymkeeper
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gymkeeper",
		Short: "GymKeeper - offline workout log",
		Long: `GymKeeper records workouts locally and synchronizes them with the server
whenever it is reachable. Every change is queued first, so nothing is lost offline.

Configuration is read from config.yaml in the user config directory,
GYMKEEPER_* environment variables and the flags below (highest priority).`,
		Version:       app.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			return app.open(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.opts.ConfigFile, "config", "", "config file (default: <user config dir>/gymkeeper/config.yaml)")
	flags.StringVar(&app.opts.ServerURL, "server", "", "server URL")
	flags.StringVar(&app.opts.Token, "token", "", "access token issued by gymkeeper-server token")
	flags.StringVar(&app.opts.DBPath, "db", "", "path to local database")
	flags.StringVar(&app.opts.LogLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(
		newSessionCommand(app),
		newSetCommand(app),
		newSyncCommand(app),
		newStatusCommand(app),
		newOutboxCommand(app),
		newDaemonCommand(app),
		newVersionCommand(app),
	)

	return cmd
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "GymKeeper Client %s\n", app.version)
		},
	}
}
