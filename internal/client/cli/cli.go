package cli

import (
	"context"
	"time"

	"github.com/iudanet/gymkeeper/internal/client/connectivity"
	"github.com/iudanet/gymkeeper/internal/client/iocli"
	"github.com/iudanet/gymkeeper/internal/client/sync"
	"github.com/iudanet/gymkeeper/internal/client/workout"
	"github.com/iudanet/gymkeeper/internal/models"
)

//go:generate moq -out cli_mock.go . SyncEngine OutboxStore

// SyncEngine запускает синхронизацию и отдает ее состояние (реализует sync.Orchestrator)
type SyncEngine interface {
	Trigger(ctx context.Context, trigger sync.Trigger) (*sync.CycleResult, error)
	Status(ctx context.Context) (*sync.Status, error)
	SetOnline(online bool)
}

// OutboxStore операции с очередью отправки и метаданными синхронизации
type OutboxStore interface {
	ListByStatus(ctx context.Context, status models.OutboxStatus) ([]*models.OutboxItem, error)
	Requeue(ctx context.Context, id uint64) error
	PurgeCompleted(ctx context.Context, before time.Time) (int, error)
	GetWatermark(ctx context.Context) (time.Time, error)
	GetLastPushTimestamp(ctx context.Context) (time.Time, error)
}

type Cli struct {
	io       iocli.IO
	workouts workout.Service
	syncer   SyncEngine
	outbox   OutboxStore
	health   connectivity.HealthChecker // health nil - статус без проверки сервера
	now      func() time.Time
}

func New(io iocli.IO, workouts workout.Service, syncer SyncEngine, outbox OutboxStore, health connectivity.HealthChecker) *Cli {
	return &Cli{
		io:       io,
		workouts: workouts,
		syncer:   syncer,
		outbox:   outbox,
		health:   health,
		now:      func() time.Time { return time.Now().UTC() },
	}
}
