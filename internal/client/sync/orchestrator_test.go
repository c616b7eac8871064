package sync

import (
	"context"
	"errors"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gymkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/internal/models"
	"github.com/iudanet/gymkeeper/pkg/api"
)

func newTestOrchestrator(t *testing.T, mock *APIClientMock) (*Orchestrator, *boltdb.Storage) {
	t.Helper()

	clk := clock.NewFake(t0)
	store := newTestStore(t, clk)
	logger := discardLogger()
	scheduler := NewScheduler(store, clk, time.Second, 3)
	pusher := NewPusher(mock, store, scheduler, clk, logger)
	puller := NewPuller(mock, store, logger)
	return NewOrchestrator(pusher, puller, store, clk, logger), store
}

func emptyPull(ctx context.Context, since time.Time) (*api.PullResponse, error) {
	return &api.PullResponse{ServerTimestamp: t0}, nil
}

type stateRecorder struct {
	mu     stdsync.Mutex
	states []State
}

func (r *stateRecorder) listen(state State, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *stateRecorder) get() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func TestOrchestrator_PushThenPull(t *testing.T) {
	var order []string
	mock := &APIClientMock{
		PushFunc: func(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error) {
			order = append(order, "push")
			return echoSuccess(t0)(ctx, req)
		},
		PullFunc: func(ctx context.Context, since time.Time) (*api.PullResponse, error) {
			order = append(order, "pull")
			return emptyPull(ctx, since)
		},
	}
	o, store := newTestOrchestrator(t, mock)
	rec := &stateRecorder{}
	unsubscribe := o.Subscribe(rec.listen)
	defer unsubscribe()

	mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{}`)

	result, err := o.Trigger(context.Background(), TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, TriggerManual, result.Trigger)
	assert.Equal(t, 1, result.Push.Succeeded)
	assert.NotNil(t, result.Pull)

	assert.Equal(t, []string{"push", "pull"}, order)
	assert.Equal(t, []State{StateSyncing, StateIdle}, rec.get())
	assert.Equal(t, StateIdle, o.State())
	assert.NoError(t, o.LastError())
}

func TestOrchestrator_PushFailureSkipsPull(t *testing.T) {
	mock := &APIClientMock{
		PushFunc: func(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error) {
			return nil, errors.New("connection refused")
		},
		PullFunc: emptyPull,
	}
	o, store := newTestOrchestrator(t, mock)
	rec := &stateRecorder{}
	o.Subscribe(rec.listen)

	mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{}`)

	_, err := o.Trigger(context.Background(), TriggerConnectivity)
	require.Error(t, err)

	assert.Empty(t, mock.PullCalls())
	assert.Equal(t, []State{StateSyncing, StateError, StateIdle}, rec.get())
	assert.Equal(t, StateIdle, o.State())
	assert.Error(t, o.LastError())

	st, err := o.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, IndicatorError, st.Indicator)
	assert.Equal(t, 1, st.Pending)
}

func TestOrchestrator_CoalescesConcurrentTriggers(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	mock := &APIClientMock{
		PushFunc: func(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error) {
			close(entered)
			<-release
			return echoSuccess(t0)(ctx, req)
		},
		PullFunc: emptyPull,
	}
	o, store := newTestOrchestrator(t, mock)
	mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{}`)

	done := make(chan error, 1)
	go func() {
		_, err := o.Trigger(context.Background(), TriggerManual)
		done <- err
	}()

	<-entered
	assert.Equal(t, StateSyncing, o.State())

	_, err := o.Trigger(context.Background(), TriggerForeground)
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(release)
	require.NoError(t, <-done)

	assert.Len(t, mock.PushCalls(), 1)
	assert.Len(t, mock.PullCalls(), 1)
}

func TestOrchestrator_OfflineSkipsForegroundAndRetry(t *testing.T) {
	mock := &APIClientMock{PullFunc: emptyPull}
	o, _ := newTestOrchestrator(t, mock)
	o.SetOnline(false)

	_, err := o.Trigger(context.Background(), TriggerForeground)
	assert.ErrorIs(t, err, ErrOffline)
	_, err = o.Trigger(context.Background(), TriggerRetry)
	assert.ErrorIs(t, err, ErrOffline)

	// Ручной запуск выполняется всегда
	_, err = o.Trigger(context.Background(), TriggerManual)
	assert.NoError(t, err)

	st, err := o.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, IndicatorOffline, st.Indicator)
	assert.Equal(t, "offline", st.String())
}

func TestOrchestrator_ResetsInterruptedItems(t *testing.T) {
	mock := &APIClientMock{PushFunc: echoSuccess(t0), PullFunc: emptyPull}
	o, store := newTestOrchestrator(t, mock)

	item := mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{}`)
	_, err := store.ClaimPending(context.Background(), t0)
	require.NoError(t, err)

	_, err = o.Trigger(context.Background(), TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, models.OutboxStatusCompleted, getItem(t, store, item.ID).Status)
}

func TestOrchestrator_StatusCounts(t *testing.T) {
	mock := &APIClientMock{
		PushFunc: func(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{
				ServerTimestamp: t0,
				Results: []api.ChangeResult{
					{ClientID: "s1", Conflict: true, ServerID: "srv-1"},
					{ClientID: "s2", Success: true, ServerID: "srv-2"},
				},
			}, nil
		},
		PullFunc: emptyPull,
	}
	o, store := newTestOrchestrator(t, mock)
	ctx := context.Background()

	st, err := o.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "idle", st.String())

	mutate(t, store, models.TableSessions, "s1", models.OperationUpdate, t0, `{}`)
	mutate(t, store, models.TableSessions, "s2", models.OperationCreate, t0, `{}`)

	_, err = o.Trigger(ctx, TriggerManual)
	require.NoError(t, err)

	st, err = o.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Pending)
	assert.Equal(t, 1, st.Failed)
	assert.Equal(t, 1, st.Conflicts)
	assert.Equal(t, "error(2)", st.String())
}

func TestOrchestrator_StatusAfterTransportFailure(t *testing.T) {
	mock := &APIClientMock{
		PushFunc: func(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error) {
			return nil, errors.New("connection refused")
		},
		PullFunc: emptyPull,
	}
	o, store := newTestOrchestrator(t, mock)
	ctx := context.Background()

	mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{}`)

	_, err := o.Trigger(ctx, TriggerManual)
	require.Error(t, err)

	st, err := o.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, IndicatorError, st.Indicator)
	assert.Zero(t, st.Failed)
	assert.Zero(t, st.Conflicts)
	assert.Equal(t, 1, st.Pending)
	assert.Contains(t, st.LastError, "connection refused")
	assert.Equal(t, "error", st.String())
}
