package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/iudanet/gymkeeper/internal/client/api"
	"github.com/iudanet/gymkeeper/internal/client/storage"
	"github.com/iudanet/gymkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/internal/models"
	"github.com/iudanet/gymkeeper/pkg/api"
)

func newTestPusher(t *testing.T, mock *APIClientMock) (*Pusher, *boltdb.Storage, *clock.Fake) {
	t.Helper()

	clk := clock.NewFake(t0)
	store := newTestStore(t, clk)
	scheduler := NewScheduler(store, clk, time.Second, 3)
	return NewPusher(mock, store, scheduler, clk, discardLogger()), store, clk
}

// echoSuccess отвечает success на каждое изменение, server_id = "srv-" + client_id
func echoSuccess(ts time.Time) func(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error) {
	return func(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error) {
		resp := &api.PushResponse{ServerTimestamp: ts}
		for _, ch := range req.Changes {
			resp.Results = append(resp.Results, api.ChangeResult{
				ClientID: ch.ClientID,
				ServerID: "srv-" + ch.ClientID,
				Success:  true,
			})
		}
		return resp, nil
	}
}

func TestPush_EmptyOutbox(t *testing.T) {
	mock := &APIClientMock{}
	pusher, _, _ := newTestPusher(t, mock)

	result, err := pusher.Push(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Claimed)
	assert.Empty(t, mock.PushCalls())
}

func TestPush_Success(t *testing.T) {
	ctx := context.Background()
	serverTS := t0.Add(time.Minute)
	mock := &APIClientMock{PushFunc: echoSuccess(serverTS)}
	pusher, store, _ := newTestPusher(t, mock)

	item := mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{"notes":"push"}`)

	result, err := pusher.Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Claimed)
	assert.Equal(t, 1, result.Succeeded)

	require.Len(t, mock.PushCalls(), 1)
	change := mock.PushCalls()[0].Req.Changes[0]
	assert.Equal(t, "workout_sessions", change.TableName)
	assert.Equal(t, "create", change.Operation)
	assert.Equal(t, "s1", change.ClientID)
	assert.Empty(t, change.ServerID)
	assert.True(t, change.ClientUpdatedAt.Equal(t0))
	assert.JSONEq(t, `{"notes":"push"}`, string(change.Data))

	rec := getRecord(t, store, models.TableSessions, "s1")
	assert.Equal(t, models.SyncStatusSynced, rec.SyncStatus)
	assert.Equal(t, "srv-s1", rec.ServerID)
	assert.Equal(t, models.OutboxStatusCompleted, getItem(t, store, item.ID).Status)

	ts, err := store.GetLastPushTimestamp(ctx)
	require.NoError(t, err)
	assert.True(t, ts.Equal(serverTS))
}

func TestPush_SendsKnownServerID(t *testing.T) {
	mock := &APIClientMock{PushFunc: echoSuccess(t0)}
	pusher, store, _ := newTestPusher(t, mock)
	ctx := context.Background()

	mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{}`)
	_, err := pusher.Push(ctx)
	require.NoError(t, err)

	mutate(t, store, models.TableSessions, "s1", models.OperationUpdate, t0.Add(time.Second), `{"notes":"x"}`)
	_, err = pusher.Push(ctx)
	require.NoError(t, err)

	require.Len(t, mock.PushCalls(), 2)
	assert.Equal(t, "srv-s1", mock.PushCalls()[1].Req.Changes[0].ServerID)
}

func TestPush_SameRecordInOneBatch(t *testing.T) {
	mock := &APIClientMock{PushFunc: echoSuccess(t0)}
	pusher, store, _ := newTestPusher(t, mock)
	ctx := context.Background()

	create := mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{}`)
	update := mutate(t, store, models.TableSessions, "s1", models.OperationUpdate, t0.Add(time.Second), `{"notes":"late"}`)

	result, err := pusher.Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)

	// create и update уходят в одном batch, в порядке постановки
	require.Len(t, mock.PushCalls(), 1)
	changes := mock.PushCalls()[0].Req.Changes
	require.Len(t, changes, 2)
	assert.Equal(t, "create", changes[0].Operation)
	assert.Equal(t, "update", changes[1].Operation)

	rec := getRecord(t, store, models.TableSessions, "s1")
	assert.Equal(t, models.SyncStatusSynced, rec.SyncStatus)
	assert.Equal(t, models.OutboxStatusCompleted, getItem(t, store, create.ID).Status)
	assert.Equal(t, models.OutboxStatusCompleted, getItem(t, store, update.ID).Status)
}

func TestPush_SuccessForOlderItemLeavesRecordPending(t *testing.T) {
	ctx := context.Background()
	pusher, store, _ := newTestPusher(t, &APIClientMock{})

	mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{}`)
	claimed, err := store.ClaimPending(ctx, t0)
	require.NoError(t, err)
	require.Len(t, claimed, 1)

	// Новая локальная правка после того, как create был отправлен
	rec := getRecord(t, store, models.TableSessions, "s1")
	rec.ClientUpdatedAt = t0.Add(time.Minute)
	require.NoError(t, store.SaveRecord(ctx, rec))

	require.NoError(t, pusher.applySuccess(ctx, claimed[0], api.ChangeResult{ClientID: "s1", ServerID: "srv-1", Success: true}))

	rec = getRecord(t, store, models.TableSessions, "s1")
	assert.Equal(t, models.SyncStatusPending, rec.SyncStatus)
	assert.Equal(t, "srv-1", rec.ServerID)
}

func TestPush_Conflict(t *testing.T) {
	ctx := context.Background()
	mock := &APIClientMock{
		PushFunc: func(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{
				ServerTimestamp: t0,
				Results: []api.ChangeResult{
					{ClientID: "s1", ServerID: "srv-1", Conflict: true, Error: "server version is newer"},
				},
			}, nil
		},
	}
	pusher, store, _ := newTestPusher(t, mock)

	item := mutate(t, store, models.TableSessions, "s1", models.OperationUpdate, t0, `{}`)

	result, err := pusher.Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Conflicts)

	rec := getRecord(t, store, models.TableSessions, "s1")
	assert.Equal(t, models.SyncStatusConflict, rec.SyncStatus)
	assert.Equal(t, "srv-1", rec.ServerID)

	got := getItem(t, store, item.ID)
	assert.Equal(t, models.OutboxStatusFailed, got.Status)
	assert.Equal(t, "server version is newer", got.ErrorMessage)
	assert.Equal(t, 0, got.RetryCount)
}

func TestPush_PerItemErrorRetries(t *testing.T) {
	ctx := context.Background()
	mock := &APIClientMock{
		PushFunc: func(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{
				ServerTimestamp: t0,
				Results: []api.ChangeResult{
					{ClientID: "s1", Success: true, ServerID: "srv-1"},
					{ClientID: "x1", Error: "reps: must be between 0 and 999"},
				},
			}, nil
		},
	}
	pusher, store, _ := newTestPusher(t, mock)

	mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{}`)
	bad := mutate(t, store, models.TableSets, "x1", models.OperationCreate, t0, `{"reps":5000}`)

	result, err := pusher.Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Retried)

	got := getItem(t, store, bad.ID)
	assert.Equal(t, models.OutboxStatusPending, got.Status)
	assert.Equal(t, 1, got.RetryCount)
	assert.True(t, got.NextAttemptAt.Equal(t0.Add(4*time.Second)))
	assert.Equal(t, models.SyncStatusPending, getRecord(t, store, models.TableSets, "x1").SyncStatus)
}

func TestPush_TransportFailure(t *testing.T) {
	ctx := context.Background()
	transportErr := &httpapi.TransportError{Err: errors.New("connection refused")}
	mock := &APIClientMock{
		PushFunc: func(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error) {
			return nil, transportErr
		},
	}
	pusher, store, _ := newTestPusher(t, mock)

	a := mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{}`)
	b := mutate(t, store, models.TableSessions, "s2", models.OperationCreate, t0, `{}`)

	result, err := pusher.Push(ctx)
	require.Error(t, err)

	var terr *httpapi.TransportError
	assert.True(t, errors.As(err, &terr))
	assert.Equal(t, 2, result.Retried)

	for _, id := range []uint64{a.ID, b.ID} {
		got := getItem(t, store, id)
		assert.Equal(t, models.OutboxStatusPending, got.Status)
		assert.Equal(t, 1, got.RetryCount)
		assert.Contains(t, got.ErrorMessage, "connection refused")
	}

	ts, err := store.GetLastPushTimestamp(ctx)
	require.NoError(t, err)
	assert.True(t, ts.IsZero())
}

func TestPush_ProtocolViolation(t *testing.T) {
	tests := []struct {
		name    string
		results []api.ChangeResult
	}{
		{
			name:    "too few results",
			results: []api.ChangeResult{{ClientID: "s1", Success: true, ServerID: "srv-1"}},
		},
		{
			name: "wrong order",
			results: []api.ChangeResult{
				{ClientID: "s2", Success: true, ServerID: "srv-2"},
				{ClientID: "s1", Success: true, ServerID: "srv-1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &APIClientMock{
				PushFunc: func(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error) {
					return &api.PushResponse{ServerTimestamp: t0, Results: tt.results}, nil
				},
			}
			pusher, store, _ := newTestPusher(t, mock)

			a := mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{}`)
			mutate(t, store, models.TableSessions, "s2", models.OperationCreate, t0, `{}`)

			_, err := pusher.Push(context.Background())
			require.ErrorIs(t, err, ErrProtocolViolation)

			got := getItem(t, store, a.ID)
			assert.Equal(t, models.OutboxStatusPending, got.Status)
			assert.Equal(t, 1, got.RetryCount)
			assert.Equal(t, models.SyncStatusPending, getRecord(t, store, models.TableSessions, "s1").SyncStatus)
		})
	}
}

func TestPush_DeletePurgesTombstone(t *testing.T) {
	ctx := context.Background()
	mock := &APIClientMock{PushFunc: echoSuccess(t0)}
	pusher, store, _ := newTestPusher(t, mock)

	mutate(t, store, models.TableSessions, "s1", models.OperationCreate, t0, `{}`)
	mutate(t, store, models.TableSessions, "s1", models.OperationDelete, t0.Add(time.Second), "")

	result, err := pusher.Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)

	_, err = store.GetRecord(ctx, models.TableSessions, "s1")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)

	require.Len(t, mock.PushCalls(), 1)
	ops := []string{mock.PushCalls()[0].Req.Changes[0].Operation, mock.PushCalls()[0].Req.Changes[1].Operation}
	assert.Equal(t, []string{"create", "delete"}, ops)
}

func TestPush_ConflictedDeleteKeepsTombstone(t *testing.T) {
	ctx := context.Background()
	mock := &APIClientMock{
		PushFunc: func(ctx context.Context, req *api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{
				ServerTimestamp: t0,
				Results:         []api.ChangeResult{{ClientID: "s1", ServerID: "srv-1", Conflict: true}},
			}, nil
		},
	}
	pusher, store, _ := newTestPusher(t, mock)

	mutate(t, store, models.TableSessions, "s1", models.OperationDelete, t0, `{}`)

	_, err := pusher.Push(ctx)
	require.NoError(t, err)

	rec := getRecord(t, store, models.TableSessions, "s1")
	assert.True(t, rec.Deleted)
	assert.Equal(t, models.SyncStatusConflict, rec.SyncStatus)
}
