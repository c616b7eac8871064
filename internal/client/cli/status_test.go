package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gymkeeper/internal/client/connectivity"
	"github.com/iudanet/gymkeeper/internal/client/sync"
	"github.com/iudanet/gymkeeper/internal/models"
	"github.com/iudanet/gymkeeper/pkg/api"
)

func newOutboxMock() *OutboxStoreMock {
	return &OutboxStoreMock{
		GetWatermarkFunc: func(ctx context.Context) (time.Time, error) {
			return testNow.Add(-time.Minute), nil
		},
		GetLastPushTimestampFunc: func(ctx context.Context) (time.Time, error) {
			return time.Time{}, nil
		},
		ListByStatusFunc: func(ctx context.Context, status models.OutboxStatus) ([]*models.OutboxItem, error) {
			return nil, nil
		},
	}
}

func TestCli_runStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   sync.Status
		terminal bool
		want     []string
	}{
		{
			name:   "idle",
			status: sync.Status{Indicator: sync.IndicatorIdle, Online: true},
			want:   []string{"Status:     idle", "All changes synchronized"},
		},
		{
			name:   "pending online",
			status: sync.Status{Indicator: sync.IndicatorIdle, Online: true, Pending: 2},
			want:   []string{"Pending:    2", "Run 'gymkeeper sync'"},
		},
		{
			name:   "pending offline",
			status: sync.Status{Indicator: sync.IndicatorOffline, Pending: 2},
			want:   []string{"Status:     offline", "changes stay queued"},
		},
		{
			name:     "error colored in terminal",
			status:   sync.Status{Indicator: sync.IndicatorError, Online: true, Failed: 1, Conflicts: 2, LastError: "push failed"},
			terminal: true,
			want:     []string{"Status:     \033[31merror(3)\033[0m", "Last error: push failed", "gymkeeper outbox retry"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &output{}
			mockIO := newMockIO(out)
			mockIO.IsTerminalFunc = func() bool { return tt.terminal }

			st := tt.status
			mockSync := &SyncEngineMock{
				StatusFunc: func(ctx context.Context) (*sync.Status, error) { return &st, nil },
			}
			cli := &Cli{io: mockIO, syncer: mockSync, outbox: newOutboxMock()}

			require.NoError(t, cli.runStatus(context.Background()))

			text := out.String()
			for _, w := range tt.want {
				assert.Contains(t, text, w)
			}
			assert.Contains(t, text, "Last push:  never")
			assert.Contains(t, text, "Pulled to:  2026-03-01 09:59")
			assert.Empty(t, mockSync.SetOnlineCalls(), "no health checker configured")
		})
	}
}

func TestCli_runStatus_ProbesServer(t *testing.T) {
	tests := []struct {
		name   string
		health func(ctx context.Context) (*api.HealthResponse, error)
		online bool
	}{
		{
			name: "reachable",
			health: func(ctx context.Context) (*api.HealthResponse, error) {
				return &api.HealthResponse{Status: "ok"}, nil
			},
			online: true,
		},
		{
			name: "database down",
			health: func(ctx context.Context) (*api.HealthResponse, error) {
				return &api.HealthResponse{Status: "unavailable"}, nil
			},
		},
		{
			name: "unreachable",
			health: func(ctx context.Context) (*api.HealthResponse, error) {
				return nil, errors.New("connection refused")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSync := &SyncEngineMock{
				SetOnlineFunc: func(online bool) {},
				StatusFunc: func(ctx context.Context) (*sync.Status, error) {
					return &sync.Status{Indicator: sync.IndicatorIdle}, nil
				},
			}
			cli := &Cli{
				io:     newMockIO(&output{}),
				syncer: mockSync,
				outbox: newOutboxMock(),
				health: &connectivity.HealthCheckerMock{HealthFunc: tt.health},
			}

			require.NoError(t, cli.runStatus(context.Background()))

			require.Len(t, mockSync.SetOnlineCalls(), 1)
			assert.Equal(t, tt.online, mockSync.SetOnlineCalls()[0].Online)
		})
	}
}

func TestCli_runStatus_StatusError(t *testing.T) {
	mockSync := &SyncEngineMock{
		StatusFunc: func(ctx context.Context) (*sync.Status, error) {
			return nil, errors.New("storage is closed")
		},
	}
	cli := &Cli{io: newMockIO(&output{}), syncer: mockSync, outbox: newOutboxMock()}

	err := cli.runStatus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage is closed")
}
