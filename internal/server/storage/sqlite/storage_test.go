package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/internal/models"
	"github.com/iudanet/gymkeeper/internal/server/storage"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func setupTestStorage(t *testing.T) (*Storage, *clock.Fake) {
	t.Helper()
	ctx := context.Background()

	clk := clock.NewFake(t0.Add(time.Hour))

	// Используем in-memory database для тестов
	s, err := New(ctx, ":memory:", WithClock(clk))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s, clk
}

func TestNew_RunsMigrations(t *testing.T) {
	s, _ := setupTestStorage(t)

	var name string
	err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'sync_records'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "sync_records", name)
}

func TestNew_ContinuesStampsAfterRestart(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "server.db")

	clk := clock.NewFake(t0.Add(time.Hour))
	s, err := New(ctx, dbPath, WithClock(clk))
	require.NoError(t, err)

	res, err := s.ApplyChange(ctx, "u1", &storage.Change{
		Table:           models.TableSessions,
		Operation:       models.OperationCreate,
		ClientID:        "c1",
		ClientUpdatedAt: t0,
		Data:            []byte(`{}`),
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// После рестарта системные часы "отстали"
	behind := clock.NewFake(t0)
	s, err = New(ctx, dbPath, WithClock(behind))
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.Now().After(res.Record.UpdatedAt))
}

func TestStorage_Ping(t *testing.T) {
	s, _ := setupTestStorage(t)
	require.NoError(t, s.Ping(context.Background()))

	require.NoError(t, s.Close())
	assert.Error(t, s.Ping(context.Background()))
}
