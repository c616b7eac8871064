package sync

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/gymkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/internal/models"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T, clk clock.Clock) *boltdb.Storage {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"), boltdb.WithClock(clk))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// mutate применяет локальную мутацию так же, как доменный слой
func mutate(t *testing.T, store *boltdb.Storage, table models.TableName, clientID string, op models.Operation, at time.Time, data string) *models.OutboxItem {
	t.Helper()
	ctx := context.Background()

	rec, err := store.GetRecord(ctx, table, clientID)
	if err != nil {
		rec = &models.LocalRecord{Table: table, ClientID: clientID}
	}
	rec.ClientUpdatedAt = at
	if data != "" {
		rec.Data = json.RawMessage(data)
	}

	item, err := store.ApplyLocalMutation(ctx, rec, op)
	require.NoError(t, err)
	return item
}

func getRecord(t *testing.T, store *boltdb.Storage, table models.TableName, clientID string) *models.LocalRecord {
	t.Helper()
	rec, err := store.GetRecord(context.Background(), table, clientID)
	require.NoError(t, err)
	return rec
}

func getItem(t *testing.T, store *boltdb.Storage, id uint64) *models.OutboxItem {
	t.Helper()
	item, err := store.GetOutboxItem(context.Background(), id)
	require.NoError(t, err)
	return item
}
