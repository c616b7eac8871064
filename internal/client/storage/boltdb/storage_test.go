package boltdb

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/gymkeeper/internal/client/storage"
	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/internal/models"
)

var testStart = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// createTestStorage создает временное BoltDB хранилище с фиктивными часами
func createTestStorage(t *testing.T) (*Storage, *clock.Fake) {
	t.Helper()

	clk := clock.NewFake(testStart)
	dbPath := filepath.Join(t.TempDir(), "gymkeeper_test.db")

	store, err := New(context.Background(), dbPath, WithClock(clk))
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store, clk
}

func testRecord(clientID string, updatedAt time.Time) *models.LocalRecord {
	return &models.LocalRecord{
		Table:           models.TableSessions,
		ClientID:        clientID,
		ClientUpdatedAt: updatedAt,
		SyncStatus:      models.SyncStatusPending,
		Data:            json.RawMessage(`{"started_at":"2026-03-01T09:00:00Z","notes":"legs"}`),
	}
}

func allBuckets() [][]byte {
	names := [][]byte{bucketOutbox, bucketMetadata}
	for _, table := range models.Tables {
		names = append(names, recordsBucket(table), serverIDBucket(table))
	}
	return names
}

func TestNew_Success(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "testdb.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// Проверяем что файл БД действительно создан
	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	// Проверяем, что бакеты существуют
	err = store.db.View(func(tx *bbolt.Tx) error {
		for _, b := range allBuckets() {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	// Каталог не существует - bbolt не сможет создать файл
	invalidPath := filepath.Join(t.TempDir(), "missing", "dir", "db.bolt")
	store, err := New(context.Background(), invalidPath)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	require.NoError(t, store.Close())
	assert.Nil(t, store.db)

	// Второй вызов Close не должен падать
	assert.NoError(t, store.Close())

	// После закрытия операции возвращают ErrStorageClosed
	_, err = store.GetRecord(context.Background(), models.TableSessions, "x")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = store.ClaimPending(context.Background(), testStart)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestInitBuckets_CreatesBuckets(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	// Открываем БД вручную без создания бакетов
	db, err := bbolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, initBuckets(db))

	// Повторная инициализация идемпотентна
	require.NoError(t, initBuckets(db))

	err = db.View(func(tx *bbolt.Tx) error {
		for _, b := range allBuckets() {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestApplyLocalMutation_Atomic(t *testing.T) {
	ctx := context.Background()
	store, _ := createTestStorage(t)

	rec := testRecord("s1", testStart)
	item, err := store.ApplyLocalMutation(ctx, rec, models.OperationCreate)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), item.ID)
	assert.Equal(t, models.OperationCreate, item.Operation)
	assert.Equal(t, models.OutboxStatusPending, item.Status)
	assert.Equal(t, "s1", item.RecordClientID)
	assert.True(t, item.ClientUpdatedAt.Equal(testStart))
	assert.JSONEq(t, string(rec.Data), string(item.Payload))

	got, err := store.GetRecord(ctx, models.TableSessions, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusPending, got.SyncStatus)
	assert.False(t, got.Deleted)
}

func TestApplyLocalMutation_DeleteKeepsTombstone(t *testing.T) {
	ctx := context.Background()
	store, _ := createTestStorage(t)

	rec := testRecord("s1", testStart)
	rec.ServerID = "srv-1"
	rec.SyncStatus = models.SyncStatusSynced
	require.NoError(t, store.SaveRecord(ctx, rec))

	rec.ClientUpdatedAt = testStart.Add(time.Minute)
	_, err := store.ApplyLocalMutation(ctx, rec, models.OperationDelete)
	require.NoError(t, err)

	got, err := store.GetRecord(ctx, models.TableSessions, "s1")
	require.NoError(t, err)
	assert.True(t, got.Deleted)
	assert.Equal(t, models.SyncStatusPending, got.SyncStatus)
	assert.Equal(t, "srv-1", got.ServerID)
}

func TestApplyLocalMutation_InvalidRecordRollsBack(t *testing.T) {
	ctx := context.Background()
	store, _ := createTestStorage(t)

	rec := testRecord("", testStart)
	_, err := store.ApplyLocalMutation(ctx, rec, models.OperationCreate)
	require.Error(t, err)

	// Элемент очереди не должен появиться без записи
	items, err := store.DequeuePending(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNew_LockedFileFailsAfterTimeout(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "locked.db")

	// Долгоживущий процесс держит файл открытым
	holder, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, holder.Close()) }()

	started := time.Now()
	second, err := New(ctx, dbPath, WithOpenTimeout(100*time.Millisecond))
	require.Error(t, err)
	assert.Nil(t, second)
	assert.ErrorIs(t, err, storage.ErrStorageLocked)
	assert.Less(t, time.Since(started), 5*time.Second)
}

func TestSharedFile_DaemonAndCliWriteSameDatabase(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "shared.db")

	daemon, err := New(ctx, dbPath, WithSharedFile(), WithClock(clock.NewFake(testStart)))
	require.NoError(t, err)
	defer func() { require.NoError(t, daemon.Close()) }()

	// daemon открыт, но CLI все равно открывает базу и ставит изменение в очередь
	cli, err := New(ctx, dbPath, WithSharedFile(), WithOpenTimeout(time.Second), WithClock(clock.NewFake(testStart)))
	require.NoError(t, err)

	_, err = cli.ApplyLocalMutation(ctx, testRecord("s1", testStart), models.OperationCreate)
	require.NoError(t, err)
	require.NoError(t, cli.Close())

	claimed, err := daemon.ClaimPending(ctx, testStart)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, "s1", claimed[0].RecordClientID)

	// Следующий запуск CLI видит результат работы daemon
	cli, err = New(ctx, dbPath, WithSharedFile(), WithOpenTimeout(time.Second))
	require.NoError(t, err)
	defer func() { require.NoError(t, cli.Close()) }()

	counts, err := cli.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.OutboxStatusInProgress])
}

func TestSharedFile_WaitsForRunningTransaction(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "shared.db")

	store, err := New(ctx, dbPath, WithSharedFile())
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	other, err := New(ctx, dbPath, WithSharedFile(), WithOpenTimeout(2*time.Second))
	require.NoError(t, err)
	defer func() { require.NoError(t, other.Close()) }()

	inTx := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- store.update(func(tx *bbolt.Tx) error {
			close(inTx)
			<-release
			return nil
		})
	}()

	<-inTx
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()

	// Блокировка освобождается по окончании транзакции, ожидание укладывается в таймаут
	_, err = other.ApplyLocalMutation(ctx, testRecord("s1", testStart), models.OperationCreate)
	require.NoError(t, err)
	require.NoError(t, <-done)
}

func TestSharedFile_ClosedStorage(t *testing.T) {
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "shared.db"), WithSharedFile())
	require.NoError(t, err)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.ListByStatus(context.Background(), models.OutboxStatusPending)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
