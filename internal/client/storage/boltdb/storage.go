package boltdb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.etcd.io/bbolt"
	bberrors "go.etcd.io/bbolt/errors"

	"github.com/iudanet/gymkeeper/internal/clock"
	"github.com/iudanet/gymkeeper/internal/client/storage"
	"github.com/iudanet/gymkeeper/internal/models"
)

var (
	// BoltDB bucket names
	bucketOutbox   = []byte("outbox")
	bucketMetadata = []byte("metadata")
)

// recordsBucket bucket с записями таблицы, ключ client_id
func recordsBucket(table models.TableName) []byte {
	return []byte("records:" + string(table))
}

// serverIDBucket индекс server_id -> client_id для таблицы
func serverIDBucket(table models.TableName) []byte {
	return []byte("server_ids:" + string(table))
}

// DefaultOpenTimeout сколько ждать файловую блокировку, занятую другим процессом
const DefaultOpenTimeout = 5 * time.Second

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db          *bbolt.DB // nil в shared режиме вне транзакции
	clock       clock.Clock
	path        string
	openTimeout time.Duration
	mu          sync.Mutex // сериализует открытия файла в shared режиме
	shared      bool
	closed      atomic.Bool
}

var _ storage.LocalStore = (*Storage)(nil)

// Option configures Storage
type Option func(*Storage)

// WithClock задает источник времени для created_at элементов очереди
func WithClock(c clock.Clock) Option {
	return func(s *Storage) {
		s.clock = c
	}
}

// WithOpenTimeout ограничивает ожидание блокировки файла
func WithOpenTimeout(d time.Duration) Option {
	return func(s *Storage) {
		s.openTimeout = d
	}
}

// WithSharedFile держит файл открытым только на время одной транзакции.
// Так несколько процессов (CLI и daemon) по очереди пишут в одну базу.
func WithSharedFile() Option {
	return func(s *Storage) {
		s.shared = true
	}
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string, opts ...Option) (*Storage, error) {
	s := &Storage{clock: clock.System{}, path: dbPath, openTimeout: DefaultOpenTimeout}
	for _, opt := range opts {
		opt(s)
	}

	// Открываем BoltDB
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	s.db = db

	// Инициализируем buckets
	if err := initBuckets(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	if s.shared {
		s.db = nil
		if err := db.Close(); err != nil {
			return nil, fmt.Errorf("failed to release boltdb: %w", err)
		}
	}

	return s, nil
}

func (s *Storage) open() (*bbolt.DB, error) {
	db, err := bbolt.Open(s.path, 0600, &bbolt.Options{Timeout: s.openTimeout})
	if errors.Is(err, bberrors.ErrTimeout) {
		return nil, fmt.Errorf("failed to open boltdb %s: %w", s.path, storage.ErrStorageLocked)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}
	return db, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Storage) update(fn func(tx *bbolt.Tx) error) error {
	return s.withDB(func(db *bbolt.DB) error { return db.Update(fn) })
}

func (s *Storage) view(fn func(tx *bbolt.Tx) error) error {
	return s.withDB(func(db *bbolt.DB) error { return db.View(fn) })
}

// withDB выполняет fn над открытой базой; в shared режиме файл закрывается сразу после fn
func (s *Storage) withDB(fn func(db *bbolt.DB) error) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}
	if !s.shared {
		return fn(s.db)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.open()
	if err != nil {
		return err
	}
	err = fn(db)
	if closeErr := db.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("failed to release boltdb: %w", closeErr))
	}
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func initBuckets(db *bbolt.DB) error {
	return db.Update(func(tx *bbolt.Tx) error {
		names := [][]byte{bucketOutbox, bucketMetadata}
		for _, table := range models.Tables {
			names = append(names, recordsBucket(table), serverIDBucket(table))
		}

		for _, name := range names {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}

		return nil
	})
}

// ApplyLocalMutation saves the record and appends its outbox item in one transaction
func (s *Storage) ApplyLocalMutation(ctx context.Context, record *models.LocalRecord, op models.Operation) (*models.OutboxItem, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}
	if !op.Valid() {
		return nil, fmt.Errorf("unsupported operation %q", op)
	}

	rec := record.Clone()
	rec.SyncStatus = models.SyncStatusPending
	rec.Deleted = op == models.OperationDelete

	var item *models.OutboxItem
	err := s.update(func(tx *bbolt.Tx) error {
		if err := putRecord(tx, rec); err != nil {
			return err
		}

		var err error
		item, err = s.putNewItem(tx, storage.EnqueueRequest{
			ClientUpdatedAt: rec.ClientUpdatedAt,
			Table:           rec.Table,
			Operation:       op,
			RecordClientID:  rec.ClientID,
			Payload:         rec.Data,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply local mutation: %w", err)
	}

	*record = *rec
	return item, nil
}
