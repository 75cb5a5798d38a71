// Package store persists named board layouts in BadgerDB.
//
// Records are JSON encoded and LZ4 compressed under the key
// "layout/<uuid>". All methods are safe for concurrent use; Badger
// transactions provide the isolation.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pierrec/lz4"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/internal/metrics"
)

var (
	// ErrNotFound is returned when no layout has the requested id.
	ErrNotFound = errors.New("store: layout not found")

	// ErrInvalid is returned for a malformed id, name or layout.
	ErrInvalid = errors.New("store: invalid record")
)

const keyPrefix = "layout/"

var validate = validator.New()

// Record is a saved layout.
type Record struct {
	ID        string           `json:"id"`
	Name      string           `json:"name" validate:"required,max=64"`
	Layout    gridgraph.Layout `json:"layout"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Summary is the listing form of a Record.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	CreatedAt time.Time `json:"created_at"`
}

// Config configures Open.
type Config struct {
	// Path is the database directory; ignored when InMemory is set.
	Path     string
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
	// Logger receives Badger's internal logs; nil disables them.
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Store is the layout repository.
type Store struct {
	db      *badger.DB
	metrics *metrics.Metrics
	now     func() time.Time
}

// badgerLogger adapts slog to badger.Logger.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Open opens or creates the database described by cfg.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store: path is required for a persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("store: create directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger.With("component", "badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}

	return &Store{db: db, metrics: cfg.Metrics, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create stores l under name with a fresh id.
// Returns ErrInvalid if name is empty or too long, or if l does not build.
func (s *Store) Create(ctx context.Context, name string, l gridgraph.Layout) (Record, error) {
	now := s.now().UTC()
	rec := Record{ID: uuid.NewString(), Name: name, Layout: l, CreatedAt: now, UpdatedAt: now}
	rec, err := s.put(ctx, rec, false)
	s.metrics.ObserveStore("create", err)
	if err != nil {
		return Record{}, err
	}

	return rec, nil
}

// Update replaces the name and layout of an existing record.
// Returns ErrNotFound if id is unknown.
func (s *Store) Update(ctx context.Context, id, name string, l gridgraph.Layout) (Record, error) {
	rec, err := s.get(ctx, id)
	if err == nil {
		rec.Name, rec.Layout, rec.UpdatedAt = name, l, s.now().UTC()
		rec, err = s.put(ctx, rec, true)
	}
	s.metrics.ObserveStore("update", err)
	if err != nil {
		return Record{}, err
	}

	return rec, nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	rec, err := s.get(ctx, id)
	s.metrics.ObserveStore("get", err)

	return rec, err
}

// Delete removes the record with the given id.
// Returns ErrNotFound if id is unknown.
func (s *Store) Delete(ctx context.Context, id string) error {
	key, err := recordKey(id)
	if err == nil {
		err = ctx.Err()
	}
	if err == nil {
		err = s.db.Update(func(txn *badger.Txn) error {
			if _, err := txn.Get(key); err != nil {
				return notFound(err, id)
			}
			return txn.Delete(key)
		})
	}
	s.metrics.ObserveStore("delete", err)

	return err
}

// List returns summaries of every record ordered by creation time, then id.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	var out []Summary
	err := ctx.Err()
	if err == nil {
		err = s.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(keyPrefix)
			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				var rec Record
				if err := it.Item().Value(func(v []byte) error { return decode(v, &rec) }); err != nil {
					return fmt.Errorf("store: decode %s: %w", it.Item().Key(), err)
				}
				out = append(out, Summary{
					ID: rec.ID, Name: rec.Name, Rows: rec.Layout.Rows, Cols: rec.Layout.Cols, CreatedAt: rec.CreatedAt,
				})
			}
			return nil
		})
	}
	s.metrics.ObserveStore("list", err)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (s *Store) get(ctx context.Context, id string) (Record, error) {
	var rec Record
	key, err := recordKey(id)
	if err != nil {
		return rec, err
	}
	if err = ctx.Err(); err != nil {
		return rec, err
	}
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return notFound(err, id)
		}
		return item.Value(func(v []byte) error { return decode(v, &rec) })
	})

	return rec, err
}

// put validates and writes rec and returns it as stored. With mustExist
// the key must already be present, otherwise it must be absent.
func (s *Store) put(ctx context.Context, rec Record, mustExist bool) (Record, error) {
	if err := validate.Struct(rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	snap, err := rec.Layout.Build()
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	// row-major without duplicates; a wall drops its water
	rec.Layout.Walls, rec.Layout.Water = snap.Walls(), snap.Water()
	key, err := recordKey(rec.ID)
	if err != nil {
		return Record{}, err
	}
	if err = ctx.Err(); err != nil {
		return Record{}, err
	}
	val, err := encode(rec)
	if err != nil {
		return Record{}, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		switch {
		case mustExist && err != nil:
			return notFound(err, rec.ID)
		case !mustExist && err == nil:
			return fmt.Errorf("store: duplicate id %s", rec.ID)
		case err != nil && !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		return txn.Set(key, val)
	})
	if err != nil {
		return Record{}, err
	}

	return rec, nil
}

func recordKey(id string) ([]byte, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: id %q: %v", ErrInvalid, id, err)
	}

	return []byte(keyPrefix + u.String()), nil
}

func notFound(err error, id string) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return err
}

// encode marshals rec to JSON and compresses it with LZ4.
func encode(rec Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("store: encode: %w", err)
	}
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err = w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("store: compress: %w", err)
	}
	if err = w.Close(); err != nil {
		return nil, fmt.Errorf("store: compress: %w", err)
	}

	return buf.Bytes(), nil
}

// decode reverses encode. v is only valid inside the Badger transaction, so
// it is fully consumed before returning.
func decode(v []byte, rec *Record) error {
	data, err := io.ReadAll(lz4.NewReader(bytes.NewReader(v)))
	if err != nil {
		return fmt.Errorf("store: decompress: %w", err)
	}

	return json.Unmarshal(data, rec)
}
