// Package sqlite provides a durable object graph backed by SQLite that
// implements [ports.ObjectGraph]. Committed objects live in the objects
// table; uncommitted changes are held in memory until Commit writes them in
// a single transaction.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/store/changeset"
	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

//go:embed schema.sql
var schemaSQL string

const schemaVersion = 1

// Compile-time interface check.
var _ ports.ObjectGraph = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithName sets the graph name recorded in the commit log. Defaults to "objects".
func WithName(name string) Option {
	return func(s *Store) {
		s.name = name
	}
}

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store is a SQLite-backed object graph. Reads of committed state go to
// the database; pending changes are kept in memory.
type Store struct {
	db     *sql.DB
	name   string
	logger *slog.Logger

	mu      sync.RWMutex
	pending *changeset.Set
}

// Open creates or opens the database at path and applies the schema.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//   - a single connection, since SQLite allows one writer at a time
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	s := &Store{
		db:      db,
		name:    "objects",
		logger:  slog.New(slog.DiscardHandler),
		pending: changeset.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database. Pending changes are lost.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Name identifies the store in health checks.
func (s *Store) Name() string {
	return "sqlite:" + s.name
}

// HealthCheck pings the database.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", s.Name(), err)
	}
	return nil
}

// Put inserts or updates the object under key.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return &domain.ValidationError{Fields: map[string]string{"key": "must not be empty"}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.exists(ctx, key)
	if err != nil {
		return fmt.Errorf("putting %q: %w", key, err)
	}
	s.pending.Put(key, data, exists)
	return nil
}

// Delete removes the object under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.exists(ctx, key)
	if err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	if err := s.pending.Delete(key, exists); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// Get returns the object under key, including pending changes.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	c, ok := s.pending.Lookup(key)
	s.mu.RUnlock()
	if ok {
		if c.Op == changeset.OpDelete {
			return nil, fmt.Errorf("getting %q: %w", key, domain.ErrNotFound)
		}
		return append([]byte(nil), c.Data...), nil
	}

	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM objects WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting %q: %w", key, err)
	}
	return data, nil
}

// HasPendingChanges reports whether any change awaits commit.
func (s *Store) HasPendingChanges() bool {
	return s.PendingChangeCount() > 0
}

// PendingChangeCount returns inserted + updated + deleted object counts.
func (s *Store) PendingChangeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending.Len()
}

// Commit writes every pending change in one transaction and records the
// commit in the commit log. On failure nothing is written, the pending
// changes stay in place, and the error wraps domain.ErrCommitFailed.
//
// Mutations block for the duration of the transaction, so a change is
// either part of this commit or still pending after it.
func (s *Store) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changes := s.pending.Changes()
	if len(changes) == 0 {
		return nil
	}
	inserted, updated, deleted := s.pending.Counts()

	id := uuid.New()
	if err := s.commitTx(ctx, id, changes, inserted, updated, deleted); err != nil {
		return fmt.Errorf("%w: store %s: %w", domain.ErrCommitFailed, s.name, err)
	}
	s.pending.Reset()

	s.logger.DebugContext(ctx, "store committed",
		slog.String("store", s.name),
		slog.String("commit_id", id.String()),
		slog.Int("inserted", inserted),
		slog.Int("updated", updated),
		slog.Int("deleted", deleted),
	)
	return nil
}

// Rollback discards every pending change.
func (s *Store) Rollback(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Reset()
	return nil
}

// Count returns the number of committed objects.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM objects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting objects: %w", err)
	}
	return n, nil
}

func (s *Store) commitTx(ctx context.Context, id uuid.UUID, changes []changeset.Change, inserted, updated, deleted int) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UnixNano()
	for _, c := range changes {
		if err := applyChange(ctx, tx, c, now); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO commits (id, graph, inserted, updated, deleted, committed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id.String(), s.name, inserted, updated, deleted, now)
	if err != nil {
		return fmt.Errorf("recording commit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func applyChange(ctx context.Context, tx *sql.Tx, c changeset.Change, now int64) error {
	switch c.Op {
	case changeset.OpInsert:
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO objects (key, data, updated_at) VALUES (?, ?, ?)`,
			c.Key, c.Data, now,
		); err != nil {
			return fmt.Errorf("insert %q: %w", c.Key, err)
		}
	case changeset.OpUpdate:
		res, err := tx.ExecContext(ctx,
			`UPDATE objects SET data = ?, version = version + 1, updated_at = ? WHERE key = ?`,
			c.Data, now, c.Key,
		)
		if err != nil {
			return fmt.Errorf("update %q: %w", c.Key, err)
		}
		if err := expectOneRow(res, c); err != nil {
			return err
		}
	case changeset.OpDelete:
		res, err := tx.ExecContext(ctx, `DELETE FROM objects WHERE key = ?`, c.Key)
		if err != nil {
			return fmt.Errorf("delete %q: %w", c.Key, err)
		}
		if err := expectOneRow(res, c); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown change op %d for %q", c.Op, c.Key)
	}
	return nil
}

// expectOneRow reports a conflict when an update or delete finds that the
// row it was based on has gone.
func expectOneRow(res sql.Result, c changeset.Change) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %q: %w", c.Op, c.Key, err)
	}
	if n != 1 {
		return fmt.Errorf("%s %q: %w: object changed outside this store", c.Op, c.Key, domain.ErrConflict)
	}
	return nil
}

func (s *Store) exists(ctx context.Context, key string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM objects WHERE key = ?`, key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("executing %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("setting user_version: %w", err)
	}
	return nil
}
