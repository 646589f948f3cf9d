// Package memory provides an in-memory object graph that implements
// [ports.ObjectGraph]. Committed objects live in a map; uncommitted changes
// are tracked in a changeset until Commit applies them or Rollback discards
// them.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/store/changeset"
	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

// Compile-time interface check.
var _ ports.ObjectGraph = (*Graph)(nil)

// Validator inspects an object about to be committed. A non-nil error
// fails the whole commit.
type Validator func(key string, data []byte) error

// Option configures a Graph.
type Option func(*Graph)

// WithValidator installs a commit-time validator.
func WithValidator(v Validator) Option {
	return func(g *Graph) {
		g.validate = v
	}
}

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// Graph is an in-memory key/value object graph with commit and rollback.
// All methods are safe for concurrent use.
type Graph struct {
	name     string
	validate Validator
	logger   *slog.Logger

	mu        sync.RWMutex
	committed map[string][]byte
	pending   *changeset.Set
}

// New creates an empty Graph.
func New(name string, opts ...Option) *Graph {
	g := &Graph{
		name:      name,
		logger:    slog.New(slog.DiscardHandler),
		committed: make(map[string][]byte),
		pending:   changeset.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Put inserts or updates the object under key.
func (g *Graph) Put(_ context.Context, key string, data []byte) error {
	if key == "" {
		return &domain.ValidationError{Fields: map[string]string{"key": "must not be empty"}}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.committed[key]
	g.pending.Put(key, data, ok)
	return nil
}

// Delete removes the object under key.
func (g *Graph) Delete(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.committed[key]
	if err := g.pending.Delete(key, ok); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// Get returns the object under key, including pending changes.
func (g *Graph) Get(_ context.Context, key string) ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if c, ok := g.pending.Lookup(key); ok {
		if c.Op == changeset.OpDelete {
			return nil, fmt.Errorf("getting %q: %w", key, domain.ErrNotFound)
		}
		return slices.Clone(c.Data), nil
	}
	data, ok := g.committed[key]
	if !ok {
		return nil, fmt.Errorf("getting %q: %w", key, domain.ErrNotFound)
	}
	return slices.Clone(data), nil
}

// HasPendingChanges reports whether any change awaits commit.
func (g *Graph) HasPendingChanges() bool {
	return g.PendingChangeCount() > 0
}

// PendingChangeCount returns inserted + updated + deleted object counts.
func (g *Graph) PendingChangeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pending.Len()
}

// Commit applies every pending change. If the validator rejects any
// object, nothing is applied, the pending changes stay in place, and the
// returned error wraps domain.ErrCommitFailed.
func (g *Graph) Commit(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	changes := g.pending.Changes()
	if g.validate != nil {
		for _, c := range changes {
			if c.Op == changeset.OpDelete {
				continue
			}
			if err := g.validate(c.Key, c.Data); err != nil {
				return fmt.Errorf("%w: graph %s: %s %q: %w", domain.ErrCommitFailed, g.name, c.Op, c.Key, err)
			}
		}
	}

	for _, c := range changes {
		if c.Op == changeset.OpDelete {
			delete(g.committed, c.Key)
			continue
		}
		g.committed[c.Key] = c.Data
	}
	g.pending.Reset()

	g.logger.Debug("graph committed",
		slog.String("graph", g.name),
		slog.Int("changes", len(changes)),
	)
	return nil
}

// Rollback discards every pending change.
func (g *Graph) Rollback(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.pending.Len()
	g.pending.Reset()

	g.logger.Debug("graph rolled back",
		slog.String("graph", g.name),
		slog.Int("discarded", n),
	)
	return nil
}

// Count returns the number of committed objects.
func (g *Graph) Count(_ context.Context) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.committed), nil
}
