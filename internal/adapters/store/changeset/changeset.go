// Package changeset tracks the uncommitted inserts, updates, and deletes of
// a key/value object graph. It is shared by the store adapters, which keep
// their committed state elsewhere and consult a Set for everything pending.
//
// A Set is not safe for concurrent use; stores guard it with their own lock.
package changeset

import (
	"maps"
	"slices"

	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
)

// Op classifies a pending change.
type Op int

const (
	OpInsert Op = iota + 1
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is one pending change. Data is nil for deletes.
type Change struct {
	Key  string
	Op   Op
	Data []byte
}

// Set holds at most one pending change per key.
type Set struct {
	changes map[string]Change
}

// New returns an empty Set.
func New() *Set {
	return &Set{changes: make(map[string]Change)}
}

// Put records a write of data under key. committed reports whether key
// exists in the committed state; it decides between insert and update.
// data is copied.
func (s *Set) Put(key string, data []byte, committed bool) {
	op := OpInsert
	if prev, ok := s.changes[key]; ok {
		if prev.Op != OpInsert {
			op = OpUpdate
		}
	} else if committed {
		op = OpUpdate
	}
	s.changes[key] = Change{Key: key, Op: op, Data: clone(data)}
}

// Delete records removal of key. Deleting a pending insert cancels it.
// Returns domain.ErrNotFound if key is not visible.
func (s *Set) Delete(key string, committed bool) error {
	prev, ok := s.changes[key]
	switch {
	case ok && prev.Op == OpInsert:
		delete(s.changes, key)
	case ok && prev.Op == OpDelete:
		return domain.ErrNotFound
	case ok || committed:
		s.changes[key] = Change{Key: key, Op: OpDelete}
	default:
		return domain.ErrNotFound
	}
	return nil
}

// Lookup returns the pending change for key, if any.
func (s *Set) Lookup(key string) (Change, bool) {
	c, ok := s.changes[key]
	return c, ok
}

// Len returns the number of pending changes.
func (s *Set) Len() int {
	return len(s.changes)
}

// Counts returns the pending inserts, updates, and deletes.
func (s *Set) Counts() (inserted, updated, deleted int) {
	for _, c := range s.changes {
		switch c.Op {
		case OpInsert:
			inserted++
		case OpUpdate:
			updated++
		case OpDelete:
			deleted++
		}
	}
	return inserted, updated, deleted
}

// Changes returns the pending changes ordered by key.
func (s *Set) Changes() []Change {
	keys := slices.Sorted(maps.Keys(s.changes))
	out := make([]Change, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.changes[k])
	}
	return out
}

// Reset discards every pending change.
func (s *Set) Reset() {
	clear(s.changes)
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return slices.Clone(b)
}
