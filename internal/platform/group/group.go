// Package group provides Group, the shared synchronization handle used to
// coalesce commits. Participants bracket work with Enter and Leave; callbacks
// registered with Notify run once the number of outstanding entries drops to
// zero. A round is the set of notifications fired by one such drain.
//
// A Group has no owner. Every participant holds the same *Group, and a Group
// may be shared by callers that otherwise know nothing about each other.
package group

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

type notification struct {
	ctx  context.Context
	exec ports.Executor
	fn   func(ctx context.Context)
}

// Group counts outstanding entries and fires notifications when the count
// reaches zero. The zero value is not usable; create groups with New.
type Group struct {
	mu      sync.Mutex
	count   int
	round   uuid.UUID
	notify  []notification
	waiters []chan struct{}
}

// New creates an idle group.
func New() *Group {
	return &Group{round: uuid.New()}
}

// Enter records one outstanding entry.
func (g *Group) Enter() {
	g.mu.Lock()
	g.count++
	g.mu.Unlock()
}

// Leave releases one entry. When the last entry is released the group
// starts a new round: every pending notification is submitted to its
// executor, then every Wait caller is released.
//
// Leave panics if it is not balanced by a prior Enter.
func (g *Group) Leave() {
	g.mu.Lock()
	if g.count == 0 {
		g.mu.Unlock()
		panic("group: Leave without matching Enter")
	}
	g.count--
	if g.count > 0 {
		g.mu.Unlock()
		return
	}
	notify := g.notify
	waiters := g.waiters
	g.notify = nil
	g.waiters = nil
	g.round = uuid.New()
	g.mu.Unlock()

	for _, n := range notify {
		fire(n)
	}
	for _, w := range waiters {
		close(w)
	}
}

// Notify schedules fn on exec once the group has no outstanding entries.
// If the group is already idle, fn is submitted immediately.
//
// Notify returns the identifier of the round fn belongs to, and an error
// only when an immediate submission fails. If exec has been closed by the
// time a deferred notification fires, fn runs on its own goroutine so a
// notification is never lost.
func (g *Group) Notify(ctx context.Context, exec ports.Executor, fn func(ctx context.Context)) (uuid.UUID, error) {
	n := notification{ctx: ctx, exec: exec, fn: fn}

	g.mu.Lock()
	round := g.round
	if g.count > 0 {
		g.notify = append(g.notify, n)
		g.mu.Unlock()
		return round, nil
	}
	g.mu.Unlock()

	if err := exec.Submit(ctx, fn); err != nil {
		return round, fmt.Errorf("submitting group notification to %s: %w", exec.Name(), err)
	}
	return round, nil
}

// Wait blocks until the group has no outstanding entries or ctx is done.
func (g *Group) Wait(ctx context.Context) error {
	g.mu.Lock()
	if g.count == 0 {
		g.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	g.waiters = append(g.waiters, ch)
	g.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Outstanding returns the current number of unreleased entries.
func (g *Group) Outstanding() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}

func fire(n notification) {
	if err := n.exec.Submit(n.ctx, n.fn); err != nil {
		go n.fn(context.WithoutCancel(n.ctx))
	}
}
