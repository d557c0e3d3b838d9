// Package view coordinates view loads: it discards results that finish after
// the view was left or reloaded, and keeps the last good snapshot so a failed
// refresh never blanks what was already shown.
package view

import (
	"context"
	"sync"

	"github.com/safecall/crm-console/internal/core/domain"
)

// Tracker tracks in-flight loads and committed snapshots per view key.
type Tracker[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
}

type entry[T any] struct {
	gen    uint64
	cancel context.CancelFunc
	last   T
	has    bool
}

// NewTracker returns an empty Tracker.
func NewTracker[T any]() *Tracker[T] {
	return &Tracker[T]{entries: make(map[string]*entry[T])}
}

// Load is a single in-flight load of a view.
type Load[T any] struct {
	t      *Tracker[T]
	key    string
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// Begin starts a load for key. Any earlier load of the same key is cancelled
// and its results will be rejected by Commit.
func (t *Tracker[T]) Begin(parent context.Context, key string) *Load[T] {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	e, ok := t.entries[key]
	if !ok {
		e = &entry[T]{}
		t.entries[key] = e
	}
	if e.cancel != nil {
		e.cancel()
	}
	e.gen++
	e.cancel = cancel
	gen := e.gen
	t.mu.Unlock()

	return &Load[T]{t: t, key: key, gen: gen, ctx: ctx, cancel: cancel}
}

// Context is cancelled when the load is superseded or its parent is done.
func (l *Load[T]) Context() context.Context {
	return l.ctx
}

// Previous returns the last committed snapshot for the load's key.
func (l *Load[T]) Previous() (T, bool) {
	return l.t.Last(l.key)
}

// Commit stores v as the latest snapshot. It returns domain.ErrStaleView,
// leaving the stored snapshot untouched, when the load was superseded or
// abandoned.
func (l *Load[T]) Commit(v T) error {
	l.t.mu.Lock()
	defer l.t.mu.Unlock()

	e := l.t.entries[l.key]
	if e == nil || e.gen != l.gen || l.ctx.Err() != nil {
		return domain.ErrStaleView
	}
	e.last = v
	e.has = true
	return nil
}

// Release frees the load's context. Safe to call more than once.
func (l *Load[T]) Release() {
	l.cancel()

	l.t.mu.Lock()
	if e := l.t.entries[l.key]; e != nil && e.gen == l.gen {
		e.cancel = nil
	}
	l.t.mu.Unlock()
}

// Last returns the last committed snapshot for key.
func (t *Tracker[T]) Last(key string) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok || !e.has {
		var zero T
		return zero, false
	}
	return e.last, true
}

// Forget drops all state for key, e.g. on logout.
func (t *Tracker[T]) Forget(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[key]; ok && e.cancel != nil {
		e.cancel()
	}
	delete(t.entries, key)
}
