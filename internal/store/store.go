// Package store owns the application state: transactions, categories,
// budgets and the theme.
//
// Every mutation takes the store lock, builds new collections from a copy
// of the current snapshot, swaps them in and saves the whole snapshot
// through the Persister before returning.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"expenso/internal/core"

	"github.com/google/uuid"
)

// DefaultCatchUpLimit bounds how many occurrences one chain may produce in
// a single sweep.
const DefaultCatchUpLimit = 1000

// Store is the single source of truth for the application state.
type Store struct {
	mu        sync.Mutex
	state     core.Snapshot
	version   uint64
	persister Persister
	notifier  Notifier
	logger    *slog.Logger
	newID     func() string
	clock     func() time.Time

	catchUpLimit int
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier publishes a Change after every successful save.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces the UUID generator. Used by tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock sets the time source used for change timestamps.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.clock = fn
		}
	}
}

// WithSingleStepRecurrence makes each sweep materialize at most one
// occurrence per chain, however far behind it is.
func WithSingleStepRecurrence() Option {
	return func(s *Store) { s.catchUpLimit = 1 }
}

// WithCatchUpLimit bounds the occurrences a chain may produce per sweep.
// Zero or less removes the bound.
func WithCatchUpLimit(n int) Option {
	return func(s *Store) { s.catchUpLimit = n }
}

// Open loads the persisted snapshot and returns a ready store. Missing or
// unreadable state starts from the first-run snapshot; the failure is
// logged, never returned.
func Open(ctx context.Context, p Persister, opts ...Option) *Store {
	s := &Store{
		persister:    p,
		logger:       slog.Default().With("component", "store"),
		newID:        uuid.NewString,
		clock:        time.Now,
		catchUpLimit: DefaultCatchUpLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.state = core.InitialSnapshot()
	if p == nil {
		return s
	}

	snap, err := p.Load(ctx)
	switch {
	case errors.Is(err, ErrCorrupt):
		s.logger.WarnContext(ctx, "Persisted state is corrupt, starting fresh", "error", err)
	case err != nil:
		s.logger.ErrorContext(ctx, "Failed to load persisted state, starting fresh", "error", err)
	default:
		s.state = snap.Normalized().Clone()
	}

	s.logger.InfoContext(ctx, "Store opened",
		"transactions", len(s.state.Transactions),
		"categories", len(s.state.Categories),
		"budgets", len(s.state.Budgets))
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() core.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// View returns a copy of the state together with the version it was
// read at.
func (s *Store) View() (core.Snapshot, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone(), s.version
}

// Version increases on every commit.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// mutateFunc edits a private copy of the snapshot and reports whether
// anything changed.
type mutateFunc func(next *core.Snapshot) (changed bool, err error)

// apply runs fn under the lock and commits its result.
func (s *Store) apply(ctx context.Context, op Operation, fn mutateFunc) error {
	s.mu.Lock()
	next := s.state.Clone()
	changed, err := fn(&next)
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}

	s.state = next
	s.version++
	change := Change{Version: s.version, Operation: op, At: s.clock().UTC()}
	saved := s.save(ctx, op, next)
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "State committed", "operation", op, "version", change.Version)
	if saved {
		s.notify(ctx, change)
	}
	return nil
}

// save runs with the lock held so saves reach the persister in commit order.
func (s *Store) save(ctx context.Context, op Operation, snap core.Snapshot) bool {
	if s.persister == nil {
		return true
	}
	if err := s.persister.Save(ctx, snap); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist state", "operation", op, "error", err)
		return false
	}
	return true
}

func (s *Store) notify(ctx context.Context, change Change) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, change); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish change",
			"operation", change.Operation,
			"version", change.Version,
			"error", err)
	}
}
