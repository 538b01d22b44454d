package store

import (
	"context"
	"time"

	"expenso/internal/core"
)

// Persister loads and saves the whole snapshot under one key.
//
// Load returns the first-run snapshot when nothing was saved yet. A corrupt
// slot is reported as an error wrapping ErrCorrupt so the caller can log it
// and start fresh.
type Persister interface {
	Load(ctx context.Context) (core.Snapshot, error)
	Save(ctx context.Context, snap core.Snapshot) error
}

// Change describes one committed mutation.
type Change struct {
	Version   uint64    `json:"version"`
	Operation Operation `json:"operation"`
	At        time.Time `json:"timestamp"`
}

// Notifier is told about every committed change after it was saved.
type Notifier interface {
	Notify(ctx context.Context, change Change) error
}

// Operation names a store mutation in logs and change events.
type Operation string

const (
	OpAddTransaction    Operation = "add_transaction"
	OpUpdateTransaction Operation = "update_transaction"
	OpDeleteTransaction Operation = "delete_transaction"
	OpSetBudget         Operation = "set_budget"
	OpAddCategory       Operation = "add_category"
	OpUpdateCategory    Operation = "update_category"
	OpDeleteCategory    Operation = "delete_category"
	OpToggleTheme       Operation = "toggle_theme"
	OpProcessRecurring  Operation = "process_recurring"
	OpReset             Operation = "reset"
)
