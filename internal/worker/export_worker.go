package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"expenso/internal/amqp"
	"expenso/internal/core"
	"expenso/internal/report"
	"expenso/internal/sheets"
)

// SnapshotLoader reads the persisted state. store.Persister satisfies it.
type SnapshotLoader interface {
	Load(ctx context.Context) (core.Snapshot, error)
}

// ExportWorker rebuilds the expense report and writes it to a spreadsheet
// whenever the state changes.
type ExportWorker struct {
	loader SnapshotLoader
	writer sheets.ReportWriter
	opts   report.Options
	now    func() time.Time

	mu         sync.Mutex
	exportedAt time.Time
}

func NewExportWorker(loader SnapshotLoader, writer sheets.ReportWriter, opts report.Options) *ExportWorker {
	return &ExportWorker{
		loader: loader,
		writer: writer,
		opts:   opts,
		now:    time.Now,
	}
}

// HandleChangeMessage processes a single change message from AMQP. Messages
// older than the last export are skipped: that export already read a state
// containing them.
func (w *ExportWorker) HandleChangeMessage(ctx context.Context, msg *amqp.ChangeMessage) error {
	w.mu.Lock()
	stale := !w.exportedAt.IsZero() && msg.Timestamp.Before(w.exportedAt)
	w.mu.Unlock()

	if stale {
		slog.DebugContext(ctx, "Skipping change already covered by last export",
			"version", msg.Version,
			"operation", msg.Operation)
		return nil
	}

	ref, err := w.Export(ctx)
	if err != nil {
		return fmt.Errorf("export after %s: %w", msg.Operation, err)
	}

	slog.InfoContext(ctx, "Report exported",
		"version", msg.Version,
		"operation", msg.Operation,
		"ref", ref)
	return nil
}

// Export loads the current state, builds the report and writes it.
func (w *ExportWorker) Export(ctx context.Context) (string, error) {
	started := w.now()

	snap, err := w.loader.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load snapshot: %w", err)
	}

	r := report.Build(snap, w.opts, started)
	ref, err := w.writer.WriteReport(ctx, r)
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	w.mu.Lock()
	if started.After(w.exportedAt) {
		w.exportedAt = started
	}
	w.mu.Unlock()
	return ref, nil
}

// RunPeriodic exports on every tick until ctx is done. It backs up the
// message path in case messages are lost.
func (w *ExportWorker) RunPeriodic(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.Export(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}
