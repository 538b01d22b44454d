package worker

import (
	"context"
	"log/slog"
	"time"

	"expenso/internal/core"
)

// RecurringProcessor materializes due recurring transactions.
// *store.Store satisfies it.
type RecurringProcessor interface {
	ProcessRecurring(ctx context.Context, now time.Time) ([]core.Transaction, error)
}

// RecurringWorker runs the recurring sweep once at startup and then on
// every tick.
type RecurringWorker struct {
	processor RecurringProcessor
	interval  time.Duration
	now       func() time.Time
}

func NewRecurringWorker(p RecurringProcessor, interval time.Duration) *RecurringWorker {
	return &RecurringWorker{processor: p, interval: interval, now: time.Now}
}

// RunOnce performs a single sweep and returns the number of created
// transactions.
func (w *RecurringWorker) RunOnce(ctx context.Context) (int, error) {
	created, err := w.processor.ProcessRecurring(ctx, w.now())
	if err != nil {
		return 0, err
	}
	return len(created), nil
}

// Run sweeps immediately and then every interval until ctx is done. Sweep
// failures are logged and do not stop the loop.
func (w *RecurringWorker) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "Running initial recurring transaction processing")
	w.sweep(ctx)
	return w.Loop(ctx)
}

// Loop sweeps on every tick, without the initial sweep.
func (w *RecurringWorker) Loop(ctx context.Context) error {
	if w.interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *RecurringWorker) sweep(ctx context.Context) {
	count, err := w.RunOnce(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Recurring processing failed", "error", err)
		return
	}
	slog.InfoContext(ctx, "Recurring processing complete",
		"transactions_created", count,
		"next_check", w.now().Add(w.interval).Format("15:04:05"))
}
