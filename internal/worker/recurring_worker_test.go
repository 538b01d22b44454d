package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"expenso/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcessor struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
	out   []core.Transaction
}

func (f *fakeProcessor) ProcessRecurring(_ context.Context, now time.Time) ([]core.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	return f.out, f.err
}

func (f *fakeProcessor) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestRecurringWorkerRunOnce(t *testing.T) {
	at := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	p := &fakeProcessor{out: make([]core.Transaction, 3)}
	w := NewRecurringWorker(p, time.Hour)
	w.now = func() time.Time { return at }

	n, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []time.Time{at}, p.calls)

	p.err = errors.New("boom")
	_, err = w.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestRecurringWorkerRunSweepsAtStartupAndOnTicks(t *testing.T) {
	p := &fakeProcessor{err: errors.New("transient")}
	w := NewRecurringWorker(p, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool { return p.count() >= 3 }, time.Second, 5*time.Millisecond,
		"failures must not stop the loop")
	cancel()
	assert.NoError(t, <-done)
}

func TestRecurringWorkerWithoutInterval(t *testing.T) {
	p := &fakeProcessor{}
	w := NewRecurringWorker(p, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, w.Run(ctx))
	assert.Equal(t, 1, p.count())
}
