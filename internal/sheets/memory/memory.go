package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"expenso/internal/report"
	ports "expenso/internal/sheets"
)

var _ ports.ReportWriter = (*Writer)(nil)

// Writer keeps written reports in memory. It stands in for a spreadsheet
// when none is configured.
type Writer struct {
	mu      sync.Mutex
	reports []report.Report
}

func New() *Writer {
	return &Writer{}
}

// WriteReport stores the report and returns a synthetic reference.
func (w *Writer) WriteReport(_ context.Context, r report.Report) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reports = append(w.reports, r)
	return fmt.Sprintf("mem:%d", len(w.reports)), nil
}

// Reports returns every report written so far, oldest first.
func (w *Writer) Reports() []report.Report {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.reports)
}
