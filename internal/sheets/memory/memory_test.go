package memory

import (
	"context"
	"testing"

	"expenso/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterKeepsReports(t *testing.T) {
	w := New()
	ctx := context.Background()

	ref, err := w.WriteReport(ctx, report.Report{Months: 3})
	require.NoError(t, err)
	assert.Equal(t, "mem:1", ref)

	ref, err = w.WriteReport(ctx, report.Report{Months: 6})
	require.NoError(t, err)
	assert.Equal(t, "mem:2", ref)

	got := w.Reports()
	require.Len(t, got, 2)
	assert.Equal(t, 6, got[1].Months)
}
