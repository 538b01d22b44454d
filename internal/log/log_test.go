package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithComponentReplacesAttribute(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Output: &buf})
	l.WithComponent(ComponentStore).Info("committed")

	line := buf.String()
	assert.Equal(t, 1, strings.Count(line, "component="), line)
	assert.Contains(t, line, "component=store")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Format: "json", Output: &buf, Component: ComponentWorker}).Info("hi", FieldCount, 2)
	assert.Contains(t, buf.String(), `"component":"worker"`)
	assert.Contains(t, buf.String(), `"count":2`)
}

func TestFieldsToSliceIsSorted(t *testing.T) {
	got := NewFields().
		WithOperation("add").
		WithError(errors.New("boom")).
		WithError(nil).
		WithComponent(ComponentHTTP).
		ToSlice()
	assert.Equal(t, []any{"component", "http", "error", "boom", "operation", "add"}, got)
}

func TestMiddlewareStoresLogger(t *testing.T) {
	l := New(Config{Output: &bytes.Buffer{}, Component: ComponentHTTP})
	var got *Logger
	h := Middleware(l)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, got)
	assert.Equal(t, ComponentHTTP, got.Component())
	assert.Equal(t, "unknown", FromContext(context.Background()).Component())
}
