package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"expenso/internal/core"
	"expenso/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type recordedCall struct {
	method string
	path   string
	query  string
	body   []byte
}

func fakeSheets(t *testing.T) (*Client, func() []recordedCall) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []recordedCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		calls = append(calls, recordedCall{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: body})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithHTTPClient(srv.Client()),
		goption.WithoutAuthentication())
	require.NoError(t, err)

	return NewWithService(svc, "sheet-123", ""), func() []recordedCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedCall(nil), calls...)
	}
}

func sampleReport() report.Report {
	snap := core.InitialSnapshot()
	snap.Transactions = []core.Transaction{{
		ID: "t1", Amount: core.AmountFromInt(250), Type: core.Expense, Category: "1",
		Description: "Groceries", Date: core.NewDate(2024, 3, 2),
	}}
	return report.Build(snap, report.Options{Months: 1, Currency: "USD"}, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
}

func TestWriteReport(t *testing.T) {
	c, calls := fakeSheets(t)

	ref, err := c.WriteReport(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "Report!A1:D9", ref)

	got := calls()
	require.Len(t, got, 2)

	assert.Equal(t, http.MethodPost, got[0].method)
	assert.True(t, strings.HasSuffix(got[0].path, "Report!A:D:clear"), got[0].path)
	assert.Contains(t, got[0].path, "/spreadsheets/sheet-123/")

	assert.Equal(t, http.MethodPut, got[1].method)
	assert.Contains(t, got[1].query, "valueInputOption=USER_ENTERED")
	var vr gsheet.ValueRange
	require.NoError(t, json.Unmarshal(got[1].body, &vr))
	require.Len(t, vr.Values, 9)
	assert.Equal(t, []any{"Category", "Amount", "Percentage", "vs. Previous Month"}, vr.Values[0])
	assert.Equal(t, []any{"Food", "250", "100.0%", "0.0%"}, vr.Values[1])
	assert.Equal(t, []any{"Total expenses", "$250.00"}, vr.Values[4])
}

func TestWriteReportWithoutService(t *testing.T) {
	c := &Client{spreadsheetID: "x", sheet: DefaultSheetName}
	_, err := c.WriteReport(context.Background(), sampleReport())
	assert.EqualError(t, err, "sheets service not initialized")
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.EqualError(t, err, "missing GOOGLE_SPREADSHEET_ID")
}

func TestCredentialsResolution(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	ctx := context.Background()

	data, err := credentials(ctx, Options{CredentialsJSON: ` {"type":"service_account"} `})
	require.NoError(t, err)
	assert.Equal(t, `{"type":"service_account"}`, string(data))

	_, err = credentials(ctx, Options{CredentialsFile: "/does/not/exist.json"})
	assert.ErrorContains(t, err, "read service account file")

	_, err = credentials(ctx, Options{})
	assert.ErrorContains(t, err, "missing service account credentials")
}
