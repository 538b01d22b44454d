package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"expenso/internal/report"
	ports "expenso/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// DefaultSheetName is the tab reports are written to.
const DefaultSheetName = "Report"

// reportColumns is the column span cleared before every write.
const reportColumns = "A:D"

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheet         string
}

// Ensure interface conformance
var _ ports.ReportWriter = (*Client)(nil)

// Options locate the spreadsheet and the service account credentials.
// CredentialsJSON wins over CredentialsFile; when both are empty
// GOOGLE_APPLICATION_CREDENTIALS is consulted.
type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	creds, err := credentials(ctx, opts)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created successfully")
	return NewWithService(svc, opts.SpreadsheetID, opts.SheetName), nil
}

// NewWithService wraps an existing service. Used by tests and callers that
// build their own transport.
func NewWithService(svc *gsheet.Service, spreadsheetID, sheet string) *Client {
	if strings.TrimSpace(sheet) == "" {
		sheet = DefaultSheetName
	}
	return &Client{svc: svc, spreadsheetID: strings.TrimSpace(spreadsheetID), sheet: sheet}
}

// credentials resolves service account JSON from the options or from
// GOOGLE_APPLICATION_CREDENTIALS.
func credentials(ctx context.Context, opts Options) ([]byte, error) {
	inline := strings.TrimSpace(opts.CredentialsJSON)
	file := strings.TrimSpace(opts.CredentialsFile)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		slog.InfoContext(ctx, "Using inline JSON credentials")
		return []byte(inline), nil
	case file != "":
		slog.InfoContext(ctx, "Reading credentials from file", "path", file)
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// WriteReport replaces the content of the report tab with the breakdown
// table followed by the summary figures.
func (c *Client) WriteReport(ctx context.Context, r report.Report) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	values := reportValues(r)

	clearRange := fmt.Sprintf("%s!%s", c.sheet, reportColumns)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to clear %s: %w", clearRange, err)
	}

	ref := fmt.Sprintf("%s!A1:D%d", c.sheet, len(values))
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, ref, &gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to update %s: %w", ref, err)
	}

	slog.InfoContext(ctx, "Report written to Google Sheets",
		"range", ref,
		"rows", len(r.Rows))
	return ref, nil
}

func reportValues(r report.Report) [][]any {
	var values [][]any
	for _, row := range report.Table(r) {
		values = append(values, toAny(row))
	}
	values = append(values,
		[]any{},
		[]any{"Generated on", r.GeneratedAt.Format("2006-01-02 15:04")},
		[]any{"Total expenses", report.FormatMoney(r.TotalExpense, r.Currency)},
		[]any{"Income", report.FormatMoney(r.Totals.Income, r.Currency)},
		[]any{"Balance", report.FormatMoney(r.Totals.Balance, r.Currency)},
		[]any{"Savings rate", r.Totals.SavingsRate.StringFixed(1) + "%"},
		[]any{"Average monthly expense", report.FormatMoney(r.AverageMonthly, r.Currency)},
	)
	return values
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
