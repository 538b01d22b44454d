// Package report turns aggregates into exportable expense reports.
//
// Reports are built only from query.CategoryBreakdown, query.AggregateTotals
// and query.MonthlySeries so exported figures always match what the API
// shows.
package report

import (
	"time"

	"expenso/internal/core"
	"expenso/internal/query"

	"github.com/shopspring/decimal"
)

const (
	DefaultMonths   = 6
	DefaultCurrency = "INR"
)

var hundred = decimal.NewFromInt(100)

// Options select what goes into a report.
type Options struct {
	Selected []string // category ids; empty means the default selection
	Months   int      // period length for series and averages
	Currency string   // ISO 4217 code used for display
}

// Row is one category line of the breakdown table.
type Row struct {
	CategoryID string      `json:"categoryId"`
	Name       string      `json:"name"`
	Amount     core.Amount `json:"amount"`
	Share      core.Amount `json:"share"`  // percent of the breakdown total, one decimal
	Change     core.Amount `json:"change"` // current vs previous month, percent, one decimal
}

// Report is the data behind every export format.
type Report struct {
	GeneratedAt    time.Time           `json:"generatedAt"`
	Months         int                 `json:"months"`
	Currency       string              `json:"currency"`
	Totals         query.Totals        `json:"totals"`
	TotalExpense   core.Amount         `json:"totalExpense"`
	Rows           []Row               `json:"rows"`
	Series         []query.MonthBucket `json:"series"`
	AverageMonthly core.Amount         `json:"averageMonthly"`
}

// Highest returns the row with the largest amount.
func (r Report) Highest() (Row, bool) {
	if len(r.Rows) == 0 {
		return Row{}, false
	}
	return r.Rows[0], true
}

// Build assembles a report from snap as of now.
func Build(snap core.Snapshot, opts Options, now time.Time) Report {
	if opts.Months < 1 {
		opts.Months = DefaultMonths
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	selected := opts.Selected
	if len(selected) == 0 {
		selected = query.DefaultSelection(snap.Categories)
	}

	breakdown := query.CategoryBreakdown(snap.Transactions, snap.Categories, selected)
	total := decimal.Zero
	for _, c := range breakdown {
		total = total.Add(c.Amount.Decimal)
	}

	lastTwo := query.MonthlySeries(snap.Transactions, snap.Categories, selected, 2, now)
	rows := make([]Row, 0, len(breakdown))
	for _, c := range breakdown {
		rows = append(rows, Row{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			Amount:     c.Amount,
			Share:      core.NewAmount(percentOf(c.Amount.Decimal, total)),
			Change:     core.NewAmount(monthChange(lastTwo, c.CategoryID)),
		})
	}

	return Report{
		GeneratedAt:    now,
		Months:         opts.Months,
		Currency:       opts.Currency,
		Totals:         query.AggregateTotals(snap.Transactions),
		TotalExpense:   core.NewAmount(total),
		Rows:           rows,
		Series:         query.MonthlySeries(snap.Transactions, snap.Categories, selected, opts.Months, now),
		AverageMonthly: core.NewAmount(total.Div(decimal.NewFromInt(int64(opts.Months)))),
	}
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(1)
}

// monthChange compares the category's spending in the last bucket with the
// one before. No spending in the previous month yields zero.
func monthChange(lastTwo []query.MonthBucket, categoryID string) decimal.Decimal {
	if len(lastTwo) != 2 {
		return decimal.Zero
	}
	prev, cur := amountIn(lastTwo[0], categoryID), amountIn(lastTwo[1], categoryID)
	if !prev.IsPositive() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(hundred).Round(1)
}

func amountIn(b query.MonthBucket, categoryID string) decimal.Decimal {
	for _, c := range b.Categories {
		if c.CategoryID == categoryID {
			return c.Amount.Decimal
		}
	}
	return decimal.Zero
}
