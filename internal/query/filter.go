// Package query derives filtered views and aggregates from a snapshot.
//
// Every function is pure: inputs are never modified and the reference time
// is always passed in.
package query

import (
	"slices"
	"strings"
	"time"

	"expenso/internal/core"

	"github.com/jinzhu/now"
)

// DateRange selects transactions relative to the current day.
type DateRange string

const (
	RangeDay   DateRange = "day"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
	RangeAll   DateRange = "all"
)

func (r DateRange) Valid() bool {
	switch r {
	case RangeDay, RangeWeek, RangeMonth, RangeAll:
		return true
	default:
		return false
	}
}

// calendar computes period bounds with weeks starting on Monday.
func calendar(t time.Time) *now.Now {
	cfg := &now.Config{WeekStartDay: time.Monday, TimeLocation: t.Location()}
	return cfg.With(t)
}

// Bounds returns the first and last day of the range containing t. The
// second result is false for RangeAll and unknown ranges.
func Bounds(r DateRange, t time.Time) (start, end core.Date, ok bool) {
	c := calendar(t)
	switch r {
	case RangeDay:
		return core.DateOf(c.BeginningOfDay()), core.DateOf(c.EndOfDay()), true
	case RangeWeek:
		return core.DateOf(c.BeginningOfWeek()), core.DateOf(c.EndOfWeek()), true
	case RangeMonth:
		return core.DateOf(c.BeginningOfMonth()), core.DateOf(c.EndOfMonth()), true
	default:
		return core.Date{}, core.Date{}, false
	}
}

// FilterByDateRange keeps transactions dated within the day, week or month
// containing t, bounds inclusive. RangeAll returns every transaction.
func FilterByDateRange(txs []core.Transaction, r DateRange, t time.Time) []core.Transaction {
	start, end, ok := Bounds(r, t)
	if !ok {
		return slices.Clone(txs)
	}
	return keep(txs, func(tx core.Transaction) bool {
		return start.OnOrBefore(tx.Date) && tx.Date.OnOrBefore(end)
	})
}

// FilterBySearch matches term case-insensitively against the description,
// the category name and the amount. An empty term matches everything.
func FilterBySearch(txs []core.Transaction, cats []core.Category, term string) []core.Transaction {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(txs)
	}
	return keep(txs, func(tx core.Transaction) bool {
		return contains(tx.Description, term) ||
			contains(core.CategoryName(cats, tx.Category), term) ||
			strings.Contains(tx.Amount.String(), term)
	})
}

// FieldFilters holds per-column filters. Empty fields are ignored; Type
// also ignores "all".
type FieldFilters struct {
	Date        string `json:"date,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Type        string `json:"type,omitempty"`
}

// FilterByFields keeps transactions matching every non-empty field.
func FilterByFields(txs []core.Transaction, cats []core.Category, f FieldFilters) []core.Transaction {
	date := strings.TrimSpace(f.Date)
	category := strings.ToLower(strings.TrimSpace(f.Category))
	description := strings.ToLower(strings.TrimSpace(f.Description))
	amount := strings.TrimSpace(f.Amount)
	typ := strings.ToLower(strings.TrimSpace(f.Type))
	if typ == "all" {
		typ = ""
	}

	return keep(txs, func(tx core.Transaction) bool {
		if date != "" && !strings.Contains(tx.Date.String(), date) {
			return false
		}
		if category != "" && !contains(core.CategoryName(cats, tx.Category), category) {
			return false
		}
		if description != "" && !contains(tx.Description, description) {
			return false
		}
		if amount != "" && !strings.Contains(tx.Amount.String(), amount) {
			return false
		}
		if typ != "" && string(tx.Type) != typ {
			return false
		}
		return true
	})
}

// contains reports whether s holds the already lower-cased needle.
func contains(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

func keep(txs []core.Transaction, pred func(core.Transaction) bool) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if pred(tx) {
			out = append(out, tx)
		}
	}
	return out
}
