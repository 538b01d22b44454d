package query

import (
	"cmp"
	"slices"
	"time"

	"expenso/internal/core"
)

// SortOption orders a transaction list.
type SortOption string

const (
	SortDateDesc   SortOption = "date-desc"
	SortDateAsc    SortOption = "date-asc"
	SortAmountDesc SortOption = "amount-desc"
	SortAmountAsc  SortOption = "amount-asc"
)

func (o SortOption) Valid() bool {
	switch o {
	case SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc:
		return true
	default:
		return false
	}
}

// Sort returns a sorted copy. The sort is stable; unknown options sort
// newest first.
func Sort(txs []core.Transaction, o SortOption) []core.Transaction {
	out := slices.Clone(txs)
	var compare func(a, b core.Transaction) int
	switch o {
	case SortDateAsc:
		compare = func(a, b core.Transaction) int { return a.Date.Compare(b.Date) }
	case SortAmountDesc:
		compare = func(a, b core.Transaction) int { return b.Amount.Cmp(a.Amount.Decimal) }
	case SortAmountAsc:
		compare = func(a, b core.Transaction) int { return a.Amount.Cmp(b.Amount.Decimal) }
	default:
		compare = func(a, b core.Transaction) int { return b.Date.Compare(a.Date) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

// Query bundles every list filter the transaction views offer.
type Query struct {
	Range  DateRange
	Search string
	Fields FieldFilters
	Sort   SortOption
}

// Apply narrows by range, then search, then field filters, and sorts the
// result.
func Apply(txs []core.Transaction, cats []core.Category, q Query, t time.Time) []core.Transaction {
	r := cmp.Or(q.Range, RangeAll)
	out := FilterByDateRange(txs, r, t)
	out = FilterBySearch(out, cats, q.Search)
	out = FilterByFields(out, cats, q.Fields)
	return Sort(out, q.Sort)
}
