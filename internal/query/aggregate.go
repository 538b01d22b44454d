package query

import (
	"slices"
	"time"

	"expenso/internal/core"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals are the headline figures of a transaction set.
type Totals struct {
	Income      core.Amount `json:"income"`
	Expenses    core.Amount `json:"expenses"`
	Balance     core.Amount `json:"balance"`
	SavingsRate core.Amount `json:"savingsRate"` // percent, two decimals
}

// AggregateTotals sums income and expenses. The savings rate is zero when
// there is no income.
func AggregateTotals(txs []core.Transaction) Totals {
	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			income = income.Add(tx.Amount.Decimal)
		case core.Expense:
			expenses = expenses.Add(tx.Amount.Decimal)
		}
	}
	return newTotals(income, expenses)
}

// Add combines the totals of two disjoint sets.
func (t Totals) Add(o Totals) Totals {
	return newTotals(t.Income.Add(o.Income.Decimal), t.Expenses.Add(o.Expenses.Decimal))
}

func newTotals(income, expenses decimal.Decimal) Totals {
	return Totals{
		Income:      core.NewAmount(income),
		Expenses:    core.NewAmount(expenses),
		Balance:     core.NewAmount(income.Sub(expenses)),
		SavingsRate: core.NewAmount(savingsRate(income, expenses)),
	}
}

func savingsRate(income, expenses decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return income.Sub(expenses).Div(income).Mul(hundred).Round(2)
}

// CategoryAmount is the expense sum of one category.
type CategoryAmount struct {
	CategoryID string      `json:"categoryId"`
	Name       string      `json:"name"`
	Color      string      `json:"color,omitempty"`
	Amount     core.Amount `json:"amount"`
}

// DefaultSelection returns the ids of the first five categories.
func DefaultSelection(cats []core.Category) []string {
	ids := make([]string, 0, 5)
	for _, c := range cats {
		if len(ids) == 5 {
			break
		}
		ids = append(ids, c.ID)
	}
	return ids
}

// selectedCategories keeps cats whose id is in selected, in category
// order. An empty selection keeps nothing.
func selectedCategories(cats []core.Category, selected []string) []core.Category {
	out := make([]core.Category, 0, len(selected))
	for _, c := range cats {
		if slices.Contains(selected, c.ID) {
			out = append(out, c)
		}
	}
	return out
}

func expenseSums(txs []core.Transaction) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount.Decimal)
	}
	return sums
}

// CategoryBreakdown sums expenses per selected category, drops zero sums
// and sorts by amount descending. Ties keep category order.
func CategoryBreakdown(txs []core.Transaction, cats []core.Category, selected []string) []CategoryAmount {
	sums := expenseSums(txs)
	out := []CategoryAmount{}
	for _, c := range selectedCategories(cats, selected) {
		sum := sums[c.ID]
		if sum.IsZero() {
			continue
		}
		out = append(out, CategoryAmount{CategoryID: c.ID, Name: c.Name, Color: c.Color, Amount: core.NewAmount(sum)})
	}
	slices.SortStableFunc(out, func(a, b CategoryAmount) int { return b.Amount.Cmp(a.Amount.Decimal) })
	return out
}

// MonthBucket holds per-category expense sums for one calendar month.
type MonthBucket struct {
	Month      string           `json:"month"` // yyyy-MM
	Label      string           `json:"label"` // Jan 2006
	Categories []CategoryAmount `json:"categories"`
	Total      core.Amount      `json:"total"`
}

// MonthlySeries returns monthCount consecutive months ending with the month
// of t, oldest first. Every selected category appears in every bucket, zero
// sums included.
func MonthlySeries(txs []core.Transaction, cats []core.Category, selected []string, monthCount int, t time.Time) []MonthBucket {
	if monthCount < 1 {
		return []MonthBucket{}
	}
	chosen := selectedCategories(cats, selected)
	current := calendar(t).BeginningOfMonth()

	out := make([]MonthBucket, 0, monthCount)
	for i := monthCount - 1; i >= 0; i-- {
		first := current.AddDate(0, -i, 0)
		inMonth := FilterByDateRange(txs, RangeMonth, first)
		sums := expenseSums(inMonth)

		bucket := MonthBucket{
			Month:      first.Format("2006-01"),
			Label:      first.Format("Jan 2006"),
			Categories: make([]CategoryAmount, 0, len(chosen)),
		}
		total := decimal.Zero
		for _, c := range chosen {
			sum := sums[c.ID]
			total = total.Add(sum)
			bucket.Categories = append(bucket.Categories, CategoryAmount{
				CategoryID: c.ID, Name: c.Name, Color: c.Color, Amount: core.NewAmount(sum),
			})
		}
		bucket.Total = core.NewAmount(total)
		out = append(out, bucket)
	}
	return out
}

// Summary backs the dashboard cards.
type Summary struct {
	MonthIncome   core.Amount `json:"monthlyIncome"`
	MonthExpenses core.Amount `json:"monthlyExpenses"`
	Balance       core.Amount `json:"balance"`
	SavingsRate   core.Amount `json:"savingsRate"`
}

// Dashboard computes the current month's income and expenses, the
// all-time balance and the savings rate of the current month.
func Dashboard(txs []core.Transaction, t time.Time) Summary {
	month := AggregateTotals(FilterByDateRange(txs, RangeMonth, t))
	all := AggregateTotals(txs)
	return Summary{
		MonthIncome:   month.Income,
		MonthExpenses: month.Expenses,
		Balance:       all.Balance,
		SavingsRate:   month.SavingsRate,
	}
}
