package query

import (
	"expenso/internal/core"

	"github.com/shopspring/decimal"
)

// BudgetLevel grades how much of a budget is used.
type BudgetLevel string

const (
	BudgetOK       BudgetLevel = "ok"
	BudgetWarning  BudgetLevel = "warning"
	BudgetCritical BudgetLevel = "critical"
)

var (
	warningAt  = decimal.NewFromInt(70)
	criticalAt = decimal.NewFromInt(90)
)

// BudgetStatus compares a budget with what its category has spent.
type BudgetStatus struct {
	CategoryID string      `json:"categoryId"`
	Name       string      `json:"name"`
	Spent      core.Amount `json:"spent"`
	Limit      core.Amount `json:"limit"`
	Percentage core.Amount `json:"percentage"`
	Level      BudgetLevel `json:"level"`
}

// BudgetStatuses reports every budget in order. Spending counts all expense
// transactions of the category regardless of date.
func BudgetStatuses(txs []core.Transaction, cats []core.Category, budgets []core.Budget) []BudgetStatus {
	sums := expenseSums(txs)
	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := sums[b.CategoryID]
		pct := decimal.Zero
		if b.Limit.IsPositive() {
			pct = spent.Div(b.Limit.Decimal).Mul(hundred).Round(2)
		}
		out = append(out, BudgetStatus{
			CategoryID: b.CategoryID,
			Name:       core.CategoryName(cats, b.CategoryID),
			Spent:      core.NewAmount(spent),
			Limit:      b.Limit,
			Percentage: core.NewAmount(pct),
			Level:      levelFor(pct),
		})
	}
	return out
}

func levelFor(pct decimal.Decimal) BudgetLevel {
	switch {
	case pct.GreaterThan(criticalAt):
		return BudgetCritical
	case pct.GreaterThan(warningAt):
		return BudgetWarning
	default:
		return BudgetOK
	}
}
