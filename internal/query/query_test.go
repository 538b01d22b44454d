package query

import (
	"testing"
	"time"

	"expenso/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCats = []core.Category{
	{ID: "food", Name: "Food"},
	{ID: "salary", Name: "Salary"},
	{ID: "bills", Name: "Bills"},
}

func tx(id string, amount string, typ core.TransactionType, cat, desc string, y, m, d int) core.Transaction {
	return core.Transaction{
		ID:          id,
		Amount:      core.MustAmount(amount),
		Type:        typ,
		Category:    cat,
		Description: desc,
		Date:        core.NewDate(y, m, d),
	}
}

func ids(txs []core.Transaction) []string {
	out := make([]string, 0, len(txs))
	for _, t := range txs {
		out = append(out, t.ID)
	}
	return out
}

// Wednesday 2024-03-13.
var refTime = time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)

func sample() []core.Transaction {
	return []core.Transaction{
		tx("a", "1000", core.Income, "salary", "March salary", 2024, 3, 1),
		tx("b", "200", core.Expense, "food", "Groceries", 2024, 3, 11),
		tx("c", "45.5", core.Expense, "food", "Lunch", 2024, 3, 13),
		tx("d", "120", core.Expense, "bills", "Electricity", 2024, 3, 17),
		tx("e", "60", core.Expense, "bills", "Phone", 2024, 2, 20),
		tx("f", "15", core.Expense, "ghost", "Mystery", 2024, 3, 18),
	}
}

func TestFilterByDateRange(t *testing.T) {
	tests := []struct {
		r    DateRange
		want []string
	}{
		{RangeDay, []string{"c"}},
		{RangeWeek, []string{"b", "c", "d"}},
		{RangeMonth, []string{"a", "b", "c", "d", "f"}},
		{RangeAll, []string{"a", "b", "c", "d", "e", "f"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterByDateRange(sample(), tt.r, refTime)))
		})
	}
}

func TestWeekStartsOnMonday(t *testing.T) {
	sunday := time.Date(2024, 3, 17, 23, 0, 0, 0, time.UTC)
	start, end, ok := Bounds(RangeWeek, sunday)
	require.True(t, ok)
	assert.Equal(t, core.NewDate(2024, 3, 11), start)
	assert.Equal(t, core.NewDate(2024, 3, 17), end)
}

func TestFilterBySearch(t *testing.T) {
	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"a", "b", "c", "d", "e", "f"}},
		{"LUNCH", []string{"c"}},
		{"food", []string{"b", "c"}},
		{"45.5", []string{"c"}},
		{"12", []string{"d"}},
		{"nothing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterBySearch(sample(), testCats, tt.term)))
		})
	}
}

func TestFilterByFields(t *testing.T) {
	tests := []struct {
		name string
		f    FieldFilters
		want []string
	}{
		{"none", FieldFilters{}, []string{"a", "b", "c", "d", "e", "f"}},
		{"type all", FieldFilters{Type: "all"}, []string{"a", "b", "c", "d", "e", "f"}},
		{"income", FieldFilters{Type: "income"}, []string{"a"}},
		{"month substring", FieldFilters{Date: "2024-02"}, []string{"e"}},
		{"category and amount", FieldFilters{Category: "bil", Amount: "6"}, []string{"e"}},
		{"description", FieldFilters{Description: "gro"}, []string{"b"}},
		{"unknown category never matches names", FieldFilters{Category: "ghost"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterByFields(sample(), testCats, tt.f)))
		})
	}
}

func TestSort(t *testing.T) {
	txs := sample()
	assert.Equal(t, []string{"f", "d", "c", "b", "a", "e"}, ids(Sort(txs, SortDateDesc)))
	assert.Equal(t, []string{"e", "a", "b", "c", "d", "f"}, ids(Sort(txs, SortDateAsc)))
	assert.Equal(t, []string{"a", "b", "d", "e", "c", "f"}, ids(Sort(txs, SortAmountDesc)))
	assert.Equal(t, []string{"f", "c", "e", "d", "b", "a"}, ids(Sort(txs, SortAmountAsc)))
	assert.Equal(t, "a", txs[0].ID, "input must not be reordered")
}

func TestApply(t *testing.T) {
	got := Apply(sample(), testCats, Query{
		Range:  RangeMonth,
		Search: "food",
		Fields: FieldFilters{Type: "expense"},
		Sort:   SortAmountAsc,
	}, refTime)
	assert.Equal(t, []string{"c", "b"}, ids(got))
}

func TestApplySearchAndFieldsBothApply(t *testing.T) {
	got := Apply(sample(), testCats, Query{
		Search: "groceries",
		Fields: FieldFilters{Amount: "45"},
	}, refTime)
	assert.Empty(t, got)

	got = Apply(sample(), testCats, Query{
		Search: "groceries",
		Fields: FieldFilters{Amount: "200"},
	}, refTime)
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestAggregateTotalsScenario(t *testing.T) {
	txs := []core.Transaction{
		tx("1", "1000", core.Income, "salary", "Pay", 2024, 3, 1),
		tx("2", "200", core.Expense, "food", "Food", 2024, 3, 5),
	}
	got := AggregateTotals(txs)
	assert.Equal(t, "1000", got.Income.String())
	assert.Equal(t, "200", got.Expenses.String())
	assert.Equal(t, "800", got.Balance.String())
	assert.Equal(t, "80", got.SavingsRate.String())
}

func TestAggregateTotalsEmptyAndNoIncome(t *testing.T) {
	empty := AggregateTotals(nil)
	assert.True(t, empty.Income.IsZero())
	assert.True(t, empty.SavingsRate.IsZero())

	onlyExpense := AggregateTotals([]core.Transaction{tx("x", "50", core.Expense, "food", "x", 2024, 1, 1)})
	assert.Equal(t, "-50", onlyExpense.Balance.String())
	assert.True(t, onlyExpense.SavingsRate.IsZero())
}

func TestAggregateTotalsIsAdditive(t *testing.T) {
	all := sample()
	for split := 0; split <= len(all); split++ {
		left, right := all[:split], all[split:]
		whole := AggregateTotals(all)
		sum := AggregateTotals(left).Add(AggregateTotals(right))

		assert.True(t, whole.Income.Equal(sum.Income.Decimal), "income split %d", split)
		assert.True(t, whole.Expenses.Equal(sum.Expenses.Decimal), "expenses split %d", split)
		assert.True(t, whole.Balance.Equal(sum.Balance.Decimal), "balance split %d", split)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	got := CategoryBreakdown(sample(), testCats, []string{"food", "salary", "bills"})
	require.Len(t, got, 2)
	assert.Equal(t, "Food", got[0].Name)
	assert.Equal(t, "245.5", got[0].Amount.String())
	assert.Equal(t, "Bills", got[1].Name)
	assert.Equal(t, "180", got[1].Amount.String())

	onlyBills := CategoryBreakdown(sample(), testCats, []string{"bills", "salary"})
	require.Len(t, onlyBills, 1)
	assert.Equal(t, "bills", onlyBills[0].CategoryID)

	assert.Empty(t, CategoryBreakdown(nil, testCats, []string{"food"}))
}

func TestEmptySelectionYieldsNothing(t *testing.T) {
	got := CategoryBreakdown(sample(), testCats, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, CategoryBreakdown(sample(), testCats, []string{}))

	series := MonthlySeries(sample(), testCats, nil, 2, refTime)
	require.Len(t, series, 2)
	for _, b := range series {
		assert.Empty(t, b.Categories)
		assert.True(t, b.Total.IsZero())
	}
}

func TestMonthlySeries(t *testing.T) {
	got := MonthlySeries(sample(), testCats, []string{"food", "bills"}, 3, refTime)
	require.Len(t, got, 3)

	assert.Equal(t, "2024-01", got[0].Month)
	assert.Equal(t, "Jan 2024", got[0].Label)
	assert.Equal(t, "2024-03", got[2].Month)

	for _, b := range got {
		require.Len(t, b.Categories, 2)
	}
	assert.True(t, got[0].Total.IsZero())
	assert.Equal(t, "60", got[1].Categories[1].Amount.String())
	assert.Equal(t, "245.5", got[2].Categories[0].Amount.String())
	assert.Equal(t, "120", got[2].Categories[1].Amount.String())
	assert.Equal(t, "365.5", got[2].Total.String())

	assert.Empty(t, MonthlySeries(sample(), testCats, nil, 0, refTime))
}

func TestMonthlySeriesCrossesYear(t *testing.T) {
	got := MonthlySeries(nil, testCats, nil, 3, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	require.Len(t, got, 3)
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01"}, []string{got[0].Month, got[1].Month, got[2].Month})
}

func TestDashboard(t *testing.T) {
	got := Dashboard(sample(), refTime)
	assert.Equal(t, "1000", got.MonthIncome.String())
	assert.Equal(t, "380.5", got.MonthExpenses.String())
	assert.Equal(t, "559.5", got.Balance.String())
	assert.Equal(t, "61.95", got.SavingsRate.String())
}

func TestBudgetStatuses(t *testing.T) {
	budgets := []core.Budget{
		{CategoryID: "food", Limit: core.AmountFromInt(250)},
		{CategoryID: "bills", Limit: core.AmountFromInt(240)},
		{CategoryID: "salary", Limit: core.AmountFromInt(100)},
	}
	got := BudgetStatuses(sample(), testCats, budgets)
	require.Len(t, got, 3)

	assert.Equal(t, BudgetCritical, got[0].Level)
	assert.Equal(t, "98.2", got[0].Percentage.String())
	assert.Equal(t, BudgetWarning, got[1].Level)
	assert.Equal(t, "75", got[1].Percentage.String())
	assert.Equal(t, BudgetOK, got[2].Level)
	assert.True(t, got[2].Spent.IsZero())
}

func TestDefaultSelection(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, DefaultSelection(core.DefaultCategories()))
	assert.Equal(t, []string{"food", "salary", "bills"}, DefaultSelection(testCats))
}
