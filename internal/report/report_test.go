package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"expenso/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportNow = time.Date(2024, 3, 20, 10, 30, 0, 0, time.UTC)

func reportSnapshot() core.Snapshot {
	snap := core.InitialSnapshot()
	add := func(id, amount string, typ core.TransactionType, cat string, y, m, d int) {
		snap.Transactions = append(snap.Transactions, core.Transaction{
			ID: id, Amount: core.MustAmount(amount), Type: typ, Category: cat,
			Description: id, Date: core.NewDate(y, m, d),
		})
	}
	add("food-mar", "300", core.Expense, "1", 2024, 3, 5)
	add("food-feb", "100", core.Expense, "1", 2024, 2, 10)
	add("bus", "100", core.Expense, "2", 2024, 3, 2)
	add("pay", "1000", core.Income, "7", 2024, 3, 1)
	return snap
}

func TestBuild(t *testing.T) {
	r := Build(reportSnapshot(), Options{Months: 2}, reportNow)

	assert.Equal(t, "INR", r.Currency)
	assert.Equal(t, "500", r.TotalExpense.String())
	assert.Equal(t, "250", r.AverageMonthly.String())
	assert.Equal(t, "50", r.Totals.SavingsRate.String())
	require.Len(t, r.Series, 2)

	require.Len(t, r.Rows, 2)
	assert.Equal(t, "Food", r.Rows[0].Name)
	assert.Equal(t, "80", r.Rows[0].Share.String())
	assert.Equal(t, "200", r.Rows[0].Change.String())
	assert.Equal(t, "Transport", r.Rows[1].Name)
	assert.True(t, r.Rows[1].Change.IsZero())

	top, ok := r.Highest()
	require.True(t, ok)
	assert.Equal(t, "1", top.CategoryID)
}

func TestBuildMatchesAggregates(t *testing.T) {
	r := Build(reportSnapshot(), Options{Selected: []string{"1", "2", "3"}}, reportNow)
	assert.Equal(t, DefaultMonths, r.Months)

	sum := decimal.Zero
	for _, row := range r.Rows {
		sum = sum.Add(row.Share.Decimal)
	}
	assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(decimal.NewFromFloat(0.5)), "shares sum to %s", sum)
	assert.True(t, r.TotalExpense.Equal(r.Totals.Expenses.Decimal))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Build(reportSnapshot(), Options{Months: 2}, reportNow)))

	assert.Equal(t, "Category,Amount,Percentage\nFood,400,80.0%\nTransport,100,20.0%\n", buf.String())

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Build(core.InitialSnapshot(), Options{}, reportNow)))
	assert.Equal(t, "Category,Amount,Percentage\n", buf.String())
}

func TestTable(t *testing.T) {
	rows := Table(Build(reportSnapshot(), Options{Months: 2}, reportNow))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Category", "Amount", "Percentage", "vs. Previous Month"}, rows[0])
	assert.Equal(t, []string{"Food", "400", "80.0%", "+200.0%"}, rows[1])
	assert.Equal(t, []string{"Transport", "100", "20.0%", "0.0%"}, rows[2])
}

func TestMarkdown(t *testing.T) {
	md := Markdown(Build(reportSnapshot(), Options{Months: 2, Currency: "USD"}, reportNow))

	assert.Contains(t, md, "# Expense Distribution Report")
	assert.Contains(t, md, "Generated on 20 Mar 2024, 10:30, covering the last 2 months.")
	assert.Contains(t, md, "| Food | $400.00 | 80.0% | +200.0% |")
	assert.Contains(t, md, "Highest spending category: Food (80.0% of total)")
	assert.Contains(t, md, "Average monthly expense: $250.00")
}

func TestMarkdownWithoutExpenses(t *testing.T) {
	md := Markdown(Build(core.InitialSnapshot(), Options{}, reportNow))
	assert.Contains(t, md, "No expenses recorded")
	assert.NotContains(t, md, "Key Insights")
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"0.01", "usd", "$0.01"},
		{"12.5", "ZZZ", "ZZZ 12.50"},
	}
	for _, tt := range tests {
		t.Run(tt.code+" "+tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(core.MustAmount(tt.amount), tt.code))
		})
	}
}
