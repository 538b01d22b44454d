package report

import (
	"fmt"
	"strings"
)

// Markdown renders the report as a Markdown document.
func Markdown(r Report) string {
	var b strings.Builder

	b.WriteString("# Expense Distribution Report\n\n")
	fmt.Fprintf(&b, "Generated on %s, covering the last %d months.\n\n", r.GeneratedAt.Format("02 Jan 2006, 15:04"), r.Months)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total expenses:** %s\n", FormatMoney(r.TotalExpense, r.Currency))
	fmt.Fprintf(&b, "- **Income:** %s\n", FormatMoney(r.Totals.Income, r.Currency))
	fmt.Fprintf(&b, "- **Balance:** %s\n", FormatMoney(r.Totals.Balance, r.Currency))
	fmt.Fprintf(&b, "- **Savings rate:** %s%%\n\n", r.Totals.SavingsRate.StringFixed(1))

	b.WriteString("## Category Breakdown\n\n")
	if len(r.Rows) == 0 {
		b.WriteString("No expenses recorded for the selected categories.\n")
		return b.String()
	}
	b.WriteString("| Category | Amount | Percentage | vs. Previous Month |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s%% | %s |\n",
			escapeCell(row.Name), FormatMoney(row.Amount, r.Currency), row.Share.StringFixed(1), signedPercent(row))
	}

	b.WriteString("\n## Key Insights\n\n")
	if top, ok := r.Highest(); ok {
		fmt.Fprintf(&b, "- Highest spending category: %s (%s%% of total)\n", top.Name, top.Share.StringFixed(1))
	}
	fmt.Fprintf(&b, "- Average monthly expense: %s\n", FormatMoney(r.AverageMonthly, r.Currency))
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
