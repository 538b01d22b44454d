package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVHeader is the first line of every CSV export.
var CSVHeader = []string{"Category", "Amount", "Percentage"}

// WriteCSV writes the category breakdown, one row per category.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range r.Rows {
		record := []string{row.Name, row.Amount.String(), row.Share.StringFixed(1) + "%"}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.CategoryID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Table returns header and rows as plain cells, for spreadsheet exports.
func Table(r Report) [][]string {
	out := [][]string{{"Category", "Amount", "Percentage", "vs. Previous Month"}}
	for _, row := range r.Rows {
		out = append(out, []string{row.Name, row.Amount.String(), row.Share.StringFixed(1) + "%", signedPercent(row)})
	}
	return out
}

func signedPercent(row Row) string {
	s := row.Change.StringFixed(1) + "%"
	if row.Change.IsPositive() {
		return "+" + s
	}
	return s
}
