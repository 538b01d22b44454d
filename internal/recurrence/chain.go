package recurrence

import (
	"fmt"

	"expenso/internal/core"
)

// Occurrence is one projected date of a recurring chain.
type Occurrence struct {
	Template core.Transaction `json:"template"`
	Date     core.Date        `json:"date"`
}

// seriesKey identifies records that belong to the same recurring chain.
// Materialized records copy every field except id and dates, so two records
// share a key exactly when one could have been derived from the other.
func seriesKey(tx core.Transaction) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		tx.Type, tx.Category, tx.Description, tx.Amount.String(), tx.RecurringInterval)
}

func linkKey(tx core.Transaction, on core.Date) string {
	return seriesKey(tx) + "@" + on.String()
}

// Heads returns the recurring records that have not been materialized yet:
// no other record of the same series is dated at their next recurring date.
// Input order is preserved.
func Heads(txs []core.Transaction) []core.Transaction {
	dated := make(map[string]struct{}, len(txs))
	for _, tx := range txs {
		if tx.IsRecurring {
			dated[linkKey(tx, tx.Date.Civil())] = struct{}{}
		}
	}

	var heads []core.Transaction
	for _, tx := range txs {
		if !tx.IsRecurring || tx.NextRecurringDate.IsZero() {
			continue
		}
		if _, done := dated[linkKey(tx, tx.NextRecurringDate.Civil())]; done {
			continue
		}
		heads = append(heads, tx)
	}
	return heads
}

// Materialize builds the records due on or before today. Each head yields
// at most limit records (limit <= 0 means no bound), each dated at the
// chain's next recurring date and carrying the following one forward.
// Heads with an unknown interval are reported in skipped.
func Materialize(txs []core.Transaction, today core.Date, limit int, newID func() string) (created []core.Transaction, skipped []error) {
	for _, head := range Heads(txs) {
		if !head.NextRecurringDate.OnOrBefore(today) {
			continue
		}
		dates, err := Project(head.NextRecurringDate, head.RecurringInterval, today, limit)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("transaction %s: %w", head.ID, err))
			continue
		}
		for _, d := range dates {
			next, err := Advance(d, head.RecurringInterval)
			if err != nil {
				skipped = append(skipped, fmt.Errorf("transaction %s: %w", head.ID, err))
				break
			}
			occ := head
			occ.ID = newID()
			occ.Date = d
			occ.NextRecurringDate = next
			created = append(created, occ)
		}
	}
	return created, skipped
}

// Preview lists future occurrences in (from, until] for every chain head,
// ordered by head then date.
func Preview(txs []core.Transaction, from, until core.Date) []Occurrence {
	var out []Occurrence
	for _, head := range Heads(txs) {
		dates, err := Upcoming(head.NextRecurringDate, head.RecurringInterval, from, until)
		if err != nil {
			continue
		}
		for _, d := range dates {
			out = append(out, Occurrence{Template: head, Date: d})
		}
	}
	return out
}
