package store

import (
	"context"
	"time"

	"expenso/internal/core"
	"expenso/internal/recurrence"
)

// ProcessRecurring materializes every recurring occurrence due on or before
// now and appends them in one commit. Running it again with the same now
// adds nothing, since chains already materialized are no longer heads.
func (s *Store) ProcessRecurring(ctx context.Context, now time.Time) ([]core.Transaction, error) {
	today := core.DateOf(now)

	var created []core.Transaction
	err := s.apply(ctx, OpProcessRecurring, func(next *core.Snapshot) (bool, error) {
		var skipped []error
		created, skipped = recurrence.Materialize(next.Transactions, today, s.catchUpLimit, s.newID)
		for _, err := range skipped {
			s.logger.WarnContext(ctx, "Skipping recurring transaction", "error", err)
		}
		if len(created) == 0 {
			return false, nil
		}
		next.Transactions = append(next.Transactions, created...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Recurring transaction processing complete",
		"processing_date", today.String(),
		"created", len(created))
	return created, nil
}

// Upcoming previews occurrences after now up to and including now+days.
func (s *Store) Upcoming(now time.Time, days int) []recurrence.Occurrence {
	snap := s.Snapshot()
	from := core.DateOf(now)
	until := core.Date{Time: from.AddDate(0, 0, days)}
	return recurrence.Preview(snap.Transactions, from, until)
}
