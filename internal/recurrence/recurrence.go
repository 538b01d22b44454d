// Package recurrence computes occurrence dates of recurring transactions.
//
// Each interval (weekly, monthly, yearly) has its own strategy that
// encapsulates how a date moves forward by one period.
package recurrence

import (
	"fmt"
	"time"

	"expenso/internal/core"
)

// Advancer is the strategy interface for moving a date forward by one period.
type Advancer interface {
	// Advance returns the next occurrence after d.
	Advance(d core.Date) core.Date
}

// WeeklyAdvancer adds seven days.
type WeeklyAdvancer struct{}

func (WeeklyAdvancer) Advance(d core.Date) core.Date {
	c := d.Civil()
	return core.Date{Time: c.AddDate(0, 0, 7)}
}

// MonthlyAdvancer adds one calendar month, clamping the day to the length
// of the target month (Jan 31 -> Feb 28/29).
type MonthlyAdvancer struct{}

func (MonthlyAdvancer) Advance(d core.Date) core.Date {
	return addMonthsClamped(d.Civil(), 1)
}

// YearlyAdvancer adds one calendar year; Feb 29 becomes Feb 28 in
// non-leap years.
type YearlyAdvancer struct{}

func (YearlyAdvancer) Advance(d core.Date) core.Date {
	return addMonthsClamped(d.Civil(), 12)
}

func addMonthsClamped(d core.Date, months int) core.Date {
	year, month, day := d.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return core.NewDate(first.Year(), int(first.Month()), day)
}

// advancers maps intervals to their strategies.
var advancers = map[core.Interval]Advancer{
	core.Weekly:  WeeklyAdvancer{},
	core.Monthly: MonthlyAdvancer{},
	core.Yearly:  YearlyAdvancer{},
}

// GetAdvancer returns the strategy for an interval.
// Returns an error if the interval is not supported.
func GetAdvancer(interval core.Interval) (Advancer, error) {
	a, ok := advancers[interval]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidInterval, interval)
	}
	return a, nil
}

// Advance moves d forward by one interval.
func Advance(d core.Date, interval core.Interval) (core.Date, error) {
	a, err := GetAdvancer(interval)
	if err != nil {
		return core.Date{}, err
	}
	return a.Advance(d), nil
}

// Project lists the chain of occurrence dates starting at next that fall
// on or before now. At most limit dates are returned; limit <= 0 means
// no bound.
func Project(next core.Date, interval core.Interval, now core.Date, limit int) ([]core.Date, error) {
	a, err := GetAdvancer(interval)
	if err != nil {
		return nil, err
	}
	if next.IsZero() {
		return nil, nil
	}

	var out []core.Date
	for d := next.Civil(); d.OnOrBefore(now); d = a.Advance(d) {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, d)
	}
	return out, nil
}

// Upcoming lists occurrence dates in (from, until], starting at next.
// Used for previews of future recurring transactions.
func Upcoming(next core.Date, interval core.Interval, from, until core.Date) ([]core.Date, error) {
	all, err := Project(next, interval, until, 0)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, d := range all {
		if from.Compare(d) < 0 {
			out = append(out, d)
		}
	}
	return out, nil
}
