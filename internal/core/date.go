package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar date form used on the wire.
	DateLayout = "2006-01-02"

	// stampLayout matches JavaScript's Date.toISOString output.
	stampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Date is a calendar date. Dates read from a full ISO-8601 timestamp
// remember it and are written back as timestamps.
type Date struct {
	time.Time
	stamp bool
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate accepts yyyy-MM-dd or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t.UTC(), stamp: true}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Civil drops any time of day, keeping only the calendar date.
func (d Date) Civil() Date {
	if d.IsZero() {
		return Date{}
	}
	return NewDate(d.Year(), int(d.Month()), d.Day())
}

// Compare orders two dates by calendar day: -1, 0 or +1.
func (d Date) Compare(o Date) int {
	return d.Civil().Time.Compare(o.Civil().Time)
}

func (d Date) OnOrBefore(o Date) bool { return d.Compare(o) <= 0 }

func (d Date) SameDay(o Date) bool { return d.Compare(o) == 0 }

// IsStamp reports whether the date was read from a full timestamp.
func (d Date) IsStamp() bool { return d.stamp }

// WithStamp returns a copy carrying the same wire form as o.
func (d Date) WithStamp(o Date) Date {
	d.stamp = o.stamp
	return d
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.stamp {
		return json.Marshal(d.UTC().Format(stampLayout))
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
