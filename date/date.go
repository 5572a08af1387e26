// Package date provides day-granular dates, date ranges and chronological
// series used to align positions, prices and cash flows on one daily calendar.
package date

import (
	"encoding/json"
	"fmt"
	"iter"
	"time"
)

// Format is the canonical string representation of a date (ISO-8601 day).
const Format = "2006-01-02"

// readFormat is more permissive on read and accepts single digit month/day.
const readFormat = "2006-1-2"

// Date represents a calendar day, with no time-of-day and no timezone.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// FromTime truncates t to its calendar day.
func FromTime(t time.Time) Date { return New(t.Date()) }

// Today returns the current date.
func Today() Date { return FromTime(time.Now()) }

// time returns the canonical time.Time for that day (midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Add returns a new Date with the given number of days added.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after x.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// String formats the date in its canonical format.
func (d Date) String() string { return d.time().Format(Format) }

// Parse parses a Date from a string. It is lenient and accepts "2025-7-1" as
// well as "2025-07-01".
func Parse(str string) (Date, error) {
	t, err := time.Parse(readFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readFormat, err)
	}
	return FromTime(t), nil
}

// MustParse is like Parse but panics on error. For tests and constants.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// MarshalJSON encodes the date as a canonical JSON string.
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON decodes the date from a JSON string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := Parse(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)

// Min returns the earliest of the given dates. Zero dates are ignored, so
// Min can fold over first-activity dates where some are unknown.
func Min(dates ...Date) Date {
	var m Date
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if m.IsZero() || d.Before(m) {
			m = d
		}
	}
	return m
}

// Range represents an inclusive range of days.
type Range struct{ From, To Date }

// NewRange returns the inclusive range [from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Len returns the number of days in the range, 0 if the range is inverted.
func (r Range) Len() int {
	if r.From.After(r.To) {
		return 0
	}
	return int(r.To.time().Sub(r.From.time())/(24*time.Hour)) + 1
}

// Contains reports whether day is within the range.
func (r Range) Contains(day Date) bool { return !day.Before(r.From) && !day.After(r.To) }

// Days iterates over every day in the range in chronological order.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for on := r.From; !on.After(r.To); on = on.Add(1) {
			if !yield(on) {
				return
			}
		}
	}
}
