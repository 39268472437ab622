package fitstats

import (
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

// Day is a calendar date with no time component. The zero value is not a
// valid day. Day is comparable and marshals as an ISO date, so it can be
// used as a JSON map key.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day t falls on in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Day{Year: y, Month: m, Day: d}
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return DayOf(t, time.UTC), nil
}

func (d Day) IsZero() bool {
	return d == Day{}
}

// Start returns midnight of d in loc.
func (d Day) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Time returns midnight UTC, which is how postgres DATE values travel
// through pgx.
func (d Day) Time() time.Time {
	return d.Start(time.UTC)
}

func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n), time.UTC)
}

func (d Day) Before(other Day) bool {
	return d.Time().Before(other.Time())
}

func (d Day) After(other Day) bool {
	return d.Time().After(other.Time())
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Window is an inclusive range of calendar days.
type Window struct {
	From Day
	To   Day
}

// TrailingWindow returns the window of the last days days ending on today.
func TrailingWindow(today Day, days int) Window {
	if days < 1 {
		days = 1
	}
	return Window{
		From: today.AddDays(-(days - 1)),
		To:   today,
	}
}

func (w Window) Contains(d Day) bool {
	return !d.Before(w.From) && !d.After(w.To)
}

// Days lists every day of the window in order.
func (w Window) Days() []Day {
	var days []Day
	for d := w.From; !d.After(w.To); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

func (w Window) Len() int {
	if w.To.Before(w.From) {
		return 0
	}
	return int(w.To.Time().Sub(w.From.Time()).Hours()/24) + 1
}
