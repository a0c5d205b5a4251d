// Package calendar turns a clock reading into the date keys used to resolve
// results: today, tomorrow and the current month, in a fixed location.
package calendar

import "time"

const (
	DayLayout   = time.DateOnly
	MonthLayout = "2006-01"
)

type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant. Used in tests.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

type Calendar struct {
	clock Clock
	loc   *time.Location
}

// New returns a Calendar reading clock in loc. A nil loc means UTC.
func New(clock Clock, loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{clock: clock, loc: loc}
}

func (c *Calendar) Now() time.Time { return c.clock.Now().In(c.loc) }

func (c *Calendar) Today() string { return c.Now().Format(DayLayout) }

func (c *Calendar) Tomorrow() string { return c.Now().AddDate(0, 0, 1).Format(DayLayout) }

func (c *Calendar) Month() string { return c.Now().Format(MonthLayout) }
