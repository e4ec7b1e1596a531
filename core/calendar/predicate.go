package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the textual form used for calendar dates throughout tq.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date selector cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a YYYY-MM-DD string into a UTC midnight timestamp.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// DayPredicate reports whether a calendar rule applies to a date.
type DayPredicate interface {
	Matches(date time.Time) bool
}

// EveryDay matches all dates. It is the usual fallback rule for daily
// working hours.
type EveryDay struct{}

func (EveryDay) Matches(time.Time) bool { return true }

// SingleDay matches exactly one calendar date.
type SingleDay struct {
	date time.Time
}

// NewSingleDay parses a YYYY-MM-DD string into a SingleDay predicate.
func NewSingleDay(s string) (SingleDay, error) {
	d, err := ParseDate(s)
	if err != nil {
		return SingleDay{}, err
	}
	return SingleDay{date: d}, nil
}

func (p SingleDay) Matches(date time.Time) bool {
	return sameDay(p.date, date)
}

// DayInterval matches dates within [first, last], both ends inclusive.
type DayInterval struct {
	first time.Time
	last  time.Time
}

// NewDayInterval parses two YYYY-MM-DD strings into a DayInterval predicate.
func NewDayInterval(first, last string) (DayInterval, error) {
	f, err := ParseDate(first)
	if err != nil {
		return DayInterval{}, err
	}
	l, err := ParseDate(last)
	if err != nil {
		return DayInterval{}, err
	}
	return DayInterval{first: f, last: l}, nil
}

func (p DayInterval) Matches(date time.Time) bool {
	return !date.Before(p.first) && !date.After(p.last)
}

// DayOfWeek matches every occurrence of one weekday. The name may be the
// full or the three-letter English form, case-insensitive.
type DayOfWeek struct {
	name string
}

func NewDayOfWeek(name string) DayOfWeek {
	return DayOfWeek{name: strings.ToLower(name)}
}

func (p DayOfWeek) Matches(date time.Time) bool {
	full := strings.ToLower(date.Weekday().String())
	return p.name == full || p.name == full[:3]
}

// ParsePredicate resolves an "on" selector. An exact date is tried first,
// then a weekday name.
func ParsePredicate(s string) (DayPredicate, error) {
	if p, err := NewSingleDay(s); err == nil {
		return p, nil
	}
	if isWeekdayName(s) {
		return NewDayOfWeek(s), nil
	}
	return nil, fmt.Errorf("%w: %q is neither a YYYY-MM-DD date nor a weekday name", ErrInvalidDate, s)
}

func isWeekdayName(s string) bool {
	name := strings.ToLower(s)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := strings.ToLower(wd.String())
		if name == full || name == full[:3] {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
