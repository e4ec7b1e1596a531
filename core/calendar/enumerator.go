package calendar

import (
	"errors"
	"fmt"
	"time"
)

// maxConsecutiveSkips bounds the non-working-day skip loop. Four years of
// consecutive skips means the calendar offers no workable date at all.
const maxConsecutiveSkips = 4 * 366

// ErrNonTerminatingCalendar is returned when the enumerator cannot find a
// workable date within the skip bound.
var ErrNonTerminatingCalendar = errors.New("calendar has no workable date")

// Enumerator produces workable calendar dates one at a time, skipping dates
// matched by any registered non-working-day predicate. The sequence is
// monotonically increasing and cannot be rewound: each call to Next consumes
// one date.
type Enumerator struct {
	start      time.Time
	current    time.Time
	started    bool
	nonWorking []DayPredicate
}

// NewEnumerator creates an enumerator beginning at start.
func NewEnumerator(start time.Time) *Enumerator {
	return &Enumerator{start: start}
}

// AddNonWorkingDay registers a predicate whose matching dates are skipped.
func (e *Enumerator) AddNonWorkingDay(p DayPredicate) {
	e.nonWorking = append(e.nonWorking, p)
}

func (e *Enumerator) nonWorkingDay(date time.Time) bool {
	for _, p := range e.nonWorking {
		if p.Matches(date) {
			return true
		}
	}
	return false
}

// Next returns the next workable date and advances the cursor past it.
func (e *Enumerator) Next() (time.Time, error) {
	if !e.started {
		e.current = e.start
		e.started = true
	}
	skips := 0
	for e.nonWorkingDay(e.current) {
		e.current = e.current.AddDate(0, 0, 1)
		skips++
		if skips > maxConsecutiveSkips {
			return time.Time{}, fmt.Errorf("%w: scanned %d consecutive days from %s",
				ErrNonTerminatingCalendar, skips, e.start.Format(DateLayout))
		}
	}
	day := e.current
	e.current = e.current.AddDate(0, 0, 1)
	return day, nil
}
