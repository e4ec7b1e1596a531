package planner

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task is a unit of work with a fixed effort in hours. Bookings accumulate
// on the task as the planner assigns its effort to days; for any completed
// plan the booked hours sum to the effort exactly.
type Task struct {
	Description string
	Effort      decimal.Decimal

	bookings []*TaskBooking
}

// NewTask creates a task. Effort must be non-negative; the planner treats a
// zero-effort task as a milestone that still receives one zero-hour booking.
func NewTask(description string, effort decimal.Decimal) *Task {
	return &Task{Description: description, Effort: effort}
}

// Bookings returns the task's bookings in the order they were created.
func (t *Task) Bookings() []*TaskBooking { return t.bookings }

// FirstDay returns the date of the task's earliest booking. The second
// return value is false when the task has not been planned yet.
func (t *Task) FirstDay() (time.Time, bool) {
	if len(t.bookings) == 0 {
		return time.Time{}, false
	}
	return t.bookings[0].Day.Date, true
}

// LastDay returns the date of the task's latest booking.
func (t *Task) LastDay() (time.Time, bool) {
	if len(t.bookings) == 0 {
		return time.Time{}, false
	}
	return t.bookings[len(t.bookings)-1].Day.Date, true
}

// reset drops accumulated bookings so a project can be planned again.
func (t *Task) reset() { t.bookings = nil }

// TaskBooking assigns hours of one task to one day. It is created by
// DayBooking.Book and immutable afterwards.
type TaskBooking struct {
	Task  *Task
	Day   *DayBooking
	Hours decimal.Decimal
}
