package planner

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayBooking tracks hours committed against one calendar day's capacity.
type DayBooking struct {
	Date     time.Time
	Capacity decimal.Decimal

	booked   decimal.Decimal
	bookings []*TaskBooking
}

func NewDayBooking(date time.Time, capacity decimal.Decimal) *DayBooking {
	return &DayBooking{Date: date, Capacity: capacity}
}

// Available returns the unclaimed capacity.
func (d *DayBooking) Available() decimal.Decimal {
	return d.Capacity.Sub(d.booked)
}

// Booked returns the hours already committed.
func (d *DayBooking) Booked() decimal.Decimal { return d.booked }

// Full reports whether the day has no capacity left. A zero-capacity day is
// full from the start.
func (d *DayBooking) Full() bool { return d.Available().Sign() <= 0 }

// Bookings returns the day's bookings in booking order.
func (d *DayBooking) Bookings() []*TaskBooking { return d.bookings }

// Book assigns as much of remaining as the day can absorb and returns the
// effort left over. A zero-hour booking is still recorded, so every task
// ends up with at least one booking and a well-defined first and last day.
func (d *DayBooking) Book(t *Task, remaining decimal.Decimal) decimal.Decimal {
	hours := decimal.Min(d.Available(), remaining)
	if hours.Sign() < 0 {
		hours = decimal.Zero
	}
	tb := &TaskBooking{Task: t, Day: d, Hours: hours}
	d.bookings = append(d.bookings, tb)
	t.bookings = append(t.bookings, tb)
	d.booked = d.booked.Add(hours)
	return remaining.Sub(hours)
}
