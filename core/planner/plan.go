package planner

import "github.com/shopspring/decimal"

// Plan is the read-only result of one planning run: the materialized days in
// chronological order and the task list they were built from.
type Plan struct {
	Tasks []*Task
	Days  []*DayBooking
}

// TotalBooked returns the hours committed across all days.
func (p *Plan) TotalBooked() decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.Days {
		total = total.Add(d.Booked())
	}
	return total
}
