package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tqsched/tq/core/calendar"
	"github.com/tqsched/tq/core/planner"
)

// WriteBookings writes one line per task booking, grouped by day in
// chronological order, tasks within a day in booking order:
//
//	YYYY-MM-DD<TAB>hours<TAB>description
func WriteBookings(w io.Writer, p *planner.Plan) error {
	bw := bufio.NewWriter(w)
	for _, day := range p.Days {
		date := day.Date.Format(calendar.DateLayout)
		for _, tb := range day.Bookings() {
			if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", date, tb.Hours.String(), tb.Task.Description); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteDates writes one line per task in declaration order:
//
//	description<TAB>effort<TAB>first_day<TAB>last_day
func WriteDates(w io.Writer, p *planner.Plan) error {
	bw := bufio.NewWriter(w)
	for _, t := range p.Tasks {
		first, ok := t.FirstDay()
		if !ok {
			return fmt.Errorf("task %q has no bookings", t.Description)
		}
		last, _ := t.LastDay()
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n",
			t.Description, t.Effort.String(),
			first.Format(calendar.DateLayout), last.Format(calendar.DateLayout)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// PlanDocument is the serializable form of a plan. Hours are rendered as
// fixed-point decimal strings to keep them exact.
type PlanDocument struct {
	Days  []DayRecord  `json:"days"`
	Tasks []TaskRecord `json:"tasks"`
}

// DayRecord is one materialized day and its bookings.
type DayRecord struct {
	Date     string          `json:"date"`
	Capacity string          `json:"capacity"`
	Booked   string          `json:"booked"`
	Bookings []BookingRecord `json:"bookings"`
}

// BookingRecord is the hours of one task assigned to one day.
type BookingRecord struct {
	Description string `json:"description"`
	Hours       string `json:"hours"`
}

// TaskRecord is the per-task schedule summary.
type TaskRecord struct {
	Description string `json:"description"`
	Effort      string `json:"effort"`
	FirstDay    string `json:"first_day"`
	LastDay     string `json:"last_day"`
}

// Document converts a plan into its serializable form.
func Document(p *planner.Plan) (PlanDocument, error) {
	doc := PlanDocument{
		Days:  make([]DayRecord, 0, len(p.Days)),
		Tasks: make([]TaskRecord, 0, len(p.Tasks)),
	}
	for _, day := range p.Days {
		rec := DayRecord{
			Date:     day.Date.Format(calendar.DateLayout),
			Capacity: day.Capacity.String(),
			Booked:   day.Booked().String(),
			Bookings: make([]BookingRecord, 0, len(day.Bookings())),
		}
		for _, tb := range day.Bookings() {
			rec.Bookings = append(rec.Bookings, BookingRecord{
				Description: tb.Task.Description,
				Hours:       tb.Hours.String(),
			})
		}
		doc.Days = append(doc.Days, rec)
	}
	for _, t := range p.Tasks {
		first, ok := t.FirstDay()
		if !ok {
			return PlanDocument{}, fmt.Errorf("task %q has no bookings", t.Description)
		}
		last, _ := t.LastDay()
		doc.Tasks = append(doc.Tasks, TaskRecord{
			Description: t.Description,
			Effort:      t.Effort.String(),
			FirstDay:    first.Format(calendar.DateLayout),
			LastDay:     last.Format(calendar.DateLayout),
		})
	}
	return doc, nil
}

// WriteJSON writes the whole plan to w in JSON format.
func WriteJSON(w io.Writer, p *planner.Plan) error {
	doc, err := Document(p)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	return enc.Encode(doc)
}
