package calendar

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkingHours pairs a day predicate with the daily capacity it grants.
type WorkingHours struct {
	Predicate DayPredicate
	Hours     decimal.Decimal
}

// Registry resolves a date to its daily capacity. Definitions are scanned in
// the order they were added and the first match wins, so specific rules must
// be registered before general fallbacks.
type Registry struct {
	defs []WorkingHours
}

func NewRegistry() *Registry { return &Registry{} }

// Add appends a definition. No overlap checking is performed.
func (r *Registry) Add(p DayPredicate, hours decimal.Decimal) {
	r.defs = append(r.defs, WorkingHours{Predicate: p, Hours: hours})
}

// Resolve returns the capacity of the first matching definition. The second
// return value is false when no definition matches the date.
func (r *Registry) Resolve(date time.Time) (decimal.Decimal, bool) {
	for _, d := range r.defs {
		if d.Predicate.Matches(date) {
			return d.Hours, true
		}
	}
	return decimal.Decimal{}, false
}
