package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tqsched/tq/core/calendar"
	"github.com/tqsched/tq/core/logger"
)

// maxPlanDays bounds the number of days a single run may materialize. It
// guards against calendars whose every workable day has zero capacity while
// unbooked effort remains.
const maxPlanDays = 100 * 366

var (
	// ErrUndefinedCapacity is returned when no working-hours rule matches a
	// date the planner needs.
	ErrUndefinedCapacity = errors.New("no working hours rule matches date")
	// ErrStartNotSet is returned when planning begins without a start date.
	ErrStartNotSet = errors.New("start date not set")
)

// Project collects tasks and calendar rules and turns them into a plan.
// A project is built once and planned any number of times; runs are
// independent and yield identical plans for unchanged input.
type Project struct {
	tasks      []*Task
	start      time.Time
	startSet   bool
	nonWorking []calendar.DayPredicate
	registry   *calendar.Registry
	log        logger.Logger
}

func NewProject() *Project {
	return &Project{registry: calendar.NewRegistry(), log: nopLogger{}}
}

// SetLogger installs a logger for planning diagnostics.
func (p *Project) SetLogger(log logger.Logger) {
	if log != nil {
		p.log = log
	}
}

// AddTask appends a task. Tasks are scheduled strictly in the order added.
func (p *Project) AddTask(description string, effort decimal.Decimal) *Task {
	t := NewTask(description, effort)
	p.tasks = append(p.tasks, t)
	return t
}

// Tasks returns the tasks in declaration order.
func (p *Project) Tasks() []*Task { return p.tasks }

// SetStart sets the first candidate date for planning.
func (p *Project) SetStart(date time.Time) {
	p.start = date
	p.startSet = true
}

// AddWorkingHours registers a capacity rule. Rules resolve first-match-wins
// in the order added.
func (p *Project) AddWorkingHours(pred calendar.DayPredicate, hours decimal.Decimal) {
	p.registry.Add(pred, hours)
}

// AddNonWorkingDay registers a predicate whose matching dates are skipped.
func (p *Project) AddNonWorkingDay(pred calendar.DayPredicate) {
	p.nonWorking = append(p.nonWorking, pred)
}

// Plan allocates every task's effort onto workable days, greedily and in
// declaration order, and returns the resulting day bookings. The enumerator
// and all task booking lists are rebuilt per run, so planning twice on an
// unchanged project yields structurally identical plans.
func (p *Project) Plan() (*Plan, error) {
	if !p.startSet {
		return nil, ErrStartNotSet
	}
	for _, t := range p.tasks {
		t.reset()
	}
	enum := calendar.NewEnumerator(p.start)
	for _, pred := range p.nonWorking {
		enum.AddNonWorkingDay(pred)
	}

	nextDay := func() (*DayBooking, error) {
		date, err := enum.Next()
		if err != nil {
			return nil, err
		}
		hours, ok := p.registry.Resolve(date)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUndefinedCapacity, date.Format(calendar.DateLayout))
		}
		return NewDayBooking(date, hours), nil
	}

	current, err := nextDay()
	if err != nil {
		return nil, err
	}
	days := []*DayBooking{current}

	for _, t := range p.tasks {
		remaining := t.Effort
		// The body runs at least once so zero-effort tasks are recorded on
		// whichever day is current.
		for {
			if current.Full() {
				if len(days) >= maxPlanDays {
					return nil, fmt.Errorf("%w: %d days materialized with effort still unbooked",
						calendar.ErrNonTerminatingCalendar, len(days))
				}
				current, err = nextDay()
				if err != nil {
					return nil, err
				}
				days = append(days, current)
			}
			remaining = current.Book(t, remaining)
			if remaining.Sign() <= 0 {
				break
			}
		}
		p.log.Debugf("task %q booked across %d bookings", t.Description, len(t.bookings))
	}

	p.log.Infof("planned %d tasks over %d days", len(p.tasks), len(days))
	return &Plan{Tasks: p.tasks, Days: days}, nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
