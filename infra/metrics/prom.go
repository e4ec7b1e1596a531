package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/tqsched/tq/core/metrics"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	days     prometheus.Gauge
	tasks    prometheus.Gauge
	booked   prometheus.Gauge
	duration prometheus.Histogram
}

// NewPromSink registers planning metrics on the default Prometheus
// registerer. The metrics server is started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tq_plan_runs_total",
		Help: "Total number of planning runs",
	}, []string{"status"})
	days := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tq_plan_days",
		Help: "Days materialized by the most recent plan",
	})
	tasks := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tq_plan_tasks",
		Help: "Tasks scheduled by the most recent plan",
	})
	booked := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tq_plan_booked_hours",
		Help: "Hours booked by the most recent plan",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tq_plan_duration_seconds",
		Help:    "Time spent computing a plan",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(days); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			days = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(tasks); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			tasks = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(booked); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			booked = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, days: days, tasks: tasks, booked: booked, duration: duration}, nil
}

// RecordPlan updates counters and gauges for one planning run.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	status := "ok"
	if !ev.Succeeded() {
		status = "error"
	}
	s.runs.WithLabelValues(status).Inc()
	s.duration.Observe(ev.Duration.Seconds())
	if ev.Succeeded() {
		s.days.Set(float64(ev.Days))
		s.tasks.Set(float64(ev.Tasks))
		s.booked.Set(ev.BookedHours)
	}
	return nil
}
