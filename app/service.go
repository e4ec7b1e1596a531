package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/tqsched/tq/config"
	coremetrics "github.com/tqsched/tq/core/metrics"
	"github.com/tqsched/tq/core/planner"
	"github.com/tqsched/tq/infra/history"
	"github.com/tqsched/tq/infra/logger"
	"github.com/tqsched/tq/infra/metrics"
	"github.com/tqsched/tq/pkg/export"
)

// debounceDelay coalesces the bursts of write events editors produce when
// saving a file.
const debounceDelay = 250 * time.Millisecond

// Service replans a project whenever its definition file changes and keeps
// the exported report, history store and metrics up to date.
type Service struct {
	projectPath string
	outputPath  string
	format      string

	log   logger.Logger
	sink  coremetrics.Sink
	store history.Store

	promEnabled bool
	promAddr    string
}

// New creates a Service for the given project file. outputPath may be empty
// to write reports to stdout; format is one of bookings, dates or json.
func New(projectPath, outputPath, format string) (*Service, error) {
	switch format {
	case "bookings", "dates", "json":
	default:
		return nil, fmt.Errorf("unknown report format: %q", format)
	}

	cfg, err := config.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	logg := logger.New("watch")
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}

	svc := &Service{
		projectPath: projectPath,
		outputPath:  outputPath,
		format:      format,
		log:         logg,
		sink:        coremetrics.NopSink{},
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
	}
	if svc.promEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		svc.sink = sink
	}
	if cfg.History.Driver != "" {
		store, err := history.Open(cfg.History.Driver, cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("history store: %w", err)
		}
		svc.store = store
	}
	return svc, nil
}

// Run plans once, then watches the project file and replans on change. It
// blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	if err := s.Replan(ctx); err != nil {
		s.log.Errorf("initial plan: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	// Watch the directory: editors often replace the file instead of
	// writing it in place.
	if err := watcher.Add(filepath.Dir(s.projectPath)); err != nil {
		return fmt.Errorf("watch %s: %w", s.projectPath, err)
	}

	target := filepath.Clean(s.projectPath)
	timer := time.NewTimer(debounceDelay)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounceDelay)
		case <-timer.C:
			s.log.Infof("project file changed, replanning")
			if err := s.Replan(ctx); err != nil {
				s.log.Errorf("replan: %v", err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warnf("watcher: %v", werr)
		}
	}
}

// Replan loads the project file, computes a plan and publishes it to the
// configured outputs. Planning failures are recorded in metrics and
// returned; the previous report file is left untouched.
func (s *Service) Replan(ctx context.Context) error {
	started := time.Now()
	plan, err := s.plan()
	booked, _ := float64Hours(plan)
	ev := coremetrics.PlanEvent{
		Time:        started,
		Source:      s.projectPath,
		Duration:    time.Since(started),
		BookedHours: booked,
		Err:         err,
	}
	if plan != nil {
		ev.Days = len(plan.Days)
		ev.Tasks = len(plan.Tasks)
	}
	if serr := s.sink.RecordPlan(ev); serr != nil {
		s.log.Warnf("record metrics: %v", serr)
	}
	if err != nil {
		return err
	}

	if err := s.writeReport(plan); err != nil {
		return err
	}
	if s.store != nil {
		if err := s.appendHistory(ctx, plan, started); err != nil {
			s.log.Warnf("append history: %v", err)
		}
	}
	s.log.Infof("planned %d tasks over %d days", len(plan.Tasks), len(plan.Days))
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

func (s *Service) plan() (*planner.Plan, error) {
	cfg, err := config.Load(s.projectPath)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	project, err := cfg.BuildProject()
	if err != nil {
		return nil, err
	}
	project.SetLogger(s.log)
	return project.Plan()
}

func (s *Service) writeReport(plan *planner.Plan) error {
	var out io.Writer = os.Stdout
	if s.outputPath != "" {
		f, err := os.Create(s.outputPath)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	switch s.format {
	case "bookings":
		return export.WriteBookings(out, plan)
	case "dates":
		return export.WriteDates(out, plan)
	default:
		return export.WriteJSON(out, plan)
	}
}

func (s *Service) appendHistory(ctx context.Context, plan *planner.Plan, ts time.Time) error {
	doc, err := export.Document(plan)
	if err != nil {
		return err
	}
	return s.store.Append(ctx, history.Run{
		ID:     uuid.NewString(),
		Time:   ts,
		Source: s.projectPath,
		Plan:   doc,
	})
}

func float64Hours(plan *planner.Plan) (float64, bool) {
	if plan == nil {
		return 0, false
	}
	f, _ := plan.TotalBooked().Float64()
	return f, true
}
