package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tqsched/tq/config"
	"github.com/tqsched/tq/core/planner"
	"github.com/tqsched/tq/infra/history"
	"github.com/tqsched/tq/infra/logger"
	"github.com/tqsched/tq/pkg/export"
)

type reportWriter func(w io.Writer, p *planner.Plan) error

// runReport loads the project file given as args[0], plans it and writes the
// report to args[1] or stdout. The run is appended to the history store when
// one is configured.
func runReport(cmd *cobra.Command, args []string, component string, write reportWriter) error {
	logg := logger.New(component)

	cfg, err := config.Load(args[0])
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}
	project, err := cfg.BuildProject()
	if err != nil {
		return err
	}
	project.SetLogger(logg)

	started := time.Now()
	plan, err := project.Plan()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) > 1 {
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logg.Errorf("close output: %v", cerr)
			}
		}()
		out = f
	}
	if err := write(out, plan); err != nil {
		return err
	}

	if cfg.History.Driver != "" {
		if err := recordRun(cmd.Context(), cfg, args[0], plan, started); err != nil {
			logg.Warnf("record history: %v", err)
		}
	}
	return nil
}

func recordRun(ctx context.Context, cfg *config.Config, source string, plan *planner.Plan, ts time.Time) error {
	store, err := history.Open(cfg.History.Driver, cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	doc, err := export.Document(plan)
	if err != nil {
		return err
	}
	return store.Append(ctx, history.Run{
		ID:     uuid.NewString(),
		Time:   ts,
		Source: source,
		Plan:   doc,
	})
}
