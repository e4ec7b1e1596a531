package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tqsched/tq/config"
	"github.com/tqsched/tq/core/calendar"
	"github.com/tqsched/tq/infra/history"
)

var (
	historySince string
	historyUntil string
)

var historyCmd = &cobra.Command{
	Use:   "history PROJECT",
	Short: "List planning runs stored for the project",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historySince, "since", "", "only runs on or after this date (YYYY-MM-DD)")
	historyCmd.Flags().StringVar(&historyUntil, "until", "", "only runs on or before this date (YYYY-MM-DD)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	if cfg.History.Driver == "" {
		return errors.New("project has no history store configured")
	}

	var q history.Query
	if historySince != "" {
		if q.Since, err = calendar.ParseDate(historySince); err != nil {
			return err
		}
	}
	if historyUntil != "" {
		until, err := calendar.ParseDate(historyUntil)
		if err != nil {
			return err
		}
		// make the bound inclusive of the whole day
		q.Until = until.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	store, err := history.Open(cfg.History.Driver, cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Runs(cmd.Context(), q)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range runs {
		if _, err := fmt.Fprintf(out, "%s\t%s\t%d days\t%d tasks\n",
			r.Time.Format(time.RFC3339), r.ID, len(r.Plan.Days), len(r.Plan.Tasks)); err != nil {
			return err
		}
	}
	return nil
}
