package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tqsched/tq/pkg/export"
)

var datesCmd = &cobra.Command{
	Use:   "dates PROJECT [OUTPUT]",
	Short: "Plan the project and print each task's first and last day",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, args, "dates", export.WriteDates)
	},
}

func init() {
	rootCmd.AddCommand(datesCmd)
}
