package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tqsched/tq/pkg/export"
)

var planCmd = &cobra.Command{
	Use:   "plan PROJECT [OUTPUT]",
	Short: "Plan the project and print the full plan as JSON",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, args, "plan", export.WriteJSON)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
