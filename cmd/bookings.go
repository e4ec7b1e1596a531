package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tqsched/tq/pkg/export"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings PROJECT [OUTPUT]",
	Short: "Plan the project and print the hours booked per task and day",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, args, "bookings", export.WriteBookings)
	},
}

func init() {
	rootCmd.AddCommand(bookingsCmd)
}
