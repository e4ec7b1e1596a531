package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "tq",
	Short:         "Schedule effort-sized tasks onto a working calendar",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
