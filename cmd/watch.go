package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tqsched/tq/app"
	"github.com/tqsched/tq/infra/logger"
)

var (
	watchOutput string
	watchFormat string
)

var watchCmd = &cobra.Command{
	Use:   "watch PROJECT",
	Short: "Replan whenever the project file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "report file to keep up to date (default stdout)")
	watchCmd.Flags().StringVar(&watchFormat, "format", "bookings", "report format: bookings, dates or json")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := app.New(args[0], watchOutput, watchFormat)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil {
			logger.New("watch").Errorf("service close: %v", cerr)
		}
	}()
	return svc.Run(ctx)
}
