package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Execute запускает CLI; ненулевой код выхода при ошибке.
// SIGINT/SIGTERM отменяют контекст команды, и незавершённые запросы к Maps API прерываются.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(defaultBuilderFactory).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(newBuilder builderFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "commute",
		Short:        "Commute reports from the command line",
		SilenceUsage: true,
	}

	cmd.AddCommand(reportCmd(newBuilder))
	return cmd
}
