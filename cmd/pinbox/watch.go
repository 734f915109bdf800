package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pinbox/pinbox/internal/agent"
	"github.com/pinbox/pinbox/internal/logger"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep pulling the remote collection on an interval",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newAgent()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		level := "info"
		if flagDebug {
			level = "debug"
		}
		log := logger.New(level, true)

		w := agent.NewWatcher(a, log, watchInterval, nil)
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()

		fmt.Printf("watching every %s, ctrl-c to stop\n", watchInterval)
		<-ctx.Done()
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 15*time.Minute,
		"time between pulls")

	rootCmd.AddCommand(watchCmd)
}
