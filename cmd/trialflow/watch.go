package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"trialflow/pkg/config"
	"trialflow/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch <file>",
	Short:   "Re-check a diagram file on every save",
	GroupID: "inspection",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		quiet := time.Duration(cfg.WatchDebounceMs) * time.Millisecond

		recheck := func() {
			fmt.Printf("--- %s\n", time.Now().Format("15:04:05"))
			printCheckResults([]checkResult{checkFile(args[0])})
		}
		recheck()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = watcher.Watch(ctx, args[0], quiet, recheck)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
