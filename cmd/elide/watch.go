package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"elide/internal/driver"
)

func newWatchCmd() *cobra.Command {
	var (
		flags    batchFlags
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch [flags] <dump.hirpack|directory>...",
		Short: "Re-elide dumps whenever they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd)
			opts := flags.options(cmd, s)
			out := cmd.OutOrStdout()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// one pass over what is already there
			if err := runBatch(cmd, s, args, opts, flags.format, false); err != nil && !isSilent(err) {
				return err
			}
			return driver.Watch(ctx, args, driver.WatchOptions{
				Options:  opts,
				Debounce: debounce,
				OnReady: func() {
					if !s.quiet {
						fmt.Fprintf(out, "watching %d path(s), Ctrl+C to stop\n", len(args))
					}
				},
				OnBatch: func(results []driver.Result) {
					// failures are reported and watching goes on
					_ = report(out, s, results, totalElapsed(results), flags.format)
				},
				OnError: func(err error) {
					fmt.Fprintf(cmd.ErrOrStderr(), "watch: %v\n", err)
				},
			})
		},
	}
	flags.register(cmd, true)
	cmd.Flags().DurationVar(&debounce, "debounce", driver.DefaultDebounce, "wait this long after the last change before re-running")
	return cmd
}

func totalElapsed(results []driver.Result) time.Duration {
	var d time.Duration
	for i := range results {
		d = max(d, results[i].Elapsed)
	}
	return d
}

