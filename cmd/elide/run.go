package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"elide/internal/diagfmt"
	"elide/internal/driver"
	"elide/internal/ui"
	"elide/internal/version"
)

// batchFlags are shared by run, check and watch.
type batchFlags struct {
	noVerify bool
	format   string
	outDir   string
	suffix   string
	jobs     int
}

func (f *batchFlags) register(cmd *cobra.Command, writes bool) {
	cmd.Flags().BoolVar(&f.noVerify, "no-verify", false, "skip the lifetime invariant check after the pass")
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "max parallel workers (0 = from elide.toml, then GOMAXPROCS)")
	cmd.Flags().StringVar(&f.format, "format", "short", "diagnostics format (short|json)")
	if writes {
		cmd.Flags().StringVar(&f.outDir, "out-dir", "", "write outputs into this directory instead of next to the inputs")
		cmd.Flags().StringVar(&f.suffix, "suffix", "", "output file suffix (default from elide.toml)")
	}
}

func (f *batchFlags) options(cmd *cobra.Command, s *settings) driver.Options {
	opts := driver.Options{
		Infer:          s.infer,
		Verify:         s.cfg.Elide.Verify,
		Suffix:         s.cfg.Output.Suffix,
		OutDir:         s.cfg.Output.Dir,
		MaxDiagnostics: s.cfg.Diagnostics.Max,
		Jobs:           s.cfg.Elide.Jobs,
		Producer:       version.Producer(),
		CrashLog:       cmd.ErrOrStderr(),
	}
	if f.noVerify {
		opts.Verify = false
	}
	if f.outDir != "" {
		opts.OutDir = f.outDir
	}
	if f.suffix != "" {
		opts.Suffix = f.suffix
	}
	if f.jobs > 0 {
		opts.Jobs = f.jobs
	}
	return opts
}

func newRunCmd() *cobra.Command {
	var (
		flags   batchFlags
		dryRun  bool
		uiValue string
	)
	cmd := &cobra.Command{
		Use:   "run [flags] <dump.hirpack|directory>...",
		Short: "Elide lifetimes in crate dumps and write the results",
		Long:  `Run the elision pass over every given dump (directories are searched for *.hirpack) and write <name>.elided.hirpack next to each input`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd)
			opts := flags.options(cmd, s)
			opts.DryRun = dryRun
			mode, err := ui.ParseMode(uiValue)
			if err != nil {
				return err
			}
			tui := mode.Enabled(isTerminal(os.Stdout)) && !s.quiet && flags.format != "json"
			return runBatch(cmd, s, args, opts, flags.format, tui)
		},
	}
	flags.register(cmd, true)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "elide and verify without writing outputs")
	cmd.Flags().StringVar(&uiValue, "ui", "auto", "progress UI (auto|on|off)")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var flags batchFlags
	cmd := &cobra.Command{
		Use:   "check [flags] <dump.hirpack|directory>...",
		Short: "Report elision errors without writing anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd)
			opts := flags.options(cmd, s)
			opts.DryRun = true
			return runBatch(cmd, s, args, opts, flags.format, false)
		},
	}
	flags.register(cmd, false)
	return cmd
}

// runBatch expands inputs, runs the driver and prints diagnostics and the
// summary. Any failed file makes the command fail.
func runBatch(cmd *cobra.Command, s *settings, args []string, opts driver.Options, format string, tui bool) error {
	if format != "short" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be short or json)", format)
	}
	inputs, err := driver.ListInputs(args, opts.Suffix)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no %s files found", driver.Ext)
	}

	start := time.Now()
	var results []driver.Result
	if tui {
		results, err = runWithUI(cmd.Context(), "eliding", inputs, opts)
	} else {
		results, err = driver.Run(cmd.Context(), inputs, opts)
	}
	if err != nil {
		return err
	}
	return report(cmd.OutOrStdout(), s, results, time.Since(start), format)
}

func report(out io.Writer, s *settings, results []driver.Result, elapsed time.Duration, format string) error {
	if format == "json" {
		files := make([]diagfmt.FileJSON, len(results))
		for i := range results {
			r := &results[i]
			r.Bag.Sort()
			files[i] = diagfmt.File(r.Path, r.Crate, r.Output, r.Bag, r.Files, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     s.cfg.Diagnostics.Notes,
			})
		}
		if err := diagfmt.JSON(out, files); err != nil {
			return err
		}
	} else {
		driver.WriteDiagnostics(out, results, s.cfg.Diagnostics.Notes)
		if !s.quiet {
			driver.WriteSummary(out, results, elapsed)
		}
		if s.timings {
			driver.WriteTimings(out, results)
		}
	}
	if _, failed := driver.Totals(results); failed > 0 {
		return silentError{msg: fmt.Sprintf("%d of %d files failed", failed, len(results))}
	}
	return nil
}
