package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"elide/internal/prof"
	"elide/internal/version"
)

// cli owns the command tree and whatever must be torn down after it ran,
// even when the command failed.
type cli struct {
	root     *cobra.Command
	cleanups []func()
}

// newCLI builds the command tree. Tests build a fresh tree per run so flag
// state never leaks between executions.
func newCLI() *cli {
	c := &cli{}
	c.root = &cobra.Command{
		Use:           "elide",
		Short:         "Lifetime elision pass over HIR crate dumps",
		Long:          `elide fills in every elided lifetime of a lowered HIR crate dump and writes the result back as a new dump`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyColor(cmd); err != nil {
				return err
			}
			if err := c.startProfiling(cmd); err != nil {
				return err
			}
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(withSettings(cmd.Context(), s))
			cleanup, err := setupTracing(cmd, s)
			if err != nil {
				return err
			}
			c.cleanups = append(c.cleanups, cleanup)
			return nil
		},
	}

	c.root.AddCommand(newRunCmd())
	c.root.AddCommand(newCheckCmd())
	c.root.AddCommand(newDumpCmd())
	c.root.AddCommand(newWatchCmd())
	c.root.AddCommand(newVersionCmd())

	pf := c.root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show per-phase timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = from elide.toml)")
	pf.String("config", "", "path to elide.toml (default: search upwards from the working directory)")
	pf.String("infer", "", "handling of '_ lifetimes (elide|keep)")
	pf.String("trace", "", "trace output file (\"-\" for stderr)")
	pf.String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval")
	pf.String("cpuprofile", "", "write a CPU profile to this file")
	pf.String("memprofile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
	return c
}

// execute runs the command and then every registered cleanup, newest first.
func (c *cli) execute() error {
	err := c.root.Execute()
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		c.cleanups[i]()
	}
	c.cleanups = nil
	return err
}

func (c *cli) startProfiling(cmd *cobra.Command) error {
	var opts prof.Options
	var err error
	flags := cmd.Flags()
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return err
	}
	if opts.Mem, err = flags.GetString("memprofile"); err != nil {
		return err
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return err
	}
	if opts == (prof.Options{}) {
		return nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	c.cleanups = append(c.cleanups, func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	})
	return nil
}

func main() {
	c := newCLI()
	if err := c.execute(); err != nil {
		if !isSilent(err) {
			c.root.PrintErrln(color.RedString("error:"), err)
		}
		os.Exit(1)
	}
}

func applyColor(cmd *cobra.Command) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "auto", "":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
