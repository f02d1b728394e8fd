package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"elide/internal/diag"
	"elide/internal/elision"
	"elide/internal/hir"
	"elide/internal/hirfile"
	"elide/internal/source"
)

func newDumpCmd() *cobra.Command {
	var (
		elide  bool
		raw    bool
		ids    bool
		header bool
	)
	cmd := &cobra.Command{
		Use:   "dump [flags] <dump.hirpack>",
		Short: "Print a crate dump as surface syntax",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd)
			path := args[0]
			hdr, crate, err := hirfile.ReadFile(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if header {
				fmt.Fprintf(out, "// %s schema=%s producer=%q elided=%t\n", hdr.Magic, hdr.Schema, hdr.Producer, hdr.Elided)
			}
			if elide {
				bag := diag.NewBag(s.cfg.Diagnostics.Max)
				err := elision.Run(cmd.Context(), crate, elision.Options{
					Reporter: diag.BagReporter{Bag: bag},
					Infer:    s.infer,
				})
				if err != nil {
					files := source.NewFileSet()
					for _, f := range crate.SourceFiles {
						files.AddVirtual(f)
					}
					fmt.Fprintln(out, diag.FormatShortDiagnostics(bag.Items(), files, s.cfg.Diagnostics.Notes))
					return silentError{msg: err.Error()}
				}
			}
			return hir.Dump(out, crate, hir.DumpOptions{RawLifetimes: raw, BindingIDs: ids})
		},
	}
	cmd.Flags().BoolVar(&elide, "elide", false, "run the elision pass before printing")
	cmd.Flags().BoolVar(&raw, "raw", false, "print bound lifetimes as binder#index instead of their names")
	cmd.Flags().BoolVar(&ids, "ids", false, "print lifetimes as numeric binding ids")
	cmd.Flags().BoolVar(&header, "header", false, "print the dump header first")
	return cmd
}
