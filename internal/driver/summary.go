package driver

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"elide/internal/diag"
	"elide/internal/elision"
	"elide/internal/observ"
)

// Totals sums per-file stats and counts failed files.
func Totals(results []Result) (stats elision.Stats, failed int) {
	for i := range results {
		stats.Add(results[i].Stats)
		if results[i].Failed() {
			failed++
		}
	}
	return stats, failed
}

// WriteDiagnostics prints every file's diagnostics, sorted, in input order.
func WriteDiagnostics(w io.Writer, results []Result, notes bool) {
	for i := range results {
		r := &results[i]
		if r.Bag == nil || r.Bag.Len() == 0 {
			continue
		}
		r.Bag.Sort()
		r.Bag.Dedup()
		fmt.Fprintf(w, "%s:\n%s\n", r.Path, diag.FormatShortDiagnostics(r.Bag.Items(), r.Files, notes))
		if n := r.Bag.Dropped(); n > 0 {
			fmt.Fprintf(w, "(%d more diagnostics suppressed)\n", n)
		}
	}
}

// WriteSummary prints one line per file and a totals line.
func WriteSummary(w io.Writer, results []Result, elapsed time.Duration) {
	for i := range results {
		r := &results[i]
		status := "ok"
		switch {
		case r.Failed():
			status = "FAIL"
		case r.AlreadyElided:
			status = "again"
		}
		target := r.Output
		if target == "" {
			target = "-"
		} else {
			target = filepath.Base(target)
		}
		fmt.Fprintf(w, "%-5s %-32s %4d lifetimes  %-24s %s\n",
			status, r.Path, r.Stats.Total(), target, r.Elapsed.Round(time.Microsecond))
	}
	stats, failed := Totals(results)
	fmt.Fprintf(w, "%d files, %d failed: %d items, %d synthesised, %d reused, %d 'static in %s\n",
		len(results), failed, stats.Items, stats.Synthesised, stats.Reused, stats.Static,
		elapsed.Round(time.Millisecond))
}

// WriteTimings prints per-phase durations summed over the batch.
func WriteTimings(w io.Writer, results []Result) {
	totals := observ.NewTotals()
	for i := range results {
		totals.Add(results[i].Timings)
	}
	fmt.Fprint(w, totals.Summary())
}
