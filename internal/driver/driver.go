// Package driver runs the elision pass over batches of crate dumps.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"elide/internal/diag"
	"elide/internal/elision"
	"elide/internal/hir"
	"elide/internal/hirfile"
	"elide/internal/observ"
	"elide/internal/source"
	"elide/internal/testkit"
	"elide/internal/trace"
)

// Options configures a batch.
type Options struct {
	Infer  elision.InferMode
	Verify bool
	// DryRun elides and verifies but writes nothing.
	DryRun bool
	Suffix string
	// OutDir puts outputs in one directory instead of next to each input.
	OutDir         string
	MaxDiagnostics int
	Jobs           int
	Producer       string
	Observer       Observer
	// CrashLog receives the trace ring buffer after an internal failure.
	CrashLog io.Writer
}

// Result is the outcome for one input file.
type Result struct {
	Path   string
	Output string // "" when nothing was written
	Crate  string
	Bag    *diag.Bag
	Files  *source.FileSet
	Stats  elision.Stats
	// AlreadyElided is set when the input header says a previous run
	// already processed it.
	AlreadyElided bool
	Elapsed       time.Duration
	Timings       []observ.Phase
}

// Failed reports whether the file produced errors.
func (r *Result) Failed() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// Run processes inputs in parallel, one single-threaded traversal per crate.
// Per-file failures land in each Result's bag; the returned error is only
// set when the batch itself was cancelled.
func Run(ctx context.Context, inputs []string, opts Options) ([]Result, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "batch", trace.ParentFrom(ctx))
	span.WithExtra("files", strconv.Itoa(len(inputs)))
	defer span.End("")
	ctx = trace.WithParent(ctx, span)

	results := make([]Result, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	for i, p := range inputs {
		opts.notify(Event{Kind: EventQueued, Index: i, Path: p, Total: len(inputs)})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(inputs)))
	for i, path := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts.notify(Event{Kind: EventStart, Index: i, Path: path, Total: len(inputs)})
			// each goroutine owns results[i]
			results[i] = ElideFile(gctx, path, opts)
			opts.notify(Event{
				Kind:    EventDone,
				Index:   i,
				Path:    path,
				Total:   len(inputs),
				Elapsed: results[i].Elapsed,
				Result:  &results[i],
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (o *Options) notify(ev Event) {
	if o.Observer != nil {
		o.Observer(ev)
	}
}

// ElideFile loads, elides, verifies and writes one dump.
func ElideFile(ctx context.Context, path string, opts Options) (res Result) {
	start := time.Now()
	res = Result{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics), Files: source.NewFileSet()}
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeCrate, path, trace.ParentFrom(ctx))
	ctx = trace.WithParent(ctx, span)
	defer func() {
		res.Elapsed = time.Since(start)
		status := "ok"
		if res.Failed() {
			status = "failed"
		}
		span.End(status)
	}()

	timer := observ.NewTimer()
	defer func() { res.Timings = timer.Phases() }()

	var (
		hdr   hirfile.Header
		crate *hir.Crate
		err   error
	)
	timer.Time(observ.PhaseLoad, func() { hdr, crate, err = hirfile.ReadFile(path) })
	if err != nil {
		code := diag.IOLoadFileError
		if hirfile.IsSchemaError(err) {
			code = diag.IOBadSchema
		}
		res.Bag.Add(diag.NewError(code, source.NoSpan, err.Error()))
		return res
	}
	res.Crate = crate.Name
	res.AlreadyElided = hdr.Elided
	registerSources(res.Files, filepath.Dir(path), crate.SourceFiles)

	var stats elision.Stats
	timer.Time(observ.PhaseElide, func() {
		stats, err = elideGuarded(ctx, crate, elision.Options{
			Reporter: diag.BagReporter{Bag: res.Bag},
			Infer:    opts.Infer,
		}, opts.CrashLog)
	})
	if err != nil {
		dumpCrashTrace(tr, opts.CrashLog, err)
		return res
	}
	res.Stats = stats

	if opts.Verify {
		timer.Time(observ.PhaseVerify, func() {
			vspan := trace.Begin(tr, trace.ScopePass, "verify", span.ID())
			err = testkit.CheckLifetimes(crate, testkit.LifetimeCheck{AllowInfer: opts.Infer == elision.InferKeep})
			vspan.End("")
		})
		if err != nil {
			for _, line := range strings.Split(err.Error(), "\n") {
				res.Bag.Add(diag.NewError(diag.ElideInvariant, source.NoSpan, line))
			}
			return res
		}
	}

	if opts.DryRun {
		return res
	}
	out := OutputFor(path, opts)
	timer.Time(observ.PhaseEncode, func() {
		wspan := trace.Begin(tr, trace.ScopePass, "encode", span.ID())
		err = hirfile.WriteFile(out, hirfile.NewHeader(crate.Name, opts.Producer, true), crate)
		wspan.End("")
	})
	if err != nil {
		res.Bag.Add(diag.NewError(diag.IOWriteError, source.NoSpan, fmt.Sprintf("%s: %v", out, err)))
		return res
	}
	res.Output = out
	return res
}

// OutputFor is where the elided dump of path goes.
func OutputFor(path string, opts Options) string {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	out := hirfile.OutputPath(path, suffix)
	if opts.OutDir != "" {
		out = filepath.Join(opts.OutDir, filepath.Base(out))
	}
	return out
}

// registerSources maps the crate's FileIDs to paths, in order. Sources found
// relative to the dump are loaded so spans render as line:col.
func registerSources(fs *source.FileSet, dir string, files []string) {
	for _, f := range files {
		candidate := f
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(dir, f)
		}
		if _, err := os.Stat(candidate); err == nil {
			if _, err := fs.Load(candidate); err == nil {
				continue
			}
		}
		fs.AddVirtual(f)
	}
}

// elideGuarded keeps a crash in the pass local to its file: the panic is
// reported as an internal error instead of unwinding the batch goroutine.
func elideGuarded(ctx context.Context, crate *hir.Crate, eopts elision.Options, crashLog io.Writer) (stats elision.Stats, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if crashLog != nil {
			fmt.Fprintf(crashLog, "panic in elision of crate %s: %v\n%s", crate.Name, r, debug.Stack())
		}
		eerr := &elision.Error{Code: diag.ElideCrashed, Span: source.NoSpan, Msg: fmt.Sprint(r), Bug: true}
		if eopts.Reporter != nil {
			diag.ReportError(eopts.Reporter, eerr.Code, eerr.Span, "elision crashed: "+eerr.Msg).Emit()
		}
		err = eerr
	}()
	return elision.Elide(ctx, crate, eopts)
}

func dumpCrashTrace(tr trace.Tracer, w io.Writer, err error) {
	var eerr *elision.Error
	if w == nil || !errors.As(err, &eerr) || !eerr.Bug {
		return
	}
	ring := trace.Ring(tr)
	if ring == nil {
		return
	}
	fmt.Fprintf(w, "internal elision failure (%s), last trace events:\n", eerr.Code.ID())
	if derr := ring.Dump(w, trace.FormatText); derr != nil {
		fmt.Fprintf(w, "trace dump failed: %v\n", derr)
	}
}
