package driver

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of writes from a compiler emitting dumps.
const DefaultDebounce = 150 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Options
	Debounce time.Duration
	// OnBatch is called with the results of each re-run.
	OnBatch func([]Result)
	// OnError receives watcher errors; nil ignores them.
	OnError func(error)
	// OnReady is called once every path is being watched.
	OnReady func()
}

// Watch re-elides changed dumps under paths until ctx is cancelled. Directories
// are watched non-recursively; outputs carrying the suffix are ignored so a
// run never triggers itself.
func Watch(ctx context.Context, paths []string, opts WatchOptions) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	for _, p := range paths {
		if err := w.Add(watchTarget(p)); err != nil {
			return err
		}
	}
	if opts.OnReady != nil {
		opts.OnReady()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if !IsInput(ev.Name, suffix) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = true
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if opts.OnError != nil {
				opts.OnError(err)
			}
		case <-timer.C:
			batch := drain(pending)
			if len(batch) == 0 {
				continue
			}
			results, err := Run(ctx, batch, opts.Options)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			if opts.OnBatch != nil {
				opts.OnBatch(results)
			}
		}
	}
}

// watchTarget watches the directory holding a file so that atomic
// rename-over replacements are still seen.
func watchTarget(p string) string {
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return filepath.Dir(p)
	}
	return p
}

// drain returns the pending paths that still exist and clears the set.
func drain(pending map[string]bool) []string {
	out := make([]string, 0, len(pending))
	for p := range pending {
		delete(pending, p)
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
