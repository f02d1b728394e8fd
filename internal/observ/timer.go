// Package observ records how long each stage of handling a crate dump took.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase names used by the driver.
const (
	PhaseLoad   = "load"
	PhaseElide  = "elide"
	PhaseVerify = "verify"
	PhaseEncode = "encode"
)

// Phase is one timed stage.
type Phase struct {
	Name string
	Dur  time.Duration
}

// Timer collects phases for a single file. It is not safe for concurrent use;
// each driver worker owns its own.
type Timer struct {
	phases []Phase
	now    func() time.Time
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Time runs fn as phase name.
func (t *Timer) Time(name string, fn func()) {
	start := t.now()
	fn()
	t.phases = append(t.phases, Phase{Name: name, Dur: t.now().Sub(start)})
}

// Phases returns the recorded phases in order.
func (t *Timer) Phases() []Phase {
	if t == nil {
		return nil
	}
	return t.phases
}

// Totals sums phases by name across timers, keeping first-seen order.
type Totals struct {
	order []string
	sum   map[string]time.Duration
	files int
}

func NewTotals() *Totals { return &Totals{sum: make(map[string]time.Duration)} }

// Add folds one file's phases in.
func (s *Totals) Add(phases []Phase) {
	s.files++
	for _, p := range phases {
		if _, ok := s.sum[p.Name]; !ok {
			s.order = append(s.order, p.Name)
		}
		s.sum[p.Name] += p.Dur
	}
}

// Summary renders the totals as an aligned table.
func (s *Totals) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "timings (%d files):\n", s.files)
	var total time.Duration
	for _, name := range s.order {
		d := s.sum[name]
		total += d
		fmt.Fprintf(&b, "  %-8s %9.2f ms\n", name, durationToMillis(d))
	}
	fmt.Fprintf(&b, "  %-8s %9.2f ms\n", "total", durationToMillis(total))
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
