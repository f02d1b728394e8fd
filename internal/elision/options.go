package elision

import (
	"fmt"
	"strings"

	"elide/internal/diag"
)

// InferMode controls what happens to lifetimes written as '_.
type InferMode uint8

const (
	// InferElide treats '_ exactly like an omitted lifetime.
	InferElide InferMode = iota
	// InferKeep leaves '_ in place for a later region-inference stage.
	InferKeep
)

func (m InferMode) String() string {
	switch m {
	case InferElide:
		return "elide"
	case InferKeep:
		return "keep"
	default:
		return fmt.Sprintf("InferMode(%d)", m)
	}
}

// ParseInferMode maps the config/flag spelling to an InferMode.
func ParseInferMode(s string) (InferMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "elide":
		return InferElide, nil
	case "keep":
		return InferKeep, nil
	default:
		return InferElide, fmt.Errorf("invalid infer mode %q (expected: elide|keep)", s)
	}
}

// Options configures one run of the pass.
type Options struct {
	// Reporter receives the failure diagnostic, if any. nil discards it.
	Reporter diag.Reporter
	Infer    InferMode
}

// Stats counts what the pass did to a crate.
type Stats struct {
	Items       int // functions, consts, statics and impl blocks entered
	Synthesised int // fresh elided#N parameters
	Reused      int // copied from an ambient target other than 'static
	Static      int // resolved to 'static
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Items += o.Items
	s.Synthesised += o.Synthesised
	s.Reused += o.Reused
	s.Static += o.Static
}

// Total is the number of lifetimes the pass filled in.
func (s Stats) Total() int {
	return s.Synthesised + s.Reused + s.Static
}
