package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level controls how much gets recorded.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // only the crash dump
	LevelPhase        // driver, crate and pass boundaries
	LevelDetail       // plus item spans
	LevelDebug        // everything
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the level names in any case; empty means off.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return LevelOff, nil
	}
	idx := slices.Index(levelNames, name)
	if idx < 0 {
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
	}
	return Level(idx), nil
}

// deepest is the innermost scope recorded at each level. LevelError only
// feeds the ring through the crash path.
var deepest = map[Level]Scope{
	LevelPhase:  ScopePass,
	LevelDetail: ScopeItem,
}

// ShouldEmit reports whether events of scope are recorded at level l.
func (l Level) ShouldEmit(scope Scope) bool {
	if l >= LevelDebug {
		return true
	}
	limit, ok := deepest[l]
	return ok && scope <= limit
}
