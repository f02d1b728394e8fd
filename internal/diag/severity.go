package diag

import "github.com/fatih/color"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

var severityColors = map[Severity]*color.Color{
	SevInfo:    color.New(color.FgCyan),
	SevWarning: color.New(color.FgYellow, color.Bold),
	SevError:   color.New(color.FgRed, color.Bold),
}

// Paint colours s with the severity palette. color.NoColor (set by the CLI
// from --color and tty detection) turns this into a no-op.
func (s Severity) Paint(text string) string {
	c, ok := severityColors[s]
	if !ok {
		return text
	}
	return c.Sprint(text)
}
