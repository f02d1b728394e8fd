// Package version holds build information for the elide CLI.
package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"elide/internal/hirfile"
)

// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Version with each numeric component in its own colour.
// Anything after the patch number is left plain.
func Colored() string {
	core, rest, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", len(partColors))
	for i, p := range parts {
		parts[i] = partColors[i].Sprint(p)
	}
	out := strings.Join(parts, ".")
	if rest != "" {
		out += "-" + rest
	}
	return out
}

// Producer identifies this build in crate dump headers.
func Producer() string {
	return "elide " + Version
}

// Info is the multi-line text printed by `elide version`.
func Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "elide %s\n", Colored())
	fmt.Fprintf(&b, "hirpack schema %s (reads %s)\n", hirfile.SchemaVersion, hirfile.SchemaConstraint)
	if GitCommit != "" {
		fmt.Fprintf(&b, "commit %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "built %s\n", BuildDate)
	}
	return b.String()
}
