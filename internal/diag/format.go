package diag

import (
	"fmt"
	"strings"

	"elide/internal/source"
)

// FormatShortDiagnostics renders diagnostics one per line:
//
//	<severity> <ID> <location> <message>
//
// Notes follow their diagnostic as "note" lines when includeNotes is set.
// The bag is expected to be sorted already.
func FormatShortDiagnostics(items []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity.Paint(severityLabel(d.Severity)), d.Code.ID(), location(fs, d.Primary), sanitizeMessage(d.Message))
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			fmt.Fprintf(&b, "\nnote %s %s %s", d.Code.ID(), location(fs, note.Span), sanitizeMessage(note.Msg))
		}
	}
	return b.String()
}

func location(fs *source.FileSet, sp source.Span) string {
	if fs == nil {
		return sp.String()
	}
	return fs.Format(sp)
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
