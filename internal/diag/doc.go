// Package diag defines the diagnostic model shared by the elision pass and
// the driver.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (ELD4001, IO5001, ...), a short Message, the primary
// source.Span and optional Notes.
//
// Producers emit through a Reporter so that storage stays decoupled:
//
//	diag.ReportError(r, diag.ElideUnspecifiedLifetime, sp, "unspecified lifetime in outer context").
//		WithNote(fnSpan, "in this function signature").
//		Emit()
//
// BagReporter collects into a Bag (limit, Sort, Dedup). FormatShortDiagnostics renders one line per diagnostic for the CLI
// and for golden tests.
//
// Codes in the 4000 range belong to the elision pass. Only
// ElideUnspecifiedLifetime describes a problem in user code; Code.IsBug
// reports the internal-consistency ones.
package diag
