package diagfmt

import (
	"encoding/json"
	"io"

	"elide/internal/diag"
	"elide/internal/source"
)

// LocationJSON is a span resolved against the crate's source list.
type LocationJSON struct {
	File      string `json:"file,omitempty"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// FileJSON groups the diagnostics of one crate dump.
type FileJSON struct {
	Path        string           `json:"path"`
	Crate       string           `json:"crate,omitempty"`
	Output      string           `json:"output,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

// Output is the root of the JSON document.
type Output struct {
	Files  []FileJSON `json:"files"`
	Count  int        `json:"count"`
	Failed int        `json:"failed"`
}

func makeLocation(span source.Span, fs *source.FileSet, includePositions bool) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	if fs == nil {
		return loc
	}
	if f := fs.Get(span.File); f != nil {
		loc.File = f.Path
	}
	if includePositions {
		if start, end, ok := fs.Resolve(span); ok {
			loc.StartLine, loc.StartCol = start.Line, start.Col
			loc.EndLine, loc.EndCol = end.Line, end.Col
		}
	}
	return loc
}

// BuildDiagnostics converts one bag without serialising it.
func BuildDiagnostics(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) []DiagnosticJSON {
	if bag == nil {
		return []DiagnosticJSON{}
	}
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := make([]DiagnosticJSON, 0, n)
	for _, d := range items[:n] {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.IncludePositions),
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				dj.Notes[j] = NoteJSON{Message: note.Msg, Location: makeLocation(note.Span, fs, opts.IncludePositions)}
			}
		}
		out = append(out, dj)
	}
	return out
}

// File is the JSON view of a single input.
func File(path, crate, output string, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) FileJSON {
	return FileJSON{
		Path:        path,
		Crate:       crate,
		Output:      output,
		Diagnostics: BuildDiagnostics(bag, fs, opts),
	}
}

// JSON writes files as one indented document.
func JSON(w io.Writer, files []FileJSON) error {
	out := Output{Files: files}
	if out.Files == nil {
		out.Files = []FileJSON{}
	}
	for _, f := range files {
		out.Count += len(f.Diagnostics)
		for _, d := range f.Diagnostics {
			if d.Severity == diag.SevError.String() {
				out.Failed++
				break
			}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
