package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"elide/internal/diag"
	"elide/internal/source"
)

func TestJSONDocument(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("src/lib.rs")
	id := fs.Add("src/main.rs", []byte("fn f(a: &u8, b: &u8) -> &u8 {}\n"), 0)

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.ElideUnspecifiedLifetime, source.Span{File: id, Start: 25, End: 28}, "lifetime required in output").
		WithNote(source.Span{File: id, Start: 0, End: 30}, "in fn demo::f"))

	files := []FileJSON{
		File("bad.hirpack", "demo", "", bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}),
		File("good.hirpack", "ok", "good.elided.hirpack", diag.NewBag(0), fs, JSONOpts{}),
	}
	var buf bytes.Buffer
	if err := JSON(&buf, files); err != nil {
		t.Fatalf("json: %v", err)
	}
	var got Output
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	want := Output{
		Count:  1,
		Failed: 1,
		Files: []FileJSON{
			{
				Path:  "bad.hirpack",
				Crate: "demo",
				Diagnostics: []DiagnosticJSON{{
					Severity: "ERROR",
					Code:     "E0000",
					Title:    diag.ElideUnspecifiedLifetime.Title(),
					Message:  "lifetime required in output",
					Location: LocationJSON{File: "src/main.rs", StartByte: 25, EndByte: 28, StartLine: 1, StartCol: 26, EndLine: 1, EndCol: 29},
					Notes: []NoteJSON{{
						Message:  "in fn demo::f",
						Location: LocationJSON{File: "src/main.rs", StartByte: 0, EndByte: 30, StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 31},
					}},
				}},
			},
			{Path: "good.hirpack", Crate: "ok", Output: "good.elided.hirpack", Diagnostics: []DiagnosticJSON{}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDiagnosticsMax(t *testing.T) {
	bag := diag.NewBag(0)
	for range 3 {
		bag.Add(diag.NewError(diag.ElideStackLeak, source.NoSpan, "leak"))
	}
	if got := BuildDiagnostics(bag, nil, JSONOpts{Max: 2}); len(got) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(got))
	}
	if got := BuildDiagnostics(nil, nil, JSONOpts{}); got == nil || len(got) != 0 {
		t.Fatalf("nil bag should give an empty list, got %#v", got)
	}
}
