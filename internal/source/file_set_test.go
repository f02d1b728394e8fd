package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("lib.rs", []byte("fn f() {}\nstruct S;\n"), 0)

	start, end, ok := fs.Resolve(Span{File: id, Start: 10, End: 16})
	if !ok {
		t.Fatalf("expected resolvable span")
	}
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("start = %+v, want 2:1", start)
	}
	if end.Line != 2 || end.Col != 7 {
		t.Errorf("end = %+v, want 2:7", end)
	}
	if got := fs.Format(Span{File: id, Start: 3, End: 4}); got != "lib.rs:1:4" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFileSetVirtualFallsBackToOffsets(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("src/main.rs")
	if _, _, ok := fs.Resolve(Span{File: id, Start: 1, End: 2}); ok {
		t.Fatalf("virtual file must not resolve line/col")
	}
	if got := fs.Format(Span{File: id, Start: 7, End: 12}); got != "src/main.rs:7-12" {
		t.Errorf("Format() = %q", got)
	}
	if got := fs.Format(Span{File: 9, Start: 1, End: 2}); got != "9:1-2" {
		t.Errorf("unknown file Format() = %q", got)
	}
}

func TestFileSetLoadNormalizesCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.rs")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b", f.Flags)
	}
	if got, ok := fs.Lookup(path); !ok || got != id {
		t.Errorf("Lookup() = %d, %v", got, ok)
	}
}
