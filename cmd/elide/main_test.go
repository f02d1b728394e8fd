package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"elide/internal/diagfmt"
	"elide/internal/hir"
	"elide/internal/hirfile"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := newCLI()
	var out bytes.Buffer
	c.root.SetOut(&out)
	c.root.SetErr(&out)
	c.root.SetArgs(append([]string{"--color", "off"}, args...))
	err := c.execute()
	return out.String(), err
}

// writeCrate writes a dump holding fn f(args..) -> ret.
func writeCrate(t *testing.T, path string, ret hir.TypeRef, args ...hir.TypeRef) {
	t.Helper()
	fn := &hir.Function{Return: ret}
	for i, a := range args {
		fn.Args = append(fn.Args, hir.Arg{Name: string(rune('a' + i)), Type: a})
	}
	c := &hir.Crate{
		Name: strings.TrimSuffix(filepath.Base(path), ".hirpack"),
		Root: hir.Module{ValueItems: []hir.ValueItem{{Name: "f", Kind: hir.ValueFunction, Function: fn}}},
	}
	if err := hirfile.WriteFile(path, hirfile.NewHeader(c.Name, "test", false), c); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func u8Ref() hir.TypeRef { return hir.Ref(hir.Prim("u8")) }

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	writeCrate(t, filepath.Join(dir, "one.hirpack"), u8Ref(), u8Ref())
	writeCrate(t, filepath.Join(dir, "two.hirpack"), hir.Unit(), u8Ref(), u8Ref())

	out, err := execute(t, "run", "--ui", "off", dir)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	for _, name := range []string{"one.elided.hirpack", "two.elided.hirpack"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
	}
	if !strings.Contains(out, "2 files, 0 failed") {
		t.Fatalf("unexpected summary:\n%s", out)
	}

	// a second run skips the outputs of the first
	out, err = execute(t, "run", "--ui", "off", "--quiet", dir)
	if err != nil {
		t.Fatalf("second run failed: %v\n%s", err, out)
	}
	if out != "" {
		t.Fatalf("quiet run printed:\n%s", out)
	}
}

func TestCheckReportsErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.hirpack")
	writeCrate(t, in, u8Ref(), u8Ref(), u8Ref())

	out, err := execute(t, "check", in)
	if err == nil || !isSilent(err) {
		t.Fatalf("check should fail silently, got %v", err)
	}
	if !strings.Contains(out, "error E0000") || !strings.Contains(out, "in fn bad::f") {
		t.Fatalf("diagnostics missing:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.elided.hirpack")); !os.IsNotExist(err) {
		t.Fatalf("check must not write outputs")
	}
}

func TestDump(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "d.hirpack")
	writeCrate(t, in, u8Ref(), u8Ref())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"as-is", []string{"dump", in}, "fn f(a: &'? u8) -> &'? u8;"},
		{"elided", []string{"dump", "--elide", in}, "fn f<'elided#0>(a: &'elided#0 u8) -> &'elided#0 u8;"},
		{"raw", []string{"dump", "--elide", "--raw", in}, "(a: &'fn#0 u8) -> &'fn#0 u8;"},
		{"ids", []string{"dump", "--elide", "--ids", in}, "(a: &'#256 u8) -> &'#256 u8;"},
		{"header", []string{"dump", "--header", in}, "// HIRPACK schema=1.1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("dump failed: %v\n%s", err, out)
			}
			if !strings.Contains(out, tt.want) {
				t.Fatalf("dump output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "c.hirpack")
	writeCrate(t, in, hir.Unit(), u8Ref())
	cfg := filepath.Join(dir, "elide.toml")
	if err := os.WriteFile(cfg, []byte("[output]\nsuffix = \".done.hirpack\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if out, err := execute(t, "--config", cfg, "run", "--ui", "off", in); err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(dir, "c.done.hirpack")); err != nil {
		t.Fatalf("config suffix ignored: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if out, err := execute(t, "--config", cfg, "run", "--ui", "off", "--out-dir", outDir, "--suffix", ".x.hirpack", in); err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "c.x.hirpack")); err != nil {
		t.Fatalf("flags should override config: %v", err)
	}

	if _, err := execute(t, "--infer", "guess", "check", in); err == nil {
		t.Fatalf("expected error for bad --infer")
	}
	if _, err := execute(t, "--color", "purple", "check", in); err == nil {
		t.Fatalf("expected error for bad --color")
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("bad json %q: %v", out, err)
	}
	if payload.Tool != "elide" || payload.Schema != hirfile.SchemaVersion {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if _, err := execute(t, "version", "--format", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestCheckJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "j.hirpack")
	writeCrate(t, in, u8Ref(), u8Ref(), u8Ref())

	out, err := execute(t, "check", "--format", "json", in)
	if !isSilent(err) {
		t.Fatalf("check should fail silently, got %v", err)
	}
	var doc diagfmt.Output
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if doc.Failed != 1 || len(doc.Files) != 1 || doc.Files[0].Diagnostics[0].Code != "E0000" {
		t.Fatalf("unexpected document %+v", doc)
	}
	if _, err := execute(t, "check", "--format", "xml", in); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestTimingsAndProfiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "p.hirpack")
	writeCrate(t, in, hir.Unit(), u8Ref())
	cpu := filepath.Join(dir, "cpu.pprof")

	out, err := execute(t, "--timings", "--cpuprofile", cpu, "check", in)
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "timings (1 files):") || !strings.Contains(out, "  verify ") {
		t.Fatalf("timings missing:\n%s", out)
	}
	if _, err := os.Stat(cpu); err != nil {
		t.Fatalf("cpu profile not written: %v", err)
	}
}
