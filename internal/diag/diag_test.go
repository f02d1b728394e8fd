package diag

import (
	"testing"

	"elide/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("src/lib.rs", []byte("fn f(a: &u8, b: &u8) -> &u8\n"), 0)

	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	ReportError(r, ElideUnspecifiedLifetime, source.Span{File: file, Start: 25, End: 28}, "unspecified lifetime\nin outer context").
		WithNote(source.Span{File: file, Start: 0, End: 2}, "in this signature").
		Emit()
	r.Report(ElideInfo, SevWarning, source.Span{File: file, Start: 0, End: 1}, "info", nil)
	bag.Sort()

	want := "warning ELD4000 src/lib.rs:1:1 info\n" +
		"error E0000 src/lib.rs:1:26 unspecified lifetime in outer context\n" +
		"note E0000 src/lib.rs:1:1 in this signature"
	if got := FormatShortDiagnostics(bag.Items(), fs, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(NewError(ElideStackLeak, source.Span{}, "leak")) {
		t.Fatalf("first diagnostic must be accepted")
	}
	if bag.Add(NewError(ElideStackLeak, source.Span{}, "leak again")) {
		t.Fatalf("bag must respect its limit")
	}
	if !bag.HasErrors() || bag.Errors() != 1 || bag.Dropped() != 1 {
		t.Fatalf("errors=%d dropped=%d", bag.Errors(), bag.Dropped())
	}

	unlimited := NewBag(0)
	for range 300 {
		unlimited.Add(New(SevInfo, ElideInfo, source.Span{}, "x"))
	}
	if unlimited.Len() != 300 || unlimited.HasErrors() {
		t.Fatalf("len=%d errors=%v", unlimited.Len(), unlimited.HasErrors())
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(0)
	sp := source.Span{File: 0, Start: 1, End: 2}
	bag.Add(NewError(ElideUnspecifiedLifetime, sp, "x").WithNote(sp, "first"))
	bag.Add(NewError(ElideUnspecifiedLifetime, sp, "x").WithNote(sp, "second"))
	bag.Add(NewError(ElideUnspecifiedLifetime, sp, "y"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	if bag.Items()[0].Notes[0].Msg != "first" {
		t.Fatalf("dedup must keep the first occurrence")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, ElideStackLeak, source.NoSpan, "leak")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	var nilBuilder *ReportBuilder
	nilBuilder.WithNote(source.NoSpan, "x").Emit()
	ReportError(nil, ElideStackLeak, source.NoSpan, "dropped").Emit()
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		ElideUnspecifiedLifetime: "E0000",
		ElideUnexpectedBinding:   "ELD4002",
		ElideUnknownPath:         "ELD4007",
		ElideCrashed:             "ELD4008",
		IOBadSchema:              "IO5002",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if ElideUnspecifiedLifetime.IsBug() {
		t.Errorf("user-facing code reported as bug")
	}
	for _, code := range []Code{ElideSupertraitNotFound, ElideUnknownPath, ElideCrashed} {
		if !code.IsBug() {
			t.Errorf("%s must be a bug", code)
		}
	}
	if IOBadSchema.Title() != "Unsupported or malformed crate dump" {
		t.Errorf("IOBadSchema title = %q", IOBadSchema.Title())
	}
}
