package elision

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"elide/internal/diag"
	"elide/internal/hir"
	"elide/internal/trace"
)

func TestSingleInputFeedsOutput(t *testing.T) {
	fn := freeFn(hir.Ref(u8), hir.Ref(u8))
	c := newCrate(fnItem("f", fn))
	stats := mustElide(t, c, Options{})

	if len(fn.Params.Lifetimes) != 1 || !fn.Params.Lifetimes[0].Elided {
		t.Fatalf("expected one elided param, got %+v", fn.Params.Lifetimes)
	}
	if got := fn.Args[0].Type.Borrow.Lifetime; got != fnParam(0) {
		t.Fatalf("argument lifetime = %s", got)
	}
	if got := fn.Return.Borrow.Lifetime; got != fnParam(0) {
		t.Fatalf("return lifetime = %s", got)
	}
	if stats.Synthesised != 1 || stats.Reused != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	want := "fn f<'elided#0>(a: &'elided#0 u8) -> &'elided#0 u8;"
	if got := dumpLine(t, c, "fn f"); got != want {
		t.Fatalf("dump:\n got %s\nwant %s", got, want)
	}
}

func TestOutputUsesOnlyElidedInput(t *testing.T) {
	// fn f<'a>(a: &'a u8, b: &u8) -> &u8
	fn := freeFn(hir.Ref(u8), hir.RefWith(fnParam(0), u8), hir.Ref(u8))
	fn.Params.Lifetimes = []hir.LifetimeDef{{Name: "a"}}
	mustElide(t, newCrate(fnItem("f", fn)), Options{})

	if got := fn.Args[1].Type.Borrow.Lifetime; got != fnParam(1) {
		t.Fatalf("b lifetime = %s", got)
	}
	if got := fn.Return.Borrow.Lifetime; got != fnParam(1) {
		t.Fatalf("return should borrow from the elided input, got %s", got)
	}
}

func TestTwoInputsLeaveOutputUnspecified(t *testing.T) {
	fn := freeFn(hir.Ref(u8), hir.Ref(u8), hir.Ref(u8))
	c := newCrate(fnItem("f", fn))
	eerr, bag := mustFail(t, c, diag.ElideUnspecifiedLifetime)
	if eerr.Bug {
		t.Fatalf("missing lifetime is a user error")
	}
	d := bag.Items()[0]
	if d.Code.ID() != "E0000" || d.Message != "unspecified lifetime in outer context" {
		t.Fatalf("unexpected diagnostic %s %q", d.Code.ID(), d.Message)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "in fn demo::f" {
		t.Fatalf("expected item note, got %+v", d.Notes)
	}
}

func TestTwoInputsWithoutBorrowedOutput(t *testing.T) {
	fn := freeFn(u8, hir.Ref(u8), hir.RefMut(str))
	mustElide(t, newCrate(fnItem("f", fn)), Options{})
	if fn.Params.CountElided() != 2 {
		t.Fatalf("expected two elided params, got %d", fn.Params.CountElided())
	}
	if fn.Args[1].Type.Borrow.Lifetime != fnParam(1) {
		t.Fatalf("second argument should get its own param")
	}
}

func methodOn(self hir.TypeRef, receiver hir.ReceiverKind, ret hir.TypeRef, args ...hir.TypeRef) *hir.Function {
	fn := freeFn(ret, append([]hir.TypeRef{self}, args...)...)
	fn.Args[0].Name = "self"
	fn.Receiver = receiver
	return fn
}

func TestReceiverWinsOverOtherInputs(t *testing.T) {
	get := methodOn(hir.Ref(hir.SelfType()), hir.ReceiverBorrowShared, hir.Ref(u8), hir.Ref(u8))
	c := newCrate()
	c.TypeImpls = []hir.TypeImpl{{
		Type:    hir.Named(hir.Simple("S")),
		Methods: []hir.ImplFunction{{Name: "get", Fn: *get}},
	}}
	mustElide(t, c, Options{})

	m := &c.TypeImpls[0].Methods[0].Fn
	if m.Args[0].Type.Borrow.Lifetime != fnParam(0) || m.Args[1].Type.Borrow.Lifetime != fnParam(1) {
		t.Fatalf("unexpected argument lifetimes: %s", dumpLine(t, c, "fn get"))
	}
	if m.Return.Borrow.Lifetime != fnParam(0) {
		t.Fatalf("return should borrow from self, got %s", m.Return.Borrow.Lifetime)
	}
	if len(c.TypeImpls[0].Params.Lifetimes) != 0 {
		t.Fatalf("method lifetimes leaked into the impl")
	}
}

func TestExplicitReceiverLifetimeFallsBackToSingleInput(t *testing.T) {
	// fn get<'a>(&'a self, k: &u8) -> &u8
	get := methodOn(hir.RefWith(fnParam(0), hir.SelfType()), hir.ReceiverBorrowShared, hir.Ref(u8), hir.Ref(u8))
	get.Params.Lifetimes = []hir.LifetimeDef{{Name: "a"}}
	c := newCrate()
	c.TypeImpls = []hir.TypeImpl{{Type: hir.Named(hir.Simple("S")), Methods: []hir.ImplFunction{{Name: "get", Fn: *get}}}}
	mustElide(t, c, Options{})

	if got := c.TypeImpls[0].Methods[0].Fn.Return.Borrow.Lifetime; got != fnParam(1) {
		t.Fatalf("return = %s, want the elided k lifetime", got)
	}
}

func TestValueReceiverDoesNotProvideOutput(t *testing.T) {
	get := methodOn(hir.SelfType(), hir.ReceiverValue, hir.Ref(u8), hir.Ref(u8), hir.Ref(u8))
	c := newCrate()
	c.TypeImpls = []hir.TypeImpl{{Type: hir.Named(hir.Simple("S")), Methods: []hir.ImplFunction{{Name: "get", Fn: *get}}}}
	mustFail(t, c, diag.ElideUnspecifiedLifetime)
}

func TestReborrowDefault(t *testing.T) {
	nested := freeFn(hir.Unit(), hir.Ref(hir.Ref(u8)))
	wrapped := freeFn(hir.Unit(), hir.Ref(hir.Named(wrapPath(), u8)))
	c := newCrate(fnItem("nested", nested), fnItem("wrapped", wrapped))
	stats := mustElide(t, c, Options{})

	if len(nested.Params.Lifetimes) != 1 {
		t.Fatalf("inner borrow must not get its own param: %s", dumpLine(t, c, "fn nested"))
	}
	if inner := nested.Args[0].Type.Borrow.Inner.Borrow.Lifetime; inner != fnParam(0) {
		t.Fatalf("inner borrow = %s", inner)
	}
	if got := wrapped.Args[0].Type.Borrow.Inner.Path.Generic.Params.Lifetimes; len(got) != 1 || got[0] != fnParam(0) {
		t.Fatalf("Wrap lifetime should follow the borrow, got %v", got)
	}
	if stats.Synthesised != 2 || stats.Reused != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestFnPointerIsItsOwnBinder(t *testing.T) {
	ptr := hir.FnPtr(hir.Ref(u8), hir.Ref(u8))
	fn := freeFn(hir.Unit(), hir.Ref(ptr))
	c := newCrate(fnItem("f", fn))
	mustElide(t, c, Options{})

	if len(fn.Params.Lifetimes) != 1 {
		t.Fatalf("only the outer borrow belongs to f: %s", dumpLine(t, c, "fn f"))
	}
	inner := fn.Args[0].Type.Borrow.Inner.Function
	if len(inner.HRLs.Lifetimes) != 2 {
		t.Fatalf("expected two HRTB params, got %d", len(inner.HRLs.Lifetimes))
	}
	if inner.Args[0].Borrow.Lifetime != hrtbParam(0) || inner.Ret.Borrow.Lifetime != hrtbParam(1) {
		t.Fatalf("fn pointer lifetimes: %s", hir.FormatType(&fn.Args[0].Type))
	}
	want := "fn f<'elided#0>(a: &'elided#0 for<'elided#0, 'elided#1> fn(&'elided#0 u8) -> &'elided#1 u8);"
	if got := dumpLine(t, c, "fn f"); got != want {
		t.Fatalf("dump:\n got %s\nwant %s", got, want)
	}
}

func TestConstAndStaticDefaultToStatic(t *testing.T) {
	c := newCrate(
		hir.ValueItem{Name: "NAME", Kind: hir.ValueConstant, Constant: &hir.Constant{Type: hir.Ref(str)}},
		hir.ValueItem{Name: "TABLE", Kind: hir.ValueStatic, Static: &hir.Static{Type: hir.Ref(hir.SliceOf(hir.Ref(u8)))}},
		hir.ValueItem{Name: "OBJ", Kind: hir.ValueConstant, Constant: &hir.Constant{Type: hir.Named(wrapPath(), hir.Dyn(hir.TraitRef(hir.Simple("Any"))))}},
	)
	stats := mustElide(t, c, Options{})

	for _, line := range []string{
		"const NAME: &'static str;",
		"static TABLE: &'static [&'static u8];",
		"const OBJ: Wrap<'static, dyn Any + 'static>;",
	} {
		if got := dumpLine(t, c, strings.SplitN(line, ":", 2)[0]); got != line {
			t.Errorf("got %s\nwant %s", got, line)
		}
	}
	if stats.Static != 5 || stats.Synthesised != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestTraitObjectLifetimes(t *testing.T) {
	anyTrait := hir.TraitRef(hir.Simple("Any"))
	fn := freeFn(hir.Unit(), hir.Ref(hir.Dyn(anyTrait)), hir.Named(wrapPath(), hir.Dyn(anyTrait)))
	erased := freeFn(hir.Unit(), hir.Impl(anyTrait))
	c := newCrate(fnItem("f", fn), fnItem("g", erased))
	mustElide(t, c, Options{})

	if got := fn.Args[0].Type.Borrow.Inner.TraitObject.Lifetime; got != fnParam(0) {
		t.Fatalf("&dyn Any should bound the object by the borrow, got %s", got)
	}
	if got := fn.Args[1].Type.Path.Generic.Params.Types[0].TraitObject.Lifetime; !got.IsStatic() {
		t.Fatalf("dyn Any without an ambient lifetime defaults to 'static, got %s", got)
	}
	if got := erased.Args[0].Type.Erased.Lifetime; got != fnParam(0) {
		t.Fatalf("impl Any in argument position should get a fresh param, got %s", got)
	}
}

func TestPathArityNormalisation(t *testing.T) {
	short := freeFn(hir.Unit(), hir.Named(wrapPath(), u8))
	long := freeFn(hir.Unit(), hir.NamedWith(wrapPath(), []hir.LifetimeRef{hir.StaticLifetime(), hir.StaticLifetime()}, u8))
	ext := freeFn(hir.Unit(), hir.Named(hir.Simple("Opaque")))
	c := newCrate(fnItem("short", short), fnItem("long", long), fnItem("ext", ext))
	mustElide(t, c, Options{})

	if got := short.Args[0].Type.Path.Generic.Params.Lifetimes; len(got) != 1 || got[0] != fnParam(0) {
		t.Fatalf("missing lifetime argument should be synthesised, got %v", got)
	}
	if got := long.Args[0].Type.Path.Generic.Params.Lifetimes; len(got) != 1 || !got[0].IsStatic() {
		t.Fatalf("extra lifetime arguments should be dropped, got %v", got)
	}
	if got := ext.Args[0].Type.Path.Generic.Params.Lifetimes; len(got) != 0 {
		t.Fatalf("extern types take no lifetimes, got %v", got)
	}
}

func TestBadTypePositionsAreBugs(t *testing.T) {
	cases := []struct {
		name string
		ty   hir.TypeRef
		code diag.Code
	}{
		{"import", hir.Named(hir.Simple("Alias")), diag.ElideUnexpectedItem},
		{"module", hir.Named(hir.Simple("inner")), diag.ElideUnexpectedItem},
		{"unknown", hir.Named(hir.Simple("Nope")), diag.ElideUnknownPath},
		{"local", hir.RefWith(hir.LifetimeRef{State: hir.LifetimeLocal, Index: 2}, u8), diag.ElideUnexpectedBinding},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eerr, _ := mustFail(t, newCrate(fnItem("f", freeFn(hir.Unit(), tc.ty))), tc.code)
			if !eerr.Bug {
				t.Fatalf("%s should be an internal error", tc.code.ID())
			}
		})
	}
}

func TestStructFieldNeedsExplicitLifetime(t *testing.T) {
	c := newCrate()
	c.Root.TypeItems = append(c.Root.TypeItems, hir.TypeItem{
		Name: "Bad", Kind: hir.ItemStruct,
		Struct: &hir.Struct{Fields: []hir.Field{{Name: "x", Type: hir.Ref(u8)}}},
	})
	mustFail(t, c, diag.ElideUnspecifiedLifetime)
}

func TestStructFieldObjectDefaultsToStatic(t *testing.T) {
	c := newCrate()
	c.Root.TypeItems = append(c.Root.TypeItems, hir.TypeItem{
		Name: "Holder", Kind: hir.ItemStruct,
		Struct: &hir.Struct{Fields: []hir.Field{{
			Name: "x",
			Type: hir.NamedWith(wrapPath(), []hir.LifetimeRef{hir.StaticLifetime()}, hir.Dyn(hir.TraitRef(hir.Simple("Any")))),
		}}},
	})
	mustElide(t, c, Options{})
	if got := dumpLine(t, c, "struct Holder"); got != "struct Holder { x: Wrap<'static, dyn Any + 'static> }" {
		t.Fatalf("got %s", got)
	}
}

func TestInferMode(t *testing.T) {
	explicit := freeFn(hir.Ref(u8), hir.RefWith(hir.Infer(), u8))
	mustElide(t, newCrate(fnItem("f", explicit)), Options{})
	if explicit.Args[0].Type.Borrow.Lifetime != fnParam(0) || explicit.Return.Borrow.Lifetime != fnParam(0) {
		t.Fatalf("'_ should elide like an omitted lifetime")
	}

	kept := freeFn(hir.Unit(), hir.RefWith(hir.Infer(), u8))
	mustElide(t, newCrate(fnItem("f", kept)), Options{Infer: InferKeep})
	if kept.Args[0].Type.Borrow.Lifetime != hir.Infer() || len(kept.Params.Lifetimes) != 0 {
		t.Fatalf("keep mode must leave '_ alone")
	}
}

func TestParseInferMode(t *testing.T) {
	if m, err := ParseInferMode("KEEP"); err != nil || m != InferKeep {
		t.Fatalf("ParseInferMode(KEEP) = %v, %v", m, err)
	}
	if m, err := ParseInferMode(""); err != nil || m != InferElide {
		t.Fatalf("empty mode should default to elide")
	}
	if _, err := ParseInferMode("guess"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestImplHeaderUsesImplBinder(t *testing.T) {
	get := methodOn(hir.Ref(hir.SelfType()), hir.ReceiverBorrowShared, hir.Ref(u8))
	c := newCrate()
	c.TypeImpls = []hir.TypeImpl{{
		Type:    hir.Named(wrapPath(), u8),
		Methods: []hir.ImplFunction{{Name: "get", Fn: *get}},
	}}
	mustElide(t, c, Options{})

	impl := &c.TypeImpls[0]
	if len(impl.Params.Lifetimes) != 1 || !impl.Params.Lifetimes[0].Elided {
		t.Fatalf("impl should gain one elided param, got %+v", impl.Params.Lifetimes)
	}
	if got := impl.Type.Path.Generic.Params.Lifetimes[0]; got != implParam(0) {
		t.Fatalf("self type lifetime = %s", got)
	}
	if got := dumpLine(t, c, "impl"); got != "impl<'elided#0> Wrap<'elided#0, u8> {" {
		t.Fatalf("got %s", got)
	}
	if got := dumpLine(t, c, "fn get"); got != "fn get<'elided#0>(self: &'elided#0 Self) -> &'elided#0 u8;" {
		t.Fatalf("got %s", got)
	}
}

func TestTraitImplHeaderOrder(t *testing.T) {
	c := newCrate()
	c.TraitImpls = []hir.TraitImpl{{
		Trait:     hir.Simple("Cmp"),
		TraitArgs: hir.PathParams{Types: []hir.TypeRef{hir.Ref(u8)}},
		Type:      hir.Ref(hir.Named(hir.Simple("S"))),
	}}
	c.MarkerImpls = []hir.MarkerImpl{{Trait: hir.Simple("Any"), Type: hir.Named(wrapPath(), u8)}}
	mustElide(t, c, Options{})

	ti := &c.TraitImpls[0]
	if ti.Type.Borrow.Lifetime != implParam(0) || ti.TraitArgs.Types[0].Borrow.Lifetime != implParam(1) {
		t.Fatalf("self type is elided before trait arguments: %s", dumpLine(t, c, "impl<'elided#0, 'elided#1>"))
	}
	if mi := &c.MarkerImpls[0]; len(mi.Params.Lifetimes) != 1 {
		t.Fatalf("marker impl should gain a param, got %d", len(mi.Params.Lifetimes))
	}
}

func TestTraitMethodSignature(t *testing.T) {
	get := methodOn(hir.Ref(hir.SelfType()), hir.ReceiverBorrowShared, hir.Ref(u8))
	c := newCrate()
	c.Root.TypeItems = append(c.Root.TypeItems, traitDef("Get", &hir.Trait{
		Values: []hir.ValueItem{fnItem("get", get)},
	}))
	mustElide(t, c, Options{})
	if get.Return.Borrow.Lifetime != fnParam(0) {
		t.Fatalf("trait method return = %s", get.Return.Borrow.Lifetime)
	}
}

func TestIdempotent(t *testing.T) {
	build := func() *hir.Crate {
		get := methodOn(hir.Ref(hir.SelfType()), hir.ReceiverBorrowShared, hir.Ref(u8), hir.Ref(u8))
		c := newCrate(
			fnItem("f", freeFn(hir.Ref(u8), hir.Ref(hir.Named(wrapPath(), u8)))),
			fnItem("g", boundedFn(hir.FnSugar(hir.Simple("Fn"), fnOutput(hir.Ref(u8), hir.Ref(u8)), hir.Ref(u8)))),
			fnItem("h", freeFn(hir.Unit(), hir.FnPtr(hir.Ref(u8), hir.Ref(u8)))),
			hir.ValueItem{Name: "C", Kind: hir.ValueConstant, Constant: &hir.Constant{Type: hir.Ref(hir.Dyn(hir.TraitRef(hir.Simple("Any"))))}},
		)
		c.TypeImpls = []hir.TypeImpl{{Type: hir.Named(wrapPath(), u8), Methods: []hir.ImplFunction{{Name: "get", Fn: *get}}}}
		return c
	}
	c := build()
	first := mustElide(t, c, Options{})
	once := dump(t, c)
	second := mustElide(t, c, Options{})
	if diff := cmp.Diff(once, dump(t, c)); diff != "" {
		t.Fatalf("second run changed the crate (-first +second):\n%s", diff)
	}
	if first.Total() == 0 || second.Total() != 0 {
		t.Fatalf("stats: first=%+v second=%+v", first, second)
	}
}

func TestStatsAndTrace(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	c := newCrate(fnItem("f", freeFn(hir.Ref(u8), hir.Ref(u8))))
	if _, err := Elide(ctx, c, Options{}); err != nil {
		t.Fatalf("elide: %v", err)
	}

	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			names = append(names, ev.Name)
		}
	}
	if diff := cmp.Diff([]string{"elide", "fn demo::f"}, names); diff != "" {
		t.Fatalf("trace spans (-want +got):\n%s", diff)
	}
}

func TestNilReporter(t *testing.T) {
	c := newCrate(fnItem("f", freeFn(hir.Ref(u8), hir.Ref(u8), hir.Ref(u8))))
	err := Run(context.Background(), c, Options{})
	if err == nil || !strings.Contains(err.Error(), "unspecified lifetime") {
		t.Fatalf("expected error without reporter, got %v", err)
	}
}
