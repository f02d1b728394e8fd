package elision

import (
	"context"
	"errors"
	"strings"
	"testing"

	"elide/internal/diag"
	"elide/internal/hir"
	"elide/internal/testkit"
)

var (
	u8  = hir.Prim("u8")
	str = hir.Prim("str")
)

func wrapPath() hir.SimplePath { return hir.Simple("Wrap") }

func traitDef(name string, tr *hir.Trait) hir.TypeItem {
	return hir.TypeItem{Name: name, Kind: hir.ItemTrait, Trait: tr}
}

func oneTypeParam(name string) hir.GenericParams {
	return hir.GenericParams{Types: []hir.TypeParamDef{{Name: name}}}
}

// newCrate builds:
//
//	struct Wrap<'a, T> { v: &'a T }
//	struct S {}
//	extern type Opaque;
//	use Wrap as Alias;
//	mod inner {}
//	trait FnOnce<Args> { type Output; }
//	trait FnMut<Args>: FnOnce<Args> {}
//	trait Fn<Args>: FnMut<Args> {}
//	trait Any {}
//	trait Cmp<T> {}
//
// plus the given value items.
func newCrate(values ...hir.ValueItem) *hir.Crate {
	args := hir.Generic("Args", 0)
	wrap := &hir.Struct{
		Params: hir.GenericParams{
			Lifetimes: []hir.LifetimeDef{{Name: "a"}},
			Types:     []hir.TypeParamDef{{Name: "T"}},
		},
		Fields: []hir.Field{{Name: "v", Type: hir.RefWith(hir.Param(hir.BinderImpl, 0), hir.Generic("T", 0))}},
	}
	alias := wrapPath()
	return &hir.Crate{
		Name: "demo",
		Root: hir.Module{
			TypeItems: []hir.TypeItem{
				{Name: "Wrap", Kind: hir.ItemStruct, Struct: wrap},
				{Name: "S", Kind: hir.ItemStruct, Struct: &hir.Struct{}},
				{Name: "Opaque", Kind: hir.ItemExternType},
				{Name: "Alias", Kind: hir.ItemImport, Import: &alias},
				{Name: "inner", Kind: hir.ItemModule, Module: &hir.Module{}},
				traitDef("FnOnce", &hir.Trait{
					Params: oneTypeParam("Args"),
					Types:  []hir.AssocType{{Name: "Output"}},
				}),
				traitDef("FnMut", &hir.Trait{
					Params:       oneTypeParam("Args"),
					ParentTraits: []hir.TraitPath{hir.TraitRef(hir.Simple("FnOnce"), args)},
				}),
				traitDef("Fn", &hir.Trait{
					Params:       oneTypeParam("Args"),
					ParentTraits: []hir.TraitPath{hir.TraitRef(hir.Simple("FnMut"), args)},
				}),
				traitDef("Any", &hir.Trait{}),
				traitDef("Cmp", &hir.Trait{Params: oneTypeParam("T")}),
			},
			ValueItems: values,
		},
	}
}

func fnItem(name string, fn *hir.Function) hir.ValueItem {
	return hir.ValueItem{Name: name, Kind: hir.ValueFunction, Function: fn}
}

func freeFn(ret hir.TypeRef, args ...hir.TypeRef) *hir.Function {
	fn := &hir.Function{Return: ret}
	for i, a := range args {
		fn.Args = append(fn.Args, hir.Arg{Name: string(rune('a' + i)), Type: a})
	}
	return fn
}

// fnOutput is the Output = ret binding lowering attaches to Fn(args) -> ret,
// sourced from FnOnce<(args,)>.
func fnOutput(ret hir.TypeRef, args ...hir.TypeRef) *hir.AssocTypeBound {
	cp := make([]hir.TypeRef, len(args))
	for i := range args {
		cp[i] = args[i].Clone()
	}
	return &hir.AssocTypeBound{
		Name:        "Output",
		SourceTrait: hir.GenericPath{Path: hir.Simple("FnOnce"), Params: hir.PathParams{Types: []hir.TypeRef{hir.TupleOf(cp...)}}},
		Type:        ret,
	}
}

// boundedFn is fn f<F: bound>(g: F).
func boundedFn(bound hir.TraitPath) *hir.Function {
	return &hir.Function{
		Params: hir.GenericParams{
			Types:  []hir.TypeParamDef{{Name: "F"}},
			Bounds: []hir.GenericBound{{Kind: hir.BoundTrait, Type: hir.Generic("F", 256), Trait: bound}},
		},
		Args: []hir.Arg{{Name: "g", Type: hir.Generic("F", 256)}},
	}
}

func mustElide(t *testing.T, c *hir.Crate, opts Options) Stats {
	t.Helper()
	bag := diag.NewBag(16)
	opts.Reporter = diag.BagReporter{Bag: bag}
	stats, err := Elide(context.Background(), c, opts)
	if err != nil {
		t.Fatalf("elide failed: %v", err)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diag.FormatShortDiagnostics(bag.Items(), nil, true))
	}
	if cerr := testkit.CheckLifetimes(c, testkit.LifetimeCheck{AllowInfer: opts.Infer == InferKeep}); cerr != nil {
		t.Fatalf("invariants violated after elision:\n%v", cerr)
	}
	return stats
}

func mustFail(t *testing.T, c *hir.Crate, code diag.Code) (*Error, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(16)
	_, err := Elide(context.Background(), c, Options{Reporter: diag.BagReporter{Bag: bag}})
	if err == nil {
		t.Fatalf("expected %s, elision succeeded", code.ID())
	}
	var eerr *Error
	if !errors.As(err, &eerr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if eerr.Code != code {
		t.Fatalf("expected %s, got %s (%s)", code.ID(), eerr.Code.ID(), eerr.Msg)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
	return eerr, bag
}

func dump(t *testing.T, c *hir.Crate) string {
	t.Helper()
	var sb strings.Builder
	if err := hir.Dump(&sb, c, hir.DumpOptions{}); err != nil {
		t.Fatalf("dump: %v", err)
	}
	return sb.String()
}

// dumpLine returns the dump line starting with prefix (after indentation).
func dumpLine(t *testing.T, c *hir.Crate, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(dump(t, c), "\n") {
		if s := strings.TrimSpace(line); strings.HasPrefix(s, prefix) {
			return s
		}
	}
	t.Fatalf("no line starting with %q in:\n%s", prefix, dump(t, c))
	return ""
}

func fnParam(i uint32) hir.LifetimeRef  { return hir.Param(hir.BinderFunction, i) }
func implParam(i uint32) hir.LifetimeRef { return hir.Param(hir.BinderImpl, i) }
func hrtbParam(i uint32) hir.LifetimeRef { return hir.Param(hir.BinderHrtb, i) }
