package testkit

import (
	"strings"
	"testing"

	"elide/internal/hir"
	"elide/internal/source"
)

func fnCrate(fn *hir.Function) *hir.Crate {
	return &hir.Crate{Name: "demo", Root: hir.Module{ValueItems: []hir.ValueItem{
		{Name: "f", Kind: hir.ValueFunction, Function: fn},
	}}}
}

func TestCheckAcceptsBoundLifetimes(t *testing.T) {
	fn := &hir.Function{
		Params: hir.GenericParams{Lifetimes: []hir.LifetimeDef{{Name: "a"}}},
		Args: []hir.Arg{
			{Name: "x", Type: hir.RefWith(hir.Param(hir.BinderFunction, 0), hir.Prim("u8"))},
			{Name: "s", Type: hir.RefWith(hir.StaticLifetime(), hir.Prim("str"))},
		},
	}
	if err := CheckLifetimeInvariants(fnCrate(fn)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckRejectsUnknownAndDangling(t *testing.T) {
	fn := &hir.Function{
		Args: []hir.Arg{
			{Name: "x", Type: hir.Ref(hir.Prim("u8"))},
			{Name: "y", Type: hir.RefWith(hir.Param(hir.BinderFunction, 4), hir.Prim("u8"))},
			{Name: "z", Type: hir.RefWith(hir.Param(hir.BinderImpl, 0), hir.Prim("u8"))},
		},
	}
	err := CheckLifetimeInvariants(fnCrate(fn))
	if err == nil {
		t.Fatalf("expected errors")
	}
	msg := err.Error()
	for _, want := range []string{"unresolved lifetime", "binder declares only 0", "no impl binder in scope"} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing %q in:\n%s", want, msg)
		}
	}
}

func TestCheckHrtbScopes(t *testing.T) {
	ptr := hir.FnPtr(hir.Unit(), hir.RefWith(hir.Param(hir.BinderHrtb, 0), hir.Prim("u8")))
	ptr.Function.HRLs.AddElidedLifetime(source.NoSpan)
	fn := &hir.Function{Args: []hir.Arg{{Name: "g", Type: ptr}}}
	if err := CheckLifetimeInvariants(fnCrate(fn)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outside := &hir.Function{Args: []hir.Arg{{Name: "x", Type: hir.RefWith(hir.Param(hir.BinderHrtb, 0), hir.Prim("u8"))}}}
	if err := CheckLifetimeInvariants(fnCrate(outside)); err == nil {
		t.Fatalf("HRTB lifetime outside its binder should fail")
	}
}

func TestCheckInferAndPending(t *testing.T) {
	fn := &hir.Function{Args: []hir.Arg{{Name: "x", Type: hir.RefWith(hir.Infer(), hir.Prim("u8"))}}}
	if err := CheckLifetimeInvariants(fnCrate(fn)); err == nil {
		t.Fatalf("'_ should be rejected by default")
	}
	if err := CheckLifetimes(fnCrate(fn), LifetimeCheck{AllowInfer: true}); err != nil {
		t.Fatalf("'_ should pass with AllowInfer: %v", err)
	}

	bound := &hir.Function{Params: hir.GenericParams{
		Types: []hir.TypeParamDef{{Name: "F"}},
		Bounds: []hir.GenericBound{{
			Kind:  hir.BoundTrait,
			Type:  hir.Generic("F", 256),
			Trait: hir.FnSugar(hir.Simple("Fn"), nil),
		}},
	}}
	err := CheckLifetimeInvariants(fnCrate(bound))
	if err == nil || !strings.Contains(err.Error(), "still requests elision") {
		t.Fatalf("expected pending marker error, got %v", err)
	}
}
