package elision

import (
	"elide/internal/hir"
	"elide/internal/source"
	"elide/internal/trace"
)

// enter records the item being processed for diagnostics and opens its
// trace span. The returned func closes both.
func (v *elider) enter(scope trace.Scope, name string, sp source.Span) func() {
	prevItem, prevSpan, prevSp := v.item, v.itemSpan, v.sp
	v.item, v.itemSpan, v.sp = name, sp, sp
	v.stats.Items++
	span := trace.Begin(v.tracer, scope, name, v.parent)
	return func() {
		span.End("")
		v.item, v.itemSpan, v.sp = prevItem, prevSpan, prevSp
	}
}

// implPrologue elides the impl header. Lifetimes omitted in the self type
// or trait arguments become impl-level params.
func (v *elider) implPrologue(params *hir.GenericParams, self *hir.TypeRef, traitArgs *hir.PathParams) {
	prev := v.setBinder(binder{params: params, kind: hir.BinderImpl})
	v.VisitType(self)
	if traitArgs != nil {
		v.VisitPathParams(traitArgs)
	}
	v.setBinder(prev)
}

func (v *elider) VisitTypeImpl(impl *hir.TypeImpl) {
	done := v.enter(trace.ScopeItem, "impl "+hir.FormatType(&impl.Type), impl.Span)
	defer done()
	v.implPrologue(&impl.Params, &impl.Type, nil)
	v.WalkTypeImpl(impl)
}

func (v *elider) VisitTraitImpl(impl *hir.TraitImpl) {
	done := v.enter(trace.ScopeItem, "impl "+impl.Trait.String()+" for "+hir.FormatType(&impl.Type), impl.Span)
	defer done()
	v.implPrologue(&impl.Params, &impl.Type, &impl.TraitArgs)
	v.WalkTraitImpl(impl)
}

func (v *elider) VisitMarkerImpl(impl *hir.MarkerImpl) {
	done := v.enter(trace.ScopeItem, "impl "+impl.Trait.String()+" for "+hir.FormatType(&impl.Type), impl.Span)
	defer done()
	v.implPrologue(&impl.Params, &impl.Type, &impl.TraitArgs)
	v.WalkMarkerImpl(impl)
}

func (v *elider) VisitConstant(p hir.ItemPath, c *hir.Constant) {
	done := v.enter(trace.ScopeItem, "const "+p.String(), c.Span)
	defer done()
	v.push(targetOf(hir.StaticLifetime()))
	v.VisitType(&c.Type)
	v.pop()
	v.WalkConstant(p, c)
}

func (v *elider) VisitStatic(p hir.ItemPath, s *hir.Static) {
	done := v.enter(trace.ScopeItem, "static "+p.String(), s.Span)
	defer done()
	v.push(targetOf(hir.StaticLifetime()))
	v.VisitType(&s.Type)
	v.pop()
	v.WalkStatic(p, s)
}

// VisitFunction elides a signature. Omitted lifetimes in the arguments each
// get a fresh function param. The return type borrows from &self if self's
// lifetime was elided, otherwise from the only elided input lifetime.
func (v *elider) VisitFunction(p hir.ItemPath, fn *hir.Function) {
	done := v.enter(trace.ScopeItem, "fn "+p.String(), fn.Span)
	defer done()

	v.VisitParams(&fn.Params)
	firstElided := fn.Params.LifetimeCount()

	v.expectEmptyStack("before the arguments")
	prev := v.setBinder(binder{params: &fn.Params, kind: hir.BinderFunction})
	for i := range fn.Args {
		v.VisitType(&fn.Args[i].Type)
	}
	v.setBinder(prev)

	out, ok := outputLifetime(fn, firstElided)
	if ok {
		v.push(targetOf(out))
	}
	v.VisitType(&fn.Return)
	if ok {
		v.pop()
	}
	v.expectEmptyStack("after the return type")

	v.WalkFunction(p, fn)
}

func outputLifetime(fn *hir.Function, firstElided uint32) (hir.LifetimeRef, bool) {
	if fn.HasReceiver() && fn.Args[0].Type.Kind == hir.TypeBorrow {
		l := fn.Args[0].Type.Borrow.Lifetime
		if l.IsParam() && l.Binder == hir.BinderFunction && l.Index >= firstElided {
			return l, true
		}
	}
	if fn.Params.LifetimeCount() == firstElided+1 {
		return hir.Param(hir.BinderFunction, firstElided), true
	}
	return hir.LifetimeRef{}, false
}
