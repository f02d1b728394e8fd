package elision

import (
	"elide/internal/diag"
	"elide/internal/hir"
)

func (v *elider) VisitType(ty *hir.TypeRef) {
	prevSp := v.at(ty.Span)

	if ty.Kind == hir.TypeBorrow {
		v.visitLifetime(&ty.Borrow.Lifetime)
		v.push(targetOf(ty.Borrow.Lifetime))
	}

	// A fn pointer is its own binder: elided lifetimes in it become HRTB
	// params and nothing from outside reaches in.
	var prev binder
	if ty.Kind == hir.TypeFunction {
		v.push(target{})
		prev = v.setBinder(binder{params: &ty.Function.HRLs, kind: hir.BinderHrtb})
	}

	if ty.Kind == hir.TypePath && ty.Path.Kind == hir.PathGeneric {
		v.normalizeArity(&ty.Path.Generic)
	}

	v.WalkType(ty)

	if ty.Kind == hir.TypeFunction {
		v.setBinder(prev)
		v.pop()
	}
	if ty.Kind == hir.TypeBorrow {
		v.pop()
	}

	switch ty.Kind {
	case hir.TypeTraitObject:
		v.withObjectDefault(true, func() { v.visitLifetime(&ty.TraitObject.Lifetime) })
	case hir.TypeErased:
		v.withObjectDefault(false, func() { v.visitLifetime(&ty.Erased.Lifetime) })
	}

	v.sp = prevSp
}

// withObjectDefault runs fn with 'static as the ambient target when nothing
// else is active: always for trait objects, and for erased types only when
// there is no binder to synthesise into.
func (v *elider) withObjectDefault(object bool, fn func()) {
	if _, ok := v.top(); ok || (v.cur.params != nil && !object) {
		fn()
		return
	}
	v.push(targetOf(hir.StaticLifetime()))
	fn()
	v.pop()
}

// normalizeArity gives the path exactly as many lifetime arguments as the
// named item declares. Missing ones become unknown and are elided by the
// following walk.
func (v *elider) normalizeArity(gp *hir.GenericPath) {
	ti, err := v.resolve.LookupTypeItem(gp.Path)
	if err != nil {
		v.fail(diag.ElideUnknownPath, v.sp, "%v", err)
	}
	switch ti.Kind {
	case hir.ItemImport:
		v.fail(diag.ElideUnexpectedItem, v.sp, "path %s resolved to an import", gp.Path)
	case hir.ItemModule:
		v.fail(diag.ElideUnexpectedItem, v.sp, "path %s resolved to a module", gp.Path)
	case hir.ItemExternType:
		// no generics
	default:
		gp.Params.ResizeLifetimes(int(ti.Params().LifetimeCount()))
	}
}
