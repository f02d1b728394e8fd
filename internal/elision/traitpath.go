package elision

import (
	"elide/internal/diag"
	"elide/internal/hir"
)

// VisitTraitPath handles call-sugar trait paths, Fn(&T) -> &U and friends.
// Such a path is a binder of its own: omitted lifetimes in the arguments
// become HRTB params, and if exactly one was created it is also the
// lifetime of the output.
func (v *elider) VisitTraitPath(tp *hir.TraitPath) {
	if !tp.ElisionRequested() {
		v.WalkTraitPath(tp)
		return
	}
	prevSp := v.at(tp.Span)
	if tp.Pending != nil {
		v.at(tp.Pending.Span)
	}
	tp.TakeElisionRequest()
	before := tp.HRLs.LifetimeCount()

	v.push(target{})
	prev := v.setBinder(binder{params: tp.HRLs, kind: hir.BinderHrtb})
	v.VisitGenericPath(&tp.Path)
	v.setBinder(prev)

	trait, err := v.resolve.LookupTrait(tp.Path.Path)
	if err != nil {
		v.fail(diag.ElideUnknownPath, v.sp, "%v", err)
	}
	for i := range tp.TypeBounds {
		v.fixSourceTrait(trait, tp, &tp.TypeBounds[i].SourceTrait)
	}
	for i := range tp.TraitBounds {
		v.fixSourceTrait(trait, tp, &tp.TraitBounds[i].SourceTrait)
	}

	if tp.HRLs.LifetimeCount() == before+1 {
		v.pop()
		v.push(targetOf(hir.Param(hir.BinderHrtb, before)))
	}
	v.WalkTraitPath(tp)
	v.pop()
	v.sp = prevSp
}

// fixSourceTrait points an associated bound at the trait that declares the
// associated item: the path itself, or one of its supertraits instantiated
// for this path. A supertrait match comes from resolve.Monomorph and carries
// no lifetime arguments, so consumers see a lifetime-less source path there.
func (v *elider) fixSourceTrait(trait *hir.Trait, tp *hir.TraitPath, src *hir.GenericPath) {
	if hir.EqualGenericPath(src, &tp.Path) {
		*src = tp.Path.Clone()
		return
	}
	found, ok, err := v.resolve.FindSupertrait(trait, &tp.Path, func(gp *hir.GenericPath) bool {
		return hir.EqualGenericPath(gp, src)
	})
	if err != nil {
		v.fail(diag.ElideUnknownPath, v.sp, "%v", err)
	}
	if !ok {
		v.fail(diag.ElideSupertraitNotFound, v.sp, "failed to find %s in parent trait list of %s",
			hir.FormatGenericPath(src), hir.FormatGenericPath(&tp.Path))
	}
	*src = found
}
