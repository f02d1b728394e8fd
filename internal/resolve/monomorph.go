package resolve

import (
	"elide/internal/hir"
)

// Monomorph instantiates a path written inside a trait declaration with the
// arguments of a concrete use of that trait. Trait-level type parameters
// (binding level 0) are replaced by params.Types; Self is kept. Lifetime
// arguments of the result are dropped.
func Monomorph(gp *hir.GenericPath, params *hir.PathParams) hir.GenericPath {
	out := gp.Clone()
	out.Params.Lifetimes = nil
	s := &substituter{params: params}
	s.BaseVisitor = hir.NewBaseVisitor(s)
	s.VisitGenericPath(&out)
	return out
}

type substituter struct {
	hir.BaseVisitor
	params *hir.PathParams
}

func (s *substituter) VisitType(ty *hir.TypeRef) {
	if ty.Kind == hir.TypeGeneric {
		b := ty.Generic.Binding
		if b != hir.GenericSelf && b < 256 && int(b) < len(s.params.Types) {
			*ty = s.params.Types[b].Clone()
		}
		return
	}
	s.WalkType(ty)
}
