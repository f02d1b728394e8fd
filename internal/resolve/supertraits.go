package resolve

import (
	"fmt"

	"elide/internal/hir"
)

// EnumSupertraits calls fn for every supertrait of tr (instantiated as
// trPath), depth first, until fn returns true. Yielded paths have Self and
// the trait's type parameters substituted from trPath and carry no lifetime
// arguments.
//
// Extern traits have AllParentTraits populated and it is used as is. Local
// traits are walked through ParentTraits and `Self: Trait` bounds, each
// parent's own supertraits before the parent itself.
func (r *TraitResolve) EnumSupertraits(tr *hir.Trait, trPath *hir.GenericPath, fn func(hir.GenericPath) bool) (bool, error) {
	e := supertraitEnum{r: r, fn: fn, active: make(map[string]bool)}
	return e.walk(tr, trPath)
}

// FindSupertrait returns the first supertrait of tr matching pred.
func (r *TraitResolve) FindSupertrait(tr *hir.Trait, trPath *hir.GenericPath, pred func(*hir.GenericPath) bool) (hir.GenericPath, bool, error) {
	var found hir.GenericPath
	ok, err := r.EnumSupertraits(tr, trPath, func(m hir.GenericPath) bool {
		if pred(&m) {
			found = m
			return true
		}
		return false
	})
	return found, ok, err
}

type supertraitEnum struct {
	r      *TraitResolve
	fn     func(hir.GenericPath) bool
	active map[string]bool // traits on the current recursion path
}

func (e *supertraitEnum) walk(tr *hir.Trait, trPath *hir.GenericPath) (bool, error) {
	key := trPath.Path.String()
	if e.active[key] {
		return false, fmt.Errorf("supertrait cycle through %s", key)
	}
	e.active[key] = true
	defer delete(e.active, key)

	if len(tr.AllParentTraits) > 0 {
		for i := range tr.AllParentTraits {
			m := Monomorph(&tr.AllParentTraits[i].Path, &trPath.Params)
			if e.fn(m) {
				return true, nil
			}
		}
		return false, nil
	}

	for i := range tr.ParentTraits {
		if found, err := e.visitParent(&tr.ParentTraits[i].Path, trPath); found || err != nil {
			return found, err
		}
	}
	self := hir.SelfType()
	for i := range tr.Params.Bounds {
		b := &tr.Params.Bounds[i]
		if b.Kind != hir.BoundTrait || !hir.EqualType(&b.Type, &self) {
			continue
		}
		if b.Trait.Path.Path.Equal(trPath.Path) {
			continue
		}
		if found, err := e.visitParent(&b.Trait.Path, trPath); found || err != nil {
			return found, err
		}
	}
	return false, nil
}

func (e *supertraitEnum) visitParent(parent, trPath *hir.GenericPath) (bool, error) {
	m := Monomorph(parent, &trPath.Params)
	sub, err := e.r.LookupTrait(m.Path)
	if err != nil {
		return false, err
	}
	if found, err := e.walk(sub, &m); found || err != nil {
		return found, err
	}
	return e.fn(m), nil
}
