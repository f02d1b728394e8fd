package testkit

import (
	"errors"
	"fmt"

	"elide/internal/hir"
)

// LifetimeCheck tunes CheckLifetimes.
type LifetimeCheck struct {
	// AllowInfer accepts '_ left behind by the keep infer mode.
	AllowInfer bool
	// MaxErrors stops collecting after this many problems (0 = 32).
	MaxErrors int
}

// CheckLifetimeInvariants verifies a crate after elision:
// 1) no lifetime is unknown or '_
// 2) every bound lifetime names an existing slot of the innermost binder of
// its kind that is in scope where it occurs
// 3) no call-sugar trait path still carries an elision request
// 4) no body-local lifetime appears in a signature
func CheckLifetimeInvariants(c *hir.Crate) error {
	return CheckLifetimes(c, LifetimeCheck{})
}

// CheckLifetimes is CheckLifetimeInvariants with options.
func CheckLifetimes(c *hir.Crate, opts LifetimeCheck) error {
	if c == nil {
		return fmt.Errorf("nil crate")
	}
	if opts.MaxErrors <= 0 {
		opts.MaxErrors = 32
	}
	ch := &checker{opts: opts, item: c.Name}
	ch.BaseVisitor = hir.NewBaseVisitor(ch)
	ch.WalkCrate(c)
	return errors.Join(ch.errs...)
}

type checker struct {
	hir.BaseVisitor
	opts LifetimeCheck
	// scopes[binder] is the stack of parameter lists of that kind in scope.
	scopes [4][]*hir.GenericParams
	item   string
	errs   []error
}

func (c *checker) errorf(format string, args ...any) {
	if len(c.errs) >= c.opts.MaxErrors {
		return
	}
	c.errs = append(c.errs, fmt.Errorf("%s: %s", c.item, fmt.Sprintf(format, args...)))
}

func (c *checker) within(kind hir.BinderKind, gp *hir.GenericParams, fn func()) {
	c.scopes[kind] = append(c.scopes[kind], gp)
	fn()
	c.scopes[kind] = c.scopes[kind][:len(c.scopes[kind])-1]
}

func (c *checker) named(name string, fn func()) {
	prev := c.item
	c.item = name
	fn()
	c.item = prev
}

func (c *checker) lifetime(where string, l hir.LifetimeRef) {
	switch l.State {
	case hir.LifetimeStatic:
	case hir.LifetimeUnknown:
		c.errorf("unresolved lifetime in %s", where)
	case hir.LifetimeInfer:
		if !c.opts.AllowInfer {
			c.errorf("'_ left in %s", where)
		}
	case hir.LifetimeLocal:
		c.errorf("body-local lifetime %s in %s", l, where)
	case hir.LifetimeParam:
		if !l.Binder.Valid() {
			c.errorf("lifetime %s in %s has an unknown binder", l, where)
			return
		}
		s := c.scopes[l.Binder]
		if len(s) == 0 {
			c.errorf("lifetime %s in %s: no %s binder in scope", l, where, l.Binder)
			return
		}
		if n := s[len(s)-1].LifetimeCount(); l.Index >= n {
			c.errorf("lifetime %s in %s: binder declares only %d lifetime(s)", l, where, n)
		}
	default:
		c.errorf("lifetime in %s has invalid state %s", where, l.State)
	}
}

func (c *checker) VisitTypeItem(p hir.ItemPath, ti *hir.TypeItem) {
	c.named(p.String(), func() {
		if gp := ti.Params(); gp != nil {
			c.within(hir.BinderImpl, gp, func() { c.WalkTypeItem(p, ti) })
			return
		}
		c.WalkTypeItem(p, ti)
	})
}

func (c *checker) VisitTypeImpl(impl *hir.TypeImpl) {
	c.named("impl "+hir.FormatType(&impl.Type), func() {
		c.within(hir.BinderImpl, &impl.Params, func() { c.WalkTypeImpl(impl) })
	})
}

func (c *checker) VisitTraitImpl(impl *hir.TraitImpl) {
	c.named("impl "+impl.Trait.String(), func() {
		c.within(hir.BinderImpl, &impl.Params, func() { c.WalkTraitImpl(impl) })
	})
}

func (c *checker) VisitMarkerImpl(impl *hir.MarkerImpl) {
	c.named("impl "+impl.Trait.String(), func() {
		c.within(hir.BinderImpl, &impl.Params, func() { c.WalkMarkerImpl(impl) })
	})
}

func (c *checker) VisitFunction(p hir.ItemPath, fn *hir.Function) {
	c.named(p.String(), func() {
		c.within(hir.BinderFunction, &fn.Params, func() { c.WalkFunction(p, fn) })
	})
}

func (c *checker) VisitConstant(p hir.ItemPath, k *hir.Constant) {
	c.named(p.String(), func() {
		c.within(hir.BinderFunction, &k.Params, func() { c.WalkConstant(p, k) })
	})
}

func (c *checker) VisitParams(gp *hir.GenericParams) {
	for i := range gp.Bounds {
		b := &gp.Bounds[i]
		switch b.Kind {
		case hir.BoundLifetime:
			c.lifetime("lifetime bound", b.Lifetime)
			c.lifetime("lifetime bound", b.ValidFor)
		case hir.BoundTypeLifetime:
			c.lifetime("type bound", b.Lifetime)
		}
	}
	c.WalkParams(gp)
}

func (c *checker) VisitType(ty *hir.TypeRef) {
	switch ty.Kind {
	case hir.TypeBorrow:
		c.lifetime(hir.FormatType(ty), ty.Borrow.Lifetime)
	case hir.TypeTraitObject:
		c.lifetime(hir.FormatType(ty), ty.TraitObject.Lifetime)
	case hir.TypeErased:
		c.lifetime(hir.FormatType(ty), ty.Erased.Lifetime)
	case hir.TypeFunction:
		c.within(hir.BinderHrtb, &ty.Function.HRLs, func() { c.WalkType(ty) })
		return
	}
	c.WalkType(ty)
}

func (c *checker) VisitPathParams(pp *hir.PathParams) {
	for _, l := range pp.Lifetimes {
		c.lifetime("path arguments", l)
	}
	c.WalkPathParams(pp)
}

func (c *checker) VisitTraitPath(tp *hir.TraitPath) {
	if tp.ElisionRequested() {
		c.errorf("trait path %s still requests elision", hir.FormatTraitPath(tp))
	}
	body := func() {
		c.WalkTraitPath(tp)
		for i := range tp.TypeBounds {
			c.VisitGenericPath(&tp.TypeBounds[i].SourceTrait)
		}
		for i := range tp.TraitBounds {
			c.VisitGenericPath(&tp.TraitBounds[i].SourceTrait)
		}
	}
	if tp.HRLs != nil {
		c.within(hir.BinderHrtb, tp.HRLs, body)
		return
	}
	body()
}
