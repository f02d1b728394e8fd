package resolve

import (
	"fmt"

	"elide/internal/hir"
)

// LookupError reports a path that does not name a usable item.
type LookupError struct {
	Path   hir.SimplePath
	Reason string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("cannot resolve %s: %s", e.Path, e.Reason)
}

// TraitResolve answers item queries against one crate and its dependencies.
type TraitResolve struct {
	crate *hir.Crate
}

// New builds a resolver for crate.
func New(crate *hir.Crate) *TraitResolve {
	return &TraitResolve{crate: crate}
}

// Crate returns the crate being resolved against.
func (r *TraitResolve) Crate() *hir.Crate {
	return r.crate
}

func (r *TraitResolve) crateFor(path hir.SimplePath) (*hir.Crate, error) {
	if path.Crate == "" || path.Crate == r.crate.Name {
		return r.crate, nil
	}
	if c := findExtern(r.crate, path.Crate, 0); c != nil {
		return c, nil
	}
	return nil, &LookupError{Path: path, Reason: fmt.Sprintf("unknown crate %q", path.Crate)}
}

const maxExternDepth = 16

func findExtern(c *hir.Crate, name string, depth int) *hir.Crate {
	if depth > maxExternDepth {
		return nil
	}
	if ext, ok := c.ExternCrates[name]; ok {
		return ext
	}
	for _, ext := range c.ExternCrates {
		if found := findExtern(ext, name, depth+1); found != nil {
			return found
		}
	}
	return nil
}

// LookupTypeItem resolves path to its type-namespace item. The item itself
// is returned as declared: callers decide whether an import or module is
// acceptable at that position.
func (r *TraitResolve) LookupTypeItem(path hir.SimplePath) (*hir.TypeItem, error) {
	if len(path.Components) == 0 {
		return nil, &LookupError{Path: path, Reason: "empty path"}
	}
	crate, err := r.crateFor(path)
	if err != nil {
		return nil, err
	}
	mod := &crate.Root
	for i, name := range path.Components[:len(path.Components)-1] {
		ti := mod.FindType(name)
		if ti == nil {
			return nil, &LookupError{Path: path, Reason: fmt.Sprintf("no module %q", name)}
		}
		switch ti.Kind {
		case hir.ItemModule:
			mod = ti.Module
		case hir.ItemTrait, hir.ItemEnum:
			// Trait::Item and Enum::Variant have no type-namespace children here
			return nil, &LookupError{Path: path, Reason: fmt.Sprintf("%s %q has no nested type items", ti.Kind, name)}
		default:
			return nil, &LookupError{Path: path, Reason: fmt.Sprintf("component %d (%q) is a %s, not a module", i, name, ti.Kind)}
		}
	}
	ti := mod.FindType(path.Last())
	if ti == nil {
		return nil, &LookupError{Path: path, Reason: "no such item"}
	}
	return ti, nil
}

// LookupTrait resolves path to a trait declaration.
func (r *TraitResolve) LookupTrait(path hir.SimplePath) (*hir.Trait, error) {
	ti, err := r.LookupTypeItem(path)
	if err != nil {
		return nil, err
	}
	if ti.Kind != hir.ItemTrait {
		return nil, &LookupError{Path: path, Reason: fmt.Sprintf("expected trait, found %s", ti.Kind)}
	}
	return ti.Trait, nil
}
