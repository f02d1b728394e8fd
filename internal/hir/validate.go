package hir

import (
	"fmt"
	"strings"
)

// maxProblems caps how many shape errors one Validate call collects.
const maxProblems = 20

// ValidationError lists the nodes of a crate whose payload does not match
// their Kind.
type ValidationError struct {
	Crate    string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("malformed crate %s: %s", e.Crate, strings.Join(e.Problems, "; "))
}

// Validate checks that every node carries the payload its Kind promises, so
// that passes may dereference payloads without checking. Extern crates are
// checked too since lookups walk into them.
func Validate(c *Crate) error {
	v := &validator{seen: make(map[*Crate]bool)}
	v.BaseVisitor = NewBaseVisitor(v)
	v.crate(c)
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Crate: c.Name, Problems: v.problems}
}

type validator struct {
	BaseVisitor
	seen     map[*Crate]bool
	problems []string
	item     ItemPath
}

func (v *validator) crate(c *Crate) {
	if c == nil || v.seen[c] {
		return
	}
	v.seen[c] = true
	v.WalkCrate(c)
	for name, ext := range c.ExternCrates {
		if ext == nil {
			v.report("extern crate %q is empty", name)
			continue
		}
		v.crate(ext)
	}
}

func (v *validator) report(format string, args ...any) {
	if len(v.problems) >= maxProblems {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if name := v.item.String(); name != "" {
		msg = name + ": " + msg
	}
	v.problems = append(v.problems, msg)
}

func (v *validator) VisitTypeItem(p ItemPath, ti *TypeItem) {
	v.item = p
	var ok bool
	switch ti.Kind {
	case ItemImport:
		ok = ti.Import != nil
	case ItemModule:
		ok = ti.Module != nil
	case ItemTypeAlias:
		ok = ti.TypeAlias != nil
	case ItemTraitAlias:
		ok = ti.TraitAlias != nil
	case ItemExternType:
		ok = true
	case ItemEnum:
		ok = ti.Enum != nil
	case ItemStruct:
		ok = ti.Struct != nil
	case ItemUnion:
		ok = ti.Union != nil
	case ItemTrait:
		ok = ti.Trait != nil
	default:
		v.report("unknown type item kind %d", ti.Kind)
		return
	}
	if !ok {
		v.report("%s item without payload", ti.Kind)
		return
	}
	v.WalkTypeItem(p, ti)
	if ti.Kind == ItemTrait {
		for i := range ti.Trait.AllParentTraits {
			v.VisitTraitPath(&ti.Trait.AllParentTraits[i])
		}
	}
}

func (v *validator) VisitValueItem(p ItemPath, vi *ValueItem) {
	v.item = p
	var ok bool
	switch vi.Kind {
	case ValueImport:
		ok = vi.Import != nil
	case ValueConstant:
		ok = vi.Constant != nil
	case ValueStatic:
		ok = vi.Static != nil
	case ValueFunction:
		ok = vi.Function != nil
	default:
		v.report("unknown value item kind %d", vi.Kind)
		return
	}
	if !ok {
		v.report("value item of kind %d without payload", vi.Kind)
		return
	}
	v.WalkValueItem(p, vi)
}

func (v *validator) VisitTypeImpl(impl *TypeImpl) {
	v.item = RootPath("<impl>")
	v.WalkTypeImpl(impl)
}

func (v *validator) VisitTraitImpl(impl *TraitImpl) {
	v.item = RootPath("<impl " + impl.Trait.String() + ">")
	v.WalkTraitImpl(impl)
}

func (v *validator) VisitMarkerImpl(impl *MarkerImpl) {
	v.item = RootPath("<impl " + impl.Trait.String() + ">")
	v.WalkMarkerImpl(impl)
}

func (v *validator) VisitType(ty *TypeRef) {
	var ok bool
	switch ty.Kind {
	case TypeInfer, TypeDiverge, TypePrimitive, TypeTuple:
		ok = true
	case TypeGeneric:
		ok = ty.Generic != nil
	case TypePath:
		ok = ty.Path != nil
	case TypeTraitObject:
		ok = ty.TraitObject != nil
	case TypeErased:
		ok = ty.Erased != nil
	case TypeArray:
		ok = ty.Array != nil
	case TypeSlice:
		ok = ty.Slice != nil
	case TypeBorrow:
		ok = ty.Borrow != nil
	case TypePointer:
		ok = ty.Pointer != nil
	case TypeFunction:
		ok = ty.Function != nil
	default:
		v.report("unknown type kind %d at %s", ty.Kind, ty.Span)
		return
	}
	if !ok {
		v.report("%s type without payload at %s", ty.Kind, ty.Span)
		return
	}
	if ty.Kind == TypeFunction {
		v.VisitParams(&ty.Function.HRLs)
	}
	v.WalkType(ty)
}

// VisitTraitPath also covers the parts passes read without walking them:
// HRTB parameters and the source traits of associated bounds.
func (v *validator) VisitTraitPath(tp *TraitPath) {
	if tp.HRLs != nil {
		v.VisitParams(tp.HRLs)
	}
	for i := range tp.TypeBounds {
		v.VisitGenericPath(&tp.TypeBounds[i].SourceTrait)
	}
	for i := range tp.TraitBounds {
		v.VisitGenericPath(&tp.TraitBounds[i].SourceTrait)
	}
	v.WalkTraitPath(tp)
}

func (v *validator) VisitPath(path *Path) {
	switch path.Kind {
	case PathGeneric:
	case PathUfcsInherent, PathUfcsKnown:
		if path.Type == nil {
			v.report("UFCS path to %q without a self type", path.Item)
			return
		}
	default:
		v.report("unknown path kind %d", path.Kind)
		return
	}
	v.WalkPath(path)
}
