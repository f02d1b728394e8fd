package hir

// Structural equality that ignores lifetimes. Trait-path source rewriting
// compares supertrait paths this way because supertrait enumeration strips
// lifetime arguments.

// EqualGenericPath compares path and type arguments, ignoring lifetimes.
func EqualGenericPath(a, b *GenericPath) bool {
	return a.Path.Equal(b.Path) && equalTypes(a.Params.Types, b.Params.Types)
}

// EqualType compares two types, ignoring lifetimes.
func EqualType(a, b *TypeRef) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TypeInfer, TypeDiverge:
		return true
	case TypePrimitive:
		return a.Name == b.Name
	case TypeGeneric:
		return a.Generic.Binding == b.Generic.Binding && a.Generic.Name == b.Generic.Name
	case TypePath:
		return equalPath(a.Path, b.Path)
	case TypeTraitObject:
		x, y := a.TraitObject, b.TraitObject
		if !equalTraitPath(&x.Trait, &y.Trait) || len(x.Markers) != len(y.Markers) {
			return false
		}
		for i := range x.Markers {
			if !EqualGenericPath(&x.Markers[i], &y.Markers[i]) {
				return false
			}
		}
		return true
	case TypeErased:
		if len(a.Erased.Traits) != len(b.Erased.Traits) {
			return false
		}
		for i := range a.Erased.Traits {
			if !equalTraitPath(&a.Erased.Traits[i], &b.Erased.Traits[i]) {
				return false
			}
		}
		return true
	case TypeArray:
		return a.Array.Size == b.Array.Size && EqualType(&a.Array.Inner, &b.Array.Inner)
	case TypeSlice:
		return EqualType(a.Slice, b.Slice)
	case TypeTuple:
		return equalTypes(a.Tuple, b.Tuple)
	case TypeBorrow:
		return a.Borrow.Kind == b.Borrow.Kind && EqualType(&a.Borrow.Inner, &b.Borrow.Inner)
	case TypePointer:
		return a.Pointer.Mutable == b.Pointer.Mutable && EqualType(&a.Pointer.Inner, &b.Pointer.Inner)
	case TypeFunction:
		x, y := a.Function, b.Function
		return x.Unsafe == y.Unsafe && x.ABI == y.ABI && equalTypes(x.Args, y.Args) && EqualType(&x.Ret, &y.Ret)
	}
	return false
}

func equalTypes(a, b []TypeRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualType(&a[i], &b[i]) {
			return false
		}
	}
	return true
}

func equalPath(a, b *Path) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case PathGeneric:
		return EqualGenericPath(&a.Generic, &b.Generic)
	case PathUfcsInherent:
		return a.Item == b.Item && EqualType(a.Type, b.Type) && equalTypes(a.Params.Types, b.Params.Types)
	case PathUfcsKnown:
		return a.Item == b.Item && EqualType(a.Type, b.Type) && EqualGenericPath(&a.Trait, &b.Trait) &&
			equalTypes(a.Params.Types, b.Params.Types)
	}
	return false
}

func equalTraitPath(a, b *TraitPath) bool {
	if !EqualGenericPath(&a.Path, &b.Path) || len(a.TypeBounds) != len(b.TypeBounds) {
		return false
	}
	for i := range a.TypeBounds {
		if a.TypeBounds[i].Name != b.TypeBounds[i].Name || !EqualType(&a.TypeBounds[i].Type, &b.TypeBounds[i].Type) {
			return false
		}
	}
	return true
}
