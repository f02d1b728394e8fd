package hir

// Deep copies. TypeRef payloads are pointers, so plain assignment shares
// subtrees; anything that is later mutated independently must be cloned.

// Clone returns a deep copy of the type.
func (t *TypeRef) Clone() TypeRef {
	out := *t
	switch t.Kind {
	case TypeGeneric:
		g := *t.Generic
		out.Generic = &g
	case TypePath:
		out.Path = t.Path.Clone()
	case TypeTraitObject:
		out.TraitObject = &TraitObjectType{
			Trait:    t.TraitObject.Trait.Clone(),
			Markers:  cloneGenericPaths(t.TraitObject.Markers),
			Lifetime: t.TraitObject.Lifetime,
		}
	case TypeErased:
		out.Erased = &ErasedType{Traits: cloneTraitPaths(t.Erased.Traits), Lifetime: t.Erased.Lifetime}
	case TypeArray:
		out.Array = &ArrayType{Inner: t.Array.Inner.Clone(), Size: t.Array.Size}
	case TypeSlice:
		inner := t.Slice.Clone()
		out.Slice = &inner
	case TypeTuple:
		out.Tuple = cloneTypes(t.Tuple)
	case TypeBorrow:
		out.Borrow = &BorrowType{Kind: t.Borrow.Kind, Lifetime: t.Borrow.Lifetime, Inner: t.Borrow.Inner.Clone()}
	case TypePointer:
		out.Pointer = &PointerType{Mutable: t.Pointer.Mutable, Inner: t.Pointer.Inner.Clone()}
	case TypeFunction:
		out.Function = &FunctionType{
			HRLs:   t.Function.HRLs.Clone(),
			Unsafe: t.Function.Unsafe,
			ABI:    t.Function.ABI,
			Args:   cloneTypes(t.Function.Args),
			Ret:    t.Function.Ret.Clone(),
		}
	}
	return out
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	out := &Path{Kind: p.Kind, Item: p.Item}
	switch p.Kind {
	case PathGeneric:
		out.Generic = p.Generic.Clone()
	case PathUfcsInherent, PathUfcsKnown:
		ty := p.Type.Clone()
		out.Type = &ty
		out.Trait = p.Trait.Clone()
		out.Params = p.Params.Clone()
	}
	return out
}

// Clone returns a deep copy of the arguments.
func (pp *PathParams) Clone() PathParams {
	var out PathParams
	if pp.Lifetimes != nil {
		out.Lifetimes = append([]LifetimeRef(nil), pp.Lifetimes...)
	}
	out.Types = cloneTypes(pp.Types)
	return out
}

// Clone returns a deep copy of the generic path.
func (gp *GenericPath) Clone() GenericPath {
	return GenericPath{
		Path:   SimplePath{Crate: gp.Path.Crate, Components: append([]string(nil), gp.Path.Components...)},
		Params: gp.Params.Clone(),
	}
}

// Clone returns a deep copy of the trait path.
func (tp *TraitPath) Clone() TraitPath {
	out := TraitPath{Path: tp.Path.Clone(), Span: tp.Span}
	if tp.HRLs != nil {
		h := tp.HRLs.Clone()
		out.HRLs = &h
	}
	if tp.Pending != nil {
		pending := *tp.Pending
		out.Pending = &pending
	}
	for _, b := range tp.TypeBounds {
		out.TypeBounds = append(out.TypeBounds, AssocTypeBound{Name: b.Name, SourceTrait: b.SourceTrait.Clone(), Type: b.Type.Clone()})
	}
	for _, b := range tp.TraitBounds {
		out.TraitBounds = append(out.TraitBounds, AssocTraitBound{Name: b.Name, SourceTrait: b.SourceTrait.Clone(), Traits: cloneTraitPaths(b.Traits)})
	}
	return out
}

// Clone returns a deep copy of the parameter list.
func (gp *GenericParams) Clone() GenericParams {
	out := GenericParams{}
	if gp.Lifetimes != nil {
		out.Lifetimes = append([]LifetimeDef(nil), gp.Lifetimes...)
	}
	for _, t := range gp.Types {
		out.Types = append(out.Types, TypeParamDef{Name: t.Name, Default: t.Default.Clone()})
	}
	for _, b := range gp.Bounds {
		out.Bounds = append(out.Bounds, GenericBound{
			Kind:     b.Kind,
			Lifetime: b.Lifetime,
			ValidFor: b.ValidFor,
			Type:     b.Type.Clone(),
			Trait:    b.Trait.Clone(),
			Other:    b.Other.Clone(),
		})
	}
	return out
}

func cloneTypes(ts []TypeRef) []TypeRef {
	if ts == nil {
		return nil
	}
	out := make([]TypeRef, len(ts))
	for i := range ts {
		out[i] = ts[i].Clone()
	}
	return out
}

func cloneGenericPaths(ps []GenericPath) []GenericPath {
	if ps == nil {
		return nil
	}
	out := make([]GenericPath, len(ps))
	for i := range ps {
		out[i] = ps[i].Clone()
	}
	return out
}

func cloneTraitPaths(ps []TraitPath) []TraitPath {
	if ps == nil {
		return nil
	}
	out := make([]TraitPath, len(ps))
	for i := range ps {
		out[i] = ps[i].Clone()
	}
	return out
}
