package hir

// Visitor receives every node of a crate that can carry lifetimes. Passes
// embed BaseVisitor and override only the hooks they care about; the
// embedded Walker is the "call the default" path.
type Visitor interface {
	VisitModule(p ItemPath, m *Module)
	VisitTypeItem(p ItemPath, ti *TypeItem)
	VisitValueItem(p ItemPath, vi *ValueItem)

	VisitTypeImpl(impl *TypeImpl)
	VisitTraitImpl(impl *TraitImpl)
	VisitMarkerImpl(impl *MarkerImpl)

	VisitFunction(p ItemPath, fn *Function)
	VisitConstant(p ItemPath, c *Constant)
	VisitStatic(p ItemPath, s *Static)

	VisitParams(gp *GenericParams)
	VisitType(ty *TypeRef)
	VisitPath(path *Path)
	VisitGenericPath(gp *GenericPath)
	VisitPathParams(pp *PathParams)
	VisitTraitPath(tp *TraitPath)
}

// Walker implements the default traversal of every node, dispatching
// children back through the owning Visitor.
type Walker struct {
	v Visitor
}

// NewWalker binds a walker to the visitor that receives child nodes.
func NewWalker(v Visitor) Walker {
	return Walker{v: v}
}

// BaseVisitor provides default Visit* methods that simply walk.
type BaseVisitor struct {
	Walker
}

// NewBaseVisitor returns defaults bound to self, the outermost visitor.
func NewBaseVisitor(self Visitor) BaseVisitor {
	return BaseVisitor{Walker: NewWalker(self)}
}

func (b BaseVisitor) VisitModule(p ItemPath, m *Module)        { b.WalkModule(p, m) }
func (b BaseVisitor) VisitTypeItem(p ItemPath, ti *TypeItem)   { b.WalkTypeItem(p, ti) }
func (b BaseVisitor) VisitValueItem(p ItemPath, vi *ValueItem) { b.WalkValueItem(p, vi) }
func (b BaseVisitor) VisitTypeImpl(impl *TypeImpl)             { b.WalkTypeImpl(impl) }
func (b BaseVisitor) VisitTraitImpl(impl *TraitImpl)           { b.WalkTraitImpl(impl) }
func (b BaseVisitor) VisitMarkerImpl(impl *MarkerImpl)         { b.WalkMarkerImpl(impl) }
func (b BaseVisitor) VisitFunction(p ItemPath, fn *Function)   { b.WalkFunction(p, fn) }
func (b BaseVisitor) VisitConstant(p ItemPath, c *Constant)    { b.WalkConstant(p, c) }
func (b BaseVisitor) VisitStatic(p ItemPath, s *Static)        { b.WalkStatic(p, s) }
func (b BaseVisitor) VisitParams(gp *GenericParams)            { b.WalkParams(gp) }
func (b BaseVisitor) VisitType(ty *TypeRef)                    { b.WalkType(ty) }
func (b BaseVisitor) VisitPath(path *Path)                     { b.WalkPath(path) }
func (b BaseVisitor) VisitGenericPath(gp *GenericPath)         { b.WalkGenericPath(gp) }
func (b BaseVisitor) VisitPathParams(pp *PathParams)           { b.WalkPathParams(pp) }
func (b BaseVisitor) VisitTraitPath(tp *TraitPath)             { b.WalkTraitPath(tp) }

// WalkCrate visits the root module and then every impl block.
func (w Walker) WalkCrate(c *Crate) {
	w.v.VisitModule(RootPath(c.Name), &c.Root)
	for i := range c.TypeImpls {
		w.v.VisitTypeImpl(&c.TypeImpls[i])
	}
	for i := range c.TraitImpls {
		w.v.VisitTraitImpl(&c.TraitImpls[i])
	}
	for i := range c.MarkerImpls {
		w.v.VisitMarkerImpl(&c.MarkerImpls[i])
	}
}

func (w Walker) WalkModule(p ItemPath, m *Module) {
	for i := range m.TypeItems {
		ti := &m.TypeItems[i]
		w.v.VisitTypeItem(p.Child(ti.Name), ti)
	}
	for i := range m.ValueItems {
		vi := &m.ValueItems[i]
		w.v.VisitValueItem(p.Child(vi.Name), vi)
	}
}

func (w Walker) WalkTypeItem(p ItemPath, ti *TypeItem) {
	switch ti.Kind {
	case ItemImport, ItemExternType:
	case ItemModule:
		w.v.VisitModule(p, ti.Module)
	case ItemTypeAlias:
		w.v.VisitParams(&ti.TypeAlias.Params)
		w.v.VisitType(&ti.TypeAlias.Type)
	case ItemTraitAlias:
		w.v.VisitParams(&ti.TraitAlias.Params)
		for i := range ti.TraitAlias.Traits {
			w.v.VisitTraitPath(&ti.TraitAlias.Traits[i])
		}
	case ItemEnum:
		w.v.VisitParams(&ti.Enum.Params)
		for i := range ti.Enum.Variants {
			w.walkFields(ti.Enum.Variants[i].Fields)
		}
	case ItemStruct:
		w.v.VisitParams(&ti.Struct.Params)
		w.walkFields(ti.Struct.Fields)
	case ItemUnion:
		w.v.VisitParams(&ti.Union.Params)
		w.walkFields(ti.Union.Fields)
	case ItemTrait:
		w.walkTrait(p, ti.Trait)
	}
}

func (w Walker) walkFields(fields []Field) {
	for i := range fields {
		w.v.VisitType(&fields[i].Type)
	}
}

func (w Walker) walkTrait(p ItemPath, tr *Trait) {
	w.v.VisitParams(&tr.Params)
	for i := range tr.ParentTraits {
		w.v.VisitTraitPath(&tr.ParentTraits[i])
	}
	for i := range tr.Types {
		at := &tr.Types[i]
		for j := range at.Bounds {
			w.v.VisitTraitPath(&at.Bounds[j])
		}
		w.v.VisitType(&at.Default)
	}
	for i := range tr.Values {
		vi := &tr.Values[i]
		w.v.VisitValueItem(p.Child(vi.Name), vi)
	}
}

func (w Walker) WalkValueItem(p ItemPath, vi *ValueItem) {
	switch vi.Kind {
	case ValueImport:
	case ValueConstant:
		w.v.VisitConstant(p, vi.Constant)
	case ValueStatic:
		w.v.VisitStatic(p, vi.Static)
	case ValueFunction:
		w.v.VisitFunction(p, vi.Function)
	}
}

func (w Walker) WalkTypeImpl(impl *TypeImpl) {
	w.v.VisitParams(&impl.Params)
	w.v.VisitType(&impl.Type)
	p := RootPath("<impl " + FormatType(&impl.Type) + ">")
	w.walkImplMembers(p, impl.Methods, impl.Constants)
}

func (w Walker) WalkTraitImpl(impl *TraitImpl) {
	w.v.VisitParams(&impl.Params)
	w.v.VisitPathParams(&impl.TraitArgs)
	w.v.VisitType(&impl.Type)
	p := RootPath("<impl " + impl.Trait.String() + " for " + FormatType(&impl.Type) + ">")
	w.walkImplMembers(p, impl.Methods, impl.Constants)
	for i := range impl.Types {
		w.v.VisitType(&impl.Types[i].Type)
	}
}

func (w Walker) walkImplMembers(p ItemPath, methods []ImplFunction, consts []ImplConstant) {
	for i := range methods {
		w.v.VisitFunction(p.Child(methods[i].Name), &methods[i].Fn)
	}
	for i := range consts {
		w.v.VisitConstant(p.Child(consts[i].Name), &consts[i].Const)
	}
}

func (w Walker) WalkMarkerImpl(impl *MarkerImpl) {
	w.v.VisitParams(&impl.Params)
	w.v.VisitPathParams(&impl.TraitArgs)
	w.v.VisitType(&impl.Type)
}

func (w Walker) WalkFunction(_ ItemPath, fn *Function) {
	w.v.VisitParams(&fn.Params)
	for i := range fn.Args {
		w.v.VisitType(&fn.Args[i].Type)
	}
	w.v.VisitType(&fn.Return)
}

func (w Walker) WalkConstant(_ ItemPath, c *Constant) {
	w.v.VisitParams(&c.Params)
	w.v.VisitType(&c.Type)
}

func (w Walker) WalkStatic(_ ItemPath, s *Static) {
	w.v.VisitType(&s.Type)
}

// WalkParams visits the types and trait paths mentioned in bounds and type
// parameter defaults. Lifetimes declared or named in bounds are explicit and
// are not visited.
func (w Walker) WalkParams(gp *GenericParams) {
	for i := range gp.Types {
		w.v.VisitType(&gp.Types[i].Default)
	}
	for i := range gp.Bounds {
		b := &gp.Bounds[i]
		switch b.Kind {
		case BoundLifetime:
		case BoundTypeLifetime:
			w.v.VisitType(&b.Type)
		case BoundTrait:
			w.v.VisitType(&b.Type)
			w.v.VisitTraitPath(&b.Trait)
		case BoundTypeEquality:
			w.v.VisitType(&b.Type)
			w.v.VisitType(&b.Other)
		}
	}
}

func (w Walker) WalkType(ty *TypeRef) {
	switch ty.Kind {
	case TypeInfer, TypeDiverge, TypePrimitive, TypeGeneric:
	case TypePath:
		w.v.VisitPath(ty.Path)
	case TypeTraitObject:
		w.v.VisitTraitPath(&ty.TraitObject.Trait)
		for i := range ty.TraitObject.Markers {
			w.v.VisitGenericPath(&ty.TraitObject.Markers[i])
		}
	case TypeErased:
		for i := range ty.Erased.Traits {
			w.v.VisitTraitPath(&ty.Erased.Traits[i])
		}
	case TypeArray:
		w.v.VisitType(&ty.Array.Inner)
	case TypeSlice:
		w.v.VisitType(ty.Slice)
	case TypeTuple:
		for i := range ty.Tuple {
			w.v.VisitType(&ty.Tuple[i])
		}
	case TypeBorrow:
		w.v.VisitType(&ty.Borrow.Inner)
	case TypePointer:
		w.v.VisitType(&ty.Pointer.Inner)
	case TypeFunction:
		for i := range ty.Function.Args {
			w.v.VisitType(&ty.Function.Args[i])
		}
		w.v.VisitType(&ty.Function.Ret)
	}
}

func (w Walker) WalkPath(path *Path) {
	switch path.Kind {
	case PathGeneric:
		w.v.VisitGenericPath(&path.Generic)
	case PathUfcsInherent:
		w.v.VisitType(path.Type)
		w.v.VisitPathParams(&path.Params)
	case PathUfcsKnown:
		w.v.VisitType(path.Type)
		w.v.VisitGenericPath(&path.Trait)
		w.v.VisitPathParams(&path.Params)
	}
}

func (w Walker) WalkGenericPath(gp *GenericPath) {
	w.v.VisitPathParams(&gp.Params)
}

func (w Walker) WalkPathParams(pp *PathParams) {
	for i := range pp.Types {
		w.v.VisitType(&pp.Types[i])
	}
}

// WalkTraitPath visits the trait's own arguments and the values of its
// associated bounds. SourceTrait paths are bookkeeping and are not visited.
func (w Walker) WalkTraitPath(tp *TraitPath) {
	w.v.VisitGenericPath(&tp.Path)
	for i := range tp.TypeBounds {
		w.v.VisitType(&tp.TypeBounds[i].Type)
	}
	for i := range tp.TraitBounds {
		for j := range tp.TraitBounds[i].Traits {
			w.v.VisitTraitPath(&tp.TraitBounds[i].Traits[j])
		}
	}
}
