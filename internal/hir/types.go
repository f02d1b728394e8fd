package hir

import (
	"elide/internal/source"
)

// TypeKind enumerates TypeRef shapes.
type TypeKind uint8

const (
	TypeInfer TypeKind = iota
	TypeDiverge
	TypePrimitive
	TypeGeneric
	TypePath
	TypeTraitObject
	TypeErased
	TypeArray
	TypeSlice
	TypeTuple
	TypeBorrow
	TypePointer
	TypeFunction
)

func (k TypeKind) String() string {
	switch k {
	case TypeInfer:
		return "infer"
	case TypeDiverge:
		return "diverge"
	case TypePrimitive:
		return "primitive"
	case TypeGeneric:
		return "generic"
	case TypePath:
		return "path"
	case TypeTraitObject:
		return "trait-object"
	case TypeErased:
		return "erased"
	case TypeArray:
		return "array"
	case TypeSlice:
		return "slice"
	case TypeTuple:
		return "tuple"
	case TypeBorrow:
		return "borrow"
	case TypePointer:
		return "pointer"
	case TypeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// BorrowKind distinguishes &, &mut and &move.
type BorrowKind uint8

const (
	BorrowShared BorrowKind = iota
	BorrowUnique
	BorrowOwned
)

// GenericSelf is the binding of the implicit Self type parameter.
const GenericSelf uint32 = 0xFFFF

// GenericRef names a generic type parameter. Binding is level*256+index where
// level 0 is the impl/trait list and level 1 the method list.
type GenericRef struct {
	Name    string
	Binding uint32
}

// BorrowType is &'a T.
type BorrowType struct {
	Kind     BorrowKind
	Lifetime LifetimeRef
	Inner    TypeRef
}

// PointerType is *const T / *mut T.
type PointerType struct {
	Mutable bool
	Inner   TypeRef
}

// ArrayType is [T; N].
type ArrayType struct {
	Inner TypeRef
	Size  uint64
}

// FunctionType is a fn-pointer signature with its own HRTB binder.
type FunctionType struct {
	HRLs   GenericParams
	Unsafe bool
	ABI    string
	Args   []TypeRef
	Ret    TypeRef
}

// TraitObjectType is dyn Trait + Markers + 'a.
type TraitObjectType struct {
	Trait    TraitPath
	Markers  []GenericPath
	Lifetime LifetimeRef
}

// ErasedType is impl Trait.
type ErasedType struct {
	Traits   []TraitPath
	Lifetime LifetimeRef
}

// TypeRef is a type node. Exactly the payload matching Kind is set.
type TypeRef struct {
	Kind TypeKind
	Span source.Span

	Name        string // TypePrimitive
	Generic     *GenericRef
	Path        *Path
	TraitObject *TraitObjectType
	Erased      *ErasedType
	Array       *ArrayType
	Slice       *TypeRef
	Tuple       []TypeRef
	Borrow      *BorrowType
	Pointer     *PointerType
	Function    *FunctionType
}

// IsInfer reports whether the type is the `_` placeholder (also used for
// "absent" defaults).
func (t *TypeRef) IsInfer() bool { return t.Kind == TypeInfer }

// Constructors. They mirror the surface syntax and are mostly used by
// lowering-side tooling and tests.

// Unit is ().
func Unit() TypeRef { return TypeRef{Kind: TypeTuple} }

// Prim is a primitive such as u8 or str.
func Prim(name string) TypeRef { return TypeRef{Kind: TypePrimitive, Name: name} }

// Generic is a type parameter reference.
func Generic(name string, binding uint32) TypeRef {
	return TypeRef{Kind: TypeGeneric, Generic: &GenericRef{Name: name, Binding: binding}}
}

// SelfType is the implicit Self parameter.
func SelfType() TypeRef { return Generic("Self", GenericSelf) }

// Named is a path type with no generic arguments; lifetimes are filled in by
// arity normalisation.
func Named(path SimplePath, types ...TypeRef) TypeRef {
	return TypeRef{Kind: TypePath, Path: &Path{Kind: PathGeneric, Generic: GenericPath{Path: path, Params: PathParams{Types: types}}}}
}

// NamedWith is a path type with explicit lifetime and type arguments.
func NamedWith(path SimplePath, lifetimes []LifetimeRef, types ...TypeRef) TypeRef {
	t := Named(path, types...)
	t.Path.Generic.Params.Lifetimes = lifetimes
	return t
}

// Ref is &T with an omitted lifetime.
func Ref(inner TypeRef) TypeRef {
	return TypeRef{Kind: TypeBorrow, Borrow: &BorrowType{Kind: BorrowShared, Inner: inner}}
}

// RefMut is &mut T with an omitted lifetime.
func RefMut(inner TypeRef) TypeRef {
	return TypeRef{Kind: TypeBorrow, Borrow: &BorrowType{Kind: BorrowUnique, Inner: inner}}
}

// RefWith is &'a T.
func RefWith(lft LifetimeRef, inner TypeRef) TypeRef {
	t := Ref(inner)
	t.Borrow.Lifetime = lft
	return t
}

// Ptr is *const T / *mut T.
func Ptr(mutable bool, inner TypeRef) TypeRef {
	return TypeRef{Kind: TypePointer, Pointer: &PointerType{Mutable: mutable, Inner: inner}}
}

// SliceOf is [T].
func SliceOf(inner TypeRef) TypeRef {
	return TypeRef{Kind: TypeSlice, Slice: &inner}
}

// ArrayOf is [T; n].
func ArrayOf(inner TypeRef, n uint64) TypeRef {
	return TypeRef{Kind: TypeArray, Array: &ArrayType{Inner: inner, Size: n}}
}

// TupleOf is (A, B, ...).
func TupleOf(elems ...TypeRef) TypeRef {
	return TypeRef{Kind: TypeTuple, Tuple: elems}
}

// FnPtr is fn(args) -> ret.
func FnPtr(ret TypeRef, args ...TypeRef) TypeRef {
	return TypeRef{Kind: TypeFunction, Function: &FunctionType{Args: args, Ret: ret}}
}

// Dyn is dyn Trait with an omitted object lifetime.
func Dyn(trait TraitPath, markers ...GenericPath) TypeRef {
	return TypeRef{Kind: TypeTraitObject, TraitObject: &TraitObjectType{Trait: trait, Markers: markers}}
}

// Impl is impl Trait + ... with an omitted captured lifetime.
func Impl(traits ...TraitPath) TypeRef {
	return TypeRef{Kind: TypeErased, Erased: &ErasedType{Traits: traits}}
}

// TraitRef builds a plain trait path.
func TraitRef(path SimplePath, types ...TypeRef) TraitPath {
	return TraitPath{Path: GenericPath{Path: path, Params: PathParams{Types: types}}}
}

// FnSugar builds Trait(args) -> ret as lowering produces it: the argument
// tuple as the single type argument, the return type as an Output binding and
// an elision request.
func FnSugar(path SimplePath, output *AssocTypeBound, args ...TypeRef) TraitPath {
	tp := TraitRef(path, TupleOf(args...))
	tp.Pending = &ElisionPending{}
	if output != nil {
		tp.TypeBounds = append(tp.TypeBounds, *output)
	}
	return tp
}
