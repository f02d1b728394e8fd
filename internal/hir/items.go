package hir

import (
	"elide/internal/source"
)

// TypeItemKind enumerates items living in the type namespace.
type TypeItemKind uint8

const (
	ItemImport TypeItemKind = iota
	ItemModule
	ItemTypeAlias
	ItemTraitAlias
	ItemExternType
	ItemEnum
	ItemStruct
	ItemUnion
	ItemTrait
)

// String returns a human-readable name for the item kind.
func (k TypeItemKind) String() string {
	switch k {
	case ItemImport:
		return "import"
	case ItemModule:
		return "module"
	case ItemTypeAlias:
		return "type alias"
	case ItemTraitAlias:
		return "trait alias"
	case ItemExternType:
		return "extern type"
	case ItemEnum:
		return "enum"
	case ItemStruct:
		return "struct"
	case ItemUnion:
		return "union"
	case ItemTrait:
		return "trait"
	default:
		return "unknown"
	}
}

// TypeItem is a named entry of a module's type namespace. Exactly the payload
// matching Kind is set; extern types carry none.
type TypeItem struct {
	Name string
	Span source.Span
	Kind TypeItemKind

	Import     *SimplePath
	Module     *Module
	TypeAlias  *TypeAlias
	TraitAlias *TraitAlias
	Enum       *Enum
	Struct     *Struct
	Union      *Union
	Trait      *Trait
}

// Params returns the declared generics of the item, nil for items that have
// none (modules, imports, extern types).
func (ti *TypeItem) Params() *GenericParams {
	switch ti.Kind {
	case ItemTypeAlias:
		return &ti.TypeAlias.Params
	case ItemTraitAlias:
		return &ti.TraitAlias.Params
	case ItemEnum:
		return &ti.Enum.Params
	case ItemStruct:
		return &ti.Struct.Params
	case ItemUnion:
		return &ti.Union.Params
	case ItemTrait:
		return &ti.Trait.Params
	}
	return nil
}

// ValueItemKind enumerates items living in the value namespace.
type ValueItemKind uint8

const (
	ValueImport ValueItemKind = iota
	ValueConstant
	ValueStatic
	ValueFunction
)

// ValueItem is a named entry of a module's value namespace.
type ValueItem struct {
	Name string
	Span source.Span
	Kind ValueItemKind

	Import   *SimplePath
	Constant *Constant
	Static   *Static
	Function *Function
}

// Module is a namespace of items.
type Module struct {
	TypeItems  []TypeItem
	ValueItems []ValueItem
}

// FindType returns the type-namespace item with the given name.
func (m *Module) FindType(name string) *TypeItem {
	for i := range m.TypeItems {
		if m.TypeItems[i].Name == name {
			return &m.TypeItems[i]
		}
	}
	return nil
}

// FindValue returns the value-namespace item with the given name.
func (m *Module) FindValue(name string) *ValueItem {
	for i := range m.ValueItems {
		if m.ValueItems[i].Name == name {
			return &m.ValueItems[i]
		}
	}
	return nil
}

// Field is a struct/union/variant field.
type Field struct {
	Name string
	Type TypeRef
	Span source.Span
}

type Struct struct {
	Params GenericParams
	Fields []Field
}

type Variant struct {
	Name   string
	Fields []Field
}

type Enum struct {
	Params   GenericParams
	Variants []Variant
}

type Union struct {
	Params GenericParams
	Fields []Field
}

// AssocType is a trait's associated type declaration.
type AssocType struct {
	Name    string
	Bounds  []TraitPath
	Default TypeRef
}

// Trait is a trait declaration.
type Trait struct {
	Params       GenericParams
	ParentTraits []TraitPath
	// AllParentTraits is the transitive supertrait set. Only populated for
	// traits of extern crates; local traits have not been bound yet.
	AllParentTraits []TraitPath
	Types           []AssocType
	Values          []ValueItem
}

type TypeAlias struct {
	Params GenericParams
	Type   TypeRef
}

type TraitAlias struct {
	Params GenericParams
	Traits []TraitPath
}

// ReceiverKind is how a method takes self.
type ReceiverKind uint8

const (
	ReceiverFree ReceiverKind = iota
	ReceiverValue
	ReceiverBorrowShared
	ReceiverBorrowUnique
	ReceiverBorrowOwned
	ReceiverBox
	ReceiverCustom
)

// Arg is a function argument. For methods Args[0] is self.
type Arg struct {
	Name string
	Type TypeRef
	Span source.Span
}

// Function is a function signature.
type Function struct {
	Span     source.Span
	Receiver ReceiverKind
	Params   GenericParams
	Args     []Arg
	Return   TypeRef
}

// HasReceiver reports whether the function is a method taking self.
func (f *Function) HasReceiver() bool {
	return f.Receiver != ReceiverFree && len(f.Args) > 0
}

type Constant struct {
	Span   source.Span
	Params GenericParams
	Type   TypeRef
}

type Static struct {
	Span    source.Span
	Mutable bool
	Type    TypeRef
}
