package hir

import (
	"strings"

	"elide/internal/source"
)

// ImplFunction is a method inside an impl block.
type ImplFunction struct {
	Name string
	Fn   Function
}

// ImplConstant is an associated constant inside an impl block.
type ImplConstant struct {
	Name  string
	Const Constant
}

// ImplType is an associated type definition inside a trait impl.
type ImplType struct {
	Name string
	Type TypeRef
}

// TypeImpl is an inherent impl: impl<..> Type { .. }.
type TypeImpl struct {
	Span      source.Span
	Params    GenericParams
	Type      TypeRef
	Methods   []ImplFunction
	Constants []ImplConstant
}

// TraitImpl is impl<..> Trait<..> for Type { .. }.
type TraitImpl struct {
	Span      source.Span
	Trait     SimplePath
	Params    GenericParams
	TraitArgs PathParams
	Type      TypeRef
	Methods   []ImplFunction
	Constants []ImplConstant
	Types     []ImplType
}

// MarkerImpl is an impl of a trait without items (auto/marker traits).
type MarkerImpl struct {
	Span      source.Span
	Trait     SimplePath
	Params    GenericParams
	TraitArgs PathParams
	Type      TypeRef
	Negative  bool
}

// Crate is the unit the elision pass runs over.
type Crate struct {
	Name        string
	Root        Module
	TypeImpls   []TypeImpl
	TraitImpls  []TraitImpl
	MarkerImpls []MarkerImpl

	// ExternCrates are already-compiled dependencies; they are looked up but
	// never rewritten.
	ExternCrates map[string]*Crate
	// SourceFiles lists the source paths FileIDs in spans refer to.
	SourceFiles []string
}

// ItemPath is the path of the item currently being visited. It is a linked
// list so that building child paths during traversal does not copy.
type ItemPath struct {
	parent *ItemPath
	name   string
}

// RootPath starts an item path at the crate.
func RootPath(crate string) ItemPath {
	return ItemPath{name: crate}
}

// Child extends the path by one component.
func (p ItemPath) Child(name string) ItemPath {
	parent := p
	return ItemPath{parent: &parent, name: name}
}

func (p ItemPath) String() string {
	var parts []string
	for cur := &p; cur != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		if b.Len() > 0 {
			b.WriteString("::")
		}
		b.WriteString(parts[i])
	}
	return b.String()
}
