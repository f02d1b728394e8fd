package hir

import (
	"strings"

	"elide/internal/source"
)

// SimplePath names an item: crate plus module components. An empty Crate
// means the crate being compiled.
type SimplePath struct {
	Crate      string
	Components []string
}

// Simple builds a local SimplePath from "a::b::C" style components.
func Simple(components ...string) SimplePath {
	return SimplePath{Components: components}
}

// ParseSimplePath splits "::crate::a::b" or "a::b".
func ParseSimplePath(s string) SimplePath {
	var sp SimplePath
	if rest, ok := strings.CutPrefix(s, "::"); ok {
		parts := strings.Split(rest, "::")
		sp.Crate = parts[0]
		sp.Components = parts[1:]
		return sp
	}
	if s != "" {
		sp.Components = strings.Split(s, "::")
	}
	return sp
}

// Last returns the final component or "".
func (p SimplePath) Last() string {
	if len(p.Components) == 0 {
		return ""
	}
	return p.Components[len(p.Components)-1]
}

// Parent drops the last component.
func (p SimplePath) Parent() SimplePath {
	if len(p.Components) == 0 {
		return p
	}
	return SimplePath{Crate: p.Crate, Components: p.Components[:len(p.Components)-1]}
}

// Child appends one component.
func (p SimplePath) Child(name string) SimplePath {
	comps := make([]string, 0, len(p.Components)+1)
	comps = append(comps, p.Components...)
	return SimplePath{Crate: p.Crate, Components: append(comps, name)}
}

// Equal compares crate and components.
func (p SimplePath) Equal(o SimplePath) bool {
	if p.Crate != o.Crate || len(p.Components) != len(o.Components) {
		return false
	}
	for i := range p.Components {
		if p.Components[i] != o.Components[i] {
			return false
		}
	}
	return true
}

func (p SimplePath) String() string {
	var b strings.Builder
	if p.Crate != "" {
		b.WriteString("::")
		b.WriteString(p.Crate)
	}
	for i, c := range p.Components {
		if i > 0 || p.Crate != "" {
			b.WriteString("::")
		}
		b.WriteString(c)
	}
	return b.String()
}

// PathParams are the generic arguments of a path segment.
type PathParams struct {
	Lifetimes []LifetimeRef
	Types     []TypeRef
}

// IsEmpty reports whether no arguments were given.
func (pp *PathParams) IsEmpty() bool {
	return len(pp.Lifetimes) == 0 && len(pp.Types) == 0
}

// ResizeLifetimes pads (with unknown lifetimes) or truncates the lifetime
// arguments to exactly n entries.
func (pp *PathParams) ResizeLifetimes(n int) {
	switch {
	case len(pp.Lifetimes) > n:
		pp.Lifetimes = pp.Lifetimes[:n]
	case len(pp.Lifetimes) < n:
		pp.Lifetimes = append(pp.Lifetimes, make([]LifetimeRef, n-len(pp.Lifetimes))...)
	}
}

// GenericPath is an item path with generic arguments.
type GenericPath struct {
	Path   SimplePath
	Params PathParams
}

// PathKind enumerates Path shapes.
type PathKind uint8

const (
	// PathGeneric is a plain path to an item: Foo<'a, T>.
	PathGeneric PathKind = iota
	// PathUfcsInherent is <T>::item.
	PathUfcsInherent
	// PathUfcsKnown is <T as Trait>::item.
	PathUfcsKnown
)

// Path is a type path.
type Path struct {
	Kind    PathKind
	Generic GenericPath // PathGeneric

	Type   *TypeRef    // UFCS self type
	Trait  GenericPath // PathUfcsKnown
	Item   string      // UFCS item name
	Params PathParams  // UFCS item params
}

// ElisionPending marks a trait path written in call-like sugar, Foo(A) -> B,
// without explicit lifetimes. The elision pass treats the path as a binder
// and removes the marker.
type ElisionPending struct {
	Span source.Span
}

// LegacyElisionMarker is the HRTB lifetime name older lowering stages used
// instead of ElisionPending.
const LegacyElisionMarker = "#apply_elision"

// AssocTypeBound is Trait<Name = Type>.
type AssocTypeBound struct {
	Name        string
	SourceTrait GenericPath
	Type        TypeRef
}

// AssocTraitBound is Trait<Name: A + B>.
type AssocTraitBound struct {
	Name        string
	SourceTrait GenericPath
	Traits      []TraitPath
}

// TraitPath is a trait reference in a bound, optionally higher-ranked.
type TraitPath struct {
	Path        GenericPath
	HRLs        *GenericParams
	Pending     *ElisionPending
	TypeBounds  []AssocTypeBound
	TraitBounds []AssocTraitBound
	Span        source.Span
}

// ElisionRequested reports whether lowering asked for call-sugar elision,
// either through Pending or the legacy single-lifetime marker.
func (tp *TraitPath) ElisionRequested() bool {
	if tp.Pending != nil {
		return true
	}
	return tp.HRLs != nil && len(tp.HRLs.Lifetimes) == 1 && tp.HRLs.Lifetimes[0].Name == LegacyElisionMarker
}

// TakeElisionRequest clears the request marker (both forms) and makes sure
// the HRTB list exists.
func (tp *TraitPath) TakeElisionRequest() {
	tp.Pending = nil
	if tp.HRLs == nil {
		tp.HRLs = &GenericParams{}
		return
	}
	if len(tp.HRLs.Lifetimes) == 1 && tp.HRLs.Lifetimes[0].Name == LegacyElisionMarker {
		tp.HRLs.Lifetimes = tp.HRLs.Lifetimes[:0]
	}
}
