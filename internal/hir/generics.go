package hir

import (
	"fmt"

	"fortio.org/safecast"

	"elide/internal/source"
)

// LifetimeDef declares one lifetime parameter.
type LifetimeDef struct {
	Name string
	// Elided marks parameters synthesised by lifetime elision. The name is
	// kept only for display.
	Elided bool
	Span   source.Span
}

// TypeParamDef declares one generic type parameter.
type TypeParamDef struct {
	Name    string
	Default TypeRef // TypeInfer when absent
}

// BoundKind enumerates where-clause shapes.
type BoundKind uint8

const (
	// BoundLifetime is 'a: 'b.
	BoundLifetime BoundKind = iota
	// BoundTypeLifetime is T: 'a.
	BoundTypeLifetime
	// BoundTrait is T: Trait.
	BoundTrait
	// BoundTypeEquality is T = U.
	BoundTypeEquality
)

func (k BoundKind) String() string {
	switch k {
	case BoundLifetime:
		return "lifetime"
	case BoundTypeLifetime:
		return "type-lifetime"
	case BoundTrait:
		return "trait"
	case BoundTypeEquality:
		return "type-equality"
	default:
		return "unknown"
	}
}

// GenericBound is one where-clause entry.
type GenericBound struct {
	Kind     BoundKind
	Lifetime LifetimeRef // BoundLifetime (bounded), BoundTypeLifetime
	ValidFor LifetimeRef // BoundLifetime
	Type     TypeRef     // BoundTypeLifetime, BoundTrait, BoundTypeEquality
	Trait    TraitPath   // BoundTrait
	Other    TypeRef     // BoundTypeEquality
}

// GenericParams is the parameter list of a binder: an impl block, a function,
// a trait-object or fn-pointer HRTB list.
type GenericParams struct {
	Lifetimes []LifetimeDef
	Types     []TypeParamDef
	Bounds    []GenericBound
}

// IsEmpty reports whether the list declares nothing.
func (gp *GenericParams) IsEmpty() bool {
	return gp == nil || (len(gp.Lifetimes) == 0 && len(gp.Types) == 0 && len(gp.Bounds) == 0)
}

// ElidedName is the display name of the synthesised lifetime at index.
func ElidedName(index int) string {
	return fmt.Sprintf("elided#%d", index)
}

// AddElidedLifetime appends a synthesised lifetime parameter and returns its
// index.
func (gp *GenericParams) AddElidedLifetime(sp source.Span) uint32 {
	idx := len(gp.Lifetimes)
	gp.Lifetimes = append(gp.Lifetimes, LifetimeDef{Name: ElidedName(idx), Elided: true, Span: sp})
	u, err := safecast.Conv[uint32](idx)
	if err != nil {
		panic(fmt.Errorf("lifetime parameter index overflow: %w", err))
	}
	return u
}

// CountElided returns how many lifetimes were synthesised by elision.
func (gp *GenericParams) CountElided() int {
	n := 0
	for _, l := range gp.Lifetimes {
		if l.Elided {
			n++
		}
	}
	return n
}

// LifetimeCount is len(Lifetimes) as uint32.
func (gp *GenericParams) LifetimeCount() uint32 {
	if gp == nil {
		return 0
	}
	n, err := safecast.Conv[uint32](len(gp.Lifetimes))
	if err != nil {
		panic(fmt.Errorf("lifetime parameter count overflow: %w", err))
	}
	return n
}
