package hir

import (
	"fmt"

	"fortio.org/safecast"
)

// LifetimeState says whether a lifetime occurrence is still waiting for
// elision or already names a concrete binding.
type LifetimeState uint8

const (
	// LifetimeUnknown is a lifetime omitted in source.
	LifetimeUnknown LifetimeState = iota
	// LifetimeInfer is an explicit '_ placeholder.
	LifetimeInfer
	// LifetimeStatic is 'static.
	LifetimeStatic
	// LifetimeParam is bound to a slot of an enclosing GenericParams.
	LifetimeParam
	// LifetimeLocal is a body-local region. It never belongs in an item
	// signature; lowering only produces it inside expressions.
	LifetimeLocal
)

func (s LifetimeState) String() string {
	switch s {
	case LifetimeUnknown:
		return "unknown"
	case LifetimeInfer:
		return "infer"
	case LifetimeStatic:
		return "static"
	case LifetimeParam:
		return "param"
	case LifetimeLocal:
		return "local"
	default:
		return fmt.Sprintf("LifetimeState(%d)", s)
	}
}

// BinderKind identifies which enclosing generic parameter list a bound
// lifetime refers to. The numeric values are the binder levels of the legacy
// encoding (level*256 + index); level 2 is unused.
type BinderKind uint8

const (
	BinderImpl     BinderKind = 0
	BinderFunction BinderKind = 1
	BinderHrtb     BinderKind = 3
)

func (b BinderKind) String() string {
	switch b {
	case BinderImpl:
		return "impl"
	case BinderFunction:
		return "fn"
	case BinderHrtb:
		return "for"
	default:
		return fmt.Sprintf("binder%d", uint8(b))
	}
}

// Valid reports whether b is one of the known binder kinds.
func (b BinderKind) Valid() bool {
	return b == BinderImpl || b == BinderFunction || b == BinderHrtb
}

// LifetimeRef is one lifetime occurrence in the tree. Bound lifetimes refer to
// their declaration by (Binder, Index), never by pointer, so they survive
// copies of the tree.
type LifetimeRef struct {
	State  LifetimeState
	Binder BinderKind
	Index  uint32
}

// StaticLifetime returns 'static.
func StaticLifetime() LifetimeRef { return LifetimeRef{State: LifetimeStatic} }

// Infer returns '_.
func Infer() LifetimeRef { return LifetimeRef{State: LifetimeInfer} }

// Param returns a lifetime bound to slot index of the binder.
func Param(binder BinderKind, index uint32) LifetimeRef {
	return LifetimeRef{State: LifetimeParam, Binder: binder, Index: index}
}

// IsParam reports whether the lifetime is bound to a generic parameter slot.
func (l LifetimeRef) IsParam() bool { return l.State == LifetimeParam }

// IsStatic reports whether the lifetime is 'static.
func (l LifetimeRef) IsStatic() bool { return l.State == LifetimeStatic }

// NeedsElision reports whether the lifetime was omitted or written as '_.
func (l LifetimeRef) NeedsElision() bool {
	return l.State == LifetimeUnknown || l.State == LifetimeInfer
}

func (l LifetimeRef) String() string {
	switch l.State {
	case LifetimeUnknown:
		return "'?"
	case LifetimeInfer:
		return "'_"
	case LifetimeStatic:
		return "'static"
	case LifetimeParam:
		return fmt.Sprintf("'%s#%d", l.Binder, l.Index)
	case LifetimeLocal:
		return fmt.Sprintf("'local#%d", l.Index)
	default:
		return fmt.Sprintf("'<%s>", l.State)
	}
}

// Legacy binding ids. Unknown is not 0 so that it cannot collide with the
// first impl-level parameter.
const (
	encodedUnknown uint32 = 0xFFFD
	encodedStatic  uint32 = 0xFFFF
	encodedInfer   uint32 = 0xFFFE
	encodedLocal   uint32 = 0x10000
)

// Encode returns the legacy numeric binding id: level*256+index for params.
// Indices above 255 do not fit the encoding and are reported as an error.
func (l LifetimeRef) Encode() (uint32, error) {
	switch l.State {
	case LifetimeUnknown:
		return encodedUnknown, nil
	case LifetimeInfer:
		return encodedInfer, nil
	case LifetimeStatic:
		return encodedStatic, nil
	case LifetimeParam:
		idx, err := safecast.Conv[uint8](l.Index)
		if err != nil {
			return 0, fmt.Errorf("lifetime %s: index does not fit binding encoding: %w", l, err)
		}
		return uint32(l.Binder)*256 + uint32(idx), nil
	case LifetimeLocal:
		return encodedLocal + l.Index, nil
	}
	return 0, fmt.Errorf("lifetime state %s has no encoding", l.State)
}

// DecodeLifetime is the inverse of Encode.
func DecodeLifetime(id uint32) (LifetimeRef, error) {
	switch {
	case id == encodedUnknown:
		return LifetimeRef{}, nil
	case id == encodedInfer:
		return Infer(), nil
	case id == encodedStatic:
		return StaticLifetime(), nil
	case id >= encodedLocal:
		return LifetimeRef{State: LifetimeLocal, Index: id - encodedLocal}, nil
	}
	level, err := safecast.Conv[uint8](id >> 8)
	if err != nil {
		return LifetimeRef{}, fmt.Errorf("binding %#x: %w", id, err)
	}
	binder := BinderKind(level)
	if !binder.Valid() {
		return LifetimeRef{}, fmt.Errorf("binding %#x: unknown binder level %d", id, level)
	}
	return Param(binder, id&0xFF), nil
}
