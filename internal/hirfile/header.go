package hirfile

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Magic opens every .hirpack header.
const Magic = "HIRPACK"

// SchemaVersion is the layout version this build writes.
const SchemaVersion = "1.1.0"

// SchemaConstraint is what this build accepts on read.
const SchemaConstraint = "^1.0"

// Header describes the crate that follows it.
type Header struct {
	Magic    string `msgpack:"magic"`
	Schema   string `msgpack:"schema"`
	Producer string `msgpack:"producer"`
	Crate    string `msgpack:"crate"`
	// Elided is set once the lifetime pass has rewritten the crate.
	Elided bool `msgpack:"elided"`
}

// ErrNotHirpack is returned for input that does not start with a header.
var ErrNotHirpack = errors.New("not a hirpack file")

// SchemaError reports a dump written with an incompatible layout.
type SchemaError struct {
	Got  string
	Want string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("hirpack schema %s does not satisfy %s", e.Got, e.Want)
}

var accepted = mustConstraint(SchemaConstraint)

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(fmt.Errorf("bad schema constraint %q: %w", s, err))
	}
	return c
}

// Check validates magic and schema.
func (h *Header) Check() error {
	if h.Magic != Magic {
		return ErrNotHirpack
	}
	v, err := semver.NewVersion(h.Schema)
	if err != nil {
		return fmt.Errorf("hirpack schema %q: %w", h.Schema, err)
	}
	if !accepted.Check(v) {
		return &SchemaError{Got: v.String(), Want: SchemaConstraint}
	}
	return nil
}

// NewHeader stamps a header for crate with this build's schema.
func NewHeader(crate, producer string, elided bool) Header {
	return Header{Magic: Magic, Schema: SchemaVersion, Producer: producer, Crate: crate, Elided: elided}
}
