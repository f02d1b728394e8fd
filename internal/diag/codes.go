package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Elision pass. ElideUnspecifiedLifetime is the only user-facing one,
	// the rest are compiler-internal consistency failures.
	ElideInfo                Code = 4000
	ElideUnspecifiedLifetime Code = 4001
	ElideUnexpectedBinding   Code = 4002
	ElideUnexpectedItem      Code = 4003
	ElideSupertraitNotFound  Code = 4004
	ElideStackLeak           Code = 4005
	ElideInvariant           Code = 4006
	ElideUnknownPath         Code = 4007
	ElideCrashed             Code = 4008

	// Crate dump IO
	IOInfo          Code = 5000
	IOLoadFileError Code = 5001
	IOBadSchema     Code = 5002
	IOWriteError    Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	ElideInfo:                "Lifetime elision information",
	ElideUnspecifiedLifetime: "Unspecified lifetime in outer context",
	ElideUnexpectedBinding:   "Unexpected lifetime binding",
	ElideUnexpectedItem:      "Unexpected item kind in type position",
	ElideSupertraitNotFound:  "Source trait not found among supertraits",
	ElideStackLeak:           "Elision context leaked across items",
	ElideInvariant:           "Elided crate violates lifetime invariants",
	ElideUnknownPath:         "Path does not name a known item",
	ElideCrashed:             "Elision pass crashed",
	IOInfo:                   "Crate dump information",
	IOLoadFileError:          "Failed to load crate dump",
	IOBadSchema:              "Unsupported or malformed crate dump",
	IOWriteError:             "Failed to write crate dump",
}

// ID returns the stable short identifier, e.g. ELD4002.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic == 4001:
		// user-facing lifetime error keeps the E-class id
		return "E0000"
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("ELD%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsBug reports whether the code describes an internal compiler bug rather
// than a problem in user code.
func (c Code) IsBug() bool {
	switch c {
	case ElideUnexpectedBinding, ElideUnexpectedItem, ElideSupertraitNotFound, ElideStackLeak, ElideUnknownPath, ElideCrashed:
		return true
	}
	return false
}
