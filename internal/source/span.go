package source

import (
	"fmt"
)

// Span is a half-open byte range inside one source file.
type Span struct {
	File  FileID
	Start uint32 // byte offset, inclusive
	End   uint32 // byte offset, exclusive
}

// NoSpan is used for nodes synthesised by passes that have no source position.
var NoSpan = Span{}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover widens s so that it includes other. Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if s.Empty() && s.Start == 0 {
		return other
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies completely inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && other.Start >= s.Start && other.End <= s.End
}
