package elision

import (
	"fmt"

	"elide/internal/diag"
	"elide/internal/source"
)

// Error is the single failure that stopped a run.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
	// Bug is set for internal inconsistencies of the input tree, as opposed
	// to a lifetime the user has to write.
	Bug bool
}

func (e *Error) Error() string {
	if e.Bug {
		return fmt.Sprintf("%s: internal error: %s", e.Code.ID(), e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

// abort unwinds the visitor. Only Elide recovers it.
type abort struct {
	err *Error
}

func (v *elider) fail(code diag.Code, sp source.Span, format string, args ...any) {
	err := &Error{
		Code: code,
		Span: sp,
		Msg:  fmt.Sprintf(format, args...),
		Bug:  code.IsBug(),
	}
	if v.reporter != nil {
		b := diag.ReportError(v.reporter, code, sp, err.Msg)
		if v.item != "" {
			b.WithNote(v.itemSpan, "in "+v.item)
		}
		b.Emit()
	}
	panic(abort{err: err})
}
