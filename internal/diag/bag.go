package diag

import (
	"cmp"
	"slices"
)

// Bag collects the diagnostics of one crate dump up to a limit. Anything
// past the limit is counted but not kept.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag returns a bag that keeps at most limit diagnostics; limit <= 0
// means no limit.
func NewBag(limit int) *Bag {
	if limit < 0 {
		limit = 0
	}
	return &Bag{limit: limit}
}

// Add stores d and reports whether it was kept.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any kept diagnostic is an error.
func (b *Bag) HasErrors() bool {
	return b.Errors() > 0
}

// Errors counts kept diagnostics of error severity.
func (b *Bag) Errors() int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int { return len(b.items) }

// Dropped is how many diagnostics the limit discarded.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the kept diagnostics; callers must not modify the slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders by file, start, end, severity (errors first) and code so that
// output is deterministic whatever order workers reported in.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

type dedupKey struct {
	code    Code
	primary [3]uint32
	msg     string
}

// Dedup drops repeats of the same code, span and message, keeping the first.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]bool, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := dedupKey{d.Code, [3]uint32{uint32(d.Primary.File), d.Primary.Start, d.Primary.End}, d.Message}
		if seen[k] {
			return true
		}
		seen[k] = true
		return false
	})
}
