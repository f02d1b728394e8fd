// Package diagfmt renders diagnostic bags for machines.
package diagfmt

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	IncludeNotes     bool
	Max              int // обрезка вывода, не Bag
}
