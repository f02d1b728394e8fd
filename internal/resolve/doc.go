// Package resolve is the read-only query facade over a crate's item tree
// that later HIR passes consume: type item lookup by path, trait lookup and
// supertrait enumeration. Paths with an empty (or the crate's own) crate name
// resolve locally; others go through Crate.ExternCrates.
package resolve
