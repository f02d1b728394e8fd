// Package hirfile reads and writes lowered crates as .hirpack files.
//
// A file is two msgpack values back to back: a Header and the hir.Crate.
// The header is decoded on its own first so that an incompatible dump is
// rejected before its body is touched.
package hirfile
