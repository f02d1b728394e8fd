// Package hir provides the high-level IR of a lowered crate as far as the
// lifetime elision pass needs it: items, generics, paths and types.
//
// Lifetimes are tracked per binder (impl, function, higher-ranked) by index,
// see LifetimeRef. Crates arrive from lowering as dumps (internal/hirfile)
// and are rewritten in place.
package hir
