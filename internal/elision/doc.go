// Package elision fills in omitted and '_ lifetimes in item signatures of a
// lowered crate.
//
// The pass walks every item once. While it walks it keeps two pieces of
// context: a stack of ambient targets (the lifetime of the innermost
// enclosing borrow, 'static inside const/static types, the output lifetime of
// a function's return type) and the binder that may grow a fresh parameter
// when no target is active (impl params, function params, or the HRTB list of
// a fn pointer or call-sugar trait path).
//
// After Run every lifetime reachable from the crate is 'static or bound to an
// existing parameter slot. Failures abort the whole pass.
package elision
