// Package slices0 re-exports the handful of golang.org/x/exp/slices
// helpers this module leans on, under names that read as plain Go at the
// call site instead of threading the x/exp import path through every file
// that needs a generic slice operation. The "0" suffix avoids colliding
// with the standard library's own slices package in an import block that
// has both.
package slices0

import (
	"golang.org/x/exp/slices"
)

// IndexFunc returns the index of the first element in s satisfying f, or
// -1 if none does. Used by compiler.Scope.registerEnv to dedupe a
// captured-environment forwarding entry against ones already recorded.
func IndexFunc[S ~[]E, E any](s S, f func(E) bool) int {
	return slices.IndexFunc(s, f)
}

// Clone returns a shallow copy of s. Used by compiler.popFuncDef to copy
// a finished function's instruction and source-map slices out of the
// shared per-compilation buffer before truncating it back to the
// enclosing function's mark.
func Clone[S ~[]E, E any](s S) S {
	return slices.Clone(s)
}

// SortFunc sorts s in place in ascending order as determined by cmp. Used
// by value.Dict.SortedItems for reproducible disassembly output.
func SortFunc[S ~[]E, E any](s S, cmp func(a, b E) int) {
	slices.SortFunc(s, cmp)
}
