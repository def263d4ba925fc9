package value

import (
	"strconv"

	"golang.org/x/text/width"
)

// String is the type of a text/binary string. Its hash is computed once
// and memoized in the header rather than recomputed on every lookup,
// which matters here because every `def`/`var`-bound symbol and every
// string literal that reaches the constant pool is hashed at least once
// per reference during compilation.
type String struct {
	s    string
	hash uint64
}

var _ Value = String{}

// NewString interns s into a String header, computing its hash immediately.
func NewString(s string) String { return String{s: s, hash: stringHash(s)} }

func (s String) String() string { return strconv.Quote(s.s) }
func (s String) Type() string   { return "string" }
func (s String) Truth() Bool    { return len(s.s) > 0 }
func (s String) Freeze()        {} // immutable
func (s String) Len() int       { return len(s.s) }

// Go returns the underlying Go string.
func (s String) Go() string { return s.s }

// DisplayWidth reports how many terminal columns s.s occupies, counting
// each east-asian wide or fullwidth rune as two columns and everything
// else as one. Distinct from Len, which stays the byte length required
// elsewhere; this is for a column-aligned presentation, not a size.
func (s String) DisplayWidth() int {
	return DisplayWidth(s.s)
}

// DisplayWidth is the free-function form of String.DisplayWidth, usable
// on any Go string a caller has not interned yet (the disasm stepper's
// function-name header, for instance).
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
