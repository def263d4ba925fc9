package cli

import (
	"github.com/dstlang/dst/lang/srcmap"
	"github.com/dstlang/dst/lang/token"
)

// unmappedTree is the source map handed to the compiler for a value tree
// decoded from JSON: there is no source text behind it, so every position
// the compiler could report is simply unknown.
func unmappedTree() *srcmap.Tree { return srcmap.Leaf(token.NoPos) }
