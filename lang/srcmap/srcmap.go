// Package srcmap implements the parser contract's source map: a
// structure parallel to a composite value.Value tree that lets the compiler
// recover a source position for any node it descends into, without the
// value tree itself having to carry position information.
//
// The compiler core reads a Tree through AtIndex and Position; the only
// Tree it constructs is a Leaf for a nil it synthesizes itself. Building
// the tree for parsed input is the parser's job.
package srcmap

import "github.com/dstlang/dst/lang/token"

// Tree is one node of a source map, mirroring the shape of the value.Value
// node it was produced for. A nil *Tree is legal anywhere and behaves as an
// all-unknown-position tree, so descending into a sourcemap that the parser
// did not bother to build in full detail never panics.
type Tree struct {
	Pos token.Pos

	// Elems holds one sub-tree per element, for array- and form-shaped
	// nodes, in order.
	Elems []*Tree

	// Keys and Vals hold one sub-tree per entry, for dict-shaped nodes,
	// with Keys[i] and Vals[i] describing the i'th entry's key and value.
	Keys []*Tree
	Vals []*Tree
}

// Leaf returns a Tree with no children, useful for constructing sourcemaps
// by hand (as tests, or a minimal host integration, do) and as the
// "unknown" sentinel returned by the traversal helpers when they run off
// the end of a tree that doesn't fully mirror its value.
func Leaf(pos token.Pos) *Tree { return &Tree{Pos: pos} }

// unknown is returned whenever a traversal runs out of tree to descend
// into; every lookup on it in turn also safely returns unknown.
var unknown = Leaf(token.NoPos)

// AtIndex descends into the i'th element sub-tree of an array- or
// form-shaped node.
func (t *Tree) AtIndex(i int) *Tree {
	if t == nil || i < 0 || i >= len(t.Elems) {
		return unknown
	}
	if t.Elems[i] == nil {
		return unknown
	}
	return t.Elems[i]
}

// AtKey descends into the i'th key sub-tree of a dict-shaped node.
func (t *Tree) AtKey(i int) *Tree {
	if t == nil || i < 0 || i >= len(t.Keys) {
		return unknown
	}
	if t.Keys[i] == nil {
		return unknown
	}
	return t.Keys[i]
}

// AtValue descends into the i'th value sub-tree of a dict-shaped node.
func (t *Tree) AtValue(i int) *Tree {
	if t == nil || i < 0 || i >= len(t.Vals) {
		return unknown
	}
	if t.Vals[i] == nil {
		return unknown
	}
	return t.Vals[i]
}

// Position returns the position this node describes, or token.NoPos if t is
// nil.
func (t *Tree) Position() token.Pos {
	if t == nil {
		return token.NoPos
	}
	return t.Pos
}
