package srcmap_test

import (
	"testing"

	"github.com/dstlang/dst/lang/srcmap"
	"github.com/dstlang/dst/lang/token"
	"github.com/stretchr/testify/assert"
)

func TestAtIndex(t *testing.T) {
	tree := &srcmap.Tree{
		Pos: token.MakePos(1, 1),
		Elems: []*srcmap.Tree{
			srcmap.Leaf(token.MakePos(1, 2)),
			srcmap.Leaf(token.MakePos(1, 5)),
		},
	}

	assert.Equal(t, token.MakePos(1, 2), tree.AtIndex(0).Position())
	assert.Equal(t, token.MakePos(1, 5), tree.AtIndex(1).Position())
	assert.Equal(t, token.NoPos, tree.AtIndex(2).Position())
	assert.Equal(t, token.NoPos, tree.AtIndex(-1).Position())
}

func TestAtKeyValue(t *testing.T) {
	tree := &srcmap.Tree{
		Keys: []*srcmap.Tree{srcmap.Leaf(token.MakePos(2, 1))},
		Vals: []*srcmap.Tree{srcmap.Leaf(token.MakePos(2, 10))},
	}

	assert.Equal(t, token.MakePos(2, 1), tree.AtKey(0).Position())
	assert.Equal(t, token.MakePos(2, 10), tree.AtValue(0).Position())
	assert.Equal(t, token.NoPos, tree.AtKey(5).Position())
	assert.Equal(t, token.NoPos, tree.AtValue(5).Position())
}

func TestNilTreeIsAllUnknown(t *testing.T) {
	var tree *srcmap.Tree
	assert.Equal(t, token.NoPos, tree.Position())
	assert.Equal(t, token.NoPos, tree.AtIndex(0).Position())
	assert.Equal(t, token.NoPos, tree.AtIndex(0).AtKey(0).Position())
}
