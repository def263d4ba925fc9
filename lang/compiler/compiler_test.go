package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstlang/dst/lang/compiler"
	"github.com/dstlang/dst/lang/diag"
	"github.com/dstlang/dst/lang/srcmap"
	"github.com/dstlang/dst/lang/token"
	"github.com/dstlang/dst/lang/value"
)

func form(items ...value.Value) *value.Form { return value.NewForm(items) }
func sym(s string) value.Symbol             { return value.NewSymbol(s) }
func num(n float64) value.Number            { return value.Number(n) }

// unmapped is a source map for a value tree with no real positions: every
// node in this package's tests is synthesized directly rather than parsed,
// so there is nothing meaningful to point diagnostics at.
func unmapped() *srcmap.Tree { return srcmap.Leaf(token.NoPos) }

func TestQuoteInTailPosition(t *testing.T) {
	root := form(sym("quote"), form(num(1), num(2), num(3)))
	fd, err := compiler.Compile(root, unmapped(), nil, false)
	require.NoError(t, err)
	require.Len(t, fd.Code, 2)
	assert.Equal(t, compiler.LOADCONST, fd.Code[0].Op)
	assert.Equal(t, compiler.RETURN, fd.Code[1].Op)
}

func TestAddOptimizerFoldsConstants(t *testing.T) {
	root := form(sym("do"),
		form(sym("def"), sym("x"), num(1)),
		form(sym("def"), sym("y"), num(2)),
		form(sym("+"), sym("x"), sym("y")),
	)
	fd, err := compiler.Compile(root, unmapped(), nil, false, compiler.WithEnvironment(compiler.StandardEnvironment()))
	require.NoError(t, err)
	require.Len(t, fd.Code, 2, "folding should reduce the whole do body to one LOADCONST + RETURN")
	assert.Equal(t, compiler.LOADCONST, fd.Code[0].Op)
	assert.Equal(t, value.Number(3), fd.Consts[fd.Code[0].B])
	assert.Equal(t, compiler.RETURN, fd.Code[1].Op)
}

func TestIfTruePicksThenBranch(t *testing.T) {
	root := form(sym("if"), value.True, num(1), num(2))
	fd, err := compiler.Compile(root, unmapped(), nil, false)
	require.NoError(t, err)
	require.NotEmpty(t, fd.Code)
	assert.Equal(t, compiler.RETURN, fd.Code[len(fd.Code)-1].Op)

	// A true test falls through JUMPIFFALSE into the then branch, so the
	// first RETURN reached returns the constant loaded just before it: 1.
	first := -1
	for i, ins := range fd.Code {
		if ins.Op == compiler.RETURN {
			first = i
			break
		}
	}
	require.Greater(t, first, 0)
	load := fd.Code[first-1]
	assert.Equal(t, compiler.LOADCONST, load.Op)
	assert.Equal(t, value.Number(1), fd.Consts[load.B])
}

func TestNestedClosureCapturesOuterParam(t *testing.T) {
	inner := form(sym("fn"), value.NewArray([]value.Value{sym("y")}),
		form(sym("+"), sym("x"), sym("y")))
	outer := form(sym("fn"), value.NewArray([]value.Value{sym("x")}), inner)

	fd, err := compiler.Compile(outer, unmapped(), nil, false, compiler.WithEnvironment(compiler.StandardEnvironment()))
	require.NoError(t, err)
	require.Len(t, fd.Defs, 1, "the top-level function should hold the outer fn's def")
	outerDef := fd.Defs[0]
	require.Len(t, outerDef.Defs, 1, "outer fn's body should have produced exactly one nested closure def")
	innerDef := outerDef.Defs[0]
	assert.Equal(t, []int32{0}, innerDef.Envs, "inner closure captures its direct parent's locals at position 0")
}

func TestWhileLoopEmitsBackwardJump(t *testing.T) {
	root := form(sym("do"),
		form(sym("var"), sym("i"), num(0)),
		form(sym("while"), form(sym("<"), sym("i"), num(3)),
			form(sym("varset"), sym("i"), form(sym("+"), sym("i"), num(1)))),
	)
	fd, err := compiler.Compile(root, unmapped(), nil, false, compiler.WithEnvironment(compiler.StandardEnvironment()))
	require.NoError(t, err)

	var sawBackwardJump bool
	for i, ins := range fd.Code {
		if ins.Op == compiler.JUMP && ins.A <= int32(i) {
			sawBackwardJump = true
		}
	}
	assert.True(t, sawBackwardJump, "while must emit a backward JUMP re-entering the test")
}

func TestVarsetUndefinedIsUnboundSymbol(t *testing.T) {
	root := form(sym("varset"), sym("undefined"), num(1))
	fd, err := compiler.Compile(root, unmapped(), nil, false)
	assert.Nil(t, fd)
	require.Error(t, err)
	assert.ErrorIs(t, err, diag.ErrUnboundSymbol)
}

func TestBreakAtTopLevelIsNoLoop(t *testing.T) {
	root := form(sym("break"))
	fd, err := compiler.Compile(root, unmapped(), nil, false)
	assert.Nil(t, fd)
	require.Error(t, err)
	assert.ErrorIs(t, err, diag.ErrNoLoop)
}

func TestEmptyDoCompilesToNilConstant(t *testing.T) {
	root := form(sym("do"))
	fd, err := compiler.Compile(root, unmapped(), nil, false)
	require.NoError(t, err)
	require.Len(t, fd.Code, 2)
	assert.Equal(t, compiler.LOADCONST, fd.Code[0].Op)
	assert.Equal(t, value.Null, fd.Consts[fd.Code[0].B])
}

func TestDropUnusedConstantEmitsNothing(t *testing.T) {
	root := form(sym("do"), num(42), value.Null)
	fd, err := compiler.Compile(root, unmapped(), nil, false)
	require.NoError(t, err)
	// 42 is dropped (ResultUnused, a pure constant, no instruction); only
	// the trailing nil constant is realized and returned.
	require.Len(t, fd.Code, 2)
}
