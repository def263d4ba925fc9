package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstlang/dst/lang/compiler"
	"github.com/dstlang/dst/lang/diag"
	"github.com/dstlang/dst/lang/value"
)

func TestVarsetRejectsImmutableDef(t *testing.T) {
	root := form(sym("do"),
		form(sym("def"), sym("x"), num(1)),
		form(sym("varset"), sym("x"), num(2)),
	)
	fd, err := compiler.Compile(root, unmapped(), nil, false)
	assert.Nil(t, fd)
	require.Error(t, err)
}

func TestVarsetAcceptsVar(t *testing.T) {
	root := form(sym("do"),
		form(sym("var"), sym("x"), num(1)),
		form(sym("varset"), sym("x"), num(2)),
	)
	_, err := compiler.Compile(root, unmapped(), nil, false)
	require.NoError(t, err)
}

func TestFnProducesClosureForUnusedParam(t *testing.T) {
	body := form(sym("fn"), value.NewArray([]value.Value{sym("x")}), num(1))
	fd, err := compiler.Compile(body, unmapped(), nil, false)
	require.NoError(t, err)
	require.Len(t, fd.Defs, 1)
	assert.Empty(t, fd.Defs[0].Envs, "a fn body that never references an outer binding must have no captured envs")
}

func TestContinueOutsideLoopIsNoLoop(t *testing.T) {
	root := form(sym("continue"))
	_, err := compiler.Compile(root, unmapped(), nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, diag.ErrNoLoop)
}

func TestQuoteArityError(t *testing.T) {
	root := form(sym("quote"), num(1), num(2))
	_, err := compiler.Compile(root, unmapped(), nil, false)
	require.Error(t, err)
}

func TestQuoteDoesNotEvaluateItsArgument(t *testing.T) {
	// (quote undefined) must not resolve `undefined` as a symbol reference.
	root := form(sym("quote"), sym("undefined"))
	fd, err := compiler.Compile(root, unmapped(), nil, false)
	require.NoError(t, err)
	assert.Equal(t, sym("undefined"), fd.Consts[0])
}
