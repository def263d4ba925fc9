package diag_test

import (
	"errors"
	"testing"

	"github.com/dstlang/dst/lang/diag"
	"github.com/dstlang/dst/lang/token"
	"github.com/stretchr/testify/assert"
)

func TestCompileErrorUnwrap(t *testing.T) {
	cases := []struct {
		kind diag.Kind
		want error
	}{
		{diag.UnboundSymbol, diag.ErrUnboundSymbol},
		{diag.BadAssign, diag.ErrBadAssign},
		{diag.Arity, diag.ErrArity},
		{diag.BadSpecialArgs, diag.ErrBadSpecialArgs},
		{diag.NoLoop, diag.ErrNoLoop},
		{diag.RecursionLimit, diag.ErrRecursionLimit},
		{diag.Internal, diag.ErrInternal},
	}
	for _, c := range cases {
		t.Run(c.kind.String(), func(t *testing.T) {
			err := diag.New(c.kind, token.Position{}, "boom")
			assert.True(t, errors.Is(err, c.want))
		})
	}
}

func TestCompileErrorMessage(t *testing.T) {
	err := diag.New(diag.UnboundSymbol, token.Position{Filename: "in.dst", Line: 2, Col: 5}, "undefined: %s", "foo")
	assert.Equal(t, "in.dst:2:5: unbound-symbol: undefined: foo", err.Error())
}
