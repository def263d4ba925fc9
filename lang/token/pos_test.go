package token

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakePosLineCol(t *testing.T) {
	cases := []struct {
		line, col int
	}{
		{1, 1},
		{1, 80},
		{42, 7},
		{MaxLines, 1},
		{1, MaxCols},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d:%d", c.line, c.col), func(t *testing.T) {
			p := MakePos(c.line, c.col)
			gotLine, gotCol := p.LineCol()
			assert.Equal(t, c.line, gotLine)
			assert.Equal(t, c.col, gotCol)
			assert.False(t, p.Unknown())
		})
	}
}

func TestNoPosUnknown(t *testing.T) {
	assert.True(t, NoPos.Unknown())

	var zero Pos
	assert.True(t, zero.Unknown())
}

func TestPositionString(t *testing.T) {
	cases := []struct {
		name string
		pos  Position
		want string
	}{
		{"empty", Position{}, "-"},
		{"no filename", Position{Line: 3, Col: 4}, "3:4"},
		{"filename only", Position{Filename: "in.dst"}, "in.dst"},
		{"full", Position{Filename: "in.dst", Line: 3, Col: 4}, "in.dst:3:4"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.pos.String())
		})
	}
}

func TestAt(t *testing.T) {
	p := MakePos(5, 9)
	pos := At("in.dst", p)
	assert.Equal(t, Position{Filename: "in.dst", Line: 5, Col: 9}, pos)
	assert.True(t, pos.IsValid())

	unk := At("in.dst", NoPos)
	assert.False(t, unk.IsValid())
}
