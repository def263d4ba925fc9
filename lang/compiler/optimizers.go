package compiler

import (
	"github.com/dstlang/dst/lang/srcmap"
	"github.com/dstlang/dst/lang/value"
)

// optimizerFunc inspects a call's still-uncompiled argument vector and
// either produces a specialized compilation and reports true, or declines
// by returning (_, false) so the dispatcher falls through to a generic
// call.
type optimizerFunc func(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) (Slot, bool)

// optimizerTable maps a C-function's identity — its pointer, never its
// name — to the optimizer that knows how to specialize calls to it.
type optimizerTable struct {
	byIdentity map[*value.CFunction]optimizerFunc
}

func (t *optimizerTable) lookup(cf *value.CFunction) (optimizerFunc, bool) {
	fn, ok := t.byIdentity[cf]
	return fn, ok
}

func (t *optimizerTable) register(cf *value.CFunction, fn optimizerFunc) {
	t.byIdentity[cf] = fn
}

// Well-known arithmetic builtins an Environment may bind under the usual
// operator names so their calls reach the matching optimizer below. A
// host environment is free to bind additional names to the same handles.
var (
	CFunctionAdd = value.NewCFunction("+")
	CFunctionSub = value.NewCFunction("-")
	CFunctionMul = value.NewCFunction("*")
	CFunctionDiv = value.NewCFunction("/")

	CFunctionLt = value.NewCFunction("<")
	CFunctionLe = value.NewCFunction("<=")
	CFunctionGt = value.NewCFunction(">")
	CFunctionGe = value.NewCFunction(">=")
	CFunctionEq = value.NewCFunction("=")
)

func defaultOptimizers() *optimizerTable {
	t := &optimizerTable{byIdentity: make(map[*value.CFunction]optimizerFunc)}
	t.register(CFunctionAdd, arithOptimizer(ADD, 0))
	t.register(CFunctionSub, arithOptimizer(SUB, 0))
	t.register(CFunctionMul, arithOptimizer(MUL, 1))
	t.register(CFunctionDiv, arithOptimizer(DIV, 1))

	t.register(CFunctionLt, compareOptimizer(LT))
	t.register(CFunctionLe, compareOptimizer(LE))
	t.register(CFunctionGt, compareOptimizer(GT))
	t.register(CFunctionGe, compareOptimizer(GE))
	t.register(CFunctionEq, compareOptimizer(EQL))
	return t
}

// compareOptimizer builds an optimizer for a strictly binary comparison
// builtin: it declines (falls through to a generic call) for any arity
// other than two, since chained comparisons like `(< a b c)` are not a
// single opcode this register machine models directly.
func compareOptimizer(op Opcode) optimizerFunc {
	return func(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) (Slot, bool) {
		if len(args) != 2 {
			return Slot{}, false
		}
		pos := tree.Position()
		lhs := c.toLocal(pos, c.compileValue(args[0], argTree(tree, 0), FormOptions{}))
		rhs := c.toLocal(pos, c.compileValue(args[1], argTree(tree, 1), FormOptions{}))
		if c.failed() {
			return nilSlot, true
		}
		dst := c.allocTemp()
		c.emit(pos, Instr{Op: op, A: dst.Index, B: lhs.Index, C: rhs.Index})
		c.freeTemp(lhs)
		c.freeTemp(rhs)
		return c.finishResult(pos, dst, opts), true
	}
}

// arithOptimizer builds an optimizer for a left-associative n-ary
// arithmetic builtin: it folds the call to a single constant when every
// argument compiles to a constant number, and otherwise emits a chain of
// binary ops over materialized locals. identity is the fold base case for
// a zero-argument call (0 for +, 1 for *).
func arithOptimizer(op Opcode, identity float64) optimizerFunc {
	fold := func(a, b float64) float64 {
		switch op {
		case ADD:
			return a + b
		case SUB:
			return a - b
		case MUL:
			return a * b
		case DIV:
			return a / b
		default:
			panic(internalErrorf("arithOptimizer: unsupported opcode %v", op))
		}
	}

	return func(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) (Slot, bool) {
		pos := tree.Position()
		if len(args) == 0 {
			return c.finishResult(pos, cslot(value.Number(identity)), opts), true
		}

		slots := make([]Slot, len(args))
		for i, a := range args {
			slots[i] = c.compileValue(a, argTree(tree, i), FormOptions{})
		}
		if c.failed() {
			return nilSlot, true
		}

		if folded, ok := tryFoldConstants(slots, fold); ok {
			return c.finishResult(pos, cslot(value.Number(folded)), opts), true
		}

		acc := c.toLocal(pos, slots[0])
		for _, s := range slots[1:] {
			rhs := c.toLocal(pos, s)
			dst := c.allocTemp()
			c.emit(pos, Instr{Op: op, A: dst.Index, B: acc.Index, C: rhs.Index})
			c.freeTemp(acc)
			c.freeTemp(rhs)
			acc = dst
		}
		return c.finishResult(pos, acc, opts), true
	}
}

func tryFoldConstants(slots []Slot, fold func(a, b float64) float64) (float64, bool) {
	n, ok := slots[0].Constant.(value.Number)
	if !slots[0].IsConstant() || !ok {
		return 0, false
	}
	acc := float64(n)
	for _, s := range slots[1:] {
		n, ok := s.Constant.(value.Number)
		if !s.IsConstant() || !ok {
			return 0, false
		}
		acc = fold(acc, float64(n))
	}
	return acc, true
}
