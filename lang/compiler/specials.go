package compiler

import (
	"github.com/dstlang/dst/lang/diag"
	"github.com/dstlang/dst/lang/srcmap"
	"github.com/dstlang/dst/lang/token"
	"github.com/dstlang/dst/lang/value"
)

// specialForm lowers one special-form call: its argument vector is raw,
// uncompiled data, and it
// is responsible for applying opts to whatever result it produces before
// returning, exactly like compileValue itself.
type specialForm func(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) Slot

// defaultSpecials returns the required special-form table.
func defaultSpecials() map[string]specialForm {
	return map[string]specialForm{
		"quote":    specialQuote,
		"do":       specialDo,
		"def":      specialDef,
		"var":      specialVar,
		"varset":   specialVarSet,
		"if":       specialIf,
		"while":    specialWhile,
		"break":    specialBreak,
		"continue": specialContinue,
		"fn":       specialFn,
		"apply":    specialApply,
	}
}

func specialQuote(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) Slot {
	pos := tree.Position()
	if len(args) != 1 {
		c.fail(pos, diag.BadSpecialArgs, "quote: expected exactly one argument, got %d", len(args))
		return nilSlot
	}
	return c.finishResult(pos, cslot(args[0]), opts)
}

func specialDo(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) Slot {
	pos := tree.Position()
	if len(args) == 0 {
		return c.finishResult(pos, nilSlot, opts)
	}
	for i, a := range args[:len(args)-1] {
		c.compileValue(a, argTree(tree, i), FormOptions{ResultUnused: true})
	}
	last := len(args) - 1
	return c.compileValue(args[last], argTree(tree, last), opts)
}

// symbolArg extracts and validates a binding-target symbol: used for both
// declaration sites (def, var, fn parameters), where the name must be a
// legal identifier, and varset's reference to an existing binding, where
// the same check rejects a reserved-namespace name just as early.
func symbolArg(c *Compiler, pos token.Pos, who string, v value.Value) (value.Symbol, bool) {
	sym, ok := v.(value.Symbol)
	if !ok {
		c.fail(pos, diag.BadSpecialArgs, "%s: expected a symbol, got %s", who, v.Type())
		return value.Symbol{}, false
	}
	if !value.IsValidSymbolName(sym.Go()) {
		c.fail(pos, diag.BadSpecialArgs, "%s: %q is not a valid symbol name", who, sym.Go())
		return value.Symbol{}, false
	}
	return sym, true
}

func specialDef(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) Slot {
	pos := tree.Position()
	if len(args) != 2 {
		c.fail(pos, diag.BadSpecialArgs, "def: expected (def symbol expr), got %d args", len(args))
		return nilSlot
	}
	sym, ok := symbolArg(c, pos, "def", args[0])
	if !ok {
		return nilSlot
	}
	slot := c.compileValue(args[1], argTree(tree, 1), FormOptions{})
	if c.failed() {
		return nilSlot
	}
	if slot.IsLocal() {
		slot.Flags |= FlagNamed
	}
	c.top.bind(sym.Go(), slot)
	return c.finishResult(pos, slot, opts)
}

func specialVar(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) Slot {
	pos := tree.Position()
	if len(args) != 2 {
		c.fail(pos, diag.BadSpecialArgs, "var: expected (var symbol expr), got %d args", len(args))
		return nilSlot
	}
	sym, ok := symbolArg(c, pos, "var", args[0])
	if !ok {
		return nilSlot
	}
	exprSlot := c.compileValue(args[1], argTree(tree, 1), FormOptions{})
	if c.failed() {
		return nilSlot
	}
	local := c.allocTemp()
	c.materialize(pos, local, exprSlot)
	local.Flags |= FlagNamed | FlagMutable
	c.top.bind(sym.Go(), local)
	return c.finishResult(pos, local, opts)
}

func specialVarSet(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) Slot {
	pos := tree.Position()
	if len(args) != 2 {
		c.fail(pos, diag.BadSpecialArgs, "varset: expected (varset symbol expr), got %d args", len(args))
		return nilSlot
	}
	sym, ok := symbolArg(c, pos, "varset", args[0])
	if !ok {
		return nilSlot
	}
	target := c.resolve(pos, sym)
	if c.failed() {
		return nilSlot
	}
	if !target.Flags.Has(FlagMutable) {
		c.fail(pos, diag.BadAssign, "varset: %s was not declared with var", sym.Go())
		return nilSlot
	}
	exprSlot := c.compileValue(args[1], argTree(tree, 1), FormOptions{})
	if c.failed() {
		return nilSlot
	}
	c.copyInto(pos, target, exprSlot)
	return c.finishResult(pos, target, opts)
}

func specialIf(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) Slot {
	pos := tree.Position()
	if len(args) < 2 || len(args) > 3 {
		c.fail(pos, diag.BadSpecialArgs, "if: expected (if test then else?), got %d args", len(args))
		return nilSlot
	}

	testSlot := c.toLocal(pos, c.compileValue(args[0], argTree(tree, 0), FormOptions{}))
	if c.failed() {
		return nilSlot
	}
	elseLabel := c.newLabel()
	endLabel := c.newLabel()
	c.emitJump(pos, JUMPIFFALSE, testSlot, elseLabel)
	c.freeTemp(testSlot)

	branchOpts := opts
	allocatedTarget := false
	if !opts.Tail && !opts.ResultUnused && opts.Target == nil {
		t := c.allocTemp()
		branchOpts.Target = &t
		allocatedTarget = true
	}

	c.pushScope()
	c.compileValue(args[1], argTree(tree, 1), branchOpts)
	c.popScope()
	if !opts.Tail {
		c.emitJump(pos, JUMP, Slot{}, endLabel)
	}

	c.place(elseLabel)
	c.pushScope()
	var elseSlot Slot
	if len(args) == 3 {
		elseSlot = c.compileValue(args[2], argTree(tree, 2), branchOpts)
	} else {
		elseSlot = c.compileValue(value.Null, srcmap.Leaf(pos), branchOpts)
	}
	c.popScope()
	c.place(endLabel)

	if allocatedTarget {
		return *branchOpts.Target
	}
	if opts.Target != nil {
		return *opts.Target
	}
	return elseSlot
}

func specialWhile(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) Slot {
	pos := tree.Position()
	if len(args) < 1 {
		c.fail(pos, diag.BadSpecialArgs, "while: expected (while test body...)")
		return nilSlot
	}

	_, loop := c.pushLoop()
	c.place(loop.l0)
	testSlot := c.toLocal(pos, c.compileValue(args[0], argTree(tree, 0), FormOptions{}))
	c.emitJump(pos, JUMPIFFALSE, testSlot, loop.l1)
	c.freeTemp(testSlot)

	c.pushScope()
	for i, b := range args[1:] {
		c.compileValue(b, argTree(tree, i+1), FormOptions{ResultUnused: true})
	}
	c.popScope()

	c.emitJump(pos, JUMP, Slot{}, loop.l0)
	c.place(loop.l1)
	c.popScope()

	return c.finishResult(pos, nilSlot, opts)
}

func specialBreak(c *Compiler, tree *srcmap.Tree, args []value.Value, _ FormOptions) Slot {
	pos := tree.Position()
	if len(args) != 0 {
		c.fail(pos, diag.BadSpecialArgs, "break: takes no arguments")
		return nilSlot
	}
	loop := c.currentLoop()
	if loop == nil {
		c.fail(pos, diag.NoLoop, "break used outside a loop")
		return nilSlot
	}
	c.emitJump(pos, JUMP, Slot{}, loop.l1)
	return nilSlot
}

func specialContinue(c *Compiler, tree *srcmap.Tree, args []value.Value, _ FormOptions) Slot {
	pos := tree.Position()
	if len(args) != 0 {
		c.fail(pos, diag.BadSpecialArgs, "continue: takes no arguments")
		return nilSlot
	}
	loop := c.currentLoop()
	if loop == nil {
		c.fail(pos, diag.NoLoop, "continue used outside a loop")
		return nilSlot
	}
	c.emitJump(pos, JUMP, Slot{}, loop.l0)
	return nilSlot
}

// specialFn compiles (fn [params...] body...): it pushes a function
// scope, binds one named local per parameter, compiles the body as an
// implicit `do` in tail position, and emits a CLOSURE referencing the
// resulting FuncDef by index in the parent's defs table.
//
// The distilled form here only supports fixed-arity parameter lists; a
// trailing variadic parameter marker is a parser-level concern this
// module's input contract (a pre-parsed value tree) never exercises, so
// FuncDef.Variadic is always false for a directly compiled `fn`. apply's
// CALLSPREAD is the supported way to pass a dynamically-sized argument
// list at a call site.
func specialFn(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) Slot {
	pos := tree.Position()
	if len(args) < 1 {
		c.fail(pos, diag.BadSpecialArgs, "fn: expected (fn [params...] body...)")
		return nilSlot
	}
	paramsVal, ok := args[0].(*value.Array)
	if !ok {
		c.fail(pos, diag.BadSpecialArgs, "fn: parameter list must be an array")
		return nilSlot
	}
	params := make([]string, paramsVal.Len())
	for i := 0; i < paramsVal.Len(); i++ {
		sym, ok := symbolArg(c, pos, "fn parameter", paramsVal.At(i))
		if !ok {
			return nilSlot
		}
		params[i] = sym.Go()
	}

	c.pushFunction(pos, params, false)
	body := args[1:]
	if len(body) == 0 {
		c.compileValue(value.Null, srcmap.Leaf(pos), FormOptions{Tail: true})
	} else {
		for i, b := range body[:len(body)-1] {
			c.compileValue(b, argTree(tree, i+1), FormOptions{ResultUnused: true})
		}
		lastIdx := len(body) - 1
		c.compileValue(body[lastIdx], argTree(tree, lastIdx+1), FormOptions{Tail: true})
	}
	fd := c.popFuncDef(int32(len(params)), false, "")

	defIdx := int32(len(c.top.frame.defs) - 1)
	dst := c.allocTemp()
	c.emit(pos, Instr{Op: CLOSURE, A: dst.Index, B: defIdx, C: int32(len(fd.Envs))})
	return c.finishResult(pos, dst, opts)
}

// specialApply compiles (apply fn args... spread-last): every argument
// compiles to a local exactly like a generic call, but the call itself
// uses CALLSPREAD so the VM unpacks the final argument's elements
// in place, rather than passing it as a single positional value.
func specialApply(c *Compiler, tree *srcmap.Tree, args []value.Value, opts FormOptions) Slot {
	pos := tree.Position()
	if len(args) < 2 {
		c.fail(pos, diag.BadSpecialArgs, "apply: expected (apply fn args... spread), got %d args", len(args))
		return nilSlot
	}
	fnSlot := c.toLocal(pos, c.compileValue(args[0], argTree(tree, 0), FormOptions{}))
	rest := args[1:]
	argSlots := make([]Slot, len(rest))
	for i, a := range rest {
		argSlots[i] = c.toLocal(pos, c.compileValue(a, argTree(tree, i+1), FormOptions{}))
	}

	op := CALLSPREAD
	if opts.Tail {
		op = TAILCALLSPREAD
	}
	dst := c.allocTemp()
	c.emit(pos, Instr{Op: op, A: dst.Index, B: fnSlot.Index, C: int32(len(argSlots))})
	for _, s := range argSlots {
		c.freeTemp(s)
	}
	c.freeTemp(fnSlot)

	if opts.Tail {
		dst.Flags |= FlagReturned
	}
	return c.finishResult(pos, dst, opts)
}
