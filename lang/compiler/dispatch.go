package compiler

import (
	"github.com/dstlang/dst/lang/diag"
	"github.com/dstlang/dst/lang/srcmap"
	"github.com/dstlang/dst/lang/token"
	"github.com/dstlang/dst/lang/value"
)

// compileValue is the form dispatcher: it decides, for one
// node of the input tree, whether it is a literal, a symbol reference, a
// special form, an optimizable builtin call, or a generic call.
//
// Every path through this function and everything it calls is responsible
// for applying opts itself via finishResult before returning — a Form
// dispatched to `if` or `do` passes opts down into sub-expressions that
// finish it directly in their own emitted code (a branch's RETURN has to
// live inside that branch, not after the branches converge), so there is
// no single place left to apply it uniformly on the way back up.
func (c *Compiler) compileValue(v value.Value, tree *srcmap.Tree, opts FormOptions) Slot {
	if c.failed() {
		return nilSlot
	}
	pos := tree.Position()

	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.recursionLimit {
		c.fail(pos, diag.RecursionLimit, "recursion limit exceeded")
		return nilSlot
	}

	switch x := v.(type) {
	case value.Symbol:
		return c.finishResult(pos, c.resolve(pos, x), opts)
	case *value.Form:
		return c.compileForm(x, tree, opts)
	default:
		// Arrays, dicts, bytebuffers, nil/bool/number/string: all
		// self-evaluating data, never dispatched as code. Only a Form's
		// head position is ever interpreted as something to call.
		return c.finishResult(pos, cslot(v), opts)
	}
}

// finishResult applies opts to an already-compiled slot: emit a RETURN
// under Tail (unless the slot was already returned), free it and yield
// nilSlot when the caller marked the result unused, move it into a
// requested Target, or hand it back exactly as produced.
func (c *Compiler) finishResult(pos token.Pos, result Slot, opts FormOptions) Slot {
	if c.failed() {
		return nilSlot
	}
	result = c.realize(pos, result, opts.Accept)
	if c.failed() {
		return nilSlot
	}
	if opts.Tail {
		if result.Flags.Has(FlagReturned) {
			return result
		}
		ret := c.toLocal(pos, result)
		c.emit(pos, Instr{Op: RETURN, A: ret.Index})
		ret.Flags |= FlagReturned
		return ret
	}
	if opts.ResultUnused {
		if result.IsLocal() {
			c.freeTemp(result)
		}
		return nilSlot
	}
	if opts.Target != nil && !sameSlot(result, *opts.Target) {
		c.move(pos, *opts.Target, result)
		return *opts.Target
	}
	return result
}

func sameSlot(a, b Slot) bool {
	return a.IsLocal() && b.IsLocal() && a.Index == b.Index
}

// realize enforces an undeclared-unless-populated Accept type set: a
// constant result is checked immediately (no point deferring a check the
// compiler can already answer), while anything else gets a CHECKTYPE
// guard emitted ahead of it so the restriction is enforced at run time
// too. accept == 0 means no restriction was declared and realize is a
// no-op, matching every FormOptions{} zero value already in use.
func (c *Compiler) realize(pos token.Pos, result Slot, accept TypeSet) Slot {
	if accept == 0 || accept == TypeAny {
		return result
	}
	if result.IsConstant() {
		if !accept.Has(typeSetOf(result.Constant)) {
			c.fail(pos, diag.BadSpecialArgs, "value of type %s does not satisfy required type set", result.Constant.Type())
		}
		return result
	}
	local := c.toLocal(pos, result)
	c.emit(pos, Instr{Op: CHECKTYPE, A: local.Index, B: int32(accept)})
	return local
}

// typeSetOf maps a runtime value to the single TypeSet bit describing it.
func typeSetOf(v value.Value) TypeSet {
	switch v.(type) {
	case value.Nil:
		return TypeNil
	case value.Bool:
		return TypeBool
	case value.Number:
		return TypeNumber
	case value.String:
		return TypeString
	case value.Symbol:
		return TypeSymbol
	case *value.Array:
		return TypeArray
	case *value.Form:
		return TypeForm
	case *value.Dict:
		return TypeDict
	case *value.ByteBuffer:
		return TypeByteBuffer
	case *value.CFunction:
		return TypeCFunction
	case *value.Closure:
		return TypeClosure
	case *value.FuncDefHandle:
		return TypeFuncDef
	case *value.FuncEnv:
		return TypeFuncEnv
	case *value.Thread:
		return TypeThread
	default:
		return 0
	}
}

// compileForm handles a Form node: dispatch to a special form if its head
// is a recognized keyword, to a C-function optimizer if its head resolves
// to one whose precondition matches the unevaluated argument vector, or
// else compile it as a generic call.
func (c *Compiler) compileForm(form *value.Form, tree *srcmap.Tree, opts FormOptions) Slot {
	pos := tree.Position()
	head, ok := form.Head()
	if !ok {
		return c.finishResult(pos, nilSlot, opts)
	}
	args := form.Tail()

	if sym, ok := head.(value.Symbol); ok {
		if sf, ok := c.specials[sym.Go()]; ok {
			return sf(c, tree, args, opts)
		}
		// The Environment is only consulted when no enclosing scope binds
		// the head name, so a local binding shadows a builtin optimizer.
		shadowed := false
		for s := c.top; s != nil && !shadowed; s = s.parent {
			_, shadowed = s.lookup(sym.Go())
		}
		if headVal, ok := c.env.Lookup(sym.Go()); ok && !shadowed {
			if cf, ok := headVal.(*value.CFunction); ok {
				if opt, ok := c.optimizers.lookup(cf); ok {
					if slot, done := opt(c, tree, args, opts); done {
						return slot
					}
				}
			}
		}
	}

	return c.compileGenericCall(head, tree, args, opts)
}

// argTree selects the source-map subtree for the i'th element of a
// Form's argument vector, where args[i] is form.Tail()[i] and the head
// itself occupies index 0 of the underlying Form.
func argTree(tree *srcmap.Tree, i int) *srcmap.Tree {
	return tree.AtIndex(i + 1)
}

// compileGenericCall compiles head and every argument to a local slot and
// emits CALL (or TAILCALL under Tail), freeing every temporary it
// allocated for the argument list before finishing per opts.
func (c *Compiler) compileGenericCall(head value.Value, tree *srcmap.Tree, args []value.Value, opts FormOptions) Slot {
	pos := tree.Position()
	fnSlot := c.toLocal(pos, c.compileValue(head, tree.AtIndex(0), FormOptions{}))

	argSlots := make([]Slot, len(args))
	for i, a := range args {
		argSlots[i] = c.toLocal(pos, c.compileValue(a, tree.AtIndex(i+1), FormOptions{}))
	}

	op := CALL
	if opts.Tail {
		op = TAILCALL
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
