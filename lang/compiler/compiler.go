// Package compiler lowers a parsed tree of tagged values into the
// bytecode and metadata a register-based virtual machine loads as a
// FuncDef. It performs resolution and code generation in a single pass:
// a stack of Scopes tracks lexical bindings while it emits, rather than
// building a separate resolved intermediate form first.
package compiler

import (
	"github.com/dstlang/dst/internal/slices0"
	"github.com/dstlang/dst/lang/diag"
	"github.com/dstlang/dst/lang/srcmap"
	"github.com/dstlang/dst/lang/token"
	"github.com/dstlang/dst/lang/value"
)

// defaultRecursionDepth bounds compileValue's recursion over a
// pathologically deep or cyclic input tree, turning what would otherwise
// be a stack overflow into an ordinary diagnostic (diag.RecursionLimit).
// A host may lower or raise it per Compiler via WithRecursionLimit.
const defaultRecursionDepth = 4096

// Environment resolves names the compiled form does not itself bind: the
// top-level bindings a host runtime predeclares (builtins, globals).
// Looked up only after the scope chain is exhausted.
type Environment interface {
	Lookup(name string) (value.Value, bool)
}

// emptyEnv is the Environment used when New is called without one: every
// free symbol is simply unbound.
type emptyEnv struct{}

func (emptyEnv) Lookup(string) (value.Value, bool) { return nil, false }

// Compiler holds all state threaded through one compilation: the scope
// stack, the in-progress instruction buffer for whichever function scope
// is innermost, and the sticky first-error cell.
type Compiler struct {
	filename       string
	env            Environment
	recursionLimit int
	optimizers     *optimizerTable
	specials       map[string]specialForm

	top *Scope
	buf    []Instr
	srcbuf []token.Pos

	depth int
	err   *diag.CompileError
}

// Option configures a Compiler constructed by New.
type Option func(*Compiler)

// WithFilename sets the name reported in diagnostics and source
// positions; it has no effect on compiled output.
func WithFilename(name string) Option {
	return func(c *Compiler) { c.filename = name }
}

// WithEnvironment supplies the top-level bindings free symbols resolve
// against once the scope chain is exhausted.
func WithEnvironment(env Environment) Option {
	return func(c *Compiler) { c.env = env }
}

// WithRecursionLimit overrides defaultRecursionDepth, e.g. to tighten it
// in a CI context with a constrained stack, or loosen it for a host known
// to compile deliberately deep generated trees.
func WithRecursionLimit(n int) Option {
	return func(c *Compiler) { c.recursionLimit = n }
}

// New constructs a Compiler ready to compile one top-level form.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		filename:       "<input>",
		env:            emptyEnv{},
		recursionLimit: defaultRecursionDepth,
	}
	c.specials = defaultSpecials()
	c.optimizers = defaultOptimizers()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile lowers root (with its parallel source map tree) into a
// top-level FuncDef of the given arity, variadic-ness, and parameter
// names. An internal invariant breach raised anywhere below (an
// internalError panic) is recovered here and reported as diag.Internal,
// and a malformed input form is reported through the ordinary diag.Kind
// taxonomy; any other panic is re-raised.
func Compile(root value.Value, tree *srcmap.Tree, params []string, variadic bool, opts ...Option) (fd *FuncDef, err error) {
	c := New(opts...)
	return c.compile(root, tree, params, variadic)
}

func (c *Compiler) compile(root value.Value, tree *srcmap.Tree, params []string, variadic bool) (fd *FuncDef, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(internalError); ok {
				fd = nil
				err = diag.New(diag.Internal, token.At(c.filename, tree.Position()), "%s", string(ie))
				return
			}
			panic(r)
		}
	}()

	c.pushFunction(tree.Position(), params, variadic)
	c.compileValue(root, tree, FormOptions{Tail: true})
	if c.failed() {
		return nil, c.err
	}
	fd = c.popFuncDef(int32(len(params)), variadic, "")
	if c.failed() {
		return nil, c.err
	}
	return fd, nil
}

// pushFunction pushes a new function scope and binds its parameters as
// named locals in declaration order, mirroring push(new_function_frame=true)
// from the original compiler.
func (c *Compiler) pushFunction(pos token.Pos, params []string, variadic bool) {
	s := newScope(ScopeFunction, c.top, len(c.buf))
	c.top = s
	for _, p := range params {
		idx := s.frame.slots.allocLocal()
		slot := Slot{Index: idx, Flags: FlagNamed}
		s.bind(p, slot)
	}
	_ = variadic // variadic parameters share the same positional slots; the
	// trailing extra arguments are collected by the VM's call sequence
	//, not by anything this compiler allocates up front.
	_ = pos
}

// pushScope pushes a lexical (non-function) scope sharing the current
// function frame, for a block such as an if branch, a while body, or a do.
func (c *Compiler) pushScope() *Scope {
	s := newScope(ScopeLexical, c.top, len(c.buf))
	c.top = s
	return s
}

// pushLoop pushes a loop-body scope, giving break and continue somewhere
// to jump to.
func (c *Compiler) pushLoop() (*Scope, *loopLabels) {
	s := newScope(ScopeLoop, c.top, len(c.buf))
	ll := &loopLabels{l0: c.newLabel(), l1: c.newLabel()}
	s.loop = ll
	c.top = s
	return s, ll
}

// popScope discards the current scope and its symbol bindings. The named
// locals it introduced are not released: freeSlot is a no-op for FlagNamed
// slots, so their registers stay allocated in the shared function frame
// until the enclosing function is popped.
func (c *Compiler) popScope() {
	s := c.top
	if s.kind == ScopeFunction {
		panic(internalErrorf("popScope: use popFuncDef for a function scope"))
	}
	for _, nb := range s.named {
		s.frame.slots.freeSlot(nb.slot)
	}
	c.top = s.parent
}

// popFuncDef pops the current function scope, slicing the shared
// instruction buffer back to where this function's code began and
// packaging everything the frame accumulated into a FuncDef.
func (c *Compiler) popFuncDef(arity int32, variadic bool, name string) *FuncDef {
	s := c.top
	if s.kind != ScopeFunction {
		panic(internalErrorf("popFuncDef: current scope is not a function scope"))
	}
	for _, nb := range s.named {
		s.frame.slots.freeSlot(nb.slot)
	}

	start := s.frame.bytecodeStart
	code := slices0.Clone(c.buf[start:])
	smap := slices0.Clone(c.srcbuf[start:])
	c.buf = c.buf[:start]
	c.srcbuf = c.srcbuf[:start]

	fd := &FuncDef{
		Name:      name,
		Source:    c.filename,
		Arity:     arity,
		Variadic:  variadic,
		FrameSize: s.frame.slots.smax,
		Consts:    s.frame.consts,
		Code:      code,
		SourceMap: smap,
		Defs:      s.frame.defs,
		Envs:      s.frame.envs,
		Bindings:  s.frame.bindings,
	}

	c.top = s.parent
	if c.top != nil {
		c.top.frame.defs = append(c.top.frame.defs, fd)
	}
	return fd
}

// resolve looks up sym against the scope chain and, failing that, the
// compiler's Environment, recording diag.UnboundSymbol and returning the
// neutral nilSlot if nothing binds it.
func (c *Compiler) resolve(pos token.Pos, sym value.Symbol) Slot {
	name := sym.Go()
	for s := c.top; s != nil; s = s.parent {
		if slot, ok := s.lookup(name); ok {
			if s == c.top {
				return slot
			}
			return c.captureUpvalue(s, slot, pos)
		}
	}
	if v, ok := c.env.Lookup(name); ok {
		return cslot(v)
	}
	c.fail(pos, diag.UnboundSymbol, "unbound symbol: %s", name)
	return nilSlot
}

// captureUpvalue threads a forwarding chain of Envs entries from the use
// site down to defScope, one entry per FUNCTION boundary crossed, and
// returns a Slot that reads through the innermost link.
func (c *Compiler) captureUpvalue(defScope *Scope, local Slot, pos token.Pos) Slot {
	_ = pos
	var chain []*Scope
	for s := c.top; s != defScope; s = s.parent {
		if s == nil {
			panic(internalErrorf("captureUpvalue: defining scope not found on the scope chain"))
		}
		if s.kind == ScopeFunction {
			chain = append(chain, s)
		}
	}
	if len(chain) == 0 {
		// Same function frame, different lexical block: still an ordinary
		// local, not an upvalue.
		return local
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	isDirect := true
	var parentEnvIdx, innerIdx int32
	for _, fs := range chain {
		var forward int32
		if !isDirect {
			forward = parentEnvIdx + 1
		}
		innerIdx = fs.registerEnv(forward)
		isDirect = false
		parentEnvIdx = innerIdx
	}
	return Slot{Index: local.Index, EnvIndex: innerIdx + 1, Flags: local.Flags}
}

// currentLoop returns the nearest enclosing loop's labels, stopping at the
// first function boundary: a nested `fn` never sees an outer loop's break
// or continue targets.
func (c *Compiler) currentLoop() *loopLabels {
	for s := c.top; s != nil; s = s.parent {
		if s.kind == ScopeLoop {
			return s.loop
		}
		if s.kind == ScopeFunction {
			return nil
		}
	}
	return nil
}
