package compiler

import (
	"github.com/dolthub/swiss"

	"github.com/dstlang/dst/internal/slices0"
	"github.com/dstlang/dst/lang/value"
)

// ScopeKind distinguishes a scope that owns its own register frame (a
// function body) from one that merely nests lexically inside its
// enclosing function's frame (an if/while/do body) — the original Scope
// struct names both consts/slots/defs/envs and syms uniformly, but only a
// FUNCTION scope actually owns the first group; every lexical descendant
// shares its nearest enclosing function's funcFrame so that a name bound
// before an `if` remains a perfectly ordinary local inside its branches.
type ScopeKind int

const (
	// ScopeLexical is an ordinary nested block: an if branch, a do body.
	ScopeLexical ScopeKind = iota
	// ScopeFunction owns a fresh funcFrame: a closure boundary.
	ScopeFunction
	// ScopeLoop is a ScopeLexical that additionally carries loop labels,
	// modeled as its own kind so break/continue resolution is a kind
	// switch rather than a flag test or nil check.
	ScopeLoop
)

// funcFrame is the per-function register-allocation and output state
// shared by a FUNCTION scope and every Scope nested inside it up to (but
// not including) the next FUNCTION boundary.
type funcFrame struct {
	slots      slotAllocator
	consts     []value.Value
	constIndex map[value.Value]int32
	defs       []*FuncDef
	envs       []int32
	bindings   []Binding
	bytecodeStart int
}

func newFuncFrame(bytecodeStart int) *funcFrame {
	return &funcFrame{constIndex: make(map[value.Value]int32), bytecodeStart: bytecodeStart}
}

// constSlot interns x into frame's constant pool, returning a slot that
// references it by index rather than carrying the literal inline. Every
// constant slot (see cslot in slot.go) goes through it when materialize
// emits its LOADCONST.
func (f *funcFrame) constSlot(x value.Value) Slot {
	if idx, ok := f.constIndex[x]; ok {
		return Slot{Index: idx, Flags: FlagConstant, Constant: x}
	}
	idx := int32(len(f.consts))
	f.consts = append(f.consts, x)
	f.constIndex[x] = idx
	return Slot{Index: idx, Flags: FlagConstant, Constant: x}
}

// loopLabels names the two jump targets every loop body scope exposes to
// its (possibly nested, non-function-crossing) break and continue forms:
// L0 is where `continue` re-enters the loop test, L1 is where `break`
// exits past the loop entirely.
type loopLabels struct {
	l0, l1 *label
}

type namedBinding struct {
	name string
	slot Slot
}

// Scope is one lexical nesting level: a function body, or a block nested
// inside one. Symbol resolution walks the chain of
// Scopes via parent; register allocation and constant/def/env pools live
// on the shared funcFrame instead.
type Scope struct {
	kind   ScopeKind
	parent *Scope
	frame  *funcFrame

	// symtab holds, per name, a shadow stack of bindings introduced
	// directly in this scope (newest last): redefinition in the same
	// scope shadows rather than replaces, so more than one live binding
	// per name can exist within a single scope.
	symtab *swiss.Map[string, []Slot]
	named  []namedBinding

	// loop is non-nil exactly when kind == ScopeLoop.
	loop *loopLabels

	// touched becomes true the first time this scope's body emits an
	// instruction. It is set by emit only; popScope and popFuncDef do not
	// read it.
	touched bool
}

func newScope(kind ScopeKind, parent *Scope, bytecodeStart int) *Scope {
	s := &Scope{kind: kind, parent: parent, symtab: swiss.NewMap[string, []Slot](8)}
	if kind == ScopeFunction || parent == nil {
		s.frame = newFuncFrame(bytecodeStart)
	} else {
		s.frame = parent.frame
	}
	return s
}

func (s *Scope) lookup(name string) (Slot, bool) {
	stack, ok := s.symtab.Get(name)
	if !ok || len(stack) == 0 {
		return Slot{}, false
	}
	return stack[len(stack)-1], true
}

// bind introduces name as a new binding in s, shadowing any earlier
// binding of the same name in this same scope without disturbing it (the
// shadowed entry remains reachable if this one is later popped, which
// never happens mid-scope — only whole-scope pop discards it).
func (s *Scope) bind(name string, slot Slot) {
	stack, _ := s.symtab.Get(name)
	stack = append(stack, slot)
	s.symtab.Put(name, stack)
	s.named = append(s.named, namedBinding{name: name, slot: slot})
	s.frame.bindings = append(s.frame.bindings, Binding{
		Name:  name,
		Index: slot.Index,
		IsRef: slot.Flags.Has(FlagRef),
	})
}

// registerEnv dedupes and records a captured-environment forwarding entry
// on s's function frame, returning its 0-based position in frame.envs.
func (s *Scope) registerEnv(forward int32) int32 {
	if i := slices0.IndexFunc(s.frame.envs, func(v int32) bool { return v == forward }); i >= 0 {
		return int32(i)
	}
	s.frame.envs = append(s.frame.envs, forward)
	return int32(len(s.frame.envs) - 1)
}
