package compiler

import "github.com/dstlang/dst/lang/value"

// SlotFlag is a bitset of per-Slot attributes.
type SlotFlag uint8

const (
	// FlagConstant marks a slot that carries a literal value instead of a
	// runtime location. Mutually exclusive with a positive EnvIndex:
	// upvalues always materialize to a real location.
	FlagConstant SlotFlag = 1 << iota
	// FlagNamed marks a slot bound to a symbol in its owning scope.
	FlagNamed
	// FlagMutable marks a slot introduced by `var`: writable via `varset`.
	FlagMutable
	// FlagRef marks a cell-indirected slot: reads and writes go through a
	// one-element array. Nothing in this package sets it; copyInto only
	// tests it.
	FlagRef
	// FlagReturned marks a slot that has already been emitted as a
	// RETURN; rereading it is a programmer error.
	FlagReturned
)

// Has reports whether f is set in flags.
func (flags SlotFlag) Has(f SlotFlag) bool { return flags&f != 0 }

// Slot is a compile-time handle to a runtime value location: a local, an
// upvalue, or an inline constant. Slots are small, copyable
// data — never heap-allocated objects — and ownership of the underlying
// stack index lives in the owning Scope's slot bitmap, not in the Slot
// value itself.
type Slot struct {
	// Index is, for a local slot, its index into the current frame's slot
	// bitmap; for an upvalue slot, the original local index in the
	// captured frame.
	Index int32
	// EnvIndex is 0 for a current-frame local, and otherwise one plus the
	// position of the captured environment in the current function's Envs
	// list (an upvalue).
	EnvIndex int32
	Flags    SlotFlag
	// Constant holds the literal value when FlagConstant is set.
	Constant value.Value
}

// IsConstant reports whether s carries a literal value rather than a
// runtime location.
func (s Slot) IsConstant() bool { return s.Flags.Has(FlagConstant) }

// IsUpvalue reports whether s refers to a captured enclosing-function
// local rather than the current frame.
func (s Slot) IsUpvalue() bool { return s.EnvIndex > 0 }

// IsLocal reports whether s refers to a current-frame stack location
// (neither a constant nor an upvalue).
func (s Slot) IsLocal() bool { return !s.IsConstant() && !s.IsUpvalue() }

// cslot wraps a literal value x as a constant slot, mirroring the
// original dstc_cslot contract. It never allocates a runtime location.
func cslot(x value.Value) Slot {
	return Slot{Flags: FlagConstant, Constant: x}
}

// nilSlot is the neutral constant slot compilation falls back to once an
// error has been recorded: a harmless, side-effect-free result
// that lets recursion unwind cleanly.
var nilSlot = cslot(value.Null)
