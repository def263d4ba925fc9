package compiler

// TypeSet is a bitset over value.Type tags, used by FormOptions.Accept to
// describe which runtime types a caller accepts (checked by realize in
// dispatch.go) without allocating a []string per call — grounded in the original
// implementation's dst_arg_type bitmask, which this module's distillation
// had dropped (see SPEC_FULL.md, Supplemented Features, item 1).
type TypeSet uint16

const (
	TypeNil TypeSet = 1 << iota
	TypeBool
	TypeNumber
	TypeString
	TypeSymbol
	TypeArray
	TypeForm
	TypeDict
	TypeByteBuffer
	TypeCFunction
	TypeClosure
	TypeFuncDef
	TypeFuncEnv
	TypeThread

	TypeAny = TypeNil | TypeBool | TypeNumber | TypeString | TypeSymbol |
		TypeArray | TypeForm | TypeDict | TypeByteBuffer | TypeCFunction |
		TypeClosure | TypeFuncDef | TypeFuncEnv | TypeThread
)

// Has reports whether t includes tag.
func (t TypeSet) Has(tag TypeSet) bool { return t&tag != 0 }

// FormOptions carries the per-call compilation hints a special form or
// optimizer may set for the values it is about to compile: whether the
// result is needed at all (a statement evaluated only for effect can drop
// its result into a throwaway slot), whether this is a tail position (so a
// CALL may be lowered to TAILCALL), and a preferred target slot for the
// result, letting simple forms avoid an extra MOVE.
type FormOptions struct {
	// ResultUnused is true when the caller will discard the compiled
	// value's result; no slot needs to be allocated for it.
	ResultUnused bool
	// Tail is true when the form occupies a tail position: a `fn` body's
	// final expression, or a branch of an `if`/`do` that is itself in
	// tail position. Calls compiled under Tail may become TAILCALL.
	Tail bool
	// Target, when non-nil, names a slot the caller would like the result
	// placed into directly, saving a MOVE. Compilation is always free to
	// ignore it and return a different slot.
	Target *Slot
	// Accept restricts the runtime type(s) the caller is prepared to
	// receive. The zero value means no constraint was declared (most call
	// sites never populate it). A constant result is checked immediately
	// against Accept at compile time; anything else gets a CHECKTYPE
	// instruction inserted ahead of it so the restriction still holds at
	// run time.
	Accept TypeSet
}

// defaultOptions is the zero FormOptions: the result is needed, it is not
// in tail position, and there is no target or type restriction. Compile
// does not use it for the root form, which it compiles with Tail set so
// its value is returned.
var defaultOptions = FormOptions{}
