// Package value implements the tagged value model the compiler core
// consumes as an external dependency. It is deliberately thin:
// the compiler only needs to construct constant values and use them as
// keys for constant-pool deduplication — the actual runtime behavior of
// these values (arithmetic,
// indexing, iteration) belongs to the virtual machine this package's
// consumers target, not to the compiler.
package value

import "fmt"

// Value is implemented by every value the compiler or its target VM can
// manipulate: nil, booleans, numbers, strings, symbols, arrays, forms,
// dictionaries, byte buffers, C-function handles, closures, funcdef
// handles, funcenvs and threads.
type Value interface {
	// String returns a debug/print representation.
	String() string
	// Type names the value's tag, e.g. "nil", "number", "array".
	Type() string
	// Truth reports the value's boolean coercion. The compiler does not
	// call it; `if` and `while` test their condition at run time.
	Truth() Bool
	// Freeze marks the value immutable where its type supports that (Array,
	// Dict and ByteBuffer record a frozen flag; the rest are already
	// immutable). The compiler does not freeze its constant pool.
	Freeze()
}

// typeTag orders Value implementations into comparison buckets for
// Compare. Array and Form intentionally share a bucket: the original
// implementation orders arrays and forms (syntactic lists) under the same
// branch, and this module preserves that equivalence class (Decision D2
// in DESIGN.md) rather than "fixing" it into two distinct orders.
type typeTag int

const (
	tagNil typeTag = iota
	tagBool
	tagNumber
	tagString
	tagSymbol
	tagSequence // Array or Form
	tagDict
	tagByteBuffer
	tagCFunction
	tagClosure
	tagFuncDef
	tagFuncEnv
	tagThread
)

func tagOf(v Value) typeTag {
	switch v.(type) {
	case Nil:
		return tagNil
	case Bool:
		return tagBool
	case Number:
		return tagNumber
	case String:
		return tagString
	case Symbol:
		return tagSymbol
	case *Array, *Form:
		return tagSequence
	case *Dict:
		return tagDict
	case *ByteBuffer:
		return tagByteBuffer
	case *CFunction:
		return tagCFunction
	case *Closure:
		return tagClosure
	case *FuncDefHandle:
		return tagFuncDef
	case *FuncEnv:
		return tagFuncEnv
	case *Thread:
		return tagThread
	default:
		panic(fmt.Sprintf("value: unregistered Value implementation %T", v))
	}
}

// sequence is implemented by the two value kinds that Compare treats as a
// single equivalence class (Array, Form).
type sequence interface {
	Value
	elems() []Value
}
