package value

import (
	"math"
	"strings"
)

// Compare implements the value contract's total ordering: the
// type tag orders types, numeric types compare by value, strings compare
// lexicographically. It returns a negative number if x < y, a positive
// number if x > y, and zero if they are equal under this order (which,
// for composites, is a coarser relation than Equal — see Array/Form
// below).
//
// Decision D1 (see DESIGN.md): NaN is given a well-defined
// place in the order instead of being left incomparable, so that Compare
// is a genuine total order usable to dedupe the constant pool via a sorted
// structure. NaN compares greater than every other number, including
// +Inf, and two NaNs compare equal to each other.
//
// Decision D2 (see DESIGN.md): Array and Form share a single
// ordering bucket and are compared element-wise, tie-broken by length,
// exactly as the original implementation's pointer-compare branch treats
// them as one equivalence class. Compare does not tell them apart; use
// Type() for that.
func Compare(x, y Value) int {
	tx, ty := tagOf(x), tagOf(y)
	if tx != ty {
		if tx < ty {
			return -1
		}
		return 1
	}

	switch a := x.(type) {
	case Nil:
		return 0
	case Bool:
		return b2i(bool(a)) - b2i(bool(y.(Bool)))
	case Number:
		return compareNumber(float64(a), float64(y.(Number)))
	case String:
		return strings.Compare(a.s, y.(String).s)
	case Symbol:
		return strings.Compare(a.s, y.(Symbol).s)
	case sequence:
		return compareSequence(a.elems(), y.(sequence).elems())
	default:
		// Every remaining tag (dict, bytebuffer, cfunction, closure,
		// funcdef, funcenv, thread) orders by identity only: there is no
		// meaningful value order for them, so same-bucket values compare
		// equal only when they are literally the same value.
		if Equal(x, y) {
			return 0
		}
		return compareIdentity(x, y)
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func compareNumber(x, y float64) int {
	xNaN, yNaN := math.IsNaN(x), math.IsNaN(y)
	switch {
	case xNaN && yNaN:
		return 0
	case xNaN:
		return 1
	case yNaN:
		return -1
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func compareSequence(xs, ys []Value) int {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		if c := Compare(xs[i], ys[i]); c != 0 {
			return c
		}
	}
	return len(xs) - len(ys)
}

// compareIdentity gives a stable (if arbitrary) order to otherwise
// unordered composite values, based on their identity id, so Compare
// remains total even across values with no natural order.
func compareIdentity(x, y Value) int {
	ix, iy := identityOf(x), identityOf(y)
	switch {
	case ix < iy:
		return -1
	case ix > iy:
		return 1
	default:
		return 0
	}
}

func identityOf(v Value) uint64 {
	switch a := v.(type) {
	case *Dict:
		return a.id
	case *ByteBuffer:
		return a.id
	case *CFunction:
		return a.id
	case *Closure:
		return a.id
	case *FuncDefHandle:
		return a.id
	case *FuncEnv:
		return a.id
	case *Thread:
		return a.id
	default:
		return 0
	}
}
