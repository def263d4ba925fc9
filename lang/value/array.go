package value

import "fmt"

// Array is a mutable, ordered sequence of values.
type Array struct {
	id     uint64
	items  []Value
	frozen bool
}

var _ Value = (*Array)(nil)

// NewArray returns a new Array wrapping items (not copied).
func NewArray(items []Value) *Array {
	return &Array{id: nextID(), items: items}
}

func (a *Array) String() string { return fmt.Sprintf("@[%d items]", len(a.items)) }
func (a *Array) Type() string   { return "array" }
func (a *Array) Truth() Bool    { return True }
func (a *Array) Freeze()        { a.frozen = true }
func (a *Array) Frozen() bool   { return a.frozen }
func (a *Array) Len() int       { return len(a.items) }
func (a *Array) At(i int) Value { return a.items[i] }
func (a *Array) elems() []Value { return a.items }

var _ sequence = (*Array)(nil)
