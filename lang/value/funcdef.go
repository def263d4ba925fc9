package value

import "fmt"

// FuncDefHandle wraps a compiled function template (a compiler.FuncDef) as
// a Value so it can travel through the runtime's value model (e.g. as an
// entry in a parent function's nested-def table, or loaded dynamically).
// The concrete type is kept as an opaque interface{} here, rather than a
// direct *compiler.FuncDef field, specifically to avoid an import cycle:
// the compiler package needs to produce value.Value constants, so value
// cannot import compiler back.
type FuncDefHandle struct {
	id  uint64
	Def interface{}
}

var _ Value = (*FuncDefHandle)(nil)

// NewFuncDefHandle wraps def (expected to be a *compiler.FuncDef) as a
// Value.
func NewFuncDefHandle(def interface{}) *FuncDefHandle {
	return &FuncDefHandle{id: nextID(), Def: def}
}

func (f *FuncDefHandle) String() string { return fmt.Sprintf("<funcdef %p>", f.Def) }
func (f *FuncDefHandle) Type() string   { return "funcdef" }
func (f *FuncDefHandle) Truth() Bool    { return True }
func (f *FuncDefHandle) Freeze()        {} // immutable
