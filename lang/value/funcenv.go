package value

import "fmt"

// FuncEnv is a captured environment vector: the runtime storage backing
// the upvalues of one function activation that has outlived its stack
// frame because a nested closure captured it. The compiler only ever
// refers to these indirectly, via the Slot.EnvIndex/FuncDef.Envs
// bookkeeping; it never allocates one itself (that's the VM's job at
// CLOSURE time).
type FuncEnv struct {
	id     uint64
	Slots  []Value
	Parent *FuncEnv // non-nil if this env is itself a capture of an outer one
}

var _ Value = (*FuncEnv)(nil)

// NewFuncEnv returns a new FuncEnv with the given slots.
func NewFuncEnv(slots []Value) *FuncEnv { return &FuncEnv{id: nextID(), Slots: slots} }

func (e *FuncEnv) String() string { return fmt.Sprintf("<funcenv %d slots>", len(e.Slots)) }
func (e *FuncEnv) Type() string   { return "funcenv" }
func (e *FuncEnv) Truth() Bool    { return True }
func (e *FuncEnv) Freeze()        {} // immutable identity, slots still mutate at runtime
