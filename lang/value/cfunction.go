package value

import "fmt"

// CFunction is a handle to a builtin function implemented outside the
// compiled language (e.g. in the host runtime). Its identity — not its
// name — is what the compiler's C-function optimizer table
// keys on: two CFunction values naming the same builtin are still distinct
// slots in the optimizer table unless they are the same *CFunction
// pointer, exactly as the value contract's "value equality on the C-function pointer"
// wording requires.
type CFunction struct {
	id   uint64
	Name string
}

var _ Value = (*CFunction)(nil)

// NewCFunction returns a new CFunction handle named name, for diagnostics
// only; identity is the pointer, not the name.
func NewCFunction(name string) *CFunction { return &CFunction{id: nextID(), Name: name} }

func (c *CFunction) String() string { return fmt.Sprintf("<cfunction %s>", c.Name) }
func (c *CFunction) Type() string   { return "cfunction" }
func (c *CFunction) Truth() Bool    { return True }
func (c *CFunction) Freeze()        {} // immutable
