package value

import "fmt"

// Closure pairs a compiled FuncDefHandle with a concrete captured
// environment vector, per the glossary's definition: "runtime pairing of a
// FuncDef with an environment vector". The compiler never constructs one —
// it only emits the CLOSURE instruction that asks the VM to — but it is
// part of the value contract because a closure can flow back in as a
// predeclared/universal binding the compiler resolves against.
type Closure struct {
	id   uint64
	Def  *FuncDefHandle
	Env  *FuncEnv
	Name string
}

var _ Value = (*Closure)(nil)

// NewClosure returns a new Closure value.
func NewClosure(def *FuncDefHandle, env *FuncEnv, name string) *Closure {
	return &Closure{id: nextID(), Def: def, Env: env, Name: name}
}

func (c *Closure) String() string {
	if c.Name != "" {
		return fmt.Sprintf("<closure %s>", c.Name)
	}
	return fmt.Sprintf("<closure %p>", c)
}
func (c *Closure) Type() string { return "closure" }
func (c *Closure) Truth() Bool  { return True }
func (c *Closure) Freeze()      {} // immutable once constructed
