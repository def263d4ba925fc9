package value

import "fmt"

// Thread is an opaque handle to a runtime fiber/coroutine. The compiler
// core never creates or inspects one; it exists in the value contract only
// because a Thread can appear as a predeclared binding the compiler
// resolves a symbol to.
type Thread struct {
	id uint64
}

var _ Value = (*Thread)(nil)

// NewThread returns a new Thread handle.
func NewThread() *Thread { return &Thread{id: nextID()} }

func (t *Thread) String() string { return fmt.Sprintf("<thread %p>", t) }
func (t *Thread) Type() string   { return "thread" }
func (t *Thread) Truth() Bool    { return True }
func (t *Thread) Freeze()        {} // immutable identity
