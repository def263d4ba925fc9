package compiler

import (
	"fmt"

	"github.com/dstlang/dst/lang/diag"
	"github.com/dstlang/dst/lang/token"
)

// internalError marks an invariant breach the compiler detected in its own
// bookkeeping (an allocator underflow, an unresolvable upvalue forwarding
// entry) rather than in the program being compiled. It is raised with
// panic and recovered exactly once, at the Compile entry point, so that
// deeply nested invariant checks can fail fast without threading an error
// return through every call in the recursion.
type internalError string

func (e internalError) Error() string { return string(e) }

func internalErrorf(format string, args ...interface{}) internalError {
	return internalError(fmt.Sprintf(format, args...))
}

// fail records c's first error. Calling fail again after an error is already
// recorded is a no-op, matching the single-error-cell semantics: no
// cascading diagnostics for the same compilation.
func (c *Compiler) fail(pos token.Pos, kind diag.Kind, format string, args ...interface{}) {
	if c.err != nil {
		return
	}
	c.err = diag.New(kind, token.At(c.filename, pos), format, args...)
}

// failed reports whether a prior fail call has already recorded an error.
func (c *Compiler) failed() bool { return c.err != nil }
