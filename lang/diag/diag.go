// Package diag holds the diagnostic types shared by the compiler: the kinds
// of error the compiler core can raise and the
// position-aware error list used to report them. Formatting and surfacing
// of the error to a human is the host's concern; this package only gives
// the host a structured, typed value to work with.
package diag

import (
	"errors"
	"fmt"
	"go/scanner"

	"github.com/dstlang/dst/lang/token"
)

type (
	// Error is a single positioned diagnostic. It is an alias for
	// go/scanner.Error so that hosts already familiar with the standard
	// library's scanner/parser error shape can reuse their existing
	// formatting and sorting code unchanged.
	Error = scanner.Error
	// ErrorList collects Errors and sorts them by position; its Err method
	// returns nil for an empty list.
	ErrorList = scanner.ErrorList
)

// Kind enumerates the error kinds the compiler core can raise.
type Kind int

const (
	// Internal marks an invariant breach or allocator failure: a bug in the
	// compiler itself, not a malformed program.
	Internal Kind = iota
	// UnboundSymbol marks a reference to a name with no visible binding.
	UnboundSymbol
	// BadAssign marks a write to an immutable or constant slot.
	BadAssign
	// Arity marks a call made with the wrong number of arguments. The
	// compiler package does not raise it: special forms report a wrong
	// argument count as BadSpecialArgs.
	Arity
	// BadSpecialArgs marks a special form invoked with arguments of the
	// wrong shape or the wrong number.
	BadSpecialArgs
	// NoLoop marks a break or continue outside of a loop scope.
	NoLoop
	// RecursionLimit marks recursion depth exceeding the compiler's hard
	// limit.
	RecursionLimit
)

var kindNames = [...]string{
	Internal:       "internal",
	UnboundSymbol:  "unbound-symbol",
	BadAssign:      "bad-assign",
	Arity:          "arity",
	BadSpecialArgs: "bad-special-args",
	NoLoop:         "no-loop",
	RecursionLimit: "recursion-limit",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// CompileError is the error type returned by a failed compilation. It
// carries the Kind of failure and the position at which it was
// detected.
type CompileError struct {
	Kind Kind
	Pos  token.Position
	Msg  string
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() || e.Pos.Filename != "" {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap lets callers match a CompileError's kind with errors.Is against the
// package-level sentinels below.
func (e *CompileError) Unwrap() error {
	switch e.Kind {
	case UnboundSymbol:
		return ErrUnboundSymbol
	case BadAssign:
		return ErrBadAssign
	case Arity:
		return ErrArity
	case BadSpecialArgs:
		return ErrBadSpecialArgs
	case NoLoop:
		return ErrNoLoop
	case RecursionLimit:
		return ErrRecursionLimit
	default:
		return ErrInternal
	}
}

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	ErrInternal       = errors.New("internal compiler error")
	ErrUnboundSymbol  = errors.New("unbound symbol")
	ErrBadAssign      = errors.New("invalid assignment")
	ErrArity          = errors.New("wrong number of arguments")
	ErrBadSpecialArgs = errors.New("malformed special form arguments")
	ErrNoLoop         = errors.New("break or continue outside of a loop")
	ErrRecursionLimit = errors.New("recursion limit exceeded")
)

// New builds a CompileError.
func New(kind Kind, pos token.Position, format string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
