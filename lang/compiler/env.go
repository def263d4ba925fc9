package compiler

import "github.com/dstlang/dst/lang/value"

// mapEnvironment is a simple Environment backed by a Go map, sufficient
// for tests and small embeddings; a host runtime with a larger namespace
// is expected to supply its own Environment implementation instead.
type mapEnvironment map[string]value.Value

func (e mapEnvironment) Lookup(name string) (value.Value, bool) {
	v, ok := e[name]
	return v, ok
}

// StandardEnvironment returns an Environment binding the conventional
// arithmetic and comparison operator names to the builtin CFunction
// handles this package's optimizer table recognizes, so that ordinary
// arithmetic forms get optimizer treatment without a caller having to
// wire the identities up by hand.
func StandardEnvironment() Environment {
	return mapEnvironment{
		"+":  CFunctionAdd,
		"-":  CFunctionSub,
		"*":  CFunctionMul,
		"/":  CFunctionDiv,
		"<":  CFunctionLt,
		"<=": CFunctionLe,
		">":  CFunctionGt,
		">=": CFunctionGe,
		"=":  CFunctionEq,
	}
}
