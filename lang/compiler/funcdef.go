package compiler

import (
	"github.com/dstlang/dst/lang/token"
	"github.com/dstlang/dst/lang/value"
)

// Instr is one register-machine instruction: an opcode plus up to three
// operands, interpreted per-opcode (see opcode.go). A, B, C name either
// slot indices, jump targets, or table indices depending on Op.
type Instr struct {
	Op   Opcode
	A, B int32
	C    int32
}

// Binding describes one named local or upvalue surviving into a FuncDef's
// debug metadata, so a disassembler can print source names instead of bare
// slot numbers.
type Binding struct {
	Name  string
	Index int32
	IsRef bool
}

// FuncDef is the finalized, emitted form of one function: the artifact this package hands to the runtime loader. Nothing in
// FuncDef is mutated once pop_funcdef produces it.
type FuncDef struct {
	Name     string
	Source   string
	Arity    int32
	Variadic bool
	// FrameSize is the number of registers the VM must reserve for one
	// activation of this function (the allocator's high-water mark).
	FrameSize int32

	Consts    []value.Value
	Code      []Instr
	SourceMap []token.Pos
	Defs      []*FuncDef
	// Envs records, for each environment this function captures (for its
	// own upvalues or on behalf of a closure nested in it), how to obtain
	// it from the enclosing
	// activation: 0 means "the enclosing activation's own locals", and any
	// other value v means "the enclosing activation's own Envs[v-1]" (see
	// DESIGN.md, Decision D3, for why the encoding is offset by one).
	Envs []int32

	Bindings []Binding
}
