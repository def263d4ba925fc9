package compiler

import (
	"fmt"
	"strings"

	"github.com/dstlang/dst/lang/value"
)

// Disassemble renders fd and every function nested inside it as
// pseudo-assembly text: one line per instruction, prefixed with its
// program counter, followed by a dump of the constant pool and the
// capture (Envs) list. It is read-only tooling — the cmd/dstc compile
// subcommand prints it, as does disasm when stdout is not a terminal; the
// internal/disview stepper renders its own listing — and has no bearing on
// what the compiler itself emits.
func Disassemble(fd *FuncDef) string {
	var sb strings.Builder
	disassembleInto(&sb, fd, "")
	return sb.String()
}

func disassembleInto(sb *strings.Builder, fd *FuncDef, indent string) {
	name := fd.Name
	if name == "" {
		name = "<anonymous>"
	}
	fmt.Fprintf(sb, "%sfunction %s(arity=%d variadic=%v frame=%d)\n", indent, name, fd.Arity, fd.Variadic, fd.FrameSize)

	for pc, ins := range fd.Code {
		fmt.Fprintf(sb, "%s  %04d  %s\n", indent, pc, formatInstr(ins))
	}

	if len(fd.Consts) > 0 {
		fmt.Fprintf(sb, "%s  consts:\n", indent)
		for i, c := range fd.Consts {
			fmt.Fprintf(sb, "%s    [%d] %s\n", indent, i, formatConst(c))
		}
	}

	if len(fd.Envs) > 0 {
		fmt.Fprintf(sb, "%s  envs: %v\n", indent, fd.Envs)
	}

	if len(fd.Bindings) > 0 {
		fmt.Fprintf(sb, "%s  locals:\n", indent)
		for _, b := range fd.Bindings {
			ref := ""
			if b.IsRef {
				ref = " (ref)"
			}
			fmt.Fprintf(sb, "%s    %d = %s%s\n", indent, b.Index, b.Name, ref)
		}
	}

	for _, nested := range fd.Defs {
		disassembleInto(sb, nested, indent+"  ")
	}
}

func formatInstr(ins Instr) string {
	switch ins.Op {
	case RETURN, NOT:
		return fmt.Sprintf("%-12s A=%d", ins.Op, ins.A)
	case JUMP:
		return fmt.Sprintf("%-12s A=%d", ins.Op, ins.A)
	case JUMPIFFALSE, JUMPIFTRUE:
		return fmt.Sprintf("%-12s A=%d B=%d", ins.Op, ins.A, ins.B)
	case LOADCONST, NIL, TRUE, FALSE, CLOSURE:
		return fmt.Sprintf("%-12s A=%d B=%d", ins.Op, ins.A, ins.B)
	case CALL, TAILCALL, CALLSPREAD, TAILCALLSPREAD:
		return fmt.Sprintf("%-12s A=%d B=%d C=%d", ins.Op, ins.A, ins.B, ins.C)
	case CHECKTYPE:
		return fmt.Sprintf("%-12s A=%d typeset=%#04x", ins.Op, ins.A, uint16(ins.B))
	default:
		return fmt.Sprintf("%-12s A=%d B=%d C=%d", ins.Op, ins.A, ins.B, ins.C)
	}
}

// formatConst renders a constant value for the disassembly listing. Dict
// constants are printed via SortedItems so the same FuncDef always
// disassembles identically between runs, independent of that dict's
// internal bucket layout.
func formatConst(v value.Value) string {
	d, ok := v.(*value.Dict)
	if !ok {
		return fmt.Sprintf("%s %s", v.Type(), v.String())
	}
	items := d.SortedItems()
	parts := make([]string, len(items))
	for i, kv := range items {
		parts[i] = fmt.Sprintf("%s=%s", kv[0].String(), kv[1].String())
	}
	return fmt.Sprintf("dict {%s}", strings.Join(parts, ", "))
}
