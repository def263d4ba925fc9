package compiler

import (
	"github.com/dstlang/dst/lang/diag"
	"github.com/dstlang/dst/lang/token"
)

// label is a jump target that may be placed after instructions jumping to
// it have already been emitted (a forward jump): each such jump records
// its own instruction position in fixups and gets patched once place
// learns the real program counter.
type label struct {
	pc     int32
	fixups []int32
}

const labelUnplaced = -1

func (c *Compiler) newLabel() *label { return &label{pc: labelUnplaced} }

// place fixes l's address at the current end of the instruction buffer and
// rewrites every instruction that jumped to it before it was known.
func (c *Compiler) place(l *label) {
	l.pc = int32(len(c.buf))
	for _, pos := range l.fixups {
		c.patchTarget(pos, l.pc)
	}
	l.fixups = nil
}

// patchTarget rewrites the jump-target operand of the instruction at pos.
// Every jump opcode this compiler emits carries its target in the last
// operand it uses: JUMP in A, JUMPIFFALSE/JUMPIFTRUE in B.
func (c *Compiler) patchTarget(pos int, target int32) {
	switch c.buf[pos].Op {
	case JUMP:
		c.buf[pos].A = target
	case JUMPIFFALSE, JUMPIFTRUE:
		c.buf[pos].B = target
	default:
		panic(internalErrorf("patchTarget: instruction at %d is not a jump", pos))
	}
}

// emit appends one instruction at the source position pos and marks the
// current scope touched.
func (c *Compiler) emit(pos token.Pos, ins Instr) int32 {
	at := int32(len(c.buf))
	c.buf = append(c.buf, ins)
	c.srcbuf = append(c.srcbuf, pos)
	c.top.touched = true
	return at
}

// emitJump emits a jump to l, resolving immediately if l is already
// placed (a backward jump, as in a loop's re-test) and registering a
// fixup otherwise (a forward jump, as in skipping an if's else branch).
func (c *Compiler) emitJump(pos token.Pos, op Opcode, cond Slot, l *label) int32 {
	var ins Instr
	switch op {
	case JUMP:
		ins = Instr{Op: JUMP}
	case JUMPIFFALSE, JUMPIFTRUE:
		ins = Instr{Op: op, A: cond.Index}
	default:
		panic(internalErrorf("emitJump: %v is not a jump opcode", op))
	}
	at := c.emit(pos, ins)
	if l.pc != labelUnplaced {
		c.patchTarget(int(at), l.pc)
	} else {
		l.fixups = append(l.fixups, at)
	}
	return at
}

// move emits a MOVE from src into dst unless they already name the same
// location, in which case it is a no-op — the common case when a form's
// natural result slot already matches its caller's requested target.
func (c *Compiler) move(pos token.Pos, dst, src Slot) {
	if dst.IsLocal() && src.IsLocal() && dst.Index == src.Index {
		return
	}
	c.emit(pos, Instr{Op: MOVE, A: dst.Index, B: src.Index})
}

// toLocal materializes s into an ordinary local register if it is not
// already one (a constant needs a LOADCONST, an upvalue a GETUPVALUE),
// returning the local slot holding its value. Used wherever an
// instruction operand must be a plain register, such as a CALL's
// argument list.
func (c *Compiler) toLocal(pos token.Pos, s Slot) Slot {
	if s.IsLocal() {
		return s
	}
	dst := c.allocTemp()
	c.materialize(pos, dst, s)
	return dst
}

// materialize emits whatever instruction turns s's value into dst: a
// LOADCONST for a constant, a GETUPVALUE for a captured local, or a plain
// MOVE for an ordinary local.
func (c *Compiler) materialize(pos token.Pos, dst, s Slot) {
	switch {
	case s.IsConstant():
		idx := c.top.frame.constSlot(s.Constant).Index
		c.emit(pos, Instr{Op: LOADCONST, A: dst.Index, B: idx})
	case s.IsUpvalue():
		c.emit(pos, Instr{Op: GETUPVALUE, A: dst.Index, B: s.EnvIndex - 1, C: s.Index})
	default:
		c.move(pos, dst, s)
	}
}

// copyInto writes src into dest, refusing a write to a constant slot
// (diag.BadAssign) and otherwise choosing MOVE, SETUPVALUE, or SETREF by
// dest's kind.
func (c *Compiler) copyInto(pos token.Pos, dest, src Slot) {
	if dest.IsConstant() {
		c.fail(pos, diag.BadAssign, "cannot assign to a constant slot")
		return
	}
	switch {
	case dest.IsUpvalue():
		s := c.toLocal(pos, src)
		c.emit(pos, Instr{Op: SETUPVALUE, A: s.Index, B: dest.EnvIndex - 1, C: dest.Index})
		c.freeTemp(s)
	case dest.Flags.Has(FlagRef):
		s := c.toLocal(pos, src)
		c.emit(pos, Instr{Op: SETREF, A: dest.Index, B: s.Index})
		c.freeTemp(s)
	default:
		c.move(pos, dest, src)
	}
}

// allocTemp allocates an unnamed local slot in the current function frame.
func (c *Compiler) allocTemp() Slot {
	idx := c.top.frame.slots.allocLocal()
	return Slot{Index: idx}
}

// freeTemp releases an unnamed local slot allocated by allocTemp. Named
// slots are never released here: freeSlot leaves them allocated.
func (c *Compiler) freeTemp(s Slot) {
	c.top.frame.slots.freeSlot(s)
}
