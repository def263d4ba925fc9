package compiler

import "math/bits"

// slotAllocator is a bitmap-backed local slot allocator: one
// word per 32 slots, so allocation and release are O(1) words amortized
// instead of O(n) over a boolean array. It belongs to exactly one
// funcFrame, shared by a function scope and its nested lexical scopes.
type slotAllocator struct {
	words []uint32
	smax  int32 // high-water mark of allocated index + 1
}

const wordBits = 32

// allocLocal scans the bitmap for the lowest clear bit, sets it, extending
// the bitmap if every word is full, and returns its index.
func (a *slotAllocator) allocLocal() int32 {
	for wi := range a.words {
		w := a.words[wi]
		if w == ^uint32(0) {
			continue
		}
		bit := bits.TrailingZeros32(^w)
		a.words[wi] |= 1 << uint(bit)
		idx := int32(wi*wordBits + bit)
		a.bump(idx)
		return idx
	}
	a.words = append(a.words, 1)
	idx := int32((len(a.words) - 1) * wordBits)
	a.bump(idx)
	return idx
}

func (a *slotAllocator) bump(idx int32) {
	if idx+1 > a.smax {
		a.smax = idx + 1
	}
}

// allocNear finds the nth clear bit with index <= max, used to meet
// instruction-encoding constraints such as a one-byte register field
// (max == 0xFF). It reports ok=false if no such bit exists.
func (a *slotAllocator) allocNear(max int32, nth int32) (index int32, ok bool) {
	var seen int32
	limitWord := int(max)/wordBits + 1
	for wi := 0; wi < limitWord; wi++ {
		var w uint32
		if wi < len(a.words) {
			w = a.words[wi]
		}
		for bit := 0; bit < wordBits; bit++ {
			idx := int32(wi*wordBits + bit)
			if idx > max {
				return 0, false
			}
			if w&(1<<uint(bit)) == 0 {
				if seen == nth {
					for wi >= len(a.words) {
						a.words = append(a.words, 0)
					}
					a.words[wi] |= 1 << uint(bit)
					a.bump(idx)
					return idx, true
				}
				seen++
			}
		}
	}
	return 0, false
}

// free clears the bit at index. Freeing an unset bit is a programmer
// error, caught here as an internal invariant breach rather than silently
// ignored.
func (a *slotAllocator) free(index int32) {
	wi, bit := int(index)/wordBits, uint(index)%wordBits
	if wi >= len(a.words) || a.words[wi]&(1<<bit) == 0 {
		panic(internalErrorf("free: slot %d was not allocated", index))
	}
	a.words[wi] &^= 1 << bit
}

// freeSlot releases s's underlying local index, if it owns one: a no-op
// for constant or named slots (they are owned by the scope's symbol table,
// not transient), and for upvalues (they have no local index to free).
func (a *slotAllocator) freeSlot(s Slot) {
	if s.Flags.Has(FlagConstant) || s.Flags.Has(FlagNamed) {
		return
	}
	if s.EnvIndex != 0 {
		return
	}
	a.free(s.Index)
}
