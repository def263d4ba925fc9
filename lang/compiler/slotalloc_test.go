package compiler

import "testing"

func TestSlotAllocatorReuse(t *testing.T) {
	var a slotAllocator
	i0 := a.allocLocal()
	i1 := a.allocLocal()
	if i0 != 0 || i1 != 1 {
		t.Fatalf("expected sequential indices 0,1, got %d,%d", i0, i1)
	}
	a.free(i0)
	i2 := a.allocLocal()
	if i2 != 0 {
		t.Fatalf("expected freed index 0 to be reused, got %d", i2)
	}
	if a.smax != 2 {
		t.Fatalf("expected high-water mark 2, got %d", a.smax)
	}
}

func TestSlotAllocatorSpansWords(t *testing.T) {
	var a slotAllocator
	for i := 0; i < wordBits+5; i++ {
		a.allocLocal()
	}
	if a.smax != int32(wordBits+5) {
		t.Fatalf("expected smax %d, got %d", wordBits+5, a.smax)
	}
}

func TestSlotAllocatorFreeUnallocatedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic freeing an unallocated slot")
		}
	}()
	var a slotAllocator
	a.free(3)
}

func TestAllocNearRespectsMax(t *testing.T) {
	var a slotAllocator
	for i := int32(0); i < 3; i++ {
		a.allocLocal()
	}
	idx, ok := a.allocNear(2, 0)
	if ok {
		t.Fatalf("expected first free slot <=2 to be unavailable after exhausting 0-2, got idx=%d ok=%v", idx, ok)
	}
}

func TestFreeSlotNoOpForNamed(t *testing.T) {
	var a slotAllocator
	idx := a.allocLocal()
	a.freeSlot(Slot{Index: idx, Flags: FlagNamed})
	// The bit must still be set: freeSlot must not have released it.
	// A single explicit free succeeds exactly once if so.
	a.free(idx)
}
