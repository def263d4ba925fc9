package value

import (
	"fmt"

	"github.com/dstlang/dst/internal/slices0"
)

type dictEntry struct {
	key, val Value
}

// Dict is a mapping from Value keys to Value values. It is a small
// open-chaining hash table keyed by the package's own Hash/Equal
// functions rather than Go's native map, because Go's built-in
// map would require every key type to be comparable with ==, which holds
// for this package's value types (see equal.go) but would be an
// accident of implementation, not a documented contract; going through
// Hash/Equal keeps the mapping's semantics explicit and independent of
// how each Value happens to be represented in Go.
type Dict struct {
	id      uint64
	buckets [][]dictEntry
	size    int
	frozen  bool
}

var _ Value = (*Dict)(nil)

// NewDict returns an empty Dict with initial capacity for about size
// entries.
func NewDict(size int) *Dict {
	n := 8
	for n < size {
		n *= 2
	}
	return &Dict{id: nextID(), buckets: make([][]dictEntry, n)}
}

func (d *Dict) String() string { return fmt.Sprintf("{%d entries}", d.size) }
func (d *Dict) Type() string   { return "dict" }
func (d *Dict) Truth() Bool    { return True }
func (d *Dict) Freeze()        { d.frozen = true }
func (d *Dict) Frozen() bool   { return d.frozen }
func (d *Dict) Len() int       { return d.size }

func (d *Dict) bucketFor(k Value) int { return int(Hash(k) % uint64(len(d.buckets))) }

// Get returns the value associated with k, if any.
func (d *Dict) Get(k Value) (Value, bool) {
	b := d.buckets[d.bucketFor(k)]
	for _, e := range b {
		if Equal(e.key, k) {
			return e.val, true
		}
	}
	return nil, false
}

// Set associates k with v, growing the table if it has become too full.
// It panics if the dict has been frozen, matching the immutability
// guarantee Freeze documents.
func (d *Dict) Set(k, v Value) {
	if d.frozen {
		panic("value: write to frozen dict")
	}
	i := d.bucketFor(k)
	for n, e := range d.buckets[i] {
		if Equal(e.key, k) {
			d.buckets[i][n].val = v
			return
		}
	}
	d.buckets[i] = append(d.buckets[i], dictEntry{key: k, val: v})
	d.size++
	if d.size > len(d.buckets)*3/4 {
		d.grow()
	}
}

func (d *Dict) grow() {
	old := d.buckets
	d.buckets = make([][]dictEntry, len(old)*2)
	for _, b := range old {
		for _, e := range b {
			i := d.bucketFor(e.key)
			d.buckets[i] = append(d.buckets[i], e)
		}
	}
}

// Items returns every key/value pair, in unspecified order.
func (d *Dict) Items() []([2]Value) {
	out := make([][2]Value, 0, d.size)
	for _, b := range d.buckets {
		for _, e := range b {
			out = append(out, [2]Value{e.key, e.val})
		}
	}
	return out
}

// SortedItems returns every key/value pair ordered by Compare on the key,
// for callers that need a reproducible iteration order — the disassembly
// printer rendering a dict constant, for instance, where bucket order
// would otherwise make two runs of the same compilation diff spuriously.
func (d *Dict) SortedItems() []([2]Value) {
	out := d.Items()
	slices0.SortFunc(out, func(a, b [2]Value) int { return Compare(a[0], b[0]) })
	return out
}
