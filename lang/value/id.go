package value

import "sync/atomic"

var idCounter uint64

// nextID hands out a process-unique identity for composite values, used by
// Hash instead of hashing a Go pointer directly (which would need the
// unsafe package). Two composites are only Equal if they are the same Go
// pointer, which already implies the same id; id exists purely to make
// that identity hashable.
func nextID() uint64 { return atomic.AddUint64(&idCounter, 1) }
