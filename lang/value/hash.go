package value

import (
	"hash/fnv"
	"math"
)

// stringHash computes the FNV-1a hash of s, used to populate the memoized
// hash field of String and Symbol at construction time.
func stringHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Hash returns a stable hash of v consistent with Equal: Equal(x, y)
// implies Hash(x) == Hash(y). Used by Dict to pick a bucket.
func Hash(v Value) uint64 {
	switch a := v.(type) {
	case Nil:
		return 0
	case Bool:
		if a {
			return 1
		}
		return 2
	case Number:
		return hashFloat(float64(a))
	case String:
		return a.hash
	case Symbol:
		return a.hash ^ 0x9e3779b97f4a7c15 // distinguish from an equal-content String
	case *Array:
		return a.id
	case *Form:
		return a.id
	case *Dict:
		return a.id
	case *ByteBuffer:
		return a.id
	case *CFunction:
		return a.id
	case *Closure:
		return a.id
	case *FuncDefHandle:
		return a.id
	case *FuncEnv:
		return a.id
	case *Thread:
		return a.id
	default:
		return 0
	}
}

func hashFloat(f float64) uint64 {
	if math.IsNaN(f) {
		// every NaN compares equal to every other NaN (Compare's Decision
		// D1), so they must all hash identically too.
		return 0xdeadbeefdeadbeef
	}
	return math.Float64bits(f)
}
