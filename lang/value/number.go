package value

import "strconv"

// Number is the type of a numeric value: IEEE-754 64-bit float, per the
// value contract.
type Number float64

var _ Value = Number(0)

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (n Number) Type() string   { return "number" }
func (n Number) Truth() Bool    { return n != 0 }
func (n Number) Freeze()        {} // immutable
