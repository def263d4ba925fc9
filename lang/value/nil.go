package value

// Nil is the type of the nil value. There is exactly one value of this
// type, the zero value, exported as Null for convenience.
type Nil struct{}

// Null is the sole value of type Nil.
var Null = Nil{}

var _ Value = Null

func (Nil) String() string { return "nil" }
func (Nil) Type() string   { return "nil" }
func (Nil) Truth() Bool    { return False }
func (Nil) Freeze()        {} // immutable
