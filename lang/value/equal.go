package value

// Equal implements the value contract's strict equality: for
// strings and symbols, by length and content; for every composite type, by
// identity. Every Value implementation in this package is either a plain
// comparable Go value (Nil, Bool, Number, String, Symbol — String and
// Symbol's memoized hash field is a pure function of their content, so
// including it in a == comparison never disagrees with a content
// comparison) or a pointer to one of the composite types, whose == is
// already pointer identity. So Equal is exactly Go's == on the interface,
// stated as a named function so call sites read as a value-model operation
// rather than leaning on an implementation accident.
func Equal(x, y Value) bool {
	return x == y
}
