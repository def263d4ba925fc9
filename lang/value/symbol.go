package value

import (
	"strconv"
	"sync"

	"github.com/dlclark/regexp2"
)

// Symbol is the type of an identifier: the head of a special form, the name
// bound by `def`/`var`/`fn` parameters, or a quoted atom. It shares String's
// memoized-hash header shape but is a distinct Go type so the form
// dispatcher can tell a bare
// identifier apart from a string literal with a single type switch case.
type Symbol struct {
	s    string
	hash uint64
}

var _ Value = Symbol{}

// symbolNamePattern rejects symbols that look like numeric literals (a
// leading digit) and reserves the "::" infix for future namespacing, using
// negative lookahead — a construct plain regexp cannot express, which is
// why symbol-name validation reaches for regexp2 instead of the standard
// library's regexp package.
const symbolNamePattern = `^(?!\d)(?!.*::)[^\s()\[\]{}"';]+$`

var (
	symbolNameRe     *regexp2.Regexp
	symbolNameReOnce sync.Once
)

func symbolNameMatcher() *regexp2.Regexp {
	symbolNameReOnce.Do(func() {
		symbolNameRe = regexp2.MustCompile(symbolNamePattern, regexp2.None)
	})
	return symbolNameRe
}

// IsValidSymbolName reports whether s is an acceptable symbol name: it must
// be compilable as the target of `def`, `var` or a `fn` parameter.
func IsValidSymbolName(s string) bool {
	if s == "" {
		return false
	}
	ok, err := symbolNameMatcher().MatchString(s)
	return err == nil && ok
}

// NewSymbol interns s into a Symbol header. The caller is expected to have
// validated the name with IsValidSymbolName if it originates from source
// text; internal synthetic symbols (loop labels, gensyms) skip that check.
func NewSymbol(s string) Symbol { return Symbol{s: s, hash: stringHash(s)} }

func (s Symbol) String() string { return s.s }
func (s Symbol) Type() string   { return "symbol" }
func (s Symbol) Truth() Bool    { return True }
func (s Symbol) Freeze()        {} // immutable
func (s Symbol) Len() int       { return len(s.s) }

// Go returns the underlying Go string.
func (s Symbol) Go() string { return s.s }

// GoString quotes the symbol's name, useful in %#v-style diagnostics.
func (s Symbol) GoString() string { return strconv.Quote(s.s) }
