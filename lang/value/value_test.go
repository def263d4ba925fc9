package value_test

import (
	"math"
	"testing"

	"github.com/dstlang/dst/lang/value"
	"github.com/stretchr/testify/assert"
)

func TestEqualScalars(t *testing.T) {
	assert.True(t, value.Equal(value.Null, value.Null))
	assert.True(t, value.Equal(value.True, value.True))
	assert.False(t, value.Equal(value.True, value.False))
	assert.True(t, value.Equal(value.Number(1), value.Number(1)))
	assert.True(t, value.Equal(value.NewString("hi"), value.NewString("hi")))
	assert.False(t, value.Equal(value.NewString("hi"), value.NewString("bye")))
	assert.False(t, value.Equal(value.NewString("hi"), value.NewSymbol("hi")))
}

func TestEqualCompositesByIdentity(t *testing.T) {
	a1 := value.NewArray([]value.Value{value.Number(1)})
	a2 := value.NewArray([]value.Value{value.Number(1)})
	assert.False(t, value.Equal(a1, a2), "distinct arrays with equal contents must not be Equal")
	assert.True(t, value.Equal(a1, a1))
}

func TestCompareTypeTagOrdering(t *testing.T) {
	assert.Negative(t, value.Compare(value.Null, value.True))
	assert.Negative(t, value.Compare(value.True, value.Number(1)))
	assert.Negative(t, value.Compare(value.Number(1), value.NewString("a")))
}

func TestCompareNumbers(t *testing.T) {
	assert.Negative(t, value.Compare(value.Number(1), value.Number(2)))
	assert.Positive(t, value.Compare(value.Number(2), value.Number(1)))
	assert.Zero(t, value.Compare(value.Number(1), value.Number(1)))
}

func TestCompareNaNIsTotal(t *testing.T) {
	nan := value.Number(math.NaN())
	inf := value.Number(math.Inf(1))

	assert.Zero(t, value.Compare(nan, nan), "two NaNs compare equal to each other")
	assert.Positive(t, value.Compare(nan, inf), "NaN sorts above +Inf")
	assert.Negative(t, value.Compare(inf, nan))
}

func TestCompareStrings(t *testing.T) {
	assert.Negative(t, value.Compare(value.NewString("a"), value.NewString("b")))
	assert.Zero(t, value.Compare(value.NewString("a"), value.NewString("a")))
}

func TestCompareArrayFormSharedBucket(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Number(1), value.Number(2)})
	form := value.NewForm([]value.Value{value.Number(1), value.Number(2)})

	assert.Zero(t, value.Compare(arr, form), "array and form with equal elements compare equal under the shared ordering bucket")

	longer := value.NewForm([]value.Value{value.Number(1), value.Number(2), value.Number(3)})
	assert.Negative(t, value.Compare(form, longer))
}

func TestDictGetSet(t *testing.T) {
	d := value.NewDict(0)
	k1 := value.NewString("a")
	k2 := value.NewString("b")
	d.Set(k1, value.Number(1))
	d.Set(k2, value.Number(2))

	v, ok := d.Get(value.NewString("a"))
	assert.True(t, ok)
	assert.Equal(t, value.Number(1), v)

	d.Set(value.NewString("a"), value.Number(42))
	v, ok = d.Get(value.NewString("a"))
	assert.True(t, ok)
	assert.Equal(t, value.Number(42), v)
	assert.Equal(t, 2, d.Len())

	_, ok = d.Get(value.NewString("missing"))
	assert.False(t, ok)
}

func TestDictGrows(t *testing.T) {
	d := value.NewDict(0)
	for i := 0; i < 100; i++ {
		d.Set(value.Number(i), value.Number(i*i))
	}
	assert.Equal(t, 100, d.Len())
	v, ok := d.Get(value.Number(57))
	assert.True(t, ok)
	assert.Equal(t, value.Number(57*57), v)
}

func TestIsValidSymbolName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"foo", true},
		{"foo-bar?", true},
		{"+", true},
		{"1foo", false},
		{"foo::bar", false},
		{"", false},
		{"has space", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, value.IsValidSymbolName(c.name))
		})
	}
}

func TestDictFreezePanics(t *testing.T) {
	d := value.NewDict(0)
	d.Set(value.Number(1), value.Number(1))
	d.Freeze()
	assert.Panics(t, func() { d.Set(value.Number(2), value.Number(2)) })
}
