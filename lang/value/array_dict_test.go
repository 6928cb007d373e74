package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponos-lang/ponos/lang/value"
)

func TestArrayBasics(t *testing.T) {
	a := value.NewArray([]value.Value{value.Number(1), value.NewString("x")})
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, `[1, "x"]`, a.String())
	assert.Equal(t, "массив", a.Type())
}

func TestArrayIsSharedByReference(t *testing.T) {
	a := value.NewArray([]value.Value{value.Number(1)})
	b := a
	b.Elems[0] = value.Number(99)
	assert.Equal(t, value.Number(99), a.Elems[0])
}

func TestDictSetGetDeleteLen(t *testing.T) {
	d := value.NewDict(0)
	k, ok := value.ToKey(value.NewString("ключ"))
	require.True(t, ok)

	_, found := d.Get(k)
	assert.False(t, found)

	d.Set(k, value.Number(7))
	v, found := d.Get(k)
	require.True(t, found)
	assert.Equal(t, value.Number(7), v)
	assert.Equal(t, 1, d.Len())

	removed := d.Delete(k)
	assert.True(t, removed)
	assert.Equal(t, 0, d.Len())

	removed = d.Delete(k)
	assert.False(t, removed)
}

func TestDictKeysValuesEach(t *testing.T) {
	d := value.NewDict(2)
	ka, _ := value.ToKey(value.Number(1))
	kb, _ := value.ToKey(value.Number(2))
	d.Set(ka, value.NewString("a"))
	d.Set(kb, value.NewString("b"))

	assert.ElementsMatch(t, []value.Value{value.Number(1), value.Number(2)}, d.Keys())
	assert.ElementsMatch(t, []value.Value{value.NewString("a"), value.NewString("b")}, d.Values())

	seen := 0
	d.Each(func(k value.Key, v value.Value) bool {
		seen++
		return true
	})
	assert.Equal(t, 2, seen)
}
