package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponos-lang/ponos/lang/value"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"nil", value.NilValue, false},
		{"false", value.Boolean(false), false},
		{"true", value.Boolean(true), true},
		{"zero number", value.Number(0), true},
		{"empty string", value.NewString(""), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, value.Truthy(tt.v))
		})
	}
}

func TestEquals(t *testing.T) {
	eq, err := value.Equals(value.Number(1), value.Number(1))
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = value.Equals(value.Number(1), value.Number(2))
	require.NoError(t, err)
	assert.False(t, eq)

	eq, err = value.Equals(value.NewString("а"), value.NewString("а"))
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = value.Equals(value.Number(1), value.NewString("1"))
	require.NoError(t, err)
	assert.False(t, eq)

	arr1 := value.NewArray([]value.Value{value.Number(1), value.Number(2)})
	arr2 := value.NewArray([]value.Value{value.Number(1), value.Number(2)})
	eq, err = value.Equals(arr1, arr2)
	require.NoError(t, err)
	assert.True(t, eq)

	d1 := value.NewDict(1)
	k, _ := value.ToKey(value.NewString("x"))
	d1.Set(k, value.Number(1))
	d2 := value.NewDict(1)
	d2.Set(k, value.Number(1))
	eq, err = value.Equals(d1, d2)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestCompare(t *testing.T) {
	less, greater, err := value.Compare(value.Number(1), value.Number(2))
	require.NoError(t, err)
	assert.True(t, less)
	assert.False(t, greater)

	less, greater, err = value.Compare(value.NewString("a"), value.NewString("b"))
	require.NoError(t, err)
	assert.True(t, less)
	assert.False(t, greater)

	_, _, err = value.Compare(value.Number(1), value.NewString("1"))
	assert.Error(t, err)
}

func TestToKeyRoundTrip(t *testing.T) {
	k, ok := value.ToKey(value.Number(42))
	require.True(t, ok)
	assert.Equal(t, value.Number(42), k.Value())

	_, ok = value.ToKey(value.NilValue)
	assert.False(t, ok)

	_, ok = value.ToKey(value.NewArray(nil))
	assert.False(t, ok)
}
