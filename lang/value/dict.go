package value

import (
	"fmt"
	"strings"

	"github.com/dolthub/swiss"
)

// Dict is a shared mutable mapping from Key to Value. Insertion order is
// not guaranteed (spec.md §3) — it is backed by dolthub/swiss, the same
// open-addressing hash map the teacher uses for its Map value
// (lang/machine/map.go), which makes no ordering promise either.
type Dict struct {
	m *swiss.Map[Key, Value]
}

// NewDict returns an empty Dict with initial capacity for at least size
// entries.
func NewDict(size int) *Dict {
	if size < 1 {
		size = 1
	}
	return &Dict{m: swiss.NewMap[Key, Value](uint32(size))}
}

func (*Dict) Type() string { return "словарь" }

func (d *Dict) String() string {
	var parts []string
	d.m.Iter(func(k Key, v Value) bool {
		keyStr := k.String()
		if k.kind == 's' {
			keyStr = fmt.Sprintf("%q", keyStr)
		}
		parts = append(parts, keyStr+": "+v.String())
		return false
	})
	return "{" + strings.Join(parts, ", ") + "}"
}

// Get returns the value for k, or (Nil, false) if absent.
func (d *Dict) Get(k Key) (Value, bool) {
	v, ok := d.m.Get(k)
	if !ok {
		return NilValue, false
	}
	return v, true
}

// Set inserts or overwrites the value for k.
func (d *Dict) Set(k Key, v Value) { d.m.Put(k, v) }

// Delete removes k, reporting whether it was present.
func (d *Dict) Delete(k Key) bool { return d.m.Delete(k) }

// Len returns the number of entries.
func (d *Dict) Len() int { return d.m.Count() }

// Keys returns the Dict's keys as Values, in iteration order (unspecified).
func (d *Dict) Keys() []Value {
	keys := make([]Value, 0, d.m.Count())
	d.m.Iter(func(k Key, _ Value) bool {
		keys = append(keys, k.Value())
		return false
	})
	return keys
}

// Values returns the Dict's values, in iteration order (unspecified); the
// order is not guaranteed to match that of a separate Keys call.
func (d *Dict) Values() []Value {
	vals := make([]Value, 0, d.m.Count())
	d.m.Iter(func(_ Key, v Value) bool {
		vals = append(vals, v)
		return false
	})
	return vals
}

// KeysRaw returns the Dict's keys in their internal Key form, for callers
// (such as the clear() builtin method) that need to mutate the Dict while
// iterating its keys.
func (d *Dict) KeysRaw() []Key {
	keys := make([]Key, 0, d.m.Count())
	d.m.Iter(func(k Key, _ Value) bool {
		keys = append(keys, k)
		return false
	})
	return keys
}

// Each iterates over every entry until fn returns false.
func (d *Dict) Each(fn func(k Key, v Value) bool) {
	d.m.Iter(func(k Key, v Value) bool { return !fn(k, v) })
}
