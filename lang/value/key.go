package value

import "fmt"

// Key is the hashable subset of Value usable as a Dict key: Number,
// String or Boolean (spec.md §3 "ValueKey"). It is a plain comparable
// struct so it can be used directly as the key type of the swiss.Map that
// backs Dict (lang/value/dict.go) without a custom hash function.
type Key struct {
	kind byte // 'n' number, 's' string, 'b' boolean
	num  float64
	str  string
	bul  bool
}

// ToKey converts v to its Key form, or reports ok=false if v is not
// hashable (spec.md: "Any attempt to use a non-hashable value as a dict
// key fails with a runtime type error").
func ToKey(v Value) (Key, bool) {
	switch v := v.(type) {
	case Number:
		return Key{kind: 'n', num: float64(v)}, true
	case String:
		return Key{kind: 's', str: v.String()}, true
	case Boolean:
		return Key{kind: 'b', bul: bool(v)}, true
	default:
		return Key{}, false
	}
}

// Value converts a Key back to the Value it represents.
func (k Key) Value() Value {
	switch k.kind {
	case 'n':
		return Number(k.num)
	case 's':
		return NewString(k.str)
	case 'b':
		return Boolean(k.bul)
	default:
		panic(fmt.Sprintf("invalid key kind %q", k.kind))
	}
}

func (k Key) String() string { return k.Value().String() }
