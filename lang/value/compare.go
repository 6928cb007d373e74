package value

import (
	"fmt"
	"strings"
)

// Truthy implements the language's notion of truthiness for conditions,
// `не`, and short-circuit `и`/`или` (spec.md §4.2.2): only Nil and
// Boolean(false) are falsy, everything else is truthy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Boolean:
		return bool(v)
	default:
		return true
	}
}

// Equals implements `==` (spec.md §3 "Equality"): structural on
// primitives, Nil and Range; pointer identity on Instance, Class,
// Function, Closure, BoundMethod, NativeFunction; element-wise on Array
// and Dict.
func Equals(a, b Value) (bool, error) {
	switch a := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok, nil
	case Number:
		bn, ok := b.(Number)
		return ok && a == bn, nil
	case Boolean:
		bb, ok := b.(Boolean)
		return ok && a == bb, nil
	case String:
		bs, ok := b.(String)
		return ok && a.String() == bs.String(), nil
	case Range:
		br, ok := b.(Range)
		return ok && a == br, nil
	case *Array:
		ba, ok := b.(*Array)
		if !ok || len(a.Elems) != len(ba.Elems) {
			return false, nil
		}
		for i, x := range a.Elems {
			eq, err := Equals(x, ba.Elems[i])
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	case *Dict:
		bd, ok := b.(*Dict)
		if !ok || a.Len() != bd.Len() {
			return false, nil
		}
		eq := true
		var err error
		a.Each(func(k Key, v Value) bool {
			ov, found := bd.Get(k)
			if !found {
				eq = false
				return false
			}
			var e2 bool
			e2, err = Equals(v, ov)
			if err != nil || !e2 {
				eq = false
				return false
			}
			return true
		})
		return eq, err
	case *Instance:
		bi, ok := b.(*Instance)
		return ok && a == bi, nil
	case *Class:
		bc, ok := b.(*Class)
		return ok && a == bc, nil
	case *Function:
		bf, ok := b.(*Function)
		return ok && a == bf, nil
	case *Closure:
		bc, ok := b.(*Closure)
		return ok && a == bc, nil
	case *BoundMethod:
		bb, ok := b.(*BoundMethod)
		return ok && a == bb, nil
	case *NativeFunction:
		bn, ok := b.(*NativeFunction)
		return ok && a == bn, nil
	default:
		return false, fmt.Errorf("не удалось сравнить значения типа %s", a.Type())
	}
}

// Compare implements `<`/`>` (spec.md §3 "Ordering"): numeric for Number,
// lexicographic (by code point) for String. Any other pairing is a
// runtime type error, throwable per spec.md §7.
func Compare(a, b Value) (less, greater bool, err error) {
	switch a := a.(type) {
	case Number:
		bn, ok := b.(Number)
		if !ok {
			return false, false, typeErr(a, b)
		}
		return a < bn, a > bn, nil
	case String:
		bs, ok := b.(String)
		if !ok {
			return false, false, typeErr(a, b)
		}
		c := strings.Compare(a.String(), bs.String())
		return c < 0, c > 0, nil
	default:
		return false, false, typeErr(a, b)
	}
}

func typeErr(a, b Value) error {
	return fmt.Errorf("невозможно сравнить %s и %s", a.Type(), b.Type())
}
