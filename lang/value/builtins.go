package value

import (
	"fmt"
	"strings"
)

// LookupBuiltinMethod implements the built-in method dispatch table
// (spec.md §4.6): primitive containers (Array, String, Dict) expose
// methods that look like class methods but are resolved through this
// dedicated table keyed by (type tag, name) rather than a Class pointer,
// so user code can never override them. GetProperty consults this table
// before falling back to Instance field/method lookup.
//
// SPEC_FULL.md §12 supplements the base set (Array.add/clear,
// String.length/split, Dict.keys/values/clear) with additional methods
// read out of the original Rust reference implementation.
func LookupBuiltinMethod(recv Value, name string) (*NativeFunction, bool) {
	var fn NativeFunc
	switch r := recv.(type) {
	case *Array:
		fn = arrayMethod(r, name)
	case String:
		fn = stringMethod(r, name)
	case *Dict:
		fn = dictMethod(r, name)
	case Range:
		fn = rangeMethod(r, name)
	}
	if fn == nil {
		return nil, false
	}
	return &NativeFunction{Name: name, Fn: fn}, true
}

func arrayMethod(a *Array, name string) NativeFunc {
	switch name {
	case "добавить": // add
		return func(args []Value) (Value, error) {
			a.Elems = append(a.Elems, args...)
			return NilValue, nil
		}
	case "очистить": // clear
		return func(args []Value) (Value, error) {
			a.Elems = a.Elems[:0]
			return NilValue, nil
		}
	case "длина": // length
		return func(args []Value) (Value, error) { return Number(len(a.Elems)), nil }
	case "удалить": // remove at index
		return func(args []Value) (Value, error) {
			i, err := argIndex(args, 0, len(a.Elems))
			if err != nil {
				return nil, err
			}
			removed := a.Elems[i]
			a.Elems = append(a.Elems[:i], a.Elems[i+1:]...)
			return removed, nil
		}
	case "вставить": // insert at index
		return func(args []Value) (Value, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("вставить ожидает 2 аргумента, получено %d", len(args))
			}
			idx, ok := args[0].(Number)
			if !ok {
				return nil, fmt.Errorf("индекс должен быть числом")
			}
			i := int(idx)
			if i < 0 || i > len(a.Elems) {
				return nil, fmt.Errorf("индекс %d вне диапазона", i)
			}
			a.Elems = append(a.Elems, NilValue)
			copy(a.Elems[i+1:], a.Elems[i:])
			a.Elems[i] = args[1]
			return NilValue, nil
		}
	case "содержит": // contains
		return func(args []Value) (Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("содержит ожидает 1 аргумент")
			}
			for _, e := range a.Elems {
				if eq, err := Equals(e, args[0]); err == nil && eq {
					return Boolean(true), nil
				}
			}
			return Boolean(false), nil
		}
	case "индексОт": // indexOf
		return func(args []Value) (Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("индексОт ожидает 1 аргумент")
			}
			for i, e := range a.Elems {
				if eq, err := Equals(e, args[0]); err == nil && eq {
					return Number(i), nil
				}
			}
			return Number(-1), nil
		}
	case "объединить": // join
		return func(args []Value) (Value, error) {
			sep := ""
			if len(args) == 1 {
				s, ok := args[0].(String)
				if !ok {
					return nil, fmt.Errorf("разделитель должен быть строкой")
				}
				sep = s.String()
			}
			parts := make([]string, len(a.Elems))
			for i, e := range a.Elems {
				parts[i] = e.String()
			}
			return NewString(strings.Join(parts, sep)), nil
		}
	case "элементы": // elements — an Array is already its own element sequence
		return func(args []Value) (Value, error) {
			elems := make([]Value, len(a.Elems))
			copy(elems, a.Elems)
			return NewArray(elems), nil
		}
	default:
		return nil
	}
}

func stringMethod(s String, name string) NativeFunc {
	switch name {
	case "длина": // length
		return func(args []Value) (Value, error) { return Number(s.Len()), nil }
	case "разделить": // split
		return func(args []Value) (Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("разделить ожидает 1 аргумент")
			}
			sep, ok := args[0].(String)
			if !ok {
				return nil, fmt.Errorf("разделитель должен быть строкой")
			}
			parts := strings.Split(s.String(), sep.String())
			elems := make([]Value, len(parts))
			for i, p := range parts {
				elems[i] = NewString(p)
			}
			return NewArray(elems), nil
		}
	case "верхний": // upper
		return func(args []Value) (Value, error) { return NewString(strings.ToUpper(s.String())), nil }
	case "нижний": // lower
		return func(args []Value) (Value, error) { return NewString(strings.ToLower(s.String())), nil }
	case "обрезать": // trim
		return func(args []Value) (Value, error) { return NewString(strings.TrimSpace(s.String())), nil }
	case "содержит": // contains
		return func(args []Value) (Value, error) {
			sub, ok := args[0].(String)
			if !ok {
				return nil, fmt.Errorf("аргумент должен быть строкой")
			}
			return Boolean(strings.Contains(s.String(), sub.String())), nil
		}
	case "заменить": // replace
		return func(args []Value) (Value, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("заменить ожидает 2 аргумента")
			}
			from, ok1 := args[0].(String)
			to, ok2 := args[1].(String)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("аргументы должны быть строками")
			}
			return NewString(strings.ReplaceAll(s.String(), from.String(), to.String())), nil
		}
	case "индексОт": // indexOf
		return func(args []Value) (Value, error) {
			sub, ok := args[0].(String)
			if !ok {
				return nil, fmt.Errorf("аргумент должен быть строкой")
			}
			runes := []rune(s.String())
			target := []rune(sub.String())
			for i := 0; i+len(target) <= len(runes); i++ {
				if string(runes[i:i+len(target)]) == string(target) {
					return Number(i), nil
				}
			}
			return Number(-1), nil
		}
	case "элементы": // elements — one-codepoint strings, in order
		return func(args []Value) (Value, error) {
			runes := s.Runes()
			elems := make([]Value, len(runes))
			for i, r := range runes {
				elems[i] = NewString(string(r))
			}
			return NewArray(elems), nil
		}
	default:
		return nil
	}
}

func dictMethod(d *Dict, name string) NativeFunc {
	switch name {
	case "ключи": // keys
		return func(args []Value) (Value, error) { return NewArray(d.Keys()), nil }
	case "значения": // values
		return func(args []Value) (Value, error) { return NewArray(d.Values()), nil }
	case "очистить": // clear
		return func(args []Value) (Value, error) {
			for _, k := range d.KeysRaw() {
				d.Delete(k)
			}
			return NilValue, nil
		}
	case "длина": // length
		return func(args []Value) (Value, error) { return Number(d.Len()), nil }
	case "элементы": // elements — iterating a Dict visits its keys
		return func(args []Value) (Value, error) { return NewArray(d.Keys()), nil }
	default:
		return nil
	}
}

// rangeMethod materializes a Range into the concrete Array the for-each
// lowering iterates over (spec.md §4.2 "For-each over iterable"). A missing
// start defaults to 0; a missing end has no finite upper bound to
// enumerate, so it is rejected rather than silently producing an infinite
// or arbitrarily large array.
func rangeMethod(r Range, name string) NativeFunc {
	switch name {
	case "элементы":
		return func(args []Value) (Value, error) {
			if !r.HasEnd {
				return nil, fmt.Errorf("диапазон без верхней границы нельзя перечислить")
			}
			start := 0
			if r.HasStart {
				start = r.Start
			}
			end := r.End
			if end < start {
				return NewArray(nil), nil
			}
			elems := make([]Value, 0, end-start)
			for i := start; i < end; i++ {
				elems = append(elems, Number(i))
			}
			return NewArray(elems), nil
		}
	case "длина":
		return func(args []Value) (Value, error) {
			if !r.HasEnd {
				return nil, fmt.Errorf("диапазон без верхней границы не имеет длины")
			}
			start := 0
			if r.HasStart {
				start = r.Start
			}
			if r.End < start {
				return Number(0), nil
			}
			return Number(r.End - start), nil
		}
	default:
		return nil
	}
}

func argIndex(args []Value, pos int, n int) (int, error) {
	if len(args) <= pos {
		return 0, fmt.Errorf("отсутствует аргумент индекса")
	}
	num, ok := args[pos].(Number)
	if !ok {
		return 0, fmt.Errorf("индекс должен быть числом")
	}
	i := int(num)
	if i < 0 || i >= n {
		return 0, fmt.Errorf("индекс %d вне диапазона [0, %d)", i, n)
	}
	return i, nil
}
