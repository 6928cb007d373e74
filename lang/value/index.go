package value

import "fmt"

// resolveRange clamps a Range's (possibly absent) bounds against length n,
// producing a half-open [start, end) pair (spec.md §6 "Ranges come only
// from slice syntax").
func resolveRange(r Range, n int) (start, end int) {
	start, end = 0, n
	if r.HasStart {
		start = clampIndex(r.Start, n)
	}
	if r.HasEnd {
		end = clampIndex(r.End, n)
	}
	if end < start {
		end = start
	}
	return start, end
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func normalizeIndex(i, n int) (int, error) {
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("индекс %d вне диапазона [0, %d)", i, n)
	}
	return idx, nil
}

// GetIndex implements the GetIndex opcode (spec.md §4.1 "Indexing").
func GetIndex(obj, idx Value) (Value, error) {
	switch obj := obj.(type) {
	case String:
		switch idx := idx.(type) {
		case Number:
			i, err := normalizeIndex(int(idx), obj.Len())
			if err != nil {
				return nil, err
			}
			return NewString(string(obj.runes[i])), nil
		case Range:
			s, e := resolveRange(idx, obj.Len())
			return NewString(string(obj.runes[s:e])), nil
		}
	case *Array:
		switch idx := idx.(type) {
		case Number:
			i, err := normalizeIndex(int(idx), len(obj.Elems))
			if err != nil {
				return nil, err
			}
			return obj.Elems[i], nil
		case Range:
			s, e := resolveRange(idx, len(obj.Elems))
			cp := make([]Value, e-s)
			copy(cp, obj.Elems[s:e])
			return NewArray(cp), nil
		}
	case *Dict:
		key, ok := ToKey(idx)
		if !ok {
			return nil, fmt.Errorf("ключ словаря типа %s не хешируемый", idx.Type())
		}
		v, found := obj.Get(key)
		if !found {
			return NilValue, nil
		}
		return v, nil
	}
	return nil, fmt.Errorf("индексирование не поддерживается для %s с индексом типа %s", obj.Type(), idx.Type())
}

// SetIndex implements the SetIndex opcode.
func SetIndex(obj, idx, val Value) error {
	switch obj := obj.(type) {
	case *Array:
		n, ok := idx.(Number)
		if !ok {
			return fmt.Errorf("индекс массива должен быть числом, получено %s", idx.Type())
		}
		i, err := normalizeIndex(int(n), len(obj.Elems))
		if err != nil {
			return err
		}
		obj.Elems[i] = val
		return nil
	case *Dict:
		key, ok := ToKey(idx)
		if !ok {
			return fmt.Errorf("ключ словаря типа %s не хешируемый", idx.Type())
		}
		obj.Set(key, val)
		return nil
	default:
		return fmt.Errorf("присваивание по индексу не поддерживается для %s", obj.Type())
	}
}
