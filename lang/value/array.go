package value

import (
	"fmt"
	"strings"
)

// Array is a shared mutable ordered sequence of Value. It is reference
// shared: aliased mutations are visible to every holder of the same
// *Array (spec.md §3, §5).
type Array struct {
	Elems []Value
}

// NewArray returns an Array wrapping elems directly; callers must not
// subsequently mutate elems through any other reference.
func NewArray(elems []Value) *Array { return &Array{Elems: elems} }

func (a *Array) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		if s, ok := e.(String); ok {
			parts[i] = fmt.Sprintf("%q", s.String())
		} else {
			parts[i] = e.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (*Array) Type() string { return "массив" }

func (a *Array) Len() int { return len(a.Elems) }
