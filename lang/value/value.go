// Package value implements the tagged universe of runtime values
// manipulated by the code generator's constant pool and the virtual
// machine (spec.md §3 "Value"). Array, Dict, Function, Closure, Class and
// Instance are reference-shared heap objects; Nil, Number, Boolean, String
// and Range are copied by value.
package value

import "fmt"

// Value is implemented by every runtime value. Unlike the teacher's
// interface-mixin design, Ponos values are few and fixed (spec.md's table
// enumerates exactly thirteen variants), so equality, ordering, truthiness
// and hashing are implemented as package-level functions over a type
// switch rather than as optional capability interfaces — there is no need
// for user-extensible value kinds.
type Value interface {
	// String returns the source-level display form of the value (what a
	// native `to_string`/string-interpolation conversion would produce).
	String() string
	// Type returns the short type-tag name used in error messages
	// ("число", "строка", ...).
	Type() string
}

// Nil is the unit/absent value.
type Nil struct{}

func (Nil) String() string { return "нуль" }
func (Nil) Type() string   { return "нуль" }

// NilValue is the single Nil instance; Go's zero-size struct lets every
// reference to it be a true singleton, mirroring the teacher's NilType
// constant pattern (lang/machine/nil.go).
var NilValue = Nil{}

// Number is Ponos's only numeric type: a 64-bit IEEE float (spec.md §3).
type Number float64

func (n Number) String() string { return formatNumber(float64(n)) }
func (Number) Type() string     { return "число" }

func formatNumber(f float64) string {
	if f == float64(int64(f)) && f < 1e15 && f > -1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// Boolean is истина/ложь.
type Boolean bool

func (b Boolean) String() string {
	if b {
		return "истина"
	}
	return "ложь"
}
func (Boolean) Type() string { return "логическое" }

// String is an immutable, owned sequence of Unicode code points. Indexing
// and slicing operate on code points, not bytes (spec.md §3), so the
// runes are pre-decoded once at construction.
type String struct {
	runes []rune
}

// NewString constructs a String from a Go string, decoding it to code
// points up front so GetIndex/GetProperty-driven slicing never has to
// re-scan UTF-8.
func NewString(s string) String { return String{runes: []rune(s)} }

func (s String) String() string { return string(s.runes) }
func (String) Type() string     { return "строка" }

// Runes returns the code points backing s. Callers must not mutate the
// returned slice; String is immutable.
func (s String) Runes() []rune { return s.runes }

// Len returns the number of code points.
func (s String) Len() int { return len(s.runes) }

// Range is the `(start?, end?)` value produced only by slice syntax
// a[start:end] (spec.md §3, §6). A nil-equivalent bound is represented by
// HasStart/HasEnd being false.
type Range struct {
	Start    int
	End      int
	HasStart bool
	HasEnd   bool
}

func (r Range) String() string {
	start, end := "", ""
	if r.HasStart {
		start = formatNumber(float64(r.Start))
	}
	if r.HasEnd {
		end = formatNumber(float64(r.End))
	}
	return start + ":" + end
}
func (Range) Type() string { return "диапазон" }
