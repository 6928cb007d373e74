package value

import (
	"fmt"

	"github.com/ponos-lang/ponos/lang/bytecode"
)

// UpvalueDesc describes one cell a Closure must capture when the
// Closure instruction builds it from a Function blueprint (spec.md §3
// "Function", §4.1 "Closures").
type UpvalueDesc struct {
	IsLocal bool
	Index   int
}

// Function is the shared, immutable, compiled body produced by the code
// generator (spec.md §3 "Function"). It is itself a constant-pool entry:
// the `Closure` opcode reads one out of the currently executing frame's
// pool.
type Function struct {
	Name         string
	Arity        int
	Code         []bytecode.Instruction
	Constants    []Value // this function's own constant pool (spec.md §9)
	UpvalueDescs []UpvalueDesc
	IsMethod     bool // slot 0 reserved for `this`
}

func (f *Function) String() string { return fmt.Sprintf("<функция %s>", displayName(f.Name)) }
func (*Function) Type() string     { return "функция" }

func displayName(n string) string {
	if n == "" {
		return "анонимная"
	}
	return n
}

// Closure is the runtime-callable form of a Function: the Function plus
// its captured Upvalue cells (spec.md §3 "Closure").
type Closure struct {
	Fn       *Function
	Upvalues []*Upvalue
}

func (c *Closure) String() string { return fmt.Sprintf("<функция %s>", displayName(c.Fn.Name)) }
func (*Closure) Type() string     { return "функция" }

// Upvalue is a shared mutable cell referencing a captured local variable.
// It has two states (spec.md §3 "Upvalue"): Open, while the owning stack
// slot is still live, and Closed once the value has been lifted off the
// stack into the cell itself. Multiple closures that capture the same
// variable share the same *Upvalue.
type Upvalue struct {
	// StackIndex is the absolute operand-stack slot this upvalue reads/writes
	// through while Closed is false. It is meaningless once Closed is true.
	StackIndex int
	Closed     bool
	Value      Value // valid only once Closed is true
}

// NativeFunc is a host-implemented function callable from Ponos as if it
// were a regular function (spec.md §1, §6 "Native module contract"):
// (args []Value) -> (Value, error). An error is translated by the VM into
// a Throw of a String carrying the error's message (spec.md §4.4, §7).
type NativeFunc func(args []Value) (Value, error)

// NativeFunction is the opaque handle the VM stores in a global slot for
// a registered native (spec.md §3).
type NativeFunction struct {
	Name string
	Fn   NativeFunc
}

func (n *NativeFunction) String() string { return fmt.Sprintf("<нативная функция %s>", n.Name) }
func (*NativeFunction) Type() string     { return "функция" }
