package vm

import (
	"fmt"

	"github.com/ponos-lang/ponos/lang/value"
)

// LimitError is a fatal, non-catchable abort (spec.md §5 notes there is no
// preemption; Limits is the only backstop) — it is never translated into
// a throwable value the way other runtime errors are, mirroring the
// teacher's "thread cancelled" TODO comment in lang/machine/machine.go
// marking step/recursion limits as critical rather than catchable.
type LimitError struct{ msg string }

func (e *LimitError) Error() string { return e.msg }

// call implements the Call opcode's callee dispatch (spec.md §4.1
// "Calls"). The stack on entry is [..., callee, arg1, ..., argN]; every
// branch below leaves either a single result value at calleeIdx (native
// calls, constructor-less class calls) or a freshly pushed Frame whose
// base is calleeIdx, so slot 0 of the callee's activation is exactly
// where the dispatched value used to sit.
func (vm *VM) call(argc int) error {
	sp := len(vm.stack)
	argsStart := sp - argc
	calleeIdx := argsStart - 1
	callee := vm.stack[calleeIdx]

	switch c := callee.(type) {
	case *value.Closure:
		return vm.callClosure(c, calleeIdx, argsStart, argc)
	case *value.Class:
		return vm.callClass(c, calleeIdx, argsStart, argc)
	case *value.BoundMethod:
		return vm.callBoundMethod(c, calleeIdx, argsStart, argc)
	case *value.NativeFunction:
		return vm.callNative(c, calleeIdx, argsStart, argc)
	default:
		return fmt.Errorf("значение типа %s не вызываемо", callee.Type())
	}
}

func (vm *VM) pushFrame(cl *value.Closure, base int) error {
	if vm.Limits.MaxCallDepth > 0 && len(vm.frames)+1 > vm.Limits.MaxCallDepth {
		return &LimitError{msg: "превышена максимальная глубина вызовов"}
	}
	vm.frames = append(vm.frames, &Frame{cl: cl, base: base})
	return nil
}

// callClosure handles Callee = Function/Closure (spec.md §4.1): arity
// check, consume the callee slot by shifting the arguments down over it,
// push a new frame based at the vacated slot.
func (vm *VM) callClosure(c *value.Closure, calleeIdx, argsStart, argc int) error {
	if c.Fn.Arity != argc {
		return arityErr(funcDisplayName(c.Fn.Name), c.Fn.Arity, argc)
	}
	copy(vm.stack[calleeIdx:calleeIdx+argc], vm.stack[argsStart:argsStart+argc])
	vm.stack = vm.stack[:calleeIdx+argc]
	return vm.pushFrame(c, calleeIdx)
}

// callClass handles Callee = Class (spec.md §4.1): synthesize an
// Instance in place of the callee slot; if a constructor exists, run it
// as a method with the instance as receiver (args already sit directly
// above, so no shift is needed — the Instance itself occupies slot 0);
// otherwise discard the arguments. The arity check on a present
// constructor mirrors a plain function call (SPEC_FULL.md §12).
func (vm *VM) callClass(c *value.Class, calleeIdx, argsStart, argc int) error {
	inst := value.NewInstance(c)
	_, ctor := c.FindMethod(value.Constructor)
	if ctor == nil {
		vm.stack[calleeIdx] = inst
		vm.stack = vm.stack[:calleeIdx+1]
		return nil
	}
	if ctor.Arity != argc {
		return arityErr(c.Name+"."+value.Constructor, ctor.Arity, argc)
	}
	vm.stack[calleeIdx] = inst
	return vm.pushFrame(&value.Closure{Fn: ctor}, calleeIdx)
}

// callBoundMethod handles Callee = BoundMethod (spec.md §4.1): replace
// the callee slot with the receiver, then invoke the bound Function as a
// method exactly like callClass's constructor path.
func (vm *VM) callBoundMethod(b *value.BoundMethod, calleeIdx, argsStart, argc int) error {
	if b.Method.Arity != argc {
		return arityErr(b.Receiver.Class.Name+"."+b.Method.Name, b.Method.Arity, argc)
	}
	vm.stack[calleeIdx] = b.Receiver
	return vm.pushFrame(&value.Closure{Fn: b.Method}, calleeIdx)
}

// callNative handles Callee = NativeFunction (spec.md §4.1): drain argc
// arguments into a slice, remove the callee and its arguments from the
// stack, invoke the host function synchronously, and push its result. An
// error return is handled by the dispatch loop exactly like Throw
// (spec.md §7 "Native failure").
func (vm *VM) callNative(n *value.NativeFunction, calleeIdx, argsStart, argc int) error {
	args := make([]value.Value, argc)
	copy(args, vm.stack[argsStart:argsStart+argc])
	vm.stack = vm.stack[:calleeIdx]
	result, err := n.Fn(args)
	if err != nil {
		return err
	}
	vm.push(result)
	return nil
}

func funcDisplayName(name string) string {
	if name == "" {
		return "<анонимная>"
	}
	return name
}

func arityErr(name string, want, got int) error {
	return fmt.Errorf("%s ожидает %d аргументов, получено %d", name, want, got)
}
