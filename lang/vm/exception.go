package vm

import "github.com/ponos-lang/ponos/lang/value"

// pushHandler records the state PushExceptionHandler must restore on a
// later Throw (spec.md §4.4): the absolute catch target, the current
// frame-stack depth, and the current operand-stack depth.
func (vm *VM) pushHandler(target int32) {
	vm.handlers = append(vm.handlers, handler{
		target:     target,
		frameDepth: len(vm.frames),
		stackDepth: len(vm.stack),
	})
}

func (vm *VM) popHandler() {
	vm.handlers = vm.handlers[:len(vm.handlers)-1]
}

// throwValue implements the Throw opcode's unwind (spec.md §4.4):
//  1. the thrown value is already the argument here (popped by the caller).
//  2. an empty handler stack means the exception is unhandled: return it
//     as a fatal *Exception to the caller of loop().
//  3. otherwise pop the top handler and unwind frames/stack/upvalues to
//     its recorded depths, then resume at its target with the value
//     pushed back on the stack.
//
// It reports whether a handler absorbed the throw; when false, the
// caller must abort the dispatch loop with the returned error.
func (vm *VM) throwValue(v value.Value) (handled bool, fatal error) {
	if len(vm.handlers) == 0 {
		return false, &Exception{Value: v}
	}
	h := vm.handlers[len(vm.handlers)-1]
	vm.popHandler()

	for len(vm.frames) > h.frameDepth {
		fr := vm.frames[len(vm.frames)-1]
		vm.closeUpvalues(fr.base)
		vm.frames = vm.frames[:len(vm.frames)-1]
	}
	vm.stack = vm.stack[:h.stackDepth]
	vm.push(v)

	cur := vm.frames[len(vm.frames)-1]
	cur.ip = h.target
	return true, nil
}
