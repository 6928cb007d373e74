package vm

import "github.com/ponos-lang/ponos/lang/value"

// captureUpvalue returns the open Upvalue for absolute stack slot, reusing
// an existing one if another closure already captured the same slot, so
// that sibling closures share one cell (spec.md §3 "Upvalue": "Upvalues
// are shared cells").
func (vm *VM) captureUpvalue(slot int) *value.Upvalue {
	for _, uv := range vm.openUpvalues {
		if !uv.Closed && uv.StackIndex == slot {
			return uv
		}
	}
	uv := &value.Upvalue{StackIndex: slot}
	vm.openUpvalues = append(vm.openUpvalues, uv)
	return uv
}

// closeUpvalues lifts every still-open upvalue at or above absolute slot
// from into the Closed state, copying the current stack value into the
// cell itself (spec.md §5 "Upvalue cells are lifted (Open→Closed) when
// their owning stack slot would otherwise disappear").
func (vm *VM) closeUpvalues(from int) {
	kept := vm.openUpvalues[:0]
	for _, uv := range vm.openUpvalues {
		if !uv.Closed && uv.StackIndex >= from {
			uv.Value = vm.stack[uv.StackIndex]
			uv.Closed = true
			continue
		}
		kept = append(kept, uv)
	}
	vm.openUpvalues = kept
}

// readUpvalue/writeUpvalue abstract over a cell's Open/Closed state so the
// dispatch loop's GetUpvalue/SetUpvalue cases don't need to branch.
func (vm *VM) readUpvalue(uv *value.Upvalue) value.Value {
	if uv.Closed {
		return uv.Value
	}
	return vm.stack[uv.StackIndex]
}

func (vm *VM) writeUpvalue(uv *value.Upvalue, v value.Value) {
	if uv.Closed {
		uv.Value = v
		return
	}
	vm.stack[uv.StackIndex] = v
}
