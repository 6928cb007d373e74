package vm

import (
	"fmt"

	"github.com/ponos-lang/ponos/lang/bytecode"
	"github.com/ponos-lang/ponos/lang/value"
)

// loop is the fetch-decode-execute cycle (spec.md §4.3): synchronous,
// single-threaded, one frame stack. Every effect of one instruction is
// visible before the next begins (spec.md §5 "Ordering guarantees").
func (vm *VM) loop() (value.Value, error) {
	for len(vm.frames) > 0 {
		vm.steps++
		if vm.Limits.MaxSteps > 0 && vm.steps > vm.Limits.MaxSteps {
			return nil, &LimitError{msg: "превышено максимальное число шагов выполнения"}
		}

		fr := vm.frames[len(vm.frames)-1]
		code := fr.cl.Fn.Code
		if int(fr.ip) >= len(code) {
			// Fell off the end without an explicit Return_ (spec.md §4.3):
			// synthesize one with Nil.
			if err := vm.doReturn(value.NilValue); err != nil {
				return nil, err
			}
			continue
		}

		instr := code[fr.ip]
		fr.ip++

		if err := vm.exec(fr, instr); err != nil {
			switch e := err.(type) {
			case *LimitError:
				return nil, e
			case *Exception:
				return nil, e
			default:
				if _, fatal := vm.throwValue(value.NewString(err.Error())); fatal != nil {
					return nil, fatal
				}
			}
		}
	}
	if len(vm.stack) == 0 {
		return value.NilValue, nil
	}
	return vm.pop(), nil
}

// exec dispatches a single instruction against frame fr. A returned
// *LimitError aborts the whole run; a returned *Exception is an
// already-unwound-and-unhandled throw; any other error is a throwable
// runtime error that loop() converts to a thrown String (spec.md §7).
func (vm *VM) exec(fr *Frame, instr bytecode.Instruction) error {
	switch instr.Op {
	case bytecode.Constant:
		vm.push(fr.cl.Fn.Constants[instr.A])

	case bytecode.Pop:
		vm.pop()

	case bytecode.Dup:
		vm.push(vm.top())

	case bytecode.Add:
		y, x := vm.pop(), vm.pop()
		v, err := value.Add(x, y)
		if err != nil {
			return err
		}
		vm.push(v)

	case bytecode.Sub, bytecode.Mul, bytecode.Div, bytecode.Mod:
		y, x := vm.pop(), vm.pop()
		v, err := value.Arith(arithOp(instr.Op), x, y)
		if err != nil {
			return err
		}
		vm.push(v)

	case bytecode.Negate:
		v, err := value.Negate(vm.pop())
		if err != nil {
			return err
		}
		vm.push(v)

	case bytecode.True_:
		vm.push(value.Boolean(true))
	case bytecode.False_:
		vm.push(value.Boolean(false))

	case bytecode.Eql:
		y, x := vm.pop(), vm.pop()
		eq, err := value.Equals(x, y)
		if err != nil {
			return err
		}
		vm.push(value.Boolean(eq))

	case bytecode.Not:
		vm.push(value.Boolean(!value.Truthy(vm.pop())))

	case bytecode.Greater:
		y, x := vm.pop(), vm.pop()
		_, gt, err := value.Compare(x, y)
		if err != nil {
			return err
		}
		vm.push(value.Boolean(gt))

	case bytecode.Less:
		y, x := vm.pop(), vm.pop()
		lt, _, err := value.Compare(x, y)
		if err != nil {
			return err
		}
		vm.push(value.Boolean(lt))

	case bytecode.DefineLocal:
		slot := fr.base + int(instr.A)
		v := vm.pop()
		vm.ensureStack(slot)
		vm.stack[slot] = v

	case bytecode.GetLocal:
		vm.push(vm.stack[fr.base+int(instr.A)])

	case bytecode.SetLocal:
		vm.stack[fr.base+int(instr.A)] = vm.pop()

	case bytecode.GetUpvalue:
		vm.push(vm.readUpvalue(fr.cl.Upvalues[instr.A]))

	case bytecode.SetUpvalue:
		vm.writeUpvalue(fr.cl.Upvalues[instr.A], vm.pop())

	case bytecode.CloseUpvalues:
		vm.closeUpvalues(fr.base + int(instr.A))

	case bytecode.Jump:
		fr.ip = instr.A

	case bytecode.JumpIfTrue:
		if value.Truthy(vm.pop()) {
			fr.ip = instr.A
		}

	case bytecode.JumpIfFalse:
		if !value.Truthy(vm.pop()) {
			fr.ip = instr.A
		}

	case bytecode.Halt:
		// no-op landing pad

	case bytecode.Closure:
		fn, ok := fr.cl.Fn.Constants[instr.A].(*value.Function)
		if !ok {
			return fmt.Errorf("внутренняя ошибка: ожидалась функция в пуле констант")
		}
		upvals := make([]*value.Upvalue, len(fn.UpvalueDescs))
		for i, d := range fn.UpvalueDescs {
			if d.IsLocal {
				upvals[i] = vm.captureUpvalue(fr.base + d.Index)
			} else {
				upvals[i] = fr.cl.Upvalues[d.Index]
			}
		}
		vm.push(&value.Closure{Fn: fn, Upvalues: upvals})

	case bytecode.Call:
		return vm.call(int(instr.A))

	case bytecode.Return_:
		return vm.doReturn(vm.pop())

	case bytecode.Class:
		name, ok := fr.cl.Fn.Constants[instr.A].(value.String)
		if !ok {
			return fmt.Errorf("внутренняя ошибка: ожидалось имя класса")
		}
		vm.push(value.NewClass(name.String()))

	case bytecode.Inherit:
		parent, ok := vm.pop().(*value.Class)
		if !ok {
			return fmt.Errorf("родительское значение должно быть классом")
		}
		sub, ok := vm.top().(*value.Class)
		if !ok {
			return fmt.Errorf("внутренняя ошибка: ожидался класс на вершине стека")
		}
		sub.Parent = parent

	case bytecode.DefineMethod:
		name, ok := fr.cl.Fn.Constants[instr.A].(value.String)
		if !ok {
			return fmt.Errorf("внутренняя ошибка: ожидалось имя метода")
		}
		fn, err := asMethodFunction(vm.pop())
		if err != nil {
			return err
		}
		cls, ok := vm.top().(*value.Class)
		if !ok {
			return fmt.Errorf("внутренняя ошибка: ожидался класс на вершине стека")
		}
		cls.DefineMethod(name.String(), fn)

	case bytecode.GetProperty:
		name, ok := fr.cl.Fn.Constants[instr.A].(value.String)
		if !ok {
			return fmt.Errorf("внутренняя ошибка: ожидалось имя свойства")
		}
		obj := vm.pop()
		v, err := vm.getProperty(obj, name.String())
		if err != nil {
			return err
		}
		vm.push(v)

	case bytecode.SetProperty:
		name, ok := fr.cl.Fn.Constants[instr.A].(value.String)
		if !ok {
			return fmt.Errorf("внутренняя ошибка: ожидалось имя свойства")
		}
		obj := vm.pop()
		val := vm.pop()
		inst, ok := obj.(*value.Instance)
		if !ok {
			return fmt.Errorf("невозможно задать свойство %q у значения типа %s", name.String(), obj.Type())
		}
		inst.Fields[name.String()] = val

	case bytecode.GetSuper:
		name, ok := fr.cl.Fn.Constants[instr.A].(value.String)
		if !ok {
			return fmt.Errorf("внутренняя ошибка: ожидалось имя метода")
		}
		inst, ok := vm.stack[fr.base].(*value.Instance)
		if !ok {
			return fmt.Errorf("родитель недоступен вне метода")
		}
		if inst.Class.Parent == nil {
			return fmt.Errorf("класс %s не имеет родителя", inst.Class.Name)
		}
		_, fn := inst.Class.Parent.FindMethod(name.String())
		if fn == nil {
			return fmt.Errorf("неизвестный метод родителя %q", name.String())
		}
		vm.push(&value.BoundMethod{Receiver: inst, Method: fn})

	case bytecode.GetIndex:
		idx, obj := vm.pop(), vm.pop()
		v, err := value.GetIndex(obj, idx)
		if err != nil {
			return err
		}
		vm.push(v)

	case bytecode.SetIndex:
		val, idx, obj := vm.pop(), vm.pop(), vm.pop()
		if err := value.SetIndex(obj, idx, val); err != nil {
			return err
		}

	case bytecode.MakeRange:
		end, start := vm.pop(), vm.pop()
		r, err := buildRange(start, end)
		if err != nil {
			return err
		}
		vm.push(r)

	case bytecode.Array:
		n := int(instr.A)
		start := len(vm.stack) - n
		elems := make([]value.Value, n)
		copy(elems, vm.stack[start:])
		vm.stack = vm.stack[:start]
		vm.push(value.NewArray(elems))

	case bytecode.Dict:
		n := int(instr.A)
		start := len(vm.stack) - 2*n
		d := value.NewDict(n)
		for i := 0; i < n; i++ {
			k := vm.stack[start+2*i]
			v := vm.stack[start+2*i+1]
			key, ok := value.ToKey(k)
			if !ok {
				return fmt.Errorf("ключ словаря типа %s не хешируемый", k.Type())
			}
			d.Set(key, v)
		}
		vm.stack = vm.stack[:start]
		vm.push(d)

	case bytecode.DefineGlobal:
		name := fr.cl.Fn.Constants[instr.A].(value.String).String()
		v := vm.pop()
		if _, exists := vm.Globals[name]; exists {
			return fmt.Errorf("глобальное имя %q уже определено", name)
		}
		vm.Globals[name] = v

	case bytecode.SetGlobal:
		name := fr.cl.Fn.Constants[instr.A].(value.String).String()
		v := vm.pop()
		if _, exists := vm.Globals[name]; !exists {
			return fmt.Errorf("неизвестное глобальное имя %q", name)
		}
		vm.Globals[name] = v

	case bytecode.GetGlobal:
		name := fr.cl.Fn.Constants[instr.A].(value.String).String()
		v, ok := vm.Globals[name]
		if !ok {
			return fmt.Errorf("неизвестное глобальное имя %q", name)
		}
		vm.push(v)

	case bytecode.PushExceptionHandler:
		vm.pushHandler(instr.A)

	case bytecode.PopExceptionHandler:
		vm.popHandler()

	case bytecode.Throw:
		v := vm.pop()
		_, fatal := vm.throwValue(v)
		if fatal != nil {
			return fatal
		}

	default:
		return fmt.Errorf("внутренняя ошибка: неизвестная инструкция %s", instr.Op)
	}
	return nil
}

func (vm *VM) doReturn(v value.Value) error {
	fr := vm.frames[len(vm.frames)-1]
	vm.closeUpvalues(fr.base)
	vm.frames = vm.frames[:len(vm.frames)-1]
	vm.stack = vm.stack[:fr.base]
	vm.push(v)
	return nil
}

// getProperty implements the GetProperty opcode (spec.md §4.1
// "Properties", §4.6 "Built-in method table"): the built-in method table
// is consulted before falling back to Instance field/method lookup, so
// user code can never shadow it.
func (vm *VM) getProperty(obj value.Value, name string) (value.Value, error) {
	if nf, ok := value.LookupBuiltinMethod(obj, name); ok {
		return nf, nil
	}
	inst, ok := obj.(*value.Instance)
	if !ok {
		return nil, fmt.Errorf("невозможно получить свойство %q у значения типа %s", name, obj.Type())
	}
	if v, ok := inst.Fields[name]; ok {
		return v, nil
	}
	if _, fn := inst.Class.FindMethod(name); fn != nil {
		return &value.BoundMethod{Receiver: inst, Method: fn}, nil
	}
	return nil, fmt.Errorf("неизвестное свойство %q у экземпляра %s", name, inst.Class.Name)
}

func asMethodFunction(v value.Value) (*value.Function, error) {
	switch m := v.(type) {
	case *value.Closure:
		return m.Fn, nil
	case *value.Function:
		return m, nil
	default:
		return nil, fmt.Errorf("внутренняя ошибка: ожидалась функция метода, получено %s", v.Type())
	}
}

func buildRange(start, end value.Value) (value.Range, error) {
	var r value.Range
	if _, isNil := start.(value.Nil); !isNil {
		n, ok := start.(value.Number)
		if !ok {
			return r, fmt.Errorf("начало диапазона должно быть числом, получено %s", start.Type())
		}
		r.HasStart, r.Start = true, int(n)
	}
	if _, isNil := end.(value.Nil); !isNil {
		n, ok := end.(value.Number)
		if !ok {
			return r, fmt.Errorf("конец диапазона должен быть числом, получено %s", end.Type())
		}
		r.HasEnd, r.End = true, int(n)
	}
	return r, nil
}

func arithOp(op bytecode.Op) byte {
	switch op {
	case bytecode.Sub:
		return '-'
	case bytecode.Mul:
		return '*'
	case bytecode.Div:
		return '/'
	case bytecode.Mod:
		return '%'
	default:
		panic(fmt.Sprintf("arithOp: not an arithmetic opcode %s", op))
	}
}
