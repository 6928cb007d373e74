// Package codegen is THE CORE code generator (spec.md §4.2): a single-pass
// recursive visitor that walks a resolved ast.Program once and emits a
// flat bytecode.Instruction stream plus a per-function constant pool,
// tracking local slots, upvalue descriptors and the current namespace for
// name mangling.
package codegen

import (
	"fmt"
	"strings"

	"github.com/ponos-lang/ponos/lang/ast"
	"github.com/ponos-lang/ponos/lang/bytecode"
	"github.com/ponos-lang/ponos/lang/value"
)

// Compile translates a resolved Program into the top-level compiled
// Function the VM runs as its root frame (spec.md §2 "Pipeline").
// A resolved program should always generate a valid executable: any
// violated invariant here (export inside a function, return outside a
// function, `this` outside a method) is a compile-time semantic error and
// is returned as an error rather than panicking, so the caller (the CLI)
// can report it and exit non-zero without ever reaching the VM.
func Compile(prog *ast.Program) (*value.Function, error) {
	ctx := newGenContext(nil, "", false)
	for _, s := range prog.Stmts {
		if err := ctx.compileStmt(s); err != nil {
			return nil, err
		}
	}
	ctx.emit(bytecode.Constant, ctx.addConstant(value.NilValue))
	ctx.emit(bytecode.Return_)
	return ctx.toFunction("", 0, false), nil
}

// local describes one compile-time local-variable binding.
type local struct {
	name string
	slot int
}

// genContext holds the compiler state for one compilation unit: the top
// level, a function body, a method body, or a lambda body (spec.md §4.2
// "GenContext").
type genContext struct {
	parent *genContext

	// constants is this context's append-only pool with structural dedup
	// for Nil, Number, String and Boolean (never for composite values).
	constants     []value.Value
	constantIndex map[any]int

	opcodes []bytecode.Instruction

	currentNamespace string // "" means no enclosing module block
	inFunction       bool
	isMethod         bool

	locals        []local
	nextLocalSlot int

	upvalues     []value.UpvalueDesc
	upvalueNames []string // parallel to upvalues, for dedup and child resolution

	loops        []loopCtx
	openHandlers int // count of currently active PushExceptionHandler blocks
}

type loopCtx struct {
	breakJumps      []int // indices of Jump instructions to patch to the loop's exit
	handlersAtEntry int   // ctx.openHandlers when the loop was entered
}

func newGenContext(parent *genContext, namespace string, inFunction bool) *genContext {
	ctx := &genContext{
		parent:           parent,
		constantIndex:    make(map[any]int),
		currentNamespace: namespace,
		inFunction:       inFunction,
	}
	return ctx
}

// mangle implements spec.md §4 "Global table" mangling rule: within a
// module block whose namespace is N, a defined name x becomes N::x;
// outside any module block, names are stored bare. A name that already
// contains "::" is a fully-qualified reference written by the user (a
// native module export such as ио::вывести, or an explicit cross-module
// reference) and is never re-prefixed, so native calls resolve the same
// way from inside a module block as from top level.
func (ctx *genContext) mangle(name string) string {
	if ctx.currentNamespace == "" || strings.Contains(name, "::") {
		return name
	}
	return ctx.currentNamespace + "::" + name
}

// addConstant interns v into the pool, deduplicating Nil/Number/String/
// Boolean (spec.md §4.2). Composite or function values are never
// deduplicated: each occurrence gets its own slot.
func (ctx *genContext) addConstant(v value.Value) int32 {
	var key any
	switch v := v.(type) {
	case value.Nil:
		key = struct{}{}
	case value.Number:
		key = v
	case value.String:
		key = "s:" + v.String()
	case value.Boolean:
		key = v
	default:
		ctx.constants = append(ctx.constants, v)
		return int32(len(ctx.constants) - 1)
	}
	if idx, ok := ctx.constantIndex[key]; ok {
		return int32(idx)
	}
	ctx.constants = append(ctx.constants, v)
	idx := len(ctx.constants) - 1
	ctx.constantIndex[key] = idx
	return int32(idx)
}

func (ctx *genContext) emit(op bytecode.Op, arg ...int32) int {
	a := int32(0)
	if len(arg) > 0 {
		a = arg[0]
	}
	ctx.opcodes = append(ctx.opcodes, bytecode.Instruction{Op: op, A: a})
	return len(ctx.opcodes) - 1
}

// emitJump emits a jump with a placeholder target, returning its index so
// it can later be patched with patchJump once the real target is known
// (spec.md §4.2 "If"/"While").
func (ctx *genContext) emitJump(op bytecode.Op) int {
	return ctx.emit(op, -1)
}

func (ctx *genContext) patchJump(idx int) {
	ctx.opcodes[idx].A = int32(len(ctx.opcodes))
}

func (ctx *genContext) here() int32 { return int32(len(ctx.opcodes)) }

func (ctx *genContext) toFunction(name string, arity int, isMethod bool) *value.Function {
	return &value.Function{
		Name:         name,
		Arity:        arity,
		Code:         ctx.opcodes,
		Constants:    ctx.constants,
		UpvalueDescs: ctx.upvalues,
		IsMethod:     isMethod,
	}
}

// beginScope/endScope implement block-level shadowing (spec.md §8 "Local
// scoping"): names declared inside a nested block stop resolving once the
// block ends, even though the runtime stack slot they occupied is never
// reclaimed. endScope also emits CloseUpvalues for the slots the block
// owned, so that a closure created inside a loop body captures a cell
// that is lifted to Closed at each iteration boundary rather than one
// shared, ever-mutating open cell (spec.md §8 "Closure capture").
func (ctx *genContext) beginScope() int { return len(ctx.locals) }

func (ctx *genContext) endScope(mark int) {
	if len(ctx.locals) > mark {
		lowestSlot := ctx.locals[mark].slot
		ctx.locals = ctx.locals[:mark]
		ctx.emit(bytecode.CloseUpvalues, int32(lowestSlot))
	}
}

func (ctx *genContext) compileBlock(stmts []ast.Stmt) error {
	mark := ctx.beginScope()
	for _, s := range stmts {
		if err := ctx.compileStmt(s); err != nil {
			return err
		}
	}
	ctx.endScope(mark)
	return nil
}

// defineLocal allocates the next local slot for name, shadowing any outer
// binding of the same name within this function (spec.md §8 "Local
// scoping").
func (ctx *genContext) defineLocal(name string) int {
	slot := ctx.nextLocalSlot
	ctx.nextLocalSlot++
	ctx.locals = append(ctx.locals, local{name: name, slot: slot})
	return slot
}

// resolveLocal looks for name among this context's own locals, innermost
// declaration first (supports block shadowing).
func (ctx *genContext) resolveLocal(name string) (int, bool) {
	for i := len(ctx.locals) - 1; i >= 0; i-- {
		if ctx.locals[i].name == name {
			return ctx.locals[i].slot, true
		}
	}
	return 0, false
}

// resolveUpvalue implements spec.md §4.2's identifier-resolution algorithm
// step 2: walk parent contexts, adding an upvalue descriptor chain so that
// every intermediate function transports the cell.
func (ctx *genContext) resolveUpvalue(name string) (int, bool) {
	if ctx.parent == nil {
		return 0, false
	}
	if slot, ok := ctx.parent.resolveLocal(name); ok {
		return ctx.addUpvalue(name, true, slot), true
	}
	if idx, ok := ctx.parent.resolveUpvalue(name); ok {
		return ctx.addUpvalue(name, false, idx), true
	}
	return 0, false
}

func (ctx *genContext) addUpvalue(name string, isLocal bool, index int) int {
	for i, n := range ctx.upvalueNames {
		if n == name && ctx.upvalues[i].IsLocal == isLocal && ctx.upvalues[i].Index == index {
			return i
		}
	}
	ctx.upvalues = append(ctx.upvalues, value.UpvalueDesc{IsLocal: isLocal, Index: index})
	ctx.upvalueNames = append(ctx.upvalueNames, name)
	return len(ctx.upvalues) - 1
}

func compileErr(format string, args ...any) error {
	return fmt.Errorf("ошибка компиляции: "+format, args...)
}

func strConst(s string) value.Value { return value.NewString(s) }
