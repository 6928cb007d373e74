package codegen

import "github.com/ponos-lang/ponos/lang/bytecode"

// compileLoadIdent implements spec.md §4.2's identifier-resolution
// algorithm for a read: local, else upvalue (if inFunction), else global
// (mangled per the current namespace).
func (ctx *genContext) compileLoadIdent(name string) {
	if slot, ok := ctx.resolveLocal(name); ok {
		ctx.emit(bytecode.GetLocal, int32(slot))
		return
	}
	if ctx.inFunction {
		if idx, ok := ctx.resolveUpvalue(name); ok {
			ctx.emit(bytecode.GetUpvalue, int32(idx))
			return
		}
	}
	ctx.emit(bytecode.GetGlobal, ctx.addConstant(strConst(ctx.mangle(name))))
}

// compileStoreIdent implements the same resolution for a write (Assign,
// spec.md §4.2 "Assignment": "same resolution as read, but with
// SetLocal/SetUpvalue/SetGlobal").
func (ctx *genContext) compileStoreIdent(name string) {
	if slot, ok := ctx.resolveLocal(name); ok {
		ctx.emit(bytecode.SetLocal, int32(slot))
		return
	}
	if ctx.inFunction {
		if idx, ok := ctx.resolveUpvalue(name); ok {
			ctx.emit(bytecode.SetUpvalue, int32(idx))
			return
		}
	}
	ctx.emit(bytecode.SetGlobal, ctx.addConstant(strConst(ctx.mangle(name))))
}
