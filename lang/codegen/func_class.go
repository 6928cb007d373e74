package codegen

import (
	"github.com/ponos-lang/ponos/lang/ast"
	"github.com/ponos-lang/ponos/lang/bytecode"
	"github.com/ponos-lang/ponos/lang/value"
)

// compileFuncDecl implements spec.md §4.2 "Function declaration": compile
// the function body into a fresh GenContext, emit Closure, then
// DefineLocal or DefineGlobal depending on scope.
func (ctx *genContext) compileFuncDecl(s *ast.FuncDecl) error {
	if err := ctx.compileFuncLitNamed(s.Params, s.Body, s.Name, false); err != nil {
		return err
	}
	if ctx.inFunction {
		ctx.defineLocal(s.Name)
		ctx.emit(bytecode.DefineLocal, int32(ctx.locals[len(ctx.locals)-1].slot))
		return nil
	}
	ctx.emit(bytecode.DefineGlobal, ctx.addConstant(strConst(ctx.mangle(s.Name))))
	return nil
}

// compileFuncLitNamed is the shared body-compilation helper for plain
// functions, methods and constructors (spec.md §4.2.1 "Compiling a
// function body"). isMethod reserves slot 0 for `this` when true.
func (ctx *genContext) compileFuncLitNamed(params []string, body []ast.Stmt, name string, isMethod bool) error {
	fnCtx := newGenContext(ctx, ctx.currentNamespace, true)
	fnCtx.isMethod = isMethod
	if isMethod {
		fnCtx.defineLocal("this")
	}
	for _, p := range params {
		fnCtx.defineLocal(p)
	}
	for _, s := range body {
		if err := fnCtx.compileStmt(s); err != nil {
			return err
		}
	}
	if isMethod && name == value.Constructor {
		// Fallthrough tail: reached only if the body never executed its own
		// `return`. An explicit `return x` inside конструктор already exits
		// the frame, so this only supplies the receiver as the result when
		// the body falls off the end without one (spec.md §4.2.1,
		// SPEC_FULL.md §13 item 2).
		fnCtx.emit(bytecode.GetLocal, 0)
		fnCtx.emit(bytecode.Return_)
	} else {
		fnCtx.emit(bytecode.Constant, fnCtx.addConstant(value.NilValue))
		fnCtx.emit(bytecode.Return_)
	}

	fn := fnCtx.toFunction(name, len(params), isMethod)
	idx := ctx.addConstant(fn)
	ctx.emit(bytecode.Closure, idx)
	return nil
}

// compileClassDecl implements spec.md §4.2 "Class declaration".
func (ctx *genContext) compileClassDecl(s *ast.ClassDecl) error {
	ctx.emit(bytecode.Class, ctx.addConstant(value.NewString(s.Name)))
	if s.Parent != "" {
		ctx.emit(bytecode.GetGlobal, ctx.addConstant(strConst(ctx.mangle(s.Parent))))
		ctx.emit(bytecode.Inherit)
	}
	for _, m := range s.Methods {
		if err := ctx.compileFuncLitNamed(m.Params, m.Body, m.Name, true); err != nil {
			return err
		}
		ctx.emit(bytecode.DefineMethod, ctx.addConstant(value.NewString(m.Name)))
	}
	if ctx.inFunction {
		ctx.defineLocal(s.Name)
		ctx.emit(bytecode.DefineLocal, int32(ctx.locals[len(ctx.locals)-1].slot))
		return nil
	}
	ctx.emit(bytecode.DefineGlobal, ctx.addConstant(strConst(ctx.mangle(s.Name))))
	return nil
}
