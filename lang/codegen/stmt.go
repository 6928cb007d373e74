package codegen

import (
	"github.com/ponos-lang/ponos/lang/ast"
	"github.com/ponos-lang/ponos/lang/bytecode"
	"github.com/ponos-lang/ponos/lang/value"
)

func (ctx *genContext) compileStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.VarDecl:
		return ctx.compileVarDecl(s)
	case *ast.Assign:
		return ctx.compileAssign(s)
	case *ast.ExprStmt:
		if err := ctx.compileExpr(s.X); err != nil {
			return err
		}
		ctx.emit(bytecode.Pop)
	case *ast.If:
		return ctx.compileIf(s)
	case *ast.While:
		return ctx.compileWhile(s)
	case *ast.ForEach:
		return ctx.compileForEach(s)
	case *ast.Return:
		return ctx.compileReturn(s)
	case *ast.Break:
		return ctx.compileBreak(s)
	case *ast.FuncDecl:
		return ctx.compileFuncDecl(s)
	case *ast.ClassDecl:
		return ctx.compileClassDecl(s)
	case *ast.ModuleBlock:
		return ctx.compileModuleBlock(s)
	case *ast.Import:
		// Emits nothing: the resolver has already erased imports and hoisted
		// the imported module's body into a ModuleBlock (spec.md §4.2
		// "Import").
		return nil
	case *ast.TryCatch:
		return ctx.compileTryCatch(s)
	case *ast.Throw:
		if err := ctx.compileExpr(s.Value); err != nil {
			return err
		}
		ctx.emit(bytecode.Throw)
	default:
		return compileErr("неподдерживаемое выражение %T", s)
	}
	return nil
}

func (ctx *genContext) compileVarDecl(s *ast.VarDecl) error {
	if s.Init != nil {
		if err := ctx.compileExpr(s.Init); err != nil {
			return err
		}
	} else {
		ctx.emit(bytecode.Constant, ctx.addConstant(value.NilValue))
	}
	if s.Exported && ctx.inFunction {
		return compileErr("экспорт внутри функции недопустим: %s", s.Name)
	}
	if ctx.inFunction {
		ctx.defineLocal(s.Name)
		ctx.emit(bytecode.DefineLocal, int32(ctx.locals[len(ctx.locals)-1].slot))
		return nil
	}
	ctx.emit(bytecode.DefineGlobal, ctx.addConstant(strConst(ctx.mangle(s.Name))))
	return nil
}

func (ctx *genContext) compileAssign(s *ast.Assign) error {
	switch {
	case s.Target.Ident != nil:
		if err := ctx.compileExpr(s.Value); err != nil {
			return err
		}
		ctx.compileStoreIdent(s.Target.Ident.Name)
	case s.Target.Field != nil:
		// value; object; SetProperty; Constant(name) — encoded here as
		// SetProperty with the name as its embedded operand (spec.md §4.1.1).
		if err := ctx.compileExpr(s.Value); err != nil {
			return err
		}
		if err := ctx.compileExpr(s.Target.Field.Obj); err != nil {
			return err
		}
		ctx.emit(bytecode.SetProperty, ctx.addConstant(value.NewString(s.Target.Field.Name)))
	case s.Target.Index != nil:
		// object; index; value; SetIndex (spec.md §4.2 "Assignment").
		if err := ctx.compileExpr(s.Target.Index.Obj); err != nil {
			return err
		}
		if err := ctx.compileExpr(s.Target.Index.Idx); err != nil {
			return err
		}
		if err := ctx.compileExpr(s.Value); err != nil {
			return err
		}
		ctx.emit(bytecode.SetIndex)
	default:
		return compileErr("недопустимая цель присваивания")
	}
	return nil
}

func (ctx *genContext) compileIf(s *ast.If) error {
	if err := ctx.compileExpr(s.Cond); err != nil {
		return err
	}
	elseJump := ctx.emitJump(bytecode.JumpIfFalse)
	if err := ctx.compileBlock(s.Then); err != nil {
		return err
	}
	endJump := ctx.emitJump(bytecode.Jump)
	ctx.patchJump(elseJump)
	if err := ctx.compileBlock(s.Else); err != nil {
		return err
	}
	ctx.patchJump(endJump)
	return nil
}

func (ctx *genContext) compileWhile(s *ast.While) error {
	condPos := ctx.here()
	if err := ctx.compileExpr(s.Cond); err != nil {
		return err
	}
	exitJump := ctx.emitJump(bytecode.JumpIfFalse)

	ctx.loops = append(ctx.loops, loopCtx{handlersAtEntry: ctx.openHandlers})
	if err := ctx.compileBlock(s.Body); err != nil {
		return err
	}
	lp := ctx.loops[len(ctx.loops)-1]
	ctx.loops = ctx.loops[:len(ctx.loops)-1]

	ctx.emit(bytecode.Jump, int32(condPos))
	ctx.patchJump(exitJump)
	for _, j := range lp.breakJumps {
		ctx.patchJump(j)
	}
	return nil
}

// compileForEach lowers `для x в iterable { body } конец` to a while loop
// driven by a hidden counter and an index operation (spec.md §4.2
// "For-each over iterable"), producing the same observable sequence as
// iterating the underlying Array, Dict keys, or Range.
func (ctx *genContext) compileForEach(s *ast.ForEach) error {
	if err := ctx.compileExpr(s.Iterable); err != nil {
		return err
	}
	// Normalize Array/String/Dict/Range to an Array via the shared builtin
	// "элементы" (elements) method, so the rest of the lowering only ever
	// deals with Array indexing (spec.md §4.2 "For-each over iterable").
	ctx.emit(bytecode.GetProperty, ctx.addConstant(value.NewString("элементы")))
	ctx.emit(bytecode.Call, 0)
	iterableSlot := ctx.defineLocal("#iterable")
	ctx.emit(bytecode.DefineLocal, int32(iterableSlot))

	ctx.emit(bytecode.Constant, ctx.addConstant(value.Number(0)))
	idxSlot := ctx.defineLocal("#index")
	ctx.emit(bytecode.DefineLocal, int32(idxSlot))

	condPos := ctx.here()
	ctx.emit(bytecode.GetLocal, int32(idxSlot))
	ctx.emit(bytecode.GetLocal, int32(iterableSlot))
	ctx.emit(bytecode.GetProperty, ctx.addConstant(value.NewString("длина")))
	ctx.emit(bytecode.Call, 0)
	ctx.emit(bytecode.Less)
	exitJump := ctx.emitJump(bytecode.JumpIfFalse)

	ctx.emit(bytecode.GetLocal, int32(iterableSlot))
	ctx.emit(bytecode.GetLocal, int32(idxSlot))
	ctx.emit(bytecode.GetIndex)
	mark := ctx.beginScope()
	ctx.defineLocal(s.VarName)
	ctx.emit(bytecode.DefineLocal, int32(ctx.locals[len(ctx.locals)-1].slot))

	ctx.loops = append(ctx.loops, loopCtx{handlersAtEntry: ctx.openHandlers})
	for _, st := range s.Body {
		if err := ctx.compileStmt(st); err != nil {
			return err
		}
	}
	lp := ctx.loops[len(ctx.loops)-1]
	ctx.loops = ctx.loops[:len(ctx.loops)-1]
	ctx.endScope(mark)

	ctx.emit(bytecode.GetLocal, int32(idxSlot))
	ctx.emit(bytecode.Constant, ctx.addConstant(value.Number(1)))
	ctx.emit(bytecode.Add)
	ctx.emit(bytecode.SetLocal, int32(idxSlot))
	ctx.emit(bytecode.Pop)
	ctx.emit(bytecode.Jump, int32(condPos))
	ctx.patchJump(exitJump)
	for _, j := range lp.breakJumps {
		ctx.patchJump(j)
	}
	return nil
}

func (ctx *genContext) compileBreak(s *ast.Break) error {
	if len(ctx.loops) == 0 {
		return compileErr("прервать вне цикла")
	}
	top := len(ctx.loops) - 1
	// Like compileReturn, a `break` leaving a try-block nested in the loop
	// must pop every handler opened since loop entry, or a stale handler
	// left on vm.handlers could wrongly absorb a later, unrelated throw
	// (spec.md §4.4, SPEC_FULL.md §13 item 1).
	for i := ctx.loops[top].handlersAtEntry; i < ctx.openHandlers; i++ {
		ctx.emit(bytecode.PopExceptionHandler)
	}
	j := ctx.emitJump(bytecode.Jump)
	ctx.loops[top].breakJumps = append(ctx.loops[top].breakJumps, j)
	return nil
}

func (ctx *genContext) compileReturn(s *ast.Return) error {
	if !ctx.inFunction {
		return compileErr("вернуть вне функции")
	}
	if s.Value != nil {
		if err := ctx.compileExpr(s.Value); err != nil {
			return err
		}
	} else {
		ctx.emit(bytecode.Constant, ctx.addConstant(value.NilValue))
	}
	// Every control-flow edge leaving a try-block must pop its exception
	// handler before transferring control, including a `return` compiled
	// inside one (spec.md §4.4, SPEC_FULL.md §13 item 1).
	for i := 0; i < ctx.openHandlers; i++ {
		ctx.emit(bytecode.PopExceptionHandler)
	}
	ctx.emit(bytecode.Return_)
	return nil
}

// compileModuleBlock implements spec.md §4.2 "Module block": push
// current_namespace, emit statements, pop. Purely a naming device.
func (ctx *genContext) compileModuleBlock(s *ast.ModuleBlock) error {
	saved := ctx.currentNamespace
	ctx.currentNamespace = s.Name
	for _, st := range s.Stmts {
		if err := ctx.compileStmt(st); err != nil {
			return err
		}
	}
	ctx.currentNamespace = saved
	return nil
}

// compileTryCatch implements spec.md §4.2 "Try/catch".
func (ctx *genContext) compileTryCatch(s *ast.TryCatch) error {
	handler := ctx.emitJump(bytecode.PushExceptionHandler)
	ctx.openHandlers++
	for _, st := range s.Try {
		if err := ctx.compileStmt(st); err != nil {
			return err
		}
	}
	ctx.openHandlers--
	ctx.emit(bytecode.PopExceptionHandler)
	after := ctx.emitJump(bytecode.Jump)

	ctx.patchJump(handler)
	if s.Catch.VarName != "" {
		ctx.defineLocal(s.Catch.VarName)
		ctx.emit(bytecode.DefineLocal, int32(ctx.locals[len(ctx.locals)-1].slot))
	} else {
		ctx.emit(bytecode.Pop)
	}
	for _, st := range s.Catch.Body {
		if err := ctx.compileStmt(st); err != nil {
			return err
		}
	}
	ctx.patchJump(after)
	return nil
}
