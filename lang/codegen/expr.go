package codegen

import (
	"github.com/ponos-lang/ponos/lang/ast"
	"github.com/ponos-lang/ponos/lang/bytecode"
	"github.com/ponos-lang/ponos/lang/token"
	"github.com/ponos-lang/ponos/lang/value"
)

func (ctx *genContext) compileExpr(e ast.Expr) error {
	switch e := e.(type) {
	case *ast.NilLit:
		ctx.emit(bytecode.Constant, ctx.addConstant(value.NilValue))
	case *ast.BoolLit:
		if e.Value {
			ctx.emit(bytecode.True_)
		} else {
			ctx.emit(bytecode.False_)
		}
	case *ast.NumberLit:
		ctx.emit(bytecode.Constant, ctx.addConstant(value.Number(e.Value)))
	case *ast.StringLit:
		ctx.emit(bytecode.Constant, ctx.addConstant(value.NewString(e.Value)))
	case *ast.Ident:
		ctx.compileLoadIdent(e.Name)
	case *ast.This:
		inMethod := false
		for c := ctx; c != nil; c = c.parent {
			inMethod = inMethod || c.isMethod
		}
		if !inMethod {
			return compileErr("это вне метода")
		}
		ctx.compileLoadIdent("this")
	case *ast.Super:
		// GetSuper reads the instance from slot 0 of the current frame itself
		// (spec.md §4.1 "Properties"), so nothing needs to be pushed first.
		ctx.emit(bytecode.GetSuper, ctx.addConstant(value.NewString(e.Name)))
	case *ast.Unary:
		return ctx.compileUnary(e)
	case *ast.Binary:
		return ctx.compileBinary(e)
	case *ast.Logical:
		return ctx.compileLogical(e)
	case *ast.Call:
		return ctx.compileCall(e)
	case *ast.FieldAccess:
		if err := ctx.compileExpr(e.Obj); err != nil {
			return err
		}
		ctx.emit(bytecode.GetProperty, ctx.addConstant(value.NewString(e.Name)))
	case *ast.Index:
		if err := ctx.compileExpr(e.Obj); err != nil {
			return err
		}
		if err := ctx.compileExpr(e.Idx); err != nil {
			return err
		}
		ctx.emit(bytecode.GetIndex)
	case *ast.RangeExpr:
		return ctx.compileRange(e)
	case *ast.ArrayLit:
		for _, el := range e.Elems {
			if err := ctx.compileExpr(el); err != nil {
				return err
			}
		}
		ctx.emit(bytecode.Array, int32(len(e.Elems)))
	case *ast.DictLit:
		for _, entry := range e.Entries {
			if err := ctx.compileExpr(entry.Key); err != nil {
				return err
			}
			if err := ctx.compileExpr(entry.Value); err != nil {
				return err
			}
		}
		ctx.emit(bytecode.Dict, int32(len(e.Entries)))
	case *ast.FuncLit:
		return ctx.compileFuncLit(e, "")
	default:
		return compileErr("неподдерживаемое выражение %T", e)
	}
	return nil
}

func (ctx *genContext) compileRange(e *ast.RangeExpr) error {
	if e.Start != nil {
		if err := ctx.compileExpr(e.Start); err != nil {
			return err
		}
	} else {
		ctx.emit(bytecode.Constant, ctx.addConstant(value.NilValue))
	}
	if e.End != nil {
		if err := ctx.compileExpr(e.End); err != nil {
			return err
		}
	} else {
		ctx.emit(bytecode.Constant, ctx.addConstant(value.NilValue))
	}
	ctx.emit(bytecode.MakeRange)
	return nil
}

func (ctx *genContext) compileUnary(e *ast.Unary) error {
	if err := ctx.compileExpr(e.X); err != nil {
		return err
	}
	switch e.Op {
	case token.MINUS:
		ctx.emit(bytecode.Negate)
	case token.NOT:
		ctx.emit(bytecode.Not)
	default:
		return compileErr("неизвестный унарный оператор %s", e.Op)
	}
	return nil
}

func (ctx *genContext) compileBinary(e *ast.Binary) error {
	if err := ctx.compileExpr(e.Left); err != nil {
		return err
	}
	if err := ctx.compileExpr(e.Right); err != nil {
		return err
	}
	switch e.Op {
	case token.PLUS:
		ctx.emit(bytecode.Add)
	case token.MINUS:
		ctx.emit(bytecode.Sub)
	case token.STAR:
		ctx.emit(bytecode.Mul)
	case token.SLASH:
		ctx.emit(bytecode.Div)
	case token.PERCENT:
		ctx.emit(bytecode.Mod)
	case token.EQEQ:
		ctx.emit(bytecode.Eql)
	case token.BANGEQ:
		ctx.emit(bytecode.Eql)
		ctx.emit(bytecode.Not)
	case token.LT:
		ctx.emit(bytecode.Less)
	case token.GT:
		ctx.emit(bytecode.Greater)
	case token.LE:
		ctx.emit(bytecode.Greater)
		ctx.emit(bytecode.Not)
	case token.GE:
		ctx.emit(bytecode.Less)
		ctx.emit(bytecode.Not)
	default:
		return compileErr("неизвестный бинарный оператор %s", e.Op)
	}
	return nil
}

// compileLogical implements short-circuit `и`/`или` (spec.md §4.2.2):
// `left; Dup; JumpIf{False,True}(END); Pop; right; END:` leaving the
// decisive operand on the stack.
func (ctx *genContext) compileLogical(e *ast.Logical) error {
	if err := ctx.compileExpr(e.Left); err != nil {
		return err
	}
	ctx.emit(bytecode.Dup)
	var skip int
	if e.Op == token.AND {
		skip = ctx.emitJump(bytecode.JumpIfFalse)
	} else {
		skip = ctx.emitJump(bytecode.JumpIfTrue)
	}
	ctx.emit(bytecode.Pop)
	if err := ctx.compileExpr(e.Right); err != nil {
		return err
	}
	ctx.patchJump(skip)
	return nil
}

func (ctx *genContext) compileCall(e *ast.Call) error {
	if err := ctx.compileExpr(e.Callee); err != nil {
		return err
	}
	for _, a := range e.Args {
		if err := ctx.compileExpr(a); err != nil {
			return err
		}
	}
	ctx.emit(bytecode.Call, int32(len(e.Args)))
	return nil
}

// compileFuncLit compiles an anonymous function literal identically to a
// named function declaration (spec.md §4.2 "Lambda compiles identically
// to a named function but is emitted inline as a Closure push").
func (ctx *genContext) compileFuncLit(e *ast.FuncLit, name string) error {
	return ctx.compileFuncLitNamed(e.Params, e.Body, name, false)
}
