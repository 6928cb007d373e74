package ast

import "github.com/ponos-lang/ponos/lang/token"

// Statement node shapes.

type (
	// VarDecl is `перем name = init`. Exported is set for `экспорт перем ...`
	// inside a module block; exporting inside a function body is a
	// compile-time error (spec.md §4.2).
	VarDecl struct {
		Sp       token.Span
		Name     string
		Init     Expr // nil means "push Nil"
		Exported bool
	}

	// AssignTarget enumerates the three target shapes spec.md §4.2 names:
	// Identifier, FieldAccess, Index. Exactly one of the three fields is set.
	AssignTarget struct {
		Ident *Ident
		Field *FieldAccess
		Index *Index
	}

	// Assign is `target = value`.
	Assign struct {
		Sp     token.Span
		Target AssignTarget
		Value  Expr
	}

	// ExprStmt is an expression evaluated for its side effect, result
	// discarded (compiles to `expr; Pop`).
	ExprStmt struct {
		Sp token.Span
		X  Expr
	}

	// If is `если cond { then } иначе { else } конец`; Else may be nil.
	If struct {
		Sp         token.Span
		Cond       Expr
		Then, Else []Stmt
	}

	// While is `пока cond { body } конец`.
	While struct {
		Sp   token.Span
		Cond Expr
		Body []Stmt
	}

	// ForEach is `для x в iterable { body } конец`, lowered by the generator
	// to a while loop with a hidden counter (spec.md §4.2).
	ForEach struct {
		Sp       token.Span
		VarName  string
		Iterable Expr
		Body     []Stmt
	}

	// Return is `вернуть value` or bare `вернуть`; Value is nil in the latter
	// case (pushes Nil). Valid only inside a function body.
	Return struct {
		Sp    token.Span
		Value Expr
	}

	// Break is `прервать`, valid only inside a loop body.
	Break struct{ Sp token.Span }

	// FuncDecl is a named function declaration, `функция name(params) ... конец`.
	FuncDecl struct {
		Sp     token.Span
		Name   string
		Params []string
		Body   []Stmt
	}

	// Method is one method (or the constructor, named конструктор) inside a
	// ClassDecl.
	Method struct {
		Name   string
		Params []string
		Body   []Stmt
	}

	// ClassDecl is `класс Name расширяет Parent { methods... } конец`. Parent
	// is "" when there is no `extends` clause.
	ClassDecl struct {
		Sp      token.Span
		Name    string
		Parent  string
		Fields  []string // declared-only field names, storage created by ctor assignment
		Methods []Method
	}

	// ModuleBlock is `модуль name { stmts... } конец`, purely a namespace
	// mangling device (spec.md §4.2 "Module block").
	ModuleBlock struct {
		Sp    token.Span
		Name  string
		Stmts []Stmt
	}

	// Import is erased by the resolver before the generator ever sees a
	// Program (spec.md §4.2 "Import": "emits nothing"), but the parser still
	// produces the node so the resolver has something to act on.
	Import struct {
		Sp   token.Span
		Path string
	}

	// Catch describes the optional bound variable of a TryCatch.
	Catch struct {
		VarName string // "" means no binding (value discarded)
		Body    []Stmt
	}

	// TryCatch is `пробовать { try } поймать e { catch } конец`.
	TryCatch struct {
		Sp    token.Span
		Try   []Stmt
		Catch Catch
	}

	// Throw is `бросить expr`.
	Throw struct {
		Sp    token.Span
		Value Expr
	}
)

func (n *VarDecl) Span() token.Span    { return n.Sp }
func (n *Assign) Span() token.Span     { return n.Sp }
func (n *ExprStmt) Span() token.Span   { return n.Sp }
func (n *If) Span() token.Span         { return n.Sp }
func (n *While) Span() token.Span      { return n.Sp }
func (n *ForEach) Span() token.Span    { return n.Sp }
func (n *Return) Span() token.Span     { return n.Sp }
func (n *Break) Span() token.Span      { return n.Sp }
func (n *FuncDecl) Span() token.Span   { return n.Sp }
func (n *ClassDecl) Span() token.Span  { return n.Sp }
func (n *ModuleBlock) Span() token.Span { return n.Sp }
func (n *Import) Span() token.Span     { return n.Sp }
func (n *TryCatch) Span() token.Span   { return n.Sp }
func (n *Throw) Span() token.Span      { return n.Sp }

func (*VarDecl) stmtNode()     {}
func (*Assign) stmtNode()      {}
func (*ExprStmt) stmtNode()    {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*ForEach) stmtNode()     {}
func (*Return) stmtNode()      {}
func (*Break) stmtNode()       {}
func (*FuncDecl) stmtNode()    {}
func (*ClassDecl) stmtNode()   {}
func (*ModuleBlock) stmtNode() {}
func (*Import) stmtNode()      {}
func (*TryCatch) stmtNode()    {}
func (*Throw) stmtNode()       {}
