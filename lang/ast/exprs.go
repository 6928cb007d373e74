package ast

import "github.com/ponos-lang/ponos/lang/token"

// Expression node shapes. Each embeds its own token.Span and implements
// exprNode to satisfy the Expr interface.

type (
	// NilLit, BoolLit, NumberLit and StringLit are literal constants; the
	// generator interns their values into the enclosing function's constant
	// pool (spec.md §4.2, "constants: append-only pool with structural
	// dedup").
	NilLit struct {
		Sp token.Span
	}
	BoolLit struct {
		Sp    token.Span
		Value bool
	}
	NumberLit struct {
		Sp    token.Span
		Value float64
	}
	StringLit struct {
		Sp    token.Span
		Value string
	}

	// Ident is a bare identifier use (read position); resolution into
	// local/upvalue/global happens in the generator (spec.md §4.2).
	Ident struct {
		Sp   token.Span
		Name string
	}

	// This and Super are the `this`/`super` keywords, valid only inside a
	// method or constructor body.
	This struct{ Sp token.Span }
	Super struct {
		Sp   token.Span
		Name string // the member accessed on the parent, e.g. super.m
	}

	// Unary is a prefix operator: `-x`, `не x`.
	Unary struct {
		Sp token.Span
		Op token.Token
		X  Expr
	}

	// Binary is an arithmetic or comparison operator. Logical `и`/`или` are
	// represented separately (Logical) because they short-circuit.
	Binary struct {
		Sp          token.Span
		Op          token.Token
		Left, Right Expr
	}

	// Logical is `x и y` / `x или y`; the generator must not evaluate Right
	// unless Left's truthiness requires it (spec.md §4.2.2).
	Logical struct {
		Sp          token.Span
		Op          token.Token // AND or OR
		Left, Right Expr
	}

	// Call is a function/class/method invocation: Callee(Args...).
	Call struct {
		Sp     token.Span
		Callee Expr
		Args   []Expr
	}

	// FieldAccess is `obj.name`, read position (GetProperty in codegen).
	FieldAccess struct {
		Sp   token.Span
		Obj  Expr
		Name string
	}

	// Index is `obj[idx]`; Idx may itself be a RangeExpr for slicing.
	Index struct {
		Sp       token.Span
		Obj, Idx Expr
	}

	// RangeExpr is the slice-only `start:end` syntax, both ends optional.
	RangeExpr struct {
		Sp         token.Span
		Start, End Expr // nil when omitted
	}

	// ArrayLit is `[e1, e2, ...]`.
	ArrayLit struct {
		Sp    token.Span
		Elems []Expr
	}

	// DictEntry is one `key: value` pair of a DictLit.
	DictEntry struct {
		Key, Value Expr
	}

	// DictLit is `{k1: v1, k2: v2, ...}`.
	DictLit struct {
		Sp      token.Span
		Entries []DictEntry
	}

	// FuncLit is an anonymous `функция(params) ... конец` expression; it
	// compiles identically to a named function declaration (spec.md §4.2).
	FuncLit struct {
		Sp     token.Span
		Params []string
		Body   []Stmt
	}
)

func (n *NilLit) Span() token.Span      { return n.Sp }
func (n *BoolLit) Span() token.Span     { return n.Sp }
func (n *NumberLit) Span() token.Span   { return n.Sp }
func (n *StringLit) Span() token.Span   { return n.Sp }
func (n *Ident) Span() token.Span       { return n.Sp }
func (n *This) Span() token.Span        { return n.Sp }
func (n *Super) Span() token.Span       { return n.Sp }
func (n *Unary) Span() token.Span       { return n.Sp }
func (n *Binary) Span() token.Span      { return n.Sp }
func (n *Logical) Span() token.Span     { return n.Sp }
func (n *Call) Span() token.Span        { return n.Sp }
func (n *FieldAccess) Span() token.Span { return n.Sp }
func (n *Index) Span() token.Span       { return n.Sp }
func (n *RangeExpr) Span() token.Span   { return n.Sp }
func (n *ArrayLit) Span() token.Span    { return n.Sp }
func (n *DictLit) Span() token.Span     { return n.Sp }
func (n *FuncLit) Span() token.Span     { return n.Sp }

func (*NilLit) exprNode()      {}
func (*BoolLit) exprNode()     {}
func (*NumberLit) exprNode()   {}
func (*StringLit) exprNode()   {}
func (*Ident) exprNode()       {}
func (*This) exprNode()        {}
func (*Super) exprNode()       {}
func (*Unary) exprNode()       {}
func (*Binary) exprNode()      {}
func (*Logical) exprNode()     {}
func (*Call) exprNode()        {}
func (*FieldAccess) exprNode() {}
func (*Index) exprNode()       {}
func (*RangeExpr) exprNode()   {}
func (*ArrayLit) exprNode()    {}
func (*DictLit) exprNode()     {}
func (*FuncLit) exprNode()     {}
