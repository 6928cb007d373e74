// Package ast defines the node shapes produced by the parser and consumed
// by the resolver and code generator. It is a deliberately small,
// non-lossless AST: enough structure for name resolution and bytecode
// generation, not a pretty-printer-grade representation.
package ast

import "github.com/ponos-lang/ponos/lang/token"

// Node is implemented by every AST node.
type Node interface {
	Span() token.Span
}

// Program is the flattened compilation unit the resolver hands to the code
// generator: a single ordered list of top-level statements. By the time a
// Program reaches the generator, import statements have been erased and
// every imported module's body has been wrapped in a ModuleBlock positioned
// before any statement that might reference it (spec.md §1, §4.2 "Import").
type Program struct {
	Name  string
	Stmts []Stmt
}

func (p *Program) Span() token.Span {
	if len(p.Stmts) == 0 {
		return token.Span{}
	}
	return token.Span{Start: p.Stmts[0].Span().Start, End: p.Stmts[len(p.Stmts)-1].Span().End}
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}
