// Package parser implements a recursive-descent, precedence-climbing
// parser producing lang/ast nodes from lang/scanner tokens. Structurally
// this is the same two-layer design as the teacher's lang/parser: a
// parser struct holding one token of lookahead plus advance()/expect()
// helpers, with binary-operator precedence resolved by a priority table
// rather than a hand-written grammar per level (teacher's
// lang/parser/expr.go, parseSubExpr/binopPriority).
package parser

import (
	"fmt"

	"github.com/ponos-lang/ponos/lang/ast"
	"github.com/ponos-lang/ponos/lang/scanner"
	"github.com/ponos-lang/ponos/lang/token"
)

// Error is a parse failure with the source position it occurred at.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

type parser struct {
	sc  *scanner.Scanner
	cur scanner.TokenInfo
	err error
}

// Parse tokenizes and parses a complete Ponos source unit, returning the
// top-level statement list wrapped in an *ast.Program (spec.md §3
// "Program"). Name is the module's display/import name, e.g. the file's
// base name or "repl".
func Parse(name, src string) (*ast.Program, error) {
	p := &parser{sc: scanner.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	stmts, err := p.parseStmts(token.EOF)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Name: name, Stmts: stmts}, nil
}

func (p *parser) advance() error {
	if p.err != nil {
		return p.err
	}
	t, err := p.sc.Scan()
	if err != nil {
		p.err = err
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) at(tok token.Token) bool { return p.cur.Tok == tok }

func (p *parser) fail(msg string, args ...any) error {
	return &Error{Pos: p.cur.Pos, Msg: fmt.Sprintf(msg, args...)}
}

// expect consumes the current token if it matches tok, else reports an
// error naming what was expected.
func (p *parser) expect(tok token.Token) (token.Pos, error) {
	if p.cur.Tok != tok {
		return token.Pos{}, p.fail("ожидался %s, получено %s", tok, p.cur.Tok)
	}
	pos := p.cur.Pos
	return pos, p.advance()
}

// ident consumes an IDENT token and returns its literal spelling.
func (p *parser) ident() (string, token.Pos, error) {
	if p.cur.Tok != token.IDENT {
		return "", token.Pos{}, p.fail("ожидался идентификатор, получено %s", p.cur.Tok)
	}
	name, pos := p.cur.Lit, p.cur.Pos
	return name, pos, p.advance()
}

// span builds a token.Span from a start position through the position
// just consumed (p.cur's position before the most recent advance is not
// retained, so callers pass the end explicitly when it matters; for most
// nodes the start position alone is sufficient for error reporting).
func span(start token.Pos) token.Span { return token.Span{Start: start, End: start} }
