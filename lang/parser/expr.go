package parser

import (
	"github.com/ponos-lang/ponos/lang/ast"
	"github.com/ponos-lang/ponos/lang/token"
)

// binPriority gives each binary/logical operator its precedence, used by
// parseBinExpr's precedence-climbing loop (teacher's lang/parser/expr.go
// binopPriority table, trimmed to the operator set Ponos actually has:
// no bitwise/shift operators, no integer division).
var binPriority = map[token.Token]int{
	token.OR:  1,
	token.AND: 2,
	token.EQEQ: 3, token.BANGEQ: 3,
	token.LT: 3, token.LE: 3, token.GT: 3, token.GE: 3,
	token.PLUS: 4, token.MINUS: 4,
	token.STAR: 5, token.SLASH: 5, token.PERCENT: 5,
}

func (p *parser) parseExpr() (ast.Expr, error) {
	return p.parseBinExpr(0)
}

func (p *parser) parseBinExpr(minPriority int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prio, ok := binPriority[p.cur.Tok]
		if !ok || prio <= minPriority {
			return left, nil
		}
		op := p.cur.Tok
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseBinExpr(prio)
		if err != nil {
			return nil, err
		}
		if op == token.AND || op == token.OR {
			left = &ast.Logical{Sp: span(pos), Op: op, Left: left, Right: right}
		} else {
			left = &ast.Binary{Sp: span(pos), Op: op, Left: left, Right: right}
		}
	}
}

func (p *parser) parseUnary() (ast.Expr, error) {
	if p.at(token.MINUS) || p.at(token.NOT) {
		op, pos := p.cur.Tok, p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Sp: span(pos), Op: op, X: x}, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles the left-recursive suffixes that bind tightest:
// call `(...)`, field access `.name`, and index/slice `[...]`.
func (p *parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Tok {
		case token.LPAREN:
			pos := p.cur.Pos
			if err := p.advance(); err != nil {
				return nil, err
			}
			var args []ast.Expr
			for !p.at(token.RPAREN) {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.at(token.COMMA) {
					if err := p.advance(); err != nil {
						return nil, err
					}
					continue
				}
				break
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			e = &ast.Call{Sp: span(pos), Callee: e, Args: args}
		case token.DOT:
			pos := p.cur.Pos
			if err := p.advance(); err != nil {
				return nil, err
			}
			name, _, err := p.ident()
			if err != nil {
				return nil, err
			}
			e = &ast.FieldAccess{Sp: span(pos), Obj: e, Name: name}
		case token.LBRACK:
			pos := p.cur.Pos
			if err := p.advance(); err != nil {
				return nil, err
			}
			idx, err := p.parseIndexOrRange()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACK); err != nil {
				return nil, err
			}
			e = &ast.Index{Sp: span(pos), Obj: e, Idx: idx}
		default:
			return e, nil
		}
	}
}

// parseIndexOrRange parses the contents of `[...]`: either a plain
// expression, or a slice `start:end` with either side optional
// (spec.md §3 "RangeExpr": "the slice-only start:end syntax").
func (p *parser) parseIndexOrRange() (ast.Expr, error) {
	pos := p.cur.Pos
	var start ast.Expr
	if !p.at(token.COLON) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		start = e
	}
	if !p.at(token.COLON) {
		return start, nil
	}
	if err := p.advance(); err != nil { // consume :
		return nil, err
	}
	var end ast.Expr
	if !p.at(token.RBRACK) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		end = e
	}
	return &ast.RangeExpr{Sp: span(pos), Start: start, End: end}, nil
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	pos := p.cur.Pos
	switch p.cur.Tok {
	case token.NIL:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.NilLit{Sp: span(pos)}, nil
	case token.TRUE, token.FALSE:
		v := p.at(token.TRUE)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.BoolLit{Sp: span(pos), Value: v}, nil
	case token.NUMBER:
		n := p.cur.Num
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.NumberLit{Sp: span(pos), Value: n}, nil
	case token.STRING:
		s := p.cur.Str
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.StringLit{Sp: span(pos), Value: s}, nil
	case token.IDENT:
		name := p.cur.Lit
		if err := p.advance(); err != nil {
			return nil, err
		}
		// A chain of ид::ид::ид names a native module export (spec.md §6
		// "Native modules register under their own mangled names, e.g.
		// ио::вывести") — the only place "::" can appear in an expression.
		for p.at(token.DCOLON) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			part, _, err := p.ident()
			if err != nil {
				return nil, err
			}
			name += "::" + part
		}
		return &ast.Ident{Sp: span(pos), Name: name}, nil
	case token.THIS:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.This{Sp: span(pos)}, nil
	case token.SUPER:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.DOT); err != nil {
			return nil, err
		}
		name, _, err := p.ident()
		if err != nil {
			return nil, err
		}
		return &ast.Super{Sp: span(pos), Name: name}, nil
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case token.LBRACK:
		return p.parseArrayLit()
	case token.LBRACE:
		return p.parseDictLit()
	case token.FUNC:
		return p.parseFuncLit()
	default:
		return nil, p.fail("непредвиденный токен %s в начале выражения", p.cur.Tok)
	}
}

func (p *parser) parseArrayLit() (*ast.ArrayLit, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // consume [
		return nil, err
	}
	var elems []ast.Expr
	for !p.at(token.RBRACK) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.at(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACK); err != nil {
		return nil, err
	}
	return &ast.ArrayLit{Sp: span(pos), Elems: elems}, nil
}

func (p *parser) parseDictLit() (*ast.DictLit, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // consume {
		return nil, err
	}
	var entries []ast.DictEntry
	for !p.at(token.RBRACE) {
		key, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.DictEntry{Key: key, Value: val})
		if p.at(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.DictLit{Sp: span(pos), Entries: entries}, nil
}

func (p *parser) parseFuncLit() (*ast.FuncLit, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // consume функция
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStmts()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.END); err != nil {
		return nil, err
	}
	return &ast.FuncLit{Sp: span(pos), Params: params, Body: body}, nil
}
