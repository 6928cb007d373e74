package parser

import (
	"github.com/ponos-lang/ponos/lang/ast"
	"github.com/ponos-lang/ponos/lang/token"
)

// isBlockEnder reports the set of tokens that end a statement list without being
// consumed by parseStmts itself — the caller decides what to do with them
// (consume konets, start an elseif branch, etc.), mirroring the teacher's
// approach of letting each block-forming statement own its own terminator.
func isBlockEnder(tok token.Token) bool {
	switch tok {
	case token.EOF, token.END, token.ELSE, token.CATCH:
		return true
	default:
		return false
	}
}

func (p *parser) parseStmts(_ ...token.Token) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !isBlockEnder(p.cur.Tok) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		for p.at(token.SEMI) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return stmts, nil
}

func (p *parser) parseStmt() (ast.Stmt, error) {
	exported := false
	if p.at(token.EXPORT) {
		exported = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	switch p.cur.Tok {
	case token.VAR:
		return p.parseVarDecl(exported)
	case token.IF:
		if exported {
			return nil, p.fail("экспортировать можно только объявление перем")
		}
		return p.parseIf()
	case token.WHILE:
		if exported {
			return nil, p.fail("экспортировать можно только объявление перем")
		}
		return p.parseWhile()
	case token.FOR:
		if exported {
			return nil, p.fail("экспортировать можно только объявление перем")
		}
		return p.parseForEach()
	case token.FUNC:
		if exported {
			return nil, p.fail("экспортировать можно только объявление перем")
		}
		return p.parseFuncDecl()
	case token.CLASS:
		if exported {
			return nil, p.fail("экспортировать можно только объявление перем")
		}
		return p.parseClassDecl()
	case token.MODULE:
		if exported {
			return nil, p.fail("экспортировать можно только объявление перем")
		}
		return p.parseModuleBlock()
	case token.IMPORT:
		return p.parseImport()
	case token.TRY:
		return p.parseTryCatch()
	case token.THROW:
		return p.parseThrow()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Break{Sp: span(pos)}, nil
	default:
		if exported {
			return nil, p.fail("экспортировать можно только объявление перем")
		}
		return p.parseExprOrAssignStmt()
	}
}

func (p *parser) parseVarDecl(exported bool) (*ast.VarDecl, error) {
	start := p.cur.Pos
	if err := p.advance(); err != nil { // consume перем
		return nil, err
	}
	name, _, err := p.ident()
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.at(token.EQ) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	return &ast.VarDecl{Sp: span(start), Name: name, Init: init, Exported: exported}, nil
}

// parseIf implements если/иначе если/иначе/конец chaining: the EXACTLY
// one End token terminating the whole chain is consumed by whichever
// branch bottoms out (a bare else-block, or no else at all); a recursive
// `иначе если` step returns without consuming it itself.
func (p *parser) parseIf() (*ast.If, error) {
	start := p.cur.Pos
	if err := p.advance(); err != nil { // consume если
		return nil, err
	}
	return p.parseIfBody(start)
}

func (p *parser) parseIfBody(start token.Pos) (*ast.If, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStmts()
	if err != nil {
		return nil, err
	}

	if !p.at(token.ELSE) {
		if _, err := p.expect(token.END); err != nil {
			return nil, err
		}
		return &ast.If{Sp: span(start), Cond: cond, Then: then}, nil
	}
	if err := p.advance(); err != nil { // consume иначе
		return nil, err
	}
	if p.at(token.IF) {
		elifStart := p.cur.Pos
		if err := p.advance(); err != nil { // consume если
			return nil, err
		}
		nested, err := p.parseIfBody(elifStart)
		if err != nil {
			return nil, err
		}
		return &ast.If{Sp: span(start), Cond: cond, Then: then, Else: []ast.Stmt{nested}}, nil
	}
	elseStmts, err := p.parseStmts()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.END); err != nil {
		return nil, err
	}
	return &ast.If{Sp: span(start), Cond: cond, Then: then, Else: elseStmts}, nil
}

func (p *parser) parseWhile() (*ast.While, error) {
	start := p.cur.Pos
	if err := p.advance(); err != nil { // consume пока
		return nil, err
	}
	cond, err := p.parseExpr()
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
	return &ast.While{Sp: span(start), Cond: cond, Body: body}, nil
}

func (p *parser) parseForEach() (*ast.ForEach, error) {
	start := p.cur.Pos
	if err := p.advance(); err != nil { // consume для
		return nil, err
	}
	name, _, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
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
	return &ast.ForEach{Sp: span(start), VarName: name, Iterable: iter, Body: body}, nil
}

// parseParams parses a parenthesized, comma-separated identifier list.
func (p *parser) parseParams() ([]string, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	for !p.at(token.RPAREN) {
		name, _, err := p.ident()
		if err != nil {
			return nil, err
		}
		params = append(params, name)
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
	return params, nil
}

func (p *parser) parseFuncDecl() (*ast.FuncDecl, error) {
	start := p.cur.Pos
	if err := p.advance(); err != nil { // consume функция
		return nil, err
	}
	name, _, err := p.ident()
	if err != nil {
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
	return &ast.FuncDecl{Sp: span(start), Name: name, Params: params, Body: body}, nil
}

func (p *parser) parseClassDecl() (*ast.ClassDecl, error) {
	start := p.cur.Pos
	if err := p.advance(); err != nil { // consume класс
		return nil, err
	}
	name, _, err := p.ident()
	if err != nil {
		return nil, err
	}
	var parent string
	if p.at(token.EXTENDS) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		parent, _, err = p.ident()
		if err != nil {
			return nil, err
		}
	}
	var methods []ast.Method
	var fields []string
	for p.at(token.FUNC) {
		if err := p.advance(); err != nil { // consume функция
			return nil, err
		}
		mname, _, err := p.ident()
		if err != nil {
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
		methods = append(methods, ast.Method{Name: mname, Params: params, Body: body})
	}
	if _, err := p.expect(token.END); err != nil {
		return nil, err
	}
	return &ast.ClassDecl{Sp: span(start), Name: name, Parent: parent, Fields: fields, Methods: methods}, nil
}

func (p *parser) parseModuleBlock() (*ast.ModuleBlock, error) {
	start := p.cur.Pos
	if err := p.advance(); err != nil { // consume модуль
		return nil, err
	}
	name, _, err := p.ident()
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStmts()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.END); err != nil {
		return nil, err
	}
	return &ast.ModuleBlock{Sp: span(start), Name: name, Stmts: stmts}, nil
}

func (p *parser) parseImport() (*ast.Import, error) {
	start := p.cur.Pos
	if err := p.advance(); err != nil { // consume импорт
		return nil, err
	}
	if p.cur.Tok != token.STRING {
		return nil, p.fail("ожидался путь модуля в виде строки")
	}
	path := p.cur.Str
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.Import{Sp: span(start), Path: path}, nil
}

func (p *parser) parseTryCatch() (*ast.TryCatch, error) {
	start := p.cur.Pos
	if err := p.advance(); err != nil { // consume пробовать
		return nil, err
	}
	tryStmts, err := p.parseStmts()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.CATCH); err != nil {
		return nil, err
	}
	var varName string
	if p.at(token.IDENT) {
		varName, _, err = p.ident()
		if err != nil {
			return nil, err
		}
	}
	catchStmts, err := p.parseStmts()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.END); err != nil {
		return nil, err
	}
	return &ast.TryCatch{
		Sp:  span(start),
		Try: tryStmts,
		Catch: ast.Catch{
			VarName: varName,
			Body:    catchStmts,
		},
	}, nil
}

func (p *parser) parseThrow() (*ast.Throw, error) {
	start := p.cur.Pos
	if err := p.advance(); err != nil { // consume бросить
		return nil, err
	}
	v, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Throw{Sp: span(start), Value: v}, nil
}

func (p *parser) parseReturn() (*ast.Return, error) {
	start := p.cur.Pos
	if err := p.advance(); err != nil { // consume вернуть
		return nil, err
	}
	if isBlockEnder(p.cur.Tok) || p.at(token.SEMI) {
		return &ast.Return{Sp: span(start)}, nil
	}
	v, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Sp: span(start), Value: v}, nil
}

// parseExprOrAssignStmt parses either an assignment (target = value) or a
// bare expression statement, distinguishing them by whether an EQ follows
// the parsed primary/postfix expression.
func (p *parser) parseExprOrAssignStmt() (ast.Stmt, error) {
	start := p.cur.Pos
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.at(token.EQ) {
		return &ast.ExprStmt{Sp: span(start), X: e}, nil
	}
	target, err := exprToAssignTarget(e, p)
	if err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil { // consume =
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Sp: span(start), Target: target, Value: value}, nil
}

func exprToAssignTarget(e ast.Expr, p *parser) (ast.AssignTarget, error) {
	switch e := e.(type) {
	case *ast.Ident:
		return ast.AssignTarget{Ident: e}, nil
	case *ast.FieldAccess:
		return ast.AssignTarget{Field: e}, nil
	case *ast.Index:
		return ast.AssignTarget{Index: e}, nil
	default:
		return ast.AssignTarget{}, p.fail("недопустимая цель присваивания")
	}
}
