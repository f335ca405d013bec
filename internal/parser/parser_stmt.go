package parser

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/lexer"
)

// parseBlock parses `{ stmt* }`.
func (p *Parser) parseBlock() *ast.BlockStmt {
	start := p.expect(lexer.LBRACE).Span.Start
	var stmts []ast.Statement
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(lexer.RBRACE)
	return &ast.BlockStmt{Span: spanFrom(start, p.cur().Span.Start), Stmts: stmts}
}

func (p *Parser) parseStmt() ast.Statement {
	switch p.cur().Type {
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.LET:
		return p.parseLetStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.BREAK:
		start := p.advance().Span.Start
		p.expect(lexer.SEMI)
		return &ast.BreakStmt{Span: spanFrom(start, p.cur().Span.Start)}
	case lexer.CONTINUE:
		start := p.advance().Span.Start
		p.expect(lexer.SEMI)
		return &ast.ContinueStmt{Span: spanFrom(start, p.cur().Span.Start)}
	case lexer.RETURN:
		start := p.advance().Span.Start
		var expr ast.Expression
		if !p.at(lexer.SEMI) {
			expr = p.parseExpr()
		}
		p.expect(lexer.SEMI)
		return &ast.ReturnStmt{Span: spanFrom(start, p.cur().Span.Start), Expr: expr}
	default:
		start := p.cur().Span.Start
		expr := p.parseExpr()
		p.expect(lexer.SEMI)
		return &ast.ExprStmt{Span: spanFrom(start, p.cur().Span.Start), Expr: expr}
	}
}

// parseLetStmt parses `let name (: Ty)? (= expr)?;`.
func (p *Parser) parseLetStmt() ast.Statement {
	start := p.expect(lexer.LET).Span.Start
	name := p.ident()

	var ty ast.Ty
	if p.accept(lexer.COLON) {
		ty = p.parseTy()
	}

	var init ast.Expression
	if p.accept(lexer.ASSIGN) {
		init = p.parseExpr()
	}

	p.expect(lexer.SEMI)
	return &ast.LetStmt{Span: spanFrom(start, p.cur().Span.Start), Name: name, Ty: ty, Init: init}
}

// parseIfStmt parses `if cond then (else otherwise)?`. The condition is
// parsed with noStructLit set so `if x { ... }` reads the brace as the
// block opener instead of attempting to parse x{...} as a struct literal.
func (p *Parser) parseIfStmt() ast.Statement {
	start := p.expect(lexer.IF).Span.Start
	cond := p.parseCondExpr()
	then := p.parseBlock()

	var otherwise ast.Statement
	if p.accept(lexer.ELSE) {
		if p.at(lexer.IF) {
			otherwise = p.parseIfStmt()
		} else {
			otherwise = p.parseBlock()
		}
	}

	return &ast.IfStmt{Span: spanFrom(start, p.cur().Span.Start), Cond: cond, Then: then, Otherwise: otherwise}
}

// parseWhileStmt parses `while cond body`, with the same struct-literal
// suppression as parseIfStmt.
func (p *Parser) parseWhileStmt() ast.Statement {
	start := p.expect(lexer.WHILE).Span.Start
	cond := p.parseCondExpr()
	body := p.parseBlock()
	return &ast.WhileStmt{Span: spanFrom(start, p.cur().Span.Start), Cond: cond, Body: body}
}

// parseForStmt parses `for (init; cond; incr) body`, any clause may be
// absent. Clause position is unambiguous (parenthesized), so noStructLit
// is not needed here.
func (p *Parser) parseForStmt() ast.Statement {
	start := p.expect(lexer.FOR).Span.Start
	p.expect(lexer.LPAREN)

	var init ast.Statement
	if !p.at(lexer.SEMI) {
		if p.at(lexer.LET) {
			init = p.parseLetStmt()
		} else {
			exprStart := p.cur().Span.Start
			expr := p.parseExpr()
			init = &ast.ExprStmt{Span: spanFrom(exprStart, p.cur().Span.Start), Expr: expr}
			p.expect(lexer.SEMI)
		}
	} else {
		p.expect(lexer.SEMI)
	}

	var cond ast.Expression
	if !p.at(lexer.SEMI) {
		cond = p.parseExpr()
	}
	p.expect(lexer.SEMI)

	var incr ast.Expression
	if !p.at(lexer.RPAREN) {
		incr = p.parseExpr()
	}
	p.expect(lexer.RPAREN)

	body := p.parseBlock()

	return &ast.ForStmt{Span: spanFrom(start, p.cur().Span.Start), Init: init, Cond: cond, Incr: incr, Body: body}
}

// parseCondExpr parses an if/while condition with struct-literal parsing
// suppressed so the following `{` is never mistaken for one.
func (p *Parser) parseCondExpr() ast.Expression {
	prev := p.noStructLit
	p.noStructLit = true
	expr := p.parseExpr()
	p.noStructLit = prev
	return expr
}
