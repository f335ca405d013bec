package parser

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/symbol"
)

// parseExpr parses a full expression, per the precedence chain:
// Assignment -> LogicOr -> LogicAnd -> Equality -> Relational -> Additive
// -> Multiplicative -> Cast -> Unary -> Postfix -> Primary.
func (p *Parser) parseExpr() ast.Expression {
	return p.parseAssignment()
}

// parseAssignment is the only right-associative level; its LHS must reduce
// to a Var (a bare name, field projection, or subscript), never an
// arbitrary expression.
func (p *Parser) parseAssignment() ast.Expression {
	lhs := p.parseLogicOr()
	if !p.at(lexer.ASSIGN) {
		return lhs
	}

	varExpr, ok := lhs.(*ast.VarExpr)
	if !ok {
		p.rep.Errorf("parse", p.cur().Span, "invalid assignment target")
		p.advance()
		return lhs
	}

	p.advance()
	rhs := p.parseAssignment()
	return &ast.Assign{Span: spanFrom(lhs.Position().Start, p.cur().Span.Start), Var: varExpr.Var, Expr: rhs}
}

func (p *Parser) parseLogicOr() ast.Expression {
	expr := p.parseLogicAnd()
	for p.at(lexer.OR) {
		p.advance()
		rhs := p.parseLogicAnd()
		expr = &ast.Binary{Span: spanFrom(expr.Position().Start, p.cur().Span.Start), LHS: expr, Op: ast.OpOr, RHS: rhs}
	}
	return expr
}

func (p *Parser) parseLogicAnd() ast.Expression {
	expr := p.parseEquality()
	for p.at(lexer.AND) {
		p.advance()
		rhs := p.parseEquality()
		expr = &ast.Binary{Span: spanFrom(expr.Position().Start, p.cur().Span.Start), LHS: expr, Op: ast.OpAnd, RHS: rhs}
	}
	return expr
}

func (p *Parser) parseEquality() ast.Expression {
	expr := p.parseRelational()
	for p.at(lexer.EQ) || p.at(lexer.NEQ) {
		op := ast.OpEq
		if p.cur().Type == lexer.NEQ {
			op = ast.OpNeq
		}
		p.advance()
		rhs := p.parseRelational()
		expr = &ast.Binary{Span: spanFrom(expr.Position().Start, p.cur().Span.Start), LHS: expr, Op: op, RHS: rhs}
	}
	return expr
}

func (p *Parser) parseRelational() ast.Expression {
	expr := p.parseAdditive()
	for p.at(lexer.LT) || p.at(lexer.LTE) || p.at(lexer.GT) || p.at(lexer.GTE) {
		var op ast.Op
		switch p.cur().Type {
		case lexer.LT:
			op = ast.OpLt
		case lexer.LTE:
			op = ast.OpLte
		case lexer.GT:
			op = ast.OpGt
		default:
			op = ast.OpGte
		}
		p.advance()
		rhs := p.parseAdditive()
		expr = &ast.Binary{Span: spanFrom(expr.Position().Start, p.cur().Span.Start), LHS: expr, Op: op, RHS: rhs}
	}
	return expr
}

func (p *Parser) parseAdditive() ast.Expression {
	expr := p.parseMultiplicative()
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		op := ast.OpPlus
		if p.cur().Type == lexer.MINUS {
			op = ast.OpMinus
		}
		p.advance()
		rhs := p.parseMultiplicative()
		expr = &ast.Binary{Span: spanFrom(expr.Position().Start, p.cur().Span.Start), LHS: expr, Op: op, RHS: rhs}
	}
	return expr
}

func (p *Parser) parseMultiplicative() ast.Expression {
	expr := p.parseCast()
	for p.at(lexer.STAR) || p.at(lexer.SLASH) {
		op := ast.OpStar
		if p.cur().Type == lexer.SLASH {
			op = ast.OpSlash
		}
		p.advance()
		rhs := p.parseCast()
		expr = &ast.Binary{Span: spanFrom(expr.Position().Start, p.cur().Span.Start), LHS: expr, Op: op, RHS: rhs}
	}
	return expr
}

// parseCast handles postfix `expr as Ty`, left-associative so `x as i8 as
// i32` reads as `(x as i8) as i32`.
func (p *Parser) parseCast() ast.Expression {
	expr := p.parseUnary()
	for p.accept(lexer.AS) {
		ty := p.parseTy()
		expr = &ast.Cast{Span: spanFrom(expr.Position().Start, p.cur().Span.Start), Expr: expr, To: ty}
	}
	return expr
}

func (p *Parser) parseUnary() ast.Expression {
	if p.at(lexer.BANG) {
		start := p.advance().Span.Start
		operand := p.parseUnary()
		return &ast.Unary{Span: spanFrom(start, p.cur().Span.Start), Op: ast.UnaryBang, Expr: operand}
	}
	if p.at(lexer.MINUS) {
		start := p.advance().Span.Start
		operand := p.parseUnary()
		return &ast.Unary{Span: spanFrom(start, p.cur().Span.Start), Op: ast.UnaryMinus, Expr: operand}
	}
	return p.parsePostfix()
}

// parsePostfix chains `.field` and `[index]` onto a Var-producing primary.
// Only VarExpr results accept postfix access: a call or literal result
// ends the chain, matching Var's recursive owner shape (FieldVar/
// SubScriptVar only ever wrap another Var, never an arbitrary expression).
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		varExpr, ok := expr.(*ast.VarExpr)
		if !ok {
			return expr
		}
		if p.at(lexer.DOT) {
			p.advance()
			field := p.ident()
			sp := spanFrom(expr.Position().Start, p.cur().Span.Start)
			expr = &ast.VarExpr{Span: sp, Var: &ast.FieldVar{Span: sp, Owner: varExpr.Var, Field: field}}
			continue
		}
		if p.at(lexer.LBRACKET) {
			p.advance()
			idx := p.parseExpr()
			p.expect(lexer.RBRACKET)
			sp := spanFrom(expr.Position().Start, p.cur().Span.Start)
			expr = &ast.VarExpr{Span: sp, Var: &ast.SubScriptVar{Span: sp, Owner: varExpr.Var, Index: idx}}
			continue
		}
		return expr
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LitNumber, Number: tok.Value, HasSuffix: tok.HasSuffix, Sign: tok.Sign, Size: tok.Size}
	case lexer.STRING:
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LitString, Str: tok.Literal}
	case lexer.CHAR:
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LitChar, Char: byte(tok.Value)}
	case lexer.TRUE:
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LitTrue}
	case lexer.FALSE:
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LitFalse}
	case lexer.NIL:
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LitNil}
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(lexer.RPAREN)
		return &ast.Grouping{Span: spanFrom(tok.Span.Start, p.cur().Span.Start), Expr: inner}
	case lexer.LBRACKET:
		p.advance()
		var elems []ast.Expression
		if !p.at(lexer.RBRACKET) {
			elems = append(elems, p.parseExpr())
			for p.accept(lexer.COMMA) {
				elems = append(elems, p.parseExpr())
			}
		}
		p.expect(lexer.RBRACKET)
		return &ast.ArrayLit{Span: spanFrom(tok.Span.Start, p.cur().Span.Start), Elems: elems}
	case lexer.IDENT:
		return p.parseIdentPrimary()
	default:
		p.rep.Errorf("parse", tok.Span, "unexpected token %s in expression", tok.Type)
		p.advance()
		return &ast.Literal{Span: tok.Span, Kind: ast.LitNil}
	}
}

// parseIdentPrimary resolves an identifier in expression position into a
// bare variable reference, a call, or a struct literal. `id<T>(...)` and
// `id<T>{...}` are ambiguous with a `<`/`>` comparison chain at this point,
// so that branch speculatively parses and backtracks on failure via
// tryGenericCallOrStructLit.
func (p *Parser) parseIdentPrimary() ast.Expression {
	tok := p.advance()
	name := p.symbols.Intern(tok.Literal)

	if p.at(lexer.LPAREN) {
		return p.finishCall(tok.Span.Start, name, nil)
	}

	if p.at(lexer.LT) {
		if expr, ok := p.tryGenericCallOrStructLit(tok.Span.Start, name); ok {
			return expr
		}
	}

	if p.at(lexer.LBRACE) && !p.noStructLit {
		return p.finishStructLit(tok.Span.Start, name, nil)
	}

	return &ast.VarExpr{Span: tok.Span, Var: &ast.SimpleVar{Span: tok.Span, Name: name}}
}

// tryGenericCallOrStructLit speculatively parses a `<Ty, ...>` type
// argument list and confirms it by requiring either `(` or `{` to follow.
// On any mismatch it rewinds to mark and reports no diagnostic, leaving
// the `<` to be reparsed as a relational operator by the caller's
// enclosing Relational level.
func (p *Parser) tryGenericCallOrStructLit(start ast.Position, name symbol.Symbol) (ast.Expression, bool) {
	m := p.mark()
	prevSpeculating, prevFailed := p.speculating, p.specFailed
	p.speculating = true
	p.specFailed = false

	typeArgs := p.parseTypeArgsList()
	failed := p.specFailed

	p.speculating, p.specFailed = prevSpeculating, prevFailed

	if failed {
		p.reset(m)
		return nil, false
	}
	if p.at(lexer.LPAREN) {
		return p.finishCall(start, name, typeArgs), true
	}
	if p.at(lexer.LBRACE) && !p.noStructLit {
		return p.finishStructLit(start, name, typeArgs), true
	}
	p.reset(m)
	return nil, false
}

// parseTypeArgsList parses `<Ty, ...>`, used for both explicit-instantiation
// calls and struct literals.
func (p *Parser) parseTypeArgsList() []ast.Ty {
	p.expect(lexer.LT)
	var args []ast.Ty
	if !p.at(lexer.GT) {
		args = append(args, p.parseTy())
		for p.accept(lexer.COMMA) {
			args = append(args, p.parseTy())
		}
	}
	p.expect(lexer.GT)
	return args
}

func (p *Parser) finishCall(start ast.Position, name symbol.Symbol, typeArgs []ast.Ty) ast.Expression {
	p.expect(lexer.LPAREN)
	var args []ast.Expression
	if !p.at(lexer.RPAREN) {
		args = append(args, p.parseExpr())
		for p.accept(lexer.COMMA) {
			args = append(args, p.parseExpr())
		}
	}
	p.expect(lexer.RPAREN)
	return &ast.Call{Span: spanFrom(start, p.cur().Span.Start), Callee: name, TypeArgs: typeArgs, Args: args}
}

func (p *Parser) finishStructLit(start ast.Position, name symbol.Symbol, typeArgs []ast.Ty) ast.Expression {
	p.expect(lexer.LBRACE)
	var fields []*ast.FieldInit
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		fieldStart := p.cur().Span.Start
		fieldName := p.ident()
		p.expect(lexer.COLON)
		val := p.parseExpr()
		fields = append(fields, &ast.FieldInit{Span: spanFrom(fieldStart, p.cur().Span.Start), Name: fieldName, Expr: val})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.StructLit{Span: spanFrom(start, p.cur().Span.Start), Name: name, TypeArgs: typeArgs, Fields: fields}
}
