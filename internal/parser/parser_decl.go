package parser

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/symbol"
)

// parseTypeAlias parses `type Name = Ty;`.
func (p *Parser) parseTypeAlias() *ast.TypeAlias {
	start := p.expect(lexer.TYPE).Span.Start
	name := p.ident()
	p.expect(lexer.ASSIGN)
	ty := p.parseTy()
	p.expect(lexer.SEMI)
	return &ast.TypeAlias{Span: spanFrom(start, p.cur().Span.Start), Name: name, Ty: ty}
}

// parseTypeParams parses an optional `<A, B, ...>` type-parameter list.
func (p *Parser) parseTypeParams() []symbol.Symbol {
	if !p.accept(lexer.LT) {
		return nil
	}
	var params []symbol.Symbol
	params = append(params, p.ident())
	for p.accept(lexer.COMMA) {
		params = append(params, p.ident())
	}
	p.expect(lexer.GT)
	return params
}

// parseStructDecl parses `struct Name<T, ...>? { field: Ty, ... }`.
func (p *Parser) parseStructDecl() *ast.StructDecl {
	start := p.expect(lexer.STRUCT).Span.Start
	name := p.ident()
	typeParams := p.parseTypeParams()

	p.expect(lexer.LBRACE)
	var fields []*ast.FieldDecl
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		fieldStart := p.cur().Span.Start
		fieldName := p.ident()
		p.expect(lexer.COLON)
		fieldTy := p.parseTy()
		fields = append(fields, &ast.FieldDecl{Span: spanFrom(fieldStart, p.cur().Span.Start), Name: fieldName, Ty: fieldTy})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE)

	return &ast.StructDecl{Span: spanFrom(start, p.cur().Span.Start), Name: name, TypeParams: typeParams, Fields: fields}
}

// parseFunction parses `extern? fn name<T,...>? (params) (-> Ty)? block`.
func (p *Parser) parseFunction() *ast.Function {
	linkage := ast.LinkageNone
	start := p.cur().Span.Start
	if p.accept(lexer.EXTERN) {
		linkage = ast.LinkageExternal
	}
	p.expect(lexer.FUNC)
	name := p.ident()
	typeParams := p.parseTypeParams()

	p.expect(lexer.LPAREN)
	var params []*ast.Param
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		paramStart := p.cur().Span.Start
		paramName := p.ident()
		p.expect(lexer.COLON)
		paramTy := p.parseTy()
		params = append(params, &ast.Param{Span: spanFrom(paramStart, p.cur().Span.Start), Name: paramName, Ty: paramTy})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RPAREN)

	var returns ast.Ty
	if p.accept(lexer.ARROW) {
		returns = p.parseTy()
	}

	body := p.parseBlock()

	return &ast.Function{
		Span:       spanFrom(start, p.cur().Span.Start),
		Name:       name,
		TypeParams: typeParams,
		Params:     params,
		Returns:    returns,
		Body:       body,
		Linkage:    linkage,
	}
}
