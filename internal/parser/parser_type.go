package parser

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/lexer"
)

// parseTy parses one surface type: a bare name, a generic application
// Name<T, U>, or a fixed-length array [T; N].
func (p *Parser) parseTy() ast.Ty {
	start := p.cur().Span.Start

	if p.at(lexer.LBRACKET) {
		p.advance()
		elem := p.parseTy()
		p.expect(lexer.SEMI)
		lenTok := p.expect(lexer.NUMBER)
		p.expect(lexer.RBRACKET)
		return &ast.ArrayTy{Span: spanFrom(start, p.cur().Span.Start), Elem: elem, Len: int(lenTok.Value)}
	}

	name := p.typeName()

	if p.at(lexer.LT) {
		p.advance()
		var args []ast.Ty
		if !p.at(lexer.GT) {
			args = append(args, p.parseTy())
			for p.accept(lexer.COMMA) {
				args = append(args, p.parseTy())
			}
		}
		p.expect(lexer.GT)
		return &ast.AppliedTy{Span: spanFrom(start, p.cur().Span.Start), Name: name, Args: args}
	}

	return &ast.NameTy{Span: spanFrom(start, p.cur().Span.Start), Name: name}
}
