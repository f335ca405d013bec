// Package parser builds internal/ast trees from an internal/lexer token
// stream. Grounded on ailang's split-file parser convention
// (parser.go/parser_decl.go/parser_expr.go/parser_type.go, one file per
// syntactic category) for Go code organization; the grammar itself follows
// spec.md's surface syntax (§2/§3), which has no single direct analogue in
// original_source since the Rust front end's own parser was filtered out of
// the retrieval pack (only semant/ir/vm/codegen survive there).
package parser

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/symbol"
)

// Parser consumes a fully pre-lexed token slice rather than streaming
// tokens one at a time, so the generic-call/struct-literal ambiguities in
// parser_expr.go can speculatively parse and backtrack by saving and
// restoring a plain slice index.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	symbols *symbol.Table
	rep     *report.Reporter

	// noStructLit suppresses struct-literal recognition while parsing an
	// if/while condition, so `if x {` parses `{` as the block opener
	// rather than attempting `x{...}` as a struct literal.
	noStructLit bool

	// speculating and specFailed implement the backtracking parser_expr.go
	// uses to tell `id<T>(...)` generic instantiation apart from a
	// `<`/`>` comparison chain: while speculating, expect() records a
	// mismatch instead of reporting it, so a failed speculative parse
	// never surfaces a diagnostic for source that turns out to be valid.
	speculating bool
	specFailed  bool
}

// New creates a Parser over src, an already-normalized source buffer.
func New(src []byte, symbols *symbol.Table, rep *report.Reporter) *Parser {
	lex := lexer.New(src, rep)
	var tokens []lexer.Token
	for {
		tok := lex.Next()
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	return &Parser{tokens: tokens, symbols: symbols, rep: rep}
}

func (p *Parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur().Type == tt }

// accept consumes the current token and returns true if it matches tt.
func (p *Parser) accept(tt lexer.TokenType) bool {
	if p.at(tt) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token, reporting an error if it doesn't
// match tt, and returns it regardless so callers can keep going.
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	if !p.at(tt) {
		if p.speculating {
			p.specFailed = true
			return p.cur()
		}
		p.rep.Errorf("parse", p.cur().Span, "expected %s, got %s", tt, p.cur().Type)
		return p.cur()
	}
	return p.advance()
}

func (p *Parser) ident() symbol.Symbol {
	tok := p.expect(lexer.IDENT)
	return p.symbols.Intern(tok.Literal)
}

// primitiveTypeTokens are the tokens the lexer gives the primitive type
// keywords instead of plain IDENT, since they're reserved words.
var primitiveTypeTokens = map[lexer.TokenType]bool{
	lexer.BOOL_T: true, lexer.STR_T: true, lexer.CHAR_T: true, lexer.NIL: true,
	lexer.I8: true, lexer.U8: true, lexer.I32: true, lexer.U32: true,
	lexer.I64: true, lexer.U64: true,
}

// typeName parses a type-position name: either a plain identifier (a
// struct or alias name) or one of the reserved primitive type keywords,
// both of which the lexer gives a Literal field.
func (p *Parser) typeName() symbol.Symbol {
	if p.at(lexer.IDENT) || primitiveTypeTokens[p.cur().Type] {
		tok := p.advance()
		return p.symbols.Intern(tok.Literal)
	}
	return p.ident()
}

// mark/reset implement the backtracking parser_expr.go needs to
// disambiguate `id<T>(...)` generic instantiation from a `<`/`>`
// comparison chain.
func (p *Parser) mark() int       { return p.pos }
func (p *Parser) reset(mark int)  { p.pos = mark }

func spanFrom(start ast.Position, end ast.Position) ast.Span {
	return ast.Span{Start: start, End: end}
}

// ParseProgram parses a whole compilation unit: an interleaving of type
// aliases, struct definitions, and function definitions, per spec.md §2.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.at(lexer.EOF) {
		switch p.cur().Type {
		case lexer.TYPE:
			prog.TypeAliases = append(prog.TypeAliases, p.parseTypeAlias())
		case lexer.STRUCT:
			prog.Structs = append(prog.Structs, p.parseStructDecl())
		case lexer.EXTERN, lexer.FUNC:
			prog.Functions = append(prog.Functions, p.parseFunction())
		default:
			p.rep.Errorf("parse", p.cur().Span, "expected a type alias, struct, or function definition, got %s", p.cur().Type)
			p.advance()
		}
	}
	return prog
}
