package lexer

import (
	"testing"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
)

func collect(src string) ([]Token, *report.Reporter) {
	rep := report.New("test.vl")
	l := New([]byte(src), rep)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks, rep
}

func TestKeywordsAndIdents(t *testing.T) {
	toks, rep := collect("fn add x")
	if rep.HasErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}
	want := []TokenType{FUNC, IDENT, IDENT, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Fatalf("token %d: got %v want %v", i, toks[i].Type, tt)
		}
	}
}

func TestNumberSuffix(t *testing.T) {
	toks, rep := collect("3i32 7u8 42")
	if rep.HasErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}
	if !toks[0].HasSuffix || toks[0].Sign != ast.Signed || toks[0].Size != ast.Bit32 || toks[0].Value != 3 {
		t.Fatalf("bad token 0: %+v", toks[0])
	}
	if !toks[1].HasSuffix || toks[1].Sign != ast.Unsigned || toks[1].Size != ast.Bit8 || toks[1].Value != 7 {
		t.Fatalf("bad token 1: %+v", toks[1])
	}
	if toks[2].HasSuffix {
		t.Fatalf("expected no suffix on bare literal: %+v", toks[2])
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	toks, rep := collect(`"hi\n" 'a'`)
	if rep.HasErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}
	if toks[0].Type != STRING || toks[0].Literal != "hi\n" {
		t.Fatalf("bad string token: %+v", toks[0])
	}
	if toks[1].Type != CHAR || toks[1].Value != 'a' {
		t.Fatalf("bad char token: %+v", toks[1])
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	_, rep := collect(`"oops`)
	if !rep.HasErrors() {
		t.Fatalf("expected an error for unterminated string")
	}
}

func TestUnknownCharacterIsError(t *testing.T) {
	_, rep := collect("@")
	if !rep.HasErrors() {
		t.Fatalf("expected an error for unknown character")
	}
}

func TestPositionTracking(t *testing.T) {
	toks, _ := collect("fn\n  add")
	// "add" starts on line 2, column 3.
	addTok := toks[1]
	if addTok.Span.Start.Line != 2 || addTok.Span.Start.Column != 3 {
		t.Fatalf("expected line 2 col 3, got %+v", addTok.Span.Start)
	}
}

func TestTwoCharOperators(t *testing.T) {
	toks, rep := collect("== != <= >= && || ->")
	if rep.HasErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}
	want := []TokenType{EQ, NEQ, LTE, GTE, AND, OR, ARROW, EOF}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Fatalf("token %d: got %v want %v", i, toks[i].Type, tt)
		}
	}
}
