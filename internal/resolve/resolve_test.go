package resolve

import (
	"testing"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/symbol"
)

func TestResolveAcceptsUniqueNames(t *testing.T) {
	symbols := symbol.NewTable()
	prog := &ast.Program{
		Functions: []*ast.Function{
			{Name: symbols.Intern("a")},
			{Name: symbols.Intern("b")},
		},
	}
	rep := report.New("t")
	r := New(symbols)
	if !r.Resolve(prog, rep) {
		t.Fatalf("expected unique top-level names to resolve cleanly")
	}
	if rep.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics())
	}
}

func TestResolveRejectsDuplicateFunctions(t *testing.T) {
	symbols := symbol.NewTable()
	name := symbols.Intern("f")
	prog := &ast.Program{
		Functions: []*ast.Function{
			{Name: name},
			{Name: name},
		},
	}
	rep := report.New("t")
	r := New(symbols)
	if r.Resolve(prog, rep) {
		t.Fatalf("expected duplicate function names to fail resolution")
	}
	if len(rep.Diagnostics()) != 1 || rep.Diagnostics()[0].Message != "`f` is defined twice" {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics())
	}
}

func TestResolveRejectsCrossKindDuplicate(t *testing.T) {
	symbols := symbol.NewTable()
	name := symbols.Intern("Foo")
	prog := &ast.Program{
		Structs:   []*ast.StructDecl{{Name: name}},
		Functions: []*ast.Function{{Name: name}},
	}
	rep := report.New("t")
	r := New(symbols)
	if r.Resolve(prog, rep) {
		t.Fatalf("a struct and a function sharing a name must be rejected")
	}
}
