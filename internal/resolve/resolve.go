// Package resolve implements the pre-inference pass that rejects duplicate
// top-level definitions, grounded on
// original_source/undisclosed_semant/src/resolver.rs.
package resolve

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/symbol"
)

// Resolver tracks which top-level symbols have already been declared.
type Resolver struct {
	declared map[symbol.Symbol]bool
	symbols  *symbol.Table
}

// New creates a Resolver.
func New(symbols *symbol.Table) *Resolver {
	return &Resolver{declared: make(map[symbol.Symbol]bool), symbols: symbols}
}

// Resolve rejects duplicate top-level definitions across type aliases,
// structs, and functions (they all share one namespace, per spec.md §4.2).
// It reports as many duplicates as it finds rather than stopping at the
// first one, returning false if any were reported.
func (r *Resolver) Resolve(prog *ast.Program, reporter *report.Reporter) bool {
	ok := true
	for _, alias := range prog.TypeAliases {
		if !r.declare(alias.Name, alias.Span, reporter) {
			ok = false
		}
	}
	for _, s := range prog.Structs {
		if !r.declare(s.Name, s.Span, reporter) {
			ok = false
		}
	}
	for _, f := range prog.Functions {
		if !r.declare(f.Name, f.Span, reporter) {
			ok = false
		}
	}
	return ok
}

func (r *Resolver) declare(sym symbol.Symbol, span ast.Span, reporter *report.Reporter) bool {
	if r.declared[sym] {
		reporter.Errorf("resolve", span, "`%s` is defined twice", r.symbols.Name(sym))
		return false
	}
	r.declared[sym] = true
	return true
}
