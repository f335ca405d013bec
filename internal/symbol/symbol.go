// Package symbol interns source identifiers into small integer handles and
// provides the nested scope stacks used by the type environment and the
// resolver.
package symbol

import "fmt"

// Symbol is an interned identifier. Symbols are numbered from 0 in
// interning order, so the zero value is the first name a Table interned.
type Symbol int

func (s Symbol) String() string {
	return fmt.Sprintf("sym%d", int(s))
}

// Table interns strings to Symbols and back, and mints fresh symbols that
// have no source spelling.
type Table struct {
	strToSym map[string]Symbol
	symToStr []string
}

// NewTable creates an empty interning table.
func NewTable() *Table {
	return &Table{
		strToSym: make(map[string]Symbol),
	}
}

// Intern returns the Symbol for name, allocating one if this is the first
// occurrence.
func (t *Table) Intern(name string) Symbol {
	if sym, ok := t.strToSym[name]; ok {
		return sym
	}
	sym := Symbol(len(t.symToStr))
	t.symToStr = append(t.symToStr, name)
	t.strToSym[name] = sym
	return sym
}

// Name returns the source spelling of sym. Panics if sym was never interned
// by this table, which would indicate a compiler bug (symbols never escape
// their originating table).
func (t *Table) Name(sym Symbol) string {
	return t.symToStr[int(sym)]
}

// Fresh mints a symbol with no source spelling, named for display purposes
// only. Monomorphization names its specializations with Intern instead.
func (t *Table) Fresh(hint string) Symbol {
	name := fmt.Sprintf("$%s%d", hint, len(t.symToStr))
	return t.Intern(name)
}

// scope is one level of a nested lexical scope: a map from symbol to the
// bound value, generic over the value type V so Scopes[V] can share
// this implementation across variable/type/escape environments.
type scope[V any] map[Symbol]V

// Scopes is a stack of nested lexical scopes mapping Symbol to a value of
// type V. BeginScope/EndScope must be called in matching pairs; Enter binds
// in the innermost scope (shadowing outer bindings); Look searches
// innermost-first.
type Scopes[V any] struct {
	stack []scope[V]
}

// NewScopes creates a Scopes with a single (global) scope already open.
func NewScopes[V any]() *Scopes[V] {
	s := &Scopes[V]{}
	s.BeginScope()
	return s
}

// BeginScope pushes a new, empty innermost scope.
func (s *Scopes[V]) BeginScope() {
	s.stack = append(s.stack, make(scope[V]))
}

// EndScope pops the innermost scope. Panics if no scope is open, which
// signals mismatched BeginScope/EndScope calls (a compiler bug).
func (s *Scopes[V]) EndScope() {
	if len(s.stack) == 0 {
		panic("symbol: EndScope called with no open scope")
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// Depth reports how many scopes are currently open, for balance assertions
// in tests.
func (s *Scopes[V]) Depth() int {
	return len(s.stack)
}

// Enter binds sym to value in the innermost open scope, shadowing any outer
// binding of the same symbol.
func (s *Scopes[V]) Enter(sym Symbol, value V) {
	s.stack[len(s.stack)-1][sym] = value
}

// Look searches scopes innermost-first and returns the bound value and
// whether it was found.
func (s *Scopes[V]) Look(sym Symbol) (V, bool) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if v, ok := s.stack[i][sym]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Each calls fn once for every binding currently visible across all open
// scopes (innermost binding wins for a shadowed symbol).
func (s *Scopes[V]) Each(fn func(sym Symbol, value V)) {
	seen := make(map[Symbol]bool)
	for i := len(s.stack) - 1; i >= 0; i-- {
		for sym, v := range s.stack[i] {
			if seen[sym] {
				continue
			}
			seen[sym] = true
			fn(sym, v)
		}
	}
}
