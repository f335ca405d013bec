// Package mono implements monomorphization: every call site of a generic
// function is rewritten to call a concrete specialization, one per
// distinct argument-type tuple actually observed in the program, and
// generic functions with no observed call site are dropped. Grounded on
// original_source/underscore_semant/src/monomorphize.rs.
package mono

import (
	"github.com/velalang/velac/internal/symbol"
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

// specialization is one concrete instantiation of a generic function: its
// mangled name, the argument types that produced it, and its return type.
type specialization struct {
	name    symbol.Symbol
	argTys  []types.Type
	returns types.Type
}

// Mono tracks which top-level functions are generic and, for each one,
// the distinct specializations its call sites demand.
type Mono struct {
	symbols   *symbol.Table
	genFuncs  map[symbol.Symbol]bool
	newDefs   map[symbol.Symbol][]specialization
	seen      map[symbol.Symbol]map[string]bool // dedup key: mangled name
}

// New creates a Mono pass backed by symbols for fresh mangled-name interning.
func New(symbols *symbol.Table) *Mono {
	return &Mono{
		symbols:  symbols,
		genFuncs: make(map[symbol.Symbol]bool),
		newDefs:  make(map[symbol.Symbol][]specialization),
		seen:     make(map[symbol.Symbol]map[string]bool),
	}
}

// Run monomorphizes prog, returning a new Program whose Functions contain
// no remaining generic definitions: every generic function is replaced by
// zero or more concrete specializations (zero if it was never called),
// and every non-generic function's body has its call sites rewritten to
// target the matching specialization.
func Run(prog *typedast.Program, symbols *symbol.Table) *typedast.Program {
	m := New(symbols)

	for _, fn := range prog.Functions {
		if fn.Generic {
			m.genFuncs[fn.Name] = true
		}
	}
	for _, fn := range prog.Functions {
		m.collectBody(fn.Body)
	}

	out := &typedast.Program{Structs: prog.Structs}

	for _, fn := range prog.Functions {
		specs, has := m.newDefs[fn.Name]
		if !has {
			if fn.Generic {
				continue // dead generic: never called, drop it
			}
			out.Functions = append(out.Functions, &typedast.Function{
				Span:    fn.Span,
				Name:    fn.Name,
				Generic: false,
				Params:  fn.Params,
				Returns: fn.Returns,
				Body:    m.rewriteBody(fn.Body),
				Linkage: fn.Linkage,
			})
			continue
		}

		for _, spec := range specs {
			params := make([]typedast.FunctionParam, len(fn.Params))
			for i, p := range fn.Params {
				ty := p.Ty
				if i < len(spec.argTys) {
					ty = spec.argTys[i]
				}
				params[i] = typedast.FunctionParam{Name: p.Name, Ty: ty}
			}
			out.Functions = append(out.Functions, &typedast.Function{
				Span:    fn.Span,
				Name:    spec.name,
				Generic: true,
				Params:  params,
				Returns: spec.returns,
				Body:    m.rewriteBody(fn.Body),
				Linkage: fn.Linkage,
			})
		}
	}

	return out
}

// mangle produces a deterministic specialized name from a generic
// function's base name and the concrete argument types a call site
// supplied, following the Rust source's `name.push_str(&format!("{}",
// ty))` concatenation of each argument type's structural Display form.
func (m *Mono) mangle(base string, argTys []types.Type) string {
	name := base
	for _, ty := range argTys {
		name += ty.String()
	}
	return name
}

func (m *Mono) register(callee symbol.Symbol, argTys []types.Type, returns types.Type) symbol.Symbol {
	mangled := m.mangle(m.symbols.Name(callee), argTys)
	if m.seen[callee] == nil {
		m.seen[callee] = make(map[string]bool)
	}
	newSym := m.symbols.Intern(mangled)
	if m.seen[callee][mangled] {
		return newSym
	}
	m.seen[callee][mangled] = true
	m.newDefs[callee] = append(m.newDefs[callee], specialization{name: newSym, argTys: argTys, returns: returns})
	return newSym
}
