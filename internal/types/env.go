package types

import "github.com/velalang/velac/internal/symbol"

// VarEntry is a binding in the variable environment: a plain local/param,
// or a function (always a Poly scheme, with empty Vars when non-generic).
type VarEntry struct {
	IsFun bool
	Ty    Type   // for a plain variable
	Fun   Poly   // for a function; Fun.Body is always App(Arrow, [params..., ret])
}

func VarOf(ty Type) VarEntry     { return VarEntry{Ty: ty} }
func FunOf(scheme Poly) VarEntry { return VarEntry{IsFun: true, Fun: scheme} }

// TypeEntry is a binding in the type environment: a concrete type alias, or
// a type constructor (for named generic type constructors such as a struct
// or alias applied to type arguments).
type TypeEntry struct {
	IsCon bool
	Ty    Type
	Con   TyCon
}

func TyOf(ty Type) TypeEntry  { return TypeEntry{Ty: ty} }
func ConOf(con TyCon) TypeEntry { return TypeEntry{IsCon: true, Con: con} }

// Allocator mints fresh TypeVars and UniqueTags for a single compilation.
// Scoping id generation to an explicit allocator (rather than a process-wide
// counter, as the original Rust compiler uses) avoids cross-run leakage
// between compilations in the same process, per spec.md's design notes.
type Allocator struct {
	nextVar    TypeVar
	nextUnique UniqueTag
}

// NewAllocator creates an Allocator starting both counters at zero.
func NewAllocator() *Allocator { return &Allocator{} }

// FreshVar mints a new, never-before-seen TypeVar.
func (a *Allocator) FreshVar() TypeVar {
	v := a.nextVar
	a.nextVar++
	return v
}

// FreshUnique mints a new UniqueTag for a struct definition.
func (a *Allocator) FreshUnique() UniqueTag {
	u := a.nextUnique
	a.nextUnique++
	return u
}

// Env bundles the three coupled scope stacks (variables, types, escape
// flags) that must share BeginScope/EndScope calls, plus the side map from
// TypeVar to VarType and a reference to the symbol table for diagnostics.
// Modeled on spec.md's "three coupled stacks behind a single API" design
// note, since a plain parent-pointer environment (as ailang's TypeEnv uses)
// doesn't give scope-balance checking for free.
type Env struct {
	vars    *symbol.Scopes[VarEntry]
	tys     *symbol.Scopes[TypeEntry]
	escapes *symbol.Scopes[bool]
	tvars   map[TypeVar]VarType

	Symbols *symbol.Table
	Alloc   *Allocator

	scopeCalls int // BeginScope count, for the scope-balance testable property
	endCalls   int
}

// NewEnv creates an environment with a single (global) scope open in each
// of the three stacks.
func NewEnv(symbols *symbol.Table, alloc *Allocator) *Env {
	return &Env{
		vars:    symbol.NewScopes[VarEntry](),
		tys:     symbol.NewScopes[TypeEntry](),
		escapes: symbol.NewScopes[bool](),
		tvars:   make(map[TypeVar]VarType),
		Symbols: symbols,
		Alloc:   alloc,
	}
}

// BeginScope pushes a new scope onto all three stacks in lockstep.
func (e *Env) BeginScope() {
	e.vars.BeginScope()
	e.tys.BeginScope()
	e.escapes.BeginScope()
	e.scopeCalls++
}

// EndScope pops a scope from all three stacks in lockstep.
func (e *Env) EndScope() {
	e.vars.EndScope()
	e.tys.EndScope()
	e.escapes.EndScope()
	e.endCalls++
}

// ScopeBalance reports (begin count, end count), used by tests to assert
// the testable "scope balance" property.
func (e *Env) ScopeBalance() (begin, end int) {
	return e.scopeCalls, e.endCalls
}

func (e *Env) AddVar(sym symbol.Symbol, entry VarEntry) { e.vars.Enter(sym, entry) }
func (e *Env) LookVar(sym symbol.Symbol) (VarEntry, bool) { return e.vars.Look(sym) }

func (e *Env) AddType(sym symbol.Symbol, entry TypeEntry) { e.tys.Enter(sym, entry) }
func (e *Env) LookType(sym symbol.Symbol) (TypeEntry, bool) { return e.tys.Look(sym) }

func (e *Env) SetEscapes(sym symbol.Symbol, escapes bool) { e.escapes.Enter(sym, escapes) }
func (e *Env) LookEscapes(sym symbol.Symbol) bool {
	v, ok := e.escapes.Look(sym)
	return ok && v
}

// AddTVar records the default/class tag of a freshly minted TypeVar.
func (e *Env) AddTVar(v TypeVar, kind VarType) { e.tvars[v] = kind }

// LookTVar returns the tag recorded for v, and whether one was recorded.
func (e *Env) LookTVar(v TypeVar) (VarType, bool) {
	k, ok := e.tvars[v]
	return k, ok
}

// Name resolves a symbol to its source spelling, for diagnostics.
func (e *Env) Name(sym symbol.Symbol) string { return e.Symbols.Name(sym) }
