package types

import "github.com/velalang/velac/internal/symbol"

// Subst maps TypeVars to their replacement Type.
type Subst map[TypeVar]Type

// Apply substitutes every occurrence of a TypeVar in t using sub, walking
// through App, Struct, Poly (capture-avoiding: Poly's own bound vars are
// removed from the map for its body), and Array. Idempotent when sub's
// range is disjoint from its domain.
func Apply(sub Subst, t Type) Type {
	if len(sub) == 0 {
		return t
	}
	switch t := t.(type) {
	case Var:
		if repl, ok := sub[t.ID]; ok {
			return repl
		}
		return t
	case App:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = Apply(sub, a)
		}
		con := t.Con
		if con.Kind == ConFun {
			con.Ret = Apply(withoutKeys(sub, con.Vars), con.Ret)
		}
		return App{Con: con, Args: args}
	case Struct:
		fields := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = Field{Name: f.Name, Ty: Apply(sub, f.Ty)}
		}
		return Struct{StructName: t.StructName, SymbolName: t.SymbolName, Fields: fields, Unique: t.Unique}
	case Poly:
		inner := withoutKeys(sub, t.Vars)
		return Poly{Vars: t.Vars, Body: Apply(inner, t.Body)}
	case Array:
		return Array{Elem: Apply(sub, t.Elem), Len: t.Len}
	default:
		return t
	}
}

func withoutKeys(sub Subst, keys []TypeVar) Subst {
	if len(keys) == 0 {
		return sub
	}
	out := make(Subst, len(sub))
	for k, v := range sub {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Ftv computes the free type variables of t, traversing Struct fields and
// App arguments structurally.
func Ftv(t Type) map[TypeVar]bool {
	out := make(map[TypeVar]bool)
	ftv(t, out)
	return out
}

func ftv(t Type, out map[TypeVar]bool) {
	switch t := t.(type) {
	case Var:
		out[t.ID] = true
	case App:
		for _, a := range t.Args {
			ftv(a, out)
		}
		if t.Con.Kind == ConFun {
			ftv(t.Con.Ret, out)
		}
	case Struct:
		for _, f := range t.Fields {
			ftv(f.Ty, out)
		}
	case Poly:
		inner := make(map[TypeVar]bool)
		ftv(t.Body, inner)
		for _, v := range t.Vars {
			delete(inner, v)
		}
		for v := range inner {
			out[v] = true
		}
	case Array:
		ftv(t.Elem, out)
	}
}

// FtvEnv computes the free type variables of every binding currently in
// scope, used by Generalize to avoid quantifying over variables that are
// still free in the surrounding environment.
func FtvEnv(env *Env) map[TypeVar]bool {
	out := make(map[TypeVar]bool)
	env.vars.Each(func(_ symbol.Symbol, entry VarEntry) {
		if entry.IsFun {
			inner := make(map[TypeVar]bool)
			ftv(entry.Fun.Body, inner)
			for _, v := range entry.Fun.Vars {
				delete(inner, v)
			}
			for v := range inner {
				out[v] = true
			}
		} else {
			ftv(entry.Ty, out)
		}
	})
	return out
}

// Instantiate replaces a scheme's bound vars with fresh TypeVars and
// substitutes through its body.
func Instantiate(alloc *Allocator, scheme Poly) Type {
	sub := make(Subst, len(scheme.Vars))
	for _, v := range scheme.Vars {
		sub[v] = Var{ID: alloc.FreshVar()}
	}
	return Apply(sub, scheme.Body)
}

// Generalize builds Poly(vars, ty) where vars = ftv(ty) \ ftv(env).
func Generalize(env *Env, ty Type) Poly {
	tyFtv := Ftv(ty)
	envFtv := FtvEnv(env)
	var vars []TypeVar
	for v := range tyFtv {
		if !envFtv[v] {
			vars = append(vars, v)
		}
	}
	return Poly{Vars: vars, Body: ty}
}
