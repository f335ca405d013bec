// Package infer implements Hindley-Milner-style type inference over the
// surface AST, producing a fully typed tree. Grounded on
// original_source/underscore_semant/src/infer/function.rs, generalized
// from underscore's single concrete Type to this module's
// type-constructor-application representation in internal/types.
package infer

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

// Infer carries the mutable "current return type" the Rust source keeps as
// self.body: infer_statement's Return arm records the last-seen return
// expression's type here, and infer_function unifies it against the
// declared signature on exit.
type Infer struct {
	returnTy types.Type
	// loopDepth counts the while/for loops the current statement is
	// lexically nested inside, so Break/Continue can be rejected outside
	// a loop instead of reaching lowering, where there is no enclosing
	// block to target.
	loopDepth int
}

// Run type-checks prog against env, returning the typed tree and whether
// inference succeeded without diagnostics. Structs and aliases are
// registered first so functions may reference types defined anywhere in
// the unit; function signatures are registered next so mutually
// recursive and forward-referencing calls resolve; bodies are inferred
// last.
func Run(prog *ast.Program, env *types.Env, reporter *report.Reporter) (*typedast.Program, bool) {
	inf := &Infer{}

	structs := make([]*types.Struct, 0, len(prog.Structs))
	ok := true

	for _, alias := range prog.TypeAliases {
		ty, good := inf.transTy(alias.Ty, env, reporter)
		if !good {
			ok = false
			continue
		}
		env.AddType(alias.Name, types.TyOf(ty))
	}

	for _, decl := range prog.Structs {
		env.BeginScope()
		tvars := make([]types.TypeVar, len(decl.TypeParams))
		for i, p := range decl.TypeParams {
			tv := env.Alloc.FreshVar()
			env.AddTVar(tv, types.VarOther)
			env.AddType(p, types.TyOf(types.Var{ID: tv}))
			tvars[i] = tv
		}

		fields := make([]types.Field, len(decl.Fields))
		good := true
		for i, f := range decl.Fields {
			fty, fok := inf.transTy(f.Ty, env, reporter)
			if !fok {
				good = false
				continue
			}
			fields[i] = types.Field{Name: f.Name, Ty: fty}
		}
		env.EndScope()
		if !good {
			ok = false
			continue
		}

		st := types.Struct{
			StructName: decl.Name,
			SymbolName: env.Name(decl.Name),
			Fields:     fields,
			Unique:     env.Alloc.FreshUnique(),
		}
		env.AddType(decl.Name, types.TyOf(types.Poly{Vars: tvars, Body: st}))
		structs = append(structs, &st)
	}

	for _, fn := range prog.Functions {
		scheme, good := inf.functionScheme(fn, env, reporter)
		if !good {
			ok = false
			continue
		}
		env.AddVar(fn.Name, types.FunOf(scheme))
	}

	out := &typedast.Program{Structs: structs}
	for _, fn := range prog.Functions {
		typedFn, good := inf.inferFunction(fn, env, reporter)
		if !good {
			ok = false
			continue
		}
		out.Functions = append(out.Functions, typedFn)
	}

	return out, ok && !reporter.HasErrors()
}

// functionScheme builds the Poly(vars, Arrow(params..., ret)) scheme for a
// function declaration without descending into its body, so forward and
// mutually-recursive references resolve during body inference.
func (inf *Infer) functionScheme(fn *ast.Function, env *types.Env, reporter *report.Reporter) (types.Poly, bool) {
	env.BeginScope()
	defer env.EndScope()

	tvars := make([]types.TypeVar, len(fn.TypeParams))
	for i, p := range fn.TypeParams {
		tv := env.Alloc.FreshVar()
		env.AddTVar(tv, types.VarOther)
		env.AddType(p, types.TyOf(types.Var{ID: tv}))
		tvars[i] = tv
	}

	returns := types.Type(types.NilType{})
	if fn.Returns != nil {
		r, ok := inf.transTy(fn.Returns, env, reporter)
		if !ok {
			return types.Poly{}, false
		}
		returns = r
	}

	paramTys := make([]types.Type, 0, len(fn.Params)+1)
	for _, p := range fn.Params {
		pty, ok := inf.transTy(p.Ty, env, reporter)
		if !ok {
			return types.Poly{}, false
		}
		paramTys = append(paramTys, pty)
	}
	paramTys = append(paramTys, returns)

	body := types.App{Con: types.TyCon{Kind: types.ConArrow}, Args: paramTys}
	return types.Poly{Vars: tvars, Body: body}, true
}
