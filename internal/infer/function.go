package infer

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

// inferFunction re-opens a scope for fn's type parameters and formals,
// infers its body, and unifies the declared return type against the type
// recorded by the last statement.Return it walked over. Grounded on
// infer_function in original_source/underscore_semant/src/infer/function.rs.
func (inf *Infer) inferFunction(fn *ast.Function, env *types.Env, reporter *report.Reporter) (*typedast.Function, bool) {
	env.BeginScope()

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
			env.EndScope()
			return nil, false
		}
		returns = r
	}

	params := make([]typedast.FunctionParam, len(fn.Params))
	ok := true
	for i, p := range fn.Params {
		pty, good := inf.transTy(p.Ty, env, reporter)
		if !good {
			ok = false
			continue
		}
		params[i] = typedast.FunctionParam{Name: p.Name, Ty: pty}
		env.AddVar(p.Name, types.VarOf(pty))
	}
	if !ok {
		env.EndScope()
		return nil, false
	}

	inf.returnTy = types.NilType{}
	body, good := inf.inferStatement(fn.Body, env, reporter)
	if !good {
		env.EndScope()
		return nil, false
	}

	if !types.Unify(env, reporter, fn.Position(), returns, inf.returnTy) {
		env.EndScope()
		return nil, false
	}
	inf.returnTy = types.NilType{}

	env.EndScope()

	return &typedast.Function{
		Span:       fn.Span,
		Name:       fn.Name,
		Generic:    len(fn.TypeParams) != 0,
		TypeParams: tvars,
		Params:     params,
		Returns:    returns,
		Body:       body,
		Linkage:    fn.Linkage,
	}, true
}
