package infer

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

// inferCall dispatches between monomorphic/implicit-instantiation calls
// and explicit `f<T,U>(args)` calls. Grounded on infer_call in
// original_source/underscore_semant/src/infer/function.rs.
func (inf *Infer) inferCall(e *ast.Call, env *types.Env, reporter *report.Reporter) (typedast.TypedExpression, bool) {
	entry, ok := env.LookVar(e.Callee)
	if !ok {
		reporter.Errorf("typecheck", e.Span, "Undefined function `%s`", env.Name(e.Callee))
		return typedast.TypedExpression{}, false
	}
	if !entry.IsFun {
		reporter.Errorf("typecheck", e.Span, "`%s` is not callable", env.Name(e.Callee))
		return typedast.TypedExpression{}, false
	}

	arrow, ok := entry.Fun.Body.(types.App)
	if !ok || arrow.Con.Kind != types.ConArrow {
		reporter.Errorf("typecheck", e.Span, "`%s` is not callable", env.Name(e.Callee))
		return typedast.TypedExpression{}, false
	}
	fnTypes := arrow.Args

	if e.TypeArgs == nil {
		return inf.inferImplicitCall(e, entry.Fun.Vars, fnTypes, env, reporter)
	}
	return inf.inferExplicitCall(e, entry.Fun.Vars, fnTypes, env, reporter)
}

// inferImplicitCall mirrors Call::Simple: when the callee is generic, the
// positional zip of type params against the first N arguments' inferred
// types seeds the substitution used to check every remaining argument and
// compute the return type.
func (inf *Infer) inferImplicitCall(e *ast.Call, tvars []types.TypeVar, fnTypes []types.Type, env *types.Env, reporter *report.Reporter) (typedast.TypedExpression, bool) {
	if len(fnTypes)-1 != len(e.Args) {
		reporter.Errorf("typecheck", e.Span, "Expected `%d` args found `%d` ", len(fnTypes)-1, len(e.Args))
		return typedast.TypedExpression{}, false
	}

	mappings := types.Subst{}
	argTys := make([]types.Type, 0, len(e.Args))
	argSpans := make([]ast.Span, 0, len(e.Args))
	callExprs := make([]typedast.TypedExpression, 0, len(e.Args))

	if len(tvars) == 0 {
		for _, arg := range e.Args {
			typed, ok := inf.inferExpr(arg, env, reporter)
			if !ok {
				return typedast.TypedExpression{}, false
			}
			argTys = append(argTys, typed.Ty)
			argSpans = append(argSpans, arg.Position())
			callExprs = append(callExprs, typed)
		}
	} else {
		for i := range e.Args {
			typed, ok := inf.inferExpr(e.Args[i], env, reporter)
			if !ok {
				return typedast.TypedExpression{}, false
			}
			if i < len(tvars) {
				mappings[tvars[i]] = typed.Ty
			}
			argTys = append(argTys, typed.Ty)
			argSpans = append(argSpans, e.Args[i].Position())
			callExprs = append(callExprs, typed)
		}
	}

	m := len(fnTypes)
	if len(argTys) < m {
		m = len(argTys)
	}
	for i := 0; i < m; i++ {
		lhs := types.Apply(mappings, fnTypes[i])
		rhs := types.Apply(mappings, argTys[i])
		if !types.Unify(env, reporter, argSpans[i], lhs, rhs) {
			return typedast.TypedExpression{}, false
		}
	}

	retTy := types.Apply(mappings, fnTypes[len(fnTypes)-1])
	return typedast.TypedExpression{
		Expr: &typedast.Call{Callee: e.Callee, Args: callExprs},
		Ty:   retTy,
	}, true
}

// inferExplicitCall mirrors Call::Instantiation: every provided type
// argument is translated and zipped against the declared type params to
// build the substitution before any call argument is inferred.
func (inf *Infer) inferExplicitCall(e *ast.Call, tvars []types.TypeVar, fnTypes []types.Type, env *types.Env, reporter *report.Reporter) (typedast.TypedExpression, bool) {
	if len(tvars) != len(e.TypeArgs) {
		reporter.Errorf("typecheck", e.Span, "Found `%d` type params expected `%d`", len(e.TypeArgs), len(tvars))
		return typedast.TypedExpression{}, false
	}

	mappings := make(types.Subst, len(tvars))
	for i, tv := range tvars {
		argTy, ok := inf.transTy(e.TypeArgs[i], env, reporter)
		if !ok {
			return typedast.TypedExpression{}, false
		}
		mappings[tv] = argTy
	}

	if len(fnTypes)-1 != len(e.Args) {
		reporter.Errorf("typecheck", e.Span, "Expected `%d` args found `%d` ", len(fnTypes)-1, len(e.Args))
		return typedast.TypedExpression{}, false
	}

	callExprs := make([]typedast.TypedExpression, 0, len(e.Args))
	for i, arg := range e.Args {
		typed, ok := inf.inferExpr(arg, env, reporter)
		if !ok {
			return typedast.TypedExpression{}, false
		}
		if !types.Unify(env, reporter, arg.Position(), types.Apply(mappings, typed.Ty), types.Apply(mappings, fnTypes[i])) {
			return typedast.TypedExpression{}, false
		}
		callExprs = append(callExprs, typed)
	}

	retTy := types.Apply(mappings, fnTypes[len(fnTypes)-1])
	return typedast.TypedExpression{
		Expr: &typedast.Call{Callee: e.Callee, Args: callExprs},
		Ty:   retTy,
	}, true
}
