package infer

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

// inferVar resolves a surface ast.Var against the environment, producing
// its typedast.Var form and resolved type. Grounded on infer_var in
// original_source/underscore_semant/src/infer/function.rs.
func (inf *Infer) inferVar(v ast.Var, env *types.Env, reporter *report.Reporter) (typedast.Var, types.Type, bool) {
	switch n := v.(type) {
	case *ast.SimpleVar:
		entry, ok := env.LookVar(n.Name)
		if !ok {
			reporter.Errorf("typecheck", n.Span, "Undefined variable `%s`", env.Name(n.Name))
			return nil, nil, false
		}
		if entry.IsFun {
			reporter.Errorf("typecheck", n.Span, "`%s` is not a variable", env.Name(n.Name))
			return nil, nil, false
		}
		return &typedast.SimpleVar{Name: n.Name, Ty: entry.Ty}, entry.Ty, true

	case *ast.FieldVar:
		owner, ownerTy, ok := inf.inferVar(n.Owner, env, reporter)
		if !ok {
			return nil, nil, false
		}
		st, isStruct := ownerTy.(types.Struct)
		if !isStruct {
			reporter.Errorf("typecheck", n.Span, "Type `%s` does not have a field named `%s` ", ownerTy.String(), env.Name(n.Field))
			return nil, nil, false
		}
		for _, f := range st.Fields {
			if f.Name == n.Field {
				return &typedast.FieldVar{Owner: owner, Field: f.Name, Ty: f.Ty}, f.Ty, true
			}
		}
		reporter.Errorf("typecheck", n.Span, "struct `%s` doesn't have a field named `%s`", st.SymbolName, env.Name(n.Field))
		return nil, nil, false

	case *ast.SubScriptVar:
		owner, ownerTy, ok := inf.inferVar(n.Owner, env, reporter)
		if !ok {
			return nil, nil, false
		}
		arr, isArr := ownerTy.(types.Array)
		isStr := !isArr && isStringTy(ownerTy)
		if !isArr && !isStr {
			reporter.Errorf("typecheck", n.Span, " Cannot index type `%s` ", ownerTy.String())
			return nil, nil, false
		}
		idx, ok := inf.inferExpr(n.Index, env, reporter)
		if !ok {
			return nil, nil, false
		}
		if !types.IsIntApp(idx.Ty) {
			if v, isVar := idx.Ty.(types.Var); !isVar || !lookIsInt(env, v.ID) {
				reporter.Errorf("typecheck", n.Span, "Index expr cannot be of type `%s`", idx.Ty.String())
				return nil, nil, false
			}
		}
		if isStr {
			elem := types.Int(types.Unsigned, types.Bit8)
			return &typedast.SubScriptVar{Owner: owner, Index: idx, Ty: elem}, elem, true
		}
		return &typedast.SubScriptVar{Owner: owner, Index: idx, Ty: arr.Elem}, arr.Elem, true

	default:
		reporter.Errorf("typecheck", v.Position(), "unrecognised variable form")
		return nil, nil, false
	}
}

func isStringTy(t types.Type) bool {
	a, ok := t.(types.App)
	return ok && a.Con.Kind == types.ConString
}
