package infer

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

// inferStructLit infers a struct literal, in either its simple form
// (`Name{...}`, type params inferred positionally from the field
// expressions) or its explicit-instantiation form (`Name<T,U>{...}`, type
// params taken from the written type arguments). Grounded on
// infer_struct_lit in original_source/underscore_semant/src/infer/function.rs.
func (inf *Infer) inferStructLit(lit *ast.StructLit, env *types.Env, reporter *report.Reporter) (typedast.TypedExpression, bool) {
	entry, ok := env.LookType(lit.Name)
	if !ok {
		reporter.Errorf("typecheck", lit.Span, "Undefined struct `%s` ", env.Name(lit.Name))
		return typedast.TypedExpression{}, false
	}
	poly, isPoly := entry.Ty.(types.Poly)
	if !isPoly {
		reporter.Errorf("typecheck", lit.Span, "`%s`is not a struct", env.Name(lit.Name))
		return typedast.TypedExpression{}, false
	}
	defStruct, isStruct := poly.Body.(types.Struct)
	if !isStruct {
		reporter.Errorf("typecheck", lit.Span, "`%s`is not a struct", env.Name(lit.Name))
		return typedast.TypedExpression{}, false
	}

	mappings := types.Subst{}
	if lit.TypeArgs == nil {
		n := len(poly.Vars)
		if len(lit.Fields) < n {
			n = len(lit.Fields)
		}
		for i := 0; i < n; i++ {
			fieldTy, ok := inf.inferExpr(lit.Fields[i].Expr, env, reporter)
			if !ok {
				return typedast.TypedExpression{}, false
			}
			mappings[poly.Vars[i]] = fieldTy.Ty
		}
	} else {
		if len(poly.Vars) != len(lit.TypeArgs) {
			reporter.Errorf("typecheck", lit.Span, "Found `%d` type params expected `%d`", len(lit.TypeArgs), len(poly.Vars))
			return typedast.TypedExpression{}, false
		}
		for i, tv := range poly.Vars {
			argTy, ok := inf.transTy(lit.TypeArgs[i], env, reporter)
			if !ok {
				return typedast.TypedExpression{}, false
			}
			mappings[tv] = argTy
		}
	}

	instanceFields := make([]typedast.FieldAssign, 0, len(lit.Fields))
	resultFields := make([]types.Field, 0, len(lit.Fields))
	found := false

	n := len(defStruct.Fields)
	if len(lit.Fields) < n {
		n = len(lit.Fields)
	}
	for i := 0; i < n; i++ {
		def := defStruct.Fields[i]
		given := lit.Fields[i]
		if def.Name != given.Name {
			found = false
			reporter.Errorf("typecheck", given.Span, "`%s` is not a member of `%s` ", env.Name(given.Name), env.Name(lit.Name))
			continue
		}
		found = true

		fieldTy, ok := inf.inferExpr(given.Expr, env, reporter)
		if !ok {
			return typedast.TypedExpression{}, false
		}
		if !types.Unify(env, reporter, given.Span, types.Apply(mappings, def.Ty), types.Apply(mappings, fieldTy.Ty)) {
			return typedast.TypedExpression{}, false
		}

		instanceFields = append(instanceFields, typedast.FieldAssign{Name: given.Name, Expr: fieldTy})
		resultFields = append(resultFields, types.Field{Name: given.Name, Ty: fieldTy.Ty})
	}

	if len(defStruct.Fields) > len(lit.Fields) {
		reporter.Errorf("typecheck", lit.Span, "struct `%s` is missing fields", env.Name(lit.Name))
		return typedast.TypedExpression{}, false
	} else if len(defStruct.Fields) < len(lit.Fields) {
		reporter.Errorf("typecheck", lit.Span, "struct `%s` has too many fields", env.Name(lit.Name))
		return typedast.TypedExpression{}, false
	} else if !found {
		return typedast.TypedExpression{}, false
	}

	return typedast.TypedExpression{
		Expr: &typedast.StructLit{Name: lit.Name, Fields: instanceFields},
		Ty:   types.Struct{StructName: defStruct.StructName, SymbolName: defStruct.SymbolName, Fields: resultFields, Unique: defStruct.Unique},
	}, true
}
