package infer

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/types"
)

// transTy maps surface type syntax to an internal/types.Type. Primitive
// keywords resolve directly; named types resolve from the type
// environment; applied generic names instantiate the stored Poly scheme
// and substitute its bound vars with the translated arguments, per
// spec.md's trans_ty description.
func (inf *Infer) transTy(ty ast.Ty, env *types.Env, reporter *report.Reporter) (types.Type, bool) {
	switch t := ty.(type) {
	case *ast.NameTy:
		if prim, ok := primitiveTy(env.Name(t.Name)); ok {
			return prim, true
		}
		entry, ok := env.LookType(t.Name)
		if !ok {
			reporter.Errorf("typecheck", t.Span, "Undefined type `%s`", env.Name(t.Name))
			return nil, false
		}
		if entry.IsCon {
			reporter.Errorf("typecheck", t.Span, "`%s` is not a type", env.Name(t.Name))
			return nil, false
		}
		if poly, ok := entry.Ty.(types.Poly); ok {
			if len(poly.Vars) != 0 {
				reporter.Errorf("typecheck", t.Span, "`%s` expects %d type arguments", env.Name(t.Name), len(poly.Vars))
				return nil, false
			}
			return poly.Body, true
		}
		return entry.Ty, true

	case *ast.AppliedTy:
		entry, ok := env.LookType(t.Name)
		if !ok {
			reporter.Errorf("typecheck", t.Span, "Undefined type `%s`", env.Name(t.Name))
			return nil, false
		}
		poly, isPoly := entry.Ty.(types.Poly)
		if !isPoly {
			reporter.Errorf("typecheck", t.Span, "`%s` is not generic", env.Name(t.Name))
			return nil, false
		}
		if len(poly.Vars) != len(t.Args) {
			reporter.Errorf("typecheck", t.Span, "Found `%d` type params expected `%d`", len(t.Args), len(poly.Vars))
			return nil, false
		}
		sub := make(types.Subst, len(poly.Vars))
		for i, v := range poly.Vars {
			argTy, ok := inf.transTy(t.Args[i], env, reporter)
			if !ok {
				return nil, false
			}
			sub[v] = argTy
		}
		return types.Apply(sub, poly.Body), true

	case *ast.ArrayTy:
		elem, ok := inf.transTy(t.Elem, env, reporter)
		if !ok {
			return nil, false
		}
		return types.Array{Elem: elem, Len: t.Len}, true

	default:
		reporter.Errorf("typecheck", ty.Position(), "unrecognised type syntax")
		return nil, false
	}
}

// primitiveTy recognises the built-in keyword type names.
func primitiveTy(name string) (types.Type, bool) {
	switch name {
	case "bool":
		return types.Bool(), true
	case "str":
		return types.String(), true
	case "char":
		return types.Char(), true
	case "void", "nil":
		return types.Void(), true
	case "i8":
		return types.Int(types.Signed, types.Bit8), true
	case "u8":
		return types.Int(types.Unsigned, types.Bit8), true
	case "i32":
		return types.Int(types.Signed, types.Bit32), true
	case "u32":
		return types.Int(types.Unsigned, types.Bit32), true
	case "i64":
		return types.Int(types.Signed, types.Bit64), true
	case "u64":
		return types.Int(types.Unsigned, types.Bit64), true
	default:
		return nil, false
	}
}
