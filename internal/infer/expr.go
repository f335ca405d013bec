package infer

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

// inferExpr infers one surface expression, matching the arms of
// infer_expr in original_source/underscore_semant/src/infer/function.rs.
func (inf *Infer) inferExpr(expr ast.Expression, env *types.Env, reporter *report.Reporter) (typedast.TypedExpression, bool) {
	switch e := expr.(type) {
	case *ast.ArrayLit:
		if len(e.Elems) == 0 {
			return typedast.TypedExpression{
				Expr: &typedast.ArrayLit{},
				Ty:   types.Array{Elem: types.NilType{}, Len: 0},
			}, true
		}
		items := make([]typedast.TypedExpression, len(e.Elems))
		first, ok := inf.inferExpr(e.Elems[0], env, reporter)
		if !ok {
			return typedast.TypedExpression{}, false
		}
		items[0] = first
		for i := 1; i < len(e.Elems); i++ {
			item, ok := inf.inferExpr(e.Elems[i], env, reporter)
			if !ok {
				return typedast.TypedExpression{}, false
			}
			if !types.Unify(env, reporter, e.Elems[i].Position(), first.Ty, item.Ty) {
				return typedast.TypedExpression{}, false
			}
			items[i] = item
		}
		return typedast.TypedExpression{
			Expr: &typedast.ArrayLit{Elems: items},
			Ty:   types.Array{Elem: first.Ty, Len: len(items)},
		}, true

	case *ast.Assign:
		v, vty, ok := inf.inferVar(e.Var, env, reporter)
		if !ok {
			return typedast.TypedExpression{}, false
		}
		value, ok := inf.inferExpr(e.Expr, env, reporter)
		if !ok {
			return typedast.TypedExpression{}, false
		}
		if !types.Unify(env, reporter, e.Span, vty, value.Ty) {
			return typedast.TypedExpression{}, false
		}
		return typedast.TypedExpression{
			Expr: &typedast.Assign{Var: v, Expr: value},
			Ty:   value.Ty,
		}, true

	case *ast.Binary:
		lhs, ok := inf.inferExpr(e.LHS, env, reporter)
		if !ok {
			return typedast.TypedExpression{}, false
		}
		rhs, ok := inf.inferExpr(e.RHS, env, reporter)
		if !ok {
			return typedast.TypedExpression{}, false
		}
		return inf.inferBinary(e, lhs, rhs, env, reporter)

	case *ast.Cast:
		from, ok := inf.inferExpr(e.Expr, env, reporter)
		if !ok {
			return typedast.TypedExpression{}, false
		}
		to, ok := inf.transTy(e.To, env, reporter)
		if !ok {
			return typedast.TypedExpression{}, false
		}
		if !castAllowed(from.Ty, to) {
			reporter.Errorf("typecheck", e.Span, "Cannot cast `%s` to type `%s`", from.Ty.String(), to.String())
			return typedast.TypedExpression{}, false
		}
		return typedast.TypedExpression{
			Expr: &typedast.Cast{Expr: from, Sign: castSign(to), Size: castSize(to)},
			Ty:   to,
		}, true

	case *ast.Call:
		return inf.inferCall(e, env, reporter)

	case *ast.Grouping:
		inner, ok := inf.inferExpr(e.Expr, env, reporter)
		if !ok {
			return typedast.TypedExpression{}, false
		}
		return typedast.TypedExpression{Expr: &typedast.Grouping{Expr: inner}, Ty: inner.Ty}, true

	case *ast.Literal:
		ty := inf.inferLiteral(e, env)
		return typedast.TypedExpression{Expr: &typedast.Literal{Value: e}, Ty: ty}, true

	case *ast.StructLit:
		return inf.inferStructLit(e, env, reporter)

	case *ast.Unary:
		return inf.inferUnary(e, env, reporter)

	case *ast.VarExpr:
		v, ty, ok := inf.inferVar(e.Var, env, reporter)
		if !ok {
			return typedast.TypedExpression{}, false
		}
		return typedast.TypedExpression{Expr: &typedast.VarExpr{Var: v}, Ty: ty}, true

	default:
		reporter.Errorf("typecheck", expr.Position(), "unrecognised expression")
		return typedast.TypedExpression{}, false
	}
}

func (inf *Infer) inferBinary(e *ast.Binary, lhs, rhs typedast.TypedExpression, env *types.Env, reporter *report.Reporter) (typedast.TypedExpression, bool) {
	switch e.Op {
	case ast.OpEq, ast.OpNeq:
		return typedast.TypedExpression{
			Expr: &typedast.Binary{LHS: lhs, Op: e.Op, RHS: rhs},
			Ty:   types.Bool(),
		}, true

	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte, ast.OpAnd, ast.OpOr:
		if !types.Unify(env, reporter, e.Span, lhs.Ty, rhs.Ty) {
			return typedast.TypedExpression{}, false
		}
		return typedast.TypedExpression{
			Expr: &typedast.Binary{LHS: lhs, Op: e.Op, RHS: rhs},
			Ty:   types.Bool(),
		}, true

	case ast.OpPlus, ast.OpSlash, ast.OpStar, ast.OpMinus:
		if !types.Unify(env, reporter, e.Span, lhs.Ty, rhs.Ty) {
			if !types.Unify(env, reporter, e.Span, lhs.Ty, types.String()) {
				reporter.Pop()
				return typedast.TypedExpression{}, false
			}
			reporter.Pop()
		}
		return typedast.TypedExpression{
			Expr: &typedast.Binary{LHS: lhs, Op: e.Op, RHS: rhs},
			Ty:   lhs.Ty,
		}, true

	default:
		reporter.Errorf("typecheck", e.Span, "unrecognised operator")
		return typedast.TypedExpression{}, false
	}
}

func (inf *Infer) inferUnary(e *ast.Unary, env *types.Env, reporter *report.Reporter) (typedast.TypedExpression, bool) {
	operand, ok := inf.inferExpr(e.Expr, env, reporter)
	if !ok {
		return typedast.TypedExpression{}, false
	}
	switch e.Op {
	case ast.UnaryBang:
		return typedast.TypedExpression{
			Expr: &typedast.Unary{Op: e.Op, Expr: operand},
			Ty:   types.Bool(),
		}, true

	case ast.UnaryMinus:
		if !types.IsIntApp(operand.Ty) {
			if v, isVar := operand.Ty.(types.Var); isVar {
				if kind, ok := env.LookTVar(v.ID); ok && kind == types.VarOther {
					reporter.Errorf("typecheck", e.Expr.Position(), "Cannot use `-` operator on type `%s`", operand.Ty.String())
					return typedast.TypedExpression{}, false
				}
			} else {
				reporter.Errorf("typecheck", e.Expr.Position(), "Cannot use `-` operator on type `%s`", operand.Ty.String())
				return typedast.TypedExpression{}, false
			}
		}
		return typedast.TypedExpression{
			Expr: &typedast.Unary{Op: e.Op, Expr: operand},
			Ty:   operand.Ty,
		}, true

	default:
		reporter.Errorf("typecheck", e.Span, "unrecognised unary operator")
		return typedast.TypedExpression{}, false
	}
}

// inferLiteral assigns char -> u8, bool -> Bool, str -> String, nil ->
// Void, and a suffixed number its declared Int(sign,size); an unsuffixed
// number gets a fresh Int-tagged type variable so it defaults to i32 if
// never unified with a concrete width.
func (inf *Infer) inferLiteral(lit *ast.Literal, env *types.Env) types.Type {
	switch lit.Kind {
	case ast.LitChar:
		return types.Int(types.Unsigned, types.Bit8)
	case ast.LitTrue, ast.LitFalse:
		return types.Bool()
	case ast.LitString:
		return types.String()
	case ast.LitNil:
		return types.Void()
	case ast.LitNumber:
		if lit.HasSuffix {
			return types.Int(transSign(lit.Sign), transSize(lit.Size))
		}
		tv := env.Alloc.FreshVar()
		env.AddTVar(tv, types.VarInt)
		return types.Var{ID: tv}
	default:
		return types.Void()
	}
}

func transSign(s ast.Sign) types.Sign {
	if s == ast.Unsigned {
		return types.Unsigned
	}
	return types.Signed
}

func transSize(s ast.Size) types.Size {
	switch s {
	case ast.Bit8:
		return types.Bit8
	case ast.Bit64:
		return types.Bit64
	default:
		return types.Bit32
	}
}

// castAllowed permits casts between any pair of primitive scalars (bool,
// char, or any int width), per spec.md's cast rule.
func castAllowed(from, to types.Type) bool {
	return isScalar(from) && isScalar(to)
}

func isScalar(t types.Type) bool {
	a, ok := t.(types.App)
	if !ok {
		return false
	}
	return a.Con.Kind == types.ConBool || a.Con.Kind == types.ConChar || a.Con.Kind == types.ConInt
}

func castSign(t types.Type) types.Sign {
	if a, ok := t.(types.App); ok && a.Con.Kind == types.ConInt {
		return a.Con.Sign
	}
	return types.Signed
}

func castSize(t types.Type) types.Size {
	if a, ok := t.(types.App); ok && a.Con.Kind == types.ConInt {
		return a.Con.Size
	}
	return types.Bit32
}
