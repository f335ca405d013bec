package mono

import (
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

// rewriteBody produces a copy of stmt with every call to a generic
// function retargeted at its mangled specialization, recomputing the same
// deterministic name collectBody registered. Mirrors gen_new_body in
// original_source/underscore_semant/src/monomorphize.rs.
func (m *Mono) rewriteBody(stmt typedast.Statement) typedast.Statement {
	switch s := stmt.(type) {
	case *typedast.Block:
		out := make([]typedast.Statement, len(s.Stmts))
		for i, child := range s.Stmts {
			out[i] = m.rewriteBody(child)
		}
		return &typedast.Block{Stmts: out}
	case *typedast.Break:
		return s
	case *typedast.Continue:
		return s
	case *typedast.IfStmt:
		var otherwise typedast.Statement
		if s.Otherwise != nil {
			otherwise = m.rewriteBody(s.Otherwise)
		}
		return &typedast.IfStmt{Cond: m.rewriteExpr(s.Cond), Then: m.rewriteBody(s.Then), Otherwise: otherwise}
	case *typedast.ExprStmt:
		return &typedast.ExprStmt{Expr: m.rewriteExpr(s.Expr)}
	case *typedast.ReturnStmt:
		return &typedast.ReturnStmt{Expr: m.rewriteExpr(s.Expr)}
	case *typedast.LetStmt:
		if s.Expr == nil {
			return s
		}
		rewritten := m.rewriteExpr(*s.Expr)
		return &typedast.LetStmt{Name: s.Name, Ty: s.Ty, Expr: &rewritten}
	case *typedast.WhileStmt:
		var incr *typedast.TypedExpression
		if s.Incr != nil {
			rewritten := m.rewriteExpr(*s.Incr)
			incr = &rewritten
		}
		return &typedast.WhileStmt{Cond: m.rewriteExpr(s.Cond), Body: m.rewriteBody(s.Body), Incr: incr}
	default:
		return stmt
	}
}

func (m *Mono) rewriteExpr(texpr typedast.TypedExpression) typedast.TypedExpression {
	switch e := texpr.Expr.(type) {
	case *typedast.ArrayLit:
		elems := make([]typedast.TypedExpression, len(e.Elems))
		for i, elem := range e.Elems {
			elems[i] = m.rewriteExpr(elem)
		}
		return typedast.TypedExpression{Expr: &typedast.ArrayLit{Elems: elems}, Ty: texpr.Ty}

	case *typedast.Assign:
		v := e.Var
		if sub, ok := e.Var.(*typedast.SubScriptVar); ok {
			v = &typedast.SubScriptVar{Owner: sub.Owner, Index: m.rewriteExpr(sub.Index), Ty: sub.Ty}
		}
		return typedast.TypedExpression{Expr: &typedast.Assign{Var: v, Expr: m.rewriteExpr(e.Expr)}, Ty: texpr.Ty}

	case *typedast.Binary:
		return typedast.TypedExpression{Expr: &typedast.Binary{LHS: m.rewriteExpr(e.LHS), Op: e.Op, RHS: m.rewriteExpr(e.RHS)}, Ty: texpr.Ty}

	case *typedast.Cast:
		return typedast.TypedExpression{Expr: &typedast.Cast{Expr: m.rewriteExpr(e.Expr), Sign: e.Sign, Size: e.Size}, Ty: texpr.Ty}

	case *typedast.Call:
		args := make([]typedast.TypedExpression, len(e.Args))
		argTys := make([]types.Type, len(e.Args))
		for i, a := range e.Args {
			args[i] = m.rewriteExpr(a)
			argTys[i] = a.Ty
		}
		callee := e.Callee
		if m.genFuncs[e.Callee] {
			mangled := m.mangle(m.symbols.Name(e.Callee), argTys)
			callee = m.symbols.Intern(mangled)
		}
		return typedast.TypedExpression{Expr: &typedast.Call{Callee: callee, Args: args}, Ty: texpr.Ty}

	case *typedast.Grouping:
		return typedast.TypedExpression{Expr: &typedast.Grouping{Expr: m.rewriteExpr(e.Expr)}, Ty: texpr.Ty}

	case *typedast.StructLit:
		fields := make([]typedast.FieldAssign, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = typedast.FieldAssign{Name: f.Name, Expr: m.rewriteExpr(f.Expr)}
		}
		return typedast.TypedExpression{Expr: &typedast.StructLit{Name: e.Name, Fields: fields}, Ty: texpr.Ty}

	case *typedast.Unary:
		return typedast.TypedExpression{Expr: &typedast.Unary{Op: e.Op, Expr: m.rewriteExpr(e.Expr)}, Ty: texpr.Ty}

	case *typedast.VarExpr:
		if sub, ok := e.Var.(*typedast.SubScriptVar); ok {
			idx := m.rewriteExpr(sub.Index)
			return typedast.TypedExpression{
				Expr: &typedast.VarExpr{Var: &typedast.SubScriptVar{Owner: sub.Owner, Index: idx, Ty: sub.Ty}},
				Ty:   texpr.Ty,
			}
		}
		return texpr

	default:
		return texpr
	}
}
