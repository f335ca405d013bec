package mono

import (
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

// collectBody walks a statement tree looking for calls to generic
// functions, registering the specialization each call site demands.
// Mirrors mono_body/mono_expr in
// original_source/underscore_semant/src/monomorphize.rs.
func (m *Mono) collectBody(stmt typedast.Statement) {
	switch s := stmt.(type) {
	case *typedast.Block:
		for _, child := range s.Stmts {
			m.collectBody(child)
		}
	case *typedast.Break, *typedast.Continue:
	case *typedast.IfStmt:
		m.collectExpr(s.Cond)
		m.collectBody(s.Then)
		if s.Otherwise != nil {
			m.collectBody(s.Otherwise)
		}
	case *typedast.ExprStmt:
		m.collectExpr(s.Expr)
	case *typedast.ReturnStmt:
		m.collectExpr(s.Expr)
	case *typedast.LetStmt:
		if s.Expr != nil {
			m.collectExpr(*s.Expr)
		}
	case *typedast.WhileStmt:
		m.collectExpr(s.Cond)
		m.collectBody(s.Body)
		if s.Incr != nil {
			m.collectExpr(*s.Incr)
		}
	}
}

func (m *Mono) collectExpr(texpr typedast.TypedExpression) {
	switch e := texpr.Expr.(type) {
	case *typedast.ArrayLit:
		for _, elem := range e.Elems {
			m.collectExpr(elem)
		}
	case *typedast.Assign:
		if sub, ok := e.Var.(*typedast.SubScriptVar); ok {
			m.collectExpr(sub.Index)
		}
		m.collectExpr(e.Expr)
	case *typedast.Binary:
		m.collectExpr(e.LHS)
		m.collectExpr(e.RHS)
	case *typedast.Cast:
		m.collectExpr(e.Expr)
	case *typedast.Call:
		if m.genFuncs[e.Callee] {
			argTys := make([]types.Type, len(e.Args))
			for i, a := range e.Args {
				argTys[i] = a.Ty
				m.collectExpr(a)
			}
			m.register(e.Callee, argTys, texpr.Ty)
		} else {
			for _, a := range e.Args {
				m.collectExpr(a)
			}
		}
	case *typedast.Grouping:
		m.collectExpr(e.Expr)
	case *typedast.Literal:
	case *typedast.StructLit:
		for _, f := range e.Fields {
			m.collectExpr(f.Expr)
		}
	case *typedast.Unary:
		m.collectExpr(e.Expr)
	case *typedast.VarExpr:
		if sub, ok := e.Var.(*typedast.SubScriptVar); ok {
			m.collectExpr(sub.Index)
		}
	}
}
