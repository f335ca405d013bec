package infer

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

// inferStatement infers one surface statement, matching the arms of
// infer_statement in original_source/underscore_semant/src/infer/function.rs.
func (inf *Infer) inferStatement(stmt ast.Statement, env *types.Env, reporter *report.Reporter) (typedast.Statement, bool) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		if len(s.Stmts) == 0 {
			return &typedast.Block{}, true
		}
		env.BeginScope()
		out := make([]typedast.Statement, 0, len(s.Stmts))
		ok := true
		for _, child := range s.Stmts {
			typed, good := inf.inferStatement(child, env, reporter)
			if !good {
				ok = false
				continue
			}
			out = append(out, typed)
		}
		env.EndScope()
		if !ok {
			return nil, false
		}
		return &typedast.Block{Stmts: out}, true

	case *ast.BreakStmt:
		if inf.loopDepth == 0 {
			reporter.Errorf("typecheck", s.Span, "break outside a loop")
			return nil, false
		}
		return &typedast.Break{}, true

	case *ast.ContinueStmt:
		if inf.loopDepth == 0 {
			reporter.Errorf("typecheck", s.Span, "continue outside a loop")
			return nil, false
		}
		return &typedast.Continue{}, true

	case *ast.ExprStmt:
		typed, ok := inf.inferExpr(s.Expr, env, reporter)
		if !ok {
			return nil, false
		}
		return &typedast.ExprStmt{Expr: typed}, true

	case *ast.ReturnStmt:
		if s.Expr == nil {
			inf.returnTy = types.NilType{}
			return &typedast.ReturnStmt{Expr: typedast.TypedExpression{
				Expr: &typedast.Literal{Value: &ast.Literal{Kind: ast.LitNil}},
				Ty:   types.NilType{},
			}}, true
		}
		typed, ok := inf.inferExpr(s.Expr, env, reporter)
		if !ok {
			return nil, false
		}
		inf.returnTy = typed.Ty
		return &typedast.ReturnStmt{Expr: typed}, true

	case *ast.IfStmt:
		cond, ok := inf.inferExpr(s.Cond, env, reporter)
		if !ok {
			return nil, false
		}
		if !types.Unify(env, reporter, s.Cond.Position(), types.Bool(), cond.Ty) {
			return nil, false
		}
		then, ok := inf.inferStatement(s.Then, env, reporter)
		if !ok {
			return nil, false
		}
		var otherwise typedast.Statement
		if s.Otherwise != nil {
			otherwise, ok = inf.inferStatement(s.Otherwise, env, reporter)
			if !ok {
				return nil, false
			}
		}
		return &typedast.IfStmt{Cond: cond, Then: then, Otherwise: otherwise}, true

	case *ast.WhileStmt:
		cond, ok := inf.inferExpr(s.Cond, env, reporter)
		if !ok {
			return nil, false
		}
		if !types.Unify(env, reporter, s.Cond.Position(), types.Bool(), cond.Ty) {
			return nil, false
		}
		inf.loopDepth++
		body, ok := inf.inferStatement(s.Body, env, reporter)
		inf.loopDepth--
		if !ok {
			return nil, false
		}
		return &typedast.WhileStmt{Cond: cond, Body: body}, true

	case *ast.ForStmt:
		return inf.inferFor(s, env, reporter)

	case *ast.LetStmt:
		return inf.inferLet(s, env, reporter)

	default:
		reporter.Errorf("typecheck", stmt.Position(), "unrecognised statement")
		return nil, false
	}
}

// inferFor desugars `for (init; cond; incr) body` to `{ init; while cond
// body }` with incr attached to the WhileStmt as its increment clause, run
// after the body on every iteration including a `continue`, rather than
// appended as a trailing statement inside the body itself (a `continue`
// must still reach the increment). An omitted condition defaults to `true`,
// so a `for` with all three header clauses omitted becomes a `while true`
// loop over its body.
func (inf *Infer) inferFor(s *ast.ForStmt, env *types.Env, reporter *report.Reporter) (typedast.Statement, bool) {
	env.BeginScope()
	defer env.EndScope()

	var block []typedast.Statement
	if s.Init != nil {
		init, ok := inf.inferStatement(s.Init, env, reporter)
		if !ok {
			return nil, false
		}
		block = append(block, init)
	}

	inf.loopDepth++
	bodyTyped, ok := inf.inferStatement(s.Body, env, reporter)
	inf.loopDepth--
	if !ok {
		return nil, false
	}

	var incr *typedast.TypedExpression
	if s.Incr != nil {
		incrTyped, ok := inf.inferExpr(s.Incr, env, reporter)
		if !ok {
			return nil, false
		}
		if !types.IsIntApp(incrTyped.Ty) {
			if v, isVar := incrTyped.Ty.(types.Var); !isVar || !lookIsInt(env, v.ID) {
				reporter.Errorf("typecheck", s.Incr.Position(), "Increment cannot be of type `%s`", incrTyped.Ty.String())
				return nil, false
			}
		}
		incr = &incrTyped
	}

	cond := typedast.TypedExpression{
		Expr: &typedast.Literal{Value: &ast.Literal{Kind: ast.LitTrue}},
		Ty:   types.Bool(),
	}
	if s.Cond != nil {
		c, ok := inf.inferExpr(s.Cond, env, reporter)
		if !ok {
			return nil, false
		}
		if !types.Unify(env, reporter, s.Cond.Position(), types.Bool(), c.Ty) {
			return nil, false
		}
		cond = c
	}

	block = append(block, &typedast.WhileStmt{Cond: cond, Body: bodyTyped, Incr: incr})
	return &typedast.Block{Stmts: block}, true
}

func lookIsInt(env *types.Env, v types.TypeVar) bool {
	kind, ok := env.LookTVar(v)
	return ok && kind == types.VarInt
}

// inferLet combines annotation and initializer, matching spec.md's rule:
// unify annotation with initializer type if both present; bind the
// variable in the innermost scope either way.
func (inf *Infer) inferLet(s *ast.LetStmt, env *types.Env, reporter *report.Reporter) (typedast.Statement, bool) {
	if s.Init != nil {
		initTyped, ok := inf.inferExpr(s.Init, env, reporter)
		if !ok {
			return nil, false
		}
		ty := initTyped.Ty
		if s.Ty != nil {
			declared, ok := inf.transTy(s.Ty, env, reporter)
			if !ok {
				return nil, false
			}
			if !types.Unify(env, reporter, s.Ty.Position(), initTyped.Ty, declared) {
				return nil, false
			}
			ty = declared
		}
		env.AddVar(s.Name, types.VarOf(ty))
		return &typedast.LetStmt{Name: s.Name, Ty: ty, Expr: &initTyped}, true
	}

	ty := types.Type(types.NilType{})
	if s.Ty != nil {
		declared, ok := inf.transTy(s.Ty, env, reporter)
		if !ok {
			return nil, false
		}
		ty = declared
	}
	env.AddVar(s.Name, types.VarOf(ty))
	return &typedast.LetStmt{Name: s.Name, Ty: ty}, true
}
