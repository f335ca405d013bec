package lower

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/ir"
	"github.com/velalang/velac/internal/typedast"
)

// genCond lowers texpr as a condition, branching directly to ltrue or
// lfalse rather than materializing a boolean value first. && and ||
// recurse into genuine cross-block Branch control flow instead of
// evaluating both operands eagerly.
//
// The original gen_ir.rs lowered `!=` by swapping the true/false targets
// and recursing on the equivalent `==` comparison, which for `!=` itself
// recurses back into the same swap and never terminates. Every relational
// operator here, including `!=`, is lowered directly against a BinOp
// comparison and a single Branch, so no such recursion exists.
func (b *builder) genCond(texpr typedast.TypedExpression, ltrue, lfalse ir.BlockID) {
	switch e := texpr.Expr.(type) {
	case *typedast.Grouping:
		b.genCond(e.Expr, ltrue, lfalse)

	case *typedast.Unary:
		if e.Op == ast.UnaryBang {
			b.genCond(e.Expr, lfalse, ltrue)
			return
		}
		b.branchOnValue(texpr, ltrue, lfalse)

	case *typedast.Binary:
		switch e.Op {
		case ast.OpAnd:
			mid := b.newBlock()
			b.genCond(e.LHS, mid, lfalse)
			b.switchTo(mid)
			b.genCond(e.RHS, ltrue, lfalse)
		case ast.OpOr:
			mid := b.newBlock()
			b.genCond(e.LHS, ltrue, mid)
			b.switchTo(mid)
			b.genCond(e.RHS, ltrue, lfalse)
		case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
			lhs := b.genExpr(e.LHS)
			rhs := b.genExpr(e.RHS)
			dst := b.newReg()
			b.emit(ir.BinOp{Dst: dst, LHS: lhs, Op: mapCompareOp(e.Op), RHS: rhs})
			b.setEnd(ir.Branch{Cond: ir.Reg{Register: dst}, TrueBlock: ltrue, FalseBlock: lfalse})
			b.startDeadBlock()
		default:
			b.branchOnValue(texpr, ltrue, lfalse)
		}

	default:
		b.branchOnValue(texpr, ltrue, lfalse)
	}
}

// branchOnValue evaluates texpr as an ordinary value and branches on its
// truthiness, for conditions that aren't themselves a comparison or
// logical operator (a bare bool variable, a call returning bool, ...).
func (b *builder) branchOnValue(texpr typedast.TypedExpression, ltrue, lfalse ir.BlockID) {
	val := b.genExpr(texpr)
	b.setEnd(ir.Branch{Cond: val, TrueBlock: ltrue, FalseBlock: lfalse})
	b.startDeadBlock()
}
