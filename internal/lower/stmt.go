package lower

import (
	"github.com/velalang/velac/internal/ir"
	"github.com/velalang/velac/internal/typedast"
)

// lowerStmt lowers stmt into the builder's current block (and, for
// control-flow statements, the new blocks it allocates). Statement::For is
// absent here: inference already desugars it into a Block wrapping an
// optional init LetStmt and a WhileStmt carrying the increment as its Incr
// field, per infer.inferFor. Break and Continue assume loopStack is
// non-empty, which inference guarantees by rejecting either outside a
// loop before lowering ever runs.
func (b *builder) lowerStmt(stmt typedast.Statement) {
	switch s := stmt.(type) {
	case *typedast.Block:
		for _, child := range s.Stmts {
			b.lowerStmt(child)
		}

	case *typedast.Break:
		target := b.currentLoop().breakTarget
		b.setEnd(ir.Jump{Target: target})
		b.startDeadBlock()

	case *typedast.Continue:
		target := b.currentLoop().continueTarget
		b.setEnd(ir.Jump{Target: target})
		b.startDeadBlock()

	case *typedast.ExprStmt:
		b.genExpr(s.Expr)

	case *typedast.ReturnStmt:
		val := b.genExpr(s.Expr)
		b.setEnd(ir.Return{Value: val})
		b.startDeadBlock()

	case *typedast.LetStmt:
		reg := b.newReg()
		if s.Expr != nil {
			val := b.genExpr(*s.Expr)
			b.emit(ir.Store{Dst: ir.Reg{Register: reg}, Src: val})
		}
		b.vars[s.Name] = reg

	case *typedast.IfStmt:
		thenBlk := b.newBlock()
		afterBlk := b.newBlock()
		elseBlk := afterBlk
		if s.Otherwise != nil {
			elseBlk = b.newBlock()
		}
		b.genCond(s.Cond, thenBlk, elseBlk)

		b.switchTo(thenBlk)
		b.lowerStmt(s.Then)
		b.fallthroughTo(afterBlk)

		if s.Otherwise != nil {
			b.switchTo(elseBlk)
			b.lowerStmt(s.Otherwise)
			b.fallthroughTo(afterBlk)
		}

		b.switchTo(afterBlk)

	case *typedast.WhileStmt:
		condBlk := b.newBlock()
		bodyBlk := b.newBlock()
		afterBlk := b.newBlock()

		// latchBlk is where both a normal fall-through of the body and a
		// `continue` land; for a desugared for-loop it runs the increment
		// before jumping back to the condition, so `continue` can't skip
		// it. For a plain while (no Incr) it is just a relay to condBlk.
		latchBlk := condBlk
		if s.Incr != nil {
			latchBlk = b.newBlock()
		}

		b.fallthroughTo(condBlk)
		b.switchTo(condBlk)
		b.genCond(s.Cond, bodyBlk, afterBlk)

		b.switchTo(bodyBlk)
		b.pushLoop(loopLabels{continueTarget: latchBlk, breakTarget: afterBlk})
		b.lowerStmt(s.Body)
		b.popLoop()
		b.fallthroughTo(latchBlk)

		if s.Incr != nil {
			b.switchTo(latchBlk)
			b.genExpr(*s.Incr)
			b.fallthroughTo(condBlk)
		}

		b.switchTo(afterBlk)
	}
}
