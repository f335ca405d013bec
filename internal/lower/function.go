package lower

import (
	"github.com/velalang/velac/internal/ir"
	"github.com/velalang/velac/internal/symbol"
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

func lowerFunction(fn *typedast.Function, symbols *symbol.Table) *ir.Function {
	b := newBuilder(symbols)

	entry := b.newBlock()
	b.switchTo(entry)

	params := make([]ir.Register, len(fn.Params))
	for i, p := range fn.Params {
		reg := b.newReg()
		params[i] = reg
		b.vars[p.Name] = reg
	}

	b.lowerStmt(fn.Body)

	if b.blocks[b.current].End == nil {
		b.setEnd(ir.Return{Value: defaultReturnValue(fn.Returns)})
	}

	// Blocks opened after an unconditional terminator (break/continue/
	// return/branch) for lexically-following but unreachable statements
	// never get a real terminator of their own; mark them End so every
	// block satisfies the one-terminator invariant.
	for _, blk := range b.blocks {
		if blk.End == nil {
			blk.End = ir.End{}
		}
	}

	return &ir.Function{
		Name:       fn.Name,
		Params:     params,
		Blocks:     b.blocks,
		StartBlock: entry,
		Order:      b.order,
		Linkage:    fn.Linkage,
	}
}

// defaultReturnValue is emitted as the implicit fallthrough return for a
// function whose body falls off the end without an explicit return.
// Inference unifies the declared return type only against the type of the
// last return statement it walked (NilType when there is none), so a
// non-void function with no return at all is rejected, but one that
// returns on only some paths is not and also reaches this fallthrough.
func defaultReturnValue(ret types.Type) ir.Value {
	return ir.Mem{}
}
