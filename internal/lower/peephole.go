package lower

import (
	"math/bits"

	"github.com/velalang/velac/internal/ir"
)

// Optimize runs the peephole passes spec.md calls for over every function
// in prog: strength-reducing power-of-two multiplies to shifts and
// additive/subtractive identities to plain copies, then dropping blocks
// the control-flow graph can no longer reach (dead code left behind by a
// statically-known branch, or blocks startDeadBlock opened after an
// unconditional terminator that nothing ever jumps into).
func Optimize(prog *ir.Program) *ir.Program {
	for _, fn := range prog.Functions {
		strengthReduce(fn)
		eliminateDeadBlocks(fn)
	}
	return prog
}

func strengthReduce(fn *ir.Function) {
	for _, blk := range fn.Blocks {
		for i, instr := range blk.Instructions {
			bin, ok := instr.(ir.BinOp)
			if !ok {
				continue
			}
			if reduced, ok := reduceBinOp(bin); ok {
				blk.Instructions[i] = reduced
			}
		}
	}
}

func reduceBinOp(bin ir.BinOp) (ir.Instruction, bool) {
	switch bin.Op {
	case ir.Mul:
		if c, ok := bin.RHS.(ir.Const); ok && c.Value > 0 && isPowerOfTwo(c.Value) {
			shift := bits.TrailingZeros64(c.Value)
			return ir.BinOp{Dst: bin.Dst, LHS: bin.LHS, Op: ir.Shl, RHS: ir.Const{Value: uint64(shift), Sign: c.Sign, Size: c.Size}}, true
		}
		if c, ok := bin.LHS.(ir.Const); ok && c.Value > 0 && isPowerOfTwo(c.Value) {
			shift := bits.TrailingZeros64(c.Value)
			return ir.BinOp{Dst: bin.Dst, LHS: bin.RHS, Op: ir.Shl, RHS: ir.Const{Value: uint64(shift), Sign: c.Sign, Size: c.Size}}, true
		}
	case ir.Plus:
		if c, ok := bin.RHS.(ir.Const); ok && c.Value == 0 {
			return ir.Copy{Dst: bin.Dst, Src: bin.LHS}, true
		}
		if c, ok := bin.LHS.(ir.Const); ok && c.Value == 0 {
			return ir.Copy{Dst: bin.Dst, Src: bin.RHS}, true
		}
	case ir.Minus:
		if c, ok := bin.RHS.(ir.Const); ok && c.Value == 0 {
			return ir.Copy{Dst: bin.Dst, Src: bin.LHS}, true
		}
	}
	return nil, false
}

func isPowerOfTwo(v uint64) bool { return v&(v-1) == 0 }

// eliminateDeadBlocks drops blocks unreachable from StartBlock, which
// covers both statically-dead branches and the unreachable blocks opened
// after an unconditional terminator for lexically-following code.
func eliminateDeadBlocks(fn *ir.Function) {
	reachable := map[ir.BlockID]bool{fn.StartBlock: true}
	queue := []ir.BlockID{fn.StartBlock}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		blk, ok := fn.Blocks[id]
		if !ok {
			continue
		}
		for _, next := range successors(blk.End) {
			if !reachable[next] {
				reachable[next] = true
				queue = append(queue, next)
			}
		}
	}

	for id := range fn.Blocks {
		if !reachable[id] {
			delete(fn.Blocks, id)
		}
	}
	newOrder := make([]ir.BlockID, 0, len(fn.Order))
	for _, id := range fn.Order {
		if reachable[id] {
			newOrder = append(newOrder, id)
		}
	}
	fn.Order = newOrder
}

func successors(end ir.BlockEnd) []ir.BlockID {
	switch e := end.(type) {
	case ir.Jump:
		return []ir.BlockID{e.Target}
	case ir.Branch:
		return []ir.BlockID{e.TrueBlock, e.FalseBlock}
	default:
		return nil
	}
}
