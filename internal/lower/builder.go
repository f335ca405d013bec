// Package lower translates the typed, monomorphized tree into the
// three-address block-map IR of internal/ir. Grounded on
// original_source/underscore_semant/src/gen_ir.rs for how individual
// expression forms (literals, casts, calls, unary/binary operators)
// translate into instructions, and on
// original_source/undisclosed_ir/src/tac.rs (via internal/ir) for the
// target shape itself. gen_ir.rs never implements If/While/For/Return/Let
// and targets a flatter, non-block IR, so statement lowering and the
// Branch-based short-circuit helper in cond.go are original work built to
// spec.md's design notes rather than transliterated from it.
package lower

import (
	"github.com/velalang/velac/internal/ir"
	"github.com/velalang/velac/internal/symbol"
	"github.com/velalang/velac/internal/typedast"
)

// loopLabels records the jump targets a break/continue inside the current
// loop body should target.
type loopLabels struct {
	continueTarget ir.BlockID
	breakTarget    ir.BlockID
}

// builder accumulates the blocks of a single function being lowered.
// Registers and block IDs are fresh per function, matching the register
// numbering tac.rs's Display convention shows for individual functions.
type builder struct {
	symbols *symbol.Table

	nextReg   ir.Register
	nextBlock ir.BlockID

	blocks  map[ir.BlockID]*ir.Block
	order   []ir.BlockID
	current ir.BlockID

	vars      map[symbol.Symbol]ir.Register
	loopStack []loopLabels
}

func newBuilder(symbols *symbol.Table) *builder {
	b := &builder{
		symbols: symbols,
		blocks:  make(map[ir.BlockID]*ir.Block),
		vars:    make(map[symbol.Symbol]ir.Register),
	}
	return b
}

func (b *builder) newReg() ir.Register {
	r := b.nextReg
	b.nextReg++
	return r
}

func (b *builder) newBlock() ir.BlockID {
	id := b.nextBlock
	b.nextBlock++
	b.blocks[id] = &ir.Block{}
	b.order = append(b.order, id)
	return id
}

func (b *builder) switchTo(id ir.BlockID) {
	b.current = id
}

func (b *builder) emit(instr ir.Instruction) {
	blk := b.blocks[b.current]
	blk.Instructions = append(blk.Instructions, instr)
}

// setEnd terminates the current block unconditionally, overwriting any
// prior terminator. Used for explicit control transfers (return, break,
// continue, branch) which always own the block they're emitted into.
func (b *builder) setEnd(end ir.BlockEnd) {
	b.blocks[b.current].End = end
}

// fallthroughTo terminates the current block with a Jump to target only if
// it has no terminator yet, which is the case whenever the preceding
// statement didn't already end the block itself (a return/break/continue
// inside it would have).
func (b *builder) fallthroughTo(target ir.BlockID) {
	if b.blocks[b.current].End == nil {
		b.setEnd(ir.Jump{Target: target})
	}
}

// startDeadBlock opens a fresh block after an unconditional terminator so
// that any statements lexically following it (unreachable, but still legal
// to lower) have somewhere to go.
func (b *builder) startDeadBlock() {
	b.switchTo(b.newBlock())
}

func (b *builder) pushLoop(l loopLabels) { b.loopStack = append(b.loopStack, l) }
func (b *builder) popLoop()              { b.loopStack = b.loopStack[:len(b.loopStack)-1] }

// currentLoop assumes loopStack is non-empty; break/continue outside a
// loop is rejected during inference, before Lower ever runs.
func (b *builder) currentLoop() loopLabels {
	return b.loopStack[len(b.loopStack)-1]
}

// Lower turns a monomorphized typed program into the block-map IR, one
// internal builder (and so one fresh register/block numbering) per
// function.
func Lower(prog *typedast.Program, symbols *symbol.Table) *ir.Program {
	out := &ir.Program{}
	for _, fn := range prog.Functions {
		out.Functions = append(out.Functions, lowerFunction(fn, symbols))
	}
	return out
}
