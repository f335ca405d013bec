// Package ir is the three-address-code intermediate representation
// lowering targets: a Program of Functions, each a map of BlockID to
// Block, every Block ending in exactly one BlockEnd (Jump/Branch/Return/
// End). Grounded on the canonical block-map shape of
// original_source/undisclosed_ir/src/tac.rs, which spec.md §9 calls out
// as the form to implement over the alternate flat instruction-vector
// form in original_source/underscore_ir/src/ir.rs.
package ir

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/symbol"
	"github.com/velalang/velac/internal/types"
)

// Register names a temporary value, fresh per function.
type Register int

// BlockID names a basic block, fresh per function; it doubles as this
// IR's notion of "label" since every branch target is a block.
type BlockID int

// Program is a whole compilation unit's lowered functions.
type Program struct {
	Functions []*Function
}

// Function is one lowered function: its formal parameters (each bound to
// a register at entry), its basic blocks keyed by BlockID, and the block
// execution starts at.
type Function struct {
	Name       symbol.Symbol
	Params     []Register
	Blocks     map[BlockID]*Block
	StartBlock BlockID
	Order      []BlockID // emission order, for stable Display/dump output
	Linkage    ast.Linkage
}

// Block is a maximal straight-line instruction sequence terminated by
// exactly one control transfer.
type Block struct {
	Instructions []Instruction
	End          BlockEnd
}

// BlockEnd is the control transfer every Block must end with.
type BlockEnd interface {
	blockEnd()
}

type Jump struct{ Target BlockID }

func (Jump) blockEnd() {}

type Branch struct {
	Cond        Value
	TrueBlock   BlockID
	FalseBlock  BlockID
}

func (Branch) blockEnd() {}

type Return struct{ Value Value }

func (Return) blockEnd() {}

type End struct{}

func (End) blockEnd() {}

// Value is an IR operand: a constant, a named global/function reference,
// a register, or a raw byte blob (string/nil literal storage).
type Value interface {
	valueNode()
}

type Const struct {
	Value uint64
	Sign  types.Sign
	Size  types.Size
}

func (Const) valueNode() {}

type Name struct{ Symbol symbol.Symbol }

func (Name) valueNode() {}

type Reg struct{ Register Register }

func (Reg) valueNode() {}

type Mem struct{ Bytes []byte }

func (Mem) valueNode() {}

// BinaryOp is an arithmetic or comparison binary instruction opcode.
type BinaryOp int

const (
	Plus BinaryOp = iota
	Minus
	Mul
	Div
	Lt
	Lte
	Gt
	Gte
	Equal
	NotEqual
	Shl // synthesized by the peephole pass for power-of-two multiplies
)

// UnaryOp is a unary instruction opcode.
type UnaryOp int

const (
	Bang UnaryOp = iota
	Neg
)

// Instruction is one three-address-code operation within a Block.
type Instruction interface {
	instrNode()
}

// Store writes Src (a constant, name, mem blob or register) into Dst.
type Store struct{ Dst, Src Value }

func (Store) instrNode() {}

// Copy reads a variable's current register into dst.
type Copy struct {
	Dst Register
	Src Value
}

func (Copy) instrNode() {}

// BinOp computes `dst = lhs op rhs`.
type BinOp struct {
	Dst      Register
	LHS      Value
	Op       BinaryOp
	RHS      Value
}

func (BinOp) instrNode() {}

// UnOp computes `dst = op src`.
type UnOp struct {
	Dst Register
	Op  UnaryOp
	Src Value
}

func (UnOp) instrNode() {}

// Cast converts Val to the given sign/size, writing the result into Dst.
type Cast struct {
	Dst   Register
	Val   Value
	Sign  types.Sign
	Size  types.Size
}

func (Cast) instrNode() {}

// Call invokes target with args, writing the result into dst.
type Call struct {
	Dst    Register
	Target symbol.Symbol
	Args   []Value
}

func (Call) instrNode() {}

// ArrayLit materializes a fixed-length array literal at dst from the
// already-lowered element registers.
type ArrayLit struct {
	Dst  Register
	Elems []Value
}

func (ArrayLit) instrNode() {}

// StoreField writes a struct field of owner (a register holding the
// struct's base) at the given field index.
type StoreField struct {
	Owner Register
	Index int
	Src   Value
}

func (StoreField) instrNode() {}

// LoadField reads a struct field of owner into dst.
type LoadField struct {
	Dst   Register
	Owner Register
	Index int
}

func (LoadField) instrNode() {}
