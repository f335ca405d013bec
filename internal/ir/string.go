package ir

import (
	"fmt"
	"sort"
	"strings"

	"github.com/velalang/velac/internal/symbol"
	"github.com/velalang/velac/internal/types"
)

func (r Register) String() string { return fmt.Sprintf("t%d", int(r)) }
func (b BlockID) String() string  { return fmt.Sprintf("label_%d", int(b)) }

func valueString(v Value, symbols *symbol.Table) string {
	switch val := v.(type) {
	case Const:
		return fmt.Sprintf("%d%s", val.Value, types.Int(val.Sign, val.Size).String())
	case Name:
		return symbols.Name(val.Symbol)
	case Reg:
		return val.Register.String()
	case Mem:
		parts := make([]string, len(val.Bytes))
		for i, b := range val.Bytes {
			parts[i] = fmt.Sprintf("%d", b)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return "?"
	}
}

func (op BinaryOp) String() string {
	switch op {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Gt:
		return ">"
	case Gte:
		return ">="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case Shl:
		return "<<"
	default:
		return "?"
	}
}

func (op UnaryOp) String() string {
	if op == Bang {
		return "!"
	}
	return "-"
}

func instrString(instr Instruction, symbols *symbol.Table) string {
	switch i := instr.(type) {
	case Store:
		return fmt.Sprintf("Store %s, %s", valueString(i.Dst, symbols), valueString(i.Src, symbols))
	case Copy:
		return fmt.Sprintf("Copy %s, %s", i.Dst, valueString(i.Src, symbols))
	case BinOp:
		return fmt.Sprintf("BinOp %s %s %s %s", i.Op, valueString(i.LHS, symbols), valueString(i.RHS, symbols), i.Dst)
	case UnOp:
		return fmt.Sprintf("UnOp %s %s %s", i.Op, valueString(i.Src, symbols), i.Dst)
	case Cast:
		return fmt.Sprintf("Cast %s, %s", valueString(i.Val, symbols), types.Int(i.Sign, i.Size).String())
	case Call:
		args := make([]string, len(i.Args))
		for j, a := range i.Args {
			args[j] = valueString(a, symbols)
		}
		return fmt.Sprintf("Call %s, %s(%s)", i.Dst, symbols.Name(i.Target), strings.Join(args, ", "))
	case ArrayLit:
		elems := make([]string, len(i.Elems))
		for j, e := range i.Elems {
			elems[j] = valueString(e, symbols)
		}
		return fmt.Sprintf("Block %s, [%s]", i.Dst, strings.Join(elems, ", "))
	case StoreField:
		return fmt.Sprintf("StoreField %s[%d], %s", i.Owner, i.Index, valueString(i.Src, symbols))
	case LoadField:
		return fmt.Sprintf("LoadField %s, %s[%d]", i.Dst, i.Owner, i.Index)
	default:
		return "?"
	}
}

func endString(end BlockEnd, symbols *symbol.Table) string {
	switch e := end.(type) {
	case End:
		return "end"
	case Jump:
		return fmt.Sprintf("goto %s", e.Target)
	case Return:
		return fmt.Sprintf("return %s", valueString(e.Value, symbols))
	case Branch:
		return fmt.Sprintf("branch %s %s %s", valueString(e.Cond, symbols), e.TrueBlock, e.FalseBlock)
	default:
		return "?"
	}
}

// Dump renders prog as readable three-address text, block by block in
// each function's recorded emission order, for the --emit-ir CLI flag.
func Dump(prog *Program, symbols *symbol.Table) string {
	var b strings.Builder
	for _, fn := range prog.Functions {
		fmt.Fprintf(&b, "fn %s:\n", symbols.Name(fn.Name))
		order := fn.Order
		if len(order) == 0 {
			for id := range fn.Blocks {
				order = append(order, id)
			}
			sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
		}
		for _, id := range order {
			block := fn.Blocks[id]
			fmt.Fprintf(&b, "  %s:\n", id)
			for _, instr := range block.Instructions {
				fmt.Fprintf(&b, "    %s\n", instrString(instr, symbols))
			}
			fmt.Fprintf(&b, "    %s\n", endString(block.End, symbols))
		}
	}
	return b.String()
}
