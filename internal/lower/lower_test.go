package lower

import (
	"strings"
	"testing"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/ir"
	"github.com/velalang/velac/internal/symbol"
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

// fn add(x: i32, y: i32) -> i32 { return x + y; }
func TestLowerBinaryPlus(t *testing.T) {
	symbols := symbol.NewTable()
	add := symbols.Intern("add")
	x := symbols.Intern("x")
	y := symbols.Intern("y")

	fn := &typedast.Function{
		Name:    add,
		Params:  []typedast.FunctionParam{{Name: x, Ty: types.DefaultInt()}, {Name: y, Ty: types.DefaultInt()}},
		Returns: types.DefaultInt(),
		Body: &typedast.Block{Stmts: []typedast.Statement{
			&typedast.ReturnStmt{Expr: typedast.TypedExpression{
				Ty: types.DefaultInt(),
				Expr: &typedast.Binary{
					LHS: typedast.TypedExpression{Ty: types.DefaultInt(), Expr: &typedast.VarExpr{Var: &typedast.SimpleVar{Name: x, Ty: types.DefaultInt()}}},
					Op:  ast.OpPlus,
					RHS: typedast.TypedExpression{Ty: types.DefaultInt(), Expr: &typedast.VarExpr{Var: &typedast.SimpleVar{Name: y, Ty: types.DefaultInt()}}},
				},
			}},
		}},
	}

	out := Lower(&typedast.Program{Functions: []*typedast.Function{fn}}, symbols)
	dump := ir.Dump(out, symbols)

	if !strings.Contains(dump, "BinOp + ") {
		t.Fatalf("expected a Plus BinOp instruction, got:\n%s", dump)
	}
	if !strings.Contains(dump, "return") {
		t.Fatalf("expected a return terminator, got:\n%s", dump)
	}
}

// fn mul(x: i32, y: i32) -> i32 { return x * y; } — the Op::Star -> Minus
// bug from the original gen_ir.rs must not reappear here.
func TestLowerBinaryStarFixedToMul(t *testing.T) {
	symbols := symbol.NewTable()
	mul := symbols.Intern("mul")
	x := symbols.Intern("x")
	y := symbols.Intern("y")

	fn := &typedast.Function{
		Name:    mul,
		Params:  []typedast.FunctionParam{{Name: x, Ty: types.DefaultInt()}, {Name: y, Ty: types.DefaultInt()}},
		Returns: types.DefaultInt(),
		Body: &typedast.Block{Stmts: []typedast.Statement{
			&typedast.ReturnStmt{Expr: typedast.TypedExpression{
				Ty: types.DefaultInt(),
				Expr: &typedast.Binary{
					LHS: typedast.TypedExpression{Ty: types.DefaultInt(), Expr: &typedast.VarExpr{Var: &typedast.SimpleVar{Name: x, Ty: types.DefaultInt()}}},
					Op:  ast.OpStar,
					RHS: typedast.TypedExpression{Ty: types.DefaultInt(), Expr: &typedast.VarExpr{Var: &typedast.SimpleVar{Name: y, Ty: types.DefaultInt()}}},
				},
			}},
		}},
	}

	out := Lower(&typedast.Program{Functions: []*typedast.Function{fn}}, symbols)
	dump := ir.Dump(out, symbols)

	if !strings.Contains(dump, "BinOp * ") {
		t.Fatalf("expected `*` to lower to Mul, got:\n%s", dump)
	}
	if strings.Contains(dump, "BinOp - ") {
		t.Fatalf("Op::Star must not lower to Minus, got:\n%s", dump)
	}
}

// fn f(a: bool, b: bool) -> bool { return a && b; } must branch across
// blocks rather than evaluating both operands unconditionally.
func TestLowerShortCircuitAnd(t *testing.T) {
	symbols := symbol.NewTable()
	f := symbols.Intern("f")
	a := symbols.Intern("a")
	bSym := symbols.Intern("b")

	fn := &typedast.Function{
		Name:    f,
		Params:  []typedast.FunctionParam{{Name: a, Ty: types.Bool()}, {Name: bSym, Ty: types.Bool()}},
		Returns: types.Bool(),
		Body: &typedast.Block{Stmts: []typedast.Statement{
			&typedast.ReturnStmt{Expr: typedast.TypedExpression{
				Ty: types.Bool(),
				Expr: &typedast.Binary{
					LHS: typedast.TypedExpression{Ty: types.Bool(), Expr: &typedast.VarExpr{Var: &typedast.SimpleVar{Name: a, Ty: types.Bool()}}},
					Op:  ast.OpAnd,
					RHS: typedast.TypedExpression{Ty: types.Bool(), Expr: &typedast.VarExpr{Var: &typedast.SimpleVar{Name: bSym, Ty: types.Bool()}}},
				},
			}},
		}},
	}

	out := Lower(&typedast.Program{Functions: []*typedast.Function{fn}}, symbols)
	if len(out.Functions[0].Blocks) < 4 {
		t.Fatalf("expected && to split into multiple blocks (entry, rhs, false, join), got %d", len(out.Functions[0].Blocks))
	}
	dump := ir.Dump(out, symbols)
	if !strings.Contains(dump, "branch") {
		t.Fatalf("expected a branch terminator from short-circuit lowering, got:\n%s", dump)
	}
}

// fn g(x: i32, y: i32) -> bool { return x != y; } must not recurse
// infinitely the way the original gen_ir.rs's swap-and-retry did.
func TestLowerNotEqualDirectly(t *testing.T) {
	symbols := symbol.NewTable()
	g := symbols.Intern("g")
	x := symbols.Intern("x")
	y := symbols.Intern("y")

	fn := &typedast.Function{
		Name:    g,
		Params:  []typedast.FunctionParam{{Name: x, Ty: types.DefaultInt()}, {Name: y, Ty: types.DefaultInt()}},
		Returns: types.Bool(),
		Body: &typedast.Block{Stmts: []typedast.Statement{
			&typedast.ReturnStmt{Expr: typedast.TypedExpression{
				Ty: types.Bool(),
				Expr: &typedast.Binary{
					LHS: typedast.TypedExpression{Ty: types.DefaultInt(), Expr: &typedast.VarExpr{Var: &typedast.SimpleVar{Name: x, Ty: types.DefaultInt()}}},
					Op:  ast.OpNeq,
					RHS: typedast.TypedExpression{Ty: types.DefaultInt(), Expr: &typedast.VarExpr{Var: &typedast.SimpleVar{Name: y, Ty: types.DefaultInt()}}},
				},
			}},
		}},
	}

	out := Lower(&typedast.Program{Functions: []*typedast.Function{fn}}, symbols)
	dump := ir.Dump(out, symbols)
	if !strings.Contains(dump, "BinOp != ") {
		t.Fatalf("expected a direct != comparison, got:\n%s", dump)
	}
}

// fn pow2(x: i32) -> i32 { return x * 4; } — Optimize should strength-reduce
// the multiply to a shift.
func TestOptimizeStrengthReducesPowerOfTwoMultiply(t *testing.T) {
	symbols := symbol.NewTable()
	pow2 := symbols.Intern("pow2")
	x := symbols.Intern("x")

	fn := &typedast.Function{
		Name:    pow2,
		Params:  []typedast.FunctionParam{{Name: x, Ty: types.DefaultInt()}},
		Returns: types.DefaultInt(),
		Body: &typedast.Block{Stmts: []typedast.Statement{
			&typedast.ReturnStmt{Expr: typedast.TypedExpression{
				Ty: types.DefaultInt(),
				Expr: &typedast.Binary{
					LHS: typedast.TypedExpression{Ty: types.DefaultInt(), Expr: &typedast.VarExpr{Var: &typedast.SimpleVar{Name: x, Ty: types.DefaultInt()}}},
					Op:  ast.OpStar,
					RHS: typedast.TypedExpression{Ty: types.DefaultInt(), Expr: &typedast.Literal{Value: &ast.Literal{Kind: ast.LitNumber, Number: 4, HasSuffix: true, Sign: ast.Signed, Size: ast.Bit32}}},
				},
			}},
		}},
	}

	out := Optimize(Lower(&typedast.Program{Functions: []*typedast.Function{fn}}, symbols))
	dump := ir.Dump(out, symbols)
	if !strings.Contains(dump, "<<") {
		t.Fatalf("expected strength reduction to a shift, got:\n%s", dump)
	}
	if strings.Contains(dump, "BinOp * ") {
		t.Fatalf("expected the multiply to be replaced, got:\n%s", dump)
	}
}

// fn loopfn() { let i: i32 = 0; while i { break; } return; } exercises While
// lowering producing a loop back-edge and break/continue targets.
func TestLowerWhileLoopBackEdge(t *testing.T) {
	symbols := symbol.NewTable()
	f := symbols.Intern("loopfn")
	i := symbols.Intern("i")

	fn := &typedast.Function{
		Name:    f,
		Returns: types.NilType{},
		Body: &typedast.Block{Stmts: []typedast.Statement{
			&typedast.LetStmt{Name: i, Ty: types.DefaultInt(), Expr: &typedast.TypedExpression{
				Ty: types.DefaultInt(),
				Expr: &typedast.Literal{Value: &ast.Literal{Kind: ast.LitNumber, Number: 0, HasSuffix: true, Sign: ast.Signed, Size: ast.Bit32}},
			}},
			&typedast.WhileStmt{
				Cond: typedast.TypedExpression{Ty: types.Bool(), Expr: &typedast.VarExpr{Var: &typedast.SimpleVar{Name: i, Ty: types.Bool()}}},
				Body: &typedast.Block{Stmts: []typedast.Statement{
					&typedast.Break{},
				}},
			},
			&typedast.ReturnStmt{Expr: typedast.TypedExpression{Ty: types.NilType{}, Expr: &typedast.Literal{Value: &ast.Literal{Kind: ast.LitNil}}}},
		}},
	}

	out := Lower(&typedast.Program{Functions: []*typedast.Function{fn}}, symbols)
	if len(out.Functions[0].Blocks) < 3 {
		t.Fatalf("expected at least cond/body/after blocks for the loop, got %d", len(out.Functions[0].Blocks))
	}
}

// fn f() { for (let i:i32=0; true; i = i+1) { continue; } } desugars to a
// WhileStmt with Incr set; `continue` inside the body must still reach the
// increment before jumping back to the condition, matching C's `for`.
func TestLowerForContinueRunsIncrement(t *testing.T) {
	symbols := symbol.NewTable()
	f := symbols.Intern("f")
	i := symbols.Intern("i")

	incr := typedast.TypedExpression{
		Ty: types.DefaultInt(),
		Expr: &typedast.Assign{
			Var: &typedast.SimpleVar{Name: i, Ty: types.DefaultInt()},
			Expr: typedast.TypedExpression{
				Ty: types.DefaultInt(),
				Expr: &typedast.Binary{
					LHS: typedast.TypedExpression{Ty: types.DefaultInt(), Expr: &typedast.VarExpr{Var: &typedast.SimpleVar{Name: i, Ty: types.DefaultInt()}}},
					Op:  ast.OpPlus,
					RHS: typedast.TypedExpression{Ty: types.DefaultInt(), Expr: &typedast.Literal{Value: &ast.Literal{Kind: ast.LitNumber, Number: 1, HasSuffix: true, Sign: ast.Signed, Size: ast.Bit32}}},
				},
			},
		},
	}

	fn := &typedast.Function{
		Name:    f,
		Returns: types.NilType{},
		Body: &typedast.Block{Stmts: []typedast.Statement{
			&typedast.WhileStmt{
				Cond: typedast.TypedExpression{Ty: types.Bool(), Expr: &typedast.Literal{Value: &ast.Literal{Kind: ast.LitTrue}}},
				Body: &typedast.Block{Stmts: []typedast.Statement{&typedast.Continue{}}},
				Incr: &incr,
			},
			&typedast.ReturnStmt{Expr: typedast.TypedExpression{Ty: types.NilType{}, Expr: &typedast.Literal{Value: &ast.Literal{Kind: ast.LitNil}}}},
		}},
	}

	out := Lower(&typedast.Program{Functions: []*typedast.Function{fn}}, symbols)
	dump := ir.Dump(out, symbols)
	if !strings.Contains(dump, "BinOp + ") {
		t.Fatalf("expected continue to still reach the increment's BinOp, got:\n%s", dump)
	}
}

// fn f(a: [i32;4]) -> i32 { a[1] = a[0]; return a[0]; } — SubScript reads and
// writes must compute their address as base + index*elemSize via two BinOp
// instructions, not a single dedicated load/store opcode.
func TestLowerSubscriptComputesAddressViaBinOp(t *testing.T) {
	symbols := symbol.NewTable()
	f := symbols.Intern("f")
	a := symbols.Intern("a")
	arrTy := types.Array{Elem: types.DefaultInt(), Len: 4}

	idxLit := func(n uint64) typedast.TypedExpression {
		return typedast.TypedExpression{
			Ty:   types.DefaultInt(),
			Expr: &typedast.Literal{Value: &ast.Literal{Kind: ast.LitNumber, Number: n, HasSuffix: true, Sign: ast.Signed, Size: ast.Bit32}},
		}
	}

	readA0 := typedast.TypedExpression{
		Ty:   types.DefaultInt(),
		Expr: &typedast.VarExpr{Var: &typedast.SubScriptVar{Owner: &typedast.SimpleVar{Name: a, Ty: arrTy}, Index: idxLit(0), Ty: types.DefaultInt()}},
	}

	fn := &typedast.Function{
		Name:    f,
		Params:  []typedast.FunctionParam{{Name: a, Ty: arrTy}},
		Returns: types.DefaultInt(),
		Body: &typedast.Block{Stmts: []typedast.Statement{
			&typedast.ExprStmt{Expr: typedast.TypedExpression{
				Ty: types.DefaultInt(),
				Expr: &typedast.Assign{
					Var:  &typedast.SubScriptVar{Owner: &typedast.SimpleVar{Name: a, Ty: arrTy}, Index: idxLit(1), Ty: types.DefaultInt()},
					Expr: readA0,
				},
			}},
			&typedast.ReturnStmt{Expr: readA0},
		}},
	}

	out := Lower(&typedast.Program{Functions: []*typedast.Function{fn}}, symbols)
	dump := ir.Dump(out, symbols)

	if strings.Contains(dump, "LoadIndex") || strings.Contains(dump, "StoreIndex") {
		t.Fatalf("expected no LoadIndex/StoreIndex opcodes, got:\n%s", dump)
	}
	if strings.Contains(dump, "BinOp * ") == false || strings.Contains(dump, "BinOp + ") == false {
		t.Fatalf("expected both a Mul and a Plus BinOp computing the subscript address, got:\n%s", dump)
	}
}
