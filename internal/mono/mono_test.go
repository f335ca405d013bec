package mono

import (
	"testing"

	"github.com/velalang/velac/internal/symbol"
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

func TestMonomorphizeSpecializesPerCallSite(t *testing.T) {
	symbols := symbol.NewTable()
	id := symbols.Intern("id")
	xParam := symbols.Intern("x")
	main := symbols.Intern("main")

	idFn := &typedast.Function{
		Name:    id,
		Generic: true,
		Params:  []typedast.FunctionParam{{Name: xParam, Ty: types.Var{ID: 0}}},
		Returns: types.Var{ID: 0},
		Body: &typedast.ReturnStmt{Expr: typedast.TypedExpression{
			Expr: &typedast.VarExpr{Var: &typedast.SimpleVar{Name: xParam, Ty: types.Var{ID: 0}}},
			Ty:   types.Var{ID: 0},
		}},
	}

	callInt := typedast.TypedExpression{
		Expr: &typedast.Call{Callee: id, Args: []typedast.TypedExpression{
			{Expr: &typedast.Literal{}, Ty: types.DefaultInt()},
		}},
		Ty: types.DefaultInt(),
	}
	callBool := typedast.TypedExpression{
		Expr: &typedast.Call{Callee: id, Args: []typedast.TypedExpression{
			{Expr: &typedast.Literal{}, Ty: types.Bool()},
		}},
		Ty: types.Bool(),
	}

	mainFn := &typedast.Function{
		Name: main,
		Body: &typedast.Block{Stmts: []typedast.Statement{
			&typedast.ExprStmt{Expr: callInt},
			&typedast.ExprStmt{Expr: callBool},
		}},
	}

	prog := &typedast.Program{Functions: []*typedast.Function{idFn, mainFn}}
	out := Run(prog, symbols)

	if len(out.Functions) != 3 {
		t.Fatalf("expected main plus two specializations, got %d functions", len(out.Functions))
	}

	var sawIDInt, sawIDBool, sawOriginalID bool
	for _, fn := range out.Functions {
		switch symbols.Name(fn.Name) {
		case "idi32":
			sawIDInt = true
		case "idbool":
			sawIDBool = true
		case "id":
			sawOriginalID = true
		}
	}
	if !sawIDInt || !sawIDBool {
		t.Fatalf("expected idi32 and idbool specializations in output")
	}
	if sawOriginalID {
		t.Fatalf("the uncalled generic definition itself must be dropped")
	}
}

func TestMonomorphizeDropsUncalledGeneric(t *testing.T) {
	symbols := symbol.NewTable()
	dead := symbols.Intern("dead")
	main := symbols.Intern("main")

	deadFn := &typedast.Function{Name: dead, Generic: true, Body: &typedast.Block{}}
	mainFn := &typedast.Function{Name: main, Body: &typedast.Block{}}

	out := Run(&typedast.Program{Functions: []*typedast.Function{deadFn, mainFn}}, symbols)
	if len(out.Functions) != 1 || out.Functions[0].Name != main {
		t.Fatalf("expected only main to survive, got %d functions", len(out.Functions))
	}
}
