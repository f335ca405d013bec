package frame

import (
	"testing"

	"github.com/velalang/velac/internal/symbol"
	"github.com/velalang/velac/internal/types"
)

func TestNewAllocatesFrameSlotsForEscapingFormals(t *testing.T) {
	symbols := symbol.NewTable()
	name := symbols.Intern("f")

	f := New(name, []bool{false, true, false})
	if len(f.Formals) != 3 {
		t.Fatalf("expected 3 formals, got %d", len(f.Formals))
	}
	if _, ok := f.Formals[0].(Reg); !ok {
		t.Fatalf("expected formal 0 to be a register access")
	}
	if _, ok := f.Formals[1].(Frame); !ok {
		t.Fatalf("expected formal 1 to be a frame access")
	}
	if _, ok := f.Formals[2].(Reg); !ok {
		t.Fatalf("expected formal 2 to be a register access")
	}
}

func TestNewFromEnvReadsEscapeFlags(t *testing.T) {
	symbols := symbol.NewTable()
	env := types.NewEnv(symbols, types.NewAllocator())
	fn := symbols.Intern("f")
	x := symbols.Intern("x")
	y := symbols.Intern("y")

	env.SetEscapes(x, true)
	env.SetEscapes(y, false)

	f := NewFromEnv(env, fn, []symbol.Symbol{x, y})
	if _, ok := f.Formals[0].(Frame); !ok {
		t.Fatalf("expected x (escaping) to land in a Frame access")
	}
	if _, ok := f.Formals[1].(Reg); !ok {
		t.Fatalf("expected y (non-escaping) to land in a Reg access")
	}
}
