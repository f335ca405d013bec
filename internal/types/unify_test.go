package types

import (
	"testing"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/symbol"
)

func newTestEnv() *Env {
	return NewEnv(symbol.NewTable(), NewAllocator())
}

func TestUnifyIdenticalConcreteTypes(t *testing.T) {
	env := newTestEnv()
	rep := report.New("t")
	ty := Int(Signed, Bit32)
	if !Unify(env, rep, ast.Span{}, ty, ty) {
		t.Fatalf("unifying T with T should always succeed")
	}
	if rep.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", rep.Diagnostics())
	}
}

func TestUnifyVoidAcceptsAnyStruct(t *testing.T) {
	env := newTestEnv()
	rep := report.New("t")
	s := Struct{SymbolName: "Point", Unique: 1}
	if !Unify(env, rep, ast.Span{}, Void(), s) {
		t.Fatalf("App(Void) should unify with any struct")
	}
	if !Unify(env, rep, ast.Span{}, s, Void()) {
		t.Fatalf("struct should unify with App(Void) symmetrically")
	}
}

func TestUnifyDistinctStructsFail(t *testing.T) {
	env := newTestEnv()
	rep := report.New("t")
	s1 := Struct{SymbolName: "A", Unique: 1}
	s2 := Struct{SymbolName: "B", Unique: 2}
	if Unify(env, rep, ast.Span{}, s1, s2) {
		t.Fatalf("structs with different unique tags must not unify")
	}
	if !rep.HasErrors() {
		t.Fatalf("expected a diagnostic for mismatched struct uniqueness")
	}
}

func TestUnifySameStructSucceeds(t *testing.T) {
	env := newTestEnv()
	rep := report.New("t")
	fields := []Field{{Ty: Int(Signed, Bit32)}}
	s1 := Struct{SymbolName: "A", Unique: 1, Fields: fields}
	s2 := Struct{SymbolName: "A", Unique: 1, Fields: fields}
	if !Unify(env, rep, ast.Span{}, s1, s2) {
		t.Fatalf("structs with matching unique tags and fields should unify")
	}
}

func TestUnifyVarWithIntDefaults(t *testing.T) {
	env := newTestEnv()
	rep := report.New("t")
	v := Var{ID: env.Alloc.FreshVar()}
	if !Unify(env, rep, ast.Span{}, v, Int(Signed, Bit32)) {
		t.Fatalf("a fresh var should unify with a concrete int type")
	}
}

func TestUnifyMismatchedVarTags(t *testing.T) {
	env := newTestEnv()
	rep := report.New("t")
	v1 := env.Alloc.FreshVar()
	v2 := env.Alloc.FreshVar()
	env.AddTVar(v1, VarInt)
	env.AddTVar(v2, VarOther)
	if Unify(env, rep, ast.Span{}, Var{ID: v1}, Var{ID: v2}) {
		t.Fatalf("vars tagged with different VarType kinds must not unify")
	}
}

func TestUnifyArrayLengthMismatch(t *testing.T) {
	env := newTestEnv()
	rep := report.New("t")
	a1 := Array{Elem: Int(Signed, Bit32), Len: 3}
	a2 := Array{Elem: Int(Signed, Bit32), Len: 4}
	if Unify(env, rep, ast.Span{}, a1, a2) {
		t.Fatalf("arrays of different lengths must not unify")
	}
}

func TestUnifyFailureReportsCannotUnify(t *testing.T) {
	env := newTestEnv()
	rep := report.New("t")
	if Unify(env, rep, ast.Span{}, Int(Signed, Bit32), Bool()) {
		t.Fatalf("int and bool should not unify")
	}
	diags := rep.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
	if diags[0].Message != "Cannot unify `i32` vs `bool`" {
		t.Fatalf("unexpected message: %q", diags[0].Message)
	}
}

func TestSubstIdempotentWhenDisjoint(t *testing.T) {
	a := TypeVar(0)
	b := TypeVar(1)
	sub := Subst{a: Var{ID: b}}
	ty := Var{ID: a}
	once := Apply(sub, ty)
	twice := Apply(sub, once)
	if once != twice {
		t.Fatalf("subst should be idempotent when range is disjoint from domain: %v vs %v", once, twice)
	}
}

func TestGeneralizeExcludesEnvFreeVars(t *testing.T) {
	env := newTestEnv()
	free := env.Alloc.FreshVar()
	bound := env.Alloc.FreshVar()
	env.AddVar(env.Symbols.Intern("x"), VarOf(Var{ID: free}))

	ty := App{Con: TyCon{Kind: ConArrow}, Args: []Type{Var{ID: free}, Var{ID: bound}}}
	scheme := Generalize(env, ty)

	foundBound, foundFree := false, false
	for _, v := range scheme.Vars {
		if v == bound {
			foundBound = true
		}
		if v == free {
			foundFree = true
		}
	}
	if !foundBound {
		t.Fatalf("expected generalize to quantify over the variable free only in ty")
	}
	if foundFree {
		t.Fatalf("generalize must not quantify over a variable still free in the environment")
	}
}

func TestInstantiateFreshensVars(t *testing.T) {
	env := newTestEnv()
	v := env.Alloc.FreshVar()
	scheme := Poly{Vars: []TypeVar{v}, Body: Var{ID: v}}
	t1 := Instantiate(env.Alloc, scheme)
	t2 := Instantiate(env.Alloc, scheme)
	if t1 == t2 {
		t.Fatalf("two instantiations of the same scheme should produce distinct fresh vars")
	}
}
