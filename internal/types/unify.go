package types

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
)

// Unify attempts to unify lhs and rhs, recording a diagnostic and returning
// false on failure. Rules are tried in the order spec.md §4.3 lists them;
// the first matching rule wins. No occurs check is performed: rejection of
// recursive types relies on the scheme structure, per spec.md §4.3. This
// mirrors the match arms of original_source/underscore_semant/src/unify.rs
// one for one.
func Unify(env *Env, reporter *report.Reporter, span ast.Span, lhs, rhs Type) bool {
	lStruct, lIsStruct := lhs.(Struct)
	rStruct, rIsStruct := rhs.(Struct)
	if lIsStruct && rIsStruct {
		if lStruct.Unique != rStruct.Unique {
			reporter.Errorf("typecheck", span, "struct `%s` != struct `%s`", lStruct.SymbolName, rStruct.SymbolName)
			return false
		}
		ok := true
		n := len(lStruct.Fields)
		if len(rStruct.Fields) < n {
			n = len(rStruct.Fields)
		}
		for i := 0; i < n; i++ {
			if !Unify(env, reporter, span, lStruct.Fields[i].Ty, rStruct.Fields[i].Ty) {
				ok = false
			}
		}
		return ok
	}
	if lIsStruct && isVoidApp(rhs) {
		return true
	}
	if rIsStruct && isVoidApp(lhs) {
		return true
	}

	lArr, lIsArr := lhs.(Array)
	rArr, rIsArr := rhs.(Array)
	if lIsArr && rIsArr {
		if lArr.Len != rArr.Len {
			reporter.Errorf("typecheck", span, "expected array with len `%d` found len `%d`", lArr.Len, rArr.Len)
			return false
		}
		return Unify(env, reporter, span, lArr.Elem, rArr.Elem)
	}
	if lIsArr {
		return Unify(env, reporter, span, lArr.Elem, rhs)
	}
	if rIsArr {
		return Unify(env, reporter, span, lhs, rArr.Elem)
	}

	lApp, lIsApp := lhs.(App)
	rApp, rIsApp := rhs.(App)
	if lIsApp && rIsApp {
		if !lApp.Con.Equals(rApp.Con) {
			reporter.Errorf("typecheck", span, "Cannot unify `%s` vs `%s`", lhs.String(), rhs.String())
			return false
		}
		ok := true
		n := len(lApp.Args)
		if len(rApp.Args) < n {
			n = len(rApp.Args)
		}
		for i := 0; i < n; i++ {
			if !Unify(env, reporter, span, lApp.Args[i], rApp.Args[i]) {
				ok = false
			}
		}
		return ok
	}
	if lIsApp && lApp.Con.Kind == ConFun {
		return unifyFunCon(env, reporter, span, lApp.Con, rhs)
	}
	if rIsApp && rApp.Con.Kind == ConFun {
		return unifyFunCon(env, reporter, span, rApp.Con, lhs)
	}

	lPoly, lIsPoly := lhs.(Poly)
	rPoly, rIsPoly := rhs.(Poly)
	if lIsPoly && rIsPoly {
		sub := Subst{}
		for _, v := range lPoly.Vars {
			sub[v] = Var{ID: v}
		}
		for _, v := range rPoly.Vars {
			sub[v] = Var{ID: v}
		}
		return Unify(env, reporter, span, lPoly.Body, Apply(sub, rPoly.Body))
	}

	lVar, lIsVar := lhs.(Var)
	rVar, rIsVar := rhs.(Var)
	if lIsVar && rIsVar {
		if lVar.ID == rVar.ID {
			return true
		}
		aKind, aOK := env.LookTVar(lVar.ID)
		bKind, bOK := env.LookTVar(rVar.ID)
		if aOK && bOK && aKind != bKind {
			reporter.Errorf("typecheck", span, "Cannot unify `%s` vs `%s`", lhs.String(), rhs.String())
			return false
		}
		return true
	}
	if lIsVar && IsIntApp(rhs) {
		return true
	}
	if rIsVar && IsIntApp(lhs) {
		return true
	}

	_, lIsNil := lhs.(NilType)
	_, rIsNil := rhs.(NilType)
	if lIsNil && rIsNil {
		return true
	}
	if lIsNil && isVoidApp(rhs) {
		return true
	}
	if rIsNil && isVoidApp(lhs) {
		return true
	}

	reporter.Errorf("typecheck", span, "Cannot unify `%s` vs `%s`", lhs.String(), rhs.String())
	return false
}

// unifyFunCon unifies a named function type constructor's instantiated
// return type against t, per spec.md rule 6 (symmetric).
func unifyFunCon(env *Env, reporter *report.Reporter, span ast.Span, con TyCon, t Type) bool {
	sub := make(Subst, len(con.Vars))
	if app, ok := t.(App); ok && app.Con.Kind == ConFun {
		for _, v := range app.Con.Vars {
			sub[v] = Var{ID: v}
		}
		return Unify(env, reporter, span, Apply(sub, con.Ret), Apply(sub, app.Con.Ret))
	}
	for _, v := range con.Vars {
		sub[v] = Var{ID: v}
	}
	return Unify(env, reporter, span, Apply(sub, con.Ret), t)
}

func isVoidApp(t Type) bool {
	a, ok := t.(App)
	return ok && a.Con.Kind == ConVoid
}
