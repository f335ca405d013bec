// Package types implements the type representation, scoped environment,
// substitution, and unification for the language's Hindley-Milner-style
// type system extended with type-constructor application and nominal
// record uniqueness, following the shape of ailang's internal/types
// package (a Type interface with String/Equals/Substitute-style methods)
// and the semantics of original_source/underscore_semant/src/{subst,unify}.rs.
package types

import (
	"fmt"
	"strings"

	"github.com/velalang/velac/internal/symbol"
)

// TypeVar is a globally fresh type-variable identity.
type TypeVar int

func (v TypeVar) String() string { return fmt.Sprintf("'t%d", int(v)) }

// UniqueTag is allocated monotonically at struct definition; two struct
// types unify only when their tags agree.
type UniqueTag int64

// VarType tags a TypeVar's intended default/class, used to reject
// inconsistent var-var unifications (e.g. an int-tagged var vs. an
// other-tagged var) per spec.md's unification rule 8.
type VarType int

const (
	VarOther VarType = iota
	VarInt
)

// TyConKind distinguishes the built-in type constructors.
type TyConKind int

const (
	ConInt TyConKind = iota
	ConBool
	ConString
	ConChar
	ConVoid
	ConArrow
	ConFun
)

// TyCon is a type constructor. Int carries a sign/size; Fun carries its own
// forall (bound vars) and return-type template, used for named generic
// function type constructors encountered during type translation.
type TyCon struct {
	Kind TyConKind
	Sign Sign
	Size Size
	Vars []TypeVar // only meaningful for ConFun
	Ret  Type      // only meaningful for ConFun
}

// Sign/Size mirror ast.Sign/ast.Size so this package doesn't import ast for
// its own sake; translation maps between them in infer.trans_ty.
type Sign int

const (
	Signed Sign = iota
	Unsigned
)

type Size int

const (
	Bit8  Size = 8
	Bit32 Size = 32
	Bit64 Size = 64
)

func (c TyCon) Equals(other TyCon) bool {
	if c.Kind != other.Kind {
		return false
	}
	if c.Kind == ConInt {
		return c.Sign == other.Sign && c.Size == other.Size
	}
	return true
}

func (c TyCon) String() string {
	switch c.Kind {
	case ConInt:
		sign := "i"
		if c.Sign == Unsigned {
			sign = "u"
		}
		return fmt.Sprintf("%s%d", sign, int(c.Size))
	case ConBool:
		return "bool"
	case ConString:
		return "str"
	case ConChar:
		return "char"
	case ConVoid:
		return "void"
	case ConArrow:
		return "->"
	case ConFun:
		return "fun"
	default:
		return "?"
	}
}

// Type is the common interface for every type-system value: App, Poly,
// Struct, Array, Var, Nil.
type Type interface {
	String() string
	isType()
}

// Field is one field of a struct type.
type Field struct {
	Name symbol.Symbol
	Ty   Type
}

// App is a type constructor applied to zero or more argument types, e.g.
// App(Arrow, [p1, p2, ret]) for a two-argument function type.
type App struct {
	Con  TyCon
	Args []Type
}

func (App) isType() {}
func (a App) String() string {
	if a.Con.Kind == ConArrow {
		if len(a.Args) == 0 {
			return "()->()"
		}
		params := a.Args[:len(a.Args)-1]
		ret := a.Args[len(a.Args)-1]
		parts := make([]string, len(params))
		for i, p := range params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s)->%s", strings.Join(parts, ","), ret.String())
	}
	if len(a.Args) == 0 {
		return a.Con.String()
	}
	parts := make([]string, len(a.Args))
	for i, t := range a.Args {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s<%s>", a.Con.String(), strings.Join(parts, ","))
}

// Poly is a universally quantified scheme: forall Vars. Body.
type Poly struct {
	Vars []TypeVar
	Body Type
}

func (Poly) isType() {}
func (p Poly) String() string {
	if len(p.Vars) == 0 {
		return p.Body.String()
	}
	names := make([]string, len(p.Vars))
	for i, v := range p.Vars {
		names[i] = v.String()
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(names, ","), p.Body.String())
}

// Struct is a nominal record type; StructName is kept for display, Unique
// is the sole identity used by unification.
type Struct struct {
	StructName symbol.Symbol
	SymbolName string // display form, since this package doesn't hold the interner
	Fields     []Field
	Unique     UniqueTag
}

func (Struct) isType() {}
func (s Struct) String() string {
	return s.SymbolName
}

// Array is a fixed-length array type.
type Array struct {
	Elem Type
	Len  int
}

func (Array) isType() {}
func (a Array) String() string {
	return fmt.Sprintf("[%s;%d]", a.Elem.String(), a.Len)
}

// Var is an unresolved type variable.
type Var struct {
	ID TypeVar
}

func (Var) isType() {}
func (v Var) String() string { return v.ID.String() }

// NilType is the unit-ish literal/default-return type, compatible with
// App(Void, _) for assignment and default return purposes.
type NilType struct{}

func (NilType) isType() {}
func (NilType) String() string { return "nil" }

// Convenience constructors for the built-in primitive types.
func Bool() Type       { return App{Con: TyCon{Kind: ConBool}} }
func String() Type     { return App{Con: TyCon{Kind: ConString}} }
func Char() Type       { return App{Con: TyCon{Kind: ConChar}} }
func Void() Type       { return App{Con: TyCon{Kind: ConVoid}} }
func Int(sign Sign, size Size) Type {
	return App{Con: TyCon{Kind: ConInt, Sign: sign, Size: size}}
}

// DefaultInt is the signed 32-bit type numeric literals fall back to when
// never unified with a concrete width, per spec.md's numeric-default
// invariant.
func DefaultInt() Type { return Int(Signed, Bit32) }

// IsIntApp reports whether t is App(Int(...), _).
func IsIntApp(t Type) bool {
	a, ok := t.(App)
	return ok && a.Con.Kind == ConInt
}
