// Package typedast is the post-inference tree: it mirrors the surface
// ast.Program shape but every expression carries its resolved types.Type
// and every variable reference has been resolved to Simple/Field/SubScript
// form. Grounded on ailang's internal/typedast/typed_ast.go (every node
// carries a resolved type) and the ast::typed module referenced throughout
// original_source/underscore_semant/src/monomorphize.rs.
package typedast

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/symbol"
	"github.com/velalang/velac/internal/types"
)

// Program is the typed and (pre-monomorphization) or specialized
// (post-monomorphization) tree.
type Program struct {
	Functions []*Function
	Structs   []*types.Struct
}

// Function is a fully type-checked function definition.
type Function struct {
	Span       ast.Span
	Name       symbol.Symbol
	Generic    bool // true for the original generic definition and its specializations
	TypeParams []types.TypeVar
	Params     []FunctionParam
	Returns    types.Type
	Body       Statement
	Linkage    ast.Linkage
}

// FunctionParam is one resolved parameter.
type FunctionParam struct {
	Name symbol.Symbol
	Ty   types.Type
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

type Statement interface {
	stmtNode()
}

type Block struct{ Stmts []Statement }

func (*Block) stmtNode() {}

type Break struct{}

func (*Break) stmtNode() {}

type Continue struct{}

func (*Continue) stmtNode() {}

type ExprStmt struct{ Expr TypedExpression }

func (*ExprStmt) stmtNode() {}

type ReturnStmt struct{ Expr TypedExpression }

func (*ReturnStmt) stmtNode() {}

type LetStmt struct {
	Name symbol.Symbol
	Ty   types.Type
	Expr *TypedExpression // nil when the let has no initializer
}

func (*LetStmt) stmtNode() {}

type IfStmt struct {
	Cond      TypedExpression
	Then      Statement
	Otherwise Statement // nil when there is no else branch
}

func (*IfStmt) stmtNode() {}

type WhileStmt struct {
	Cond TypedExpression
	Body Statement
	// Incr is the increment clause of a desugared `for`, run on every
	// normal fall-through of the body and on `continue`, after the body
	// and before the condition is re-tested. nil for a plain `while`.
	Incr *TypedExpression
}

func (*WhileStmt) stmtNode() {}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// TypedExpression pairs a resolved Expression with its inferred Type.
type TypedExpression struct {
	Expr Expression
	Ty   types.Type
}

type Expression interface {
	exprNode()
}

type ArrayLit struct{ Elems []TypedExpression }

func (*ArrayLit) exprNode() {}

type Assign struct {
	Var  Var
	Expr TypedExpression
}

func (*Assign) exprNode() {}

type Binary struct {
	LHS TypedExpression
	Op  ast.Op
	RHS TypedExpression
}

func (*Binary) exprNode() {}

// Call references the (possibly already-mangled, post-monomorphization)
// callee symbol.
type Call struct {
	Callee symbol.Symbol
	Args   []TypedExpression
}

func (*Call) exprNode() {}

type Cast struct {
	Expr TypedExpression
	Sign types.Sign
	Size types.Size
}

func (*Cast) exprNode() {}

type Grouping struct{ Expr TypedExpression }

func (*Grouping) exprNode() {}

type Literal struct{ Value *ast.Literal }

func (*Literal) exprNode() {}

type FieldAssign struct {
	Name symbol.Symbol
	Expr TypedExpression
}

type StructLit struct {
	Name   symbol.Symbol
	Fields []FieldAssign
}

func (*StructLit) exprNode() {}

type Unary struct {
	Op   ast.UnaryOp
	Expr TypedExpression
}

func (*Unary) exprNode() {}

// VarExpr wraps a resolved Var reference used in expression position.
type VarExpr struct{ Var Var }

func (*VarExpr) exprNode() {}

// ---------------------------------------------------------------------
// Resolved variable references
// ---------------------------------------------------------------------

// Var is the resolved form of a surface ast.Var: Simple, Field, or
// SubScript, each carrying the type resolved for it during inference.
type Var interface {
	varNode()
	Type() types.Type
}

type SimpleVar struct {
	Name symbol.Symbol
	Ty   types.Type
}

func (v *SimpleVar) varNode()         {}
func (v *SimpleVar) Type() types.Type { return v.Ty }

type FieldVar struct {
	Owner Var
	Field symbol.Symbol
	Ty    types.Type
}

func (v *FieldVar) varNode()         {}
func (v *FieldVar) Type() types.Type { return v.Ty }

type SubScriptVar struct {
	Owner Var
	Index TypedExpression
	Ty    types.Type // element type
}

func (v *SubScriptVar) varNode()         {}
func (v *SubScriptVar) Type() types.Type { return v.Ty }
