package typedast

import (
	"fmt"
	"strings"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/symbol"
)

// Dump renders prog as an indented structural tree annotated with resolved
// types, in the style of internal/ast.Dump but for the post-inference
// tree. Used by the driver's -d flag once inference has produced a typed
// program.
func Dump(prog *Program, symbols *symbol.Table) string {
	var b strings.Builder
	for _, st := range prog.Structs {
		fmt.Fprintf(&b, "struct %s#%d {\n", st.SymbolName, st.Unique)
		for _, f := range st.Fields {
			fmt.Fprintf(&b, "  %s: %s\n", symbols.Name(f.Name), f.Ty)
		}
		b.WriteString("}\n")
	}
	for _, fn := range prog.Functions {
		dumpFunction(&b, fn, symbols)
	}
	return b.String()
}

func dumpFunction(b *strings.Builder, fn *Function, symbols *symbol.Table) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", symbols.Name(p.Name), p.Ty)
	}
	linkage := ""
	if fn.Linkage == ast.LinkageExternal {
		linkage = "extern "
	}
	fmt.Fprintf(b, "%sfn %s(%s) -> %s\n", linkage, symbols.Name(fn.Name), strings.Join(params, ", "), fn.Returns)
	b.WriteString(dumpStmt(fn.Body, "  ", symbols))
}

func dumpVar(v Var, symbols *symbol.Table) string {
	switch owner := v.(type) {
	case *SimpleVar:
		return symbols.Name(owner.Name)
	case *FieldVar:
		return fmt.Sprintf("%s.%s", dumpVar(owner.Owner, symbols), symbols.Name(owner.Field))
	case *SubScriptVar:
		return fmt.Sprintf("%s[%s]", dumpVar(owner.Owner, symbols), dumpExpr(owner.Index, symbols))
	default:
		return "?var"
	}
}

func dumpStmt(stmt Statement, indent string, symbols *symbol.Table) string {
	var b strings.Builder
	switch s := stmt.(type) {
	case *Block:
		b.WriteString(indent + "{\n")
		for _, inner := range s.Stmts {
			b.WriteString(dumpStmt(inner, indent+"  ", symbols))
		}
		b.WriteString(indent + "}\n")
	case *LetStmt:
		fmt.Fprintf(&b, "%slet %s: %s", indent, symbols.Name(s.Name), s.Ty)
		if s.Expr != nil {
			fmt.Fprintf(&b, " = %s", dumpExpr(*s.Expr, symbols))
		}
		b.WriteString(";\n")
	case *IfStmt:
		fmt.Fprintf(&b, "%sif %s\n", indent, dumpExpr(s.Cond, symbols))
		b.WriteString(dumpStmt(s.Then, indent, symbols))
		if s.Otherwise != nil {
			b.WriteString(indent + "else\n")
			b.WriteString(dumpStmt(s.Otherwise, indent, symbols))
		}
	case *WhileStmt:
		fmt.Fprintf(&b, "%swhile %s\n", indent, dumpExpr(s.Cond, symbols))
		b.WriteString(dumpStmt(s.Body, indent, symbols))
		if s.Incr != nil {
			fmt.Fprintf(&b, "%sincr %s;\n", indent, dumpExpr(*s.Incr, symbols))
		}
	case *Break:
		b.WriteString(indent + "break;\n")
	case *Continue:
		b.WriteString(indent + "continue;\n")
	case *ReturnStmt:
		fmt.Fprintf(&b, "%sreturn %s;\n", indent, dumpExpr(s.Expr, symbols))
	case *ExprStmt:
		fmt.Fprintf(&b, "%s%s;\n", indent, dumpExpr(s.Expr, symbols))
	default:
		fmt.Fprintf(&b, "%s?stmt\n", indent)
	}
	return b.String()
}

func dumpExpr(texpr TypedExpression, symbols *symbol.Table) string {
	switch e := texpr.Expr.(type) {
	case *Literal:
		return fmt.Sprintf("%v", e.Value.Number)
	case *ArrayLit:
		elems := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = dumpExpr(el, symbols)
		}
		return "[" + strings.Join(elems, ", ") + "]:" + texpr.Ty.String()
	case *Grouping:
		return "(" + dumpExpr(e.Expr, symbols) + ")"
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", dumpExpr(e.LHS, symbols), e.Op, dumpExpr(e.RHS, symbols))
	case *Unary:
		return fmt.Sprintf("(%s%s)", e.Op, dumpExpr(e.Expr, symbols))
	case *Cast:
		signed := "u"
		if e.Sign == 0 {
			signed = "i"
		}
		return fmt.Sprintf("(%s as %s%d)", dumpExpr(e.Expr, symbols), signed, int(e.Size))
	case *VarExpr:
		return dumpVar(e.Var, symbols) + ":" + texpr.Ty.String()
	case *Assign:
		return fmt.Sprintf("%s = %s", dumpVar(e.Var, symbols), dumpExpr(e.Expr, symbols))
	case *Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = dumpExpr(a, symbols)
		}
		return fmt.Sprintf("%s(%s)", symbols.Name(e.Callee), strings.Join(args, ", "))
	case *StructLit:
		fields := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = fmt.Sprintf("%s: %s", symbols.Name(f.Name), dumpExpr(f.Expr, symbols))
		}
		return fmt.Sprintf("%s{%s}", symbols.Name(e.Name), strings.Join(fields, ", "))
	default:
		return "?expr"
	}
}
