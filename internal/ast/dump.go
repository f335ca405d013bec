package ast

import (
	"fmt"
	"strings"

	"github.com/velalang/velac/internal/symbol"
)

// Dump renders prog as an indented structural tree, in the manner of
// ailang's formatCore/formatTyped REPL dumpers, for the driver's -d flag
// and for tests that want to assert on parse shape without constructing
// expected trees by hand.
func Dump(prog *Program, symbols *symbol.Table) string {
	var b strings.Builder
	for _, alias := range prog.TypeAliases {
		fmt.Fprintf(&b, "type %s = %s;\n", symbols.Name(alias.Name), dumpTy(alias.Ty, symbols))
	}
	for _, st := range prog.Structs {
		fmt.Fprintf(&b, "struct %s {\n", symbols.Name(st.Name))
		for _, f := range st.Fields {
			fmt.Fprintf(&b, "  %s: %s\n", symbols.Name(f.Name), dumpTy(f.Ty, symbols))
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
		params[i] = fmt.Sprintf("%s: %s", symbols.Name(p.Name), dumpTy(p.Ty, symbols))
	}
	ret := ""
	if fn.Returns != nil {
		ret = " -> " + dumpTy(fn.Returns, symbols)
	}
	linkage := ""
	if fn.Linkage == LinkageExternal {
		linkage = "extern "
	}
	fmt.Fprintf(b, "%sfn %s(%s)%s\n", linkage, symbols.Name(fn.Name), strings.Join(params, ", "), ret)
	b.WriteString(dumpStmt(fn.Body, "  ", symbols))
}

func dumpTy(ty Ty, symbols *symbol.Table) string {
	switch t := ty.(type) {
	case *NameTy:
		return symbols.Name(t.Name)
	case *AppliedTy:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = dumpTy(a, symbols)
		}
		return fmt.Sprintf("%s<%s>", symbols.Name(t.Name), strings.Join(args, ", "))
	case *ArrayTy:
		return fmt.Sprintf("[%s; %d]", dumpTy(t.Elem, symbols), t.Len)
	default:
		return "?ty"
	}
}

func dumpStmt(stmt Statement, indent string, symbols *symbol.Table) string {
	var b strings.Builder
	switch s := stmt.(type) {
	case *BlockStmt:
		b.WriteString(indent + "{\n")
		for _, inner := range s.Stmts {
			b.WriteString(dumpStmt(inner, indent+"  ", symbols))
		}
		b.WriteString(indent + "}\n")
	case *LetStmt:
		fmt.Fprintf(&b, "%slet %s", indent, symbols.Name(s.Name))
		if s.Ty != nil {
			fmt.Fprintf(&b, ": %s", dumpTy(s.Ty, symbols))
		}
		if s.Init != nil {
			fmt.Fprintf(&b, " = %s", dumpExpr(s.Init, symbols))
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
	case *ForStmt:
		fmt.Fprintf(&b, "%sfor (...)\n", indent)
		b.WriteString(dumpStmt(s.Body, indent, symbols))
	case *BreakStmt:
		b.WriteString(indent + "break;\n")
	case *ContinueStmt:
		b.WriteString(indent + "continue;\n")
	case *ReturnStmt:
		if s.Expr != nil {
			fmt.Fprintf(&b, "%sreturn %s;\n", indent, dumpExpr(s.Expr, symbols))
		} else {
			b.WriteString(indent + "return;\n")
		}
	case *ExprStmt:
		fmt.Fprintf(&b, "%s%s;\n", indent, dumpExpr(s.Expr, symbols))
	default:
		fmt.Fprintf(&b, "%s?stmt\n", indent)
	}
	return b.String()
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

func dumpExpr(expr Expression, symbols *symbol.Table) string {
	switch e := expr.(type) {
	case *Literal:
		switch e.Kind {
		case LitNumber:
			return fmt.Sprintf("%d", e.Number)
		case LitString:
			return fmt.Sprintf("%q", e.Str)
		case LitChar:
			return fmt.Sprintf("%q", rune(e.Char))
		case LitTrue:
			return "true"
		case LitFalse:
			return "false"
		default:
			return "nil"
		}
	case *ArrayLit:
		elems := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = dumpExpr(el, symbols)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *Grouping:
		return "(" + dumpExpr(e.Expr, symbols) + ")"
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", dumpExpr(e.LHS, symbols), e.Op, dumpExpr(e.RHS, symbols))
	case *Unary:
		return fmt.Sprintf("(%s%s)", e.Op, dumpExpr(e.Expr, symbols))
	case *Cast:
		return fmt.Sprintf("(%s as %s)", dumpExpr(e.Expr, symbols), dumpTy(e.To, symbols))
	case *VarExpr:
		return dumpVar(e.Var, symbols)
	case *Assign:
		return fmt.Sprintf("%s = %s", dumpVar(e.Var, symbols), dumpExpr(e.Expr, symbols))
	case *Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = dumpExpr(a, symbols)
		}
		targs := ""
		if len(e.TypeArgs) > 0 {
			tys := make([]string, len(e.TypeArgs))
			for i, t := range e.TypeArgs {
				tys[i] = dumpTy(t, symbols)
			}
			targs = "<" + strings.Join(tys, ", ") + ">"
		}
		return fmt.Sprintf("%s%s(%s)", symbols.Name(e.Callee), targs, strings.Join(args, ", "))
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
