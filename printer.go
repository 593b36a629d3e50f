// printer.go — compact S-expression dumps of the tree.
//
// PrintStmt/PrintExpr render nodes as single-line S-expressions, e.g.
//
//	(binop "+" (int 1) (binop "*" (int 2) (int 3)))
//
// The format is for diagnostics and tests: it makes tree shapes readable
// and diffable, and is not meant to round-trip back through the parser.
package stix

import (
	"fmt"
	"strconv"
	"strings"
)

// PrintBlock renders a block as `(block stmt ...)`.
func PrintBlock(block *Block) string {
	var b strings.Builder
	b.WriteString("(block")
	for i := range block.Stmts {
		b.WriteByte(' ')
		b.WriteString(PrintStmt(block.Stmts[i].Value))
	}
	b.WriteByte(')')
	return b.String()
}

// PrintStmt renders a single statement.
func PrintStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case DeclarationStmt:
		var b strings.Builder
		b.WriteString("(declare")
		for i := range s.Decls {
			b.WriteByte(' ')
			b.WriteString(printDeclaration(&s.Decls[i].Value))
		}
		b.WriteByte(')')
		return b.String()
	case FuncDeclStmt:
		d := &s.Decl.Value
		return fmt.Sprintf("(fn %s %s %s %s)",
			d.Ident.Value.Name, printArgs(d.Args), printRetType(d.RetTypeExpr), PrintBlock(&d.Body.Value))
	case ExternFuncStmt:
		d := &s.Decl.Value
		return fmt.Sprintf("(extern %s %s %s)",
			d.Ident.Value.Name, printArgs(d.Args), printRetType(d.RetTypeExpr))
	case ExprStmt:
		return PrintExpr(s.Expr.Value)
	}
	return "(?)"
}

func printDeclaration(d *Declaration) string {
	ty := "_"
	if d.TypeExpr != nil {
		ty = d.TypeExpr.Value.Name
	}
	return fmt.Sprintf("(%s %s %s %s)", d.Mutability, d.Ident.Value.Name, ty, PrintExpr(d.Value.Value))
}

func printArgs(args []Node[ParenArgument]) string {
	var b strings.Builder
	b.WriteByte('(')
	for i := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s:%s", args[i].Value.Ident.Value.Name, args[i].Value.TypeExpr.Value.Name)
	}
	b.WriteByte(')')
	return b.String()
}

func printRetType(expr *Node[TypeExpr]) string {
	if expr == nil {
		return "()"
	}
	return expr.Value.Name
}

// PrintExpr renders a single expression.
func PrintExpr(expr Expr) string {
	switch e := expr.(type) {
	case LiteralExpr:
		return printLiteral(e.Lit.Value)
	case IdentExpr:
		return fmt.Sprintf("(id %s)", e.Ident.Value.Name)
	case BinaryExpr:
		return fmt.Sprintf("(binop %q %s %s)", e.Op.String(), PrintExpr(e.Lhs.Value), PrintExpr(e.Rhs.Value))
	case UnaryExpr:
		if e.Op == Index {
			return fmt.Sprintf("(index %s %s)", PrintExpr(e.Operand.Value), PrintExpr(e.Index.Value))
		}
		return fmt.Sprintf("(unop %q %s)", e.Op.String(), PrintExpr(e.Operand.Value))
	case BlockExpr:
		return PrintBlock(&e.Block.Value)
	case FuncCall:
		var b strings.Builder
		fmt.Fprintf(&b, "(call %s", e.Callee.Value.Name)
		for i := range e.Args {
			b.WriteByte(' ')
			b.WriteString(PrintExpr(e.Args[i].Value))
		}
		b.WriteByte(')')
		return b.String()
	}
	return "(?)"
}

func printLiteral(lit Literal) string {
	switch l := lit.(type) {
	case IntLit:
		return fmt.Sprintf("(int %d)", l.Value)
	case FloatLit:
		return fmt.Sprintf("(float %s)", strconv.FormatFloat(l.Value, 'g', -1, 64))
	case BoolLit:
		return fmt.Sprintf("(bool %v)", l.Value)
	case CharLit:
		return fmt.Sprintf("(char %q)", l.Value)
	case StringLit:
		return fmt.Sprintf("(str %q)", l.Value)
	case ArrayLit:
		var b strings.Builder
		b.WriteString("(array")
		for i := range l.Elems {
			b.WriteByte(' ')
			b.WriteString(PrintExpr(l.Elems[i].Value))
		}
		b.WriteByte(')')
		return b.String()
	}
	return "(?)"
}
