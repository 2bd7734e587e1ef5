package ast

import (
	"fmt"
	"io"
	"strings"
)

// Sprint renders an expression as a fully parenthesized S-expression,
// e.g. (+ 2 (* 3 4)). It is the format used by `kr ast` and debug logs.
func Sprint(expr Expression) string {
	var sb strings.Builder
	write(&sb, expr)
	return sb.String()
}

// Fprint writes the indented tree form of expr to w, one node per line.
func Fprint(w io.Writer, expr Expression) {
	dump(w, expr, 0)
}

func write(sb *strings.Builder, expr Expression) {
	switch e := expr.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *NumberLit:
		fmt.Fprintf(sb, "%d", e.Value)
	case *VarRef:
		sb.WriteString(e.Name)
	case *BinaryExpr:
		fmt.Fprintf(sb, "(%s ", e.Op)
		write(sb, e.X)
		sb.WriteByte(' ')
		write(sb, e.Y)
		sb.WriteByte(')')
	case *AssignExpr:
		fmt.Fprintf(sb, "(assume %s ", e.Name.Name)
		write(sb, e.Value)
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "<%T>", expr)
	}
}

func dump(w io.Writer, expr Expression, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := expr.(type) {
	case *NumberLit:
		fmt.Fprintf(w, "%sNumberLit %d @%s\n", indent, e.Value, e.Loc())
	case *VarRef:
		fmt.Fprintf(w, "%sVarRef %s @%s\n", indent, e.Name, e.Loc())
	case *BinaryExpr:
		fmt.Fprintf(w, "%sBinaryExpr %s @%s\n", indent, e.Op, e.Loc())
		dump(w, e.X, depth+1)
		dump(w, e.Y, depth+1)
	case *AssignExpr:
		fmt.Fprintf(w, "%sAssignExpr %s @%s\n", indent, e.Name.Name, e.Loc())
		dump(w, e.Value, depth+1)
	default:
		fmt.Fprintf(w, "%s<%T>\n", indent, expr)
	}
}
