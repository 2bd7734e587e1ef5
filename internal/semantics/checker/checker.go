package checker

import (
	"fmt"

	"kr/internal/diagnostics"
	"kr/internal/eval"
	"kr/internal/frontend/ast"
)

// Checker folds constant sub-expressions and warns about the ones that are
// certain to fail at runtime. It never reports errors and never rewrites
// the tree.
type Checker struct {
	currentFile string
	overflow    eval.OverflowMode
	diagnostics *diagnostics.DiagnosticBag
	warnings    int
}

// New creates a checker reporting into bag. mode decides whether an
// overflowing constant is a problem at all.
func New(file string, bag *diagnostics.DiagnosticBag, mode eval.OverflowMode) *Checker {
	return &Checker{
		currentFile: file,
		overflow:    mode,
		diagnostics: bag,
	}
}

// Run checks one expression and returns the number of warnings it added.
func Run(file string, expr ast.Expression, bag *diagnostics.DiagnosticBag, mode eval.OverflowMode) int {
	c := New(file, bag, mode)
	c.Check(expr)
	return c.warnings
}

func (c *Checker) Check(expr ast.Expression) {
	if expr == nil {
		return
	}
	c.fold(expr)
}

// fold returns the value of expr when it is constant. A sub-expression that
// already produced a warning is treated as non-constant so one fault is only
// reported once.
func (c *Checker) fold(expr ast.Expression) (int64, bool) {
	switch n := expr.(type) {
	case *ast.NumberLit:
		return n.Value, true
	case *ast.VarRef:
		return 0, false
	case *ast.AssignExpr:
		return c.fold(n.Value)
	case *ast.BinaryExpr:
		return c.foldBinary(n)
	default:
		return 0, false
	}
}

func (c *Checker) foldBinary(n *ast.BinaryExpr) (int64, bool) {
	x, xok := c.fold(n.X)
	y, yok := c.fold(n.Y)

	// A zero divisor fails whatever the dividend is.
	if n.Op == ast.DIV && yok && y == 0 {
		c.warn(diagnostics.ConstDivisionByZero(c.currentFile, n.Y.Loc()).
			WithSecondaryLabel(c.currentFile, &n.OpPos, "division here"))
		return 0, false
	}
	if !xok || !yok {
		return 0, false
	}

	r, overflow := eval.Apply(n.Op, x, y)
	if overflow && c.overflow == eval.OverflowChecked {
		c.warn(diagnostics.ConstOverflow(c.currentFile, n.Loc(),
			fmt.Sprintf("%d %s %d does not fit in int64", x, n.Op, y)))
		return 0, false
	}
	return r, true
}

func (c *Checker) warn(d *diagnostics.Diagnostic) {
	c.warnings++
	c.diagnostics.Add(d)
}
