package eval

import (
	"fmt"

	"kr/internal/frontend/ast"
	"kr/internal/source"
)

type ErrorKind int

const (
	UndefinedVariable ErrorKind = iota
	DivisionByZero
	Overflow
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "undefined variable"
	case DivisionByZero:
		return "division by zero"
	case Overflow:
		return "integer overflow"
	default:
		return "runtime error"
	}
}

// Error is a runtime failure. Node is the expression that failed: the
// VarRef for UndefinedVariable, the BinaryExpr otherwise.
type Error struct {
	Kind ErrorKind
	Name string // set for UndefinedVariable
	Op   ast.Operator
	X, Y int64 // operands for DivisionByZero and Overflow
	Node ast.Expression
}

func (e *Error) Error() string {
	at := e.Loc().String()
	switch e.Kind {
	case UndefinedVariable:
		return fmt.Sprintf("%s: undefined variable '%s'", at, e.Name)
	case DivisionByZero:
		return fmt.Sprintf("%s: division by zero", at)
	case Overflow:
		return fmt.Sprintf("%s: integer overflow in %d %s %d", at, e.X, e.Op, e.Y)
	default:
		return fmt.Sprintf("%s: %s", at, e.Kind)
	}
}

// Loc returns the location of the failing node.
func (e *Error) Loc() *source.Location {
	if e.Node == nil {
		return nil
	}
	return e.Node.Loc()
}
