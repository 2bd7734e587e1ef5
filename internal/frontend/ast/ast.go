package ast

import "kr/internal/source"

// Node is implemented by every syntax tree node
type Node interface {
	INode()
	Loc() *source.Location
}

// Expression is the only node category in the language; a program is one
// Expression.
type Expression interface {
	Node
	Expr()
}

type Operator int

const (
	ADD Operator = iota
	SUB
	MUL
	DIV
)

func (op Operator) String() string {
	switch op {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	default:
		return "?"
	}
}

// NumberLit is an integer literal
type NumberLit struct {
	Value int64
	source.Location
}

func (n *NumberLit) INode()                {} // Implements Node interface
func (n *NumberLit) Expr()                 {} // Expr is a marker interface for all expressions
func (n *NumberLit) Loc() *source.Location { return &n.Location }

// VarRef is a reference to a variable by name
type VarRef struct {
	Name string
	source.Location
}

func (v *VarRef) INode()                {} // Implements Node interface
func (v *VarRef) Expr()                 {} // Expr is a marker interface for all expressions
func (v *VarRef) Loc() *source.Location { return &v.Location }

// BinaryExpr is X Op Y. OpPos locates the operator token.
type BinaryExpr struct {
	X     Expression
	Op    Operator
	OpPos source.Location
	Y     Expression
	source.Location
}

func (b *BinaryExpr) INode()                {} // Implements Node interface
func (b *BinaryExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (b *BinaryExpr) Loc() *source.Location { return &b.Location }

// AssignExpr is `assume Name eq Value`. It evaluates to the assigned value.
type AssignExpr struct {
	Name  *VarRef
	Value Expression
	source.Location
}

func (a *AssignExpr) INode()                {} // Implements Node interface
func (a *AssignExpr) Expr()                 {} // Expr is a marker interface for all expressions
func (a *AssignExpr) Loc() *source.Location { return &a.Location }
