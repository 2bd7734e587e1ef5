// Package eval walks expression trees and computes their int64 value.
//
// An Evaluator owns one Environment. Successive calls to Evaluate see the
// bindings made by earlier assignments, which is what the REPL relies on.
// An Evaluator is not safe for concurrent use.
package eval

import (
	"fmt"

	"go.uber.org/zap"

	"kr/internal/frontend/ast"
)

type Evaluator struct {
	env      *Environment
	overflow OverflowMode
	log      *zap.Logger
}

type Option func(*Evaluator)

// WithOverflow sets the overflow policy for every operator.
func WithOverflow(mode OverflowMode) Option {
	return func(e *Evaluator) { e.overflow = mode }
}

// WithLogger traces assignments and failures at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an evaluator with an empty environment.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		env:      NewEnvironment(),
		overflow: OverflowChecked,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Environment exposes the evaluator's bindings.
func (e *Evaluator) Environment() *Environment {
	return e.env
}

// Overflow returns the active overflow policy.
func (e *Evaluator) Overflow() OverflowMode {
	return e.overflow
}

// Assign binds name to v, overwriting any earlier binding.
func (e *Evaluator) Assign(name string, v int64) {
	e.env.Set(name, v)
	e.log.Debug("assign", zap.String("name", name), zap.Int64("value", v))
}

// Evaluate computes the value of expr. Failures are returned as *Error.
func (e *Evaluator) Evaluate(expr ast.Expression) (int64, error) {
	v, err := e.eval(expr)
	if err != nil {
		e.log.Debug("evaluation failed", zap.Error(err))
		return 0, err
	}
	return v, nil
}

func (e *Evaluator) eval(expr ast.Expression) (int64, error) {
	switch n := expr.(type) {
	case *ast.NumberLit:
		return n.Value, nil

	case *ast.VarRef:
		v, ok := e.env.Lookup(n.Name)
		if !ok {
			return 0, &Error{Kind: UndefinedVariable, Name: n.Name, Node: n}
		}
		return v, nil

	case *ast.BinaryExpr:
		x, err := e.eval(n.X)
		if err != nil {
			return 0, err
		}
		y, err := e.eval(n.Y)
		if err != nil {
			return 0, err
		}
		return e.binary(n, x, y)

	case *ast.AssignExpr:
		v, err := e.eval(n.Value)
		if err != nil {
			return 0, err
		}
		e.Assign(n.Name.Name, v)
		return v, nil

	default:
		return 0, fmt.Errorf("eval: unsupported node %T", expr)
	}
}

func (e *Evaluator) binary(n *ast.BinaryExpr, x, y int64) (int64, error) {
	if n.Op == ast.DIV && y == 0 {
		return 0, &Error{Kind: DivisionByZero, Op: n.Op, X: x, Y: y, Node: n}
	}

	r, overflow := Apply(n.Op, x, y)
	if overflow && e.overflow == OverflowChecked {
		return 0, &Error{Kind: Overflow, Op: n.Op, X: x, Y: y, Node: n}
	}
	return r, nil
}
