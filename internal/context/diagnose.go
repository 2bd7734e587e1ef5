package context

import (
	"fmt"

	"github.com/pkg/errors"

	"kr/internal/diagnostics"
	"kr/internal/eval"
	"kr/internal/frontend/ast"
	"kr/internal/frontend/lexer"
	"kr/internal/frontend/parser"
)

// Diagnose turns a stage error into a diagnostic for path. It returns nil
// for errors that are not stage errors (I/O failures and the like).
func Diagnose(path string, err error) *diagnostics.Diagnostic {
	var lexErr *lexer.Error
	var parseErr *parser.Error
	var evalErr *eval.Error

	switch {
	case errors.As(err, &lexErr):
		return lexical(path, lexErr)
	case errors.As(err, &parseErr):
		return syntax(path, parseErr)
	case errors.As(err, &evalErr):
		return runtime(path, evalErr)
	default:
		return nil
	}
}

func lexical(path string, err *lexer.Error) *diagnostics.Diagnostic {
	if err.Kind == lexer.NumberTooLarge {
		return diagnostics.NumberTooLarge(path, err.Loc(), err.Lexeme)
	}
	return diagnostics.InvalidCharacter(path, err.Loc(), err.Lexeme)
}

func syntax(path string, err *parser.Error) *diagnostics.Diagnostic {
	loc := err.Loc()
	found := err.Token.Describe()

	related := loc
	relatedText := ""
	if err.Related != nil {
		related = err.Related.Loc()
		relatedText = err.Related.Value
	}

	switch err.Kind {
	case parser.MissingIdentifier:
		return diagnostics.MissingIdentifier(path, loc, related, found)
	case parser.MissingEq:
		return diagnostics.MissingEq(path, loc, related, found)
	case parser.MissingOperand:
		return diagnostics.MissingOperand(path, loc, related, relatedText, found)
	case parser.UnclosedParen:
		return diagnostics.UnclosedParen(path, loc, related, found)
	case parser.TrailingTokens:
		return diagnostics.TrailingToken(path, loc, found)
	case parser.DivisionByZero:
		return diagnostics.DivisionByLiteralZero(path, loc, related)
	default:
		return diagnostics.ExpectedExpression(path, loc, found)
	}
}

func runtime(path string, err *eval.Error) *diagnostics.Diagnostic {
	switch err.Kind {
	case eval.UndefinedVariable:
		return diagnostics.UndefinedVariable(path, err.Loc(), err.Name)
	case eval.DivisionByZero:
		op, divisor := err.Loc(), err.Loc()
		if bin, ok := err.Node.(*ast.BinaryExpr); ok {
			op, divisor = &bin.OpPos, bin.Y.Loc()
		}
		return diagnostics.DivisionByZero(path, op, divisor)
	default:
		return diagnostics.Overflow(path, err.Loc(),
			fmt.Sprintf("%d %s %d does not fit in int64", err.X, err.Op, err.Y))
	}
}
