package parser

import (
	"fmt"

	"kr/internal/frontend/lexer"
	"kr/internal/source"
)

// ErrorKind classifies syntax failures
type ErrorKind int

const (
	MissingIdentifier ErrorKind = iota // `assume` not followed by a name
	MissingEq                          // `assume x` not followed by `eq`
	MissingOperand                     // binary operator without a right operand
	MissingFactor                      // expected a number, name or `(`
	UnclosedParen                      // `(` without a matching `)`
	TrailingTokens                     // input continues after a complete program
	DivisionByZero                     // `/` by the literal 0
)

func (k ErrorKind) String() string {
	switch k {
	case MissingIdentifier:
		return "missing identifier"
	case MissingEq:
		return "missing 'eq'"
	case MissingOperand:
		return "missing operand"
	case MissingFactor:
		return "expected expression"
	case UnclosedParen:
		return "unclosed delimiter"
	case TrailingTokens:
		return "unexpected trailing token"
	case DivisionByZero:
		return "division by zero"
	default:
		return "syntax error"
	}
}

// Error is a syntax failure. Token is the token the parser stopped at;
// Related points at the token that explains it (the operator for
// MissingOperand, the opening paren for UnclosedParen, `assume` for
// MissingIdentifier/MissingEq).
type Error struct {
	Kind    ErrorKind
	Token   lexer.Token
	Related *lexer.Token
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingIdentifier:
		return fmt.Sprintf("%s: expected identifier after 'assume', found %s", e.Token.Start, e.Token.Describe())
	case MissingEq:
		return fmt.Sprintf("%s: expected 'eq' after variable name, found %s", e.Token.Start, e.Token.Describe())
	case MissingOperand:
		op := "operator"
		if e.Related != nil {
			op = "'" + e.Related.Value + "'"
		}
		return fmt.Sprintf("%s: expected operand after %s, found %s", e.Token.Start, op, e.Token.Describe())
	case MissingFactor:
		return fmt.Sprintf("%s: expected expression, found %s", e.Token.Start, e.Token.Describe())
	case UnclosedParen:
		return fmt.Sprintf("%s: expected ')', found %s", e.Token.Start, e.Token.Describe())
	case TrailingTokens:
		return fmt.Sprintf("%s: unexpected %s after expression", e.Token.Start, e.Token.Describe())
	case DivisionByZero:
		return fmt.Sprintf("%s: division by literal zero", e.Token.Start)
	default:
		return fmt.Sprintf("%s: syntax error at %s", e.Token.Start, e.Token.Describe())
	}
}

// Loc returns the location of the offending token.
func (e *Error) Loc() *source.Location {
	return e.Token.Loc()
}
