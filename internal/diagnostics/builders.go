package diagnostics

import (
	"kr/internal/source"
)

// Lexer

func InvalidCharacter(filepath string, loc *source.Location, char string) *Diagnostic {
	return NewError("invalid character '"+char+"'").
		WithCode(ErrInvalidCharacter).
		WithPrimaryLabel(filepath, loc, "not part of the language").
		WithHelp("only digits, names, + - * / ( ) and the keywords 'assume' and 'eq' are allowed")
}

func NumberTooLarge(filepath string, loc *source.Location, lexeme string) *Diagnostic {
	return NewError("integer literal is too large").
		WithCode(ErrNumberTooLarge).
		WithPrimaryLabel(filepath, loc, "does not fit in a signed 64-bit integer").
		WithNote("the largest literal is 9223372036854775807")
}

// Parser

func MissingIdentifier(filepath string, loc, assumeLoc *source.Location, found string) *Diagnostic {
	return NewError("expected identifier after 'assume', found "+found).
		WithCode(ErrMissingIdentifier).
		WithPrimaryLabel(filepath, loc, "expected a variable name here").
		WithSecondaryLabel(filepath, assumeLoc, "assignment starts here").
		WithHelp("write `assume <name> eq <expression>`")
}

func MissingEq(filepath string, loc, assumeLoc *source.Location, found string) *Diagnostic {
	return NewError("expected 'eq', found "+found).
		WithCode(ErrMissingEq).
		WithPrimaryLabel(filepath, loc, "expected 'eq' here").
		WithSecondaryLabel(filepath, assumeLoc, "assignment starts here").
		WithHelp("write `assume <name> eq <expression>`")
}

func MissingOperand(filepath string, loc, opLoc *source.Location, op, found string) *Diagnostic {
	return NewError("expected operand after '"+op+"', found "+found).
		WithCode(ErrMissingOperand).
		WithPrimaryLabel(filepath, loc, "expected a number, name or '(' here").
		WithSecondaryLabel(filepath, opLoc, "operator needs a right-hand side")
}

func ExpectedExpression(filepath string, loc *source.Location, found string) *Diagnostic {
	return NewError("expected expression, found "+found).
		WithCode(ErrExpectedExpr).
		WithPrimaryLabel(filepath, loc, "expected a number, name or '(' here")
}

func UnclosedParen(filepath string, loc, openLoc *source.Location, found string) *Diagnostic {
	return NewError("expected ')', found "+found).
		WithCode(ErrUnclosedParen).
		WithPrimaryLabel(filepath, loc, "expected ')' here").
		WithSecondaryLabel(filepath, openLoc, "unclosed delimiter").
		WithHelp("add a closing parenthesis")
}

func TrailingToken(filepath string, loc *source.Location, found string) *Diagnostic {
	return NewError("unexpected "+found+" after expression").
		WithCode(ErrTrailingToken).
		WithPrimaryLabel(filepath, loc, "expected end of input").
		WithNote("a program is a single expression or assignment")
}

func DivisionByLiteralZero(filepath string, loc, opLoc *source.Location) *Diagnostic {
	return NewError("division by zero").
		WithCode(ErrDivByLiteralZero).
		WithPrimaryLabel(filepath, loc, "divisor is the literal 0").
		WithSecondaryLabel(filepath, opLoc, "division here")
}

// Evaluator

func UndefinedVariable(filepath string, loc *source.Location, name string) *Diagnostic {
	return NewError("undefined variable '"+name+"'").
		WithCode(ErrUndefinedVariable).
		WithPrimaryLabel(filepath, loc, "not bound in this session").
		WithHelp("bind it first with `assume " + name + " eq <expression>`")
}

func DivisionByZero(filepath string, opLoc, divisorLoc *source.Location) *Diagnostic {
	return NewError("division by zero").
		WithCode(ErrDivisionByZero).
		WithPrimaryLabel(filepath, divisorLoc, "this evaluates to 0").
		WithSecondaryLabel(filepath, opLoc, "division here")
}

func Overflow(filepath string, loc *source.Location, detail string) *Diagnostic {
	return NewError("integer overflow").
		WithCode(ErrOverflow).
		WithPrimaryLabel(filepath, loc, detail).
		WithNote("arithmetic is checked signed 64-bit; use --overflow=wrap for wrapping")
}

// Checker

func ConstDivisionByZero(filepath string, loc *source.Location) *Diagnostic {
	return NewWarning("this division will always fail").
		WithCode(WarnConstDivByZero).
		WithPrimaryLabel(filepath, loc, "divisor is a constant expression equal to 0")
}

func ConstOverflow(filepath string, loc *source.Location, detail string) *Diagnostic {
	return NewWarning("constant expression overflows").
		WithCode(WarnConstOverflow).
		WithPrimaryLabel(filepath, loc, detail)
}
