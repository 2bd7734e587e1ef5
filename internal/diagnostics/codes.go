package diagnostics

// Lexer
const (
	ErrInvalidCharacter = "L0001"
	ErrNumberTooLarge   = "L0002"
)

// Parser
const (
	ErrMissingIdentifier = "P0001"
	ErrMissingEq         = "P0002"
	ErrMissingOperand    = "P0003"
	ErrExpectedExpr      = "P0004"
	ErrUnclosedParen     = "P0005"
	ErrTrailingToken     = "P0006"
	ErrDivByLiteralZero  = "P0007"
)

// Evaluator
const (
	ErrUndefinedVariable = "E0001"
	ErrDivisionByZero    = "E0002"
	ErrOverflow          = "E0003"
)

// Checker warnings
const (
	WarnConstDivByZero = "W0001"
	WarnConstOverflow  = "W0002"
)
