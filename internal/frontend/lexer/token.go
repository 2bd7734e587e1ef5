package lexer

import (
	"fmt"

	"kr/internal/source"
)

type TOKEN string

const (
	ASSUME_TOKEN     TOKEN = "assume"
	EQ_TOKEN         TOKEN = "eq"
	PLUS_TOKEN       TOKEN = "+"
	MINUS_TOKEN      TOKEN = "-"
	MUL_TOKEN        TOKEN = "*"
	DIV_TOKEN        TOKEN = "/"
	OPEN_PAREN       TOKEN = "("
	CLOSE_PAREN      TOKEN = ")"
	NUMBER_TOKEN     TOKEN = "number"
	IDENTIFIER_TOKEN TOKEN = "identifier"
	EOF_TOKEN        TOKEN = "end of input"
	INVALID_TOKEN    TOKEN = "invalid"
)

var keywords = map[string]TOKEN{
	"assume": ASSUME_TOKEN,
	"eq":     EQ_TOKEN,
}

var symbols = map[rune]TOKEN{
	'+': PLUS_TOKEN,
	'-': MINUS_TOKEN,
	'*': MUL_TOKEN,
	'/': DIV_TOKEN,
	'(': OPEN_PAREN,
	')': CLOSE_PAREN,
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// Token is one lexical unit. Number is only meaningful for NUMBER_TOKEN
// and Err is only set for INVALID_TOKEN.
type Token struct {
	Kind   TOKEN
	Value  string // the lexeme
	Number int64
	Err    *Error
	Start  source.Position
	End    source.Position
}

// Loc returns the token span as a location.
func (t Token) Loc() *source.Location {
	return source.NewLocation(&t.Start, &t.End)
}

func (t Token) String() string {
	switch t.Kind {
	case NUMBER_TOKEN, IDENTIFIER_TOKEN, INVALID_TOKEN:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
	default:
		return string(t.Kind)
	}
}

// Describe renders the token the way diagnostics refer to it.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF_TOKEN:
		return "end of input"
	case NUMBER_TOKEN:
		return "number " + t.Value
	case IDENTIFIER_TOKEN:
		return "identifier '" + t.Value + "'"
	default:
		return "'" + t.Value + "'"
	}
}
