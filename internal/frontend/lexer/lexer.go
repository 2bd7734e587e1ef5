package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"kr/internal/source"
)

// ============================================================================
// LEXER - Source text to tokens, on demand
// ============================================================================
//
// The lexer is pull-based: the parser calls Next whenever it needs another
// token. A single forward-only cursor is kept; there is no backtracking.

// ErrorKind classifies lexical failures.
type ErrorKind int

const (
	InvalidCharacter ErrorKind = iota
	NumberTooLarge
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "invalid character"
	case NumberTooLarge:
		return "integer literal too large"
	default:
		return "lexical error"
	}
}

// Error describes why a token was marked INVALID_TOKEN.
type Error struct {
	Kind   ErrorKind
	Lexeme string
	Start  source.Position
	End    source.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Start, e.Kind, e.Lexeme)
}

// Loc returns the span of the offending lexeme.
func (e *Error) Loc() *source.Location {
	return source.NewLocation(&e.Start, &e.End)
}

type Lexer struct {
	input string
	pos   source.Position
}

// New creates a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{
		input: src,
		pos:   source.Position{Line: 1, Column: 1},
	}
}

// Next returns the next token. Once the input is exhausted it keeps
// returning EOF_TOKEN.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	if l.atEnd() {
		return Token{Kind: EOF_TOKEN, Start: l.pos, End: l.pos}
	}

	start := l.pos
	r, _ := l.peek()

	if kind, ok := symbols[r]; ok {
		l.advance()
		return l.token(kind, start)
	}

	switch {
	case isDigit(r):
		return l.number(start)
	case isIdentStart(r):
		return l.word(start)
	}

	l.advance()
	tok := l.token(INVALID_TOKEN, start)
	tok.Err = &Error{Kind: InvalidCharacter, Lexeme: tok.Value, Start: start, End: tok.End}
	return tok
}

// Tokenize drains a fresh lexer over src, including the final EOF_TOKEN.
func Tokenize(src string) []Token {
	l := New(src)
	tokens := make([]Token, 0)
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == EOF_TOKEN {
			return tokens
		}
	}
}

func (l *Lexer) number(start source.Position) Token {
	for !l.atEnd() {
		r, _ := l.peek()
		if !isDigit(r) {
			break
		}
		l.advance()
	}

	tok := l.token(NUMBER_TOKEN, start)
	n, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		tok.Kind = INVALID_TOKEN
		tok.Err = &Error{Kind: NumberTooLarge, Lexeme: tok.Value, Start: start, End: tok.End}
		return tok
	}
	tok.Number = n
	return tok
}

// word scans a whole identifier before checking the keyword table, so
// "assumer" is never split into "assume" + "r".
func (l *Lexer) word(start source.Position) Token {
	for !l.atEnd() {
		r, _ := l.peek()
		if !isIdentPart(r) {
			break
		}
		l.advance()
	}

	tok := l.token(IDENTIFIER_TOKEN, start)
	if kw, ok := keywords[tok.Value]; ok {
		tok.Kind = kw
	}
	return tok
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		r, _ := l.peek()
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return
		}
		l.advance()
	}
}

func (l *Lexer) token(kind TOKEN, start source.Position) Token {
	return Token{
		Kind:  kind,
		Value: l.input[start.Offset:l.pos.Offset],
		Start: start,
		End:   l.pos,
	}
}

func (l *Lexer) atEnd() bool {
	return l.pos.Offset >= len(l.input)
}

func (l *Lexer) peek() (rune, int) {
	return utf8.DecodeRuneInString(l.input[l.pos.Offset:])
}

func (l *Lexer) advance() {
	r, size := l.peek()
	l.pos = l.pos.Advance(r, size)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
