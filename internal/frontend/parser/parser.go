package parser

import (
	"kr/internal/frontend/ast"
	"kr/internal/frontend/lexer"
	"kr/internal/source"
)

// ============================================================================
// PARSER - Token stream to AST
// ============================================================================
//
// Grammar, lowest precedence first:
//
//	program    := assignment EOF
//	assignment := "assume" identifier "eq" expr | expr
//	expr       := term (("+"|"-") term)*
//	term       := factor (("*"|"/") factor)*
//	factor     := number | identifier | "(" expr ")"
//
// The parser pulls tokens from the lexer one at a time and always holds
// exactly one lookahead token. Parsing stops at the first failure.

// Parser holds the state for parsing one program.
type Parser struct {
	lexer    *lexer.Lexer
	current  lexer.Token
	previous lexer.Token
}

// New creates a parser and reads the first lookahead token.
func New(lx *lexer.Lexer) *Parser {
	p := &Parser{lexer: lx}
	p.current = lx.Next()
	return p
}

// ParseString is a convenience wrapper around New(lexer.New(src)).Parse().
func ParseString(src string) (ast.Expression, error) {
	return New(lexer.New(src)).Parse()
}

// Parse parses one program. The error is a *lexer.Error when an invalid
// token was reached and a *Error for grammar violations.
func (p *Parser) Parse() (ast.Expression, error) {
	expr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}

	if !p.check(lexer.EOF_TOKEN) {
		if err := p.invalid(); err != nil {
			return nil, err
		}
		return nil, &Error{Kind: TrailingTokens, Token: p.current}
	}

	return expr, nil
}

// parseAssignment: "assume" identifier "eq" expr | expr
func (p *Parser) parseAssignment() (ast.Expression, error) {
	if !p.check(lexer.ASSUME_TOKEN) {
		return p.parseExpr()
	}

	assume := p.advance()

	if !p.check(lexer.IDENTIFIER_TOKEN) {
		return nil, p.fail(MissingIdentifier, &assume)
	}
	nameTok := p.advance()
	name := &ast.VarRef{
		Name:     nameTok.Value,
		Location: *source.NewLocation(&nameTok.Start, &nameTok.End),
	}

	if !p.check(lexer.EQ_TOKEN) {
		return nil, p.fail(MissingEq, &assume)
	}
	p.advance()

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.AssignExpr{
		Name:     name,
		Value:    value,
		Location: p.makeLocation(assume.Start),
	}, nil
}

// parseExpr: term (("+"|"-") term)*
func (p *Parser) parseExpr() (ast.Expression, error) {
	return p.parseAdditive()
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.PLUS_TOKEN, lexer.MINUS_TOKEN) {
		op := p.previous
		right, err := p.parseOperand(op, p.parseMultiplicative)
		if err != nil {
			return nil, err
		}
		left = p.binary(left, op, right)
	}

	return left, nil
}

// parseMultiplicative: factor (("*"|"/") factor)*
func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.MUL_TOKEN, lexer.DIV_TOKEN) {
		op := p.previous
		operand := p.current
		right, err := p.parseOperand(op, p.parsePrimary)
		if err != nil {
			return nil, err
		}

		// Only an immediate literal zero is rejected here; a zero that comes
		// from a variable or a parenthesized group is caught at runtime.
		if op.Kind == lexer.DIV_TOKEN && operand.Kind == lexer.NUMBER_TOKEN && operand.Number == 0 {
			return nil, &Error{Kind: DivisionByZero, Token: operand, Related: &op}
		}

		left = p.binary(left, op, right)
	}

	return left, nil
}

// parseOperand parses the right-hand side of a binary operator.
func (p *Parser) parseOperand(op lexer.Token, next func() (ast.Expression, error)) (ast.Expression, error) {
	if !p.startsFactor() {
		return nil, p.fail(MissingOperand, &op)
	}
	return next()
}

// parsePrimary: number | identifier | "(" expr ")"
func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.current

	switch tok.Kind {
	case lexer.NUMBER_TOKEN:
		p.advance()
		return &ast.NumberLit{
			Value:    tok.Number,
			Location: *source.NewLocation(&tok.Start, &tok.End),
		}, nil

	case lexer.IDENTIFIER_TOKEN:
		p.advance()
		return &ast.VarRef{
			Name:     tok.Value,
			Location: *source.NewLocation(&tok.Start, &tok.End),
		}, nil

	case lexer.OPEN_PAREN:
		open := p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.check(lexer.CLOSE_PAREN) {
			return nil, p.fail(UnclosedParen, &open)
		}
		p.advance()
		return expr, nil

	default:
		return nil, p.fail(MissingFactor, nil)
	}
}

func (p *Parser) binary(left ast.Expression, op lexer.Token, right ast.Expression) *ast.BinaryExpr {
	return &ast.BinaryExpr{
		X:        left,
		Op:       operatorFor(op.Kind),
		OpPos:    *op.Loc(),
		Y:        right,
		Location: source.Span(left.Loc(), right.Loc()),
	}
}

func operatorFor(kind lexer.TOKEN) ast.Operator {
	switch kind {
	case lexer.PLUS_TOKEN:
		return ast.ADD
	case lexer.MINUS_TOKEN:
		return ast.SUB
	case lexer.MUL_TOKEN:
		return ast.MUL
	default:
		return ast.DIV
	}
}

// Helper methods

func (p *Parser) advance() lexer.Token {
	p.previous = p.current
	if p.current.Kind != lexer.EOF_TOKEN {
		p.current = p.lexer.Next()
	}
	return p.previous
}

func (p *Parser) startsFactor() bool {
	return p.check(lexer.NUMBER_TOKEN) || p.check(lexer.IDENTIFIER_TOKEN) || p.check(lexer.OPEN_PAREN)
}

func (p *Parser) check(kind lexer.TOKEN) bool {
	return p.current.Kind == kind
}

func (p *Parser) match(kinds ...lexer.TOKEN) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

// invalid returns the lexical error carried by the lookahead, if any.
func (p *Parser) invalid() error {
	if p.current.Kind == lexer.INVALID_TOKEN && p.current.Err != nil {
		return p.current.Err
	}
	return nil
}

// fail builds a failure at the lookahead token. An invalid lookahead is
// reported as the lexical error it carries instead.
func (p *Parser) fail(kind ErrorKind, related *lexer.Token) error {
	if err := p.invalid(); err != nil {
		return err
	}
	return &Error{Kind: kind, Token: p.current, Related: related}
}

// makeLocation creates a source location from start to the last consumed token
func (p *Parser) makeLocation(start source.Position) source.Location {
	end := p.previous.End
	return *source.NewLocation(&start, &end)
}
