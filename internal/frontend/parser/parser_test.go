package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"kr/internal/frontend/ast"
	"kr/internal/frontend/lexer"
)

const unexpectedParseError = "unexpected parse error for %q: %v"

func mustParse(t *testing.T, src string) ast.Expression {
	t.Helper()
	expr, err := ParseString(src)
	if err != nil {
		t.Fatalf(unexpectedParseError, src, err)
	}
	require.NotNil(t, expr)
	return expr
}

func parseError(t *testing.T, src string) *Error {
	t.Helper()
	_, err := ParseString(src)
	require.Error(t, err, "expected %q to fail", src)

	var perr *Error
	require.True(t, errors.As(err, &perr), "expected *parser.Error for %q, got %T: %v", src, err, err)
	return perr
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"x", "x"},
		{"2 + 3 * 4", "(+ 2 (* 3 4))"},
		{"2 * 3 + 4", "(+ (* 2 3) 4)"},
		{"10 - 3 - 2", "(- (- 10 3) 2)"},
		{"100 / 10 / 5", "(/ (/ 100 10) 5)"},
		{"(2 + 3) * 4", "(* (+ 2 3) 4)"},
		{"((x))", "x"},
		{"a * (b - c) / d", "(/ (* a (- b c)) d)"},
		{"assume x eq 5", "(assume x 5)"},
		{"assume total eq (a + b) * 2", "(assume total (* (+ a b) 2))"},
		{"\n  1\t+\n2  ", "(+ 1 2)"},
		{"assumer + 1", "(+ assumer 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ast.Sprint(mustParse(t, tt.input)))
		})
	}
}

func TestParseNodeTypes(t *testing.T) {
	expr := mustParse(t, "assume x eq y / 2")

	assign, ok := expr.(*ast.AssignExpr)
	require.True(t, ok, "expected *ast.AssignExpr, got %T", expr)
	assert.Equal(t, "x", assign.Name.Name)

	bin, ok := assign.Value.(*ast.BinaryExpr)
	require.True(t, ok, "expected *ast.BinaryExpr, got %T", assign.Value)
	assert.Equal(t, ast.DIV, bin.Op)
	assert.IsType(t, &ast.VarRef{}, bin.X)
	assert.IsType(t, &ast.NumberLit{}, bin.Y)
}

func TestParseLocations(t *testing.T) {
	expr := mustParse(t, "assume x eq 12 + y")
	assign := expr.(*ast.AssignExpr)

	assert.Equal(t, 1, assign.Loc().Start.Column)
	assert.Equal(t, 19, assign.Loc().End.Column)
	assert.Equal(t, 8, assign.Name.Loc().Start.Column)

	bin := assign.Value.(*ast.BinaryExpr)
	assert.Equal(t, 13, bin.Loc().Start.Column)
	assert.Equal(t, 19, bin.Loc().End.Column)
	assert.Equal(t, 16, bin.OpPos.Start.Column)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  ErrorKind
		at    int // column of the offending token
	}{
		{"assume", MissingIdentifier, 7},
		{"assume 5 eq 1", MissingIdentifier, 8},
		{"assume x", MissingEq, 9},
		{"assume x 5", MissingEq, 10},
		{"assume x eq", MissingFactor, 12},
		{"1 +", MissingOperand, 4},
		{"1 * )", MissingOperand, 5},
		{"2 - - 3", MissingOperand, 5},
		{"", MissingFactor, 1},
		{")", MissingFactor, 1},
		{"(", MissingFactor, 2},
		{"(1 + 2", UnclosedParen, 7},
		{"((1)", UnclosedParen, 5},
		{"1 2", TrailingTokens, 3},
		{"1 + 2)", TrailingTokens, 6},
		{"x assume", TrailingTokens, 3},
		{"4 / 0", DivisionByZero, 5},
		{"x / 0 + 1", DivisionByZero, 5},
		{"assume y eq 8 / 000", DivisionByZero, 17},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			perr := parseError(t, tt.input)
			assert.Equal(t, tt.kind, perr.Kind, "error: %v", perr)
			assert.Equal(t, tt.at, perr.Token.Start.Column)
			assert.NotEmpty(t, perr.Error())
		})
	}
}

func TestParseErrorRelatedTokens(t *testing.T) {
	perr := parseError(t, "(1 + 2")
	require.NotNil(t, perr.Related)
	assert.Equal(t, lexer.OPEN_PAREN, perr.Related.Kind)
	assert.Equal(t, 1, perr.Related.Start.Column)

	perr = parseError(t, "3 *")
	require.NotNil(t, perr.Related)
	assert.Equal(t, lexer.MUL_TOKEN, perr.Related.Kind)
	assert.Contains(t, perr.Error(), "'*'")

	perr = parseError(t, "6 / 0")
	require.NotNil(t, perr.Related)
	assert.Equal(t, lexer.DIV_TOKEN, perr.Related.Kind)
}

func TestDivisionByNonLiteralZeroParses(t *testing.T) {
	// Left for the evaluator.
	assert.Equal(t, "(/ 4 z)", ast.Sprint(mustParse(t, "4 / z")))
	assert.Equal(t, "(/ 4 0)", ast.Sprint(mustParse(t, "4 / (0)")))
	assert.Equal(t, "(/ 4 (- 1 1))", ast.Sprint(mustParse(t, "4 / (1 - 1)")))
	assert.Equal(t, "(* 4 0)", ast.Sprint(mustParse(t, "4 * 0")))
	assert.Equal(t, "(/ 0 4)", ast.Sprint(mustParse(t, "0 / 4")))
}

func TestInvalidTokensSurfaceAsLexicalErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  lexer.ErrorKind
	}{
		{"$", lexer.InvalidCharacter},
		{"1 + $", lexer.InvalidCharacter},
		{"1 $", lexer.InvalidCharacter},
		{"(1 $ 2)", lexer.InvalidCharacter},
		{"assume % eq 1", lexer.InvalidCharacter},
		{"assume x % 1", lexer.InvalidCharacter},
		{"99999999999999999999", lexer.NumberTooLarge},
		{"1 + 99999999999999999999", lexer.NumberTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)

			var lerr *lexer.Error
			require.True(t, errors.As(err, &lerr), "expected *lexer.Error, got %T: %v", err, err)
			assert.Equal(t, tt.kind, lerr.Kind)

			var perr *Error
			assert.False(t, errors.As(err, &perr))
		})
	}
}

func TestParserPullsLazily(t *testing.T) {
	lx := lexer.New("1 + 2")
	p := New(lx)

	// Only the first token has been consumed; the rest is still in the lexer.
	assert.Equal(t, lexer.NUMBER_TOKEN, p.current.Kind)
	assert.Equal(t, lexer.PLUS_TOKEN, lx.Next().Kind)
}

func TestParseIsIdempotent(t *testing.T) {
	for _, src := range []string{"2 + 3 * 4", "assume x eq (y - 1) / 7", "((a))"} {
		first := mustParse(t, src)
		second := mustParse(t, src)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("parse(%q) not stable (-first +second):\n%s", src, diff)
		}
	}
}

// genExpr draws a random well-formed expression over small literals and
// names, never dividing by a literal zero.
func genExpr(t *rapid.T, depth int) string {
	if depth <= 0 || rapid.Bool().Draw(t, "leaf") {
		if rapid.Bool().Draw(t, "num") {
			return rapid.SampledFrom([]string{"1", "2", "7", "42", "0"}).Draw(t, "n")
		}
		return rapid.SampledFrom([]string{"a", "b", "assumer", "eqx"}).Draw(t, "id")
	}
	left := genExpr(t, depth-1)
	right := genExpr(t, depth-1)
	op := rapid.SampledFrom([]string{"+", "-", "*", "/"}).Draw(t, "op")
	if op == "/" && strings.HasPrefix(right, "0") {
		op = "*"
	}
	if rapid.Bool().Draw(t, "paren") {
		return "(" + left + " " + op + " " + right + ")"
	}
	return left + " " + op + " " + right
}

func TestPropertyParseIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := genExpr(t, 4)

		first, err := ParseString(src)
		if err != nil {
			t.Fatalf(unexpectedParseError, src, err)
		}
		second, err := ParseString(src)
		if err != nil {
			t.Fatalf(unexpectedParseError, src, err)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("parse(%q) differs:\n%s", src, diff)
		}
	})
}
