package eval

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"kr/internal/frontend/ast"
	"kr/internal/frontend/parser"
)

func run(t *testing.T, e *Evaluator, src string) (int64, error) {
	t.Helper()
	expr, err := parser.ParseString(src)
	require.NoError(t, err, "parse %q", src)
	return e.Evaluate(expr)
}

func evalError(t *testing.T, e *Evaluator, src string) *Error {
	t.Helper()
	_, err := run(t, e, src)
	require.Error(t, err)

	var eerr *Error
	require.True(t, errors.As(err, &eerr), "expected *eval.Error, got %T: %v", err, err)
	return eerr
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"42", 42},
		{"2 + 3 * 4", 14},
		{"10 - 3 - 2", 5},
		{"(2 + 3) * 4", 20},
		{"100 / 10 / 5", 2},
		{"7 / 2", 3},
		{"0 - 7 / 2", -3},
		{"1 - 10", -9},
		{"assume x eq 6 * 7", 42},
		{"9223372036854775807", math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := run(t, New(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssignmentPersists(t *testing.T) {
	e := New()

	v, err := run(t, e, "assume x eq 5")
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	v, err = run(t, e, "x + 1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), v)

	// Rebinding overwrites and may refer to the old value.
	v, err = run(t, e, "assume x eq x * 10")
	require.NoError(t, err)
	assert.Equal(t, int64(50), v)

	got, ok := e.Environment().Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, int64(50), got)
	assert.Equal(t, []string{"x"}, e.Environment().Names())
}

func TestAssignPrimitive(t *testing.T) {
	e := New()
	e.Assign("y", -4)

	v, err := run(t, e, "y * y")
	require.NoError(t, err)
	assert.Equal(t, int64(16), v)
	assert.Equal(t, map[string]int64{"y": -4}, e.Environment().Snapshot())
}

func TestUndefinedVariable(t *testing.T) {
	e := New()
	eerr := evalError(t, e, "y + 1")

	assert.Equal(t, UndefinedVariable, eerr.Kind)
	assert.Equal(t, "y", eerr.Name)
	assert.Equal(t, 1, eerr.Loc().Start.Column)
	assert.Contains(t, eerr.Error(), "undefined variable 'y'")
}

func TestFailedAssignmentDoesNotBind(t *testing.T) {
	e := New()
	evalError(t, e, "assume x eq missing + 1")

	_, ok := e.Environment().Lookup("x")
	assert.False(t, ok)
	assert.Equal(t, 0, e.Environment().Len())
}

func TestRuntimeDivisionByZero(t *testing.T) {
	e := New()
	_, err := run(t, e, "assume z eq 0")
	require.NoError(t, err)

	for _, src := range []string{"4 / z", "4 / (0)", "4 / (2 - 2)"} {
		eerr := evalError(t, e, src)
		assert.Equal(t, DivisionByZero, eerr.Kind, src)
		assert.IsType(t, &ast.BinaryExpr{}, eerr.Node)
	}
}

func TestLeftFailureShortCircuits(t *testing.T) {
	// Both operands are undefined; the left one is reported.
	eerr := evalError(t, New(), "a + b")
	assert.Equal(t, "a", eerr.Name)
}

func TestOverflowChecked(t *testing.T) {
	e := New()
	e.Assign("max", math.MaxInt64)
	e.Assign("min", math.MinInt64)

	for _, src := range []string{"max + 1", "min - 1", "max * 2", "min * (0 - 1)", "min / (0 - 1)", "0 - min"} {
		eerr := evalError(t, e, src)
		assert.Equal(t, Overflow, eerr.Kind, src)
	}

	v, err := run(t, e, "max - 1 + 1")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), v)
}

func TestOverflowWrap(t *testing.T) {
	e := New(WithOverflow(OverflowWrap))
	e.Assign("max", math.MaxInt64)
	e.Assign("min", math.MinInt64)

	tests := []struct {
		input string
		want  int64
	}{
		{"max + 1", math.MinInt64},
		{"min - 1", math.MaxInt64},
		{"max * 2", -2},
		{"min / (0 - 1)", math.MinInt64},
		{"min * (0 - 1)", math.MinInt64},
	}
	for _, tt := range tests {
		v, err := run(t, e, tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, v, tt.input)
	}

	// Division by zero is never wrapped.
	eerr := evalError(t, e, "max / (1 - 1)")
	assert.Equal(t, DivisionByZero, eerr.Kind)
	assert.Equal(t, OverflowWrap, e.Overflow())
}

func TestParseOverflowMode(t *testing.T) {
	m, err := ParseOverflowMode("WRAP")
	require.NoError(t, err)
	assert.Equal(t, OverflowWrap, m)

	m, err = ParseOverflowMode("")
	require.NoError(t, err)
	assert.Equal(t, OverflowChecked, m)
	assert.Equal(t, "checked", m.String())

	_, err = ParseOverflowMode("saturate")
	assert.Error(t, err)
}

func TestEvaluateLogsAssignments(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := New(WithLogger(zap.New(core)))

	_, err := run(t, e, "assume answer eq 42")
	require.NoError(t, err)

	entries := logs.FilterMessage("assign").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "answer", entries[0].ContextMap()["name"])
	assert.Equal(t, int64(42), entries[0].ContextMap()["value"])
}

func TestPropertyCheckedArithmeticMatchesBigRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Int64Range(-1_000_000, 1_000_000).Draw(t, "x")
		y := rapid.Int64Range(-1_000_000, 1_000_000).Draw(t, "y")
		op := rapid.SampledFrom([]ast.Operator{ast.ADD, ast.SUB, ast.MUL, ast.DIV}).Draw(t, "op")
		if op == ast.DIV && y == 0 {
			t.Skip("division by zero")
		}

		e := New()
		e.Assign("x", x)
		e.Assign("y", y)
		expr, err := parser.ParseString("x " + op.String() + " y")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		got, err := e.Evaluate(expr)
		if err != nil {
			t.Fatalf("x=%d y=%d op=%s: %v", x, y, op, err)
		}

		var want int64
		switch op {
		case ast.ADD:
			want = x + y
		case ast.SUB:
			want = x - y
		case ast.MUL:
			want = x * y
		case ast.DIV:
			want = x / y
		}
		if got != want {
			t.Fatalf("%d %s %d = %d, want %d", x, op, y, got, want)
		}
	})
}

func TestPropertyNumberLiteralsEvaluateToThemselves(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Int64Range(0, math.MaxInt64).Draw(t, "n")
		expr, err := parser.ParseString(strconv.FormatInt(n, 10))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		got, err := New().Evaluate(expr)
		if err != nil || got != n {
			t.Fatalf("eval(%d) = %d, %v", n, got, err)
		}
	})
}
