package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kr/internal/diagnostics"
	"kr/internal/eval"
	"kr/internal/frontend/parser"
)

func check(t *testing.T, src string, mode eval.OverflowMode) []*diagnostics.Diagnostic {
	t.Helper()
	expr, err := parser.ParseString(src)
	require.NoError(t, err, "parse %q", src)

	bag := diagnostics.NewDiagnosticBag()
	n := Run("test.kr", expr, bag, mode)
	assert.Equal(t, n, bag.WarningCount())
	assert.False(t, bag.HasErrors(), "checker must only warn")
	return bag.Diagnostics()
}

func codes(diags []*diagnostics.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestCheckerWarnings(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"1 + 2 * 3", []string{}},
		{"x / 2 + 1 * y", []string{}},
		{"4 / (0)", []string{diagnostics.WarnConstDivByZero}},
		{"4 / (2 - 2)", []string{diagnostics.WarnConstDivByZero}},
		{"assume a eq 10 / (3 * 0)", []string{diagnostics.WarnConstDivByZero}},
		{"x / (1 - 1)", []string{diagnostics.WarnConstDivByZero}},
		{"4 / (x - x)", []string{}},
		{"9223372036854775807 + 1", []string{diagnostics.WarnConstOverflow}},
		{"0 - 9223372036854775807 - 2", []string{diagnostics.WarnConstOverflow}},
		{"3037000500 * 3037000500", []string{diagnostics.WarnConstOverflow}},
		{"(0 - 9223372036854775807 - 1) / (0 - 1)", []string{diagnostics.WarnConstOverflow}},
		{"(9223372036854775807 + 1) / (1 - 1)", []string{diagnostics.WarnConstOverflow, diagnostics.WarnConstDivByZero}},
		{"(1 / (1 - 1)) + (2 / (2 - 2))", []string{diagnostics.WarnConstDivByZero, diagnostics.WarnConstDivByZero}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, codes(check(t, tt.input, eval.OverflowChecked)))
		})
	}
}

func TestCheckerWrapModeIgnoresOverflow(t *testing.T) {
	diags := check(t, "9223372036854775807 + 1", eval.OverflowWrap)
	assert.Empty(t, diags)

	diags = check(t, "(9223372036854775807 + 1) / (1 - 1)", eval.OverflowWrap)
	assert.Equal(t, []string{diagnostics.WarnConstDivByZero}, codes(diags))
}

func TestCheckerLabelsDivisor(t *testing.T) {
	diags := check(t, "8 / (4 - 4)", eval.OverflowChecked)
	require.Len(t, diags, 1)

	primary, ok := diags[0].Primary()
	require.True(t, ok)
	assert.Equal(t, 1, primary.Location.Start.Line)
	assert.Equal(t, 6, primary.Location.Start.Column)
	assert.Equal(t, "test.kr", diags[0].FilePath)
	assert.Equal(t, diagnostics.Warning, diags[0].Severity)
}

func TestCheckerNilExpression(t *testing.T) {
	bag := diagnostics.NewDiagnosticBag()
	New("x.kr", bag, eval.OverflowChecked).Check(nil)
	assert.Empty(t, bag.Diagnostics())
}
