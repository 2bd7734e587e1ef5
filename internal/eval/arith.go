package eval

import (
	"fmt"
	"math"
	"strings"

	"kr/internal/frontend/ast"
)

// OverflowMode selects what happens when an int64 operation overflows.
type OverflowMode int

const (
	OverflowChecked OverflowMode = iota // report an Overflow error
	OverflowWrap                        // two's-complement wraparound
)

func (m OverflowMode) String() string {
	if m == OverflowWrap {
		return "wrap"
	}
	return "checked"
}

// ParseOverflowMode accepts "checked" or "wrap" (case-insensitive).
func ParseOverflowMode(s string) (OverflowMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "checked":
		return OverflowChecked, nil
	case "wrap", "wrapping":
		return OverflowWrap, nil
	default:
		return OverflowChecked, fmt.Errorf("unknown overflow mode %q (want checked or wrap)", s)
	}
}

// Apply computes x op y with Go's wrapping arithmetic and reports whether
// the true result fell outside int64. y must be non-zero for DIV.
func Apply(op ast.Operator, x, y int64) (int64, bool) {
	switch op {
	case ast.ADD:
		r := x + y
		return r, (x > 0 && y > 0 && r < 0) || (x < 0 && y < 0 && r >= 0)
	case ast.SUB:
		r := x - y
		return r, (x >= 0 && y < 0 && r < 0) || (x < 0 && y > 0 && r >= 0)
	case ast.MUL:
		r := x * y
		if x == 0 || y == 0 {
			return 0, false
		}
		overflow := r/y != x ||
			(x == -1 && y == math.MinInt64) ||
			(y == -1 && x == math.MinInt64)
		return r, overflow
	default:
		// MinInt64 / -1 is the only overflowing quotient; Go yields MinInt64.
		return x / y, x == math.MinInt64 && y == -1
	}
}
