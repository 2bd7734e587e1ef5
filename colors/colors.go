// Package colors is the terminal palette shared by diagnostics and the CLI.
package colors

import (
	"io"

	"github.com/fatih/color"
)

// COLOR is a named terminal style.
type COLOR struct {
	c *color.Color
}

func newColor(attrs ...color.Attribute) COLOR {
	return COLOR{c: color.New(attrs...)}
}

var (
	RED    = newColor(color.FgRed)
	GREEN  = newColor(color.FgGreen)
	YELLOW = newColor(color.FgYellow)
	BLUE   = newColor(color.FgBlue)
	PURPLE = newColor(color.FgMagenta)
	CYAN   = newColor(color.FgCyan)
	GREY   = newColor(color.FgHiBlack)

	BOLD_RED    = newColor(color.FgRed, color.Bold)
	BOLD_GREEN  = newColor(color.FgGreen, color.Bold)
	BOLD_YELLOW = newColor(color.FgYellow, color.Bold)
	BOLD_CYAN   = newColor(color.FgCyan, color.Bold)
	BOLD_PURPLE = newColor(color.FgMagenta, color.Bold)
	BOLD        = newColor(color.Bold)
)

func (c COLOR) Fprint(w io.Writer, a ...any) {
	_, _ = c.c.Fprint(w, a...)
}

func (c COLOR) Fprintf(w io.Writer, format string, a ...any) {
	_, _ = c.c.Fprintf(w, format, a...)
}

func (c COLOR) Fprintln(w io.Writer, a ...any) {
	_, _ = c.c.Fprintln(w, a...)
}

func (c COLOR) Sprint(a ...any) string {
	return c.c.Sprint(a...)
}

// SetMode switches coloring: "always" forces ANSI codes, "never" disables
// them, anything else leaves fatih/color's terminal detection in charge.
func SetMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// Enabled reports whether ANSI codes are currently emitted.
func Enabled() bool {
	return !color.NoColor
}
