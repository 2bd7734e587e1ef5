package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"kr/colors"
)

const (
	STR_MULTIPLIER = "%*d | "
)

// SourceCache caches source file contents for error reporting
type SourceCache struct {
	files map[string][]string
}

func NewSourceCache() *SourceCache {
	return &SourceCache{
		files: make(map[string][]string),
	}
}

// SetSource registers in-memory content for filepath, replacing anything
// loaded before. REPL lines and stdin programs never touch the disk.
func (sc *SourceCache) SetSource(filepath, content string) {
	sc.files[filepath] = strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

// GetLine retrieves a specific line from a source file
func (sc *SourceCache) GetLine(filepath string, line int) (string, error) {
	lines, ok := sc.files[filepath]
	if !ok {
		loaded, err := readLines(filepath)
		if err != nil {
			return "", err
		}
		sc.files[filepath] = loaded
		lines = loaded
	}

	if line > 0 && line <= len(lines) {
		return lines[line-1], nil
	}
	return "", fmt.Errorf("line %d out of range", line)
}

func readLines(filepath string) ([]string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Emitter handles the rendering and output of diagnostics
type Emitter struct {
	w     io.Writer
	cache *SourceCache
}

// labelContext groups the resolved geometry of one label on one line
type labelContext struct {
	label    Label
	padding  int
	length   int
	severity Severity
}

func NewEmitter(w io.Writer) *Emitter {
	return NewEmitterWithCache(w, NewSourceCache())
}

func NewEmitterWithCache(w io.Writer, cache *SourceCache) *Emitter {
	return &Emitter{w: w, cache: cache}
}

// Cache exposes the source cache so callers can seed in-memory sources.
func (e *Emitter) Cache() *SourceCache {
	return e.cache
}

// Emit renders one diagnostic
func (e *Emitter) Emit(diag *Diagnostic) {
	e.printHeader(diag)

	if len(diag.Labels) > 0 {
		e.printLabels(diag)
	}

	for _, note := range diag.Notes {
		e.printNote(note)
	}
	if diag.Help != "" {
		e.printHelp(diag.Help)
	}

	fmt.Fprintln(e.w)
}

func (e *Emitter) printHeader(diag *Diagnostic) {
	color := e.getHeaderColor(diag.Severity)

	color.Fprint(e.w, diag.Severity.String())
	if diag.Code != "" {
		color.Fprintf(e.w, "[%s]", diag.Code)
	}
	colors.BOLD.Fprint(e.w, ": ")
	colors.BOLD.Fprintln(e.w, diag.Message)
}

// printLabels renders every label, grouping them by the line they start on.
// Lines are printed in order with an ellipsis across gaps.
func (e *Emitter) printLabels(diag *Diagnostic) {
	byLine := make(map[int][]Label)
	for _, label := range diag.Labels {
		if label.Location == nil || label.Location.Start == nil {
			continue
		}
		line := label.Location.Start.Line
		byLine[line] = append(byLine[line], label)
	}
	if len(byLine) == 0 {
		return
	}

	lineNumbers := make([]int, 0, len(byLine))
	for ln := range byLine {
		lineNumbers = append(lineNumbers, ln)
	}
	sort.Ints(lineNumbers)

	anchor, ok := diag.Primary()
	if !ok || anchor.Location == nil || anchor.Location.Start == nil {
		anchor = byLine[lineNumbers[0]][0]
	}
	colors.BLUE.Fprintf(e.w, "  --> %s:%d:%d\n", diag.FilePath, anchor.Location.Start.Line, anchor.Location.Start.Column)

	lineNumWidth := len(fmt.Sprintf("%d", lineNumbers[len(lineNumbers)-1]))
	e.printGutter(lineNumWidth)

	for idx, lineNum := range lineNumbers {
		if idx > 0 && lineNum-lineNumbers[idx-1] > 1 {
			colors.GREY.Fprint(e.w, strings.Repeat(" ", lineNumWidth))
			colors.GREY.Fprintln(e.w, " ...")
		}

		sourceLine, err := e.cache.GetLine(diag.FilePath, lineNum)
		if err != nil {
			continue
		}
		colors.GREY.Fprintf(e.w, STR_MULTIPLIER, lineNumWidth, lineNum)
		fmt.Fprintln(e.w, sourceLine)

		e.printLineLabels(e.resolve(byLine[lineNum], sourceLine, diag.Severity), lineNumWidth)
	}

	e.printGutter(lineNumWidth)
}

func (e *Emitter) resolve(labels []Label, sourceLine string, severity Severity) []labelContext {
	out := make([]labelContext, 0, len(labels))
	for _, label := range labels {
		start := label.Location.Start
		end := label.Location.End
		if end == nil {
			end = start
		}

		padding := start.Column - 1
		length := end.Column - start.Column
		if end.Line > start.Line {
			length = len([]rune(sourceLine)) - padding
		}
		if length <= 0 {
			length = 1
		}
		out = append(out, labelContext{label: label, padding: padding, length: length, severity: severity})
	}

	// Primary labels first, then left to right.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].label.Style != out[j].label.Style {
			return out[i].label.Style == Primary
		}
		return out[i].padding < out[j].padding
	})
	return out
}

// printLineLabels draws all markers of a line on one row. The first label's
// message goes inline; the rest hang below their marker.
func (e *Emitter) printLineLabels(ctxs []labelContext, lineNumWidth int) {
	if len(ctxs) == 0 {
		return
	}

	markers := make([]labelContext, len(ctxs))
	copy(markers, ctxs)
	sort.SliceStable(markers, func(i, j int) bool {
		if markers[i].padding != markers[j].padding {
			return markers[i].padding < markers[j].padding
		}
		return markers[i].label.Style == Primary && markers[j].label.Style != Primary
	})

	// Overlapping spans are clipped so every marker start stays visible.
	e.printGutterPrefix(lineNumWidth)
	col := 0
	for i, m := range markers {
		if m.padding < col {
			continue
		}
		length := m.length
		if i+1 < len(markers) {
			if next := markers[i+1].padding; next > m.padding && next < m.padding+length {
				length = next - m.padding
			}
		}
		fmt.Fprint(e.w, strings.Repeat(" ", m.padding-col))
		e.getLabelColor(m).Fprint(e.w, strings.Repeat(e.underlineChar(m), length))
		col = m.padding + length
	}
	if first := ctxs[0]; first.label.Message != "" {
		e.getLabelColor(first).Fprintf(e.w, " %s", first.label.Message)
	}
	fmt.Fprintln(e.w)

	for _, ctx := range ctxs[1:] {
		if ctx.label.Message == "" {
			continue
		}
		color := e.getLabelColor(ctx)

		e.printGutterPrefix(lineNumWidth)
		fmt.Fprint(e.w, strings.Repeat(" ", ctx.padding))
		color.Fprintln(e.w, "|")

		e.printGutterPrefix(lineNumWidth)
		fmt.Fprint(e.w, strings.Repeat(" ", ctx.padding))
		color.Fprintf(e.w, "%s %s\n", strings.Repeat(e.underlineChar(ctx), 2), ctx.label.Message)
	}
}

func (e *Emitter) printGutter(lineNumWidth int) {
	colors.GREY.Fprint(e.w, strings.Repeat(" ", lineNumWidth))
	colors.GREY.Fprintln(e.w, " |")
}

func (e *Emitter) printGutterPrefix(lineNumWidth int) {
	colors.GREY.Fprint(e.w, strings.Repeat(" ", lineNumWidth))
	colors.GREY.Fprint(e.w, " | ")
}

func (e *Emitter) printNote(note string) {
	colors.CYAN.Fprint(e.w, "  = note: ")
	fmt.Fprintln(e.w, note)
}

func (e *Emitter) printHelp(help string) {
	colors.GREEN.Fprint(e.w, "  = help: ")
	fmt.Fprintln(e.w, help)
}

func (e *Emitter) underlineChar(ctx labelContext) string {
	if ctx.label.Style != Primary {
		return "-"
	}
	if ctx.length == 1 {
		return "^"
	}
	return "~"
}

func (e *Emitter) getLabelColor(ctx labelContext) colors.COLOR {
	if ctx.label.Style != Primary {
		return colors.BLUE
	}
	return e.getSeverityColor(ctx.severity)
}

func (e *Emitter) getHeaderColor(severity Severity) colors.COLOR {
	switch severity {
	case Warning:
		return colors.BOLD_YELLOW
	case Info:
		return colors.BOLD_CYAN
	default:
		return colors.BOLD_RED
	}
}

// getSeverityColor returns the color for a given severity
func (e *Emitter) getSeverityColor(severity Severity) colors.COLOR {
	switch severity {
	case Warning:
		return colors.YELLOW
	case Info:
		return colors.BLUE
	default:
		return colors.RED
	}
}
