package diagnostics

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"kr/colors"
)

// DiagnosticBag collects diagnostics for one evaluation
type DiagnosticBag struct {
	diagnostics []*Diagnostic
	sources     *SourceCache
	mu          sync.Mutex
	errorCount  int
	warnCount   int
}

func NewDiagnosticBag() *DiagnosticBag {
	return &DiagnosticBag{
		diagnostics: make([]*Diagnostic, 0),
		sources:     NewSourceCache(),
	}
}

// AddSource makes content available to the emitter under filepath.
func (db *DiagnosticBag) AddSource(filepath, content string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.sources.SetSource(filepath, content)
}

// Add adds a diagnostic to the bag
func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.diagnostics = append(db.diagnostics, diag)

	switch diag.Severity {
	case Error:
		db.errorCount++
	case Warning:
		db.warnCount++
	}
}

// HasErrors returns true if there are any errors
func (db *DiagnosticBag) HasErrors() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount > 0
}

func (db *DiagnosticBag) ErrorCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount
}

func (db *DiagnosticBag) WarningCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.warnCount
}

// Diagnostics returns a copy of everything collected so far
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]*Diagnostic, len(db.diagnostics))
	copy(out, db.diagnostics)
	return out
}

// EmitAll writes every diagnostic followed by a summary line.
func (db *DiagnosticBag) EmitAll(w io.Writer) {
	db.mu.Lock()
	diagnostics := make([]*Diagnostic, len(db.diagnostics))
	copy(diagnostics, db.diagnostics)
	errorCount, warnCount := db.errorCount, db.warnCount
	emitter := NewEmitterWithCache(w, db.sources)
	db.mu.Unlock()

	for _, diag := range diagnostics {
		emitter.Emit(diag)
	}
	printSummary(w, errorCount, warnCount)
}

// EmitAllToString emits all diagnostics to a string, with ANSI codes when
// coloring is enabled
func (db *DiagnosticBag) EmitAllToString() string {
	var buf bytes.Buffer
	db.EmitAll(&buf)
	return buf.String()
}

// EmitAllToHTML emits all diagnostics as HTML, for the browser build
func (db *DiagnosticBag) EmitAllToHTML() string {
	return colors.ConvertANSIToHTML(db.EmitAllToString())
}

func printSummary(w io.Writer, errorCount, warnCount int) {
	switch {
	case errorCount > 0:
		fmt.Fprintf(w, "Evaluation failed with %d error(s)", errorCount)
		if warnCount > 0 {
			fmt.Fprintf(w, " and %d warning(s)", warnCount)
		}
		fmt.Fprintln(w)
	case warnCount > 0:
		fmt.Fprintf(w, "Evaluation succeeded with %d warning(s)\n", warnCount)
	}
}

// Clear removes all diagnostics. Registered sources are kept.
func (db *DiagnosticBag) Clear() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.diagnostics = make([]*Diagnostic, 0)
	db.errorCount = 0
	db.warnCount = 0
}
