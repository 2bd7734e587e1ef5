// Package context holds the state of one kr invocation.
//
// A Session is shared by every phase of the pipeline: the phases themselves
// are stateless and read and write the SourceFile they are given. The
// Session's Evaluator outlives individual programs, so a REPL line sees the
// bindings made by earlier lines.
package context

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kr/internal/diagnostics"
	"kr/internal/eval"
	"kr/internal/frontend/ast"
)

// Phase is a stage of the pipeline
type Phase int

const (
	PhaseInitial Phase = iota // Not started
	PhaseRead                 // Source registered
	PhaseParse                // Tree built
	PhaseCheck                // Constant checks done
	PhaseEval                 // Value computed
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseRead:
		return "read"
	case PhaseParse:
		return "parse"
	case PhaseCheck:
		return "check"
	case PhaseEval:
		return "eval"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Options is fixed for the lifetime of a Session.
type Options struct {
	Debug    bool              // Log each phase at debug level
	Overflow eval.OverflowMode // Arithmetic overflow policy
	Checks   bool              // Run the constant checker before evaluating
}

// SourceFile is one program moving through the phases.
type SourceFile struct {
	Path    string
	Content string

	AST    ast.Expression
	Result int64
	Phase  Phase // Last phase that finished
}

type Session struct {
	// ID tags every log line of the session
	ID string

	// All phases report here instead of returning diagnostics themselves
	Diagnostics *diagnostics.DiagnosticBag

	// Evaluator persists across programs of the same session
	Evaluator *eval.Evaluator

	Files     map[string]*SourceFile
	FileOrder []string

	Options *Options
	Log     *zap.Logger

	mu sync.RWMutex
}

// New starts a session. A nil logger discards everything.
func New(options *Options, log *zap.Logger) *Session {
	if options == nil {
		options = &Options{Checks: true}
	}
	if log == nil {
		log = zap.NewNop()
	}

	id := uuid.New().String()
	log = log.With(zap.String("session", id))

	return &Session{
		ID:          id,
		Diagnostics: diagnostics.NewDiagnosticBag(),
		Evaluator: eval.New(
			eval.WithOverflow(options.Overflow),
			eval.WithLogger(log.Named("eval")),
		),
		Files:     make(map[string]*SourceFile),
		FileOrder: make([]string, 0),
		Options:   options,
		Log:       log,
	}
}

// AddFile registers a source under path, replacing an earlier one with the
// same path. The content is also handed to the diagnostics emitter.
func (s *Session) AddFile(path string, content string) *SourceFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := &SourceFile{
		Path:    path,
		Content: content,
		Phase:   PhaseRead,
	}

	if _, exists := s.Files[path]; !exists {
		s.FileOrder = append(s.FileOrder, path)
	}
	s.Files[path] = file
	s.Diagnostics.AddSource(path, content)

	return file
}

// GetFile returns nil if path was never registered.
func (s *Session) GetFile(path string) *SourceFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Files[path]
}

// GetAllFiles returns files in registration order.
func (s *Session) GetAllFiles() []*SourceFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files := make([]*SourceFile, 0, len(s.FileOrder))
	for _, path := range s.FileOrder {
		files = append(files, s.Files[path])
	}
	return files
}

// NextName returns a unique name for an unnamed source such as a REPL line.
func (s *Session) NextName(prefix string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("<%s:%d>", prefix, len(s.FileOrder)+1)
}

func (s *Session) HasErrors() bool {
	return s.Diagnostics.HasErrors()
}

// EmitDiagnostics writes everything collected so far to w.
func (s *Session) EmitDiagnostics(w io.Writer) {
	s.Diagnostics.EmitAll(w)
}
