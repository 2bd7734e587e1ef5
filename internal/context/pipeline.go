package context

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"kr/internal/frontend/ast"
	"kr/internal/frontend/lexer"
	"kr/internal/frontend/parser"
	"kr/internal/semantics/checker"
)

// Pipeline runs read -> parse -> check -> eval over a Session.
//
// Each phase records its outcome on the SourceFile. A phase that fails adds
// a diagnostic to the Session and returns the typed stage error
// (*lexer.Error, *parser.Error or *eval.Error) so callers can pick an exit
// status with errors.As.
type Pipeline struct {
	Session *Session
}

func NewPipeline(options *Options, log *zap.Logger) *Pipeline {
	return &Pipeline{Session: New(options, log)}
}

// Run evaluates the program stored at path.
func (p *Pipeline) Run(path string) (int64, error) {
	file, err := p.addNewFile(path)
	if err != nil {
		return 0, err
	}
	return p.runFile(file)
}

// RunSource evaluates content registered under name. Nothing touches the
// file system.
func (p *Pipeline) RunSource(name, content string) (int64, error) {
	return p.runFile(p.Session.AddFile(name, content))
}

func (p *Pipeline) runFile(file *SourceFile) (int64, error) {
	if err := p.ParseFile(file); err != nil {
		return 0, err
	}
	p.CheckFile(file)
	return p.EvaluateFile(file)
}

func (p *Pipeline) addNewFile(path string) (*SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", path)
	}

	p.trace("registered",
		zap.Stringer("phase", PhaseRead),
		zap.String("file", path),
		zap.Int("bytes", len(content)))

	return p.Session.AddFile(path, string(content)), nil
}

// ParseFile builds file.AST. The lexer is driven by the parser, so lexical
// errors surface here too.
func (p *Pipeline) ParseFile(file *SourceFile) error {
	expr, err := parser.New(lexer.New(file.Content)).Parse()
	if err != nil {
		p.report(file, err)
		return err
	}

	file.AST = expr
	file.Phase = PhaseParse

	if p.Session.Options.Debug {
		p.trace("parsed",
			zap.Stringer("phase", PhaseParse),
			zap.String("file", file.Path),
			zap.String("ast", ast.Sprint(expr)))
	}
	return nil
}

// CheckFile runs the constant checker when enabled. It only adds warnings.
func (p *Pipeline) CheckFile(file *SourceFile) {
	if !p.Session.Options.Checks || file.AST == nil {
		return
	}

	n := checker.Run(file.Path, file.AST, p.Session.Diagnostics, p.Session.Options.Overflow)
	file.Phase = PhaseCheck

	p.trace("checked",
		zap.Stringer("phase", PhaseCheck),
		zap.String("file", file.Path),
		zap.Int("warnings", n))
}

// EvaluateFile computes the value of file.AST with the session's Evaluator.
func (p *Pipeline) EvaluateFile(file *SourceFile) (int64, error) {
	if file.AST == nil {
		return 0, errors.Errorf("%s: nothing to evaluate", file.Path)
	}

	v, err := p.Session.Evaluator.Evaluate(file.AST)
	if err != nil {
		p.report(file, err)
		return 0, err
	}

	file.Result = v
	file.Phase = PhaseComplete

	p.trace("evaluated",
		zap.Stringer("phase", PhaseEval),
		zap.String("file", file.Path),
		zap.Int64("result", v))
	return v, nil
}

func (p *Pipeline) report(file *SourceFile, err error) {
	if d := Diagnose(file.Path, err); d != nil {
		p.Session.Diagnostics.Add(d)
	}
	p.trace("failed", zap.String("file", file.Path), zap.Error(err))
}

// trace logs phase progress when the session runs with Debug.
func (p *Pipeline) trace(msg string, fields ...zap.Field) {
	if p.Session.Options.Debug {
		p.Session.Log.Debug(msg, fields...)
	}
}
