package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"kr/internal/context"
)

// stdinPath makes a command read its program from standard input.
const stdinPath = "-"

func (a *app) newPipeline() *context.Pipeline {
	return context.NewPipeline(&context.Options{
		Debug:    a.cfg.Debug,
		Overflow: a.cfg.OverflowMode(),
		Checks:   a.cfg.Checks,
	}, a.log)
}

// readSource returns the display name and content of path.
func readSource(cmd *cobra.Command, path string) (string, string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", errors.Wrap(err, "read standard input")
		}
		return "<stdin>", string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", errors.Wrapf(err, "failed to read file %s", path)
	}
	return path, string(data), nil
}

// evaluate runs one program and renders whatever diagnostics it produced.
func (a *app) evaluate(cmd *cobra.Command, p *context.Pipeline, path string) (int64, error) {
	var (
		v   int64
		err error
	)

	if path == stdinPath {
		name, content, rerr := readSource(cmd, path)
		if rerr != nil {
			return 0, rerr
		}
		v, err = p.RunSource(name, content)
	} else {
		v, err = p.Run(path)
	}

	emitDiagnostics(cmd, p)
	return v, err
}

// emitDiagnostics writes pending diagnostics to stderr and clears them.
func emitDiagnostics(cmd *cobra.Command, p *context.Pipeline) {
	bag := p.Session.Diagnostics
	if len(bag.Diagnostics()) == 0 {
		return
	}
	bag.EmitAll(cmd.ErrOrStderr())
	bag.Clear()
}
