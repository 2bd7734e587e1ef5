package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kr/colors"
	"kr/internal/context"
)

const prompt = "kr> "

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate lines interactively",
		Long: `Each line is one program. Bindings made with assume stay visible to
later lines. :env lists the bindings and :quit leaves.`,
		Args: cobra.NoArgs,
		RunE: a.repl,
	}
}

func (a *app) repl(cmd *cobra.Command, _ []string) error {
	p := a.newPipeline()
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q":
			return nil
		case ":env":
			printEnv(cmd, p)
			continue
		}

		v, err := p.RunSource(p.Session.NextName("repl"), line)
		emitDiagnostics(cmd, p)
		if err != nil {
			a.log.Debug("line failed", zap.String("line", line), zap.Error(err))
			continue
		}
		colors.BOLD_GREEN.Fprintln(out, v)
	}

	return errors.Wrap(scanner.Err(), "read input")
}

func printEnv(cmd *cobra.Command, p *context.Pipeline) {
	env := p.Session.Evaluator.Environment()
	out := cmd.OutOrStdout()
	if env.Len() == 0 {
		colors.GREY.Fprintln(out, "(no bindings)")
		return
	}
	for _, name := range env.Names() {
		v, _ := env.Lookup(name)
		colors.CYAN.Fprint(out, name)
		fmt.Fprintf(out, " = %d\n", v)
	}
}
