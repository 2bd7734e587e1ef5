package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"kr/colors"
	"kr/internal/context"
	"kr/internal/frontend/ast"
	"kr/internal/frontend/lexer"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file.kr>",
		Short: "Print the token stream of a program",
		Args:  cobra.ExactArgs(1),
		RunE:  a.printTokens,
	}
}

func newASTCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file.kr>",
		Short: "Print the syntax tree of a program",
		Args:  cobra.ExactArgs(1),
		RunE:  a.printAST,
	}
}

// printTokens lists every token with its position. Invalid tokens are listed too;
// the first one decides the error.
func (a *app) printTokens(cmd *cobra.Command, args []string) error {
	name, content, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var first error
	for _, tok := range lexer.Tokenize(content) {
		pos := fmt.Sprintf("%-7s", tok.Start.String())
		colors.GREY.Fprint(out, pos)
		if tok.Kind == lexer.INVALID_TOKEN {
			colors.RED.Fprintln(out, tok.String())
			if first == nil && tok.Err != nil {
				first = tok.Err
			}
			continue
		}
		fmt.Fprintln(out, tok.String())
	}

	if first != nil {
		p := a.newPipeline()
		p.Session.AddFile(name, content)
		p.Session.Diagnostics.Add(context.Diagnose(name, first))
		emitDiagnostics(cmd, p)
	}
	return first
}

func (a *app) printAST(cmd *cobra.Command, args []string) error {
	name, content, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	p := a.newPipeline()
	file := p.Session.AddFile(name, content)
	if err := p.ParseFile(file); err != nil {
		emitDiagnostics(cmd, p)
		return err
	}

	ast.Fprint(cmd.OutOrStdout(), file.AST)
	return nil
}
