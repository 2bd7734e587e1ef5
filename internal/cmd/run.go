package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file.kr>",
		Short: "Evaluate a program and print its value",
		Example: `  kr run total.kr
  echo "assume x eq 6 * 7" | kr run -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0])
		},
	}
}

func (a *app) run(cmd *cobra.Command, path string) error {
	v, err := a.evaluate(cmd, a.newPipeline(), path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Result: %d\n", v)
	return nil
}
