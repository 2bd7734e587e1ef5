// Package cmd implements the kr command line.
package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kr/colors"
	"kr/internal/config"
	"kr/internal/eval"
	"kr/internal/frontend/lexer"
	"kr/internal/frontend/parser"
	"kr/internal/logger"
)

const Version = "0.1.0"

// Exit statuses
const (
	ExitOK      = 0
	ExitFailure = 1 // usage, I/O or configuration
	ExitLexical = 2
	ExitSyntax  = 3
	ExitRuntime = 4
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	cfgFile  string
	debug    bool
	noColor  bool
	overflow string

	cfg *config.Config
	log *zap.Logger
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "kr [file.kr]",
		Short: "Evaluate kr arithmetic programs",
		Long: `kr evaluates programs of the form

  assume <name> eq <expression>
  <expression>

where expressions use + - * / and parentheses over 64-bit integers.
Running kr with a file is the same as kr run <file>.`,
		Version:           Version,
		Args:              cobra.MaximumNArgs(1),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { logger.Sync(a.log) },
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.run(cmd, args[0])
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	flags.BoolVar(&a.debug, "debug", false, "log every pipeline phase")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&a.overflow, "overflow", "", "integer overflow policy: checked or wrap")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newRunCmd(a),
		newReplCmd(a),
		newTokensCmd(a),
		newASTCmd(a),
	)
	return rootCmd
}

// setup layers flags over the config file and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if flags.Changed("no-color") && a.noColor {
		cfg.Color = "never"
	}
	if flags.Changed("overflow") {
		cfg.Overflow = a.overflow
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if cfg.Debug {
		cfg.Log.Level = "debug"
	}

	colors.SetMode(cfg.Color)
	a.cfg = cfg
	a.log = logger.New(cfg.Log, cmd.ErrOrStderr())
	a.log.Debug("configured",
		zap.String("config", a.cfgFile),
		zap.Stringer("overflow", cfg.OverflowMode()),
		zap.Bool("checks", cfg.Checks))
	return nil
}

// Execute runs the command line and returns the process exit status.
func Execute() int {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil && !isStageError(err) {
		colors.BOLD_RED.Fprint(rootCmd.ErrOrStderr(), "error")
		fmt.Fprintf(rootCmd.ErrOrStderr(), ": %v\n", err)
	}
	return ExitCode(err)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	var lexErr *lexer.Error
	var parseErr *parser.Error
	var evalErr *eval.Error

	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &lexErr):
		return ExitLexical
	case errors.As(err, &parseErr):
		return ExitSyntax
	case errors.As(err, &evalErr):
		return ExitRuntime
	default:
		return ExitFailure
	}
}

// Stage errors have already been rendered as diagnostics.
func isStageError(err error) bool {
	code := ExitCode(err)
	return code == ExitLexical || code == ExitSyntax || code == ExitRuntime
}
