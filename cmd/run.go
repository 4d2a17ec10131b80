// Copyright © 2018 The ELPS authors

package cmd

import (
	"fmt"
	"io"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/repl"
	"github.com/spf13/cobra"
)

var runExpression bool

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run FILE [ARGS...]",
	Short: "Run lisp code",
	Long: `Run a lisp source file.  Arguments following the file name are bound,
as strings, to the list *ARGV*.

With -e the arguments are expressions which are evaluated in order and
their values printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := loadSettings()
		if runExpression {
			return runExpressions(cmd.OutOrStdout(), cmd.ErrOrStderr(), s, args)
		}
		return runFile(cmd.OutOrStdout(), cmd.ErrOrStderr(), s, args[0], args[1:])
	},
}

// runFile evaluates (load-file path) with *ARGV* bound to argv.
func runFile(stdout, stderr io.Writer, s settings, path string, argv []string) error {
	env, done, err := newEnv(stdout, stderr, s, argv)
	if err != nil {
		return err
	}
	defer done()
	res := env.EvalString("run", fmt.Sprintf("(load-file %s)", lisp.Escape(path)))
	if res.Type == lisp.LError {
		repl.RenderError(stderr, newRenderer(s), res)
		return errReported
	}
	return nil
}

// runExpressions evaluates each of exprs and prints its value.
func runExpressions(stdout, stderr io.Writer, s settings, exprs []string) error {
	env, done, err := newEnv(stdout, stderr, s, nil)
	if err != nil {
		return err
	}
	defer done()
	for i, expr := range exprs {
		name := fmt.Sprintf("expr%d", i+1)
		res := env.EvalString(name, expr)
		if res.Type == lisp.LError {
			r := newRenderer(s)
			r.Sources = map[string]string{name: expr}
			repl.RenderError(stderr, r, res)
			return errReported
		}
		fmt.Fprintln(stdout, res) //nolint:errcheck // best-effort output
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions and print their values")
	runCmd.Flags().SetInterspersed(false)
}
