// Copyright © 2018 The ELPS authors

package cmd

import (
	"os"
	"strings"

	"github.com/luthersystems/mal/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive REPL",
	Long: `Start an interactive read-eval-print loop.

Each line is read, evaluated in a persistent environment and the result
printed.  An expression may continue over several lines.  Line editing,
tab completion of bound symbols and command history are supported via
readline.  Use Ctrl-D to exit.

Example REPL session:
  user> (def! square (fn* (x) (* x x)))
  #<function>
  user> (square 5)
  25
  user> (doc 'cons)
  ...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(loadSettings())
	},
}

func runRepl(s settings) error {
	env, done, err := newEnv(os.Stdout, os.Stderr, s, nil)
	if err != nil {
		return err
	}
	defer done()
	return repl.RunEnv(env, s.Prompt, strings.Repeat(" ", len(s.Prompt)),
		repl.WithHistoryFile(s.HistoryFile),
		repl.WithColor(s.Color))
}

func init() {
	rootCmd.AddCommand(replCmd)
}
