// Copyright © 2021 The ELPS authors

package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/lisplib/libhelp"
	"github.com/spf13/cobra"
)

// DocCommand returns a command which prints documentation for the special
// forms and builtins of an environment.  By default a standard environment
// is used.  Embedders that add their own builtins can pass WithEnv.
func DocCommand(opts ...Option) *cobra.Command {
	var cfg cmdConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var sourceFile string
	var missing bool

	cmd := &cobra.Command{
		Use:   "doc [flags] [NAME]",
		Short: "Show documentation for special forms, builtins and functions",
		Long: `Show built-in documentation for special forms, builtin functions and
functions defined in lisp.

With no NAME every special form and builtin is listed with a one line
summary.  Use -f to load a source file first (useful for inspecting your
own functions).  Use --missing to list builtins without documentation.

Examples:
  mal doc                     List everything
  mal doc let*                Show docs for the let* special form
  mal doc -f lib.mal my-fn    Load a file, then show my-fn`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := cfg.env
			if env == nil {
				var err error
				env, err = newDocEnv(cmd.ErrOrStderr(), sourceFile)
				if err != nil {
					return err
				}
			}
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush() //nolint:errcheck // best-effort flush on exit
			switch {
			case missing:
				return renderMissing(out, env)
			case len(args) == 0:
				return libhelp.RenderIndex(out, env)
			default:
				return libhelp.RenderVar(out, env, args[0])
			}
		},
	}

	cmd.Flags().StringVarP(&sourceFile, "source-file", "f", "",
		"Evaluate a lisp source file before querying documentation.")
	cmd.Flags().BoolVar(&missing, "missing", false,
		"List special forms and builtins with no documentation.")
	return cmd
}

// newDocEnv returns a standard environment.  Program output is discarded
// but kept in a buffer in case loading sourceFile fails.
func newDocEnv(stderr io.Writer, sourceFile string) (*lisp.LEnv, error) {
	var errbuf bytes.Buffer
	env, done, err := newEnv(&errbuf, &errbuf, settings{
		MaxMacroExpansionDepth: lisp.DefaultMaxMacroExpansionDepth,
		MaxStackDepth:          lisp.DefaultMaxStackDepth,
	}, nil)
	if err != nil {
		return nil, err
	}
	defer done()
	if sourceFile != "" {
		res := env.EvalString("doc", fmt.Sprintf("(load-file %s)", lisp.Escape(sourceFile)))
		if res.Type == lisp.LError {
			_, _ = stderr.Write(errbuf.Bytes())
			return nil, lisp.GoError(res)
		}
	}
	return env, nil
}

func renderMissing(w io.Writer, env *lisp.LEnv) error {
	for _, m := range libhelp.CheckMissing(env) {
		if _, err := fmt.Fprintf(w, "%s %s\n", m.Kind, m.Name); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(DocCommand())
}
