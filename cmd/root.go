// Copyright © 2018 The ELPS authors

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// errReported is returned by commands which have already rendered their
// failure to stderr.  The process exits with status 1 without printing it
// again.
var errReported = errors.New("error reported")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mal [FILE [ARGS...]]",
	Short: "A small Lisp interpreter",
	Long: `mal is a small Lisp interpreter implemented in Go.

Getting started:
  mal                          Start an interactive REPL
  mal file.mal a b             Run a file with *ARGV* bound to ("a" "b")
  mal run -e '(+ 1 2)'         Evaluate an expression and print the result
  mal doc cons                 Show documentation for a builtin

Language overview:
  Values are integers, strings, keywords, symbols, lists, vectors, hash-maps
  and atoms.  nil and false are the only false values.  Functions are created
  with (fn* (args) body) and bound with (def! name value).  Macros are
  defined with defmacro!.  Errors raised with throw, or by the interpreter,
  are caught with (try* expr (catch* e handler)).

Configuration is read from $HOME/.mal.yaml and MAL_* environment variables.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := loadSettings()
		if len(args) == 0 {
			return runRepl(s)
		}
		return runFile(cmd.OutOrStdout(), cmd.ErrOrStderr(), s, args[0], args[1:])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mal.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
	_ = viper.BindPFlag(keyColor, rootCmd.PersistentFlags().Lookup("color"))

	// Arguments following the script name belong to the script.
	rootCmd.Flags().SetInterspersed(false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setDefaults(viper.GetViper())
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err == nil {
			// Search config in home directory with name ".mal" (without extension).
			viper.AddConfigPath(home)
			viper.SetConfigName(".mal")
		}
	}

	viper.SetEnvPrefix("MAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "config:", err)
		}
	}
}
