// Copyright © 2018 The ELPS authors

// Package repl implements an interactive read-eval-print loop over a lisp
// environment.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/mal/diagnostic"
	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/lisplib"
	"github.com/luthersystems/mal/parser"
	"github.com/luthersystems/mal/parser/rdparser"
)

// DefaultPrompt is the prompt printed before each expression is read.
const DefaultPrompt = "user> "

// SourceName is the source name given to expressions typed into the REPL.
const SourceName = "repl"

type config struct {
	stdin       io.ReadCloser
	stdout      io.Writer
	stderr      io.Writer
	historyFile string
	color       diagnostic.ColorMode
	envConfig   []lisp.Config
}

func newConfig(opts ...Option) *config {
	config := &config{
		historyFile: historyPath(),
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStdout allows overriding the output of printed results and prompts.
func WithStdout(stdout io.Writer) Option {
	return func(c *config) {
		c.stdout = stdout
	}
}

// WithStderr allows overriding the output of errors.
func WithStderr(stderr io.Writer) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithHistoryFile sets the file used to persist line history.  An empty
// path disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
	}
}

// WithColor controls colored error output.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithEnvConfig adds configuration applied when RunRepl initializes the
// environment.
func WithEnvConfig(cfg ...lisp.Config) Option {
	return func(c *config) {
		c.envConfig = append(c.envConfig, cfg...)
	}
}

// RunRepl runs a simple repl in a vanilla environment.
func RunRepl(prompt string, opts ...Option) error {
	env := lisp.NewEnv(nil)

	cfg := newConfig(opts...)
	envOpts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithLibrary(&lisp.RelativeFileSystemLibrary{}),
	}
	if cfg.stdout != nil {
		envOpts = append(envOpts, lisp.WithStdout(cfg.stdout))
	}
	if cfg.stderr != nil {
		envOpts = append(envOpts, lisp.WithStderr(cfg.stderr))
	}
	envOpts = append(envOpts, cfg.envConfig...)

	rc := lisp.InitializeUserEnv(env, envOpts...)
	if !rc.IsNil() {
		return fmt.Errorf("language initialization failure: %v", rc)
	}
	rc = lisplib.LoadLibrary(env)
	if !rc.IsNil() {
		return fmt.Errorf("stdlib initialization failure: %v", rc)
	}

	return RunEnv(env, prompt, strings.Repeat(" ", len(prompt)), opts...)
}

// RunEnv runs a simple repl with env as a root environment.  RunEnv returns
// when the input is exhausted.
func RunEnv(env *lisp.LEnv, prompt, cont string, opts ...Option) error {
	if env.Parent != nil {
		return errors.New("REPL environment is not a root environment")
	}

	p := rdparser.NewInteractive(SourceName)
	p.SetPrompts(prompt, cont)

	cfg := newConfig(opts...)
	if cfg.stdout != nil {
		env.Runtime.Stdout = cfg.stdout
	}
	if cfg.stderr != nil {
		env.Runtime.Stderr = cfg.stderr
	}
	ensureHistoryFilePermissions(cfg.historyFile)

	rlCfg := &readline.Config{
		Stdout:            env.Runtime.Stdout,
		Stderr:            env.Runtime.Stderr,
		Prompt:            p.Prompt(),
		HistoryFile:       cfg.historyFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{env: env},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	if env.Runtime.LineReader == nil {
		env.Runtime.LineReader = &lineReader{rl: rl}
	}

	renderer := &diagnostic.Renderer{
		Color:   cfg.color,
		Sources: make(map[string]string),
	}

	for {
		rl.SetPrompt(p.Prompt())
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			p.Reset()
			continue
		}
		if err != nil {
			return nil
		}
		exprs, text, err := p.Feed(line)
		renderer.Sources[SourceName] = text
		if err != nil {
			RenderError(env.Runtime.Stderr, renderer, lisp.Error(err))
			continue
		}
		for _, expr := range exprs {
			val := env.Eval(expr)
			if val.Type == lisp.LError {
				RenderError(env.Runtime.Stderr, renderer, val)
				break
			}
			fmt.Fprintln(env.Runtime.Stdout, val) //nolint:errcheck // best-effort REPL output
		}
	}
}

// lineReader reads lines for the readline builtin from the terminal the
// REPL is attached to.
type lineReader struct {
	rl *readline.Instance
}

func (r *lineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.ReadLine()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mal_history")
}

// ensureHistoryFilePermissions creates the history file if needed and
// restricts it to mode 0600.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	f.Close()                //nolint:errcheck,gosec // nothing was written
	_ = os.Chmod(path, 0600) //nolint:gosec // best-effort
}
