// Copyright © 2024 The ELPS authors

package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/luthersystems/mal/diagnostic"
	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/lisplib"
	"github.com/luthersystems/mal/parser"
	"github.com/luthersystems/mal/repl"
	"github.com/spf13/viper"
)

// Configuration keys.  Each may be set in the config file or through an
// environment variable, e.g. MAL_MAX_STACK_DEPTH.
const (
	keyPrompt                 = "prompt"
	keyHistoryFile            = "history-file"
	keyColor                  = "color"
	keyMaxMacroExpansionDepth = "max-macro-expansion-depth"
	keyMaxStackDepth          = "max-stack-depth"
	keyTrace                  = "trace"
	keyCPUProfile             = "cpu-profile"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyPrompt, repl.DefaultPrompt)
	if home, err := os.UserHomeDir(); err == nil {
		v.SetDefault(keyHistoryFile, filepath.Join(home, ".mal_history"))
	}
	v.SetDefault(keyColor, "auto")
	v.SetDefault(keyMaxMacroExpansionDepth, lisp.DefaultMaxMacroExpansionDepth)
	v.SetDefault(keyMaxStackDepth, lisp.DefaultMaxStackDepth)
	v.SetDefault(keyTrace, traceNone)
	v.SetDefault(keyCPUProfile, "mal.pprof")
}

// settings is the resolved command configuration.
type settings struct {
	Prompt                 string
	HistoryFile            string
	Color                  diagnostic.ColorMode
	MaxMacroExpansionDepth int
	MaxStackDepth          int
	Trace                  string
	CPUProfile             string
}

func loadSettings() settings {
	return settingsFrom(viper.GetViper())
}

func settingsFrom(v *viper.Viper) settings {
	return settings{
		Prompt:                 v.GetString(keyPrompt),
		HistoryFile:            v.GetString(keyHistoryFile),
		Color:                  diagnostic.ParseColorMode(v.GetString(keyColor)),
		MaxMacroExpansionDepth: v.GetInt(keyMaxMacroExpansionDepth),
		MaxStackDepth:          v.GetInt(keyMaxStackDepth),
		Trace:                  v.GetString(keyTrace),
		CPUProfile:             v.GetString(keyCPUProfile),
	}
}

// newEnv returns an initialized root environment with the standard library
// loaded.  The returned function must be called when evaluation is finished
// to flush any trace output.
func newEnv(stdout, stderr io.Writer, s settings, argv []string) (*lisp.LEnv, func(), error) {
	env := lisp.NewEnv(nil)
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithLibrary(&lisp.RelativeFileSystemLibrary{}),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stderr),
		lisp.WithMaxMacroExpansionDepth(s.MaxMacroExpansionDepth),
		lisp.WithMaxStackDepth(s.MaxStackDepth),
		lisp.WithArgv(argv),
	}
	prof, done, err := newProfiler(env.Runtime, s, stderr)
	if err != nil {
		return nil, nil, err
	}
	if prof != nil {
		config = append(config, lisp.WithProfiler(prof))
	}
	rc := lisp.InitializeUserEnv(env, config...)
	if !rc.IsNil() {
		done()
		return nil, nil, lisp.GoError(rc)
	}
	rc = lisplib.LoadLibrary(env)
	if !rc.IsNil() {
		done()
		return nil, nil, lisp.GoError(rc)
	}
	return env, done, nil
}

func newRenderer(s settings) *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: s.Color}
}

// Option configures an exported command factory (DocCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	env *lisp.LEnv
}

// WithEnv injects a fully configured LEnv to use for documentation queries.
func WithEnv(env *lisp.LEnv) Option {
	return func(c *cmdConfig) { c.env = env }
}
