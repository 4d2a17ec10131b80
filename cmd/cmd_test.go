// Copyright © 2024 The ELPS authors

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luthersystems/mal/diagnostic"
	"github.com/luthersystems/mal/lisp"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() settings {
	return settings{
		Prompt:                 "user> ",
		Color:                  diagnostic.ColorNever,
		MaxMacroExpansionDepth: lisp.DefaultMaxMacroExpansionDepth,
		MaxStackDepth:          lisp.DefaultMaxStackDepth,
		Trace:                  traceNone,
	}
}

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	return path
}

func TestSettingsDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	s := settingsFrom(v)
	assert.Equal(t, "user> ", s.Prompt)
	assert.Equal(t, diagnostic.ColorAuto, s.Color)
	assert.Equal(t, lisp.DefaultMaxStackDepth, s.MaxStackDepth)
	assert.Equal(t, lisp.DefaultMaxMacroExpansionDepth, s.MaxMacroExpansionDepth)
	assert.Equal(t, traceNone, s.Trace)
}

func TestSettingsOverride(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set(keyMaxStackDepth, 50)
	v.Set(keyColor, "never")
	v.Set(keyPrompt, "mal> ")
	s := settingsFrom(v)
	assert.Equal(t, 50, s.MaxStackDepth)
	assert.Equal(t, diagnostic.ColorNever, s.Color)
	assert.Equal(t, "mal> ", s.Prompt)
}

func TestRunFile(t *testing.T) {
	path := writeFile(t, "main.mal", `
(def! greet (fn* (who) (str "hello " who)))
(println (greet (first *ARGV*)))
(println (count *ARGV*))
`)
	var stdout, stderr bytes.Buffer
	err := runFile(&stdout, &stderr, testSettings(), path, []string{"world", "again"})
	require.NoError(t, err, stderr.String())
	assert.Equal(t, "hello world\n2\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunFileError(t *testing.T) {
	path := writeFile(t, "bad.mal", `(println "before")
(undefined-thing 1)
(println "after")
`)
	var stdout, stderr bytes.Buffer
	err := runFile(&stdout, &stderr, testSettings(), path, nil)
	assert.ErrorIs(t, err, errReported)
	assert.Equal(t, "before\n", stdout.String())
	assert.Contains(t, stderr.String(), "error[unbound-symbol]")
	assert.Contains(t, stderr.String(), `"undefined-thing" not found`)
}

func TestRunFileMissing(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runFile(&stdout, &stderr, testSettings(), filepath.Join(t.TempDir(), "nope.mal"), nil)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr.String(), "error[io-error]")
}

func TestRunExpressions(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runExpressions(&stdout, &stderr, testSettings(), []string{
		"(+ 1 2)",
		`(str "a" "b")`,
		"[1 (+ 1 1)]",
	})
	require.NoError(t, err)
	assert.Equal(t, "3\n\"ab\"\n[1 2]\n", stdout.String())
}

func TestRunExpressionsSyntaxError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runExpressions(&stdout, &stderr, testSettings(), []string{"(+ 1 2"})
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr.String(), "error[syntax-error]")
	assert.Contains(t, stderr.String(), "expr1:1:")
}

func TestStackDepthSetting(t *testing.T) {
	s := testSettings()
	s.MaxStackDepth = 20
	var stdout, stderr bytes.Buffer
	err := runExpressions(&stdout, &stderr, s, []string{
		"(do (def! f (fn* (n) (+ 1 (f (- n 1))))) (f 100))",
	})
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr.String(), "error[stack-overflow]")
}

func TestNewProfilerModes(t *testing.T) {
	for _, mode := range []string{traceOpenTelemetry, traceOpenCensus} {
		t.Run(mode, func(t *testing.T) {
			s := testSettings()
			s.Trace = mode
			var stdout, stderr bytes.Buffer
			err := runExpressions(&stdout, &stderr, s, []string{
				"(do (def! sq (fn* (x) (* x x))) (sq 4))",
			})
			require.NoError(t, err)
			assert.Equal(t, "16\n", stdout.String())
			assert.True(t, strings.Contains(stderr.String(), "span sq"), stderr.String())
		})
	}
}

func TestNewProfilerPprof(t *testing.T) {
	s := testSettings()
	s.Trace = tracePprof
	s.CPUProfile = filepath.Join(t.TempDir(), "cpu.pprof")
	var stdout, stderr bytes.Buffer
	err := runExpressions(&stdout, &stderr, s, []string{"(+ 1 2)"})
	require.NoError(t, err)
	assert.FileExists(t, s.CPUProfile)
}

func TestNewProfilerUnknown(t *testing.T) {
	s := testSettings()
	s.Trace = "bogus"
	_, _, err := newProfiler(lisp.StandardRuntime(), s, &bytes.Buffer{})
	assert.ErrorContains(t, err, `unknown trace mode "bogus"`)
}
