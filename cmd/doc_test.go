// Copyright © 2024 The ELPS authors

package cmd

import (
	"bytes"
	"testing"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/lisplib"
	"github.com/luthersystems/mal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocCommand_DefaultFlags(t *testing.T) {
	cmd := DocCommand()
	assert.Equal(t, "doc [flags] [NAME]", cmd.Use)

	for _, name := range []string{"source-file", "missing"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestDocCommand_Builtin(t *testing.T) {
	cmd := DocCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"cons"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "builtin cons [2 args]")
}

func TestDocCommand_Index(t *testing.T) {
	cmd := DocCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "let*")
	assert.Contains(t, out.String(), "hash-map")
}

func TestDocCommand_Missing(t *testing.T) {
	cmd := DocCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--missing"})
	require.NoError(t, cmd.Execute())
	assert.Empty(t, out.String())
}

func TestDocCommand_WithEnvInjectsEnv(t *testing.T) {
	env := lisp.NewEnv(nil)
	rc := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(&bytes.Buffer{}),
		lisp.WithStderr(&bytes.Buffer{}))
	require.True(t, rc.IsNil(), rc.String())
	rc = lisplib.LoadLibrary(env)
	require.True(t, rc.IsNil(), rc.String())
	env.AddBuiltins(lisp.BuiltinDef("my-helper", lisp.Exactly(1),
		func(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal { return args.Cells[0] },
		"Returns its argument."))

	cmd := DocCommand(WithEnv(env))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"my-helper"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "builtin my-helper [1 arg]")
	assert.Contains(t, out.String(), "Returns its argument.")
}
