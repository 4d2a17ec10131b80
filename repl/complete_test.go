// Copyright © 2018 The ELPS authors

package repl

import (
	"testing"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolCompleter(t *testing.T) {
	env := lisp.NewEnv(nil)
	rc := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
	)
	require.True(t, rc.IsNil())

	c := &symbolCompleter{env: env}

	// "de" should match def!, defmacro! and deref.
	candidates, offset := c.Do([]rune("(de"), 3)
	assert.Equal(t, 2, offset)
	assert.Equal(t, [][]rune{[]rune("f!"), []rune("fmacro!"), []rune("ref")}, candidates)

	// Completion starts after reader macros.
	candidates, offset = c.Do([]rune("'(map @at"), 9)
	assert.Equal(t, 2, offset)
	assert.Contains(t, candidates, []rune("om"))
	assert.Contains(t, candidates, []rune("om?"))

	// "zzz-nonexistent" should have no completions.
	candidates, _ = c.Do([]rune("(zzz-nonexistent"), 16)
	assert.Empty(t, candidates)

	candidates, offset = c.Do([]rune("("), 1)
	assert.Empty(t, candidates)
	assert.Equal(t, 0, offset)
}
