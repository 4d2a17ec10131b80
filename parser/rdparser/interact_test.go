// Copyright © 2018 The ELPS authors

package rdparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractive(t *testing.T) {
	p := NewInteractive("repl")
	p.SetPrompts("user> ", "      ")
	assert.Equal(t, "user> ", p.Prompt())
	assert.False(t, p.IsParsing())

	exprs, text, err := p.Feed("(def! x")
	require.NoError(t, err)
	assert.Empty(t, exprs)
	assert.Equal(t, "(def! x", text)
	assert.True(t, p.IsParsing())
	assert.Equal(t, "      ", p.Prompt())

	exprs, text, err = p.Feed("  3) (+ x 1)")
	require.NoError(t, err)
	assert.Equal(t, "(def! x\n  3) (+ x 1)", text)
	if assert.Len(t, exprs, 2) {
		assert.Equal(t, "(def! x 3)", exprs[0].String())
		assert.Equal(t, "(+ x 1)", exprs[1].String())
	}
	assert.False(t, p.IsParsing())

	exprs, _, err = p.Feed("; nothing here")
	require.NoError(t, err)
	assert.Empty(t, exprs)
	assert.False(t, p.IsParsing())

	_, _, err = p.Feed("(1 2))")
	assert.EqualError(t, err, "repl:1:6: unexpected ')'")
	assert.False(t, p.IsParsing())

	_, _, err = p.Feed(`"abc`)
	require.NoError(t, err)
	assert.True(t, p.IsParsing())
	p.Reset()
	assert.False(t, p.IsParsing())

	var nilp *Interactive
	assert.False(t, nilp.IsParsing())
}
