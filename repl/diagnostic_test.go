// Copyright © 2024 The ELPS authors

package repl

import (
	"bytes"
	"testing"

	"github.com/luthersystems/mal/diagnostic"
	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnv(t *testing.T) *lisp.LEnv {
	t.Helper()
	env := lisp.NewEnv(nil)
	rc := lisp.InitializeUserEnv(env, lisp.WithReader(parser.NewReader()))
	require.True(t, rc.IsNil())
	return env
}

func TestErrorDiagnosticSyntax(t *testing.T) {
	env := newTestEnv(t)
	lerr := env.Read(SourceName, "(+ 1\n  (* 2")
	require.Equal(t, lisp.LError, lerr.Type)

	d := ErrorDiagnostic(lerr)
	assert.Equal(t, "syntax-error", d.Code)
	assert.Equal(t, "expected ')', got EOF", d.Message)
	assert.Equal(t, []diagnostic.Span{{File: SourceName, Line: 2, Col: 7}}, d.Spans)
	assert.Empty(t, d.Notes)
}

func TestErrorDiagnosticStack(t *testing.T) {
	env := newTestEnv(t)
	rc := env.LoadString("test", `
(def! f (fn* (x) (+ x "a")))
(def! g (fn* (x) (let* (y (f x)) y)))
`)
	require.True(t, rc.IsNil(), rc.String())

	lerr := env.EvalString("test", "(g 1)")
	require.Equal(t, lisp.LError, lerr.Type)
	d := ErrorDiagnostic(lerr)
	assert.Equal(t, "type-error", d.Code)
	assert.Empty(t, d.Spans)
	assert.Equal(t, []string{"in +", "in f", "in g"}, d.Notes)
}

func TestErrorDiagnosticUserRaised(t *testing.T) {
	env := newTestEnv(t)
	lerr := env.EvalString("test", `(throw {:msg "boom"})`)
	require.Equal(t, lisp.LError, lerr.Type)

	d := ErrorDiagnostic(lerr)
	assert.Equal(t, "", d.Code)
	assert.Equal(t, `{:msg boom}`, d.Message)
}

func TestErrorDiagnosticDeepStack(t *testing.T) {
	env := newTestEnv(t)
	rc := env.LoadString("test", `(def! down (fn* (n) (if (= n 0) (throw "bottom") (+ 1 (down (- n 1))))))`)
	require.True(t, rc.IsNil(), rc.String())

	lerr := env.EvalString("test", "(down 20)")
	require.Equal(t, lisp.LError, lerr.Type)
	d := ErrorDiagnostic(lerr)
	require.Len(t, d.Notes, maxStackNotes+1)
	assert.Equal(t, "in throw", d.Notes[0])
	assert.Equal(t, "... 12 more frames", d.Notes[maxStackNotes])
}

func TestRenderError(t *testing.T) {
	env := newTestEnv(t)
	r := &diagnostic.Renderer{
		Color:   diagnostic.ColorNever,
		Sources: map[string]string{SourceName: "(abc 1"},
	}
	var buf bytes.Buffer
	RenderError(&buf, r, env.Read(SourceName, "(abc 1"))
	assert.Contains(t, buf.String(), "error[syntax-error]: expected ')', got EOF\n")
	assert.Contains(t, buf.String(), "--> repl:1:7\n")
	assert.Contains(t, buf.String(), "(abc 1\n")

	buf.Reset()
	RenderError(&buf, nil, env.EvalString("test", "abc"))
	assert.Contains(t, buf.String(), `error[unbound-symbol]: "abc" not found`)
}
