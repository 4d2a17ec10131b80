// Copyright © 2018 The ELPS authors

package maltest

import (
	"bytes"
	"io"
	"log"
	"testing"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/parser"
)

// NewEnv returns a root environment with the default builtins and prelude
// which writes program output to stdout.  Debugging output is sent to the
// test log.
func NewEnv(t testing.TB, stdout io.Writer, config ...lisp.Config) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	if stdout == nil {
		stdout = io.Discard
	}
	config = append([]lisp.Config{
		lisp.WithMaxStackDepth(10000),
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(NewLogger(t, "stderr: ")),
	}, config...)
	err := lisp.GoError(lisp.InitializeUserEnv(env, config...))
	if err != nil {
		return nil, err
	}
	return env, nil
}

// TestSequence is a sequence of lisp expressions which are evaluated sequentially
// by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the readable form of the evaluated result
	Output string // program output written to Runtime.Stdout
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
// Errors are reported through their message, so an expression which raises
// an error can be tested by setting Result to the expected message.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		log.Printf("test %d -- %s", i, test.Name)
		var exprBuf bytes.Buffer
		env, err := NewEnv(t, &exprBuf)
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			exprBuf.Reset()
			v, err := env.Runtime.Reader.Read("test", expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			result := env.Eval(v).String()
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if exprBuf.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, exprBuf.String())
			}
		}
	}
}

// RunBenchmark runs a standard benchmark that evaluates the forms in source.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	for i := 0; i < b.N; i++ {
		env, err := NewEnv(b, io.Discard)
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		lerr := env.LoadString("benchmark", source)
		if lerr.Type == lisp.LError {
			b.Fatalf("%v", lerr)
		}
		b.StopTimer()
	}
}

// LispError reports err as a test failure including its stack trace, if
// any.
func LispError(t testing.TB, err error) {
	t.Helper()
	lerr, ok := err.(*lisp.ErrorVal)
	if !ok {
		t.Error(err)
		return
	}
	var buf bytes.Buffer
	_, ioerr := lerr.WriteTrace(&buf)
	if ioerr != nil {
		t.Errorf("io error: %v", ioerr)
		t.Error(err)
		return
	}
	t.Error(buf.String())
}
