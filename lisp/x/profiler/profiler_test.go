// Copyright © 2018 The ELPS authors

package profiler_test

import (
	"testing"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/parser"
	"github.com/stretchr/testify/require"
)

const testMal = `
(def! add-it (fn* (x y) (+ x y)))
(def! count-down (fn* (x) (if (<= x 0) x (count-down (- x 1)))))
(add-it 1 2)
(add-it (add-it 1 2) 3)
(count-down 3)
`

func onlyNamed(names ...string) func(fun *lisp.LVal) bool {
	return func(fun *lisp.LVal) bool {
		for _, name := range names {
			if fun.Str == name {
				return false
			}
		}
		return true
	}
}

func runTestMal(t *testing.T, env *lisp.LEnv, p lisp.Profiler) {
	t.Helper()
	lerr := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithProfiler(p))
	require.NoError(t, lisp.GoError(lerr))
	require.True(t, p.IsEnabled())
	lerr = env.LoadString("test.mal", testMal)
	require.NoError(t, lisp.GoError(lerr))
	require.NoError(t, p.Complete())
}
