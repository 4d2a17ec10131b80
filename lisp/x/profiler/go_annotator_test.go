// Copyright © 2018 The ELPS authors

package profiler_test

import (
	"os"
	"path/filepath"
	"runtime/pprof"
	"testing"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPprofAnnotator(t *testing.T) {
	env := lisp.NewEnv(nil)
	ppa := profiler.NewPprofAnnotator(env.Runtime, nil)
	file, err := os.Create(filepath.Join(t.TempDir(), "pprof"))
	require.NoError(t, err)
	defer file.Close()
	if err := pprof.StartCPUProfile(file); err == nil {
		defer pprof.StopCPUProfile()
	}
	runTestMal(t, env, ppa)
	assert.Same(t, ppa, env.Runtime.Profiler)
	assert.Error(t, ppa.Enable(), "profiler already enabled")
}
