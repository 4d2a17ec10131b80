// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// Default evaluation limits used by StandardRuntime.
const (
	DefaultMaxMacroExpansionDepth = 10000
	DefaultMaxStackDepth          = 100000
)

// Runtime is an object underlying a family of tree of LEnv values.  It is
// responsible for holding shared environment state, generating identifiers,
// and writing program output and debugging output to streams (typically
// os.Stdout and os.Stderr).
type Runtime struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Stack      *CallStack
	Reader     Reader
	Library    SourceLibrary
	LineReader LineReader
	Profiler   Profiler

	// MaxMacroExpansionDepth bounds the number of successive expansions of
	// a single form.  Zero means unlimited.
	MaxMacroExpansionDepth int

	numenv atomicCounter
	numsym atomicCounter
}

// StandardRuntime returns a new Runtime writing to os.Stdout and os.Stderr
// and reading source files relative to the working directory.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stdout:                 os.Stdout,
		Stderr:                 os.Stderr,
		Stack:                  &CallStack{MaxHeight: DefaultMaxStackDepth},
		Library:                &RelativeFileSystemLibrary{},
		MaxMacroExpansionDepth: DefaultMaxMacroExpansionDepth,
	}
}

func (r *Runtime) GenEnvID() uint {
	return r.numenv.Add(1)
}

// GenSym returns a symbol name that has not been returned before by r.
func (r *Runtime) GenSym() string {
	return fmt.Sprintf("G__%d", r.numsym.Add(1))
}

func (r *Runtime) profiling() bool {
	return r.Profiler != nil && r.Profiler.IsEnabled()
}

type atomicCounter uint64

func (c *atomicCounter) Add(n uint) uint {
	return uint(atomic.AddUint64((*uint64)(c), uint64(n)))
}
