// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) *LVal

// WithMaxStackDepth returns a Config that will prevent an execution
// environment from allowing the number of active function calls to exceed
// n.  Calls elided by tail call optimization do not count against the
// limit.  A value of zero disables the limit.
func WithMaxStackDepth(n int) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stack.MaxHeight = n
		return Nil()
	}
}

// WithReader returns a Config that makes environments use r to parse source
// text.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Reader = r
		return Nil()
	}
}

// WithStdout returns a Config that makes environments write program output
// (prn, println) to w instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stdout = w
		return Nil()
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stderr = w
		return Nil()
	}
}

// WithLibrary returns a Config that makes environments use l
// as a source library for slurp.
func WithLibrary(l SourceLibrary) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Library = l
		return Nil()
	}
}

// WithLineReader returns a Config that makes the readline builtin prompt
// using r.
func WithLineReader(r LineReader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.LineReader = r
		return Nil()
	}
}

// WithMaxMacroExpansionDepth returns a Config that limits the number of
// successive macro expansions during evaluation.  This prevents infinite
// macro expansion from hanging the interpreter.
func WithMaxMacroExpansionDepth(n int) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.MaxMacroExpansionDepth = n
		return Nil()
	}
}

// WithProfiler returns a Config that attaches p to the runtime and enables
// it.
func WithProfiler(p Profiler) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Profiler = p
		if p.IsEnabled() {
			return Nil()
		}
		err := p.Enable()
		if err != nil {
			return Error(err)
		}
		return Nil()
	}
}

// WithArgv returns a Config that binds *ARGV* to a list of the given
// strings.
func WithArgv(args []string) Config {
	return func(env *LEnv) *LVal {
		cells := make([]*LVal, len(args))
		for i := range args {
			cells[i] = String(args[i])
		}
		env.root().Put(ArgvSymbol, List(cells))
		return Nil()
	}
}
