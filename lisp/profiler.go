// Copyright © 2018 The ELPS authors

package lisp

// Profiler observes function calls made by the evaluator.
type Profiler interface {
	// Is the profiler enabled?
	IsEnabled() bool
	// Enable the profiler
	Enable() error
	// End the profiling session and flush any buffered output
	Complete() error
	// Start marks the start of a call to fun.  The returned function marks
	// the end of the call.
	Start(fun *LVal) func()
}
