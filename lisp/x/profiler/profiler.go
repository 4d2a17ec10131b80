// Copyright © 2018 The ELPS authors

// Package profiler contains lisp.Profiler implementations which annotate
// function calls made by the evaluator with tracing spans or pprof labels.
package profiler

import (
	"fmt"

	"github.com/luthersystems/mal/lisp"
)

// profiler is a minimal lisp.Profiler
type profiler struct {
	runtime    *lisp.Runtime
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

var _ lisp.Profiler = &profiler{}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Complete() error {
	return nil
}

func (p *profiler) Start(fun *lisp.LVal) func() {
	return func() {}
}

// SkipFilter reports whether calls to fun should not be traced.
type SkipFilter func(fun *lisp.LVal) bool

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// WithoutBuiltins only traces calls to closures defined in lisp.  Builtin
// functions like + and first are called so often that their spans tend to
// drown out everything else.
func WithoutBuiltins() Option {
	return WithSkipFilter(func(fun *lisp.LVal) bool {
		return fun.Type == lisp.LNative
	})
}

func defaultSkipFilter(fun *lisp.LVal) bool {
	switch fun.Type {
	case lisp.LFun, lisp.LNative:
		return false
	default:
		return true
	}
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(v *lisp.LVal) bool {
	return !p.enabled || defaultSkipFilter(v) || p.skipFilter != nil && p.skipFilter(v)
}

// defaultFunName returns the name fun was bound to with def!, or a
// placeholder for anonymous functions.
func defaultFunName(fun *lisp.LVal) string {
	if fun.Str != "" {
		return fun.Str
	}
	if fun.IsMacro {
		return "anonymous-macro"
	}
	return "anonymous-function"
}

// funKind is used as the code namespace of a span.
func funKind(fun *lisp.LVal) string {
	switch {
	case fun.Type == lisp.LNative:
		return "builtin"
	case fun.IsMacro:
		return "macro"
	default:
		return "function"
	}
}

// prettyFunName returns a pretty name and original name for a fun. If there is
// no pretty name, then the pretty name is the original name.
func (p *profiler) prettyFunName(fun *lisp.LVal) (string, string) {
	origLabel := defaultFunName(fun)
	prettyLabel := ""
	if p.funLabeler != nil {
		prettyLabel = sanitizeLabel(p.funLabeler(p.runtime, fun))
	}
	if prettyLabel == "" {
		prettyLabel = origLabel
	}
	return prettyLabel, origLabel
}
