// Copyright © 2018 The ELPS authors

package profiler

import (
	"regexp"
	"strings"

	"github.com/luthersystems/mal/lisp"
)

// FunLabeler provides an alternative name for a function label in the trace.
// Returning the empty string keeps the default label.
type FunLabeler func(runtime *lisp.Runtime, fun *lisp.LVal) string

// WithFunLabeler sets the labeler for tracing spans.
func WithFunLabeler(funLabeler FunLabeler) Option {
	return func(p *profiler) {
		p.funLabeler = funLabeler
	}
}

// WithLabels labels spans for the named functions using the given map.
// Functions not in the map keep their default label.
func WithLabels(labels map[string]string) Option {
	return WithFunLabeler(func(_ *lisp.Runtime, fun *lisp.LVal) string {
		return labels[fun.Str]
	})
}

var (
	sanitizeRegExp   = regexp.MustCompile(`[\s_]+`)
	validLabelRegExp = regexp.MustCompile(`[[:graph:]]*`)
)

func sanitizeLabel(userLabel string) string {
	userLabel = strings.TrimSpace(userLabel)
	if userLabel == "" {
		return ""
	}

	// Replace spaces with underscores
	userLabel = sanitizeRegExp.ReplaceAllString(userLabel, "_")

	// Find the first valid label match
	matches := validLabelRegExp.FindStringSubmatch(userLabel)
	if len(matches) > 0 {
		return matches[0]
	}

	return ""
}
