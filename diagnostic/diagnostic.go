// Copyright © 2018 The ELPS authors

// Package diagnostic renders interpreter errors as annotated source snippets
// for the command line.  It does not depend on the lisp package so that
// errors from any stage (reading, evaluation, configuration) can be
// rendered the same way.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // source name; see Renderer.Sources
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column (0 = auto-detect from source)
	Label  string // text shown under the underline
}

// Diagnostic represents a single error, warning, or note with optional
// source annotations and trailing notes.
type Diagnostic struct {
	Severity Severity
	// Code is an optional classification shown in brackets after the
	// severity, e.g. the error condition "arity-error".
	Code    string
	Message string
	Spans   []Span
	Notes   []string // "= note:" lines (stack trace frames, etc.)
}
