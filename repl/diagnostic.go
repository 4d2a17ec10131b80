// Copyright © 2024 The ELPS authors

package repl

import (
	"fmt"
	"io"

	"github.com/luthersystems/mal/diagnostic"
	"github.com/luthersystems/mal/lisp"
)

// maxStackNotes bounds the number of stack frames listed under an error.
const maxStackNotes = 10

// RenderError renders a lisp error using r.  A nil r renders without
// source snippets and with automatic color detection.
func RenderError(w io.Writer, r *diagnostic.Renderer, lerr *lisp.LVal) {
	if r == nil {
		r = &diagnostic.Renderer{Color: diagnostic.ColorAuto}
	}
	_ = r.Render(w, ErrorDiagnostic(lerr))
}

// ErrorDiagnostic converts an LError value to a Diagnostic for display.
// Syntax errors carry a span pointing at the offending input.  Other errors
// list the call stack at the point they were raised.
func ErrorDiagnostic(lerr *lisp.LVal) diagnostic.Diagnostic {
	ev := (*lisp.ErrorVal)(lerr)
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Message:  ev.Error(),
	}
	if ev.Condition() != lisp.CondUserRaised {
		d.Code = ev.Condition()
	}

	if loc := ev.Location(); loc != nil && loc.Pos >= 0 {
		d.Spans = append(d.Spans, diagnostic.Span{
			File: loc.File,
			Line: loc.Line,
			Col:  loc.Col,
		})
	}

	stack := ev.CallStack()
	if stack != nil {
		n := 0
		for i := len(stack.Frames) - 1; i >= 0; i-- {
			if n == maxStackNotes {
				d.Notes = append(d.Notes, fmt.Sprintf("... %d more frames", i+1))
				break
			}
			d.Notes = append(d.Notes, "in "+stack.Frames[i].String())
			n++
		}
	}

	return d
}
