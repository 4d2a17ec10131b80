// Copyright © 2018 The ELPS authors

package lisp

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/luthersystems/mal/parser/token"
)

// Error conditions.  Every LError carries exactly one of these in its Str
// field.
const (
	CondSyntax         = "syntax-error"
	CondUnbound        = "unbound-symbol"
	CondArity          = "arity-error"
	CondType           = "type-error"
	CondDivisionByZero = "division-by-zero"
	CondIndex          = "index-out-of-range"
	CondUserRaised     = "user-raised"
	CondIO             = "io-error"
	CondStackOverflow  = "stack-overflow"
	CondMacroExpansion = "macro-expansion"
	CondEmptyInput     = "empty-input"
)

// ErrEmptyInput is returned by a Reader when the source text contains no
// forms.  It is not a failure: the REPL simply prompts again.
var ErrEmptyInput = errors.New("empty input")

// ErrorVal implements the error interface so that errors can be first class lisp
// objects.  The condition is stored in the Str field and the raised payload
// is stored in Cells[0].  A *CallStack captured when the error crossed a
// function boundary may be stored in the Native field.
type ErrorVal LVal

// Error implements the error interface.  The message is the display form of
// the payload so that a thrown string reads naturally.
func (e *ErrorVal) Error() string {
	return e.Payload().Print(false)
}

// Condition returns the error condition name (e.g., "arity-error").
func (e *ErrorVal) Condition() string {
	return e.Str
}

// Payload returns the value that was raised.  For errors raised by the
// interpreter this is a string containing the message.
func (e *ErrorVal) Payload() *LVal {
	if len(e.Cells) == 0 || e.Cells[0] == nil {
		return String(e.Str)
	}
	return e.Cells[0]
}

// CallStack returns the call stack captured when the error was raised, if
// any.
func (e *ErrorVal) CallStack() *CallStack {
	stack, _ := e.Native.(*CallStack)
	return stack
}

// Location returns the source location of a syntax error, if known.
func (e *ErrorVal) Location() *token.Location {
	loc, _ := e.Native.(*token.Location)
	return loc
}

// WriteTrace writes the error and a stack trace to w
func (e *ErrorVal) WriteTrace(w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	var n int
	var err error
	wrote := func(_n int, _err error) bool {
		n += _n
		err = _err
		return err == nil
	}
	if !wrote(fmt.Fprintf(bw, "%s: %s\n", e.Condition(), e.Error())) {
		return n, err
	}
	stack := e.CallStack()
	if stack != nil && len(stack.Frames) > 0 {
		if !wrote(stack.DebugPrint(bw)) {
			return n, err
		}
	}
	return n, bw.Flush()
}

// GoError returns an error that represents v.  If v is not LError then nil
// is returned.
func GoError(v *LVal) error {
	if v == nil || v.Type != LError {
		return nil
	}
	return (*ErrorVal)(v)
}

// ErrorCondition returns an LError raising payload under condition.
func ErrorCondition(condition string, payload *LVal) *LVal {
	return &LVal{
		Type:  LError,
		Str:   condition,
		Cells: []*LVal{payload},
	}
}

// ErrorConditionf returns an LError with a formatted message.
func ErrorConditionf(condition string, format string, v ...interface{}) *LVal {
	return ErrorCondition(condition, String(fmt.Sprintf(format, v...)))
}

// Throw returns an LError carrying a value raised by user code.
func Throw(v *LVal) *LVal {
	return ErrorCondition(CondUserRaised, v)
}

// Error returns an LError for a host error.  Errors returned by a Reader
// become syntax or empty-input errors.  Other errors are io errors.
func Error(err error) *LVal {
	if err == nil {
		return Nil()
	}
	if errors.Is(err, ErrEmptyInput) {
		return ErrorCondition(CondEmptyInput, String(err.Error()))
	}
	var locErr *token.LocationError
	if errors.As(err, &locErr) {
		v := ErrorCondition(CondSyntax, String(locErr.Err.Error()))
		v.Native = locErr.Source
		return v
	}
	var lerr *ErrorVal
	if errors.As(err, &lerr) {
		return (*LVal)(lerr)
	}
	return ErrorCondition(CondIO, String(err.Error()))
}
