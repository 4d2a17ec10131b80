// Copyright © 2018 The ELPS authors

package parser

import (
	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/parser/rdparser"
)

// NewReader returns a new lisp.Reader
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// ReadAll parses every top-level form in text.  Syntax errors are returned
// as *token.LocationError values.
func ReadAll(name, text string) ([]*lisp.LVal, error) {
	return rdparser.New(name, []byte(text)).ParseProgram()
}
