// Copyright © 2018 The ELPS authors

// Package lisplib is used to conveniently load the standard library for the
// mal environment
package lisplib

import (
	"bytes"
	"fmt"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/lisp/lisplib/libhelp"
	"github.com/luthersystems/mal/parser"
)

// LoadLibrary loads the standard library into env.
func LoadLibrary(env *lisp.LEnv) *lisp.LVal {
	e := libhelp.LoadPackage(env)
	if !e.IsNil() {
		return e
	}
	return lisp.Nil()
}

// NewDocEnv creates a standard environment with the library loaded,
// suitable for documentation queries.
func NewDocEnv() (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	env.Runtime.Stdout = &bytes.Buffer{}
	env.Runtime.Stderr = &bytes.Buffer{}
	rc := lisp.InitializeUserEnv(env, lisp.WithReader(parser.NewReader()))
	if !rc.IsNil() {
		return nil, fmt.Errorf("initialize-user-env returned non-nil: %v", rc)
	}
	rc = LoadLibrary(env)
	if !rc.IsNil() {
		return nil, fmt.Errorf("load-library returned non-nil: %v", rc)
	}
	return env, nil
}
