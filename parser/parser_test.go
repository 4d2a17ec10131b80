// Copyright © 2024 The ELPS authors

package parser

import (
	"errors"
	"testing"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader(t *testing.T) {
	r := NewReader()
	v, err := r.Read("test", "(+ 1 2) (ignored)")
	require.NoError(t, err)
	assert.Equal(t, lisp.LList, v.Type)
	assert.Equal(t, "(+ 1 2)", v.String())
}

func TestNewReaderEmpty(t *testing.T) {
	r := NewReader()
	_, err := r.Read("test", "  ; nothing here\n")
	assert.ErrorIs(t, err, lisp.ErrEmptyInput)
}

func TestReadAll(t *testing.T) {
	exprs, err := ReadAll("test", "1 :kw \"s\"\n; comment\n[a b] {:a 1}")
	require.NoError(t, err)
	var printed []string
	for _, v := range exprs {
		printed = append(printed, v.String())
	}
	assert.Equal(t, []string{"1", ":kw", `"s"`, "[a b]", "(hash-map :a 1)"}, printed)
}

func TestReadAllError(t *testing.T) {
	_, err := ReadAll("test", "(ok)\n(bad")
	require.Error(t, err)
	var locErr *token.LocationError
	require.True(t, errors.As(err, &locErr))
	assert.Equal(t, "test", locErr.Source.File)
	assert.Equal(t, "expected ')', got EOF", locErr.Err.Error())
}
