// Copyright © 2018 The ELPS authors

package lisp

import (
	"io/fs"
	"os"
)

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read parses the first form in text and returns it.  When text holds
	// nothing but whitespace and comments Read returns ErrEmptyInput.
	// Syntax errors should be returned as *token.LocationError values.
	Read(name string, text string) (*LVal, error)
}

// SourceLibrary loads source text for slurp.
type SourceLibrary interface {
	LoadSource(path string) ([]byte, error)
}

// RelativeFileSystemLibrary reads files from the host file system.  Relative
// paths are resolved against the process working directory.
type RelativeFileSystemLibrary struct{}

var _ SourceLibrary = &RelativeFileSystemLibrary{}

func (lib *RelativeFileSystemLibrary) LoadSource(path string) ([]byte, error) {
	return os.ReadFile(path) //#nosec G304
}

// FSLibrary reads files from an fs.FS.
type FSLibrary struct {
	FS fs.FS
}

var _ SourceLibrary = &FSLibrary{}

func (lib *FSLibrary) LoadSource(path string) ([]byte, error) {
	return fs.ReadFile(lib.FS, path)
}

// LineReader reads a line of interactive input for the readline builtin.
type LineReader interface {
	// ReadLine displays prompt and returns a line of input without the
	// trailing newline.  At the end of input ReadLine returns io.EOF.
	ReadLine(prompt string) (string, error)
}
