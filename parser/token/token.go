// Copyright © 2018 The ELPS authors

package token

import "fmt"

// Token is a lexeme read from source text.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	if tok.Type == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%q", tok.Text)
}

type Type uint

// Type constants used for the lexer/parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Atomic expressions & literals
	SYMBOL
	KEYWORD
	INT
	STRING

	COMMENT

	// Reader macros
	QUOTE
	QUASIQUOTE
	UNQUOTE
	SPLICE_UNQUOTE
	DEREF
	META

	// Delimiters
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R
	CURLY_L
	CURLY_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:        "invalid",
		ERROR:          "error",
		EOF:            "EOF",
		SYMBOL:         "symbol",
		KEYWORD:        "keyword",
		INT:            "int",
		STRING:         "string",
		COMMENT:        ";",
		QUOTE:          "'",
		QUASIQUOTE:     "`",
		UNQUOTE:        "~",
		SPLICE_UNQUOTE: "~@",
		DEREF:          "@",
		META:           "^",
		PAREN_L:        "(",
		PAREN_R:        ")",
		BRACE_L:        "[",
		BRACE_R:        "]",
		CURLY_L:        "{",
		CURLY_R:        "}",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Location is a position in named source text.
type Location struct {
	File string // a name representing the source stream
	Pos  int    // byte offset from the start of the text
	Line int    // line number (starting at 1 when tracked)
	Col  int    // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

// LocationError is an error associated with a location in source text.
type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *LocationError) Unwrap() error {
	return err.Err
}
