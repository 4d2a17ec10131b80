// Copyright © 2018 The ELPS authors

package lexer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/luthersystems/mal/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// goparsec searches the remaining input for a pattern, so every pattern
// must be anchored with ^ to match only at the cursor.
const (
	patternSpace   = `^[\s,]+`
	patternComment = `^;[^\n]*`
	patternSpecial = "^(?:~@|[\\[\\]{}()'`~^@])"
	patternString  = `^"(?:\\.|[^\\"])*"`
	patternAtom    = "^[^\\s\\[\\]{}('\"`,;)]+"
)

// UnterminatedString is the text of the error token produced for a string
// literal missing its closing quote.
const UnterminatedString = `expected '"', got EOF`

var intRegexp = regexp.MustCompile(`^[-+]?[0-9]+$`)

var specialTypes = map[string]token.Type{
	"(":  token.PAREN_L,
	")":  token.PAREN_R,
	"[":  token.BRACE_L,
	"]":  token.BRACE_R,
	"{":  token.CURLY_L,
	"}":  token.CURLY_R,
	"'":  token.QUOTE,
	"`":  token.QUASIQUOTE,
	"~":  token.UNQUOTE,
	"~@": token.SPLICE_UNQUOTE,
	"@":  token.DEREF,
	"^":  token.META,
}

// Lexer splits source text into tokens.  Whitespace and commas separate
// tokens and are never emitted.
type Lexer struct {
	file    string
	text    []byte
	scanner parsec.Scanner

	// position of the scanner cursor
	pos       int
	line      int
	lineStart int

	err bool
}

// New returns a Lexer for text.  The file name is attached to token
// locations.
func New(file string, text []byte) *Lexer {
	return &Lexer{
		file:    file,
		text:    text,
		scanner: parsec.NewScanner(text),
		line:    1,
	}
}

// ReadToken returns the next token.  At the end of input ReadToken returns a
// token with type token.EOF, and continues to do so on subsequent calls.
// Lexical errors produce a token with type token.ERROR whose text is the
// error message.  After an error ReadToken always returns the same error.
func (lex *Lexer) ReadToken() *token.Token {
	if lex.err {
		return lex.errorf("lexer stopped after an error")
	}
	lex.skipSpace()
	if lex.scanner.Endof() {
		return &token.Token{Type: token.EOF, Source: lex.loc()}
	}
	if b, ok := lex.match(patternComment); ok {
		return lex.emit(token.COMMENT, b)
	}
	if b, ok := lex.match(patternSpecial); ok {
		return lex.emit(specialTypes[string(b)], b)
	}
	if b, ok := lex.match(patternString); ok {
		return lex.emit(token.STRING, b)
	}
	if lex.peekByte() == '"' {
		lex.err = true
		return lex.errorf(UnterminatedString)
	}
	if b, ok := lex.match(patternAtom); ok {
		text := string(b)
		switch {
		case intRegexp.MatchString(text):
			return lex.emit(token.INT, b)
		case strings.HasPrefix(text, ":"):
			return lex.emit(token.KEYWORD, b)
		default:
			return lex.emit(token.SYMBOL, b)
		}
	}
	lex.err = true
	return lex.errorf("unexpected character %q", lex.peekByte())
}

func (lex *Lexer) skipSpace() {
	b, s := lex.scanner.Match(patternSpace)
	if len(b) > 0 {
		lex.scanner = s
		lex.advance(len(b))
	}
}

// match consumes text matching pattern at the cursor.  The tracked
// position is not advanced until the text is passed to emit.
func (lex *Lexer) match(pattern string) ([]byte, bool) {
	b, s := lex.scanner.Match(pattern)
	if len(b) == 0 {
		return nil, false
	}
	lex.scanner = s
	return b, true
}

func (lex *Lexer) emit(typ token.Type, text []byte) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   string(text),
		Source: lex.loc(),
	}
	lex.advance(len(text))
	return tok
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return &token.Token{
		Type:   token.ERROR,
		Text:   fmt.Sprintf(format, v...),
		Source: lex.loc(),
	}
}

func (lex *Lexer) peekByte() byte {
	if lex.pos >= len(lex.text) {
		return 0
	}
	return lex.text[lex.pos]
}

// advance moves the tracked cursor position forward n bytes, counting lines.
func (lex *Lexer) advance(n int) {
	end := lex.pos + n
	for i := lex.pos; i < end; i++ {
		if lex.text[i] == '\n' {
			lex.line++
			lex.lineStart = i + 1
		}
	}
	lex.pos = end
}

func (lex *Lexer) loc() *token.Location {
	return &token.Location{
		File: lex.file,
		Pos:  lex.pos,
		Line: lex.line,
		Col:  lex.pos - lex.lineStart + 1,
	}
}
