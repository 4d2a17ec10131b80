// Copyright © 2018 The ELPS authors

package lexer

import (
	"testing"

	"github.com/luthersystems/mal/parser/token"
	"github.com/stretchr/testify/assert"
)

type testToken struct {
	typ  token.Type
	text string
}

func readAll(input string) []testToken {
	lex := New("test", []byte(input))
	var toks []testToken
	for {
		tok := lex.ReadToken()
		toks = append(toks, testToken{tok.Type, tok.Text})
		if tok.Type == token.EOF || tok.Type == token.ERROR {
			return toks
		}
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input  string
		tokens []testToken
	}{
		{``, []testToken{
			{token.EOF, ""},
		}},
		{` , ,, `, []testToken{
			{token.EOF, ""},
		}},
		{`abc`, []testToken{
			{token.SYMBOL, "abc"},
			{token.EOF, ""},
		}},
		{`=+()[]{}`, []testToken{
			{token.SYMBOL, "=+"},
			{token.PAREN_L, "("},
			{token.PAREN_R, ")"},
			{token.BRACE_L, "["},
			{token.BRACE_R, "]"},
			{token.CURLY_L, "{"},
			{token.CURLY_R, "}"},
			{token.EOF, ""},
		}},
		{"'a `b ~c ~@d @e ^f", []testToken{
			{token.QUOTE, "'"},
			{token.SYMBOL, "a"},
			{token.QUASIQUOTE, "`"},
			{token.SYMBOL, "b"},
			{token.UNQUOTE, "~"},
			{token.SYMBOL, "c"},
			{token.SPLICE_UNQUOTE, "~@"},
			{token.SYMBOL, "d"},
			{token.DEREF, "@"},
			{token.SYMBOL, "e"},
			{token.META, "^"},
			{token.SYMBOL, "f"},
			{token.EOF, ""},
		}},
		{`10 -5 +7 - abc-1 1abc`, []testToken{
			{token.INT, "10"},
			{token.INT, "-5"},
			{token.INT, "+7"},
			{token.SYMBOL, "-"},
			{token.SYMBOL, "abc-1"},
			{token.SYMBOL, "1abc"},
			{token.EOF, ""},
		}},
		{`:kw :a/b`, []testToken{
			{token.KEYWORD, ":kw"},
			{token.KEYWORD, ":a/b"},
			{token.EOF, ""},
		}},
		{`"abc" "" "a\"b" "a\\"`, []testToken{
			{token.STRING, `"abc"`},
			{token.STRING, `""`},
			{token.STRING, `"a\"b"`},
			{token.STRING, `"a\\"`},
			{token.EOF, ""},
		}},
		{"(a ; comment\nb)", []testToken{
			{token.PAREN_L, "("},
			{token.SYMBOL, "a"},
			{token.COMMENT, "; comment"},
			{token.SYMBOL, "b"},
			{token.PAREN_R, ")"},
			{token.EOF, ""},
		}},
		{`(a,b)`, []testToken{
			{token.PAREN_L, "("},
			{token.SYMBOL, "a"},
			{token.SYMBOL, "b"},
			{token.PAREN_R, ")"},
			{token.EOF, ""},
		}},
		{`a(b)`, []testToken{
			{token.SYMBOL, "a"},
			{token.PAREN_L, "("},
			{token.SYMBOL, "b"},
			{token.PAREN_R, ")"},
			{token.EOF, ""},
		}},
		{`(def! x (+ 1 "s"))`, []testToken{
			{token.PAREN_L, "("},
			{token.SYMBOL, "def!"},
			{token.SYMBOL, "x"},
			{token.PAREN_L, "("},
			{token.SYMBOL, "+"},
			{token.INT, "1"},
			{token.STRING, `"s"`},
			{token.PAREN_R, ")"},
			{token.PAREN_R, ")"},
			{token.EOF, ""},
		}},
		{`"abc`, []testToken{
			{token.ERROR, UnterminatedString},
		}},
		{`"abc\"`, []testToken{
			{token.ERROR, UnterminatedString},
		}},
	}
	for _, test := range tests {
		assert.Equal(t, test.tokens, readAll(test.input), "input: %q", test.input)
	}
}

func TestLexerLocation(t *testing.T) {
	lex := New("test.mal", []byte("(a\n  \"b\")"))
	var locs []token.Location
	for {
		tok := lex.ReadToken()
		locs = append(locs, *tok.Source)
		if tok.Type == token.EOF {
			break
		}
	}
	assert.Equal(t, []token.Location{
		{File: "test.mal", Pos: 0, Line: 1, Col: 1},
		{File: "test.mal", Pos: 1, Line: 1, Col: 2},
		{File: "test.mal", Pos: 5, Line: 2, Col: 3},
		{File: "test.mal", Pos: 8, Line: 2, Col: 6},
		{File: "test.mal", Pos: 9, Line: 2, Col: 7},
	}, locs)
}

func TestLexerStopsAfterError(t *testing.T) {
	lex := New("test", []byte(`"abc`))
	assert.Equal(t, token.ERROR, lex.ReadToken().Type)
	assert.Equal(t, token.ERROR, lex.ReadToken().Type)
}
