// Copyright © 2018 The ELPS authors

package rdparser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/luthersystems/mal/lisp"
	"github.com/luthersystems/mal/parser/lexer"
	"github.com/luthersystems/mal/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, text string) (*lisp.LVal, error) {
	p := New(name, []byte(text))
	return p.Parse()
}

// EOFError is reported when the input ends in the middle of a form.  A REPL
// may use it to decide to prompt for more input.
type EOFError struct {
	Expected string
}

func (err *EOFError) Error() string {
	return fmt.Sprintf("expected '%s', got EOF", err.Expected)
}

// Parser is a lisp parser.
type Parser struct {
	src *TokenSource
}

// NewFromSource initializes and returns a Parser that reads tokens from src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{
		src: src,
	}
}

// New initializes and returns a new Parser that reads tokens from text.
func New(name string, text []byte) *Parser {
	return NewFromSource(NewTokenSource(name, text))
}

// Parse parses the first form in the input.  Parse returns
// lisp.ErrEmptyInput if the input contains only whitespace and comments.
// Input following the first form is ignored.
func (p *Parser) Parse() (*lisp.LVal, error) {
	p.ignoreComments()
	if p.src.IsEOF() {
		return nil, lisp.ErrEmptyInput
	}
	return p.ParseExpression()
}

// ParseProgram parses every form in the input.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for {
		expr, err := p.Parse()
		if errors.Is(err, lisp.ErrEmptyInput) {
			return exprs, nil
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
}

// ParseExpression parses a single expression.  Unlike Parse, ParseExpression
// requires an expression to be present in the input stream and will report
// unexpected EOF tokens encountered.
func (p *Parser) ParseExpression() (*lisp.LVal, error) {
	p.ignoreComments()
	switch p.PeekType() {
	case token.INT:
		return p.ParseLiteralInt()
	case token.STRING:
		p.ReadToken()
		return lisp.String(lisp.Unescape(p.TokenText())), nil
	case token.KEYWORD:
		p.ReadToken()
		return lisp.Keyword(p.TokenText()), nil
	case token.SYMBOL:
		return p.ParseSymbol(), nil
	case token.QUOTE:
		return p.parseWrapped("quote")
	case token.QUASIQUOTE:
		return p.parseWrapped("quasiquote")
	case token.UNQUOTE:
		return p.parseWrapped(lisp.UnquoteSymbol)
	case token.SPLICE_UNQUOTE:
		return p.parseWrapped(lisp.SpliceUnquoteSymbol)
	case token.DEREF:
		return p.parseWrapped("deref")
	case token.META:
		return p.ParseMeta()
	case token.PAREN_L:
		cells, err := p.parseSeq(token.PAREN_R)
		if err != nil {
			return nil, err
		}
		return lisp.List(cells), nil
	case token.BRACE_L:
		cells, err := p.parseSeq(token.BRACE_R)
		if err != nil {
			return nil, err
		}
		return lisp.Vector(cells), nil
	case token.CURLY_L:
		return p.ParseHashMap()
	case token.ERROR:
		p.ReadToken()
		if p.TokenText() == lexer.UnterminatedString {
			return nil, p.error(&EOFError{Expected: `"`})
		}
		return nil, p.error(errors.New(p.TokenText()))
	case token.EOF:
		p.ReadToken()
		return nil, p.error(&EOFError{Expected: "form"})
	default:
		p.ReadToken()
		return nil, p.errorf("unexpected '%s'", p.TokenText())
	}
}

func (p *Parser) ParseLiteralInt() (*lisp.LVal, error) {
	if !p.Accept(token.INT) {
		return nil, p.errorf("invalid integer literal: %v", p.PeekType())
	}
	text := p.TokenText()
	x, err := strconv.Atoi(text)
	if err != nil {
		return nil, p.errorf("integer literal overflows int: %v", text)
	}
	return lisp.Int(x), nil
}

// ParseSymbol parses a symbol token.  The names nil, true and false produce
// the shared constant values.
func (p *Parser) ParseSymbol() *lisp.LVal {
	p.ReadToken()
	switch text := p.TokenText(); text {
	case lisp.NilSymbol:
		return lisp.Nil()
	case lisp.TrueSymbol:
		return lisp.Bool(true)
	case lisp.FalseSymbol:
		return lisp.Bool(false)
	default:
		return lisp.Symbol(text)
	}
}

// parseWrapped parses a reader macro followed by a form and returns the
// list (sym form).
func (p *Parser) parseWrapped(sym string) (*lisp.LVal, error) {
	p.ReadToken()
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return lisp.List([]*lisp.LVal{lisp.Symbol(sym), expr}), nil
}

// ParseMeta parses ^meta form, which reads as (with-meta form meta).
func (p *Parser) ParseMeta() (*lisp.LVal, error) {
	p.ReadToken()
	meta, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return lisp.List([]*lisp.LVal{lisp.Symbol("with-meta"), expr, meta}), nil
}

// ParseHashMap parses {k v ...}, which reads as (hash-map k v ...).  Keys
// are checked when the form is evaluated.
func (p *Parser) ParseHashMap() (*lisp.LVal, error) {
	cells, err := p.parseSeq(token.CURLY_R)
	if err != nil {
		return nil, err
	}
	return lisp.List(append([]*lisp.LVal{lisp.Symbol("hash-map")}, cells...)), nil
}

// parseSeq parses forms up to a closing delimiter of type end.
func (p *Parser) parseSeq(end token.Type) ([]*lisp.LVal, error) {
	p.ReadToken()
	var cells []*lisp.LVal
	for {
		p.ignoreComments()
		if p.src.IsEOF() {
			p.ReadToken()
			return nil, p.error(&EOFError{Expected: end.String()})
		}
		if p.Accept(end) {
			return cells, nil
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		cells = append(cells, x)
	}
}

func (p *Parser) ignoreComments() {
	for p.Accept(token.COMMENT) {
	}
}

func (p *Parser) ReadToken() *token.Token {
	p.src.Scan()
	return p.src.Token
}

func (p *Parser) TokenText() string {
	return p.src.Token.Text
}

func (p *Parser) TokenType() token.Type {
	return p.src.Token.Type
}

func (p *Parser) Location() *token.Location {
	return p.src.Token.Source
}

func (p *Parser) PeekType() token.Type {
	return p.src.Peek().Type
}

func (p *Parser) Accept(typ ...token.Type) bool {
	return p.src.AcceptType(typ...)
}

func (p *Parser) error(err error) error {
	return &token.LocationError{
		Err:    err,
		Source: p.Location(),
	}
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	return p.error(fmt.Errorf(format, v...))
}
