// Copyright © 2018 The ELPS authors

package rdparser

import (
	"errors"
	"strings"
	"sync"

	"github.com/luthersystems/mal/lisp"
)

// Interactive implements a parser that accumulates lines of terminal input
// until they contain only complete expressions.  A REPL feeds each line it
// reads to Feed and evaluates the returned expressions.
type Interactive struct {
	name       string
	prompt     string
	promptCont string
	buf        []string
	mut        sync.RWMutex
}

// NewInteractive initializes and returns a new Interactive parser.  The
// name is used as the source name of parsed expressions.
func NewInteractive(name string) *Interactive {
	return &Interactive{name: name}
}

// SetPrompts configures the string prompts returned by p.Prompt().  The cont
// string is used to prompt the user when the parser is in the middle of
// parsing an expression at the start of a line.
func (p *Interactive) SetPrompts(prompt, cont string) {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.prompt = prompt
	p.promptCont = cont
}

// Prompt returns a simple prompt that can be used by a REPL.
func (p *Interactive) Prompt() string {
	p.mut.RLock()
	defer p.mut.RUnlock()
	if len(p.buf) > 0 {
		return p.promptCont
	}
	return p.prompt
}

// IsParsing returns true if p is in the middle of parsing an expression.
// IsParsing can be called at any time, potentially by concurrent goroutines or
// when p is nil.
func (p *Interactive) IsParsing() bool {
	if p == nil {
		// definitely not parsing right now
		return false
	}
	p.mut.RLock()
	defer p.mut.RUnlock()
	return len(p.buf) > 0
}

// Feed appends line to the buffered input and parses it.  When the input
// ends in the middle of an expression Feed returns no expressions and a nil
// error and keeps the input so the next line can complete it.  Otherwise the
// buffer is cleared and the parsed expressions, or the first syntax error,
// are returned along with the text that was parsed.
func (p *Interactive) Feed(line string) ([]*lisp.LVal, string, error) {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.buf = append(p.buf, line)
	text := strings.Join(p.buf, "\n")
	exprs, err := New(p.name, []byte(text)).ParseProgram()
	var eofErr *EOFError
	if errors.As(err, &eofErr) {
		return nil, text, nil
	}
	p.buf = nil
	return exprs, text, err
}

// Reset discards any buffered input.
func (p *Interactive) Reset() {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.buf = nil
}
