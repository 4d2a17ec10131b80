// Copyright © 2018 The ELPS authors

package repl

import (
	"sort"
	"strings"

	"github.com/luthersystems/mal/lisp"
)

// symbolCompleter implements readline.AutoCompleter by enumerating symbols
// bound in the REPL environment and the special forms.
type symbolCompleter struct {
	env *lisp.LEnv
}

// wordBreaks are the characters which end a symbol when scanning backwards
// from the cursor.
const wordBreaks = " \t\n,()[]{}'`~@^"

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to a delimiter).
	start := pos
	for start > 0 {
		if strings.ContainsRune(wordBreaks, line[start-1]) {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectSymbols(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		suffix := sym[len(prefix):]
		result = append(result, []rune(suffix))
	}
	return result, pos - start
}

func (c *symbolCompleter) collectSymbols(prefix string) []string {
	seen := make(map[string]bool)
	var result []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}

	for _, op := range lisp.DefaultSpecialOps() {
		add(op.Name())
	}
	for _, name := range c.env.Names() {
		add(name)
	}

	sort.Strings(result)
	return result
}
