// Copyright © 2018 The ELPS authors

package maltest

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/luthersystems/mal/lisp"
	"github.com/stretchr/testify/assert"
)

// FileCase is one expression read from a test file along with its
// expectations.
type FileCase struct {
	Line   int
	Expr   string
	Result *string  // expected readable result, if given
	Output []string // patterns which must match successive output lines
}

// ParseTestFile reads test cases from the line oriented test file format.
// Each line holding an expression may be followed by lines of the form
//
//	;/pattern    a regular expression matching the next line of output
//	;=>result    the readable form of the expected result
//
// Blank lines and lines beginning with ";;" or ";>>>" are ignored.  Errors
// are written to the output as a single line holding the error message.
func ParseTestFile(src []byte) ([]*FileCase, error) {
	var cases []*FileCase
	var cur *FileCase
	scanner := bufio.NewScanner(bytes.NewReader(src))
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		switch {
		case strings.TrimSpace(line) == "",
			strings.HasPrefix(line, ";;"),
			strings.HasPrefix(line, ";>>>"):
		case strings.HasPrefix(line, ";=>"):
			if cur == nil {
				return nil, fmt.Errorf("line %d: result without expression", n)
			}
			result := line[3:]
			cur.Result = &result
		case strings.HasPrefix(line, ";/"):
			if cur == nil {
				return nil, fmt.Errorf("line %d: output without expression", n)
			}
			cur.Output = append(cur.Output, line[2:])
		default:
			cur = &FileCase{Line: n, Expr: line}
			cases = append(cases, cur)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

// RunTestFile evaluates each case in the test file at path, in order, in a
// single environment.
func RunTestFile(t *testing.T, path string) {
	src, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		t.Fatalf("Unable to read test file: %v", err)
	}
	cases, err := ParseTestFile(src)
	if err != nil {
		t.Fatalf("Unable to parse test file %s: %v", path, err)
	}
	var out bytes.Buffer
	env, err := NewEnv(t, &out)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range cases {
		c := c
		t.Run(fmt.Sprintf("line%d", c.Line), func(t *testing.T) {
			out.Reset()
			v := env.EvalString(path, c.Expr)
			if v.Type == lisp.LError {
				if v.Str == lisp.CondEmptyInput {
					return
				}
				fmt.Fprintln(&out, v)
			}
			runFileCase(t, c, v, out.String())
		})
	}
}

func runFileCase(t *testing.T, c *FileCase, v *lisp.LVal, output string) {
	t.Helper()
	if len(c.Output) > 0 {
		lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
		if assert.GreaterOrEqual(t, len(lines), len(c.Output), "%s: missing output", c.Expr) {
			for i, pattern := range c.Output {
				re, err := regexp.Compile("^(?:" + pattern + ")$")
				if !assert.NoError(t, err) {
					continue
				}
				assert.Regexp(t, re, lines[i], "%s: output line %d", c.Expr, i+1)
			}
		}
	}
	if c.Result != nil {
		if assert.NotEqual(t, lisp.LError, v.Type, "%s: unexpected error: %v", c.Expr, v) {
			assert.Equal(t, *c.Result, v.String(), c.Expr)
		}
	}
}
