// Copyright © 2021 The ELPS authors

// Package libhelp provides interactive documentation for the special forms,
// builtins and user functions of an environment.
package libhelp

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/luthersystems/mal/lisp"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// MissingDoc describes a symbol with no documentation.
type MissingDoc struct {
	// Kind is the type of the symbol: "builtin" or "special-op".
	Kind string

	// Name is the name of the symbol.
	Name string
}

// CheckMissing reports special operators and builtins in env that have no
// documentation.
func CheckMissing(env *lisp.LEnv) []MissingDoc {
	var missing []MissingDoc

	for _, op := range lisp.DefaultSpecialOps() {
		if strings.TrimSpace(op.Docstring()) == "" {
			missing = append(missing, MissingDoc{Kind: "special-op", Name: op.Name()})
		}
	}

	for _, name := range sortedNames(env) {
		v := env.Get(name)
		if v.Type == lisp.LNative && lisp.Doc(v) == "" {
			missing = append(missing, MissingDoc{Kind: "builtin", Name: name})
		}
	}

	return missing
}

// LoadPackage adds the documentation builtins to env.
func LoadPackage(env *lisp.LEnv) *lisp.LVal {
	env.AddBuiltins(builtins...)
	return lisp.Nil()
}

var builtins = []lisp.LBuiltinDef{
	lisp.BuiltinDef("doc", lisp.Exactly(1), builtinDoc,
		`
		Prints documentation for the given symbol.  Special forms and
		builtins have their arity and docstring rendered.  Closures and
		macros have their parameter list printed.  Other values have their
		types and current values printed.
		`),
	lisp.BuiltinDef("doc-index", lisp.Exactly(0), builtinDocIndex,
		`
		Prints every special form and every builtin function visible in the
		current environment with the first line of its documentation.
		`),
}

func builtinDoc(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	name := args.Cells[0]
	if name.Type != lisp.LSymbol {
		return lisp.ErrorConditionf(lisp.CondType, "\"doc\" expects a symbol for argument 1, got %s", lisp.GetType(name))
	}
	err := RenderVar(env.Runtime.Stdout, env, name.Str)
	if err != nil {
		return lisp.Error(err)
	}
	return lisp.Nil()
}

func builtinDocIndex(env *lisp.LEnv, args *lisp.LVal) *lisp.LVal {
	err := RenderIndex(env.Runtime.Stdout, env)
	if err != nil {
		return lisp.Error(err)
	}
	return lisp.Nil()
}

func sortedNames(env *lisp.LEnv) []string {
	names := env.Names()
	sort.Strings(names)
	return names
}

func specialOp(name string) lisp.LBuiltinDef {
	for _, op := range lisp.DefaultSpecialOps() {
		if op.Name() == name {
			return op
		}
	}
	return nil
}

// RenderIndex writes a summary of the special forms and builtins visible in
// env to w.  Each name is listed with the first line of its documentation.
func RenderIndex(w io.Writer, env *lisp.LEnv) error {
	line := func(name, doc string) error {
		first := strings.SplitN(strings.TrimSpace(doc), "\n", 2)[0]
		_, err := fmt.Fprintf(w, "  %-14s  %s\n", name, strings.TrimSpace(first))
		return err
	}
	for _, op := range lisp.DefaultSpecialOps() {
		if err := line(op.Name(), op.Docstring()); err != nil {
			return err
		}
	}
	for _, name := range sortedNames(env) {
		v := env.Get(name)
		if v.Type != lisp.LNative {
			continue
		}
		if err := line(name, lisp.Doc(v)); err != nil {
			return err
		}
	}
	return nil
}

// RenderVar writes to w formatted documentation for the object referenced by
// sym in the context of env.  The exact formatting of the rendered
// documentation is subject to change.
func RenderVar(w io.Writer, env *lisp.LEnv, sym string) error {
	if op := specialOp(sym); op != nil {
		return renderDef(w, "special-op", sym, op.Arity(), op.Docstring())
	}
	v := env.Get(sym)
	err := lisp.GoError(v)
	if err != nil {
		return err
	}
	switch v.Type {
	case lisp.LNative:
		data := v.FunData()
		return renderDef(w, "builtin", sym, data.Arity, data.Doc)
	case lisp.LFun:
		return renderFun(w, sym, v)
	default:
		return renderVal(w, sym, v)
	}
}

func renderVal(w io.Writer, sym string, v *lisp.LVal) error {
	_, err := fmt.Fprintf(w, "%s %s %s\n", lisp.GetType(v), sym, v)
	return err
}

func renderDef(w io.Writer, kind string, sym string, arity lisp.Arity, doc string) error {
	_, err := fmt.Fprintf(w, "%s %s [%s]\n", kind, sym, argsString(arity))
	if err != nil {
		return err
	}
	doc = cleanDocstring(doc)
	if doc != "" {
		_, err = fmt.Fprintln(w, doc)
	}
	return err
}

func argsString(arity lisp.Arity) string {
	if arity.Min == 1 && arity.Max == 1 {
		return "1 arg"
	}
	return arity.String() + " args"
}

func renderFun(w io.Writer, sym string, v *lisp.LVal) error {
	data := v.FunData()
	sig := make([]*lisp.LVal, 0, len(data.Params)+3)
	sig = append(sig, lisp.Symbol(sym))
	for _, p := range data.Params {
		sig = append(sig, lisp.Symbol(p))
	}
	if data.Variadic != "" {
		sig = append(sig, lisp.Symbol(lisp.VarArgSymbol), lisp.Symbol(data.Variadic))
	}
	_, err := fmt.Fprintf(w, "%s %s\n", lisp.GetType(v), lisp.List(sig))
	if err != nil {
		return fmt.Errorf("rendering signature: %w", err)
	}
	return nil
}

func cleanDocstring(doc string) string {
	if strings.TrimSpace(doc) == "" {
		return ""
	}
	if doc[0] == '\n' {
		doc = doc[1:]
	}
	doc = indent.String(wordwrap.String(strings.TrimSpace(dedentDoc(doc)), 72), 2)
	doc = strings.TrimSuffix(doc, "\n")
	return doc
}

// dedentDoc removes common leading whitespace from all non-empty lines.
// The first line of a raw string literal often has no indentation while
// continuation lines inherit the indentation of the Go source, so the first
// line is ignored when computing the common prefix.  Tabs are normalized to
// spaces before processing.
func dedentDoc(s string) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	lines := strings.Split(s, "\n")

	minWS := -1
	start := 0
	if len(lines) > 1 {
		start = 1
	}
	for _, line := range lines[start:] {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		ws := len(line) - len(trimmed)
		if minWS < 0 || ws < minWS {
			minWS = ws
		}
	}
	if minWS <= 0 {
		return strings.TrimLeft(lines[0], " ") + "\n" + strings.Join(lines[1:], "\n")
	}

	lines[0] = strings.TrimLeft(lines[0], " ")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			lines[i] = ""
		} else if len(lines[i]) >= minWS {
			lines[i] = lines[i][minWS:]
		}
	}
	return strings.Join(lines, "\n")
}
