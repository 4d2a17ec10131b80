// Copyright © 2018 The ELPS authors

package lisp

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// LBuiltin is a function that performs executes a lisp function.  The
// arguments are evaluated and have already been checked against the
// builtin's Arity.
type LBuiltin func(env *LEnv, args *LVal) *LVal

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	Arity() Arity
	Docstring() string
	Eval(env *LEnv, args *LVal) *LVal
}

// BuiltinDef returns an LBuiltinDef that can be passed to LEnv.AddBuiltins.
func BuiltinDef(name string, arity Arity, fn LBuiltin, doc string) LBuiltinDef {
	return &langBuiltin{name, arity, fn, doc}
}

type langBuiltin struct {
	name  string
	arity Arity
	fun   LBuiltin
	docs  string
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Arity() Arity {
	return fun.arity
}

func (fun *langBuiltin) Docstring() string {
	return fun.docs
}

func (fun *langBuiltin) Eval(env *LEnv, args *LVal) *LVal {
	return fun.fun(env, args)
}

// Arity is the range of argument counts accepted by a function.  A negative
// Max means there is no upper bound.
type Arity struct {
	Min int
	Max int
}

// Exactly returns an Arity accepting exactly n arguments.
func Exactly(n int) Arity {
	return Arity{n, n}
}

// Between returns an Arity accepting from min to max arguments, inclusive.
func Between(min, max int) Arity {
	return Arity{min, max}
}

// AtLeast returns an Arity accepting min or more arguments.
func AtLeast(min int) Arity {
	return Arity{min, -1}
}

// Check returns an arity-error if n arguments are not acceptable, and nil
// otherwise.
func (a Arity) Check(name string, n int) *LVal {
	switch {
	case a.Min == a.Max:
		if n != a.Min {
			return ErrorConditionf(CondArity, "%q expects %d arg%s, %d supplied", name, a.Min, plural(a.Min), n)
		}
	case a.Max < 0:
		if n < a.Min {
			return ErrorConditionf(CondArity, "%q expects at least %d arg%s, %d supplied", name, a.Min, plural(a.Min), n)
		}
	default:
		if n < a.Min || n > a.Max {
			return ErrorConditionf(CondArity, "%q expects between %d and %d args, %d supplied", name, a.Min, a.Max, n)
		}
	}
	return nil
}

func (a Arity) String() string {
	switch {
	case a.Min == a.Max:
		return fmt.Sprintf("%d", a.Min)
	case a.Max < 0:
		return fmt.Sprintf("%d or more", a.Min)
	default:
		return fmt.Sprintf("%d to %d", a.Min, a.Max)
	}
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"+", Exactly(2), intOp("+", func(a, b int) *LVal { return Int(a + b) }),
		`Returns the sum of two integers.`},
	{"-", Between(1, 2), builtinSub,
		`Returns the difference of two integers.  With one argument the
		negation of the argument is returned.`},
	{"*", Exactly(2), intOp("*", func(a, b int) *LVal { return Int(a * b) }),
		`Returns the product of two integers.`},
	{"/", Exactly(2), intOp("/", func(a, b int) *LVal {
		if b == 0 {
			return ErrorConditionf(CondDivisionByZero, "Division by zero")
		}
		return Int(a / b)
	}),
		`Returns the quotient of two integers, truncated toward zero.`},
	{"%", Exactly(2), intOp("%", func(a, b int) *LVal {
		if b == 0 {
			return ErrorConditionf(CondDivisionByZero, "Division by zero")
		}
		return Int(a % b)
	}),
		`Returns the remainder of dividing the first integer by the second.
		The result has the sign of the dividend.`},
	{"<=", Exactly(2), intOp("<=", func(a, b int) *LVal { return Bool(a <= b) }),
		`Returns true if the first integer is less than or equal to the
		second.`},
	{"=", Exactly(2), builtinEqual,
		`Returns true if the arguments are structurally equal.  Lists and
		vectors with equal elements are equal.`},

	{"list?", Exactly(1), typePredicate(LList), `Returns true if x is a list.`},
	{"vector?", Exactly(1), typePredicate(LVector), `Returns true if x is a vector.`},
	{"map?", Exactly(1), typePredicate(LHashMap), `Returns true if x is a hash-map.`},
	{"atom?", Exactly(1), typePredicate(LAtom), `Returns true if x is an atom.`},
	{"symbol?", Exactly(1), typePredicate(LSymbol), `Returns true if x is a symbol.`},
	{"keyword?", Exactly(1), typePredicate(LKeyword), `Returns true if x is a keyword.`},
	{"string?", Exactly(1), typePredicate(LString), `Returns true if x is a string.`},
	{"number?", Exactly(1), typePredicate(LInt), `Returns true if x is an integer.`},
	{"nil?", Exactly(1), constPredicate(singletonNil), `Returns true if x is nil.`},
	{"true?", Exactly(1), constPredicate(singletonTrue), `Returns true if x is true.`},
	{"false?", Exactly(1), constPredicate(singletonFalse), `Returns true if x is false.`},
	{"fn?", Exactly(1), builtinIsFn,
		`Returns true if x is a builtin or a closure that is not a macro.`},
	{"macro?", Exactly(1), builtinIsMacro, `Returns true if x is a macro.`},
	{"sequential?", Exactly(1), builtinIsSequential,
		`Returns true if x is a list or a vector.`},
	{"empty?", Exactly(1), builtinIsEmpty,
		`Returns true if the list or vector seq has no elements.`},
	{"contains?", Exactly(2), builtinContains,
		`Returns true if the hash-map m has an entry for key.`},

	{"symbol", Exactly(1), builtinSymbol, `Returns the symbol named by a string.`},
	{"keyword", Exactly(1), builtinKeyword,
		`Returns the keyword named by a string.  A keyword argument is
		returned unchanged.`},
	{"vector", AtLeast(0), builtinVector, `Returns a vector of the arguments.`},
	{"vec", Exactly(1), builtinVec,
		`Returns a vector containing the elements of a list or vector.`},
	{"hash-map", AtLeast(0), builtinHashMap,
		`Returns a hash-map built from alternating keys and values.  Keys
		must be strings or keywords.`},
	{"atom", Exactly(1), builtinAtom, `Returns a new atom holding x.`},

	{"first", Exactly(1), builtinFirst,
		`Returns the first element of seq, or nil if seq is empty or nil.`},
	{"rest", Exactly(1), builtinRest,
		`Returns a list of all but the first element of seq.  The rest of
		an empty sequence or nil is the empty list.`},
	{"nth", Exactly(2), builtinNth,
		`Returns the element of seq at the zero-based index n.`},
	{"cons", Exactly(2), builtinCons,
		`Returns a list with x followed by the elements of seq.`},
	{"concat", AtLeast(0), builtinConcat,
		`Returns a list of the elements of each sequence argument, in order.`},
	{"count", Exactly(1), builtinCount,
		`Returns the number of elements in seq.  The count of nil is 0.`},

	{"assoc", AtLeast(1), builtinAssoc,
		`Returns a copy of the hash-map m with the given key-value pairs
		added.`},
	{"dissoc", AtLeast(1), builtinDissoc,
		`Returns a copy of the hash-map m without the given keys.`},
	{"get", Exactly(2), builtinGet,
		`Returns the value of key in the hash-map m, or nil if m has no
		such key or m is nil.`},
	{"keys", Exactly(1), builtinKeys, `Returns a list of the keys of m.`},
	{"vals", Exactly(1), builtinVals, `Returns a list of the values of m.`},
	{"values", Exactly(1), builtinVals, `An alias of vals.`},

	{"deref", Exactly(1), builtinDeref, `Returns the value held by an atom.`},
	{"reset!", Exactly(2), builtinReset,
		`Replaces the value held by an atom and returns the new value.`},

	{"meta", Exactly(1), builtinMeta,
		`Returns the metadata attached to x, or nil.`},
	{"with-meta", Exactly(2), builtinWithMeta,
		`Returns a copy of x with metadata m attached.`},

	{"eval", Exactly(1), builtinEval,
		`Evaluates expr in the top level environment.`},
	{"apply", AtLeast(2), builtinApply,
		`Calls f with the given arguments followed by the elements of the
		final sequence argument.`},
	{"throw", Exactly(1), builtinThrow,
		`Raises x as an error which may be caught by try*.`},
	{"read-string", Exactly(1), builtinReadString,
		`Parses the first form in a string and returns it unevaluated.`},
	{"gensym", Exactly(0), builtinGensym,
		`Returns a symbol which has not been returned before.`},

	{"pr-str", AtLeast(0), builtinPrStr,
		`Returns the readable forms of the arguments joined by spaces.`},
	{"str", AtLeast(0), builtinStr,
		`Returns the concatenated display forms of the arguments.`},
	{"prn", AtLeast(0), builtinPrn,
		`Writes the readable forms of the arguments, joined by spaces, and
		a newline.  Returns nil.`},
	{"println", AtLeast(0), builtinPrintln,
		`Writes the display forms of the arguments, joined by spaces, and a
		newline.  Returns nil.`},
	{"slurp", Exactly(1), builtinSlurp,
		`Returns the contents of the named file as a string.`},
	{"readline", Exactly(1), builtinReadline,
		`Prompts for a line of input and returns it, or returns nil at the
		end of input.`},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, arity Arity, fn LBuiltin, doc string) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, arity, fn, doc})
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects by InitializeUserEnv.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins)+len(userBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	offset := len(langBuiltins)
	for i := range userBuiltins {
		ops[offset+i] = userBuiltins[i]
	}
	return ops
}

func typeError(name string, pos int, want string, got *LVal) *LVal {
	return ErrorConditionf(CondType, "%q expects %s for argument %d, got %s", name, want, pos+1, GetType(got))
}

func argInt(name string, args *LVal, i int) (int, *LVal) {
	v := args.Cells[i]
	if v.Type != LInt {
		return 0, typeError(name, i, "an integer", v)
	}
	return v.Int, nil
}

func argString(name string, args *LVal, i int) (string, *LVal) {
	v := args.Cells[i]
	if v.Type != LString {
		return "", typeError(name, i, "a string", v)
	}
	return v.Str, nil
}

// argSeq returns the elements of a list or vector argument.  When nilOK is
// true nil is accepted as an empty sequence.
func argSeq(name string, args *LVal, i int, nilOK bool) ([]*LVal, *LVal) {
	v := args.Cells[i]
	if nilOK && v.IsNil() {
		return nil, nil
	}
	if !v.IsSeq() {
		return nil, typeError(name, i, "a list or vector", v)
	}
	return v.Cells, nil
}

func argMap(name string, args *LVal, i int) (*MapData, *LVal) {
	v := args.Cells[i]
	if v.Type != LHashMap {
		return nil, typeError(name, i, "a hash-map", v)
	}
	return v.Map(), nil
}

func argAtom(name string, args *LVal, i int) (*LVal, *LVal) {
	v := args.Cells[i]
	if v.Type != LAtom {
		return nil, typeError(name, i, "an atom", v)
	}
	return v, nil
}

func intOp(name string, op func(a, b int) *LVal) LBuiltin {
	return func(env *LEnv, args *LVal) *LVal {
		a, lerr := argInt(name, args, 0)
		if lerr != nil {
			return lerr
		}
		b, lerr := argInt(name, args, 1)
		if lerr != nil {
			return lerr
		}
		return op(a, b)
	}
}

func builtinSub(env *LEnv, args *LVal) *LVal {
	a, lerr := argInt("-", args, 0)
	if lerr != nil {
		return lerr
	}
	if len(args.Cells) == 1 {
		return Int(-a)
	}
	b, lerr := argInt("-", args, 1)
	if lerr != nil {
		return lerr
	}
	return Int(a - b)
}

func builtinEqual(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].Equal(args.Cells[1]))
}

func typePredicate(typ LType) LBuiltin {
	return func(env *LEnv, args *LVal) *LVal {
		return Bool(args.Cells[0].Type == typ)
	}
}

func constPredicate(c *LVal) LBuiltin {
	return func(env *LEnv, args *LVal) *LVal {
		return Bool(args.Cells[0] == c)
	}
}

func builtinIsFn(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].IsCallable())
}

func builtinIsMacro(env *LEnv, args *LVal) *LVal {
	v := args.Cells[0]
	return Bool(v.Type == LFun && v.IsMacro)
}

func builtinIsSequential(env *LEnv, args *LVal) *LVal {
	return Bool(args.Cells[0].IsSeq())
}

func builtinIsEmpty(env *LEnv, args *LVal) *LVal {
	cells, lerr := argSeq("empty?", args, 0, true)
	if lerr != nil {
		return lerr
	}
	return Bool(len(cells) == 0)
}

func builtinContains(env *LEnv, args *LVal) *LVal {
	m, lerr := argMap("contains?", args, 0)
	if lerr != nil {
		return lerr
	}
	v, lerr := m.Get(args.Cells[1])
	if lerr != nil {
		return lerr
	}
	return Bool(v != nil)
}

func builtinSymbol(env *LEnv, args *LVal) *LVal {
	s, lerr := argString("symbol", args, 0)
	if lerr != nil {
		return lerr
	}
	return Symbol(s)
}

func builtinKeyword(env *LEnv, args *LVal) *LVal {
	if args.Cells[0].Type == LKeyword {
		return args.Cells[0]
	}
	s, lerr := argString("keyword", args, 0)
	if lerr != nil {
		return lerr
	}
	return Keyword(s)
}

func builtinVector(env *LEnv, args *LVal) *LVal {
	return Vector(args.Cells)
}

func builtinVec(env *LEnv, args *LVal) *LVal {
	v := args.Cells[0]
	if v.Type == LVector {
		return v
	}
	cells, lerr := argSeq("vec", args, 0, true)
	if lerr != nil {
		return lerr
	}
	return Vector(copyCells(cells))
}

func builtinHashMap(env *LEnv, args *LVal) *LVal {
	if len(args.Cells)%2 != 0 {
		return ErrorConditionf(CondArity, "\"hash-map\" expects an even number of args, %d supplied", len(args.Cells))
	}
	data, lerr := newMapData(0).Assoc(args.Cells)
	if lerr != nil {
		return lerr
	}
	return HashMap(data)
}

func builtinAtom(env *LEnv, args *LVal) *LVal {
	return Atom(args.Cells[0])
}

func builtinFirst(env *LEnv, args *LVal) *LVal {
	cells, lerr := argSeq("first", args, 0, true)
	if lerr != nil {
		return lerr
	}
	if len(cells) == 0 {
		return Nil()
	}
	return cells[0]
}

func builtinRest(env *LEnv, args *LVal) *LVal {
	cells, lerr := argSeq("rest", args, 0, true)
	if lerr != nil {
		return lerr
	}
	if len(cells) == 0 {
		return List(nil)
	}
	return List(copyCells(cells[1:]))
}

func builtinNth(env *LEnv, args *LVal) *LVal {
	cells, lerr := argSeq("nth", args, 0, false)
	if lerr != nil {
		return lerr
	}
	i, lerr := argInt("nth", args, 1)
	if lerr != nil {
		return lerr
	}
	if i < 0 || i >= len(cells) {
		return ErrorConditionf(CondIndex, "Index out of range: %d not in [0, %d)", i, len(cells))
	}
	return cells[i]
}

func builtinCons(env *LEnv, args *LVal) *LVal {
	cells, lerr := argSeq("cons", args, 1, true)
	if lerr != nil {
		return lerr
	}
	out := make([]*LVal, 0, len(cells)+1)
	out = append(out, args.Cells[0])
	out = append(out, cells...)
	return List(out)
}

func builtinConcat(env *LEnv, args *LVal) *LVal {
	var out []*LVal
	for i := range args.Cells {
		cells, lerr := argSeq("concat", args, i, true)
		if lerr != nil {
			return lerr
		}
		out = append(out, cells...)
	}
	return List(out)
}

func builtinCount(env *LEnv, args *LVal) *LVal {
	cells, lerr := argSeq("count", args, 0, true)
	if lerr != nil {
		return lerr
	}
	return Int(len(cells))
}

func builtinAssoc(env *LEnv, args *LVal) *LVal {
	m, lerr := argMap("assoc", args, 0)
	if lerr != nil {
		return lerr
	}
	if (len(args.Cells)-1)%2 != 0 {
		return ErrorConditionf(CondArity, "\"assoc\" expects an even number of key and value args, %d supplied", len(args.Cells)-1)
	}
	data, lerr := m.Assoc(args.Cells[1:])
	if lerr != nil {
		return lerr
	}
	return HashMap(data)
}

func builtinDissoc(env *LEnv, args *LVal) *LVal {
	m, lerr := argMap("dissoc", args, 0)
	if lerr != nil {
		return lerr
	}
	data, lerr := m.Dissoc(args.Cells[1:])
	if lerr != nil {
		return lerr
	}
	return HashMap(data)
}

func builtinGet(env *LEnv, args *LVal) *LVal {
	if args.Cells[0].IsNil() {
		return Nil()
	}
	m, lerr := argMap("get", args, 0)
	if lerr != nil {
		return lerr
	}
	v, lerr := m.Get(args.Cells[1])
	if lerr != nil {
		return lerr
	}
	if v == nil {
		return Nil()
	}
	return v
}

func builtinKeys(env *LEnv, args *LVal) *LVal {
	m, lerr := argMap("keys", args, 0)
	if lerr != nil {
		return lerr
	}
	return List(m.Keys())
}

func builtinVals(env *LEnv, args *LVal) *LVal {
	m, lerr := argMap("vals", args, 0)
	if lerr != nil {
		return lerr
	}
	return List(m.Vals())
}

func builtinDeref(env *LEnv, args *LVal) *LVal {
	a, lerr := argAtom("deref", args, 0)
	if lerr != nil {
		return lerr
	}
	return a.Deref()
}

func builtinReset(env *LEnv, args *LVal) *LVal {
	a, lerr := argAtom("reset!", args, 0)
	if lerr != nil {
		return lerr
	}
	return a.Reset(args.Cells[1])
}

func builtinMeta(env *LEnv, args *LVal) *LVal {
	v := args.Cells[0]
	if v.Meta == nil {
		return Nil()
	}
	return v.Meta
}

func builtinWithMeta(env *LEnv, args *LVal) *LVal {
	v := args.Cells[0]
	switch v.Type {
	case LList, LVector, LHashMap, LAtom, LFun, LNative:
	default:
		return typeError("with-meta", 0, "a collection or function", v)
	}
	cp := v.Copy()
	cp.Meta = args.Cells[1]
	return cp
}

func builtinEval(env *LEnv, args *LVal) *LVal {
	return env.root().Eval(args.Cells[0])
}

func builtinApply(env *LEnv, args *LVal) *LVal {
	last := len(args.Cells) - 1
	tail, lerr := argSeq("apply", args, last, true)
	if lerr != nil {
		return lerr
	}
	fargs := make([]*LVal, 0, last-1+len(tail))
	fargs = append(fargs, args.Cells[1:last]...)
	fargs = append(fargs, tail...)
	return env.Apply(args.Cells[0], fargs)
}

func builtinThrow(env *LEnv, args *LVal) *LVal {
	return Throw(args.Cells[0])
}

func builtinReadString(env *LEnv, args *LVal) *LVal {
	s, lerr := argString("read-string", args, 0)
	if lerr != nil {
		return lerr
	}
	return env.Read("read-string", s)
}

func builtinGensym(env *LEnv, args *LVal) *LVal {
	return env.GenSym()
}

func joinPrint(cells []*LVal, readably bool, sep string) string {
	var buf strings.Builder
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(sep)
		}
		c.print(&buf, readably)
	}
	return buf.String()
}

func builtinPrStr(env *LEnv, args *LVal) *LVal {
	return String(joinPrint(args.Cells, true, " "))
}

func builtinStr(env *LEnv, args *LVal) *LVal {
	return String(joinPrint(args.Cells, false, ""))
}

func builtinPrn(env *LEnv, args *LVal) *LVal {
	return env.writeLine(joinPrint(args.Cells, true, " "))
}

func builtinPrintln(env *LEnv, args *LVal) *LVal {
	return env.writeLine(joinPrint(args.Cells, false, " "))
}

func (env *LEnv) writeLine(s string) *LVal {
	_, err := io.WriteString(env.Runtime.Stdout, s+"\n")
	if err != nil {
		return Error(err)
	}
	return Nil()
}

func builtinSlurp(env *LEnv, args *LVal) *LVal {
	path, lerr := argString("slurp", args, 0)
	if lerr != nil {
		return lerr
	}
	if env.Runtime.Library == nil {
		return ErrorConditionf(CondIO, "no source library for environment runtime")
	}
	b, err := env.Runtime.Library.LoadSource(path)
	if err != nil {
		return ErrorConditionf(CondIO, "%v", err)
	}
	return String(string(b))
}

func builtinReadline(env *LEnv, args *LVal) *LVal {
	prompt, lerr := argString("readline", args, 0)
	if lerr != nil {
		return lerr
	}
	if env.Runtime.LineReader == nil {
		return ErrorConditionf(CondIO, "no line reader for environment runtime")
	}
	line, err := env.Runtime.LineReader.ReadLine(prompt)
	if errors.Is(err, io.EOF) {
		return Nil()
	}
	if err != nil {
		return ErrorConditionf(CondIO, "%v", err)
	}
	return String(line)
}

func copyCells(cells []*LVal) []*LVal {
	if len(cells) == 0 {
		return nil
	}
	cp := make([]*LVal, len(cells))
	copy(cp, cells)
	return cp
}
