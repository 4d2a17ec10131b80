// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	// LInvalid (0) is not a valid lisp type.
	LInvalid LType = iota
	// LInt values store an integer in the LVal.Int field.
	LInt
	// LString values store their text in the LVal.Str field.
	LString
	// LKeyword values store their name, without the leading colon, in the
	// LVal.Str field.
	LKeyword
	// LSymbol values store the symbol name in the LVal.Str field.
	LSymbol
	// LList values store their elements in LVal.Cells.
	LList
	// LVector values store their elements in LVal.Cells.
	LVector
	// LHashMap values store a *MapData in the LVal.Native field.
	LHashMap
	// LAtom values hold exactly one value in LVal.Cells[0].  The cell is
	// the only place in the value model which is ever mutated after
	// construction.
	LAtom
	// LNative values are primitive functions implemented in Go.  They use
	// the following fields in an LVal:
	//		LVal.Str      The name the builtin was registered under
	//		LVal.Native   An *LFunData with a non-nil Builtin
	LNative
	// LFun values are closures created by fn*.  They use the following
	// fields in an LVal:
	//		LVal.Str      The name the closure was first defined as (if any)
	//		LVal.Native   An *LFunData holding parameters, body and the
	//		              captured environment
	//		LVal.IsMacro  True when the closure was flagged by defmacro!
	LFun
	// LConst values are the singletons nil, true and false.  The constant
	// name is stored in LVal.Str.  Constants are compared by identity.
	LConst
	// LError values carry a raised value up the stack.  They use the
	// following fields in an LVal:
	//		LVal.Str      The error condition (e.g. "arity-error")
	//		LVal.Cells[0] The raised payload.  Errors raised by the host
	//		              carry a string payload holding the message.
	LError
	// LMarkTailCall values are returned by special operators to ask the
	// evaluator to continue with another expression in another environment
	// without growing the Go stack.  LVal.Cells[0] holds the expression and
	// LVal.Native holds the *LEnv.  Marks are never visible to user code.
	LMarkTailCall
	// LTypeMax is not a real type but represents a value numerically greater
	// than all valid LType values.
	LTypeMax
)

var lvalTypeStrings = []string{
	LInvalid:      "INVALID",
	LInt:          "integer",
	LString:       "string",
	LKeyword:      "keyword",
	LSymbol:       "symbol",
	LList:         "list",
	LVector:       "vector",
	LHashMap:      "hash-map",
	LAtom:         "atom",
	LNative:       "builtin",
	LFun:          "function",
	LConst:        "constant",
	LError:        "error",
	LMarkTailCall: "marker-tail-call",
}

func (t LType) String() string {
	if t >= LType(len(lvalTypeStrings)) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LFunData holds the data for builtins and closures.
type LFunData struct {
	// Builtin is set for primitive functions.
	Builtin LBuiltin
	// Arity is checked before Builtin is invoked.
	Arity Arity
	// Doc is a short description of a builtin.
	Doc string

	// Params are the positional parameter names of a closure.  The variadic
	// marker is not included.
	Params []string
	// Variadic names the parameter bound to the remaining arguments, if the
	// closure was declared with ``&''.
	Variadic string
	// Body is the single body expression of a closure.
	Body *LVal
	// Env is the environment captured when the closure was created.
	Env *LEnv
}

// LVal is a lisp value
type LVal struct {
	// Native is generic storage for data which cannot be represented as an
	// LVal (and thus can't be stored in Cells).
	Native interface{}

	// Meta is arbitrary metadata attached with with-meta.  It never takes
	// part in equality.
	Meta *LVal

	// Str used by LString, LKeyword, LSymbol, LConst and function values.
	Str string

	// Cells used by sequences, atoms and errors.
	Cells []*LVal

	// Type is the native type for a value in lisp.
	Type LType

	// Int holds the value of LInt values.
	Int int

	// IsMacro is only meaningful for LFun values.
	IsMacro bool
}

// Singleton LVals for nil, true, and false.
//
// The reader and every builtin return these shared values so that constants
// can be compared by identity.  Callers MUST NOT mutate them.
var (
	singletonNil   = &LVal{Type: LConst, Str: NilSymbol}
	singletonTrue  = &LVal{Type: LConst, Str: TrueSymbol}
	singletonFalse = &LVal{Type: LConst, Str: FalseSymbol}
)

// Names of the constant values.
const (
	NilSymbol   = "nil"
	TrueSymbol  = "true"
	FalseSymbol = "false"
)

// VarArgSymbol separates positional parameters from the rest parameter in a
// fn* parameter list.
const VarArgSymbol = "&"

// Nil returns the nil constant.
func Nil() *LVal {
	return singletonNil
}

// Bool returns the true or false constant.
func Bool(b bool) *LVal {
	if b {
		return singletonTrue
	}
	return singletonFalse
}

// Int returns an LVal representing the number x.
func Int(x int) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// String returns an LVal representing the string str.
func String(str string) *LVal {
	return &LVal{
		Type: LString,
		Str:  str,
	}
}

// Keyword returns a keyword named name.  A leading colon in name is
// stripped.
func Keyword(name string) *LVal {
	return &LVal{
		Type: LKeyword,
		Str:  strings.TrimPrefix(name, ":"),
	}
}

// Symbol returns an LVal representing the symbol s
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// List returns an LVal representing a list.  Provided cells are used as
// backing storage for the returned list and are not copied.
func List(cells []*LVal) *LVal {
	return &LVal{
		Type:  LList,
		Cells: cells,
	}
}

// Vector returns an LVal representing a vector.  Provided cells are used as
// backing storage for the returned vector and are not copied.
func Vector(cells []*LVal) *LVal {
	return &LVal{
		Type:  LVector,
		Cells: cells,
	}
}

// HashMap returns an LVal backed by data.  The data must not be modified
// after it has been handed to HashMap.
func HashMap(data *MapData) *LVal {
	if data == nil {
		data = newMapData(0)
	}
	return &LVal{
		Type:   LHashMap,
		Native: data,
	}
}

// Atom returns a mutable cell holding v.
func Atom(v *LVal) *LVal {
	return &LVal{
		Type:  LAtom,
		Cells: []*LVal{v},
	}
}

// Builtin returns a primitive function named name.
func Builtin(name string, arity Arity, doc string, fn LBuiltin) *LVal {
	return &LVal{
		Type: LNative,
		Str:  name,
		Native: &LFunData{
			Builtin: fn,
			Arity:   arity,
			Doc:     doc,
		},
	}
}

// Lambda returns a closure capturing env.  The formals must be symbols, and
// the variadic marker ``&'' may only appear as the second to last formal.
func Lambda(formals []*LVal, body *LVal, env *LEnv) *LVal {
	data := &LFunData{
		Body: body,
		Env:  env,
	}
	for i, sym := range formals {
		if sym.Type != LSymbol {
			return ErrorConditionf(CondType, "\"fn*\" parameter is not a symbol: %s", sym.Print(true))
		}
		if sym.Str != VarArgSymbol {
			data.Params = append(data.Params, sym.Str)
			continue
		}
		if i != len(formals)-2 {
			return ErrorConditionf(CondType, "\"fn*\" misplaced %s in parameter list", VarArgSymbol)
		}
		rest := formals[i+1]
		if rest.Type != LSymbol || rest.Str == VarArgSymbol {
			return ErrorConditionf(CondType, "\"fn*\" invalid rest parameter: %s", rest.Print(true))
		}
		data.Variadic = rest.Str
		break
	}
	return &LVal{
		Type:   LFun,
		Native: data,
	}
}

func markTailCall(expr *LVal, env *LEnv) *LVal {
	return &LVal{
		Type:   LMarkTailCall,
		Cells:  []*LVal{expr},
		Native: env,
	}
}

func (v *LVal) tailCall() (*LVal, *LEnv) {
	if v.Type != LMarkTailCall {
		panic("not marker-tail-call")
	}
	return v.Cells[0], v.Native.(*LEnv)
}

// FunData returns the function data of a builtin or closure.  FunData panics
// if v is not a function.
func (v *LVal) FunData() *LFunData {
	if v.Type != LFun && v.Type != LNative {
		panic("not a function: " + v.Type.String())
	}
	return v.Native.(*LFunData)
}

// Map returns the backing data of a hash-map.  Map panics if v is not a
// hash-map.
func (v *LVal) Map() *MapData {
	if v.Type != LHashMap {
		panic("not hash-map: " + v.Type.String())
	}
	return v.Native.(*MapData)
}

// Deref returns the contents of an atom.  Deref panics if v is not an atom.
func (v *LVal) Deref() *LVal {
	if v.Type != LAtom {
		panic("not atom: " + v.Type.String())
	}
	return v.Cells[0]
}

// Reset replaces the contents of an atom and returns x.
func (v *LVal) Reset(x *LVal) *LVal {
	if v.Type != LAtom {
		panic("not atom: " + v.Type.String())
	}
	v.Cells[0] = x
	return x
}

// IsNil returns true if v is the nil constant.
func (v *LVal) IsNil() bool {
	return v == singletonNil
}

// IsTrue returns false for the constants nil and false and true for every
// other value.
func (v *LVal) IsTrue() bool {
	return v != singletonNil && v != singletonFalse
}

// IsSeq returns true for lists and vectors.
func (v *LVal) IsSeq() bool {
	return v.Type == LList || v.Type == LVector
}

// IsCallable returns true for builtins and closures that are not macros.
func (v *LVal) IsCallable() bool {
	return v.Type == LNative || (v.Type == LFun && !v.IsMacro)
}

// Len returns the length of a sequence or hash-map and -1 for other values.
func (v *LVal) Len() int {
	switch v.Type {
	case LList, LVector:
		return len(v.Cells)
	case LHashMap:
		return v.Map().Len()
	default:
		return -1
	}
}

// Copy returns a shallow copy of v.  Sequence cells are copied so that the
// returned value does not alias the backing array of v.
func (v *LVal) Copy() *LVal {
	if v == nil {
		return nil
	}
	cp := &LVal{}
	*cp = *v
	if v.IsSeq() {
		cp.Cells = make([]*LVal, len(v.Cells))
		copy(cp.Cells, v.Cells)
	}
	return cp
}

// Equal reports whether v and other are equal under the rules of the ``=''
// builtin.  Lists and vectors with equal elements are equal to each other.
// Functions, atoms and constants are equal only to themselves.
func (v *LVal) Equal(other *LVal) bool {
	if v.IsSeq() && other.IsSeq() {
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	}
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LInt:
		return v.Int == other.Int
	case LString, LKeyword, LSymbol:
		return v.Str == other.Str
	case LHashMap:
		return v.Map().equal(other.Map())
	default:
		return v == other
	}
}

// String returns the readable representation of v.
func (v *LVal) String() string {
	return v.Print(true)
}

// Print renders v.  When readably is true strings are quoted and escaped so
// that the reader can parse the output back into an equal value.  Otherwise
// the raw contents of strings are written, as used by str and println.
func (v *LVal) Print(readably bool) string {
	var buf strings.Builder
	v.print(&buf, readably)
	return buf.String()
}

func (v *LVal) print(buf *strings.Builder, readably bool) {
	switch v.Type {
	case LInt:
		buf.WriteString(strconv.Itoa(v.Int))
	case LString:
		if readably {
			buf.WriteString(Escape(v.Str))
		} else {
			buf.WriteString(v.Str)
		}
	case LKeyword:
		buf.WriteString(":")
		buf.WriteString(v.Str)
	case LSymbol, LConst:
		buf.WriteString(v.Str)
	case LList:
		printSeq(buf, v.Cells, readably, "(", ")")
	case LVector:
		printSeq(buf, v.Cells, readably, "[", "]")
	case LHashMap:
		buf.WriteString("{")
		for i, pair := range v.Map().entries() {
			if i > 0 {
				buf.WriteString(" ")
			}
			pair.key.print(buf, readably)
			buf.WriteString(" ")
			pair.val.print(buf, readably)
		}
		buf.WriteString("}")
	case LAtom:
		buf.WriteString("(atom ")
		v.Cells[0].print(buf, readably)
		buf.WriteString(")")
	case LNative:
		fmt.Fprintf(buf, "#<builtin %s>", v.Str)
	case LFun:
		if v.IsMacro {
			buf.WriteString("#<macro>")
		} else {
			buf.WriteString("#<function>")
		}
	case LError:
		buf.WriteString((*ErrorVal)(v).Error())
	case LMarkTailCall:
		fmt.Fprintf(buf, "#<tail-call %s>", v.Cells[0])
	default:
		fmt.Fprintf(buf, "#<%s>", v.Type)
	}
}

func printSeq(buf *strings.Builder, cells []*LVal, readably bool, left, right string) {
	buf.WriteString(left)
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		c.print(buf, readably)
	}
	buf.WriteString(right)
}

// Escape returns the readable form of the string s, including surrounding
// double quotes.
func Escape(s string) string {
	var buf strings.Builder
	buf.Grow(len(s) + 2)
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			buf.WriteString(`\\`)
		case '"':
			buf.WriteString(`\"`)
		case '\n':
			buf.WriteString(`\n`)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}

// Unescape is the inverse of Escape.  The argument must include the
// surrounding double quotes.  Only \\, \" and \n are escapes; any other
// backslash is kept as written.
func Unescape(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			buf.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case 'n':
			buf.WriteByte('\n')
		case '\\', '"':
			buf.WriteByte(s[i+1])
		default:
			buf.WriteByte(c)
			continue
		}
		i++
	}
	return buf.String()
}

// GetType returns the type name of v as used in error messages.
func GetType(v *LVal) string {
	if v.Type == LConst {
		return v.Str
	}
	if v.Type == LFun && v.IsMacro {
		return "macro"
	}
	return v.Type.String()
}
