// Copyright © 2018 The ELPS authors

package lisp

import (
	"strings"
)

// ArgvSymbol is bound to the list of command line arguments given to a
// script.
const ArgvSymbol = "*ARGV*"

// InitializeUserEnv creates the default user environment.  Configuration is
// applied before the prelude is evaluated so the prelude can be parsed with
// the configured Reader.
func InitializeUserEnv(env *LEnv, config ...Config) *LVal {
	for _, fn := range config {
		lerr := fn(env)
		if lerr.Type == LError {
			return lerr
		}
	}
	env.AddBuiltins(DefaultBuiltins()...)
	if _, ok := env.Scope[ArgvSymbol]; !ok {
		env.Put(ArgvSymbol, List(nil))
	}
	return env.loadPrelude()
}

// LEnv is a lisp environment.
type LEnv struct {
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
	ID      uint
}

// NewEnvRuntime initializes a new LEnv, like NewEnv, but it explicitly
// specifies the runtime to use.  NewEnvRuntime is only suitable for creating
// root LEnv object, so it does not take a parent argument.  When rt is nil
// StandardRuntime() called to create a new Runtime for the returned LEnv.  It
// is an error to use the same runtime object in multiple calls to
// NewEnvRuntime if the two envs are not in the same tree and doing so will
// have unspecified results.
func NewEnvRuntime(rt *Runtime) *LEnv {
	if rt == nil {
		rt = StandardRuntime()
	}
	return &LEnv{
		ID:      rt.GenEnvID(),
		Scope:   make(map[string]*LVal),
		Runtime: rt,
	}
}

// NewEnv returns initializes and returns a new LEnv.  When parent is nil a
// root environment with a standard runtime is returned.
func NewEnv(parent *LEnv) *LEnv {
	return newEnvN(parent, 0)
}

func newEnvN(parent *LEnv, n int) *LEnv {
	if parent == nil {
		return NewEnvRuntime(nil)
	}
	return &LEnv{
		ID:      parent.Runtime.GenEnvID(),
		Scope:   make(map[string]*LVal, n),
		Parent:  parent,
		Runtime: parent.Runtime,
	}
}

// GenSym returns a symbol which has not been used before in the runtime.
func (env *LEnv) GenSym() *LVal {
	return Symbol(env.Runtime.GenSym())
}

// Read parses the first form of text using the runtime Reader.  Read returns
// an LError with condition empty-input when text contains no forms.
func (env *LEnv) Read(name, text string) *LVal {
	if env.Runtime.Reader == nil {
		return ErrorConditionf(CondIO, "no reader for environment runtime")
	}
	v, err := env.Runtime.Reader.Read(name, text)
	if err != nil {
		return Error(err)
	}
	return v
}

// EvalString reads the first form in text and evaluates it in env.
func (env *LEnv) EvalString(name, text string) *LVal {
	v := env.Read(name, text)
	if v.Type == LError {
		return v
	}
	return env.Eval(v)
}

// LoadString evaluates every form in text, in order, in the root
// environment as the load-file function would.  LoadString returns nil, or
// the first error encountered.
func (env *LEnv) LoadString(name, text string) *LVal {
	v := env.Read(name, "(do "+text+"\nnil)")
	if v.Type == LError {
		return v
	}
	return env.root().Eval(v)
}

func (env *LEnv) loadPrelude() *LVal {
	for _, src := range prelude {
		v := env.EvalString("prelude", src)
		if v.Type == LError {
			return v
		}
	}
	return Nil()
}

// Get takes an LSymbol k and returns the LVal it is bound to in env.  An
// unbound symbol results in an unbound-symbol error.
func (env *LEnv) Get(name string) *LVal {
	frame := env.Find(name)
	if frame == nil {
		return ErrorConditionf(CondUnbound, "%q not found", name)
	}
	return frame.Scope[name]
}

// Find returns the innermost environment which binds name, or nil.
func (env *LEnv) Find(name string) *LEnv {
	for e := env; e != nil; e = e.Parent {
		if _, ok := e.Scope[name]; ok {
			return e
		}
	}
	return nil
}

// Put binds name to v in env, shadowing any binding in a parent
// environment.  Put returns v.
func (env *LEnv) Put(name string, v *LVal) *LVal {
	if v == nil {
		panic("nil value")
	}
	env.Scope[name] = v
	return v
}

// Names returns the names bound in env and its parents.  Names bound in
// more than one environment are listed once.
func (env *LEnv) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for e := env; e != nil; e = e.Parent {
		for k := range e.Scope {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	return names
}

// Lambda returns a new closure with the given formals and body capturing
// env.
func (env *LEnv) Lambda(formals *LVal, body *LVal) *LVal {
	if !formals.IsSeq() {
		return ErrorConditionf(CondType, "\"fn*\" parameters are not a list or vector: %s", GetType(formals))
	}
	return Lambda(formals.Cells, body, env)
}

func (env *LEnv) root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// AddBuiltins binds the given builtin functions in env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	for _, f := range funs {
		env.Put(f.Name(), Builtin(f.Name(), f.Arity(), f.Docstring(), f.Eval))
	}
}

// Doc returns the documentation string for v, if it has any.
func Doc(v *LVal) string {
	if v.Type != LNative {
		return ""
	}
	return strings.TrimSpace(v.FunData().Doc)
}
