// Copyright © 2018 The ELPS authors

package lisp

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Eval does not modify v.
//
// Tail positions of special forms and closure bodies are evaluated by
// looping rather than recursing, so tail calls run in constant Go stack
// space.
func (env *LEnv) Eval(ast *LVal) (result *LVal) {
	rt := env.Runtime
	pushed := false
	var endTrace func()
	defer func() {
		if result.Type == LError && result.Native == nil {
			result.Native = rt.Stack.Copy()
		}
		if endTrace != nil {
			endTrace()
		}
		if pushed {
			rt.Stack.Pop()
		}
	}()
	for {
		if ast.Type != LList || len(ast.Cells) == 0 {
			return env.evalForm(ast)
		}
		ast = env.MacroExpand(ast)
		if ast.Type == LError {
			return ast
		}
		if ast.Type != LList || len(ast.Cells) == 0 {
			return env.evalForm(ast)
		}
		if head := ast.Cells[0]; head.Type == LSymbol {
			if op, ok := specialOpIndex[head.Str]; ok {
				r := op.call(env, ast.Cells[1:])
				if r.Type != LMarkTailCall {
					return r
				}
				ast, env = r.tailCall()
				continue
			}
		}
		cells, lerr := env.evalCells(ast.Cells)
		if lerr != nil {
			return lerr
		}
		fun, args := cells[0], cells[1:]
		if fun.Type != LFun {
			return env.Apply(fun, args)
		}
		if fun.IsMacro {
			return ErrorConditionf(CondType, "%s is a macro and cannot be called as a function", funName(fun))
		}
		callEnv, lerr := fun.bind(args)
		if lerr != nil {
			return lerr
		}
		if pushed {
			rt.Stack.TailCall(funName(fun))
		} else {
			err := rt.Stack.Push(funName(fun))
			if err != nil {
				return ErrorConditionf(CondStackOverflow, "%v", err)
			}
			pushed = true
		}
		if rt.profiling() {
			if endTrace != nil {
				endTrace()
			}
			endTrace = rt.Profiler.Start(fun)
		}
		ast, env = fun.FunData().Body, callEnv
	}
}

// evalForm evaluates a value which is not a non-empty list.
func (env *LEnv) evalForm(v *LVal) *LVal {
	switch v.Type {
	case LSymbol:
		return env.Get(v.Str)
	case LVector:
		cells, lerr := env.evalCells(v.Cells)
		if lerr != nil {
			return lerr
		}
		return Vector(cells)
	case LHashMap:
		data, lerr := v.Map().mapValues(env.Eval)
		if lerr != nil {
			return lerr
		}
		return HashMap(data)
	default:
		return v
	}
}

// evalCells evaluates each of cells in order and returns a new slice of
// results.  The first error encountered is returned as the second value.
func (env *LEnv) evalCells(cells []*LVal) ([]*LVal, *LVal) {
	out := make([]*LVal, len(cells))
	for i, c := range cells {
		v := env.Eval(c)
		if v.Type == LError {
			return nil, v
		}
		out[i] = v
	}
	return out, nil
}

// Apply calls fun with already evaluated args.  Apply accepts builtins,
// closures and macros.
func (env *LEnv) Apply(fun *LVal, args []*LVal) *LVal {
	switch fun.Type {
	case LNative:
		return env.callBuiltin(fun, args)
	case LFun:
		callEnv, lerr := fun.bind(args)
		if lerr != nil {
			return lerr
		}
		rt := env.Runtime
		err := rt.Stack.Push(funName(fun))
		if err != nil {
			return ErrorConditionf(CondStackOverflow, "%v", err)
		}
		defer rt.Stack.Pop()
		if rt.profiling() {
			defer rt.Profiler.Start(fun)()
		}
		return callEnv.Eval(fun.FunData().Body)
	default:
		return ErrorConditionf(CondType, "%s is not applicable", fun.Print(true))
	}
}

func (env *LEnv) callBuiltin(fun *LVal, args []*LVal) *LVal {
	data := fun.FunData()
	lerr := data.Arity.Check(fun.Str, len(args))
	if lerr != nil {
		return lerr
	}
	rt := env.Runtime
	err := rt.Stack.Push(fun.Str)
	if err != nil {
		return ErrorConditionf(CondStackOverflow, "%v", err)
	}
	defer rt.Stack.Pop()
	if rt.profiling() {
		defer rt.Profiler.Start(fun)()
	}
	r := data.Builtin(env, List(args))
	if r.Type == LError && r.Native == nil {
		r.Native = rt.Stack.Copy()
	}
	return r
}

// bind returns a new environment, child of the closure's captured
// environment, binding the closure parameters to args.
func (fun *LVal) bind(args []*LVal) (*LEnv, *LVal) {
	data := fun.FunData()
	n := len(data.Params)
	if data.Variadic == "" && len(args) != n {
		return nil, ErrorConditionf(CondArity, "%q expects %d arg%s, %d supplied",
			funName(fun), n, plural(n), len(args))
	}
	if data.Variadic != "" && len(args) < n {
		return nil, ErrorConditionf(CondArity, "%q expects at least %d arg%s, %d supplied",
			funName(fun), n, plural(n), len(args))
	}
	env := newEnvN(data.Env, n+1)
	for i, name := range data.Params {
		env.Put(name, args[i])
	}
	if data.Variadic != "" {
		rest := make([]*LVal, len(args)-n)
		copy(rest, args[n:])
		env.Put(data.Variadic, List(rest))
	}
	return env, nil
}

// funName returns the name used for fun in stack traces and messages.
func funName(fun *LVal) string {
	if fun.Str != "" {
		return fun.Str
	}
	if fun.IsMacro {
		return "anonymous macro"
	}
	return "anonymous function"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
