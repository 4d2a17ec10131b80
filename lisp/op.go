// Copyright © 2018 The ELPS authors

package lisp

// Special operators receive their arguments unevaluated.  An operator either
// returns its result or returns a tail call mark telling Eval which
// expression to continue with, and in which environment.
var langSpecialOps = []*langBuiltin{
	{"def!", Exactly(2), opDef,
		`Evaluates expr and binds the result to name in the current
		environment. Returns the value.`},
	{"let*", Exactly(2), opLet,
		`Creates a child environment and binds each symbol of the
		bindings list (or vector) to the value of its expression, in
		order, so later expressions can refer to earlier bindings. The
		body is evaluated in the child environment.`},
	{"do", AtLeast(1), opDo,
		`Evaluates each expression in order and returns the value of the
		last.`},
	{"fn*", Exactly(2), opFn,
		`Returns a closure over the current environment. Parameters are a
		list or vector of symbols. The symbol & before the last parameter
		binds it to a list of the remaining arguments.`},
	{"if", Between(2, 3), opIf,
		`Evaluates cond. When the result is anything other than nil or
		false the then expression is evaluated, otherwise else is
		evaluated. A missing else yields nil.`},
	{"quote", Exactly(1), opQuote,
		`Returns its argument unevaluated.`},
	{"quasiquote", Exactly(1), opQuasiquote,
		`Returns a template in which (unquote x) forms are evaluated and
		(splice-unquote xs) forms are evaluated and their elements spliced
		into the surrounding list.`},
	{"defmacro!", Exactly(2), opDefmacro,
		`Evaluates expr, which must produce a function, and binds a macro
		version of it to name.`},
	{"macroexpand", Exactly(1), opMacroexpand,
		`Returns the result of repeatedly expanding the macro call at the
		head of expr, without evaluating it.`},
	{"try*", Exactly(2), opTry,
		`Evaluates expr. If an error is raised the handler, of the form
		(catch* sym body), is evaluated with sym bound to the raised
		value. Errors raised by the interpreter are bound as strings.`},
}

var specialOpIndex map[string]*langBuiltin

func init() {
	specialOpIndex = make(map[string]*langBuiltin, len(langSpecialOps))
	for _, op := range langSpecialOps {
		specialOpIndex[op.name] = op
	}
}

// DefaultSpecialOps returns the special operators understood by Eval.
func DefaultSpecialOps() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langSpecialOps))
	for i := range langSpecialOps {
		ops[i] = langSpecialOps[i]
	}
	return ops
}

// IsSpecialOp returns true if name is the name of a special operator.
func IsSpecialOp(name string) bool {
	_, ok := specialOpIndex[name]
	return ok
}

func (op *langBuiltin) call(env *LEnv, cells []*LVal) *LVal {
	lerr := op.arity.Check(op.name, len(cells))
	if lerr != nil {
		return lerr
	}
	return op.fun(env, List(cells))
}

func opDef(env *LEnv, args *LVal) *LVal {
	sym := args.Cells[0]
	if sym.Type != LSymbol {
		return ErrorConditionf(CondType, "\"def!\" expects a symbol, got %s", GetType(sym))
	}
	v := env.Eval(args.Cells[1])
	if v.Type == LError {
		return v
	}
	if v.Type == LFun && v.Str == "" {
		v = v.Copy()
		v.Str = sym.Str
	}
	return env.Put(sym.Str, v)
}

func opLet(env *LEnv, args *LVal) *LVal {
	bindings := args.Cells[0]
	if !bindings.IsSeq() {
		return ErrorConditionf(CondType, "\"let*\" bindings are not a list or vector: %s", GetType(bindings))
	}
	if len(bindings.Cells)%2 != 0 {
		return ErrorConditionf(CondArity, "\"let*\" expects an even number of binding forms, %d supplied", len(bindings.Cells))
	}
	letEnv := newEnvN(env, len(bindings.Cells)/2)
	for i := 0; i < len(bindings.Cells); i += 2 {
		sym := bindings.Cells[i]
		if sym.Type != LSymbol {
			return ErrorConditionf(CondType, "\"let*\" binding is not a symbol: %s", sym.Print(true))
		}
		v := letEnv.Eval(bindings.Cells[i+1])
		if v.Type == LError {
			return v
		}
		letEnv.Put(sym.Str, v)
	}
	return markTailCall(args.Cells[1], letEnv)
}

func opDo(env *LEnv, args *LVal) *LVal {
	last := len(args.Cells) - 1
	for _, expr := range args.Cells[:last] {
		v := env.Eval(expr)
		if v.Type == LError {
			return v
		}
	}
	return markTailCall(args.Cells[last], env)
}

func opFn(env *LEnv, args *LVal) *LVal {
	return env.Lambda(args.Cells[0], args.Cells[1])
}

func opIf(env *LEnv, args *LVal) *LVal {
	cond := env.Eval(args.Cells[0])
	if cond.Type == LError {
		return cond
	}
	if cond.IsTrue() {
		return markTailCall(args.Cells[1], env)
	}
	if len(args.Cells) == 3 {
		return markTailCall(args.Cells[2], env)
	}
	return Nil()
}

func opQuote(env *LEnv, args *LVal) *LVal {
	return args.Cells[0]
}

func opQuasiquote(env *LEnv, args *LVal) *LVal {
	expr := Quasiquote(args.Cells[0])
	if expr.Type == LError {
		return expr
	}
	return markTailCall(expr, env)
}

func opDefmacro(env *LEnv, args *LVal) *LVal {
	sym := args.Cells[0]
	if sym.Type != LSymbol {
		return ErrorConditionf(CondType, "\"defmacro!\" expects a symbol, got %s", GetType(sym))
	}
	fun := env.Eval(args.Cells[1])
	if fun.Type == LError {
		return fun
	}
	if fun.Type != LFun || fun.IsMacro {
		return ErrorConditionf(CondType, "\"defmacro!\" expects a function, got %s", GetType(fun))
	}
	mac := fun.Copy()
	mac.IsMacro = true
	mac.Str = sym.Str
	return env.Put(sym.Str, mac)
}

func opMacroexpand(env *LEnv, args *LVal) *LVal {
	return env.MacroExpand(args.Cells[0])
}

func opTry(env *LEnv, args *LVal) *LVal {
	handler := args.Cells[1]
	if handler.Type != LList || len(handler.Cells) == 0 ||
		handler.Cells[0].Type != LSymbol || handler.Cells[0].Str != "catch*" {
		return ErrorConditionf(CondType, "\"try*\" expects a catch* form, got %s", handler.Print(true))
	}
	if len(handler.Cells) != 3 {
		return ErrorConditionf(CondArity, "\"catch*\" expects 2 args, %d supplied", len(handler.Cells)-1)
	}
	sym := handler.Cells[1]
	if sym.Type != LSymbol {
		return ErrorConditionf(CondType, "\"catch*\" expects a symbol, got %s", GetType(sym))
	}
	v := env.Eval(args.Cells[0])
	if v.Type != LError {
		return v
	}
	if v.Str == CondEmptyInput {
		return Nil()
	}
	catchEnv := newEnvN(env, 1)
	catchEnv.Put(sym.Str, (*ErrorVal)(v).Payload())
	return markTailCall(handler.Cells[2], catchEnv)
}

// MacroExpand expands ast while it is a call to a macro.  Expansion stops
// with a macro-expansion error after Runtime.MaxMacroExpansionDepth
// expansions.
func (env *LEnv) MacroExpand(ast *LVal) *LVal {
	limit := env.Runtime.MaxMacroExpansionDepth
	for n := 0; ; n++ {
		mac := env.macroFor(ast)
		if mac == nil {
			return ast
		}
		if limit > 0 && n >= limit {
			return ErrorConditionf(CondMacroExpansion,
				"macro expansion of %q exceeded maximum depth %d", mac.Str, limit)
		}
		ast = env.Apply(mac, ast.Cells[1:])
		if ast.Type == LError {
			return ast
		}
	}
}

// macroFor returns the macro called by ast, or nil if ast is not a macro
// call.
func (env *LEnv) macroFor(ast *LVal) *LVal {
	if ast.Type != LList || len(ast.Cells) == 0 || ast.Cells[0].Type != LSymbol {
		return nil
	}
	name := ast.Cells[0].Str
	frame := env.Find(name)
	if frame == nil {
		return nil
	}
	v := frame.Scope[name]
	if v.Type != LFun || !v.IsMacro {
		return nil
	}
	return v
}
