// Copyright © 2018 The ELPS authors

package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	m := HashMapFrom([]*LVal{Keyword("b"), Int(2), String("a"), String("x\ny")})
	tests := []struct {
		v        *LVal
		readable string
		display  string
	}{
		{Int(-12), "-12", "-12"},
		{String(`say "hi"\`), `"say \"hi\"\\"`, `say "hi"\`},
		{String("a\nb"), `"a\nb"`, "a\nb"},
		{Keyword("kw"), ":kw", ":kw"},
		{Symbol("sym"), "sym", "sym"},
		{Nil(), "nil", "nil"},
		{Bool(true), "true", "true"},
		{Bool(false), "false", "false"},
		{List([]*LVal{Int(1), String("s"), List(nil)}), `(1 "s" ())`, `(1 s ())`},
		{Vector([]*LVal{Keyword("a"), Vector(nil)}), "[:a []]", "[:a []]"},
		{m, `{"a" "x\ny" :b 2}`, "{a x\ny :b 2}"},
		{Atom(String("v")), `(atom "v")`, "(atom v)"},
		{Builtin("car", Exactly(1), "", nil), "#<builtin car>", "#<builtin car>"},
		{Throw(String("boom")), "boom", "boom"},
	}
	for i, test := range tests {
		assert.Equal(t, test.readable, test.v.Print(true), "test %d", i)
		assert.Equal(t, test.display, test.v.Print(false), "test %d", i)
	}
}

func TestEscape(t *testing.T) {
	for _, s := range []string{"", "plain", `"quoted"`, `back\slash`, "new\nline", `\n`} {
		esc := Escape(s)
		assert.Equal(t, s, Unescape(esc), "round trip of %q through %s", s, esc)
	}
	assert.Equal(t, "a\\b", Unescape(`"a\\b"`))
	assert.Equal(t, `a\b`, Unescape(`"a\b"`))
	assert.Equal(t, `a\tb`, Unescape(`"a\tb"`))
	assert.Equal(t, `a\`, Unescape(`"a\\"`))
}

func TestEqual(t *testing.T) {
	fn := Builtin("f", Exactly(0), "", nil)
	a := Atom(Int(1))
	tests := []struct {
		a, b  *LVal
		equal bool
	}{
		{Int(1), Int(1), true},
		{Int(1), Int(2), false},
		{String("a"), String("a"), true},
		{String("a"), Keyword("a"), false},
		{String("a"), Symbol("a"), false},
		{List([]*LVal{Int(1), Int(2)}), Vector([]*LVal{Int(1), Int(2)}), true},
		{List([]*LVal{Int(1)}), Vector([]*LVal{Int(1), Int(2)}), false},
		{List(nil), Vector(nil), true},
		{List(nil), Nil(), false},
		{Nil(), Nil(), true},
		{Nil(), Bool(false), false},
		{fn, fn, true},
		{fn, Builtin("f", Exactly(0), "", nil), false},
		{a, a, true},
		{a, Atom(Int(1)), false},
		{
			HashMapFrom([]*LVal{Keyword("a"), Int(1), String("b"), List(nil)}),
			HashMapFrom([]*LVal{String("b"), Vector(nil), Keyword("a"), Int(1)}),
			true,
		},
		{
			HashMapFrom([]*LVal{Keyword("a"), Int(1)}),
			HashMapFrom([]*LVal{String("a"), Int(1)}),
			false,
		},
	}
	for i, test := range tests {
		assert.Equal(t, test.equal, test.a.Equal(test.b), "test %d: %v = %v", i, test.a, test.b)
		assert.Equal(t, test.equal, test.b.Equal(test.a), "test %d (reversed)", i)
	}
}

func TestEqualIgnoresMeta(t *testing.T) {
	v := Vector([]*LVal{Int(1)})
	cp := v.Copy()
	cp.Meta = Keyword("m")
	assert.True(t, v.Equal(cp))
	assert.Nil(t, v.Meta)
}

func TestGetType(t *testing.T) {
	fun := Lambda([]*LVal{Symbol("x")}, Symbol("x"), nil)
	mac := fun.Copy()
	mac.IsMacro = true
	assert.Equal(t, "integer", GetType(Int(1)))
	assert.Equal(t, "nil", GetType(Nil()))
	assert.Equal(t, "false", GetType(Bool(false)))
	assert.Equal(t, "hash-map", GetType(HashMap(nil)))
	assert.Equal(t, "function", GetType(fun))
	assert.Equal(t, "macro", GetType(mac))

	var fn LBuiltin = func(env *LEnv, args *LVal) *LVal { return Nil() }
	b := Builtin("noop", Exactly(0), "", fn)
	assert.Equal(t, LNative, b.Type)
	assert.Equal(t, "builtin", GetType(b))
	assert.True(t, b.IsCallable())
}

func TestLambdaParams(t *testing.T) {
	fun := Lambda([]*LVal{Symbol("a"), Symbol("&"), Symbol("rest")}, Nil(), nil)
	assert.Equal(t, LFun, fun.Type)
	assert.Equal(t, []string{"a"}, fun.FunData().Params)
	assert.Equal(t, "rest", fun.FunData().Variadic)

	bad := Lambda([]*LVal{Symbol("&"), Symbol("a"), Symbol("b")}, Nil(), nil)
	assert.Equal(t, LError, bad.Type)
	assert.Equal(t, CondType, bad.Str)

	bad = Lambda([]*LVal{Symbol("a"), Int(1)}, Nil(), nil)
	assert.Equal(t, LError, bad.Type)
}

func TestArity(t *testing.T) {
	assert.Equal(t, "2", Exactly(2).String())
	assert.Equal(t, "1 to 2", Between(1, 2).String())
	assert.Equal(t, "0 or more", AtLeast(0).String())

	assert.Nil(t, Exactly(2).Check("f", 2))
	assert.Equal(t, `"f" expects 2 args, 1 supplied`, Exactly(2).Check("f", 1).Print(false))
	assert.Equal(t, `"f" expects 1 arg, 0 supplied`, Exactly(1).Check("f", 0).Print(false))
	assert.Equal(t, `"f" expects at least 1 arg, 0 supplied`, AtLeast(1).Check("f", 0).Print(false))
	assert.Equal(t, `"f" expects between 1 and 2 args, 3 supplied`, Between(1, 2).Check("f", 3).Print(false))
	assert.Equal(t, CondArity, Between(1, 2).Check("f", 3).Str)
}

func TestCallStack(t *testing.T) {
	s := &CallStack{MaxHeight: 2}
	assert.NoError(t, s.Push("a"))
	assert.NoError(t, s.Push("b"))
	var overflow *StackOverflowError
	assert.ErrorAs(t, s.Push("c"), &overflow)
	assert.Equal(t, 3, overflow.Height)

	s.TailCall("c")
	s.TailCall("d")
	assert.Equal(t, "d [2 tail calls]", s.Top().String())

	cp := s.Copy()
	assert.Equal(t, "d", s.Pop().Name)
	assert.Equal(t, "a", s.Top().Name)
	assert.Len(t, cp.Frames, 2)
	assert.Equal(t, "d", cp.Top().Name)
}
