// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/mal/maltest"
)

func TestSequenceBuiltins(t *testing.T) {
	tests := maltest.TestSuite{
		{"construction", maltest.TestSequence{
			{"(list 1 2)", "(1 2)", ""},
			{"(list)", "()", ""},
			{"(vector 1 2)", "[1 2]", ""},
			{"(vector)", "[]", ""},
			{"(vec '(1 2))", "[1 2]", ""},
			{"(vec nil)", "[]", ""},
			{"(cons 1 [2 3])", "(1 2 3)", ""},
			{"(cons 1 nil)", "(1)", ""},
			{"(concat [1] '(2) nil)", "(1 2)", ""},
			{"(concat)", "()", ""},
			{"(concat 1)", `"concat" expects a list or vector for argument 1, got integer`, ""},
		}},
		{"access", maltest.TestSequence{
			{"(first nil)", "nil", ""},
			{"(first [])", "nil", ""},
			{"(first '(1 2))", "1", ""},
			{"(rest nil)", "()", ""},
			{"(rest [1 2])", "(2)", ""},
			{"(nth '(1 2) 1)", "2", ""},
			{"(nth [1] -1)", "Index out of range: -1 not in [0, 1)", ""},
			{"(count nil)", "0", ""},
			{"(count [1 2])", "2", ""},
			{"(count 1)", `"count" expects a list or vector for argument 1, got integer`, ""},
			{"(empty? [])", "true", ""},
			{"(empty? '(1))", "false", ""},
		}},
		{"higher order", maltest.TestSequence{
			{"(map (fn* (x) (* x x)) [1 2 3])", "(1 4 9)", ""},
			{"(apply + 1 [2])", "3", ""},
			{"(apply list [])", "()", ""},
			{"(apply (fn* (& xs) (count xs)) 1 2 '(3 4))", "4", ""},
			{"(apply + 1 2)", `"apply" expects a list or vector for argument 3, got integer`, ""},
		}},
		{"equality", maltest.TestSequence{
			{"(= [1 2] '(1 2))", "true", ""},
			{"(= [1] [1 2])", "false", ""},
			{`(= "a" :a)`, "false", ""},
			{"(= nil nil)", "true", ""},
			{"(= nil false)", "false", ""},
			{"(= {:a [1]} {:a '(1)})", "true", ""},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestHashMapBuiltins(t *testing.T) {
	tests := maltest.TestSuite{
		{"hash-map", maltest.TestSequence{
			{`(def! m {:a 1 "b" 2})`, `{"b" 2 :a 1}`, ""},
			{"(get m :a)", "1", ""},
			{`(get m "a")`, "nil", ""},
			{"(get nil :a)", "nil", ""},
			{"(assoc m :c 3)", `{"b" 2 :a 1 :c 3}`, ""},
			{"m", `{"b" 2 :a 1}`, ""},
			{"(dissoc m :a :zz)", `{"b" 2}`, ""},
			{"m", `{"b" 2 :a 1}`, ""},
			{`(contains? m "b")`, "true", ""},
			{`(contains? m :b)`, "false", ""},
			{"(keys {:b 1 :a 2})", "(:a :b)", ""},
			{"(vals {:b 1 :a 2})", "(2 1)", ""},
			{"(values {:b 1 :a 2})", "(2 1)", ""},
			{"(hash-map :a)", `"hash-map" expects an even number of args, 1 supplied`, ""},
			{"(hash-map 1 2)", "hash-map key is not a string or keyword: 1", ""},
			{"(assoc m :a)", `"assoc" expects an even number of key and value args, 1 supplied`, ""},
			{"{:a (+ 1 1)}", "{:a 2}", ""},
			{`(let* (k "a") {k 1})`, `{"a" 1}`, ""},
			{`(read-string "{\"a\" 1}")`, `(hash-map "a" 1)`, ""},
			{`(quote {"a" (+ 1 2)})`, `(hash-map "a" (+ 1 2))`, ""},
			{"{1 2}", "hash-map key is not a string or keyword: 1", ""},
			{"(= {:a 1} (hash-map :a 1))", "true", ""},
			{"(map? {})", "true", ""},
			{"(get [1] 0)", `"get" expects a hash-map for argument 1, got vector`, ""},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestAtomBuiltins(t *testing.T) {
	tests := maltest.TestSuite{
		{"atoms", maltest.TestSequence{
			{"(def! a (atom 1))", "(atom 1)", ""},
			{"@a", "1", ""},
			{"(reset! a 2)", "2", ""},
			{"(swap! a + 3)", "5", ""},
			{"(swap! a (fn* (x y z) (+ x (+ y z))) 1 2)", "8", ""},
			{"(deref a)", "8", ""},
			{"(atom? a)", "true", ""},
			{"(atom? 1)", "false", ""},
			{"(deref 1)", `"deref" expects an atom for argument 1, got integer`, ""},
			{"(def! b a)", "(atom 8)", ""},
			{"(reset! b 0)", "0", ""},
			{"@a", "0", ""},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestStringBuiltins(t *testing.T) {
	tests := maltest.TestSuite{
		{"printing", maltest.TestSequence{
			{`(str "a" 1 :k nil)`, `"a1:knil"`, ""},
			{`(str)`, `""`, ""},
			{`(str [1 "x"])`, `"[1 x]"`, ""},
			{`(pr-str "a\nb" 1)`, `"\"a\\nb\" 1"`, ""},
			{`(pr-str)`, `""`, ""},
			{`(prn "x" :y)`, "nil", "\"x\" :y\n"},
			{`(println "x" :y)`, "nil", "x :y\n"},
			{`(prn)`, "nil", "\n"},
		}},
		{"reading", maltest.TestSequence{
			{`(read-string "(1 2 ; c\n 3)")`, "(1 2 3)", ""},
			{`(read-string ":kw")`, ":kw", ""},
			{`(read-string "(1")`, "expected ')', got EOF", ""},
			{`(eval (read-string "(+ 1 2)"))`, "3", ""},
			{`(let* (x 1) (eval 'x))`, `"x" not found`, ""},
		}},
		{"symbols", maltest.TestSequence{
			{`(symbol "abc")`, "abc", ""},
			{`(keyword "k")`, ":k", ""},
			{`(keyword :k)`, ":k", ""},
			{`(symbol? (gensym))`, "true", ""},
			{`(= (gensym) (gensym))`, "false", ""},
			{`*host-language*`, `"go"`, ""},
			{`*ARGV*`, "()", ""},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestPredicates(t *testing.T) {
	tests := maltest.TestSuite{
		{"predicates", maltest.TestSequence{
			{"(nil? nil)", "true", ""},
			{"(nil? false)", "false", ""},
			{"(true? true)", "true", ""},
			{"(true? 1)", "false", ""},
			{"(false? nil)", "false", ""},
			{"(symbol? 'a)", "true", ""},
			{"(keyword? :a)", "true", ""},
			{`(string? "")`, "true", ""},
			{"(string? :a)", "false", ""},
			{"(number? 1)", "true", ""},
			{"(list? [])", "false", ""},
			{"(list? '())", "true", ""},
			{"(vector? [])", "true", ""},
			{"(sequential? [])", "true", ""},
			{"(sequential? {})", "false", ""},
			{"(not nil)", "true", ""},
			{"(not 0)", "false", ""},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestMetadata(t *testing.T) {
	tests := maltest.TestSuite{
		{"meta", maltest.TestSequence{
			{"(meta [1])", "nil", ""},
			{"(meta (with-meta [1] {:a 1}))", "{:a 1}", ""},
			{"^{:b 2} [1]", "[1]", ""},
			{"(meta ^{:b 2} [1])", "{:b 2}", ""},
			{"(def! v [1])", "[1]", ""},
			{"(def! w (with-meta v :m))", "[1]", ""},
			{"(meta v)", "nil", ""},
			{"(meta w)", ":m", ""},
			{"(= v w)", "true", ""},
			{"(def! f (with-meta (fn* (x) x) :fm))", "#<function>", ""},
			{"(meta f)", ":fm", ""},
			{"(f 3)", "3", ""},
			{"(meta (with-meta + :b))", ":b", ""},
			{"(meta +)", "nil", ""},
			{"(with-meta 1 2)", `"with-meta" expects a collection or function for argument 1, got integer`, ""},
		}},
	}
	maltest.RunTestSuite(t, tests)
}
