// Copyright © 2018 The ELPS authors

package lisp

// HostLanguage is bound to *host-language*.
const HostLanguage = "go"

// prelude is evaluated, form by form, by InitializeUserEnv after the
// builtins have been bound.
var prelude = []string{
	`(def! list (fn* (& items) items))`,
	`(def! not (fn* (x) (if x false true)))`,
	`(def! >= (fn* (a b) (<= b a)))`,
	`(def! < (fn* (a b) (not (<= b a))))`,
	`(def! > (fn* (a b) (not (<= a b))))`,
	`(def! load-file
	   (fn* (path)
	     (eval (read-string (str "(do " (slurp path) "\nnil)")))))`,
	`(def! map
	   (fn* (f xs)
	     (if (empty? xs)
	       xs
	       (cons (f (first xs)) (map f (rest xs))))))`,
	`(def! swap! (fn* (a f & args) (reset! a (apply f (deref a) args))))`,
	`(def! *host-language* "` + HostLanguage + `")`,
	`(defmacro! cond
	   (fn* (& clauses)
	     (if (> (count clauses) 0)
	       (list 'if (first clauses)
	             (if (> (count clauses) 1)
	               (nth clauses 1)
	               (throw "odd number of forms to cond"))
	             (cons 'cond (rest (rest clauses)))))))`,
	`(defmacro! or
	   (fn* (& xs)
	     (if (empty? xs)
	       nil
	       (if (= 1 (count xs))
	         (first xs)
	         (let* (v (gensym))
	           ` + "`" + `(let* (~v ~(first xs))
	              (if ~v ~v (or ~@(rest xs)))))))))`,
}
