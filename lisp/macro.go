// Copyright © 2018 The ELPS authors

package lisp

// Symbols recognized by Quasiquote.
const (
	UnquoteSymbol       = "unquote"
	SpliceUnquoteSymbol = "splice-unquote"
)

// Quasiquote rewrites a quasiquote template into an expression which
// constructs the template's value when evaluated.  Lists and vectors are
// rewritten alike and always construct a list.
func Quasiquote(ast *LVal) *LVal {
	if !isPair(ast) {
		return quoted(ast)
	}
	if isCallTo(ast, UnquoteSymbol) {
		if len(ast.Cells) != 2 {
			return ErrorConditionf(CondArity, "%q expects 1 arg, %d supplied", UnquoteSymbol, len(ast.Cells)-1)
		}
		return ast.Cells[1]
	}
	return quasiquoteSeq(ast.Cells)
}

// quasiquoteSeq folds cells from the right so that the rewrite of a long
// template does not recurse once per element.
func quasiquoteSeq(cells []*LVal) *LVal {
	acc := quoted(List(nil))
	for i := len(cells) - 1; i >= 0; i-- {
		elt := cells[i]
		if isPair(elt) && isCallTo(elt, SpliceUnquoteSymbol) {
			if len(elt.Cells) != 2 {
				return ErrorConditionf(CondArity, "%q expects 1 arg, %d supplied", SpliceUnquoteSymbol, len(elt.Cells)-1)
			}
			acc = List([]*LVal{Symbol("concat"), elt.Cells[1], acc})
			continue
		}
		q := Quasiquote(elt)
		if q.Type == LError {
			return q
		}
		acc = List([]*LVal{Symbol("cons"), q, acc})
	}
	return acc
}

// isPair reports whether v is a non-empty list or vector.
func isPair(v *LVal) bool {
	return (v.Type == LList || v.Type == LVector) && len(v.Cells) > 0
}

func quoted(v *LVal) *LVal {
	return List([]*LVal{Symbol("quote"), v})
}

func isCallTo(v *LVal, name string) bool {
	return len(v.Cells) > 0 && v.Cells[0].Type == LSymbol && v.Cells[0].Str == name
}
