// Copyright © 2018 The ELPS authors

package maltest

import (
	"testing"

	"github.com/luthersystems/mal/lisp"
	"github.com/stretchr/testify/assert"
)

// AssertHashMap runs tests to ensure that m satisfies constraints required
// of hash-maps.  The following properties are tested by AssertHashMap:
//
//		The lists returned by m.Keys() and m.Vals() have length m.Len()
//
//		Repeated calls to m.Keys() and m.Vals() return equal lists
//
//		Calling m.Get() with the i-th key returns the i-th value
//
//		Every key is a string or a keyword
//
// AssertHashMap does not test the success or failure of assoc and dissoc.
// The map must already be populated with values.
func AssertHashMap(t *testing.T, m *lisp.LVal) bool {
	t.Helper()
	if !assert.Equal(t, lisp.LHashMap, m.Type, "Not a hash-map: %v", m) {
		return false
	}
	data := m.Map()
	if !assert.NotEqual(t, 0, data.Len(), "Cannot test an empty hash-map") {
		return false
	}
	keys, vals := data.Keys(), data.Vals()
	if !assert.Len(t, keys, data.Len()) || !assert.Len(t, vals, data.Len()) {
		return false
	}
	if !testFixed(t, "Keys", 3, keys, data.Keys) {
		return false
	}
	if !testFixed(t, "Vals", 3, vals, data.Vals) {
		return false
	}
	for i, k := range keys {
		if !assert.Contains(t, []lisp.LType{lisp.LString, lisp.LKeyword}, k.Type, "Invalid key type at index %d: %v", i, k) {
			return false
		}
		v, lerr := data.Get(k)
		if !assert.NoError(t, lisp.GoError(lerr)) {
			return false
		}
		if !assert.NotNil(t, v, "Key %d was not found in map: %v", i, k) {
			return false
		}
		if !assert.True(t, vals[i].Equal(v), "Value for key %v not consistent at index %d -- expected: %v got: %v", k, i, vals[i], v) {
			return false
		}
	}
	return true
}

func testFixed(t *testing.T, method string, n int, expect []*lisp.LVal, fn func() []*lisp.LVal) bool {
	t.Helper()
	for i := 0; i < n; i++ {
		v := fn()
		if !assert.True(t, lisp.List(expect).Equal(lisp.List(v)), "%s got: %v expected: %v", method, v, expect) {
			return false
		}
	}
	return true
}
