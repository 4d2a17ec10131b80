// Copyright © 2018 The ELPS authors

package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDataPersistent(t *testing.T) {
	m, lerr := newMapData(0).Assoc([]*LVal{Keyword("a"), Int(1), String("a"), Int(2)})
	require.Nil(t, lerr)
	assert.Equal(t, 2, m.Len())

	m2, lerr := m.Assoc([]*LVal{Keyword("a"), Int(10), Keyword("b"), Int(3)})
	require.Nil(t, lerr)
	assert.Equal(t, 3, m2.Len())

	v, lerr := m.Get(Keyword("a"))
	require.Nil(t, lerr)
	assert.Equal(t, 1, v.Int, "assoc modified the original map")
	v, _ = m2.Get(Keyword("a"))
	assert.Equal(t, 10, v.Int)

	m3, lerr := m2.Dissoc([]*LVal{String("a"), Keyword("missing")})
	require.Nil(t, lerr)
	assert.Equal(t, 2, m3.Len())
	assert.Equal(t, 3, m2.Len())
	v, _ = m3.Get(String("a"))
	assert.Nil(t, v)
}

func TestMapDataOrder(t *testing.T) {
	m := HashMapFrom([]*LVal{Keyword("z"), Int(1), String("b"), Int(2), Keyword("a"), Int(3)})
	require.Equal(t, LHashMap, m.Type)
	keys := m.Map().Keys()
	assert.Equal(t, `("b" :a :z)`, List(keys).String())
	assert.Equal(t, `(2 3 1)`, List(m.Map().Vals()).String())
}

func TestMapDataKeyType(t *testing.T) {
	_, lerr := newMapData(0).Assoc([]*LVal{Int(1), Int(2)})
	require.NotNil(t, lerr)
	assert.Equal(t, CondType, lerr.Str)

	_, lerr = newMapData(0).Get(List(nil))
	require.NotNil(t, lerr)
	assert.Equal(t, CondType, lerr.Str)

	_, lerr = newMapData(0).Assoc([]*LVal{Keyword("a")})
	require.NotNil(t, lerr)
	assert.Equal(t, CondArity, lerr.Str)
}
