// Copyright © 2018 The ELPS authors

package lisp

import (
	"sort"
)

// MapData is the persistent backing store of a hash-map value.  Entries are
// indexed by the canonical text of their key so that a string key and a
// keyword key with the same name never collide.  Operations which change a
// map return a new MapData and leave the receiver untouched.
type MapData struct {
	m map[string]mapEntry
}

type mapEntry struct {
	key *LVal
	val *LVal
}

func newMapData(size int) *MapData {
	return &MapData{m: make(map[string]mapEntry, size)}
}

// mapKey returns the canonical text for a hash-map key.  Only strings and
// keywords may be used as keys.
func mapKey(k *LVal) (string, *LVal) {
	switch k.Type {
	case LString:
		return Escape(k.Str), nil
	case LKeyword:
		return ":" + k.Str, nil
	default:
		return "", ErrorConditionf(CondType, "hash-map key is not a string or keyword: %s", k.Print(true))
	}
}

// Len returns the number of entries in m.
func (m *MapData) Len() int {
	return len(m.m)
}

// Get returns the value stored under k, or nil if k is absent.  Get returns
// an error if k is not a valid key type.
func (m *MapData) Get(k *LVal) (*LVal, *LVal) {
	key, lerr := mapKey(k)
	if lerr != nil {
		return nil, lerr
	}
	ent, ok := m.m[key]
	if !ok {
		return nil, nil
	}
	return ent.val, nil
}

// Assoc returns a copy of m with the given key-value pairs added.  Later
// pairs overwrite earlier ones.
func (m *MapData) Assoc(pairs []*LVal) (*MapData, *LVal) {
	if len(pairs)%2 != 0 {
		return nil, ErrorConditionf(CondArity, "hash-map requires an even number of keys and values, got %d", len(pairs))
	}
	cp := m.copy(len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		key, lerr := mapKey(pairs[i])
		if lerr != nil {
			return nil, lerr
		}
		cp.m[key] = mapEntry{key: pairs[i], val: pairs[i+1]}
	}
	return cp, nil
}

// Dissoc returns a copy of m without the given keys.  Absent keys are
// ignored.
func (m *MapData) Dissoc(keys []*LVal) (*MapData, *LVal) {
	cp := m.copy(0)
	for _, k := range keys {
		key, lerr := mapKey(k)
		if lerr != nil {
			return nil, lerr
		}
		delete(cp.m, key)
	}
	return cp, nil
}

// Keys returns the keys of m in canonical order.
func (m *MapData) Keys() []*LVal {
	ents := m.entries()
	keys := make([]*LVal, len(ents))
	for i := range ents {
		keys[i] = ents[i].key
	}
	return keys
}

// Vals returns the values of m in the same order as Keys.
func (m *MapData) Vals() []*LVal {
	ents := m.entries()
	vals := make([]*LVal, len(ents))
	for i := range ents {
		vals[i] = ents[i].val
	}
	return vals
}

// entries returns the map entries sorted by canonical key.
func (m *MapData) entries() []mapEntry {
	keys := make([]string, 0, len(m.m))
	for k := range m.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ents := make([]mapEntry, len(keys))
	for i, k := range keys {
		ents[i] = m.m[k]
	}
	return ents
}

// mapValues returns a copy of m with fn applied to each value.
func (m *MapData) mapValues(fn func(v *LVal) *LVal) (*MapData, *LVal) {
	cp := newMapData(len(m.m))
	for _, ent := range m.entries() {
		v := fn(ent.val)
		if v.Type == LError {
			return nil, v
		}
		key, _ := mapKey(ent.key)
		cp.m[key] = mapEntry{key: ent.key, val: v}
	}
	return cp, nil
}

func (m *MapData) copy(extra int) *MapData {
	cp := newMapData(len(m.m) + extra)
	for k, ent := range m.m {
		cp.m[k] = ent
	}
	return cp
}

func (m *MapData) equal(other *MapData) bool {
	if len(m.m) != len(other.m) {
		return false
	}
	for k, ent := range m.m {
		o, ok := other.m[k]
		if !ok || !ent.val.Equal(o.val) {
			return false
		}
	}
	return true
}

// HashMapFrom returns a hash-map built from alternating keys and values, or
// an error if a key is not a string or keyword.
func HashMapFrom(pairs []*LVal) *LVal {
	data, lerr := newMapData(0).Assoc(pairs)
	if lerr != nil {
		return lerr
	}
	return HashMap(data)
}
