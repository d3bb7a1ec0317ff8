package jsonvalue

import (
	"iter"
	"slices"
)

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is an insertion-ordered JSON object.
//
// A nil *Object behaves as an empty, read-only object.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// NewObjectCap returns an empty object with room for n members.
func NewObjectCap(n int) *Object {
	return &Object{
		members: make([]Member, 0, n),
		index:   make(map[string]int, n),
	}
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.members[i].Value, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.index[key]
	return ok
}

// Set stores v under key. An existing key keeps its position.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if o == nil {
		return false
	}
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.members = slices.Delete(o.members, i, i+1)
	delete(o.index, key)
	for j := i; j < len(o.members); j++ {
		o.index[o.members[j].Key] = j
	}
	return true
}

// Keys returns the member keys in order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// All iterates over members in order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, m := range o.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Members returns a copy of the member list.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return slices.Clone(o.members)
}

// Clone returns a shallow copy: member values are shared with o.
func (o *Object) Clone() *Object {
	c := NewObjectCap(o.Len())
	if o == nil {
		return c
	}
	c.members = append(c.members, o.members...)
	for k, i := range o.index {
		c.index[k] = i
	}
	return c
}

// DeepClone returns a copy that shares no storage with o.
func (o *Object) DeepClone() *Object {
	c := NewObjectCap(o.Len())
	for k, v := range o.All() {
		c.Set(k, v.Clone())
	}
	return c
}

// SortKeys reorders members using cmp, which follows the slices.SortFunc
// contract. The sort is stable.
func (o *Object) SortKeys(cmp func(a, b string) int) {
	if o.Len() < 2 {
		return
	}
	slices.SortStableFunc(o.members, func(a, b Member) int {
		return cmp(a.Key, b.Key)
	})
	for i, m := range o.members {
		o.index[m.Key] = i
	}
}
