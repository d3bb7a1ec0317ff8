// Package jsonvalue provides an ordered, tagged-union representation of JSON
// documents.
//
// OpenAPI documents are processed as untyped JSON trees. Rather than probing
// map[string]any values at runtime, every node is a [Value] whose [Kind] is
// known up front, and objects keep their members in source order so that a
// filtered document is written back in the same shape it was read.
//
// Documents are decoded from either JSON or YAML:
//
//	doc, err := jsonvalue.Parse(data)
//	if err != nil {
//		return err
//	}
//	paths, _ := doc.Lookup("paths")
//
// and encoded with [Marshal], [MarshalIndent] or [MarshalYAML].
package jsonvalue

import (
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindNull is the JSON null literal. It is the zero Kind.
	KindNull Kind = iota
	// KindBool is true or false.
	KindBool
	// KindNumber is a JSON number, stored as its literal text.
	KindNumber
	// KindString is a JSON string.
	KindString
	// KindArray is an ordered list of values.
	KindArray
	// KindObject is an ordered set of key/value members.
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

// String returns the lower-case JSON name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a single JSON value. The zero Value is null.
//
// Values are small and passed by value. Arrays and objects share their
// backing storage when copied; use Clone for an independent copy.
type Value struct {
	kind Kind
	b    bool
	s    string // string contents or number literal
	arr  []Value
	obj  *Object
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a number value from a JSON number literal.
// The literal is not validated; use ParseNumber for untrusted input.
func Number(literal string) Value { return Value{kind: KindNumber, s: literal} }

// Int returns a number value holding n.
func Int(n int64) Value { return Number(strconv.FormatInt(n, 10)) }

// Float returns a number value holding f.
func Float(f float64) Value { return Number(strconv.FormatFloat(f, 'g', -1, 64)) }

// ParseNumber returns a number value if literal is valid JSON number syntax.
func ParseNumber(literal string) (Value, bool) {
	if !isJSONNumber(literal) {
		return Value{}, false
	}
	return Number(literal), true
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array value holding items.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// ObjectValue wraps o in a Value. A nil o yields an empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsNumber returns the number literal held by v.
func (v Value) AsNumber() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.s, true
}

// Float64 returns the number held by v as a float64.
func (v Value) Float64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	return f, err == nil
}

// AsArray returns the items held by v. The slice is shared with v.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the object held by v. The object is shared with v.
func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Len returns the number of items or members for arrays and objects, and 0
// for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Lookup descends through objects by key and through arrays by decimal index.
// It reports false as soon as a step cannot be taken.
func (v Value) Lookup(path ...string) (Value, bool) {
	cur := v
	for _, step := range path {
		switch cur.kind {
		case KindObject:
			next, ok := cur.obj.Get(step)
			if !ok {
				return Value{}, false
			}
			cur = next
		case KindArray:
			i, err := strconv.Atoi(step)
			if err != nil || i < 0 || i >= len(cur.arr) {
				return Value{}, false
			}
			cur = cur.arr[i]
		default:
			return Value{}, false
		}
	}
	return cur, true
}

// LookupObject is Lookup restricted to results that are objects.
func (v Value) LookupObject(path ...string) (*Object, bool) {
	found, ok := v.Lookup(path...)
	if !ok {
		return nil, false
	}
	return found.AsObject()
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Clone()
		}
		return Value{kind: KindArray, arr: items}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.DeepClone()}
	default:
		return v
	}
}

// Equal reports whether a and b hold the same JSON value. Object member order
// is ignored; number literals are compared textually.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber, KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for key, av := range a.obj.All() {
			bv, ok := b.obj.Get(key)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// isJSONNumber reports whether s matches the JSON number grammar.
func isJSONNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	switch {
	case s[i] == '0':
		i++
	case s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
