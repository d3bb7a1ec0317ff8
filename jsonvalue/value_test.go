package jsonvalue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONKeepsOrderAndNumbers(t *testing.T) {
	v, err := Parse([]byte(`{"zeta": 1, "alpha": 2.50, "mid": {"b": true, "a": null}, "list": [1e3, "x"]}`))
	require.NoError(t, err)

	obj, ok := v.AsObject()
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "mid", "list"}, obj.Keys())

	alpha, _ := obj.Get("alpha")
	lit, ok := alpha.AsNumber()
	require.True(t, ok)
	assert.Equal(t, "2.50", lit)

	mid, ok := v.LookupObject("mid")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, mid.Keys())

	item, ok := v.Lookup("list", "1")
	require.True(t, ok)
	s, _ := item.AsString()
	assert.Equal(t, "x", s)

	_, ok = v.Lookup("list", "7")
	assert.False(t, ok)
}

func TestParseYAMLScalars(t *testing.T) {
	src := `
openapi: 3.0.3
count: 0x1F
ratio: 1.5
flag: true
nothing: ~
quoted: "42"
inf: .inf
date: 2024-01-02
`
	v, err := Parse([]byte(src))
	require.NoError(t, err)

	tests := []struct {
		key  string
		kind Kind
		want string
	}{
		{"openapi", KindString, "3.0.3"},
		{"count", KindNumber, "31"},
		{"ratio", KindNumber, "1.5"},
		{"quoted", KindString, "42"},
		{"inf", KindString, ".inf"},
		{"date", KindString, "2024-01-02"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := v.Lookup(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.kind, got.Kind())
			if tt.kind == KindNumber {
				lit, _ := got.AsNumber()
				assert.Equal(t, tt.want, lit)
			} else {
				s, _ := got.AsString()
				assert.Equal(t, tt.want, s)
			}
		})
	}

	flag, _ := v.Lookup("flag")
	b, ok := flag.AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	nothing, _ := v.Lookup("nothing")
	assert.True(t, nothing.IsNull())
}

func TestParseYAMLAliasesAndMerge(t *testing.T) {
	src := `
base: &base
  type: object
  description: shared
derived:
  <<: *base
  description: overridden
copy: *base
`
	v, err := Parse([]byte(src))
	require.NoError(t, err)

	derived, ok := v.LookupObject("derived")
	require.True(t, ok)
	desc, _ := derived.Get("description")
	s, _ := desc.AsString()
	assert.Equal(t, "overridden", s)
	typ, _ := derived.Get("type")
	s, _ = typ.AsString()
	assert.Equal(t, "object", s)

	base, _ := v.Lookup("base")
	cp, _ := v.Lookup("copy")
	assert.True(t, Equal(base, cp))
}

func TestParseYAMLFlowMappingFallsBack(t *testing.T) {
	v, err := Parse([]byte(`{a: 1, b: [x, y]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("   \n"))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Parse([]byte("key: [unterminated"))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)
}

func TestParseRejectsDeepNesting(t *testing.T) {
	deep := make([]byte, 0, 2*(maxDepth+10))
	for range maxDepth + 5 {
		deep = append(deep, '[')
	}
	for range maxDepth + 5 {
		deep = append(deep, ']')
	}
	_, err := ParseJSON(deep)
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestObjectOperations(t *testing.T) {
	o := NewObject()
	o.Set("b", Int(1))
	o.Set("a", Int(2))
	o.Set("c", Int(3))
	o.Set("b", Int(10))
	assert.Equal(t, []string{"b", "a", "c"}, o.Keys())

	got, _ := o.Get("b")
	lit, _ := got.AsNumber()
	assert.Equal(t, "10", lit)

	assert.True(t, o.Delete("a"))
	assert.False(t, o.Delete("a"))
	assert.Equal(t, []string{"b", "c"}, o.Keys())
	got, ok := o.Get("c")
	require.True(t, ok)
	lit, _ = got.AsNumber()
	assert.Equal(t, "3", lit)

	shallow := o.Clone()
	shallow.Set("d", Null())
	assert.False(t, o.Has("d"))

	o.SortKeys(func(a, b string) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})
	assert.Equal(t, []string{"c", "b"}, o.Keys())

	var nilObj *Object
	assert.Equal(t, 0, nilObj.Len())
	_, ok = nilObj.Get("x")
	assert.False(t, ok)
	assert.Empty(t, nilObj.Keys())
}

func TestCloneIsDeep(t *testing.T) {
	v, err := Parse([]byte(`{"a": {"b": [1, {"c": 2}]}}`))
	require.NoError(t, err)

	c := v.Clone()
	inner, _ := c.LookupObject("a")
	inner.Set("b", String("changed"))

	orig, _ := v.Lookup("a", "b")
	assert.Equal(t, KindArray, orig.Kind())
	assert.False(t, Equal(v, c))
}

func TestMarshalPreservesOrder(t *testing.T) {
	src := `{"info":{"title":"<Pets> & co","version":"1"},"openapi":"3.0.0","empty":[],"n":-0.5e-3}`
	v, err := Parse([]byte(src))
	require.NoError(t, err)

	out, err := Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))

	indented, err := MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(indented), "\n  \"info\": {\n")

	// Standard library callers see the same bytes.
	std, err := json.Marshal(struct {
		Doc Value `json:"doc"`
	}{Doc: v})
	require.NoError(t, err)
	assert.Contains(t, string(std), `"openapi":"3.0.0"`)
}

func TestUnmarshalJSON(t *testing.T) {
	var req struct {
		Document Value `json:"document"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"document": {"swagger": "2.0", "paths": {}}}`), &req))
	s, ok := req.Document.Lookup("swagger")
	require.True(t, ok)
	str, _ := s.AsString()
	assert.Equal(t, "2.0", str)
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	v, err := Parse([]byte(`{"b": "true", "a": 1, "list": ["x", null, false], "text": "line1\nline2"}`))
	require.NoError(t, err)

	out, err := MarshalYAML(v)
	require.NoError(t, err)

	back, err := Parse(out)
	require.NoError(t, err)
	assert.True(t, Equal(v, back), "yaml output:\n%s", out)

	obj, _ := back.AsObject()
	assert.Equal(t, []string{"b", "a", "list", "text"}, obj.Keys())
}

func TestParseNumber(t *testing.T) {
	for _, lit := range []string{"0", "-1", "3.25", "1e10", "2E-3"} {
		_, ok := ParseNumber(lit)
		assert.True(t, ok, lit)
	}
	for _, lit := range []string{"", "-", "01", "1.", ".5", "1e", "NaN", "0x10"} {
		_, ok := ParseNumber(lit)
		assert.False(t, ok, lit)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "null", Null().Kind().String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
