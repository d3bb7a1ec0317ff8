package jsonvalue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkVisitsInDocumentOrder(t *testing.T) {
	v, err := Parse([]byte(`{"paths": {"/pets/{id}": {"get": {"tags": ["a", "b"]}}}, "info": {}}`))
	require.NoError(t, err)

	var dotted, pointers []string
	Walk(v, func(loc *Location, _ Value) bool {
		dotted = append(dotted, loc.String())
		pointers = append(pointers, loc.Pointer())
		return true
	})

	assert.Equal(t, []string{
		"",
		"paths",
		"paths./pets/{id}",
		"paths./pets/{id}.get",
		"paths./pets/{id}.get.tags",
		"paths./pets/{id}.get.tags[0]",
		"paths./pets/{id}.get.tags[1]",
		"info",
	}, dotted)
	assert.Equal(t, "#", pointers[0])
	assert.Equal(t, "#/paths/~1pets~1{id}/get", pointers[3])
	assert.Equal(t, "#/paths/~1pets~1{id}/get/tags/1", pointers[6])
}

func TestWalkSkipsChildren(t *testing.T) {
	v, err := Parse([]byte(`{"skip": {"deep": {"x": 1}}, "keep": {"y": 2}}`))
	require.NoError(t, err)

	var visited []string
	Walk(v, func(loc *Location, _ Value) bool {
		visited = append(visited, loc.String())
		key, _ := loc.Key()
		return key != "skip"
	})
	assert.Equal(t, []string{"", "skip", "keep", "keep.y"}, visited)
}

func TestWalkHandlesVeryDeepTrees(t *testing.T) {
	const depth = 50_000
	root := NewObject()
	cur := root
	for range depth {
		next := NewObject()
		cur.Set("n", ObjectValue(next))
		cur = next
	}
	cur.Set("$ref", String("#/definitions/Leaf"))

	var refs int
	var deepest int
	Walk(ObjectValue(root), func(loc *Location, v Value) bool {
		if key, ok := loc.Key(); ok && key == "$ref" {
			refs++
			deepest = loc.Depth()
		}
		return true
	})
	assert.Equal(t, 1, refs)
	assert.Equal(t, depth+1, deepest)
}

func TestLocationKeyAndParent(t *testing.T) {
	v, err := Parse([]byte(`{"a": [{"b": 1}]}`))
	require.NoError(t, err)

	var leaf *Location
	Walk(v, func(loc *Location, _ Value) bool {
		if key, ok := loc.Key(); ok && key == "b" {
			leaf = loc
		}
		return true
	})
	require.NotNil(t, leaf)
	assert.Equal(t, 3, leaf.Depth())

	_, isKey := leaf.Parent().Key()
	assert.False(t, isKey, "array element step is an index")
	assert.True(t, strings.HasPrefix(leaf.String(), "a[0]"))

	var root *Location
	assert.Nil(t, root.Parent())
}
