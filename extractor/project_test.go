package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/swagrec/internal/testutil"
	"github.com/erraggy/swagrec/jsonvalue"
)

func TestProjectAccumulatesMethods(t *testing.T) {
	doc := testutil.MustParse(t, testutil.PetstoreOAS3)

	paths := ProjectPaths(doc, []Endpoint{
		{Method: "GET", Path: "/pets"},
		{Method: "post", Path: "/pets"},
	})
	require.Equal(t, []string{"/pets"}, paths.Keys())

	item, ok := jsonvalue.ObjectValue(paths).LookupObject("/pets")
	require.True(t, ok)
	assert.Equal(t, []string{"get", "post"}, item.Keys(), "second method must not overwrite the first")

	want, _ := doc.Lookup("paths", "/pets", "post")
	got, _ := item.Get("post")
	assert.True(t, jsonvalue.Equal(want, got))
}

func TestProjectSkipsStaleSelections(t *testing.T) {
	doc := testutil.MustParse(t, testutil.PetstoreOAS3)

	result := Projector{}.Project(doc, []Endpoint{
		{Method: "get", Path: "/pets"},
		{Method: "put", Path: "/pets"},
		{Method: "get", Path: "/owners"},
		{Method: "parameters", Path: "/pets/{id}"},
		{Method: "GET", Path: "/pets"},
	})
	assert.Equal(t, []Endpoint{{Method: "get", Path: "/pets"}}, result.Matched)
	assert.Equal(t, []Endpoint{
		{Method: "put", Path: "/pets"},
		{Method: "get", Path: "/owners"},
		{Method: "parameters", Path: "/pets/{id}"},
	}, result.Skipped)
	assert.Equal(t, []string{"/pets"}, result.Paths.Keys())
}

func TestProjectEmpty(t *testing.T) {
	doc := testutil.MustParse(t, testutil.PetstoreOAS3)
	assert.Equal(t, 0, ProjectPaths(doc, nil).Len())

	noPaths := testutil.MustParse(t, `{"openapi": "3.0.0", "info": {"title": "t", "version": "1"}}`)
	result := Projector{}.Project(noPaths, []Endpoint{{Method: "get", Path: "/pets"}})
	assert.Equal(t, 0, result.Paths.Len())
	assert.Len(t, result.Skipped, 1)
}

func TestProjectKeepsSelectionOrder(t *testing.T) {
	doc := testutil.MustParse(t, testutil.PetstoreOAS3)

	paths := ProjectPaths(doc, []Endpoint{
		{Method: "delete", Path: "/pets/{id}"},
		{Method: "get", Path: "/pets"},
		{Method: "get", Path: "/pets/{id}"},
	})
	assert.Equal(t, []string{"/pets/{id}", "/pets"}, paths.Keys())

	item, _ := jsonvalue.ObjectValue(paths).LookupObject("/pets/{id}")
	assert.Equal(t, []string{"delete", "get"}, item.Keys())
}

func TestProjectDoesNotAliasSource(t *testing.T) {
	doc := testutil.MustParse(t, testutil.PetstoreOAS3)

	paths := ProjectPaths(doc, []Endpoint{{Method: "get", Path: "/pets/{id}"}})
	item, _ := jsonvalue.ObjectValue(paths).LookupObject("/pets/{id}")
	item.Set("put", jsonvalue.String("added"))

	source, _ := doc.LookupObject("paths", "/pets/{id}")
	assert.False(t, source.Has("put"))
	assert.Equal(t, []string{"parameters", "get", "delete"}, source.Keys())
}

func TestProjectPathItemFields(t *testing.T) {
	doc := testutil.MustParse(t, testutil.PetstoreOAS3)
	selected := []Endpoint{{Method: "get", Path: "/pets/{id}"}}

	item, _ := jsonvalue.ObjectValue(ProjectPaths(doc, selected)).LookupObject("/pets/{id}")
	assert.Equal(t, []string{"get"}, item.Keys())

	result := Projector{IncludePathItemFields: true}.Project(doc, selected)
	item, _ = jsonvalue.ObjectValue(result.Paths).LookupObject("/pets/{id}")
	assert.Equal(t, []string{"parameters", "get"}, item.Keys())
}

func TestSortPathKeys(t *testing.T) {
	paths := jsonvalue.NewObject()
	for _, k := range []string{"/zebra", "/Pets", "/apple", "/pets", "/Äpfel", "/APPLE"} {
		paths.Set(k, jsonvalue.Null())
	}
	SortPathKeys(paths)
	assert.Equal(t, []string{"/APPLE", "/apple", "/Pets", "/pets", "/zebra", "/Äpfel"}, paths.Keys())

	SortPathKeys(nil)
}
