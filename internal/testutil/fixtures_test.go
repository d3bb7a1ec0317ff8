package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/swagrec/jsonvalue"
)

// TestPetstoreOAS3 verifies the OAS 3 fixture decodes with the expected layout.
func TestPetstoreOAS3(t *testing.T) {
	doc := MustParse(t, PetstoreOAS3)

	schemas, ok := doc.LookupObject("components", "schemas")
	require.True(t, ok, "components.schemas should exist")
	assert.Equal(t, []string{"Pet", "Owner", "NewPet", "Error", "Unused"}, schemas.Keys())

	paths, ok := doc.LookupObject("paths")
	require.True(t, ok)
	assert.Equal(t, []string{"/pets", "/pets/{id}"}, paths.Keys())
}

// TestPetstoreOAS2 verifies the Swagger 2.0 fixture uses definitions.
func TestPetstoreOAS2(t *testing.T) {
	doc := MustParse(t, PetstoreOAS2)

	version, ok := doc.Lookup("swagger")
	require.True(t, ok)
	s, _ := version.AsString()
	assert.Equal(t, "2.0", s)

	defs, ok := doc.LookupObject("definitions")
	require.True(t, ok)
	assert.Equal(t, 4, defs.Len())
	_, hasComponents := doc.Lookup("components")
	assert.False(t, hasComponents)
}

// TestWriteTempFiles verifies both writers produce readable files.
func TestWriteTempFiles(t *testing.T) {
	yamlPath := WriteTempYAML(t, PetstoreOAS2)
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, PetstoreOAS2, string(data))

	jsonPath := WriteTempJSON(t, MustParse(t, PetstoreOAS3))
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	roundTrip, err := jsonvalue.Parse(data)
	require.NoError(t, err)
	assert.True(t, jsonvalue.Equal(MustParse(t, PetstoreOAS3), roundTrip))
}
