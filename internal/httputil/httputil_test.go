package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHTTPMethod(t *testing.T) {
	tests := []struct {
		method   string
		expected bool
	}{
		{"get", true},
		{"post", true},
		{"trace", true},
		{"query", true},
		{"GET", false}, // callers normalize first
		{"parameters", false},
		{"summary", false},
		{"x-internal", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsHTTPMethod(tt.method))
		})
	}
}

func TestNormalizeMethod(t *testing.T) {
	assert.Equal(t, "get", NormalizeMethod(" GET "))
	assert.Equal(t, "patch", NormalizeMethod("Patch"))
}

func TestMethodRank(t *testing.T) {
	assert.Less(t, MethodRank(MethodGet), MethodRank(MethodPost))
	assert.Less(t, MethodRank(MethodPost), MethodRank(MethodPut))
	assert.Less(t, MethodRank(MethodPatch), MethodRank(MethodDelete))
	assert.Less(t, MethodRank(MethodOptions), MethodRank(MethodHead))
	assert.Equal(t, len(MethodOrder), MethodRank("connect"))
}

func TestMediaTypes(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		json        bool
		yaml        bool
	}{
		{"plain json", "application/json", true, false},
		{"json with charset", "application/json; charset=utf-8", true, false},
		{"openapi json", "application/vnd.oai.openapi+json;version=3.0", true, false},
		{"yaml", "application/yaml", false, true},
		{"x-yaml", "text/x-yaml", false, true},
		{"openapi yaml", "application/vnd.oai.openapi+yaml", false, true},
		{"html", "text/html", false, false},
		{"empty", "", false, false},
		{"garbage", ";;", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.json, IsJSONMediaType(tt.contentType))
			assert.Equal(t, tt.yaml, IsYAMLMediaType(tt.contentType))
		})
	}
}
