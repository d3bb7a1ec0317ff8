package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("underlying")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"parse minimal", &ParseError{}, "parse error"},
		{"parse full", &ParseError{Path: "api.yaml", Line: 4, Message: "bad indent", Cause: cause},
			"parse error in api.yaml at line 4: bad indent: underlying"},
		{"fetch status", &FetchError{URL: "https://x.test/api.json", StatusCode: 404, Message: "unexpected status"},
			"fetch error for https://x.test/api.json (status 404): unexpected status"},
		{"fetch cause", &FetchError{URL: "https://x.test", Cause: cause}, "fetch error for https://x.test: underlying"},
		{"reference", &ReferenceError{Ref: "#/definitions/Gone", Location: "#/paths/~1a/get", Message: "not found"},
			"reference error: #/definitions/Gone at #/paths/~1a/get: not found"},
		{"external reference", &ReferenceError{Ref: "common.yaml#/Pet", IsExternal: true},
			"external reference: common.yaml#/Pet"},
		{"validation", &ValidationError{Path: "info.title", Message: "is required"},
			"validation error at info.title: is required"},
		{"limit", &ResourceLimitError{ResourceType: "file_size", Limit: 10, Actual: 20},
			"resource limit exceeded: file_size (limit: 10, actual: 20)"},
		{"limit without actual", &ResourceLimitError{ResourceType: "file_size", Limit: 10},
			"resource limit exceeded: file_size (limit: 10)"},
		{"config", &ConfigError{Option: "format", Value: "xml", Message: "unsupported"},
			"configuration error for format (value: xml): unsupported"},
		{"config nil value", &ConfigError{Option: "input"}, "configuration error for input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	sentinels := []error{ErrParse, ErrFetch, ErrReference, ErrValidation, ErrResourceLimit, ErrConfig}
	tests := []struct {
		err   error
		match error
	}{
		{&ParseError{}, ErrParse},
		{&FetchError{}, ErrFetch},
		{&ReferenceError{}, ErrReference},
		{&ValidationError{}, ErrValidation},
		{&ResourceLimitError{}, ErrResourceLimit},
		{&ConfigError{}, ErrConfig},
	}
	for _, tt := range tests {
		t.Run(tt.match.Error(), func(t *testing.T) {
			for _, s := range sentinels {
				assert.Equal(t, s == tt.match, errors.Is(tt.err, s), "sentinel %q", s)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	t.Run("wrapped FetchError", func(t *testing.T) {
		inner := &FetchError{URL: "https://x.test", StatusCode: 500}
		wrapped := fmt.Errorf("parser: %w", inner)

		assert.ErrorIs(t, wrapped, ErrFetch)
		var target *FetchError
		require.ErrorAs(t, wrapped, &target)
		assert.Equal(t, 500, target.StatusCode)
	})

	t.Run("cause remains reachable", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := fmt.Errorf("parser: %w", &FetchError{Cause: cause})
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("validation errors joined", func(t *testing.T) {
		err := errors.Join(
			&ValidationError{Path: "info.title", Message: "is required"},
			&ValidationError{Path: "info.version", Message: "is required"},
		)
		assert.ErrorIs(t, err, ErrValidation)
	})
}
