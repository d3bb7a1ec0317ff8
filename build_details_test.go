package swagrec

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	result := Version()
	assert.NotEmpty(t, result)
	assert.True(t, result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	assert.Equal(t, "swagrec/"+Version(), ua)
	assert.NotContains(t, ua, " ")
	assert.NotContains(t, ua, "\n")
}

func TestGoVersion(t *testing.T) {
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestBuildInfo(t *testing.T) {
	info := BuildInfo()
	for _, label := range []string{"Version:", "Commit:", "Build Time:", "Go Version:"} {
		assert.Contains(t, info, label)
	}
	assert.Contains(t, info, Commit())
	assert.Contains(t, info, BuildTime())
}
