package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPasswordHash("hunter2", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := RenderMarkdown("# Title\n\nhello <script>alert(1)</script> *world*")

	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "<em>world</em>")
	assert.False(t, strings.Contains(out, "<script>"), "script tags must be stripped")
}

func TestStringToInt(t *testing.T) {
	assert.Equal(t, 42, StringToInt("42"))
	assert.Equal(t, 0, StringToInt("nope"))
}
