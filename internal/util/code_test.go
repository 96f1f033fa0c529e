package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessCode(t *testing.T) {
	code, err := GenerateAccessCode(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	for _, r := range code {
		assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected rune %q", r)
	}
}

func TestGenerateAccessCodeAvoidsAmbiguousChars(t *testing.T) {
	for _, banned := range "01OI" {
		assert.False(t, strings.ContainsRune(codeAlphabet, banned))
	}
}
