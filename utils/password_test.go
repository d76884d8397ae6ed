package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash := HashPassword("secret123")

	// 32-byte digest rendered as lowercase hex
	assert.Len(t, hash, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", hash)

	// Hashing is deterministic, equal inputs collide on purpose
	assert.Equal(t, hash, HashPassword("secret123"))
	assert.NotEqual(t, hash, HashPassword("secret124"))
}

func TestVerifyPassword(t *testing.T) {
	hash := HashPassword("secret123")

	assert.True(t, VerifyPassword("secret123", hash))
	assert.False(t, VerifyPassword("wrong", hash))
	assert.False(t, VerifyPassword("secret123", "not-a-hash"))
	assert.False(t, VerifyPassword("", hash))
}

func TestGenerateSessionToken(t *testing.T) {
	first, err := GenerateSessionToken()
	require.NoError(t, err)
	second, err := GenerateSessionToken()
	require.NoError(t, err)

	assert.Len(t, first, SessionTokenBytes*2)
	assert.NotEqual(t, first, second)
}
