package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordAndCompare(t *testing.T) {
	t.Parallel()

	password := "correcthorsebatterystaple"

	hash, err := HashPassword(password)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash, got %q", hash)

	verifier := NewBcryptVerifier()
	assert.NoError(t, verifier.Compare(hash, password))
	assert.Error(t, verifier.Compare(hash, "wrongpassword"))
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("samepassword123")
	require.NoError(t, err)
	second, err := HashPassword("samepassword123")
	require.NoError(t, err)

	// bcrypt salts every hash, so identical inputs never collide.
	assert.NotEqual(t, first, second)
}

func TestCompareMalformedHash(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier()
	assert.Error(t, verifier.Compare("not-a-bcrypt-hash", "password"))
	assert.Error(t, verifier.Compare("", "password"))
}
