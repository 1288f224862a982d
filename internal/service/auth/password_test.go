package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHashAndCompare(t *testing.T) {
	t.Parallel()

	// Minimum cost keeps the test fast; correctness is cost-independent.
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("Secure1pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash, got %q", hash)

	assert.NoError(t, hasher.Compare(hash, "Secure1pass"))
	assert.Error(t, hasher.Compare(hash, "WrongPass1"))
}

func TestBcryptHashesAreSalted(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(4)

	first, err := hasher.Hash("Secure1pass")
	require.NoError(t, err)
	second, err := hasher.Hash("Secure1pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCompareMalformedHash(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier()

	// A malformed hash must produce an error, never a panic.
	assert.Error(t, verifier.Compare("not-a-bcrypt-hash", "Secure1pass"))
	assert.Error(t, verifier.Compare("", "Secure1pass"))
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	t.Parallel()

	// Out-of-range costs fall back to the default rather than failing later.
	hasher := NewBcryptHasher(99)
	hash, err := hasher.Hash("Secure1pass")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "Secure1pass"))
}
