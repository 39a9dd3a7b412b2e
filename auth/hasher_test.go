package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	for _, plain := range []string{"Abcdef1!", "S3cure#Pass", "ÅngstromPass12!"} {
		digest, err := h.Hash(plain)
		require.NoError(t, err)

		assert.NotEqual(t, plain, digest)
		assert.True(t, h.Verify(plain, digest))
		assert.False(t, h.Verify(plain+"x", digest))
	}
}

func TestHasherSaltsEachDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("Abcdef1!")
	require.NoError(t, err)
	b, err := h.Hash("Abcdef1!")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHasherVerifyMalformedDigest(t *testing.T) {
	assert.False(t, NewHasher(bcrypt.MinCost).Verify("Abcdef1!", "not-a-bcrypt-digest"))
}

func TestNewHasherFallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewHasher(0).cost)
	assert.Equal(t, DefaultCost, NewHasher(99).cost)
	assert.Equal(t, 10, DefaultCost)
}
