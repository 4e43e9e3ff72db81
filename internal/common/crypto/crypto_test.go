package crypto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, h.Compare(hash, "secret1"))

	err = h.Compare(hash, "wrong")
	require.Error(t, err)
	assert.True(t, IsMismatch(err))
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	h := NewBcryptHasher(99)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestHashToken_Deterministic(t *testing.T) {
	a := HashToken("token")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashToken("token"))
	assert.NotEqual(t, a, HashToken("other"))
}

func TestTokenGenerator_UniqueUUIDs(t *testing.T) {
	gen := NewTokenGenerator()

	a, err := gen.NewToken()
	require.NoError(t, err)
	b, err := gen.NewToken()
	require.NoError(t, err)

	_, err = uuid.Parse(a)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
