package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Password@123")
	require.NoError(t, err)
	assert.NotEqual(t, "Password@123", hash)

	assert.True(t, h.Verify("Password@123", hash))
	assert.False(t, h.Verify("Password@124", hash))
	assert.False(t, h.Verify("Password@123", "not-a-hash"))
}

func TestBcryptDefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).Cost)
}
