package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("admin123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	assert.NoError(t, ComparePassword(hash, "admin123"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}

func TestCompareLegacySHA256Digest(t *testing.T) {
	sum := sha256.Sum256([]byte("admin123"))
	legacy := hex.EncodeToString(sum[:])
	require.Len(t, legacy, 64)

	assert.NoError(t, ComparePassword(legacy, "admin123"))
	assert.Error(t, ComparePassword(legacy, "wrong"))
}

func TestCompareRejectsPlaintextStored(t *testing.T) {
	// A stored plaintext value is neither bcrypt nor a 64-hex digest; it
	// must never verify.
	assert.Error(t, ComparePassword("admin123", "admin123"))
}
