package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its stored digest. New
// digests are bcrypt; 64-hex values are legacy unsalted SHA-256 digests
// from older account files and still verify. Plaintext storage is not
// supported.
func ComparePassword(stored, plain string) error {
	if isLegacySHA256(stored) {
		sum := sha256.Sum256([]byte(plain))
		if subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(stored)) == 1 {
			return nil
		}
		return errors.New("password mismatch")
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain))
}

func isLegacySHA256(stored string) bool {
	if len(stored) != 64 {
		return false
	}
	_, err := hex.DecodeString(stored)
	return err == nil
}
