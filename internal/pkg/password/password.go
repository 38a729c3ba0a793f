package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor for stored credentials
const Cost = 12

// MinLength is the minimum accepted password length
const MinLength = 8

// maxLength caps input at bcrypt's 72-byte limit; longer input is
// silently truncated by the algorithm, so reject it instead
const maxLength = 72

// Hash hashes a password using bcrypt
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a plaintext password with a stored hash
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// HashToken hashes a refresh token with SHA256 before storage so a
// database leak does not expose usable tokens
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// MeetsPolicy reports whether a candidate password satisfies the
// account policy
func MeetsPolicy(plain string) bool {
	return len(plain) >= MinLength && len(plain) <= maxLength
}
