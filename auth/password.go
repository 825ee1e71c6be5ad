package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	// Library for password hashing using bcrypt. bcrypt is a strong, adaptive hashing algorithm.
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns secrets into digests and checks them.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher using bcrypt.DefaultCost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

// Hash returns the bcrypt digest of secret.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether secret matches digest. A malformed digest never matches.
func (h *BcryptHasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}

// newDecoyDigest hashes a random secret with h. Login compares against it when the
// email is unknown, so a missing account costs the same hashing work as a wrong password.
func newDecoyDigest(h PasswordHasher) string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	d, err := h.Hash(hex.EncodeToString(buf))
	if err != nil {
		return ""
	}
	return d
}
