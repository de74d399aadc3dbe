// Package password implements one-way password hashing backed by bcrypt.
package password

import (
	usecase "devconnector/backend/internal/usecase/auth"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes and verifies passwords with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a hasher with the provided cost. Costs outside
// bcrypt's supported range fall back to the default cost of 10.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Ensure BcryptHasher implements the PasswordHasher interface.
var _ usecase.PasswordHasher = (*BcryptHasher)(nil)

// Hash produces a salted hash of the plaintext. Two invocations with the
// same input yield different strings because the salt is generated per call.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. Malformed hash
// input is treated as a mismatch, never an error.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
