package auth

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	Generate(userID string) (string, error)
	Validate(token string) (string, error)
}

// PasswordHasher abstracts one-way password hashing. Verify must tolerate
// malformed hash input by reporting a mismatch rather than failing.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
