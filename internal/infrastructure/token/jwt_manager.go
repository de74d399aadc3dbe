package token

import (
	"errors"
	"time"

	usecase "devconnector/backend/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and validates HS256 JWT tokens.
type JWTManager struct {
	secret     []byte
	expiration time.Duration
}

// NewJWTManager constructs a manager with the provided secret and validity
// window. The secret is process-wide configuration, loaded once at startup.
func NewJWTManager(secret string, expiration time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// Ensure JWTManager implements the TokenManager interface.
var _ usecase.TokenManager = (*JWTManager)(nil)

// UserClaim identifies the token subject.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims represents token claims: the user identifier nested under "user"
// plus the registered issued-at and expiry claims.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Generate creates a signed JWT containing the user id.
func (m *JWTManager) Generate(userID string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses and validates the token returning the user id when valid.
// Expired tokens and tokens signed with a different secret fail identically.
func (m *JWTManager) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.User.ID == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.User.ID, nil
}
