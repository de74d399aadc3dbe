package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "devconnector/backend/internal/domain/user"
	"devconnector/backend/internal/infrastructure/gravatar"

	"github.com/google/uuid"
)

// Service coordinates authentication workflows between domain and infrastructure.
type Service struct {
	users   domain.Repository
	tokens  TokenManager
	hasher  PasswordHasher
	nowFunc func() time.Time
}

// NewService constructs an auth service.
func NewService(users domain.Repository, tokens TokenManager, hasher PasswordHasher) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		hasher:  hasher,
		nowFunc: time.Now,
	}
}

// Register creates a new user account and returns a freshly issued token.
// The avatar is derived deterministically from the email. Email uniqueness
// is enforced by the store's unique constraint; the lookup here is only a
// fast path, so a concurrent duplicate insert still surfaces as ErrUserExists.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", errors.New("email and password are required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Avatar:       gravatar.URL(email),
		PasswordHash: hashed,
		CreatedAt:    s.nowFunc().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}

	return s.tokens.Generate(u.ID)
}

// Login validates credentials and returns a token. Unknown emails and wrong
// passwords fail with the same error so responses cannot be used to probe
// which accounts exist.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Email))
	if email == "" || creds.Password == "" {
		return "", domain.ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(creds.Password, u.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Generate(u.ID)
}

// CurrentUser loads the account behind an authenticated request. The token
// payload is trusted at the gate; existence is checked here, lazily.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(u), nil
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	return &copy
}
