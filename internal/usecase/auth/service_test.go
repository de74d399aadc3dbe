package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	domain "devconnector/backend/internal/domain/user"
	"devconnector/backend/internal/infrastructure/password"
	"devconnector/backend/internal/infrastructure/token"
	"devconnector/backend/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	copy := *u
	r.users[u.ID] = &copy
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copy := *u
	return &copy, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestService(repo *memUserRepo) (*auth.Service, *token.JWTManager) {
	tokens := token.NewJWTManager("test-secret", time.Hour)
	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	return auth.NewService(repo, tokens, hasher), tokens
}

func TestRegister_IssuesValidToken(t *testing.T) {
	repo := newMemUserRepo()
	svc, tokens := newTestService(repo)

	tok, err := svc.Register(context.Background(), "A", "a@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := tokens.Validate(tok)
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "A", stored.Name)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.Contains(t, stored.Avatar, "gravatar.com/avatar/")
	assert.NotEqual(t, "secret1", stored.PasswordHash, "password must not be stored in plaintext")
}

func TestRegister_NormalizesEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Register(context.Background(), "A", "  A@X.Com ", "secret1")
	require.NoError(t, err)

	_, err = repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Register(context.Background(), "A", "a@x.com", "secret1")
	require.NoError(t, err)

	tok, err := svc.Register(context.Background(), "B", "a@x.com", "secret2")
	assert.ErrorIs(t, err, domain.ErrUserExists)
	assert.Empty(t, tok, "no token may be issued for a duplicate registration")
	assert.Len(t, repo.users, 1, "duplicate registration must not mutate the store")
}

func TestLogin_RoundTrip(t *testing.T) {
	repo := newMemUserRepo()
	svc, tokens := newTestService(repo)

	regTok, err := svc.Register(context.Background(), "A", "a@x.com", "secret1")
	require.NoError(t, err)
	registeredID, err := tokens.Validate(regTok)
	require.NoError(t, err)

	loginTok, err := svc.Login(context.Background(), domain.Credentials{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	loginID, err := tokens.Validate(loginTok)
	require.NoError(t, err)
	assert.Equal(t, registeredID, loginID)
}

func TestLogin_GenericFailure(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Register(context.Background(), "A", "a@x.com", "secret1")
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable.
	_, badPassword := svc.Login(context.Background(), domain.Credentials{Email: "a@x.com", Password: "wrong"})
	_, unknownEmail := svc.Login(context.Background(), domain.Credentials{Email: "nobody@x.com", Password: "secret1"})

	assert.ErrorIs(t, badPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, badPassword.Error(), unknownEmail.Error())
}

func TestCurrentUser_ExcludesPasswordHash(t *testing.T) {
	repo := newMemUserRepo()
	svc, tokens := newTestService(repo)

	tok, err := svc.Register(context.Background(), "A", "a@x.com", "secret1")
	require.NoError(t, err)
	userID, err := tokens.Validate(tok)
	require.NoError(t, err)

	u, err := svc.CurrentUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)
	assert.Equal(t, userID, u.ID)
}

func TestRegister_RequiresFields(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestService(repo)

	for _, tc := range []struct{ name, email, pw string }{
		{"A", "", "secret1"},
		{"A", "a@x.com", ""},
	} {
		_, err := svc.Register(context.Background(), tc.name, tc.email, tc.pw)
		assert.Error(t, err)
	}
	assert.Empty(t, repo.users)
}

func TestRegister_AvatarDerivedFromEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc, tokens := newTestService(repo)

	tok, err := svc.Register(context.Background(), "A", "a@x.com", "secret1")
	require.NoError(t, err)
	id, err := tokens.Validate(tok)
	require.NoError(t, err)

	u, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.Avatar, "https://www.gravatar.com/avatar/"))
}
