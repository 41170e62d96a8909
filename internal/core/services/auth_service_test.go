package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/domain"
	"github.com/agentos/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User // keyed by id
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestAuthService(users ports.UserRepository, ttl time.Duration) ports.AuthService {
	return NewAuthService(AuthServiceConfig{
		Users:       users,
		Logger:      logger.NewNop(),
		TokenSecret: "test-secret",
		TokenTTL:    ttl,
		BcryptCost:  4, // min cost keeps the test fast
	})
}

func TestAuthRegisterAndValidate(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	token, err := auth.Register(ctx, "a@example.com", "password123", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := auth.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
}

func TestAuthRegisterRejectsWeakPassword(t *testing.T) {
	auth := newTestAuthService(newMemUserRepo(), time.Hour)
	_, err := auth.Register(context.Background(), "a@example.com", "short", "Alice")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestAuthRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := auth.Register(ctx, "a@example.com", "password123", "Alice")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "a@example.com", "password456", "Impostor")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthLogin(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := auth.Register(ctx, "a@example.com", "password123", "Alice")
	require.NoError(t, err)

	token, err := auth.Login(ctx, "a@example.com", "password123")
	require.NoError(t, err)

	user, err := auth.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := auth.Register(ctx, "a@example.com", "password123", "Alice")
	require.NoError(t, err)

	_, err = auth.Login(ctx, "a@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthValidateRejectsMalformedToken(t *testing.T) {
	auth := newTestAuthService(newMemUserRepo(), time.Hour)
	ctx := context.Background()

	for _, token := range []string{"", "abc", "a.b", "a.b.c.d"} {
		_, err := auth.Validate(ctx, token)
		assert.ErrorIsf(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestAuthValidateRejectsTamperedToken(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	token, err := auth.Register(ctx, "a@example.com", "password123", "Alice")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// swap in someone else's user id, keep the signature
	forged := "other-user." + parts[1] + "." + parts[2]
	_, err = auth.Validate(ctx, forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthZeroTTLGetsDefault(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuthService(repo, 0)
	ctx := context.Background()

	token, err := auth.Register(ctx, "a@example.com", "password123", "Alice")
	require.NoError(t, err)

	// the defaulted 24h TTL yields a token that validates now
	user, err := auth.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)
}

func TestAuthValidateRejectsExpiredToken(t *testing.T) {
	repo := newMemUserRepo()
	auth := newTestAuthService(repo, -time.Minute)
	ctx := context.Background()

	token, err := auth.Register(ctx, "a@example.com", "password123", "Alice")
	require.NoError(t, err)

	_, err = auth.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
