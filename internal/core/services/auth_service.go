package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/domain"
	"github.com/agentos/backend/internal/infrastructure/logger"
)

const minPasswordLength = 8

// authService issues HMAC-signed bearer tokens of the form
// "<user id>.<expiry unix>.<signature>". Signature covers id and expiry.
type authService struct {
	users    ports.UserRepository
	logger   *logger.Logger
	secret   []byte
	tokenTTL time.Duration
	cost     int
}

type AuthServiceConfig struct {
	Users       ports.UserRepository
	Logger      *logger.Logger
	TokenSecret string
	TokenTTL    time.Duration
	BcryptCost  int
}

func NewAuthService(cfg AuthServiceConfig) ports.AuthService {
	// Only an unset TTL gets the default; negative values are honored and
	// produce already-expired tokens.
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		users:    cfg.Users,
		logger:   cfg.Logger,
		secret:   []byte(cfg.TokenSecret),
		tokenTTL: cfg.TokenTTL,
		cost:     cfg.BcryptCost,
	}
}

func (s *authService) Register(ctx context.Context, email, password, name string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}

	if existing, _ := s.users.GetByEmail(ctx, email); existing != nil {
		s.logger.Warnw("auth_register_conflict", "email", email)
		return "", ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	s.logger.Infow("auth_user_registered", "user_id", user.ID, "email", email)
	return s.issueToken(user.ID), nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warnw("auth_login_rejected", "email", email)
		return "", ErrInvalidCredentials
	}

	s.logger.Infow("auth_login_ok", "user_id", user.ID)
	return s.issueToken(user.ID), nil
}

func (s *authService) Validate(ctx context.Context, token string) (*domain.User, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidToken
	}
	userID, expiryRaw, signature := parts[0], parts[1], parts[2]

	if !hmac.Equal([]byte(signature), []byte(s.sign(userID, expiryRaw))) {
		return nil, ErrInvalidToken
	}

	expiry, err := strconv.ParseInt(expiryRaw, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if time.Now().Unix() > expiry {
		return nil, ErrTokenExpired
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *authService) issueToken(userID string) string {
	expiry := strconv.FormatInt(time.Now().Add(s.tokenTTL).Unix(), 10)
	return userID + "." + expiry + "." + s.sign(userID, expiry)
}

func (s *authService) sign(userID, expiry string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(userID + "." + expiry))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
