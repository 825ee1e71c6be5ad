// Package auth is responsible for handling authentication and authorization logic.
// This includes user registration, login, session tokens and the gates that guard routes.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/user/stockview-go/apperror"
	"github.com/user/stockview-go/config"
)

// AuthService provides registration and login.
type AuthService struct {
	users      UserStore
	hasher     PasswordHasher
	codec      *TokenCodec
	authConfig config.AuthConfig
	now        func() time.Time

	decoyOnce sync.Once
	decoy     string
}

// NewAuthService creates a new AuthService. Dependencies are injected explicitly.
func NewAuthService(users UserStore, hasher PasswordHasher, codec *TokenCodec, authConfig config.AuthConfig) *AuthService {
	return &AuthService{
		users:      users,
		hasher:     hasher,
		codec:      codec,
		authConfig: authConfig,
		now:        time.Now,
	}
}

// normalizeEmail is applied on every path that touches the unique email column.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user. Duplicate emails (case-insensitive) are a ConflictError.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.users.UserExists(ctx, email)
	if err != nil {
		return nil, apperror.NewDatabaseError("Database error", err)
	}
	if exists {
		return nil, apperror.NewConflictError("User with that email already exists", nil)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("Error while hashing password", err)
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = DefaultRole
	}

	user, err := s.users.InsertUser(ctx, &User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Password:     digest,
		Role:         role,
		CustomerName: strings.TrimSpace(req.CustomerName),
	})
	if err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperror.NewConflictError("User with that email already exists", nil)
		}
		return nil, apperror.NewDatabaseError("Database error", err)
	}
	return user, nil
}

func (s *AuthService) decoyDigest() string {
	s.decoyOnce.Do(func() { s.decoy = newDecoyDigest(s.hasher) })
	return s.decoy
}

// invalidCredentials is the one answer for unknown email and wrong password alike.
func invalidCredentials() error {
	return apperror.NewBadRequestError("Invalid email or password", nil)
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.hasher.Verify(req.Password, s.decoyDigest())
			return "", invalidCredentials()
		}
		return "", apperror.NewDatabaseError("Database error", err)
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		slog.InfoContext(ctx, "login rejected", slog.Int64("user_id", user.ID))
		return "", invalidCredentials()
	}

	token, err := s.codec.Issue(strconv.FormatInt(user.ID, 10), s.now(), s.authConfig.TokenDuration)
	if err != nil {
		return "", apperror.NewInternalError("Could not create session", err)
	}
	return token, nil
}
