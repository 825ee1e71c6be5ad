package auth

import (
	"errors"
	"fmt"
	"time"

	// `jwt` library for JWT signing, parsing and validation.
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single outcome of a failed verification. The cause
// (expired, bad signature, malformed) stays wrapped for logs only.
var ErrInvalidToken = errors.New("invalid token")

// SessionClaims is the decoded payload of a session token.
type SessionClaims struct {
	Subject   string // user id
	IssuedAt  int64  // seconds since epoch
	ExpiresAt int64  // seconds since epoch
}

// TokenCodec issues and verifies HS256 session tokens with a process-wide secret.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec bound to secret. The secret is immutable afterwards.
func NewTokenCodec(secret []byte) *TokenCodec {
	return &TokenCodec{secret: secret}
}

// Issue signs `{sub, iat: now, exp: now+ttl}`.
func (c *TokenCodec) Issue(subject string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks the signature and that exp > now, and returns the claims.
// All failures wrap ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string, now time.Time) (*SessionClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	out := &SessionClaims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Unix()
	}
	return out, nil
}

// IsExpired reports whether a Verify error was caused by expiry rather than a bad token.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
