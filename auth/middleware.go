// Package auth, as part of the authentication module.
// This file, `middleware.go`, is the Credential Gate: the middleware every protected route
// goes through before any handler body runs.
package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	// `strings` for string manipulation (e.g., splitting the Authorization header).
	"strings"
	"time"

	"github.com/user/stockview-go/apperror"
)

// TokenCookieName is the cookie login sets and the gate reads first.
const TokenCookieName = "token"

// PrincipalHandler is a handler that can only run with an authenticated user.
// Gate.Authenticate is the only way to turn one into an http.Handler, which is what
// makes "Role Gate before Credential Gate" impossible to wire.
type PrincipalHandler func(w http.ResponseWriter, r *http.Request, user *User)

// Gate authenticates requests with a session token and a user lookup.
type Gate struct {
	codec *TokenCodec
	users UserStore
	now   func() time.Time
}

// NewGate creates a Credential Gate.
func NewGate(codec *TokenCodec, users UserStore) *Gate {
	return &Gate{codec: codec, users: users, now: time.Now}
}

// Authenticate runs the gate and, on success, calls next with the loaded user.
// On failure it writes a terminal 401 (or 500 if the user store is down) and next never runs.
func (g *Gate) Authenticate(next PrincipalHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.resolve(r)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		ctx := NewContextWithUser(r.Context(), user)
		next(w, r.WithContext(ctx), user)
	})
}

func (g *Gate) resolve(r *http.Request) (*User, error) {
	tokenString, ok := extractToken(r)
	if !ok {
		return nil, apperror.NewAuthError("You are not logged in, please provide token", nil)
	}

	claims, err := g.codec.Verify(tokenString, g.now())
	if err != nil {
		// Clients get one message; the log says which way it failed.
		if IsExpired(err) {
			slog.DebugContext(r.Context(), "rejected expired session token", slog.Any("error", err))
		} else {
			slog.WarnContext(r.Context(), "rejected malformed session token", slog.Any("error", err), slog.String("remote", r.RemoteAddr))
		}
		return nil, apperror.NewAuthError("Invalid token", err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		slog.WarnContext(r.Context(), "session token subject is not a user id", slog.String("sub", claims.Subject))
		return nil, apperror.NewAuthError("Invalid token", err)
	}

	user, err := g.users.FindUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperror.NewAuthError("The user belonging to this token no longer exists", nil)
		}
		return nil, apperror.NewDatabaseError("Database error", err)
	}
	return user, nil
}

// extractToken prefers the `token` cookie and falls back to `Authorization: Bearer <token>`.
func extractToken(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
