// Package auth, as part of the authentication module.
// This file, `context.go`, carries the authenticated principal through `context.Context`
// for the lifetime of one request.
package auth

import (
	"context"
)

// `contextKey` is a custom type for context keys so they cannot collide with other packages.
type contextKey string

const (
	// `principalContextKey` is the key the Credential Gate stores the *User under.
	principalContextKey contextKey = "auth_principal"
)

// NewContextWithUser returns a child context carrying the authenticated user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, principalContextKey, user)
}

// UserFromContext extracts the user stored by the Credential Gate.
// The second return value reports whether a user was found.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(principalContextKey).(*User)
	return user, ok && user != nil
}
