// Package auth, as previously noted, handles authentication.
// This file, `models.go`, defines the user record shared by the gates, the login flow
// and the user store.
package auth

import (
	"context"
	"errors"
	"time"
)

// AdminRole is the only role the Role Gate lets through.
const AdminRole = "admin"

// DefaultRole is assigned when registration does not name one.
const DefaultRole = "user"

// User represents a user in the system, as stored in the `users` table.
// `Password` holds the digest, never the raw secret; `json:"-"` keeps it out of responses.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	Role         string    `json:"role"`
	CustomerName string    `json:"customerName"` // tenant; empty means "no tenant"
	Photo        string    `json:"photo"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the administrative role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == AdminRole
}

// FilteredUser is the public projection of a User.
type FilteredUser struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CustomerName string    `json:"customerName"`
	Photo        string    `json:"photo"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Filter strips the digest and anything else not meant for clients.
func (u *User) Filter() FilteredUser {
	return FilteredUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		CustomerName: u.CustomerName,
		Photo:        u.Photo,
		Verified:     u.Verified,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Errors a UserStore reports for expected outcomes. Anything else is a store failure.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserStore is the relational store for user records.
// Emails are compared case-insensitively; implementations receive them already lower-cased.
type UserStore interface {
	FindUserByID(ctx context.Context, id int64) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	UserExists(ctx context.Context, email string) (bool, error)
	InsertUser(ctx context.Context, user *User) (*User, error)
}
