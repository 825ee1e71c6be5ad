// Package auth provides authentication and authorization functionality
// This file, `dto.go` (Data Transfer Object), defines structures used for
// transferring data in API requests and responses related to authentication.
package auth

import (
	"errors"
	"fmt"
	"strings"

	// `validator` checks the `validate:"..."` struct tags below.
	"github.com/go-playground/validator/v10"
)

// validate is shared; validator.Validate caches struct metadata and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterRequest represents the registration request payload.
// Only an authenticated administrator may submit it.
type RegisterRequest struct {
	Name         string `json:"name" validate:"required,max=100" example:"Mario Rossi"`
	Email        string `json:"email" validate:"required,email,max=255" example:"mario@example.com"`
	Password     string `json:"password" validate:"required,min=8,max=72" example:"strongpassword123"`
	Role         string `json:"role" validate:"omitempty,max=50" example:"user"`
	CustomerName string `json:"customer_name" validate:"omitempty,max=255" example:"ACME S.p.A."`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"mario@example.com"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// LoginResponse is returned on successful login; the same token is also set as a cookie.
type LoginResponse struct {
	Status string `json:"status" example:"success"`
	Token  string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// UserResponse wraps a user record in the success envelope.
type UserResponse struct {
	Status string       `json:"status" example:"success"`
	Data   UserEnvelope `json:"data"`
}

// UserEnvelope is the `data` member of UserResponse.
type UserEnvelope struct {
	User FilteredUser `json:"user"`
}

// StatusResponse is a bare `{status}` / `{status, message}` body.
type StatusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message,omitempty"`
}

// validationMessage turns validator errors into one client-facing sentence.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return "invalid request: " + strings.Join(parts, ", ")
}
