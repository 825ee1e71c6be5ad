// Package users, as part of the user profile module.
// This file, `handlers.go`, serves the authenticated user's own profile.
package users

import (
	"net/http"

	"github.com/user/stockview-go/auth"
)

// HandleGetMe godoc
// @Summary Get current user's profile
// @Description Returns the authenticated user without the password digest.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.UserResponse "Successfully retrieved user profile"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/users/me [get]
// The gate already loaded the user, so this handler never touches the store.
func HandleGetMe() auth.PrincipalHandler {
	return func(w http.ResponseWriter, r *http.Request, user *auth.User) {
		auth.WriteJSON(w, http.StatusOK, auth.UserResponse{
			Status: "success",
			Data:   auth.UserEnvelope{User: user.Filter()},
		})
	}
}
