package auth

import (
	"net/http"

	"github.com/user/stockview-go/apperror"
)

// RequireAdmin is the Role Gate. It only composes with PrincipalHandler, so it always
// runs after Gate.Authenticate has loaded the user.
func RequireAdmin(next PrincipalHandler) PrincipalHandler {
	return func(w http.ResponseWriter, r *http.Request, user *User) {
		if !user.IsAdmin() {
			WriteError(w, r, apperror.NewUnauthorizedError("You are not allowed to perform this action", nil))
			return
		}
		next(w, r, user)
	}
}
