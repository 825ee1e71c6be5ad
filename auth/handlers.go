// Package auth, as part of the authentication module.
// This file, `handlers.go`, is responsible for handling HTTP requests related to authentication.
package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/user/stockview-go/apperror"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Handlers wraps the AuthService to provide HTTP handlers.
type Handlers struct {
	service      *AuthService
	cookieMaxAge time.Duration
}

// NewHandlers creates a new Handlers instance
func NewHandlers(service *AuthService) *Handlers {
	return &Handlers{service: service, cookieMaxAge: service.authConfig.CookieMaxAge}
}

// HandleRegister godoc
// @Summary User Registration
// @Description Registers a new user. Only administrators may register users.
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registerBody body auth.RegisterRequest true "User registration details"
// @Success 201 {object} auth.UserResponse "User created successfully"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input or missing fields"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} apperror.ErrorResponse "Forbidden - Caller is not an administrator"
// @Failure 409 {object} apperror.ErrorResponse "Conflict - Email already registered"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/auth/register [post]
func (h *Handlers) HandleRegister() PrincipalHandler {
	return func(w http.ResponseWriter, r *http.Request, admin *User) {
		var req RegisterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			WriteError(w, r, err)
			return
		}

		user, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		slog.InfoContext(r.Context(), "user registered",
			slog.Int64("user_id", user.ID), slog.Int64("by", admin.ID), slog.String("role", user.Role))
		WriteJSON(w, http.StatusCreated, UserResponse{Status: "success", Data: UserEnvelope{User: user.Filter()}})
	}
}

// HandleLogin godoc
// @Summary User Login
// @Description Logs in a user. The session token is returned in the body and as an HTTP-only cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.LoginResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid email or password"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			WriteError(w, r, err)
			return
		}

		token, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     TokenCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(h.cookieMaxAge.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		WriteJSON(w, http.StatusOK, LoginResponse{Status: "success", Token: token})
	}
}

// HandleLogout godoc
// @Summary User Logout
// @Description Clears the session cookie. Tokens are not revoked server-side; they expire.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.StatusResponse
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /api/auth/logout [get]
func (h *Handlers) HandleLogout() PrincipalHandler {
	return func(w http.ResponseWriter, r *http.Request, _ *User) {
		http.SetCookie(w, &http.Cookie{
			Name:     TokenCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		WriteJSON(w, http.StatusOK, StatusResponse{Status: "success"})
	}
}

// decodeJSON reads a bounded JSON body into dst and validates its struct tags.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		return apperror.NewBadRequestError("invalid request body", err)
	}
	if err := validate.Struct(dst); err != nil {
		return apperror.NewValidationError(validationMessage(err), err)
	}
	return nil
}

// WriteJSON serializes `data` to JSON and writes it with the given `status`.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil { // Avoid writing nil, which can result in "null" response body
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// WriteError writes any error as an `apperror.ErrorResponse`. Non-AppErrors become a
// generic 500. Server-side failures are logged with their cause and the request id;
// the cause never reaches the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int("status", appErr.StatusCode()),
			slog.Any("error", appErr),
		)
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
