// Package apperror defines a centralized system for application-specific errors.
// Every handler and middleware in the service reports failures as an *AppError, so the
// HTTP status code and the JSON body shape are decided in exactly one place.
package apperror

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// ErrorType is the category of an AppError; it decides the HTTP status.
type ErrorType int

const (
	UnknownError      ErrorType = iota
	DatabaseError               // either store failed
	ConfigError                 // startup configuration is unusable
	AuthError                   // 401: missing, invalid or expired token
	UnauthorizedError           // 403: authenticated but not allowed
	NotFoundError
	ValidationError // request body failed its validate tags
	BadRequestError
	InternalError
	ConflictError    // e.g. email already registered
	UnavailableError // inventory session not acquired in time
	CanceledError    // the client went away before the work finished
)

type kind struct {
	name   string
	status int
}

var kinds = map[ErrorType]kind{
	UnknownError:      {"unknown", http.StatusInternalServerError},
	DatabaseError:     {"database", http.StatusInternalServerError},
	ConfigError:       {"config", http.StatusInternalServerError},
	AuthError:         {"unauthenticated", http.StatusUnauthorized},
	UnauthorizedError: {"forbidden", http.StatusForbidden},
	NotFoundError:     {"not_found", http.StatusNotFound},
	ValidationError:   {"validation", http.StatusBadRequest},
	BadRequestError:   {"bad_request", http.StatusBadRequest},
	InternalError:     {"internal", http.StatusInternalServerError},
	ConflictError:     {"conflict", http.StatusConflict},
	UnavailableError:  {"unavailable", http.StatusServiceUnavailable},
	CanceledError:     {"canceled", StatusClientClosedRequest},
}

// StatusClientClosedRequest is the non-standard status logged when the client
// disconnects first.
const StatusClientClosedRequest = 499

func (t ErrorType) String() string {
	if k, ok := kinds[t]; ok {
		return k.name
	}
	return fmt.Sprintf("ErrorType(%d)", int(t))
}

// Values of the `status` field in error bodies.
const (
	StatusFail  = "fail"  // 4xx
	StatusError = "error" // 5xx
)

// AppError is the error type handlers return. Err is kept for logs; only Message is
// ever sent to the client.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type to an HTTP status. Unknown types are 500.
func (e *AppError) StatusCode() int {
	if k, ok := kinds[e.Type]; ok {
		return k.status
	}
	return http.StatusInternalServerError
}

// LogValue renders the error as a group in slog output.
func (e *AppError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.Type.String()),
		slog.String("message", e.Message),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}
	return slog.GroupValue(attrs...)
}

// NewAppError creates an AppError of any type.
func NewAppError(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func NewDatabaseError(message string, err error) *AppError {
	return NewAppError(DatabaseError, message, err)
}

func NewConfigError(message string, err error) *AppError {
	return NewAppError(ConfigError, message, err)
}

// NewAuthError is a 401: the caller is not authenticated.
func NewAuthError(message string, err error) *AppError {
	return NewAppError(AuthError, message, err)
}

// NewUnauthorizedError is a 403: the caller is authenticated but lacks the role.
func NewUnauthorizedError(message string, err error) *AppError {
	return NewAppError(UnauthorizedError, message, err)
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(NotFoundError, message, err)
}

func NewValidationError(message string, err error) *AppError {
	return NewAppError(ValidationError, message, err)
}

func NewBadRequestError(message string, err error) *AppError {
	return NewAppError(BadRequestError, message, err)
}

func NewInternalError(message string, err error) *AppError {
	return NewAppError(InternalError, message, err)
}

func NewConflictError(message string, err error) *AppError {
	return NewAppError(ConflictError, message, err)
}

func NewUnavailableError(message string, err error) *AppError {
	return NewAppError(UnavailableError, message, err)
}

func NewCanceledError(message string, err error) *AppError {
	return NewAppError(CanceledError, message, err)
}

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Status  string `json:"status" example:"fail"`
	Message string `json:"message" example:"A description of the error"`
}

// ToResponse builds the client body: `fail` for 4xx, `error` for 5xx.
func (e *AppError) ToResponse() ErrorResponse {
	status := StatusFail
	if e.StatusCode() >= http.StatusInternalServerError {
		status = StatusError
	}
	return ErrorResponse{Status: status, Message: e.Message}
}

// FromError finds an *AppError anywhere in err's chain.
func FromError(err error) (*AppError, bool) {
	var ae *AppError
	if err == nil || !errors.As(err, &ae) {
		return nil, false
	}
	return ae, true
}

func IsUnauthorizedError(err error) bool { return isType(err, UnauthorizedError) }

func IsConflictError(err error) bool { return isType(err, ConflictError) }

func IsUnavailableError(err error) bool { return isType(err, UnavailableError) }

func IsCanceledError(err error) bool { return isType(err, CanceledError) }

func isType(err error, t ErrorType) bool {
	ae, ok := FromError(err)
	return ok && ae.Type == t
}
