package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"auth", NewAuthError("x", nil), http.StatusUnauthorized},
		{"forbidden", NewUnauthorizedError("x", nil), http.StatusForbidden},
		{"conflict", NewConflictError("x", nil), http.StatusConflict},
		{"bad request", NewBadRequestError("x", nil), http.StatusBadRequest},
		{"validation", NewValidationError("x", nil), http.StatusBadRequest},
		{"database", NewDatabaseError("x", nil), http.StatusInternalServerError},
		{"unavailable", NewUnavailableError("x", nil), http.StatusServiceUnavailable},
		{"canceled", NewCanceledError("x", nil), StatusClientClosedRequest},
		{"unknown", NewAppError(UnknownError, "x", nil), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.StatusCode())
		})
	}
}

func TestToResponse_DoesNotLeakCause(t *testing.T) {
	err := NewDatabaseError("Database error", errors.New("login failed for user 'sa'"))

	resp := err.ToResponse()

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "Database error", resp.Message)
	assert.Contains(t, err.Error(), "login failed", "cause stays available for logs")
}

func TestToResponse_ClientErrorsAreFail(t *testing.T) {
	assert.Equal(t, StatusFail, NewAuthError("nope", nil).ToResponse().Status)
	assert.Equal(t, StatusFail, NewConflictError("dup", nil).ToResponse().Status)
}

func TestFromError_FindsWrapped(t *testing.T) {
	inner := NewUnavailableError("busy", nil)
	wrapped := fmt.Errorf("listing: %w", inner)

	got, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.True(t, IsUnavailableError(wrapped))

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)
	_, ok = FromError(nil)
	assert.False(t, ok)
}

func TestLogValue(t *testing.T) {
	v := NewDatabaseError("Database error", errors.New("timeout")).LogValue()

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}
	assert.Equal(t, map[string]string{"type": "database", "message": "Database error", "cause": "timeout"}, got)
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
}
