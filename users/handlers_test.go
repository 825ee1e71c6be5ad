package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/stockview-go/auth"
)

func TestHandleGetMe(t *testing.T) {
	user := &auth.User{ID: 7, Name: "Mario", Email: "mario@example.com", Password: "$2a$10$digest", Role: "user", CustomerName: "ACME"}
	rec := httptest.NewRecorder()

	HandleGetMe()(rec, httptest.NewRequest(http.MethodGet, "/api/users/me", nil), user)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "digest")

	var body auth.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, int64(7), body.Data.User.ID)
	assert.Equal(t, "ACME", body.Data.User.CustomerName)
}
