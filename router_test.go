package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/stockview-go/auth"
	"github.com/user/stockview-go/config"
	"github.com/user/stockview-go/inventory"
)

type staticUsers map[int64]*auth.User

func (s staticUsers) FindUserByID(_ context.Context, id int64) (*auth.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, auth.ErrUserNotFound
}

func (s staticUsers) FindUserByEmail(context.Context, string) (*auth.User, error) {
	return nil, auth.ErrUserNotFound
}

func (s staticUsers) UserExists(context.Context, string) (bool, error) { return false, nil }

func (s staticUsers) InsertUser(_ context.Context, u *auth.User) (*auth.User, error) {
	return u, nil
}

const routerSecret = "router-secret"

type routerFixture struct {
	handler http.Handler
	mock    sqlmock.Sqlmock
	static  string
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	store := staticUsers{
		1: {ID: 1, Email: "admin@example.com", Role: auth.AdminRole},
		7: {ID: 7, Email: "mario@example.com", Role: "user", CustomerName: "ACME"},
	}
	authCfg := config.AuthConfig{JWTSecret: routerSecret, TokenDuration: time.Hour, CookieMaxAge: time.Hour}
	codec := auth.NewTokenCodec([]byte(routerSecret))

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	invCfg := &config.InventoryConfig{
		View: config.DefaultInventoryView, AcquireTimeout: time.Second, QueryTimeout: time.Second, AllowUnscoped: true,
	}
	invService, err := inventory.NewService(inventory.NewSession(sqlx.NewDb(mockDB, "sqlmock"), invCfg.AcquireTimeout), invCfg)
	require.NoError(t, err)

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>app</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(static, "app.js"), []byte("console.log(1)"), 0o600))

	h := newRouter(routerDeps{
		gate:      auth.NewGate(codec, store),
		auth:      auth.NewHandlers(auth.NewAuthService(store, auth.NewBcryptHasher(), codec, authCfg)),
		inventory: inventory.NewHandlers(invService),
		server:    &config.ServerConfig{CORSOrigin: "http://localhost:3000", StaticDir: static},
	})
	return &routerFixture{handler: h, mock: mock, static: static}
}

func (f *routerFixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	tok, err := auth.NewTokenCodec([]byte(routerSecret)).Issue(sub, time.Now(), time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRouter_HealthCheck(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/healthchecker", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"success"`)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	f := newRouterFixture(t)
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/auth/logout"},
		{http.MethodPost, "/api/auth/register"},
	} {
		rec := f.do(t, httptest.NewRequest(route.method, route.path, strings.NewReader("{}")))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
	}
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestRouter_RegisterIsAdminOnly(t *testing.T) {
	f := newRouterFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"x","email":"x@example.com","password":"12345678"}`))
	req.Header.Set("Authorization", bearer(t, "7"))

	assert.Equal(t, http.StatusForbidden, f.do(t, req).Code)
}

func TestRouter_OrdersForTenant(t *testing.T) {
	f := newRouterFixture(t)
	f.mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).WithArgs("ACME").
		WillReturnRows(sqlmock.NewRows([]string{""}).AddRow(int64(0)))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", bearer(t, "7"))
	rec := f.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[],"current_page":0,"total_pages":0,"total_count":0}`, rec.Body.String())
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	f := newRouterFixture(t)
	mux, ok := f.handler.(*chi.Mux)
	require.True(t, ok)
	mux.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("bad row") })

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/api/healthchecker", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "server keeps serving")
}

func TestRouter_Me(t *testing.T) {
	f := newRouterFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", bearer(t, "7"))
	rec := f.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mario@example.com")
}

func TestRouter_CORSPreflight(t *testing.T) {
	f := newRouterFixture(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := f.do(t, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	assert.Empty(t, f.do(t, req).Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_StaticFallback(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/stock/L-21", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>app</html>", rec.Body.String())

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/../../etc/passwd", nil))
	assert.Equal(t, "<html>app</html>", rec.Body.String())
}

func TestRouter_UnknownAPIRouteIsJSON404(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"fail"`)
}

func TestRouter_SwaggerDoc(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/orders")
}

func TestNewLogger(t *testing.T) {
	assert.True(t, newLogger("debug").Enabled(context.Background(), -4))
	assert.False(t, newLogger("bogus").Enabled(context.Background(), -4))
}
