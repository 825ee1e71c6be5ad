package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	// `chi` is a lightweight, idiomatic and composable router for building HTTP services in Go.
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	// `chi/cors` provides CORS (Cross-Origin Resource Sharing) middleware.
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/stockview-go/apperror"
	"github.com/user/stockview-go/auth"
	"github.com/user/stockview-go/config"
	_ "github.com/user/stockview-go/docs" // registers the Swagger document
	"github.com/user/stockview-go/inventory"
	"github.com/user/stockview-go/users"
)

type routerDeps struct {
	gate      *auth.Gate
	auth      *auth.Handlers
	inventory *inventory.Handlers
	server    *config.ServerConfig
}

// newRouter builds the full HTTP surface. Protected routes only accept a
// PrincipalHandler, so every one of them goes through the gate first.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{d.server.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthchecker", handleHealthCheck)

		r.Route("/auth", func(r chi.Router) {
			r.Method(http.MethodPost, "/register", d.gate.Authenticate(auth.RequireAdmin(d.auth.HandleRegister())))
			r.Post("/login", d.auth.HandleLogin())
			r.Method(http.MethodGet, "/logout", d.gate.Authenticate(d.auth.HandleLogout()))
		})

		r.Method(http.MethodGet, "/users/me", d.gate.Authenticate(users.HandleGetMe()))
		r.Method(http.MethodGet, "/orders", d.gate.Authenticate(d.inventory.HandleListOrders()))

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			auth.WriteError(w, r, apperror.NewNotFoundError("Route not found", nil))
		})
	})

	r.NotFound(spaHandler(d.server.StaticDir))
	return r
}

// handleHealthCheck godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} auth.StatusResponse
// @Router /api/healthchecker [get]
func handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	auth.WriteJSON(w, http.StatusOK, auth.StatusResponse{
		Status:  "success",
		Message: "Stockview API is up",
	})
}

// spaHandler serves files from dir and answers every other path with dir/index.html,
// so client-side routes survive a reload.
func spaHandler(dir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			auth.WriteError(w, r, apperror.NewNotFoundError("Route not found", nil))
			return
		}
		clean := filepath.Clean("/" + strings.TrimPrefix(r.URL.Path, "/"))
		if info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean))); err == nil && !info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		serveIndex(w, r, filepath.Join(dir, "index.html"))
	}
}

func serveIndex(w http.ResponseWriter, r *http.Request, path string) {
	f, err := os.Open(path)
	if err != nil {
		auth.WriteError(w, r, apperror.NewNotFoundError("Not found", err))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		auth.WriteError(w, r, apperror.NewInternalError("could not read index.html", err))
		return
	}
	http.ServeContent(w, r, "index.html", info.ModTime(), f)
}
