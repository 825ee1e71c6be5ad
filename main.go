// This is the main entry point of the stockview service.
// It loads configuration, opens the user store pool and the inventory session,
// wires services and handlers into the chi router and runs the HTTP server
// until SIGINT/SIGTERM, then shuts down gracefully.
// @title Stockview API
// @version 1.0
// @description Authenticated, tenant-scoped listing of sheet-metal stock.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize. Browsers use the `token` cookie instead.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// `godotenv` loads environment variables from a .env file, useful for development.
	"github.com/joho/godotenv"

	"github.com/user/stockview-go/auth"
	"github.com/user/stockview-go/background"
	"github.com/user/stockview-go/config"
	"github.com/user/stockview-go/db"
	"github.com/user/stockview-go/inventory"
	"github.com/user/stockview-go/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found or error loading it", slog.Any("error", err))
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Server.LogLevel))

	if err := run(cfg); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

// newLogger returns a JSON slog logger at the named level; unknown names mean info.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func run(cfg *config.AppConfig) error {
	userPool, err := db.NewUserPool(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to create user pool: %w", err)
	}
	defer userPool.Close()

	inventoryDB, inventoryConn, err := db.OpenInventorySession(cfg.Inventory)
	if err != nil {
		return fmt.Errorf("failed to open inventory session: %w", err)
	}
	defer inventoryDB.Close()
	defer inventoryConn.Close()

	userStore := users.NewStore(userPool)
	codec := auth.NewTokenCodec([]byte(cfg.Auth.JWTSecret))
	authService := auth.NewAuthService(userStore, auth.NewBcryptHasher(), codec, *cfg.Auth)

	inventoryService, err := inventory.NewService(
		inventory.NewSession(inventoryConn, cfg.Inventory.AcquireTimeout), cfg.Inventory)
	if err != nil {
		return err
	}

	keepalive := background.NewKeepalive(inventoryService, cfg.Inventory.KeepaliveInterval, cfg.Inventory.QueryTimeout)
	keepalive.Start()
	defer keepalive.Stop()

	handler := newRouter(routerDeps{
		gate:      auth.NewGate(codec, userStore),
		auth:      auth.NewHandlers(authService),
		inventory: inventory.NewHandlers(inventoryService),
		server:    cfg.Server,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // covers the session wait plus two query timeouts
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	slog.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	slog.Info("server stopped gracefully")
	return nil
}
