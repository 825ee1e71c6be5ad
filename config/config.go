// Package config provides configuration management for the stockview service.
// It handles loading and validation of configuration values from environment variables,
// with support for required variables, default values, and collective error reporting:
// every problem is collected so a misconfigured deployment reports all of them at once.
package config

import (
	"fmt"
	// `os` package provides operating system functionalities, like reading environment variables.
	"os"
	"regexp"
	"strconv"
	"time"

	// `go-multierror` aggregates every configuration problem into one error.
	"github.com/hashicorp/go-multierror"
)

// DefaultInventoryView is the SQL Server view the listing endpoint reads from.
const DefaultInventoryView = "SRLMAZZ_LANTEK.dbo.VGiacenzaLamiere"

// identifierPattern accepts a one- to three-part SQL Server object name, optionally bracketed.
var identifierPattern = regexp.MustCompile(`^(\[?[A-Za-z_][A-Za-z0-9_]*\]?)(\.\[?[A-Za-z_][A-Za-z0-9_]*\]?){0,2}$`)

// PoolConfig represents configuration for the PostgreSQL user-store pool.
type PoolConfig struct {
	URL     string
	MaxSize int
}

// InventoryConfig holds the settings of the single SQL Server session used for listings.
type InventoryConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string // optional, the view name is usually fully qualified
	View     string

	// AcquireTimeout bounds how long a request waits for the exclusive session.
	AcquireTimeout time.Duration
	// QueryTimeout bounds each individual query on the session.
	QueryTimeout time.Duration
	// KeepaliveInterval is how often the idle session is pinged.
	KeepaliveInterval time.Duration
	// AllowUnscoped lets principals without a customer name list every tenant's rows.
	AllowUnscoped bool
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret     string        // Secret key for signing JWTs
	TokenDuration time.Duration // Lifetime of a session token (JWT_EXPIRED_IN)
	CookieMaxAge  time.Duration // Max-Age of the `token` cookie (JWT_MAXAGE, minutes)
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port       string // Port for the HTTP server
	CORSOrigin string // The single origin allowed to call the API with credentials
	StaticDir  string // Directory served for every unmatched route
	LogLevel   string
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB        *PoolConfig
	Inventory *InventoryConfig
	Auth      *AuthConfig
	Server    *ServerConfig
}

// loader collects errors while reading variables.
type loader struct {
	errs *multierror.Error
}

func (l *loader) fail(format string, args ...any) {
	l.errs = multierror.Append(l.errs, fmt.Errorf(format, args...))
}

// required returns the variable or records it as missing.
func (l *loader) required(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		l.fail("missing required environment variable: %s", key)
		return ""
	}
	return value
}

func (l *loader) optional(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func (l *loader) optionalInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		l.fail("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err)
		return defaultValue
	}
	return valueInt
}

// optionalDuration parses strings like "15m" or "1h30s".
func (l *loader) optionalDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		l.fail("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err)
		return defaultValue
	}
	if valueDuration <= 0 {
		l.fail("invalid value for %s: duration must be positive, got '%s'", key, valueStr)
		return defaultValue
	}
	return valueDuration
}

func (l *loader) optionalBool(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(valueStr)
	if err != nil {
		l.fail("invalid value for %s: expected boolean, got '%s'", key, valueStr)
		return defaultValue
	}
	return b
}

// clampPoolSize keeps the pool size between 1 and 100.
func clampPoolSize(size int) int {
	if size < 1 {
		return 1
	}
	if size > 100 {
		return 100
	}
	return size
}

// ValidIdentifier reports whether name can be placed into query text as an object name.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	l := &loader{}

	db := &PoolConfig{
		URL:     l.required("DATABASE_URL"),
		MaxSize: clampPoolSize(l.optionalInt("DB_POOL_SIZE", 10)),
	}

	inventory := &InventoryConfig{
		Host:           l.required("SQLSERVER_HOSTNAME"),
		Port:           l.optionalInt("SQLSERVER_PORT", 1433),
		User:           l.required("SQLSERVER_USERNAME"),
		Password:       l.required("SQLSERVER_PASSWORD"),
		Database:       l.optional("SQLSERVER_DATABASE", ""),
		View:           l.optional("INVENTORY_VIEW", DefaultInventoryView),
		AcquireTimeout: l.optionalDuration("INVENTORY_ACQUIRE_TIMEOUT", 5*time.Second),
		QueryTimeout:   l.optionalDuration("INVENTORY_QUERY_TIMEOUT", 15*time.Second),
		AllowUnscoped:  l.optionalBool("INVENTORY_ALLOW_UNSCOPED", true),

		KeepaliveInterval: l.optionalDuration("INVENTORY_KEEPALIVE_INTERVAL", 5*time.Minute),
	}
	if !ValidIdentifier(inventory.View) {
		l.fail("invalid value for INVENTORY_VIEW: %q is not a valid object name", inventory.View)
	}

	// JWT_MAXAGE is expressed in minutes, like the cookie lifetime it controls.
	maxAge := l.optionalInt("JWT_MAXAGE", 60)
	if maxAge <= 0 {
		l.fail("invalid value for JWT_MAXAGE: must be a positive number of minutes, got %d", maxAge)
		maxAge = 60
	}
	auth := &AuthConfig{
		JWTSecret:     l.required("JWT_SECRET"),
		TokenDuration: l.optionalDuration("JWT_EXPIRED_IN", 60*time.Minute),
		CookieMaxAge:  time.Duration(maxAge) * time.Minute,
	}

	server := &ServerConfig{
		Port:       l.optional("PORT", "8800"),
		CORSOrigin: l.required("CORS_ORIGIN_VALUE"),
		StaticDir:  l.optional("STATIC_DIR", "./html"),
		LogLevel:   l.optional("LOG_LEVEL", "info"),
	}

	if err := l.errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("configuration errors: %w", err)
	}

	return &AppConfig{
		DB:        db,
		Inventory: inventory,
		Auth:      auth,
		Server:    server,
	}, nil
}
