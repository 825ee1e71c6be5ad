package db

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	// Registers the "sqlserver" driver with database/sql.
	_ "github.com/microsoft/go-mssqldb"

	"github.com/user/stockview-go/apperror"
	"github.com/user/stockview-go/config"
)

// InventoryDSN builds the go-mssqldb URL for the inventory source.
// Certificates are trusted as-is: the source sits on the plant LAN with a self-signed cert.
func InventoryDSN(cfg *config.InventoryConfig) string {
	query := url.Values{}
	query.Set("TrustServerCertificate", "true")
	query.Set("app name", "stockview")
	if cfg.Database != "" {
		query.Set("database", cfg.Database)
	}
	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// OpenInventorySession opens the SQL Server source and reserves its one connection.
// The returned *sqlx.Conn is the only session the service ever uses against the
// inventory view; the caller owns it and must close both values on shutdown.
func OpenInventorySession(cfg *config.InventoryConfig) (*sqlx.DB, *sqlx.Conn, error) {
	sqlDB, err := sqlx.Open("sqlserver", InventoryDSN(cfg))
	if err != nil {
		return nil, nil, apperror.NewDatabaseError("error opening inventory source", err)
	}
	// The source does not tolerate more than one session from us.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := sqlDB.Connx(ctx)
	if err != nil {
		sqlDB.Close()
		return nil, nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to inventory source %s", cfg.Host), err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		sqlDB.Close()
		return nil, nil, apperror.NewDatabaseError(fmt.Sprintf("error pinging inventory source %s", cfg.Host), err)
	}
	return sqlDB, conn, nil
}
