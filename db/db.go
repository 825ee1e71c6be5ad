// Package db provides database connectivity for the stockview service.
// It opens the PostgreSQL pool that backs the user store and the single SQL Server
// session that backs inventory listings. Both constructors verify connectivity with
// a bounded ping so a bad deployment fails at startup rather than on the first request.
package db

import (
	"context"
	"fmt"
	"time"

	// `pgxpool` is part of the `jackc/pgx` suite, providing a robust connection pool for PostgreSQL.
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/stockview-go/apperror"
	"github.com/user/stockview-go/config"
)

// NewUserPool establishes the PostgreSQL pool for the user store.
// Requests may each hold their own connection; no cross-request serialization is needed here.
func NewUserPool(cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	// `pgxpool.ParseConfig` parses the DSN string into a `pgxpool.Config` struct.
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, apperror.NewDatabaseError("error parsing DATABASE_URL", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError("error creating pgxpool", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close() // Clean up on connection failure
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to the database %s", poolConfig.ConnConfig.Database), err)
	}

	return pool, nil
}
