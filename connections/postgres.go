package connections

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ptt-Alertor/bank-api/config"
)

var (
	pgPool     *pgxpool.Pool
	pgPoolErr  error
	pgPoolOnce sync.Once
)

// Postgres returns the PostgreSQL connection pool, connecting on first use
func Postgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pgPoolOnce.Do(func() {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL())
		if err != nil {
			pgPoolErr = fmt.Errorf("unable to create PostgreSQL pool: %w", err)
			return
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			pgPoolErr = fmt.Errorf("unable to connect to PostgreSQL: %w", err)
			return
		}
		pgPool = pool
	})
	return pgPool, pgPoolErr
}

// ClosePostgres closes the PostgreSQL connection pool
func ClosePostgres() {
	if pgPool != nil {
		pgPool.Close()
	}
}
