package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
)

type PoolConfig struct {
	MaxOpenConns int
	MaxAttempts  int
	RetryDelay   time.Duration
}

func (c PoolConfig) withDefaults() PoolConfig {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = constants.DBPoolMaxOpenConns
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = constants.DBPoolMaxAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = constants.DBPoolRetryDelay
	}
	return c
}

// NewPool opens the shared bounded pool every repository borrows from.
func NewPool(ctx context.Context, log *logger.Logger, databaseURL string, cfg PoolConfig) (*sql.DB, error) {
	cfg = cfg.withDefaults()

	pool, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(min(constants.DBPoolMaxIdleConns, cfg.MaxOpenConns))
	pool.SetConnMaxLifetime(constants.DBPoolConnMaxLifetime)
	pool.SetConnMaxIdleTime(constants.DBPoolConnMaxIdleTime)

	if err := waitForDatabase(ctx, log, pool, cfg.MaxAttempts, cfg.RetryDelay); err != nil {
		_ = pool.Close()
		return nil, err
	}

	log.Infof("database connection pool initialized: max_open=%d", cfg.MaxOpenConns)
	return pool, nil
}

func waitForDatabase(ctx context.Context, log *logger.Logger, pool *sql.DB, maxAttempts int, delay time.Duration) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = pool.PingContext(ctx); err == nil {
			return nil
		}

		log.Warnf("failed to connect to database (attempt %d/%d): %v", attempt, maxAttempts, err)

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("failed to connect to database after %d attempts: %w", maxAttempts, err)
}
