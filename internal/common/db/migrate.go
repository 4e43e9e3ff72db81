package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

type gooseLogger struct {
	log *logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) { g.log.Infof(format, v...) }
func (g gooseLogger) Fatalf(format string, v ...any) { g.log.Fatalf(format, v...) }

// Migrate applies the embedded schema migrations; it is safe to call on every startup.
func Migrate(ctx context.Context, log *logger.Logger, pool *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBMigrationTimeout)
	defer cancel()

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: log})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, pool, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	log.Infof("database schema at version %d", version)
	return nil
}
