package db

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"io/fs"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
)

var errNotFound = errors.New("not found")

func TestHandleQueryError(t *testing.T) {
	start := time.Now()

	assert.NoError(t, HandleQueryError(nil, errNotFound, "find user", start))
	assert.Equal(t, errNotFound, HandleQueryError(sql.ErrNoRows, errNotFound, "find user", start))

	cause := errors.New("conn reset")
	err := HandleQueryError(cause, errNotFound, "find user", start)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, commonerrors.ErrDatabaseError)
	assert.Equal(t, "failed to find user: conn reset", err.Error())
}

func TestHandleExecError(t *testing.T) {
	start := time.Now()

	assert.NoError(t, HandleExecError(nil, "delete item", start))

	err := HandleExecError(sql.ErrNoRows, "delete item", start)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.ErrorIs(t, err, commonerrors.ErrDatabaseError)

	de, ok := commonerrors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "DATABASE_ERROR", de.Code())
	assert.Equal(t, "failed to delete item", de.Message())
}

func TestHandleExecError_KeepsPgErrorReachable(t *testing.T) {
	err := HandleExecError(&pgconn.PgError{Code: "23505"}, "create user", time.Now())
	assert.True(t, IsUniqueViolation(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate")))
}

func TestExtractTableFromOperation(t *testing.T) {
	cases := map[string]string{
		"create user":         "users",
		"insert item":         "items",
		"list pending":        "items",
		"mark notified":       "items",
		"upsert subscription": "telegram_subscriptions",
		"delete session":      "sessions",
		"ping":                "unknown",
	}
	for op, table := range cases {
		assert.Equal(t, table, extractTableFromOperation(op), op)
	}
}

func TestWaitForDatabase_RetriesUntilPing(t *testing.T) {
	pool, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer pool.Close()

	mock.ExpectPing().WillReturnError(errors.New("starting up"))
	mock.ExpectPing()

	log := logger.NewWithWriter(io.Discard, "test", "error")
	err = waitForDatabase(context.Background(), log, pool, 3, time.Millisecond)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_GivesUp(t *testing.T) {
	pool, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer pool.Close()

	down := errors.New("down")
	mock.ExpectPing().WillReturnError(down)
	mock.ExpectPing().WillReturnError(down)

	log := logger.NewWithWriter(io.Discard, "test", "error")
	err = waitForDatabase(context.Background(), log, pool, 2, time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, down)
}

func TestMigrationsEmbedded(t *testing.T) {
	data, err := fs.ReadFile(migrations, "migrations/00001_init.sql")
	require.NoError(t, err)

	schema := string(data)
	for _, table := range []string{"users", "items", "telegram_subscriptions", "sessions"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, schema, "-- +goose Up")
}
