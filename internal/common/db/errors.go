package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"

	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/observability/metrics"
)

const uniqueViolationCode = "23505"

func extractTableFromOperation(operation string) string {
	operation = strings.ToLower(operation)
	switch {
	case strings.Contains(operation, "session"):
		return "sessions"
	case strings.Contains(operation, "subscription"):
		return "telegram_subscriptions"
	case strings.Contains(operation, "item"), strings.Contains(operation, "pending"), strings.Contains(operation, "notified"):
		return "items"
	case strings.Contains(operation, "user"):
		return "users"
	}
	return "unknown"
}

func HandleQueryError(err error, notFoundErr error, operation string, startTime time.Time) error {
	MeasureQueryDuration(operation, startTime)

	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}
	recordQueryError(operation, err)
	return databaseError(operation, err)
}

func HandleExecError(err error, operation string, startTime time.Time) error {
	MeasureQueryDuration(operation, startTime)

	if err == nil {
		return nil
	}
	recordQueryError(operation, err)
	return databaseError(operation, err)
}

func databaseError(operation string, err error) error {
	return commonerrors.ErrDatabaseError.WithMessage("failed to " + operation).WithCause(err)
}

func MeasureQueryDuration(operation string, startTime time.Time) {
	metrics.DBQueryDurationSeconds.
		WithLabelValues(operation, extractTableFromOperation(operation)).
		Observe(time.Since(startTime).Seconds())
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func recordQueryError(operation string, err error) {
	metrics.DBQueryErrors.WithLabelValues(
		operation,
		extractTableFromOperation(operation),
		fmt.Sprintf("%T", err),
	).Inc()
}
