package repository

import (
	"context"
	"database/sql"
	"time"

	commondb "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/db"
	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

type Repository interface {
	Create(ctx context.Context, username, passwordHash string) (domain.ID, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
}

type PgRepository struct {
	pool *sql.DB
}

func NewPgRepository(pool *sql.DB) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, username, passwordHash string) (domain.ID, error) {
	start := time.Now()

	var id domain.ID
	err := r.pool.QueryRowContext(
		ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`,
		username,
		passwordHash,
	).Scan(&id)
	if err != nil && commondb.IsUniqueViolation(err) {
		commondb.MeasureQueryDuration("create user", start)
		return 0, commonerrors.ErrUsernameAlreadyExists
	}
	if err := commondb.HandleExecError(err, "create user", start); err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	start := time.Now()

	var user domain.User
	err := r.pool.QueryRowContext(
		ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err := commondb.HandleQueryError(err, commonerrors.ErrUserNotFound, "find user by username", start); err != nil {
		return domain.User{}, err
	}

	return user, nil
}
