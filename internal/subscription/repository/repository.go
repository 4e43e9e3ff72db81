package repository

import (
	"context"
	"database/sql"
	"time"

	commondb "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/db"
	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/subscription/domain"
	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

type Repository interface {
	Upsert(ctx context.Context, userID userdomain.ID, chatID string) error
	FindByUser(ctx context.Context, userID userdomain.ID) (domain.Subscription, error)
}

type PgRepository struct {
	pool *sql.DB
}

func NewPgRepository(pool *sql.DB) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Upsert(ctx context.Context, userID userdomain.ID, chatID string) error {
	start := time.Now()
	_, err := r.pool.ExecContext(
		ctx,
		`INSERT INTO telegram_subscriptions (user_id, chat_id) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET chat_id = EXCLUDED.chat_id`,
		int64(userID),
		chatID,
	)
	return commondb.HandleExecError(err, "upsert subscription", start)
}

func (r *PgRepository) FindByUser(ctx context.Context, userID userdomain.ID) (domain.Subscription, error) {
	start := time.Now()

	var sub domain.Subscription
	err := r.pool.QueryRowContext(
		ctx,
		`SELECT id, user_id, chat_id, created_at FROM telegram_subscriptions WHERE user_id = $1`,
		int64(userID),
	).Scan(&sub.ID, &sub.UserID, &sub.ChatID, &sub.CreatedAt)
	if err := commondb.HandleQueryError(err, commonerrors.ErrSubscriptionNotFound, "find subscription", start); err != nil {
		return domain.Subscription{}, err
	}

	return sub, nil
}
