package notifier

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	commondb "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/db"
	tododomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/todo/domain"
	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

// Pending is an un-notified item whose owner has a subscription.
type Pending struct {
	ItemID    tododomain.ID
	Text      string
	CreatedAt time.Time
	UserID    userdomain.ID
	Username  string
	ChatID    string
}

type Repository interface {
	ListPending(ctx context.Context) ([]Pending, error)
	MarkNotified(ctx context.Context, itemID tododomain.ID) error
}

type PgRepository struct {
	pool *sql.DB
}

func NewPgRepository(pool *sql.DB) *PgRepository {
	return &PgRepository{pool: pool}
}

const listPendingQuery = `SELECT i.id, i.text, i.created_at, i.user_id, u.username, s.chat_id
FROM items i
JOIN users u ON u.id = i.user_id
JOIN telegram_subscriptions s ON s.user_id = i.user_id
WHERE i.notified = FALSE
ORDER BY i.id`

func (r *PgRepository) ListPending(ctx context.Context) ([]Pending, error) {
	start := time.Now()

	rows, err := r.pool.QueryContext(ctx, listPendingQuery)
	if err := commondb.HandleExecError(err, "list pending", start); err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []Pending
	for rows.Next() {
		var p Pending
		if err := rows.Scan(&p.ItemID, &p.Text, &p.CreatedAt, &p.UserID, &p.Username, &p.ChatID); err != nil {
			return nil, fmt.Errorf("failed to scan pending item: %w", err)
		}
		pending = append(pending, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return pending, nil
}

// MarkNotified is a no-op for an item that was already marked or deleted meanwhile.
func (r *PgRepository) MarkNotified(ctx context.Context, itemID tododomain.ID) error {
	start := time.Now()

	_, err := r.pool.ExecContext(
		ctx,
		`UPDATE items SET notified = TRUE WHERE id = $1 AND notified = FALSE`,
		int64(itemID),
	)
	return commondb.HandleExecError(err, "mark notified", start)
}
