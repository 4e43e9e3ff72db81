package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	commondb "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/db"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/todo/domain"
	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

// Every statement is scoped by user_id; update and delete report whether a row matched.
type Repository interface {
	Insert(ctx context.Context, userID userdomain.ID, text string) (domain.ID, error)
	ListByUser(ctx context.Context, userID userdomain.ID) ([]domain.Item, error)
	UpdateText(ctx context.Context, userID userdomain.ID, id domain.ID, text string) (bool, error)
	Delete(ctx context.Context, userID userdomain.ID, id domain.ID) (bool, error)
}

type PgRepository struct {
	pool *sql.DB
}

func NewPgRepository(pool *sql.DB) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Insert(ctx context.Context, userID userdomain.ID, text string) (domain.ID, error) {
	start := time.Now()

	var id domain.ID
	err := r.pool.QueryRowContext(
		ctx,
		`INSERT INTO items (text, user_id) VALUES ($1, $2) RETURNING id`,
		text,
		int64(userID),
	).Scan(&id)
	if err := commondb.HandleExecError(err, "insert item", start); err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PgRepository) ListByUser(ctx context.Context, userID userdomain.ID) ([]domain.Item, error) {
	start := time.Now()

	rows, err := r.pool.QueryContext(
		ctx,
		`SELECT id, text, user_id, created_at, notified FROM items WHERE user_id = $1 ORDER BY id`,
		int64(userID),
	)
	if err := commondb.HandleExecError(err, "list items", start); err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Text, &it.UserID, &it.CreatedAt, &it.Notified); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

func (r *PgRepository) UpdateText(ctx context.Context, userID userdomain.ID, id domain.ID, text string) (bool, error) {
	start := time.Now()

	res, err := r.pool.ExecContext(
		ctx,
		`UPDATE items SET text = $1 WHERE id = $2 AND user_id = $3`,
		text,
		int64(id),
		int64(userID),
	)
	if err := commondb.HandleExecError(err, "update item", start); err != nil {
		return false, err
	}

	return affected(res)
}

func (r *PgRepository) Delete(ctx context.Context, userID userdomain.ID, id domain.ID) (bool, error) {
	start := time.Now()

	res, err := r.pool.ExecContext(
		ctx,
		`DELETE FROM items WHERE id = $1 AND user_id = $2`,
		int64(id),
		int64(userID),
	)
	if err := commondb.HandleExecError(err, "delete item", start); err != nil {
		return false, err
	}

	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
