package session

import (
	"context"
	"database/sql"
	"time"

	commondb "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/db"
	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
)

type PgStore struct {
	pool *sql.DB
}

func NewPgStore(pool *sql.DB) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) Save(ctx context.Context, tokenHash string, sess Session) error {
	start := time.Now()
	_, err := s.pool.ExecContext(
		ctx,
		`INSERT INTO sessions (token_hash, user_id, username, created_at, expires_at) VALUES ($1, $2, $3, $4, $5)`,
		tokenHash,
		int64(sess.UserID),
		sess.Username,
		sess.CreatedAt,
		sess.ExpiresAt,
	)
	return commondb.HandleExecError(err, "save session", start)
}

func (s *PgStore) Find(ctx context.Context, tokenHash string) (Session, error) {
	start := time.Now()

	var sess Session
	err := s.pool.QueryRowContext(
		ctx,
		`SELECT user_id, username, created_at, expires_at FROM sessions WHERE token_hash = $1`,
		tokenHash,
	).Scan(&sess.UserID, &sess.Username, &sess.CreatedAt, &sess.ExpiresAt)
	if err := commondb.HandleQueryError(err, commonerrors.ErrSessionNotFound, "find session", start); err != nil {
		return Session{}, err
	}

	return sess, nil
}

func (s *PgStore) Delete(ctx context.Context, tokenHash string) error {
	start := time.Now()
	_, err := s.pool.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = $1`, tokenHash)
	return commondb.HandleExecError(err, "delete session", start)
}

func (s *PgStore) DeleteExpired(ctx context.Context) (int64, error) {
	start := time.Now()
	res, err := s.pool.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err := commondb.HandleExecError(err, "delete expired sessions", start); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
