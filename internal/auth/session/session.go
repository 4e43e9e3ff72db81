// Package session issues, resolves and gates server-side login sessions.
//
// The client holds a signed cookie whose jti is an opaque random token; the
// store only ever sees the sha256 of that token.
package session

import (
	"context"
	"time"

	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

type Session struct {
	Token     string
	UserID    userdomain.ID
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type Store interface {
	Save(ctx context.Context, tokenHash string, s Session) error
	// Find returns commonerrors.ErrSessionNotFound when no row matches.
	Find(ctx context.Context, tokenHash string) (Session, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type contextKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
