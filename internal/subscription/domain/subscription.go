package domain

import (
	"time"

	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

// Subscription routes a user's item notifications to one chat; at most one per user.
type Subscription struct {
	ID        int64
	UserID    userdomain.ID
	ChatID    string
	CreatedAt time.Time
}
