package domain

import (
	"time"

	userdomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/domain"
)

type ID int64

// Item is visible and mutable only to its owner.
type Item struct {
	ID        ID
	Text      string
	UserID    userdomain.ID
	CreatedAt time.Time
	Notified  bool
}
