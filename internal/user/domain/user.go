package domain

import "time"

type ID int64

// User is immutable once registered.
type User struct {
	ID           ID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
