package domain

import (
	"time"

	"github.com/google/uuid"
)

type Admin struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte

	CreatedAt time.Time
}

// Session is an authenticated admin session.
type Session struct {
	ID        uuid.UUID
	AdminID   uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
