package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/nutshop/internal/domain"
)

type AdminRepository interface {
	GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error)
	InsertAdmin(ctx context.Context, email string, passwordHash []byte) (domain.Admin, error)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSession(ctx context.Context, sessionID uuid.UUID) (domain.Session, error)
	RevokeSession(ctx context.Context, sessionID uuid.UUID, at time.Time) error
}
