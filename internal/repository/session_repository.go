package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
)

type sessionRepository struct {
	dbtx DBTX
}

func NewSession(pool *pgxpool.Pool) port.SessionRepository {
	return &sessionRepository{dbtx: pool}
}

func (r *sessionRepository) CreateSession(ctx context.Context, s domain.Session) error {
	if s.ID == uuid.Nil {
		return errors.New("sessionID is empty")
	}

	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO admin_sessions (id, admin_id, email, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.AdminID, s.Email, s.IssuedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("q.CreateSession: %w", err)
	}

	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, sessionID uuid.UUID) (domain.Session, error) {
	var s domain.Session

	err := r.dbtx.QueryRow(ctx, `
		SELECT id, admin_id, email, issued_at, expires_at, revoked_at
		FROM admin_sessions
		WHERE id = $1`, sessionID).
		Scan(&s.ID, &s.AdminID, &s.Email, &s.IssuedAt, &s.ExpiresAt, &s.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s, fmt.Errorf("q.GetSession: %w", domain.ErrSessionNotFound)
		}
		return s, fmt.Errorf("q.GetSession: %w", err)
	}

	return s, nil
}

// RevokeSession is idempotent: revoking an already revoked session keeps the first timestamp.
func (r *sessionRepository) RevokeSession(ctx context.Context, sessionID uuid.UUID, at time.Time) error {
	cmdTag, err := r.dbtx.Exec(ctx, `
		UPDATE admin_sessions
		SET revoked_at = COALESCE(revoked_at, $2)
		WHERE id = $1`, sessionID, at)
	if err != nil {
		return fmt.Errorf("q.RevokeSession: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.RevokeSession: %w", domain.ErrSessionNotFound)
	}

	return nil
}
