package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
)

type adminRepository struct {
	dbtx DBTX
}

func NewAdmin(pool *pgxpool.Pool) port.AdminRepository {
	return &adminRepository{dbtx: pool}
}

// GetAdminByEmail matches the email case-insensitively.
func (r *adminRepository) GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	var a domain.Admin

	err := r.dbtx.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admins
		WHERE email = $1`, normalizeEmail(email)).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return a, fmt.Errorf("q.GetAdminByEmail: %w", domain.ErrAdminNotFound)
		}
		return a, fmt.Errorf("q.GetAdminByEmail: %w", err)
	}

	return a, nil
}

func (r *adminRepository) InsertAdmin(ctx context.Context, email string, passwordHash []byte) (domain.Admin, error) {
	if len(passwordHash) == 0 {
		return domain.Admin{}, errors.New("password hash is empty")
	}

	a := domain.Admin{
		ID:           uuid.New(),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
	}

	if a.Email == "" {
		return domain.Admin{}, errors.New("email is empty")
	}

	err := r.dbtx.QueryRow(ctx, `
		INSERT INTO admins (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at`, a.ID, a.Email, a.PasswordHash).
		Scan(&a.CreatedAt)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("q.InsertAdmin: %w", err)
	}

	return a, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
