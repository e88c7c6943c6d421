package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
	"golang.org/x/crypto/bcrypt"
)

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Auth issues HS256 tokens backed by revocable session rows.
type Auth struct {
	admins   port.AdminRepository
	sessions port.SessionRepository
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuth(admins port.AdminRepository, sessions port.SessionRepository, secret string, ttl time.Duration) (*Auth, error) {
	if admins == nil || sessions == nil {
		return nil, errors.New("repositories are nil")
	}
	if len(secret) < 16 {
		return nil, errors.New("session secret must be at least 16 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}

	return &Auth{
		admins:   admins,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

func (a *Auth) SignIn(ctx context.Context, email, password string) (domain.Session, string, error) {
	admin, err := a.admins.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return domain.Session{}, "", domain.ErrAuth
		}
		return domain.Session{}, "", fmt.Errorf("admins.GetAdminByEmail: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(password)); err != nil {
		return domain.Session{}, "", domain.ErrAuth
	}

	now := a.now().UTC().Truncate(time.Second)
	session := domain.Session{
		ID:        uuid.New(),
		AdminID:   admin.ID,
		Email:     admin.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(a.ttl),
	}

	if err := a.sessions.CreateSession(ctx, session); err != nil {
		return domain.Session{}, "", fmt.Errorf("sessions.CreateSession: %w", err)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: session.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID.String(),
			Subject:   session.AdminID.String(),
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}).SignedString(a.secret)
	if err != nil {
		return domain.Session{}, "", fmt.Errorf("token.SignedString: %w", err)
	}

	return session, token, nil
}

// CurrentSession resolves a token to its active session; anything else is domain.ErrAuth.
func (a *Auth) CurrentSession(ctx context.Context, token string) (domain.Session, error) {
	var claims sessionClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Session{}, fmt.Errorf("jwt.ParseWithClaims[%v]: %w", err, domain.ErrAuth)
	}

	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("uuid.Parse[%s]: %w", claims.ID, domain.ErrAuth)
	}

	session, err := a.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, fmt.Errorf("sessions.GetSession: %w", domain.ErrAuth)
		}
		return domain.Session{}, fmt.Errorf("sessions.GetSession: %w", err)
	}

	if !session.Active(a.now()) {
		return domain.Session{}, fmt.Errorf("session %s is not active: %w", session.ID, domain.ErrAuth)
	}

	return session, nil
}

func (a *Auth) SignOut(ctx context.Context, token string) error {
	session, err := a.CurrentSession(ctx, token)
	if err != nil {
		return fmt.Errorf("a.CurrentSession: %w", err)
	}

	if err := a.sessions.RevokeSession(ctx, session.ID, a.now().UTC()); err != nil {
		return fmt.Errorf("sessions.RevokeSession: %w", err)
	}

	return nil
}

// EnsureAdmin creates the admin account when it does not exist yet. An existing account is left untouched.
func (a *Auth) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return errors.New("admin credentials are empty")
	}

	_, err := a.admins.GetAdminByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrAdminNotFound) {
		return fmt.Errorf("admins.GetAdminByEmail: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	if _, err := a.admins.InsertAdmin(ctx, email, hash); err != nil {
		return fmt.Errorf("admins.InsertAdmin: %w", err)
	}

	return nil
}
