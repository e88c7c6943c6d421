package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newAuth(t *testing.T) (*service.Auth, *memSessions) {
	t.Helper()

	sessions := newMemSessions()

	auth, err := service.NewAuth(newMemAdmins(), sessions, testSecret, time.Hour)
	require.NoError(t, err)

	require.NoError(t, auth.EnsureAdmin(t.Context(), "owner@nutshop.in", "s3cret-pass"))

	return auth, sessions
}

func TestAuthSignIn(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		wantError error
	}{
		{name: "valid credentials: ok", email: "owner@nutshop.in", password: "s3cret-pass"},
		{name: "email case-insensitive: ok", email: "Owner@NutShop.in", password: "s3cret-pass"},
		{name: "wrong password: fail", email: "owner@nutshop.in", password: "guess", wantError: domain.ErrAuth},
		{name: "unknown admin: fail", email: "nobody@nutshop.in", password: "s3cret-pass", wantError: domain.ErrAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, _ := newAuth(t)

			session, token, err := auth.SignIn(t.Context(), tt.email, tt.password)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)

			assert.NotEmpty(t, token)
			assert.Equal(t, "owner@nutshop.in", session.Email)
			assert.Equal(t, time.Hour, session.ExpiresAt.Sub(session.IssuedAt))

			current, err := auth.CurrentSession(t.Context(), token)
			require.NoError(t, err)
			assert.Equal(t, session.ID, current.ID)
		})
	}
}

func TestAuthSignOut(t *testing.T) {
	auth, sessions := newAuth(t)
	ctx := t.Context()

	session, token, err := auth.SignIn(ctx, "owner@nutshop.in", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, auth.SignOut(ctx, token))
	assert.NotNil(t, sessions.sessions[session.ID].RevokedAt)

	_, err = auth.CurrentSession(ctx, token)
	require.ErrorIs(t, err, domain.ErrAuth)

	err = auth.SignOut(ctx, token)
	require.ErrorIs(t, err, domain.ErrAuth)
}

func TestAuthRejectsBadTokens(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := t.Context()

	_, token, err := auth.SignIn(ctx, "owner@nutshop.in", "s3cret-pass")
	require.NoError(t, err)

	other, err := service.NewAuth(newMemAdmins(), newMemSessions(), "another-secret-of-32-bytes-long!", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		auth  *service.Auth
		token string
	}{
		{name: "garbage", auth: auth, token: "not-a-token"},
		{name: "empty", auth: auth, token: ""},
		{name: "signed with another secret", auth: other, token: token},
		{name: "tampered signature", auth: auth, token: tamper(token)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.auth.CurrentSession(ctx, tt.token)
			require.ErrorIs(t, err, domain.ErrAuth)
		})
	}
}

func TestAuthExpiredSession(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := t.Context()

	_, token, err := auth.SignIn(ctx, "owner@nutshop.in", "s3cret-pass")
	require.NoError(t, err)

	auth.SetClock(func() time.Time { return time.Now().Add(2 * time.Hour) })

	_, err = auth.CurrentSession(ctx, token)
	require.ErrorIs(t, err, domain.ErrAuth)
}

func TestAuthEnsureAdminIsIdempotent(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := t.Context()

	require.NoError(t, auth.EnsureAdmin(ctx, "owner@nutshop.in", "a-different-password"))

	// the first password still works
	_, _, err := auth.SignIn(ctx, "owner@nutshop.in", "s3cret-pass")
	require.NoError(t, err)

	require.EqualError(t, auth.EnsureAdmin(ctx, "", "x"), "admin credentials are empty")
}

func TestNewAuthValidation(t *testing.T) {
	_, err := service.NewAuth(newMemAdmins(), newMemSessions(), "short", time.Hour)
	require.EqualError(t, err, "session secret must be at least 16 bytes")

	_, err = service.NewAuth(newMemAdmins(), newMemSessions(), testSecret, 0)
	require.EqualError(t, err, "session ttl must be positive")
}

func tamper(token string) string {
	dot := strings.LastIndex(token, ".")
	sig := []byte(token[dot+1:])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	return token[:dot+1] + string(sig)
}
