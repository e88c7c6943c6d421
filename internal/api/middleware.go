package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/service"
)

const (
	cartCookie       = "cart_session"
	cartCookieMaxAge = 30 * 24 * 60 * 60

	ctxCartKey      = "cart_key"
	ctxAdminSession = "admin_session"
	ctxAdminToken   = "admin_token"
)

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		slog.Log(c.Request.Context(), level, "http request", attrs...)
	}
}

// cartSession resolves the cart key from the cookie, minting a new one when absent or malformed.
func cartSession(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(cartCookie)
		if err != nil || uuid.Validate(key) != nil {
			key = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cartCookie, key, cartCookieMaxAge, "/", "", secure, true)
		}

		c.Set(ctxCartKey, key)
		c.Next()
	}
}

func requireAdmin(auth *service.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			writeError(c, domain.ErrAuth)
			c.Abort()
			return
		}

		session, err := auth.CurrentSession(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}

		c.Set(ctxAdminSession, session)
		c.Set(ctxAdminToken, token)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func cartKey(c *gin.Context) string {
	return c.GetString(ctxCartKey)
}
