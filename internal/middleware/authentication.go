package middleware

import (
	"net/http"
	"strings"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/config"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/security"
)

// AdminAuthMiddleware gates the management endpoints behind a bearer token.
// The token itself never touches disk; configuration carries only its
// bcrypt hash, minted with the admin-token command.
type AdminAuthMiddleware struct {
	logger    *logger.Logger
	tokenHash string
}

// NewAdminAuthMiddleware creates a new admin authentication middleware
func NewAdminAuthMiddleware(logger *logger.Logger, cfg *config.Config) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{
		logger:    logger,
		tokenHash: cfg.Security.AdminTokenHash,
	}
}

// RequireAdminToken rejects requests that do not carry the admin bearer
// token. An empty configured hash disables the gate for local development.
func (m *AdminAuthMiddleware) RequireAdminToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.tokenHash == "" {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			http.Error(w, "Bearer token required", http.StatusUnauthorized)
			return
		}

		token := authHeader[len(bearerPrefix):]
		if !security.VerifyAdminToken(m.tokenHash, token) {
			m.logger.WithField("path", r.URL.Path).Warn("Admin token rejected")
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
