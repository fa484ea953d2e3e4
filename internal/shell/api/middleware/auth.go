// Package middleware provides HTTP middleware for the portfolio API.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/artpar/portfolio/internal/core/auth"
	"github.com/artpar/portfolio/internal/core/domain"
	"github.com/artpar/portfolio/internal/shell/store"
)

// =============================================================================
// Session Resolver Interface
// =============================================================================

// SessionResolver looks up a session by its opaque token.
// The store implements this interface.
type SessionResolver interface {
	GetSession(ctx context.Context, token string) (*domain.Session, error)
}

// =============================================================================
// Auth Configuration
// =============================================================================

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	// CookieName is the session cookie. Defaults to auth.DefaultCookieName.
	CookieName string

	// Resolver resolves session tokens. If nil, every request is anonymous.
	Resolver SessionResolver

	// Logger for auth middleware logging.
	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// =============================================================================
// Auth Middleware
// =============================================================================

// AuthMiddleware resolves the session cookie into an auth context and stores
// it in the request context. It never rejects a request; RequireAuth does.
type AuthMiddleware struct {
	config AuthConfig
}

// NewAuthMiddleware creates a new auth middleware with the given config.
func NewAuthMiddleware(cfg AuthConfig) *AuthMiddleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = auth.DefaultCookieName
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &AuthMiddleware{config: cfg}
}

// Handler returns the middleware handler function.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := auth.Context{}

		token := auth.TokenFromRequest(r, m.config.CookieName)
		if token != "" && m.config.Resolver != nil {
			session, err := m.config.Resolver.GetSession(r.Context(), token)
			switch {
			case err == nil:
				ctx = auth.FromSession(*session, m.config.Now())
			case errors.Is(err, store.ErrNotFound):
				// Unknown or revoked token: anonymous.
			default:
				m.config.Logger.Error("failed to resolve session",
					"path", r.URL.Path,
					"error", err,
				)
				writeJSONError(w, http.StatusInternalServerError, "failed to resolve session", "internal_error")
				return
			}
		}

		r = r.WithContext(auth.WithContext(r.Context(), ctx))
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Require Auth Middleware
// =============================================================================

// RequireAuth is a middleware that requires an admin session.
// Must be used AFTER AuthMiddleware.
func RequireAuth(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auth.FromContext(r.Context())

			if !auth.CanEdit(ctx) {
				logger.Warn("unauthenticated request to protected endpoint",
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"method", r.Method,
				)
				writeJSONError(w, http.StatusUnauthorized, "authentication required", "unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// =============================================================================
// JSON Error Response
// =============================================================================

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSONError writes the API's standard error body.
func writeJSONError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message, Code: code})
}
