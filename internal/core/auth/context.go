// Package auth provides the admin session context and password hashing.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/artpar/portfolio/internal/core/domain"
)

// =============================================================================
// Context Key
// =============================================================================

type contextKey string

const authContextKey contextKey = "auth"

// DefaultCookieName is the session cookie used when none is configured.
const DefaultCookieName = "portfolio_session"

// =============================================================================
// Types
// =============================================================================

// Context represents the authentication state of a request.
// It is resolved from the session cookie by middleware and stored in the request context.
type Context struct {
	// Session is the resolved admin session. Zero when unauthenticated.
	Session domain.Session

	// Authenticated indicates whether the request carries a live session.
	Authenticated bool
}

// UserID returns the session's user id, or 0 when unauthenticated.
func (c Context) UserID() int {
	if !c.Authenticated {
		return 0
	}
	return c.Session.UserID
}

// FromSession builds an auth context from a stored session.
// Expired sessions produce an unauthenticated context.
func FromSession(s domain.Session, now time.Time) Context {
	if s.Token == "" || s.Expired(now) {
		return Context{}
	}
	return Context{Session: s, Authenticated: true}
}

// =============================================================================
// Token Extraction
// =============================================================================

// TokenFromRequest returns the session token carried by r.
//
// Sources (checked in order):
//  1. the session cookie named cookieName
//  2. Authorization: Bearer {token}
func TokenFromRequest(r *http.Request, cookieName string) string {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return parseBearer(r.Header.Get("Authorization"))
}

func parseBearer(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// =============================================================================
// Context Storage
// =============================================================================

// WithContext returns a new context with the auth context attached.
func WithContext(ctx context.Context, authCtx Context) context.Context {
	return context.WithValue(ctx, authContextKey, authCtx)
}

// FromContext extracts the auth context from a context.
// Returns an unauthenticated context if none is found.
func FromContext(ctx context.Context) Context {
	if authCtx, ok := ctx.Value(authContextKey).(Context); ok {
		return authCtx
	}
	return Context{}
}
