package domain

import (
	"strings"
	"time"
)

// =============================================================================
// User
// =============================================================================

// User is an administrator account. Every user may edit every record.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeEmail lowercases and trims an email for lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// =============================================================================
// Session
// =============================================================================

// Session is an authenticated admin session keyed by an opaque token.
type Session struct {
	Token     string    `json:"-"`
	UserID    int       `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewSession creates a session for u that expires after ttl.
func NewSession(token string, u User, ttl time.Duration, now time.Time) Session {
	now = now.UTC()
	return Session{
		Token:     token,
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
