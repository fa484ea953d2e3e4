package api

import (
	"net/http"
	"strings"

	"github.com/artpar/portfolio/internal/core/auth"
	"github.com/artpar/portfolio/internal/core/domain"
	"github.com/google/uuid"
)

// =============================================================================
// Auth Handlers
// =============================================================================

// handleLogin checks credentials and starts a cookie session.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		h.writeError(w, http.StatusBadRequest, domain.ErrEmailRequired.Error(), "validation_error")
		return
	}
	if req.Password == "" {
		h.writeError(w, http.StatusBadRequest, domain.ErrPasswordRequired.Error(), "validation_error")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusUnauthorized, "invalid email or password", "invalid_credentials")
			return
		}
		h.writeFailure(w, err, "user", "get")
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		h.logger.Warn("login failed", "email", user.Email)
		h.writeError(w, http.StatusUnauthorized, "invalid email or password", "invalid_credentials")
		return
	}

	now := h.now()
	session := domain.NewSession(uuid.NewString(), *user, h.sessionTTL, now)
	if err := h.store.CreateSession(r.Context(), &session); err != nil {
		h.writeFailure(w, err, "session", "create")
		return
	}

	if purged, err := h.store.DeleteExpiredSessions(r.Context(), now); err != nil {
		h.logger.Warn("failed to purge expired sessions", "error", err)
	} else if purged > 0 {
		h.logger.Debug("purged expired sessions", "count", purged)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("login succeeded", "user_id", user.ID)
	h.writeJSON(w, http.StatusOK, session)
}

// handleLogout ends the caller's session, if any, and clears the cookie.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := auth.TokenFromRequest(r, h.cookieName); token != "" {
		if err := h.store.DeleteSession(r.Context(), token); err != nil && !isNotFound(err) {
			h.writeFailure(w, err, "session", "delete")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// handleSession returns the caller's session or 401.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	ac := auth.FromContext(r.Context())
	if !ac.Authenticated {
		h.writeError(w, http.StatusUnauthorized, "authentication required", "unauthorized")
		return
	}

	h.writeJSON(w, http.StatusOK, ac.Session)
}
