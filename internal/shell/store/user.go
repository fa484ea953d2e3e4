package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/artpar/portfolio/internal/core/domain"
)

// =============================================================================
// User Operations
// =============================================================================

// userRow represents a user row in the database.
type userRow struct {
	ID           int    `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
	Role         string `db:"role"`
	CreatedAt    string `db:"created_at"`
	UpdatedAt    string `db:"updated_at"`
}

func userArgs(u *domain.User) map[string]any {
	return map[string]any{
		"id":            u.ID,
		"email":         domain.NormalizeEmail(u.Email),
		"password_hash": u.PasswordHash,
		"name":          u.Name,
		"role":          u.Role,
		"created_at":    formatTime(u.CreatedAt),
		"updated_at":    formatTime(u.UpdatedAt),
	}
}

func (q queries) CreateUser(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, password_hash, name, role, created_at, updated_at)
		VALUES (:email, :password_hash, :name, :role, :created_at, :updated_at)`

	result, err := q.exec.NamedExecContext(ctx, query, userArgs(u))
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return NewStoreError("CreateUser", "user", u.Email, "user with this email already exists", ErrDuplicateEmail)
		}
		return NewStoreError("CreateUser", "user", u.Email, err.Error(), err)
	}

	id, err := lastInsertID(result)
	if err != nil {
		return NewStoreError("CreateUser", "user", u.Email, err.Error(), err)
	}
	u.ID = id
	u.Email = domain.NormalizeEmail(u.Email)
	return nil
}

// GetUserByEmail looks a user up by normalized email.
func (q queries) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	var row userRow
	err := q.exec.GetContext(ctx, &row, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetUserByEmail", "user", email, "user not found", ErrNotFound)
		}
		return nil, NewStoreError("GetUserByEmail", "user", email, err.Error(), err)
	}
	return rowToUser(&row)
}

func (q queries) UpdateUser(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users SET
			email = :email,
			password_hash = :password_hash,
			name = :name,
			role = :role,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := q.exec.NamedExecContext(ctx, query, userArgs(u))
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return NewStoreError("UpdateUser", "user", idString(u.ID), "user with this email already exists", ErrDuplicateEmail)
		}
		return NewStoreError("UpdateUser", "user", idString(u.ID), err.Error(), err)
	}
	return checkAffected(result, "UpdateUser", "user", idString(u.ID))
}

func rowToUser(row *userRow) (*domain.User, error) {
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return nil, NewStoreError("rowToUser", "user", idString(row.ID), "invalid created_at", ErrInvalidData)
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return nil, NewStoreError("rowToUser", "user", idString(row.ID), "invalid updated_at", ErrInvalidData)
	}
	return &domain.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Name:         row.Name,
		Role:         row.Role,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

// =============================================================================
// Session Operations
// =============================================================================

// sessionRow is a session joined with its user.
type sessionRow struct {
	Token     string `db:"token"`
	UserID    int    `db:"user_id"`
	Email     string `db:"email"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
	ExpiresAt string `db:"expires_at"`
}

func (q queries) CreateSession(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES (:token, :user_id, :created_at, :expires_at)`

	_, err := q.exec.NamedExecContext(ctx, query, map[string]any{
		"token":      s.Token,
		"user_id":    s.UserID,
		"created_at": formatTime(s.CreatedAt),
		"expires_at": formatTime(s.ExpiresAt),
	})
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return NewStoreError("CreateSession", "session", "", "session token collision", ErrConstraint)
		}
		if msg := err.Error(); containsForeignKeyFailure(msg) {
			return NewStoreError("CreateSession", "session", "", "user not found", ErrConstraint)
		}
		return NewStoreError("CreateSession", "session", "", err.Error(), err)
	}
	return nil
}

// GetSession returns the session for token with the owning user's details.
// Expiry is not checked here.
func (q queries) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	query := `
		SELECT s.token, s.user_id, u.email, u.name, s.created_at, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = ?`

	var row sessionRow
	err := q.exec.GetContext(ctx, &row, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetSession", "session", "", "session not found", ErrNotFound)
		}
		return nil, NewStoreError("GetSession", "session", "", err.Error(), err)
	}

	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return nil, NewStoreError("GetSession", "session", "", "invalid created_at", ErrInvalidData)
	}
	expiresAt, err := parseTime(row.ExpiresAt)
	if err != nil {
		return nil, NewStoreError("GetSession", "session", "", "invalid expires_at", ErrInvalidData)
	}

	return &domain.Session{
		Token:     row.Token,
		UserID:    row.UserID,
		Email:     row.Email,
		Name:      row.Name,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

func (q queries) DeleteSession(ctx context.Context, token string) error {
	result, err := q.exec.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return NewStoreError("DeleteSession", "session", "", err.Error(), err)
	}
	return checkAffected(result, "DeleteSession", "session", "")
}

// DeleteExpiredSessions removes sessions that expired at or before now and
// returns how many were removed.
func (q queries) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	result, err := q.exec.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, formatTime(now))
	if err != nil {
		return 0, NewStoreError("DeleteExpiredSessions", "session", "", err.Error(), err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}
