package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/artpar/portfolio/internal/core/domain"
)

// =============================================================================
// Experience Operations
// =============================================================================

// experienceRow represents an experience row in the database.
type experienceRow struct {
	ID          int    `db:"id"`
	Company     string `db:"company"`
	Role        string `db:"role"`
	Description string `db:"description"`
	Logo        string `db:"logo"`
	StartDate   string `db:"start_date"`
	EndDate     string `db:"end_date"`
	Year        string `db:"year"`
	Duration    string `db:"duration"`
	SortOrder   int    `db:"sort_order"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

func experienceArgs(e *domain.Experience) map[string]any {
	return map[string]any{
		"id":          e.ID,
		"company":     e.Company,
		"role":        e.Role,
		"description": e.Description,
		"logo":        e.Logo,
		"start_date":  e.StartDate,
		"end_date":    e.EndDate,
		"year":        e.Year,
		"duration":    e.Duration,
		"sort_order":  e.Order,
		"created_at":  formatTime(e.CreatedAt),
		"updated_at":  formatTime(e.UpdatedAt),
	}
}

func (q queries) CreateExperience(ctx context.Context, e *domain.Experience) error {
	query := `
		INSERT INTO experiences (
			company, role, description, logo, start_date, end_date,
			year, duration, sort_order, created_at, updated_at
		) VALUES (
			:company, :role, :description, :logo, :start_date, :end_date,
			:year, :duration, :sort_order, :created_at, :updated_at
		)`

	result, err := q.exec.NamedExecContext(ctx, query, experienceArgs(e))
	if err != nil {
		return NewStoreError("CreateExperience", "experience", "", err.Error(), err)
	}

	id, err := lastInsertID(result)
	if err != nil {
		return NewStoreError("CreateExperience", "experience", "", err.Error(), err)
	}
	e.ID = id
	return nil
}

func (q queries) GetExperience(ctx context.Context, id int) (*domain.Experience, error) {
	var row experienceRow
	err := q.exec.GetContext(ctx, &row, `SELECT * FROM experiences WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetExperience", "experience", idString(id), "experience not found", ErrNotFound)
		}
		return nil, NewStoreError("GetExperience", "experience", idString(id), err.Error(), err)
	}
	return rowToExperience(&row)
}

func (q queries) UpdateExperience(ctx context.Context, e *domain.Experience) error {
	query := `
		UPDATE experiences SET
			company = :company,
			role = :role,
			description = :description,
			logo = :logo,
			start_date = :start_date,
			end_date = :end_date,
			year = :year,
			duration = :duration,
			sort_order = :sort_order,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := q.exec.NamedExecContext(ctx, query, experienceArgs(e))
	if err != nil {
		return NewStoreError("UpdateExperience", "experience", idString(e.ID), err.Error(), err)
	}
	return checkAffected(result, "UpdateExperience", "experience", idString(e.ID))
}

func (q queries) DeleteExperience(ctx context.Context, id int) error {
	result, err := q.exec.ExecContext(ctx, `DELETE FROM experiences WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteExperience", "experience", idString(id), err.Error(), err)
	}
	return checkAffected(result, "DeleteExperience", "experience", idString(id))
}

// ListExperiences returns entries in insertion order. Date ordering is done
// by the listing package because start dates are free text.
func (q queries) ListExperiences(ctx context.Context, opts ListOptions) ([]domain.Experience, error) {
	opts = opts.Normalize()
	query := `SELECT * FROM experiences ORDER BY id LIMIT ? OFFSET ?`

	var rows []experienceRow
	if err := q.exec.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset); err != nil {
		return nil, NewStoreError("ListExperiences", "experience", "", err.Error(), err)
	}

	experiences := make([]domain.Experience, 0, len(rows))
	for _, row := range rows {
		e, err := rowToExperience(&row)
		if err != nil {
			return nil, err
		}
		experiences = append(experiences, *e)
	}
	return experiences, nil
}

func rowToExperience(row *experienceRow) (*domain.Experience, error) {
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return nil, NewStoreError("rowToExperience", "experience", idString(row.ID), "invalid created_at", ErrInvalidData)
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return nil, NewStoreError("rowToExperience", "experience", idString(row.ID), "invalid updated_at", ErrInvalidData)
	}

	return &domain.Experience{
		ID:          row.ID,
		Company:     row.Company,
		Role:        row.Role,
		Description: row.Description,
		Logo:        row.Logo,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		Year:        row.Year,
		Duration:    row.Duration,
		Order:       row.SortOrder,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
