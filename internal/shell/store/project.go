package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/artpar/portfolio/internal/core/domain"
)

// =============================================================================
// Project Operations
// =============================================================================

// projectRow represents a project row in the database.
type projectRow struct {
	ID           int    `db:"id"`
	Title        string `db:"title"`
	Description  string `db:"description"`
	Thumbnail    string `db:"thumbnail"`
	Technologies string `db:"technologies"`
	GithubLink   string `db:"github_link"`
	LiveURL      string `db:"live_url"`
	Featured     bool   `db:"featured"`
	Category     string `db:"category"`
	Status       string `db:"status"`
	IsSpotlight  bool   `db:"is_spotlight"`
	Slug         string `db:"slug"`
	Content      string `db:"content"`
	CreatedAt    string `db:"created_at"`
	UpdatedAt    string `db:"updated_at"`
}

func projectArgs(op string, p *domain.Project) (map[string]any, error) {
	technologies, err := encodeList(p.Technologies)
	if err != nil {
		return nil, NewStoreError(op, "project", idString(p.ID), "failed to serialize technologies", ErrInvalidData)
	}
	return map[string]any{
		"id":           p.ID,
		"title":        p.Title,
		"description":  p.Description,
		"thumbnail":    p.Thumbnail,
		"technologies": technologies,
		"github_link":  p.GithubLink,
		"live_url":     p.LiveURL,
		"featured":     p.Featured,
		"category":     string(p.Category),
		"status":       string(p.Status),
		"slug":         p.Slug,
		"content":      p.Content,
		"created_at":   formatTime(p.CreatedAt),
		"updated_at":   formatTime(p.UpdatedAt),
	}, nil
}

func projectWriteError(op string, p *domain.Project, err error) error {
	if msg, ok := uniqueViolation(err); ok {
		if strings.Contains(msg, "projects.slug") {
			return NewStoreError(op, "project", idString(p.ID), "project with this slug already exists", ErrDuplicateSlug)
		}
		return NewStoreError(op, "project", idString(p.ID), msg, ErrConstraint)
	}
	return NewStoreError(op, "project", idString(p.ID), err.Error(), err)
}

// CreateProject inserts p and sets its ID. The row is never a spotlight on
// insert; p.IsSpotlight is reset to false.
func (q queries) CreateProject(ctx context.Context, p *domain.Project) error {
	args, err := projectArgs("CreateProject", p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (
			title, description, thumbnail, technologies, github_link, live_url,
			featured, category, status, is_spotlight, slug, content,
			created_at, updated_at
		) VALUES (
			:title, :description, :thumbnail, :technologies, :github_link, :live_url,
			:featured, :category, :status, 0, :slug, :content,
			:created_at, :updated_at
		)`

	result, err := q.exec.NamedExecContext(ctx, query, args)
	if err != nil {
		return projectWriteError("CreateProject", p, err)
	}

	id, err := lastInsertID(result)
	if err != nil {
		return NewStoreError("CreateProject", "project", "", err.Error(), err)
	}
	p.ID = id
	p.IsSpotlight = false
	return nil
}

func (q queries) GetProject(ctx context.Context, id int) (*domain.Project, error) {
	var row projectRow
	err := q.exec.GetContext(ctx, &row, `SELECT * FROM projects WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetProject", "project", idString(id), "project not found", ErrNotFound)
		}
		return nil, NewStoreError("GetProject", "project", idString(id), err.Error(), err)
	}
	return rowToProject(&row)
}

func (q queries) GetProjectBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	var row projectRow
	err := q.exec.GetContext(ctx, &row, `SELECT * FROM projects WHERE slug = ?`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetProjectBySlug", "project", slug, "project not found", ErrNotFound)
		}
		return nil, NewStoreError("GetProjectBySlug", "project", slug, err.Error(), err)
	}
	return rowToProject(&row)
}

// UpdateProject writes every editable field of p except the spotlight flag.
func (q queries) UpdateProject(ctx context.Context, p *domain.Project) error {
	args, err := projectArgs("UpdateProject", p)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects SET
			title = :title,
			description = :description,
			thumbnail = :thumbnail,
			technologies = :technologies,
			github_link = :github_link,
			live_url = :live_url,
			featured = :featured,
			category = :category,
			status = :status,
			slug = :slug,
			content = :content,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := q.exec.NamedExecContext(ctx, query, args)
	if err != nil {
		return projectWriteError("UpdateProject", p, err)
	}
	return checkAffected(result, "UpdateProject", "project", idString(p.ID))
}

func (q queries) DeleteProject(ctx context.Context, id int) error {
	result, err := q.exec.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteProject", "project", idString(id), err.Error(), err)
	}
	return checkAffected(result, "DeleteProject", "project", idString(id))
}

// ListProjects returns projects newest first.
func (q queries) ListProjects(ctx context.Context, opts ListOptions) ([]domain.Project, error) {
	opts = opts.Normalize()
	query := `SELECT * FROM projects ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	var rows []projectRow
	if err := q.exec.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset); err != nil {
		return nil, NewStoreError("ListProjects", "project", "", err.Error(), err)
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		p, err := rowToProject(&row)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, nil
}

// =============================================================================
// Spotlight Operations
// =============================================================================

// GetSpotlightProject returns the current spotlight holder or ErrNotFound.
func (q queries) GetSpotlightProject(ctx context.Context) (*domain.Project, error) {
	var row projectRow
	err := q.exec.GetContext(ctx, &row, `SELECT * FROM projects WHERE is_spotlight = 1 LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetSpotlightProject", "project", "", "no spotlight project", ErrNotFound)
		}
		return nil, NewStoreError("GetSpotlightProject", "project", "", err.Error(), err)
	}
	return rowToProject(&row)
}

// ClaimSpotlight makes id the only spotlight project. The previous holder is
// cleared before the target is set so the single-spotlight index is never
// violated mid-statement. Must run inside a transaction to be atomic;
// SQLiteStore.ClaimSpotlight opens one.
func (q queries) ClaimSpotlight(ctx context.Context, id int) error {
	var exists int
	err := q.exec.GetContext(ctx, &exists, `SELECT COUNT(1) FROM projects WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("ClaimSpotlight", "project", idString(id), err.Error(), err)
	}
	if exists == 0 {
		return NewStoreError("ClaimSpotlight", "project", idString(id), "project not found", ErrNotFound)
	}

	if _, err := q.exec.ExecContext(ctx,
		`UPDATE projects SET is_spotlight = 0 WHERE is_spotlight = 1 AND id <> ?`, id); err != nil {
		return NewStoreError("ClaimSpotlight", "project", idString(id), err.Error(), err)
	}

	if _, err := q.exec.ExecContext(ctx,
		`UPDATE projects SET is_spotlight = 1 WHERE id = ?`, id); err != nil {
		if msg, ok := uniqueViolation(err); ok {
			return NewStoreError("ClaimSpotlight", "project", idString(id), msg, ErrConstraint)
		}
		return NewStoreError("ClaimSpotlight", "project", idString(id), err.Error(), err)
	}
	return nil
}

// ReleaseSpotlight clears the spotlight flag of id.
func (q queries) ReleaseSpotlight(ctx context.Context, id int) error {
	result, err := q.exec.ExecContext(ctx, `UPDATE projects SET is_spotlight = 0 WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("ReleaseSpotlight", "project", idString(id), err.Error(), err)
	}
	return checkAffected(result, "ReleaseSpotlight", "project", idString(id))
}

func rowToProject(row *projectRow) (*domain.Project, error) {
	technologies, err := decodeList(row.Technologies)
	if err != nil {
		return nil, NewStoreError("rowToProject", "project", idString(row.ID), "failed to deserialize technologies", ErrInvalidData)
	}
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return nil, NewStoreError("rowToProject", "project", idString(row.ID), "invalid created_at", ErrInvalidData)
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return nil, NewStoreError("rowToProject", "project", idString(row.ID), "invalid updated_at", ErrInvalidData)
	}

	return &domain.Project{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		Thumbnail:    row.Thumbnail,
		Technologies: technologies,
		GithubLink:   row.GithubLink,
		LiveURL:      row.LiveURL,
		Featured:     row.Featured,
		Category:     domain.Category(row.Category),
		Status:       domain.ProjectStatus(row.Status),
		IsSpotlight:  row.IsSpotlight,
		Slug:         row.Slug,
		Content:      row.Content,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}
