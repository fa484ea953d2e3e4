package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/artpar/portfolio/internal/core/domain"
)

// =============================================================================
// Research Operations
// =============================================================================

// researchRow represents a research row in the database.
type researchRow struct {
	ID          int    `db:"id"`
	Title       string `db:"title"`
	Authors     string `db:"authors"`
	Journal     string `db:"journal"`
	Year        string `db:"year"`
	Date        string `db:"date"`
	Abstract    string `db:"abstract"`
	DOI         string `db:"doi"`
	PDFURL      string `db:"pdf_url"`
	ExternalURL string `db:"external_url"`
	Citations   int    `db:"citations"`
	Tags        string `db:"tags"`
	Thumbnail   string `db:"thumbnail"`
	Featured    bool   `db:"featured"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

func researchArgs(op string, r *domain.Research) (map[string]any, error) {
	authors, err := encodeList(r.Authors)
	if err != nil {
		return nil, NewStoreError(op, "research", idString(r.ID), "failed to serialize authors", ErrInvalidData)
	}
	tags, err := encodeList(r.Tags)
	if err != nil {
		return nil, NewStoreError(op, "research", idString(r.ID), "failed to serialize tags", ErrInvalidData)
	}
	return map[string]any{
		"id":           r.ID,
		"title":        r.Title,
		"authors":      authors,
		"journal":      r.Journal,
		"year":         r.Year,
		"date":         r.Date,
		"abstract":     r.Abstract,
		"doi":          r.DOI,
		"pdf_url":      r.PDFURL,
		"external_url": r.ExternalURL,
		"citations":    r.Citations,
		"tags":         tags,
		"thumbnail":    r.Thumbnail,
		"featured":     r.Featured,
		"created_at":   formatTime(r.CreatedAt),
		"updated_at":   formatTime(r.UpdatedAt),
	}, nil
}

func researchWriteError(op string, r *domain.Research, err error) error {
	if msg, ok := uniqueViolation(err); ok {
		return NewStoreError(op, "research", idString(r.ID), msg, ErrConstraint)
	}
	if msg := err.Error(); containsCheckFailure(msg) {
		return NewStoreError(op, "research", idString(r.ID), msg, ErrConstraint)
	}
	return NewStoreError(op, "research", idString(r.ID), err.Error(), err)
}

func (q queries) CreateResearch(ctx context.Context, r *domain.Research) error {
	args, err := researchArgs("CreateResearch", r)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO research (
			title, authors, journal, year, date, abstract, doi, pdf_url,
			external_url, citations, tags, thumbnail, featured,
			created_at, updated_at
		) VALUES (
			:title, :authors, :journal, :year, :date, :abstract, :doi, :pdf_url,
			:external_url, :citations, :tags, :thumbnail, :featured,
			:created_at, :updated_at
		)`

	result, err := q.exec.NamedExecContext(ctx, query, args)
	if err != nil {
		return researchWriteError("CreateResearch", r, err)
	}

	id, err := lastInsertID(result)
	if err != nil {
		return NewStoreError("CreateResearch", "research", "", err.Error(), err)
	}
	r.ID = id
	return nil
}

func (q queries) GetResearch(ctx context.Context, id int) (*domain.Research, error) {
	var row researchRow
	err := q.exec.GetContext(ctx, &row, `SELECT * FROM research WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetResearch", "research", idString(id), "research not found", ErrNotFound)
		}
		return nil, NewStoreError("GetResearch", "research", idString(id), err.Error(), err)
	}
	return rowToResearch(&row)
}

func (q queries) UpdateResearch(ctx context.Context, r *domain.Research) error {
	args, err := researchArgs("UpdateResearch", r)
	if err != nil {
		return err
	}

	query := `
		UPDATE research SET
			title = :title,
			authors = :authors,
			journal = :journal,
			year = :year,
			date = :date,
			abstract = :abstract,
			doi = :doi,
			pdf_url = :pdf_url,
			external_url = :external_url,
			citations = :citations,
			tags = :tags,
			thumbnail = :thumbnail,
			featured = :featured,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := q.exec.NamedExecContext(ctx, query, args)
	if err != nil {
		return researchWriteError("UpdateResearch", r, err)
	}
	return checkAffected(result, "UpdateResearch", "research", idString(r.ID))
}

func (q queries) DeleteResearch(ctx context.Context, id int) error {
	result, err := q.exec.ExecContext(ctx, `DELETE FROM research WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteResearch", "research", idString(id), err.Error(), err)
	}
	return checkAffected(result, "DeleteResearch", "research", idString(id))
}

// ListResearch returns publications in insertion order; date ordering is
// done by the listing package.
func (q queries) ListResearch(ctx context.Context, opts ListOptions) ([]domain.Research, error) {
	opts = opts.Normalize()
	query := `SELECT * FROM research ORDER BY id LIMIT ? OFFSET ?`

	var rows []researchRow
	if err := q.exec.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset); err != nil {
		return nil, NewStoreError("ListResearch", "research", "", err.Error(), err)
	}

	items := make([]domain.Research, 0, len(rows))
	for _, row := range rows {
		r, err := rowToResearch(&row)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	return items, nil
}

func rowToResearch(row *researchRow) (*domain.Research, error) {
	authors, err := decodeList(row.Authors)
	if err != nil {
		return nil, NewStoreError("rowToResearch", "research", idString(row.ID), "failed to deserialize authors", ErrInvalidData)
	}
	tags, err := decodeList(row.Tags)
	if err != nil {
		return nil, NewStoreError("rowToResearch", "research", idString(row.ID), "failed to deserialize tags", ErrInvalidData)
	}
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return nil, NewStoreError("rowToResearch", "research", idString(row.ID), "invalid created_at", ErrInvalidData)
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return nil, NewStoreError("rowToResearch", "research", idString(row.ID), "invalid updated_at", ErrInvalidData)
	}

	return &domain.Research{
		ID:          row.ID,
		Title:       row.Title,
		Authors:     authors,
		Journal:     row.Journal,
		Year:        row.Year,
		Date:        row.Date,
		Abstract:    row.Abstract,
		DOI:         row.DOI,
		PDFURL:      row.PDFURL,
		ExternalURL: row.ExternalURL,
		Citations:   row.Citations,
		Tags:        tags,
		Thumbnail:   row.Thumbnail,
		Featured:    row.Featured,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
