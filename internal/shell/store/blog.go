package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/artpar/portfolio/internal/core/domain"
)

// =============================================================================
// Blog Operations
// =============================================================================

// blogRow represents a blog row in the database.
type blogRow struct {
	ID          int     `db:"id"`
	Title       string  `db:"title"`
	Slug        string  `db:"slug"`
	Excerpt     string  `db:"excerpt"`
	Content     string  `db:"content"`
	Thumbnail   string  `db:"thumbnail"`
	Tags        string  `db:"tags"`
	Published   bool    `db:"published"`
	Featured    bool    `db:"featured"`
	ReadTime    int     `db:"read_time"`
	Views       int     `db:"views"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
	PublishedAt *string `db:"published_at"`
}

func blogArgs(op string, b *domain.Blog) (map[string]any, error) {
	tags, err := encodeList(b.Tags)
	if err != nil {
		return nil, NewStoreError(op, "blog", idString(b.ID), "failed to serialize tags", ErrInvalidData)
	}
	return map[string]any{
		"id":           b.ID,
		"title":        b.Title,
		"slug":         b.Slug,
		"excerpt":      b.Excerpt,
		"content":      b.Content,
		"thumbnail":    b.Thumbnail,
		"tags":         tags,
		"published":    b.Published,
		"featured":     b.Featured,
		"read_time":    b.ReadTime,
		"created_at":   formatTime(b.CreatedAt),
		"updated_at":   formatTime(b.UpdatedAt),
		"published_at": formatOptionalTime(b.PublishedAt),
	}, nil
}

func blogWriteError(op string, b *domain.Blog, err error) error {
	if msg, ok := uniqueViolation(err); ok {
		if strings.Contains(msg, "blogs.slug") {
			return NewStoreError(op, "blog", idString(b.ID), "blog with this slug already exists", ErrDuplicateSlug)
		}
		return NewStoreError(op, "blog", idString(b.ID), msg, ErrConstraint)
	}
	return NewStoreError(op, "blog", idString(b.ID), err.Error(), err)
}

// CreateBlog inserts b with a zero view count and sets its ID.
func (q queries) CreateBlog(ctx context.Context, b *domain.Blog) error {
	args, err := blogArgs("CreateBlog", b)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO blogs (
			title, slug, excerpt, content, thumbnail, tags, published, featured,
			read_time, views, created_at, updated_at, published_at
		) VALUES (
			:title, :slug, :excerpt, :content, :thumbnail, :tags, :published, :featured,
			:read_time, 0, :created_at, :updated_at, :published_at
		)`

	result, err := q.exec.NamedExecContext(ctx, query, args)
	if err != nil {
		return blogWriteError("CreateBlog", b, err)
	}

	id, err := lastInsertID(result)
	if err != nil {
		return NewStoreError("CreateBlog", "blog", "", err.Error(), err)
	}
	b.ID = id
	b.Views = 0
	return nil
}

func (q queries) GetBlog(ctx context.Context, id int) (*domain.Blog, error) {
	var row blogRow
	err := q.exec.GetContext(ctx, &row, `SELECT * FROM blogs WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetBlog", "blog", idString(id), "blog not found", ErrNotFound)
		}
		return nil, NewStoreError("GetBlog", "blog", idString(id), err.Error(), err)
	}
	return rowToBlog(&row)
}

func (q queries) GetBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	var row blogRow
	err := q.exec.GetContext(ctx, &row, `SELECT * FROM blogs WHERE slug = ?`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetBlogBySlug", "blog", slug, "blog not found", ErrNotFound)
		}
		return nil, NewStoreError("GetBlogBySlug", "blog", slug, err.Error(), err)
	}
	return rowToBlog(&row)
}

// UpdateBlog writes the editable and derived fields of b. The view counter is
// only changed by IncrementBlogViews.
func (q queries) UpdateBlog(ctx context.Context, b *domain.Blog) error {
	args, err := blogArgs("UpdateBlog", b)
	if err != nil {
		return err
	}

	query := `
		UPDATE blogs SET
			title = :title,
			slug = :slug,
			excerpt = :excerpt,
			content = :content,
			thumbnail = :thumbnail,
			tags = :tags,
			published = :published,
			featured = :featured,
			read_time = :read_time,
			updated_at = :updated_at,
			published_at = :published_at
		WHERE id = :id`

	result, err := q.exec.NamedExecContext(ctx, query, args)
	if err != nil {
		return blogWriteError("UpdateBlog", b, err)
	}
	return checkAffected(result, "UpdateBlog", "blog", idString(b.ID))
}

func (q queries) DeleteBlog(ctx context.Context, id int) error {
	result, err := q.exec.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteBlog", "blog", idString(id), err.Error(), err)
	}
	return checkAffected(result, "DeleteBlog", "blog", idString(id))
}

// ListBlogs returns blog posts newest first.
func (q queries) ListBlogs(ctx context.Context, opts ListOptions) ([]domain.Blog, error) {
	opts = opts.Normalize()
	query := `SELECT * FROM blogs ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	var rows []blogRow
	if err := q.exec.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset); err != nil {
		return nil, NewStoreError("ListBlogs", "blog", "", err.Error(), err)
	}

	blogs := make([]domain.Blog, 0, len(rows))
	for _, row := range rows {
		b, err := rowToBlog(&row)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *b)
	}
	return blogs, nil
}

// IncrementBlogViews adds one view and returns the new count.
func (q queries) IncrementBlogViews(ctx context.Context, id int) (int, error) {
	result, err := q.exec.ExecContext(ctx, `UPDATE blogs SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return 0, NewStoreError("IncrementBlogViews", "blog", idString(id), err.Error(), err)
	}
	if err := checkAffected(result, "IncrementBlogViews", "blog", idString(id)); err != nil {
		return 0, err
	}

	var views int
	if err := q.exec.GetContext(ctx, &views, `SELECT views FROM blogs WHERE id = ?`, id); err != nil {
		return 0, NewStoreError("IncrementBlogViews", "blog", idString(id), err.Error(), err)
	}
	return views, nil
}

func rowToBlog(row *blogRow) (*domain.Blog, error) {
	tags, err := decodeList(row.Tags)
	if err != nil {
		return nil, NewStoreError("rowToBlog", "blog", idString(row.ID), "failed to deserialize tags", ErrInvalidData)
	}
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return nil, NewStoreError("rowToBlog", "blog", idString(row.ID), "invalid created_at", ErrInvalidData)
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return nil, NewStoreError("rowToBlog", "blog", idString(row.ID), "invalid updated_at", ErrInvalidData)
	}
	publishedAt, err := parseOptionalTime(row.PublishedAt)
	if err != nil {
		return nil, NewStoreError("rowToBlog", "blog", idString(row.ID), "invalid published_at", ErrInvalidData)
	}

	return &domain.Blog{
		ID:          row.ID,
		Title:       row.Title,
		Slug:        row.Slug,
		Excerpt:     row.Excerpt,
		Content:     row.Content,
		Thumbnail:   row.Thumbnail,
		Tags:        tags,
		Published:   row.Published,
		Featured:    row.Featured,
		ReadTime:    row.ReadTime,
		Views:       row.Views,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		PublishedAt: publishedAt,
	}, nil
}
