package domain

import (
	"strings"
	"time"

	"github.com/artpar/portfolio/internal/core/content"
)

// =============================================================================
// Blog
// =============================================================================

// Blog is a blog post. ReadTime is derived from Content on every write and is
// stored rather than computed at read time. PublishedAt is stamped on the first
// publish and kept from then on, including across unpublish/republish.
type Blog struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	Featured    bool       `json:"featured"`
	ReadTime    int        `json:"readTime"`
	Views       int        `json:"views"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// BlogInput is the admin form for a blog post. Content is HTML.
type BlogInput struct {
	Title     string
	Slug      string
	Excerpt   string
	Content   string
	Thumbnail string
	Tags      []string
	Published bool
	Featured  bool
}

// NewBlog builds a blog post from form input.
func NewBlog(in BlogInput, now time.Time) (*Blog, error) {
	b := &Blog{CreatedAt: now.UTC()}
	if err := b.Apply(in, now); err != nil {
		return nil, err
	}
	return b, nil
}

// Apply replaces the editable fields of b with in and refreshes the derived
// fields. Views are never touched here.
func (b *Blog) Apply(in BlogInput, now time.Time) error {
	if err := ValidateBlogInput(in); err != nil {
		return err
	}
	slug, err := ResolveSlug(in.Slug, in.Title)
	if err != nil {
		return err
	}

	b.Title = strings.TrimSpace(in.Title)
	b.Slug = slug
	b.Excerpt = in.Excerpt
	b.Content = in.Content
	b.Thumbnail = in.Thumbnail
	b.Tags = cleanList(in.Tags)
	b.Featured = in.Featured
	b.ReadTime = content.HTMLReadTime(in.Content)
	b.SetPublished(in.Published, now)
	b.UpdatedAt = now.UTC()
	return nil
}

// SetPublished changes the published flag. PublishedAt is set only when it
// has never been set before.
func (b *Blog) SetPublished(published bool, now time.Time) {
	b.Published = published
	if published && b.PublishedAt == nil {
		t := now.UTC()
		b.PublishedAt = &t
	}
}

// ValidateBlogInput validates a blog form.
func ValidateBlogInput(in BlogInput) error {
	if err := ValidateTitle(in.Title); err != nil {
		return err
	}
	if strings.TrimSpace(in.Excerpt) == "" {
		return ErrExcerptRequired
	}
	return nil
}
