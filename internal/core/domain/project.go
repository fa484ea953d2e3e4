package domain

import (
	"strings"
	"time"
)

// =============================================================================
// Enums
// =============================================================================

// Category groups projects on the public projects page.
type Category string

const (
	CategoryWeb         Category = "web"
	CategoryMobile      Category = "mobile"
	CategoryAIML        Category = "AI/ML"
	CategoryDataScience Category = "data-science"
	CategoryOther       Category = "other"
)

// IsValid checks if the category is known.
func (c Category) IsValid() bool {
	switch c {
	case CategoryWeb, CategoryMobile, CategoryAIML, CategoryDataScience, CategoryOther:
		return true
	default:
		return false
	}
}

// ProjectStatus is the delivery state of a project.
type ProjectStatus string

const (
	StatusCompleted  ProjectStatus = "completed"
	StatusInProgress ProjectStatus = "in-progress"
	StatusPlanned    ProjectStatus = "planned"
)

// IsValid checks if the status is known.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusPlanned:
		return true
	default:
		return false
	}
}

// =============================================================================
// Project
// =============================================================================

// Project is a portfolio project. At most one project in the collection has
// IsSpotlight set; the spotlight enforcer owns that flag.
type Project struct {
	ID           int           `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Thumbnail    string        `json:"thumbnail"`
	Technologies []string      `json:"technologies"`
	GithubLink   string        `json:"githubLink,omitempty"`
	LiveURL      string        `json:"liveUrl,omitempty"`
	Featured     bool          `json:"featured"`
	Category     Category      `json:"category"`
	Status       ProjectStatus `json:"status"`
	IsSpotlight  bool          `json:"isSpotlight"`
	Slug         string        `json:"slug"`
	Content      string        `json:"content"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// ProjectInput is the admin form for a project.
type ProjectInput struct {
	Title        string
	Description  string
	Thumbnail    string
	Technologies []string
	GithubLink   string
	LiveURL      string
	Featured     bool
	Category     Category
	Status       ProjectStatus
	IsSpotlight  bool
	Slug         string
	Content      string
}

// NewProject builds a project from form input. The slug is derived from the
// title unless one was supplied. IsSpotlight is copied as requested; callers
// must route it through the spotlight enforcer before persisting.
func NewProject(in ProjectInput, now time.Time) (*Project, error) {
	p := &Project{CreatedAt: now.UTC()}
	if err := p.Apply(in, now); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply replaces the editable fields of p with in.
func (p *Project) Apply(in ProjectInput, now time.Time) error {
	if err := ValidateProjectInput(in); err != nil {
		return err
	}
	slug, err := ResolveSlug(in.Slug, in.Title)
	if err != nil {
		return err
	}

	status := in.Status
	if status == "" {
		status = StatusCompleted
	}

	p.Title = strings.TrimSpace(in.Title)
	p.Description = in.Description
	p.Thumbnail = in.Thumbnail
	p.Technologies = cleanList(in.Technologies)
	p.GithubLink = strings.TrimSpace(in.GithubLink)
	p.LiveURL = strings.TrimSpace(in.LiveURL)
	p.Featured = in.Featured
	p.Category = in.Category
	p.Status = status
	p.IsSpotlight = in.IsSpotlight
	p.Slug = slug
	p.Content = in.Content
	p.UpdatedAt = now.UTC()
	return nil
}

// ValidateProjectInput validates a project form.
func ValidateProjectInput(in ProjectInput) error {
	if err := ValidateTitle(in.Title); err != nil {
		return err
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrDescriptionRequired
	}
	if !in.Category.IsValid() {
		return ErrInvalidCategory
	}
	if in.Status != "" && !in.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// ProjectPatch is a partial update from the admin list (toggle buttons).
// Nil fields are left unchanged.
type ProjectPatch struct {
	Featured    *bool
	Status      *ProjectStatus
	IsSpotlight *bool
}

// ApplyPatch applies a partial update.
func (p *Project) ApplyPatch(patch ProjectPatch, now time.Time) error {
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return ErrInvalidStatus
		}
		p.Status = *patch.Status
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.IsSpotlight != nil {
		p.IsSpotlight = *patch.IsSpotlight
	}
	p.UpdatedAt = now.UTC()
	return nil
}
