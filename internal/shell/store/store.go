package store

import (
	"context"
	"time"

	"github.com/artpar/portfolio/internal/core/domain"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for portfolio records.
//
// The spotlight flag is owned by ClaimSpotlight and ReleaseSpotlight:
// CreateProject always inserts a non-spotlight row and UpdateProject leaves
// the flag untouched.
type Store interface {
	// Project operations
	CreateProject(ctx context.Context, project *domain.Project) error
	GetProject(ctx context.Context, id int) (*domain.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*domain.Project, error)
	UpdateProject(ctx context.Context, project *domain.Project) error
	DeleteProject(ctx context.Context, id int) error
	ListProjects(ctx context.Context, opts ListOptions) ([]domain.Project, error)

	// Spotlight operations
	GetSpotlightProject(ctx context.Context) (*domain.Project, error)
	ClaimSpotlight(ctx context.Context, id int) error
	ReleaseSpotlight(ctx context.Context, id int) error

	// Blog operations
	CreateBlog(ctx context.Context, blog *domain.Blog) error
	GetBlog(ctx context.Context, id int) (*domain.Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	UpdateBlog(ctx context.Context, blog *domain.Blog) error
	DeleteBlog(ctx context.Context, id int) error
	ListBlogs(ctx context.Context, opts ListOptions) ([]domain.Blog, error)
	IncrementBlogViews(ctx context.Context, id int) (int, error)

	// Experience operations
	CreateExperience(ctx context.Context, experience *domain.Experience) error
	GetExperience(ctx context.Context, id int) (*domain.Experience, error)
	UpdateExperience(ctx context.Context, experience *domain.Experience) error
	DeleteExperience(ctx context.Context, id int) error
	ListExperiences(ctx context.Context, opts ListOptions) ([]domain.Experience, error)

	// Research operations
	CreateResearch(ctx context.Context, research *domain.Research) error
	GetResearch(ctx context.Context, id int) (*domain.Research, error)
	UpdateResearch(ctx context.Context, research *domain.Research) error
	DeleteResearch(ctx context.Context, id int) error
	ListResearch(ctx context.Context, opts ListOptions) ([]domain.Research, error)

	// User operations
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Session operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, token string) (*domain.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)

	// Transaction support
	WithTx(ctx context.Context, fn func(Store) error) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

// =============================================================================
// Options
// =============================================================================

// ListOptions defines pagination options.
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultListOptions returns default list options.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Limit:  100,
		Offset: 0,
	}
}

// NoLimit as ListOptions.Limit returns every row.
const NoLimit = -1

// AllRows returns list options that select the whole table.
func AllRows() ListOptions {
	return ListOptions{Limit: NoLimit}
}

// Normalize ensures list options have valid values.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit == NoLimit {
		o.Offset = max(o.Offset, 0)
		return o
	}
	if o.Limit <= 0 {
		o.Limit = 100
	}
	if o.Limit > 1000 {
		o.Limit = 1000
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
