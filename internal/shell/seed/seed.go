// Package seed loads an admin account and sample records from a YAML file.
// Records go through the same domain constructors and spotlight enforcer as
// the HTTP API, so derived fields match what the admin UI would produce.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/artpar/portfolio/internal/core/auth"
	"github.com/artpar/portfolio/internal/core/domain"
	"github.com/artpar/portfolio/internal/shell/spotlight"
	"github.com/artpar/portfolio/internal/shell/store"
)

// =============================================================================
// File Format
// =============================================================================

// File is the top-level seed document.
type File struct {
	Admin       *Admin       `yaml:"admin"`
	Projects    []Project    `yaml:"projects"`
	Blogs       []Blog       `yaml:"blogs"`
	Experiences []Experience `yaml:"experiences"`
	Research    []Research   `yaml:"research"`
}

// Admin is the administrator account to create or refresh.
type Admin struct {
	Email        string `yaml:"email"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"passwordHash"`
	Name         string `yaml:"name"`
}

// Project is a seeded project. Projects are matched on slug.
type Project struct {
	Title        string   `yaml:"title"`
	Slug         string   `yaml:"slug"`
	Description  string   `yaml:"description"`
	Thumbnail    string   `yaml:"thumbnail"`
	Technologies []string `yaml:"technologies"`
	GithubLink   string   `yaml:"githubLink"`
	LiveURL      string   `yaml:"liveUrl"`
	Featured     bool     `yaml:"featured"`
	Category     string   `yaml:"category"`
	Status       string   `yaml:"status"`
	IsSpotlight  bool     `yaml:"isSpotlight"`
	Content      string   `yaml:"content"`
}

func (p Project) input() domain.ProjectInput {
	return domain.ProjectInput{
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  p.Description,
		Thumbnail:    p.Thumbnail,
		Technologies: p.Technologies,
		GithubLink:   p.GithubLink,
		LiveURL:      p.LiveURL,
		Featured:     p.Featured,
		Category:     domain.Category(p.Category),
		Status:       domain.ProjectStatus(p.Status),
		IsSpotlight:  p.IsSpotlight,
		Content:      p.Content,
	}
}

// Blog is a seeded blog post. Posts are matched on slug.
type Blog struct {
	Title     string   `yaml:"title"`
	Slug      string   `yaml:"slug"`
	Excerpt   string   `yaml:"excerpt"`
	Content   string   `yaml:"content"`
	Thumbnail string   `yaml:"thumbnail"`
	Tags      []string `yaml:"tags"`
	Published bool     `yaml:"published"`
	Featured  bool     `yaml:"featured"`
}

func (b Blog) input() domain.BlogInput {
	return domain.BlogInput{
		Title:     b.Title,
		Slug:      b.Slug,
		Excerpt:   b.Excerpt,
		Content:   b.Content,
		Thumbnail: b.Thumbnail,
		Tags:      b.Tags,
		Published: b.Published,
		Featured:  b.Featured,
	}
}

// Experience is a seeded work history entry, matched on company, role and start date.
type Experience struct {
	Company     string `yaml:"company"`
	Role        string `yaml:"role"`
	Description string `yaml:"description"`
	Logo        string `yaml:"logo"`
	StartDate   string `yaml:"startDate"`
	EndDate     string `yaml:"endDate"`
}

func (e Experience) input() domain.ExperienceInput {
	return domain.ExperienceInput{
		Company:     e.Company,
		Role:        e.Role,
		Description: e.Description,
		Logo:        e.Logo,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
	}
}

// Research is a seeded publication, matched on title.
type Research struct {
	Title       string   `yaml:"title"`
	Authors     []string `yaml:"authors"`
	Journal     string   `yaml:"journal"`
	Date        string   `yaml:"date"`
	Abstract    string   `yaml:"abstract"`
	DOI         string   `yaml:"doi"`
	PDFURL      string   `yaml:"pdfUrl"`
	ExternalURL string   `yaml:"externalUrl"`
	Citations   int      `yaml:"citations"`
	Tags        []string `yaml:"tags"`
	Thumbnail   string   `yaml:"thumbnail"`
	Featured    bool     `yaml:"featured"`
}

func (r Research) input() domain.ResearchInput {
	return domain.ResearchInput{
		Title:       r.Title,
		Authors:     r.Authors,
		Journal:     r.Journal,
		Date:        r.Date,
		Abstract:    r.Abstract,
		DOI:         r.DOI,
		PDFURL:      r.PDFURL,
		ExternalURL: r.ExternalURL,
		Citations:   r.Citations,
		Tags:        r.Tags,
		Thumbnail:   r.Thumbnail,
		Featured:    r.Featured,
	}
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// Load reads and parses the seed file at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

// =============================================================================
// Seeder
// =============================================================================

// Report counts what a seed run changed.
type Report struct {
	AdminCreated bool
	AdminUpdated bool
	Created      int
	Updated      int
}

func (r *Report) count(updated bool) {
	if updated {
		r.Updated++
	} else {
		r.Created++
	}
}

// Seeder writes a seed File into a store.
type Seeder struct {
	store    store.Store
	enforcer *spotlight.Enforcer
	logger   *slog.Logger
	now      func() time.Time
}

// NewSeeder creates a seeder. Spotlight flags are applied with the auto policy.
func NewSeeder(s store.Store, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		store:    s,
		enforcer: spotlight.NewEnforcer(s, "", logger),
		logger:   logger,
		now:      time.Now,
	}
}

// Run applies f. Existing records are updated in place, so running the same
// file twice leaves the store unchanged apart from timestamps.
func (s *Seeder) Run(ctx context.Context, f *File) (Report, error) {
	var rep Report

	if f.Admin != nil {
		created, err := s.seedAdmin(ctx, *f.Admin)
		if err != nil {
			return rep, err
		}
		rep.AdminCreated = created
		rep.AdminUpdated = !created
	}

	steps := []func(context.Context, *File, *Report) error{
		s.seedProjects,
		s.seedBlogs,
		s.seedExperiences,
		s.seedResearch,
	}
	for _, step := range steps {
		if err := step(ctx, f, &rep); err != nil {
			return rep, err
		}
	}

	s.logger.Info("seed complete",
		"created", rep.Created,
		"updated", rep.Updated,
		"admin_created", rep.AdminCreated,
	)
	return rep, nil
}

func (s *Seeder) seedAdmin(ctx context.Context, a Admin) (bool, error) {
	if strings.TrimSpace(a.Email) == "" {
		return false, domain.ErrEmailRequired
	}
	hash := a.PasswordHash
	if hash == "" {
		if a.Password == "" {
			return false, domain.ErrPasswordRequired
		}
		var err error
		if hash, err = auth.HashPassword(a.Password); err != nil {
			return false, err
		}
	}
	now := s.now().UTC()

	existing, err := s.store.GetUserByEmail(ctx, a.Email)
	switch {
	case err == nil:
		existing.PasswordHash = hash
		if a.Name != "" {
			existing.Name = a.Name
		}
		existing.UpdatedAt = now
		if err := s.store.UpdateUser(ctx, existing); err != nil {
			return false, fmt.Errorf("update admin: %w", err)
		}
		return false, nil
	case errors.Is(err, store.ErrNotFound):
		u := &domain.User{
			Email:        a.Email,
			PasswordHash: hash,
			Name:         a.Name,
			Role:         "admin",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.store.CreateUser(ctx, u); err != nil {
			return false, fmt.Errorf("create admin: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("look up admin: %w", err)
	}
}

func (s *Seeder) seedProjects(ctx context.Context, f *File, rep *Report) error {
	for i, item := range f.Projects {
		in := item.input()
		now := s.now()

		p, err := domain.NewProject(in, now)
		if err != nil {
			return fmt.Errorf("project %d (%q): %w", i, item.Title, err)
		}

		existing, err := s.store.GetProjectBySlug(ctx, p.Slug)
		update := err == nil
		switch {
		case update:
			if err := existing.Apply(in, now); err != nil {
				return fmt.Errorf("project %d (%q): %w", i, item.Title, err)
			}
			p = existing
		case errors.Is(err, store.ErrNotFound):
		default:
			return fmt.Errorf("project %d (%q): %w", i, item.Title, err)
		}

		if _, err := s.enforcer.SaveProject(ctx, p, true); err != nil {
			return fmt.Errorf("project %d (%q): %w", i, item.Title, err)
		}
		rep.count(update)
	}
	return nil
}

func (s *Seeder) seedBlogs(ctx context.Context, f *File, rep *Report) error {
	for i, item := range f.Blogs {
		in := item.input()
		now := s.now()

		b, err := domain.NewBlog(in, now)
		if err != nil {
			return fmt.Errorf("blog %d (%q): %w", i, item.Title, err)
		}

		existing, err := s.store.GetBlogBySlug(ctx, b.Slug)
		update := err == nil
		switch {
		case update:
			if err := existing.Apply(in, now); err != nil {
				return fmt.Errorf("blog %d (%q): %w", i, item.Title, err)
			}
			err = s.store.UpdateBlog(ctx, existing)
		case errors.Is(err, store.ErrNotFound):
			err = s.store.CreateBlog(ctx, b)
		}
		if err != nil {
			return fmt.Errorf("blog %d (%q): %w", i, item.Title, err)
		}
		rep.count(update)
	}
	return nil
}

func (s *Seeder) seedExperiences(ctx context.Context, f *File, rep *Report) error {
	if len(f.Experiences) == 0 {
		return nil
	}
	current, err := s.store.ListExperiences(ctx, store.AllRows())
	if err != nil {
		return fmt.Errorf("list experiences: %w", err)
	}

	for i, item := range f.Experiences {
		in := item.input()
		now := s.now()

		var match *domain.Experience
		for j := range current {
			c := &current[j]
			if strings.EqualFold(c.Company, strings.TrimSpace(in.Company)) &&
				strings.EqualFold(c.Role, strings.TrimSpace(in.Role)) &&
				c.StartDate == strings.TrimSpace(in.StartDate) {
				match = c
				break
			}
		}

		if match != nil {
			if err := match.Apply(in, now); err != nil {
				return fmt.Errorf("experience %d (%q): %w", i, item.Company, err)
			}
			if err := s.store.UpdateExperience(ctx, match); err != nil {
				return fmt.Errorf("experience %d (%q): %w", i, item.Company, err)
			}
			rep.Updated++
			continue
		}

		e, err := domain.NewExperience(in, now)
		if err != nil {
			return fmt.Errorf("experience %d (%q): %w", i, item.Company, err)
		}
		if err := s.store.CreateExperience(ctx, e); err != nil {
			return fmt.Errorf("experience %d (%q): %w", i, item.Company, err)
		}
		current = append(current, *e)
		rep.Created++
	}
	return nil
}

func (s *Seeder) seedResearch(ctx context.Context, f *File, rep *Report) error {
	if len(f.Research) == 0 {
		return nil
	}
	current, err := s.store.ListResearch(ctx, store.AllRows())
	if err != nil {
		return fmt.Errorf("list research: %w", err)
	}

	for i, item := range f.Research {
		in := item.input()
		now := s.now()

		var match *domain.Research
		for j := range current {
			if strings.EqualFold(current[j].Title, strings.TrimSpace(in.Title)) {
				match = &current[j]
				break
			}
		}

		if match != nil {
			if err := match.Apply(in, now); err != nil {
				return fmt.Errorf("research %d (%q): %w", i, item.Title, err)
			}
			if err := s.store.UpdateResearch(ctx, match); err != nil {
				return fmt.Errorf("research %d (%q): %w", i, item.Title, err)
			}
			rep.Updated++
			continue
		}

		r, err := domain.NewResearch(in, now)
		if err != nil {
			return fmt.Errorf("research %d (%q): %w", i, item.Title, err)
		}
		if err := s.store.CreateResearch(ctx, r); err != nil {
			return fmt.Errorf("research %d (%q): %w", i, item.Title, err)
		}
		current = append(current, *r)
		rep.Created++
	}
	return nil
}
