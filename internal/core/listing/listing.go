// Package listing orders, groups and filters records for the public pages.
// This is part of the Functional Core - all functions are pure with no I/O.
package listing

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/artpar/portfolio/internal/core/content"
	"github.com/artpar/portfolio/internal/core/domain"
)

// =============================================================================
// Experiences
// =============================================================================

// SortExperiences returns experiences ordered by start date, most recent first.
// Ongoing ("Present") starts come first; entries with no recognizable date last.
// Ties keep their input order.
func SortExperiences(exps []domain.Experience, now time.Time) []domain.Experience {
	out := slices.Clone(exps)
	slices.SortStableFunc(out, func(a, b domain.Experience) int {
		return content.Compare(b.Start(), a.Start(), now)
	})
	return out
}

// YearGroup is one year of the experience timeline.
type YearGroup struct {
	Year        string              `json:"year"`
	Experiences []domain.Experience `json:"experiences"`
}

// Timeline groups experiences by their derived year. Years are in descending
// string order and entries within a year are sorted like SortExperiences.
func Timeline(exps []domain.Experience, now time.Time) []YearGroup {
	sorted := SortExperiences(exps, now)

	index := make(map[string]int)
	groups := make([]YearGroup, 0)
	for _, e := range sorted {
		i, ok := index[e.Year]
		if !ok {
			i = len(groups)
			index[e.Year] = i
			groups = append(groups, YearGroup{Year: e.Year})
		}
		groups[i].Experiences = append(groups[i].Experiences, e)
	}

	slices.SortStableFunc(groups, func(a, b YearGroup) int {
		return cmp.Compare(b.Year, a.Year)
	})
	return groups
}

// =============================================================================
// Research
// =============================================================================

// SortResearch returns publications ordered by date, newest first.
func SortResearch(items []domain.Research, now time.Time) []domain.Research {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b domain.Research) int {
		return content.Compare(b.Published(), a.Published(), now)
	})
	return out
}

// =============================================================================
// Projects
// =============================================================================

// ProjectFilter narrows the project list.
type ProjectFilter struct {
	Category     domain.Category
	FeaturedOnly bool
}

// FilterProjects applies f, keeping input order.
func FilterProjects(projects []domain.Project, f ProjectFilter) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if f.FeaturedOnly && !p.Featured {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Spotlight returns the spotlighted project, if any.
func Spotlight(projects []domain.Project) (domain.Project, bool) {
	for _, p := range projects {
		if p.IsSpotlight {
			return p, true
		}
	}
	return domain.Project{}, false
}

// =============================================================================
// Blogs
// =============================================================================

// BlogFilter narrows the blog list. Tag matches when either the tag contains
// the filter or the filter contains the tag, ignoring case. Query matches
// title, excerpt or any tag.
type BlogFilter struct {
	PublishedOnly bool
	Tag           string
	Query         string
}

// FilterBlogs applies f, keeping input order.
func FilterBlogs(blogs []domain.Blog, f BlogFilter) []domain.Blog {
	tag := strings.ToLower(strings.TrimSpace(f.Tag))
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]domain.Blog, 0, len(blogs))
	for _, b := range blogs {
		if f.PublishedOnly && !b.Published {
			continue
		}
		if tag != "" && !matchesTag(b.Tags, tag) {
			continue
		}
		if query != "" && !matchesQuery(b, query) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesTag(tags []string, want string) bool {
	for _, t := range tags {
		t = strings.ToLower(t)
		if strings.Contains(t, want) || strings.Contains(want, t) {
			return true
		}
	}
	return false
}

func matchesQuery(b domain.Blog, q string) bool {
	if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Excerpt), q) {
		return true
	}
	for _, t := range b.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// SplitFeatured separates featured posts from the rest, keeping order.
func SplitFeatured(blogs []domain.Blog) (featured, regular []domain.Blog) {
	for _, b := range blogs {
		if b.Featured {
			featured = append(featured, b)
		} else {
			regular = append(regular, b)
		}
	}
	return featured, regular
}

// =============================================================================
// Pagination
// =============================================================================

// Paginate returns the window of items starting at offset, at most limit long.
// A negative limit means no limit. The result is never nil.
func Paginate[T any](items []T, limit, offset int) []T {
	offset = max(offset, 0)
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return slices.Clone(items[offset:end:end])
}
