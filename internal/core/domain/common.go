package domain

import (
	"regexp"
	"strings"

	"github.com/artpar/portfolio/internal/core/content"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const maxTitleLen = 200

// ValidateTitle checks a record title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if len(title) > maxTitleLen {
		return ErrTitleTooLong
	}
	return nil
}

// ResolveSlug returns the slug to store: a supplied slug is kept (after
// trimming) when valid, otherwise one is derived from the title.
func ResolveSlug(supplied, title string) (string, error) {
	slug := strings.TrimSpace(supplied)
	if slug == "" {
		slug = content.Slugify(title)
		if slug == "" {
			return "", ErrSlugRequired
		}
		return slug, nil
	}
	if !slugRegex.MatchString(slug) {
		return "", ErrSlugInvalid
	}
	return slug, nil
}

// cleanList trims entries and drops blanks, keeping order.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitList parses a comma-separated form value ("Go, SQL, ") into a list.
func SplitList(csv string) []string {
	return cleanList(strings.Split(csv, ","))
}
