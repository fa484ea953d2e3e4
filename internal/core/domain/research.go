package domain

import (
	"strings"
	"time"

	"github.com/artpar/portfolio/internal/core/content"
)

// =============================================================================
// Research
// =============================================================================

// Research is a publication. Year is derived from Date on every write.
type Research struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Authors     []string  `json:"authors"`
	Journal     string    `json:"journal"`
	Year        string    `json:"year"`
	Date        string    `json:"date"`
	Abstract    string    `json:"abstract"`
	DOI         string    `json:"doi,omitempty"`
	PDFURL      string    `json:"pdfUrl,omitempty"`
	ExternalURL string    `json:"externalUrl,omitempty"`
	Citations   int       `json:"citations"`
	Tags        []string  `json:"tags"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ResearchInput is the admin form for a publication.
type ResearchInput struct {
	Title       string
	Authors     []string
	Journal     string
	Date        string
	Abstract    string
	DOI         string
	PDFURL      string
	ExternalURL string
	Citations   int
	Tags        []string
	Thumbnail   string
	Featured    bool
}

// NewResearch builds a publication from form input.
func NewResearch(in ResearchInput, now time.Time) (*Research, error) {
	r := &Research{CreatedAt: now.UTC()}
	if err := r.Apply(in, now); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply replaces the editable fields and recomputes Year.
func (r *Research) Apply(in ResearchInput, now time.Time) error {
	if err := ValidateResearchInput(in); err != nil {
		return err
	}

	r.Title = strings.TrimSpace(in.Title)
	r.Authors = cleanList(in.Authors)
	r.Journal = strings.TrimSpace(in.Journal)
	r.Date = strings.TrimSpace(in.Date)
	r.Year = content.ExtractYear(r.Date, now)
	r.Abstract = in.Abstract
	r.DOI = strings.TrimSpace(in.DOI)
	r.PDFURL = strings.TrimSpace(in.PDFURL)
	r.ExternalURL = strings.TrimSpace(in.ExternalURL)
	r.Citations = in.Citations
	r.Tags = cleanList(in.Tags)
	r.Thumbnail = in.Thumbnail
	r.Featured = in.Featured
	r.UpdatedAt = now.UTC()
	return nil
}

// Published returns the interpreted publication date.
func (r Research) Published() content.Date {
	return content.ParseDate(r.Date)
}

// ValidateResearchInput validates a publication form.
func ValidateResearchInput(in ResearchInput) error {
	if err := ValidateTitle(in.Title); err != nil {
		return err
	}
	if len(cleanList(in.Authors)) == 0 {
		return ErrAuthorsRequired
	}
	if strings.TrimSpace(in.Journal) == "" {
		return ErrJournalRequired
	}
	if strings.TrimSpace(in.Date) == "" {
		return ErrDateRequired
	}
	if in.Citations < 0 {
		return ErrCitationsNegative
	}
	return nil
}
