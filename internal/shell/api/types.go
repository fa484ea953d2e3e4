package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/artpar/portfolio/internal/core/domain"
	"github.com/artpar/portfolio/internal/core/spotlight"
)

// =============================================================================
// Request Types
// =============================================================================

// StringList accepts either a JSON array of strings or a single
// comma-separated string, the way the admin forms submit lists.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var csv string
		if err := json.Unmarshal(data, &csv); err != nil {
			return err
		}
		*l = domain.SplitList(csv)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected a list of strings or a comma-separated string")
	}
	*l = items
	return nil
}

// ProjectRequest is the request body for creating or replacing a project.
type ProjectRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Thumbnail    string     `json:"thumbnail,omitempty"`
	Technologies StringList `json:"technologies,omitempty"`
	GithubLink   string     `json:"githubLink,omitempty"`
	LiveURL      string     `json:"liveUrl,omitempty"`
	Featured     bool       `json:"featured,omitempty"`
	Category     string     `json:"category"`
	Status       string     `json:"status,omitempty"`
	IsSpotlight  bool       `json:"isSpotlight,omitempty"`
	Slug         string     `json:"slug,omitempty"`
	Content      string     `json:"content,omitempty"`
}

func (r ProjectRequest) input() domain.ProjectInput {
	return domain.ProjectInput{
		Title:        r.Title,
		Description:  r.Description,
		Thumbnail:    r.Thumbnail,
		Technologies: r.Technologies,
		GithubLink:   r.GithubLink,
		LiveURL:      r.LiveURL,
		Featured:     r.Featured,
		Category:     domain.Category(r.Category),
		Status:       domain.ProjectStatus(r.Status),
		IsSpotlight:  r.IsSpotlight,
		Slug:         r.Slug,
		Content:      r.Content,
	}
}

// ProjectPatchRequest is the request body for a partial project update.
// Omitted fields are left unchanged.
type ProjectPatchRequest struct {
	Featured    *bool   `json:"featured,omitempty"`
	Status      *string `json:"status,omitempty"`
	IsSpotlight *bool   `json:"isSpotlight,omitempty"`
}

func (r ProjectPatchRequest) patch() domain.ProjectPatch {
	p := domain.ProjectPatch{Featured: r.Featured, IsSpotlight: r.IsSpotlight}
	if r.Status != nil {
		s := domain.ProjectStatus(*r.Status)
		p.Status = &s
	}
	return p
}

// BlogRequest is the request body for creating or replacing a blog post.
// Content is HTML.
type BlogRequest struct {
	Title     string     `json:"title"`
	Slug      string     `json:"slug,omitempty"`
	Excerpt   string     `json:"excerpt"`
	Content   string     `json:"content"`
	Thumbnail string     `json:"thumbnail,omitempty"`
	Tags      StringList `json:"tags,omitempty"`
	Published bool       `json:"published,omitempty"`
	Featured  bool       `json:"featured,omitempty"`
}

func (r BlogRequest) input() domain.BlogInput {
	return domain.BlogInput{
		Title:     r.Title,
		Slug:      r.Slug,
		Excerpt:   r.Excerpt,
		Content:   r.Content,
		Thumbnail: r.Thumbnail,
		Tags:      r.Tags,
		Published: r.Published,
		Featured:  r.Featured,
	}
}

// ExperienceRequest is the request body for creating or replacing an experience entry.
type ExperienceRequest struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Logo        string `json:"logo,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
}

func (r ExperienceRequest) input() domain.ExperienceInput {
	return domain.ExperienceInput{
		Company:     r.Company,
		Role:        r.Role,
		Description: r.Description,
		Logo:        r.Logo,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

// ResearchRequest is the request body for creating or replacing a publication.
type ResearchRequest struct {
	Title       string     `json:"title"`
	Authors     StringList `json:"authors"`
	Journal     string     `json:"journal"`
	Date        string     `json:"date"`
	Abstract    string     `json:"abstract"`
	DOI         string     `json:"doi,omitempty"`
	PDFURL      string     `json:"pdfUrl,omitempty"`
	ExternalURL string     `json:"externalUrl,omitempty"`
	Citations   int        `json:"citations,omitempty"`
	Tags        StringList `json:"tags,omitempty"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	Featured    bool       `json:"featured,omitempty"`
}

func (r ResearchRequest) input() domain.ResearchInput {
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

// LoginRequest is the request body for signing in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// =============================================================================
// Response Types
// =============================================================================

// ProjectResponse is the response for project writes. PreviousSpotlight is
// set when the write moved the spotlight away from another project.
type ProjectResponse struct {
	domain.Project
	PreviousSpotlight *spotlight.Holder `json:"previousSpotlight,omitempty"`
}

// ViewsResponse is the response for a recorded blog view.
type ViewsResponse struct {
	ID    int `json:"id"`
	Views int `json:"views"`
}

// ErrorResponse is the error response format.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// SpotlightConflictResponse is returned when a spotlight request needs confirmation.
type SpotlightConflictResponse struct {
	Error  string           `json:"error"`
	Code   string           `json:"code"`
	Holder spotlight.Holder `json:"holder"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ReadyResponse is the readiness check response.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
