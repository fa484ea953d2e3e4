package domain

import (
	"strings"
	"time"

	"github.com/artpar/portfolio/internal/core/content"
)

// =============================================================================
// Experience
// =============================================================================

// Experience is a work history entry. Year and Duration are derived from the
// free-text dates on every write. Order is a legacy column kept at 0.
type Experience struct {
	ID          int       `json:"id"`
	Company     string    `json:"company"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	Logo        string    `json:"logo,omitempty"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Year        string    `json:"year"`
	Duration    string    `json:"duration"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ExperienceInput is the admin form for an experience entry.
type ExperienceInput struct {
	Company     string
	Role        string
	Description string
	Logo        string
	StartDate   string
	EndDate     string
}

// NewExperience builds an experience entry from form input.
func NewExperience(in ExperienceInput, now time.Time) (*Experience, error) {
	e := &Experience{CreatedAt: now.UTC()}
	if err := e.Apply(in, now); err != nil {
		return nil, err
	}
	return e, nil
}

// Apply replaces the editable fields and recomputes Year and Duration.
func (e *Experience) Apply(in ExperienceInput, now time.Time) error {
	if err := ValidateExperienceInput(in); err != nil {
		return err
	}

	e.Company = strings.TrimSpace(in.Company)
	e.Role = strings.TrimSpace(in.Role)
	e.Description = in.Description
	e.Logo = in.Logo
	e.StartDate = strings.TrimSpace(in.StartDate)
	e.EndDate = content.NormalizeEnd(in.EndDate)
	e.Year = content.ExtractYear(e.StartDate, now)
	e.Duration = content.Duration(e.StartDate, e.EndDate)
	e.Order = 0
	e.UpdatedAt = now.UTC()
	return nil
}

// Start returns the interpreted start date.
func (e Experience) Start() content.Date {
	return content.SortDate(e.StartDate)
}

// ValidateExperienceInput validates an experience form.
func ValidateExperienceInput(in ExperienceInput) error {
	if strings.TrimSpace(in.Company) == "" {
		return ErrCompanyRequired
	}
	if strings.TrimSpace(in.Role) == "" {
		return ErrRoleRequired
	}
	if strings.TrimSpace(in.StartDate) == "" {
		return ErrStartDateRequired
	}
	return nil
}
