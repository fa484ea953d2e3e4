// Package domain contains the portfolio record types and their construction rules.
// This is part of the Functional Core - all functions are pure with no I/O.
package domain

import "errors"

// =============================================================================
// Errors
// =============================================================================

var (
	// Shared field errors
	ErrTitleRequired = errors.New("title is required")
	ErrTitleTooLong  = errors.New("title must be at most 200 characters")
	ErrSlugRequired  = errors.New("slug is required (title has no letters or digits)")
	ErrSlugInvalid   = errors.New("slug may only contain lowercase letters, digits, and single hyphens")

	// Project errors
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidCategory     = errors.New("category must be one of: web, mobile, AI/ML, data-science, other")
	ErrInvalidStatus       = errors.New("status must be one of: completed, in-progress, planned")

	// Blog errors
	ErrExcerptRequired = errors.New("excerpt is required")

	// Experience errors
	ErrCompanyRequired   = errors.New("company is required")
	ErrRoleRequired      = errors.New("role is required")
	ErrStartDateRequired = errors.New("startDate is required")

	// Research errors
	ErrAuthorsRequired   = errors.New("at least one author is required")
	ErrJournalRequired   = errors.New("journal is required")
	ErrDateRequired      = errors.New("date is required")
	ErrCitationsNegative = errors.New("citations cannot be negative")

	// User errors
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
)

var validationErrors = []error{
	ErrTitleRequired, ErrTitleTooLong, ErrSlugRequired, ErrSlugInvalid,
	ErrDescriptionRequired, ErrInvalidCategory, ErrInvalidStatus,
	ErrExcerptRequired,
	ErrCompanyRequired, ErrRoleRequired, ErrStartDateRequired,
	ErrAuthorsRequired, ErrJournalRequired, ErrDateRequired, ErrCitationsNegative,
	ErrEmailRequired, ErrPasswordRequired,
}

// IsValidation reports whether err is one of the field validation errors.
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
