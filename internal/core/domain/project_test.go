package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

func validProjectInput() ProjectInput {
	return ProjectInput{
		Title:        "My Cool Project!!",
		Description:  "A project",
		Thumbnail:    "https://img.example.com/p.png",
		Technologies: []string{"Go", " SQLite ", ""},
		Category:     CategoryWeb,
	}
}

// =============================================================================
// Project Creation Tests
// =============================================================================

func TestNewProject_DerivesSlug(t *testing.T) {
	p, err := NewProject(validProjectInput(), testNow)
	require.NoError(t, err)

	assert.Equal(t, "my-cool-project", p.Slug)
	assert.Equal(t, StatusCompleted, p.Status)
	assert.Equal(t, []string{"Go", "SQLite"}, p.Technologies)
	assert.Equal(t, testNow, p.CreatedAt)
	assert.Equal(t, testNow, p.UpdatedAt)
}

func TestNewProject_KeepsSuppliedSlug(t *testing.T) {
	in := validProjectInput()
	in.Slug = "custom-slug"
	p, err := NewProject(in, testNow)
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", p.Slug)
}

func TestNewProject_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ProjectInput)
		want   error
	}{
		{"empty title", func(in *ProjectInput) { in.Title = "  " }, ErrTitleRequired},
		{"title without slug chars", func(in *ProjectInput) { in.Title = "!!!" }, ErrSlugRequired},
		{"bad slug", func(in *ProjectInput) { in.Slug = "Bad Slug" }, ErrSlugInvalid},
		{"missing description", func(in *ProjectInput) { in.Description = "" }, ErrDescriptionRequired},
		{"bad category", func(in *ProjectInput) { in.Category = "games" }, ErrInvalidCategory},
		{"bad status", func(in *ProjectInput) { in.Status = "abandoned" }, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProjectInput()
			tt.modify(&in)
			_, err := NewProject(in, testNow)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range []Category{CategoryWeb, CategoryMobile, CategoryAIML, CategoryDataScience, CategoryOther} {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, Category("ai/ml").IsValid())
}

// =============================================================================
// Update Tests
// =============================================================================

func TestProject_ApplyKeepsCreatedAt(t *testing.T) {
	p, err := NewProject(validProjectInput(), testNow)
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	in := validProjectInput()
	in.Title = "Renamed"
	in.Slug = p.Slug
	require.NoError(t, p.Apply(in, later))

	assert.Equal(t, "Renamed", p.Title)
	assert.Equal(t, "my-cool-project", p.Slug)
	assert.Equal(t, testNow, p.CreatedAt)
	assert.Equal(t, later, p.UpdatedAt)
}

func TestProject_ApplyPatch(t *testing.T) {
	p, err := NewProject(validProjectInput(), testNow)
	require.NoError(t, err)

	featured := true
	status := StatusPlanned
	require.NoError(t, p.ApplyPatch(ProjectPatch{Featured: &featured, Status: &status}, testNow))
	assert.True(t, p.Featured)
	assert.Equal(t, StatusPlanned, p.Status)
	assert.False(t, p.IsSpotlight)

	bad := ProjectStatus("unknown")
	assert.ErrorIs(t, p.ApplyPatch(ProjectPatch{Status: &bad}, testNow), ErrInvalidStatus)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, SplitList("Go, SQL, "))
	assert.Equal(t, []string{}, SplitList(""))
}
