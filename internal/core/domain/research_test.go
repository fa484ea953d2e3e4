package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResearchInput() ResearchInput {
	return ResearchInput{
		Title:   "On Slugs",
		Authors: []string{"A. Author", " ", "B. Author"},
		Journal: "Journal of Things",
		Date:    "Summer 2023",
	}
}

func TestNewResearch_DerivesYear(t *testing.T) {
	r, err := NewResearch(validResearchInput(), testNow)
	require.NoError(t, err)

	assert.Equal(t, "2023", r.Year)
	assert.Equal(t, []string{"A. Author", "B. Author"}, r.Authors)
	assert.Equal(t, 0, r.Citations)
	assert.Equal(t, []string{}, r.Tags)
}

func TestNewResearch_RejectsNegativeCitations(t *testing.T) {
	in := validResearchInput()
	in.Citations = -1
	_, err := NewResearch(in, testNow)
	assert.ErrorIs(t, err, ErrCitationsNegative)
}

func TestNewResearch_RequiresAuthors(t *testing.T) {
	in := validResearchInput()
	in.Authors = []string{"  "}
	_, err := NewResearch(in, testNow)
	assert.ErrorIs(t, err, ErrAuthorsRequired)
}
