package domain

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExperience_OpenEnded(t *testing.T) {
	e, err := NewExperience(ExperienceInput{
		Company:   "Acme",
		Role:      "Engineer",
		StartDate: "15 Jan 2024",
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, "2024", e.Year)
	assert.Equal(t, "15 Jan 2024 - Present", e.Duration)
	assert.Equal(t, "Present", e.EndDate)
	assert.Equal(t, 0, e.Order)
}

func TestNewExperience_ClosedRange(t *testing.T) {
	e, err := NewExperience(ExperienceInput{
		Company:   "Acme",
		Role:      "Intern",
		StartDate: "Jun 2019",
		EndDate:   "Aug 2019",
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, "2019", e.Year)
	assert.Equal(t, "Jun 2019 - Aug 2019", e.Duration)
}

func TestNewExperience_UnparseableStartFallsBackToCurrentYear(t *testing.T) {
	e, err := NewExperience(ExperienceInput{
		Company:   "Acme",
		Role:      "Founder",
		StartDate: "a long time ago",
		EndDate:   "present",
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, strconv.Itoa(testNow.Year()), e.Year)
	assert.Equal(t, "a long time ago - Present", e.Duration)
}

func TestValidateExperienceInput(t *testing.T) {
	assert.ErrorIs(t, ValidateExperienceInput(ExperienceInput{Role: "r", StartDate: "2020"}), ErrCompanyRequired)
	assert.ErrorIs(t, ValidateExperienceInput(ExperienceInput{Company: "c", StartDate: "2020"}), ErrRoleRequired)
	assert.ErrorIs(t, ValidateExperienceInput(ExperienceInput{Company: "c", Role: "r"}), ErrStartDateRequired)
}
