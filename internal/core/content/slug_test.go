package content

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Slugify Tests
// =============================================================================

func TestSlugify_Basic(t *testing.T) {
	assert.Equal(t, "my-cool-project", Slugify("My Cool Project!!"))
}

func TestSlugify_EmptyString(t *testing.T) {
	assert.Equal(t, "", Slugify(""))
}

func TestSlugify_OnlySpecialChars(t *testing.T) {
	assert.Equal(t, "", Slugify("!@#$%^&*()"))
}

func TestSlugify_TableDriven(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"basic", "Hello World", "hello-world"},
		{"uppercase", "UPPERCASE NAME", "uppercase-name"},
		{"numbers", "Test123App", "test123app"},
		{"punctuation", "hello, world.", "hello-world"},
		{"hyphens collapse", "my--app---name", "my-app-name"},
		{"multiple spaces", "hello   world", "hello-world"},
		{"leading trailing", "  trim me  ", "trim-me"},
		{"version dots", "App2Go v3.0", "app2go-v3-0"},
		{"underscores", "hello_world", "hello-world"},
		{"non ascii", "Café Déjà Vu", "caf-d-j-vu"},
		{"emoji only", "🚀🚀", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugify_OutputAlphabet(t *testing.T) {
	valid := regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)?$`)
	inputs := []string{
		"My Cool Project!!",
		"--leading",
		"trailing--",
		"a - b - c",
		"Ünïcödé Tïtlé",
		"\t\ttabs\nand\nnewlines",
		"100% Pure/Go",
		"",
	}
	for _, in := range inputs {
		assert.Regexp(t, valid, Slugify(in), "input %q", in)
	}
}

// =============================================================================
// SlugLink Tests
// =============================================================================

func TestSlugLink_FollowsTitleWhileCreating(t *testing.T) {
	link := NewSlugLink(true)
	link = link.Title("My")
	link = link.Title("My Cool Project")
	assert.Equal(t, "my-cool-project", link.Slug())
	assert.False(t, link.Severed())
}

func TestSlugLink_ManualEditSevers(t *testing.T) {
	link := NewSlugLink(true).Title("First Title")
	link = link.EditSlug("custom-slug")
	link = link.Title("Second Title")

	assert.Equal(t, "custom-slug", link.Slug())
	assert.True(t, link.Severed())
}

func TestSlugLink_EditingExistingRecordDoesNotDerive(t *testing.T) {
	link := NewSlugLink(false).EditSlug("existing")
	link = link.Title("Renamed")
	assert.Equal(t, "existing", link.Slug())
}
