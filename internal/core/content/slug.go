package content

import "strings"

// =============================================================================
// Slug Generation
// =============================================================================

// Slugify converts a title to a URL-safe slug.
//
// The transformation rules are:
//   - ASCII letters are lowercased, ASCII digits are kept
//   - Every run of other characters (including non-ASCII) becomes one hyphen
//   - Leading and trailing hyphens are removed
//
// An empty result means the title had no usable characters and must be rejected.
//
// Example:
//
//	Slugify("My Cool Project!!")  // returns "my-cool-project"
//	Slugify("Café 2.0")           // returns "caf-2-0"
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingHyphen := false

	for i := 0; i < len(title); i++ {
		c := title[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		default:
			pendingHyphen = true
			continue
		}
		if pendingHyphen && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingHyphen = false
		b.WriteByte(c)
	}

	return b.String()
}

// =============================================================================
// Title/Slug Link
// =============================================================================

// SlugLink tracks the slug field of a create form. The slug follows the title
// until the author edits the slug directly; from then on the title no longer
// changes it.
type SlugLink struct {
	slug    string
	severed bool
}

// NewSlugLink returns a link for a new record. Existing records should start
// severed, since the slug is only auto-derived during creation.
func NewSlugLink(creating bool) SlugLink {
	return SlugLink{severed: !creating}
}

// Title records a title change and returns the resulting slug.
func (l SlugLink) Title(title string) SlugLink {
	if !l.severed {
		l.slug = Slugify(title)
	}
	return l
}

// EditSlug records a manual slug edit. The link is permanently severed.
func (l SlugLink) EditSlug(slug string) SlugLink {
	l.slug = slug
	l.severed = true
	return l
}

// Slug returns the current slug value.
func (l SlugLink) Slug() string {
	return l.slug
}

// Severed reports whether the slug was edited by hand.
func (l SlugLink) Severed() bool {
	return l.severed
}
