package content

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// Date Kinds
// =============================================================================

// DateKind discriminates the interpretations of a free-text date.
type DateKind int

const (
	// DateUnparsed is text matching neither accepted shape.
	DateUnparsed DateKind = iota
	// DateKnown is a parsed calendar date.
	DateKnown
	// DatePresent is the literal "present" (an ongoing range end).
	DatePresent
)

// String returns the kind name.
func (k DateKind) String() string {
	switch k {
	case DateKnown:
		return "known"
	case DatePresent:
		return "present"
	default:
		return "unparsed"
	}
}

// PresentLabel is the display form of an open range end.
const PresentLabel = "Present"

// =============================================================================
// Date
// =============================================================================

// Date is a free-text date together with its interpretation. Raw is always the
// author's original text and is what gets displayed.
type Date struct {
	Kind  DateKind
	Year  int
	Month time.Month
	Day   int
	Raw   string
}

// String returns the text as the author wrote it.
func (d Date) String() string {
	return d.Raw
}

var months = [...]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

var (
	fourDigits = regexp.MustCompile(`^\d{4}$`)
	yearToken  = regexp.MustCompile(`\b(20\d{2})\b`)
)

// ParseDate interprets a free-text date. Two shapes are accepted:
//
//	"15 Jan 2024"    day, month prefix, year
//	"January 2024"   month prefix, year (day is 1)
//
// The month must be at least three letters and start with an English month
// abbreviation, in any case. "present" in any case yields DatePresent.
// Everything else yields DateUnparsed with Raw preserved.
func ParseDate(raw string) Date {
	d := Date{Kind: DateUnparsed, Raw: raw}

	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, "present") {
		d.Kind = DatePresent
		return d
	}

	parts := strings.Fields(trimmed)
	for i := range parts {
		parts[i] = strings.TrimRight(parts[i], ".,")
	}

	var day int
	var monthTok, yearTok string
	switch len(parts) {
	case 3:
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			return d
		}
		day, monthTok, yearTok = n, parts[1], parts[2]
	case 2:
		day, monthTok, yearTok = 1, parts[0], parts[1]
	default:
		return d
	}

	month, ok := parseMonth(monthTok)
	if !ok || !fourDigits.MatchString(yearTok) {
		return d
	}
	year, _ := strconv.Atoi(yearTok)
	if day < 1 || day > daysIn(month, year) {
		return d
	}

	d.Kind = DateKnown
	d.Year = year
	d.Month = month
	d.Day = day
	return d
}

// SortDate interprets a date for ordering. An empty string means the range is
// still open and is treated like "present".
func SortDate(raw string) Date {
	if strings.TrimSpace(raw) == "" {
		return Date{Kind: DatePresent, Raw: raw}
	}
	return ParseDate(raw)
}

func parseMonth(tok string) (time.Month, bool) {
	if len(tok) < 3 {
		return 0, false
	}
	lower := strings.ToLower(tok)
	for i, m := range months {
		if strings.HasPrefix(lower, m) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// =============================================================================
// Year Extraction
// =============================================================================

// ExtractYear returns the four-digit year for a free-text date. It never fails:
// a fully parsed date gives its year, otherwise the first standalone 20xx
// token is used, otherwise the year of now.
//
// Example:
//
//	ExtractYear("15 Jan 2024", now)  // "2024"
//	ExtractYear("Summer 2023", now)  // "2023"
//	ExtractYear("someday", now)      // now.Year()
func ExtractYear(raw string, now time.Time) string {
	if d := ParseDate(raw); d.Kind == DateKnown {
		return strconv.Itoa(d.Year)
	}
	if y, ok := fallbackYear(raw); ok {
		return strconv.Itoa(y)
	}
	return strconv.Itoa(now.Year())
}

func fallbackYear(raw string) (int, bool) {
	m := yearToken.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	y, _ := strconv.Atoi(m[1])
	return y, true
}

// =============================================================================
// Ordering
// =============================================================================

// Instant maps a date onto a point in time for ordering. Present is now;
// unparsed text falls back to January 1 of its 20xx token, or the zero time
// when it has none, so it sorts as the oldest entry.
func (d Date) Instant(now time.Time) time.Time {
	switch d.Kind {
	case DateKnown:
		return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	case DatePresent:
		return now.UTC()
	default:
		if y, ok := fallbackYear(d.Raw); ok {
			return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		}
		return time.Time{}
	}
}

// Compare orders two dates ascending: -1 if a is earlier, 1 if later, 0 if equal.
func Compare(a, b Date, now time.Time) int {
	return a.Instant(now).Compare(b.Instant(now))
}
