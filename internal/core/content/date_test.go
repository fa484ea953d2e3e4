package content

import (
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

// =============================================================================
// ParseDate Tests
// =============================================================================

func TestParseDate_DayMonthYear(t *testing.T) {
	d := ParseDate("15 Jan 2024")
	assert.Equal(t, DateKnown, d.Kind)
	assert.Equal(t, 2024, d.Year)
	assert.Equal(t, time.January, d.Month)
	assert.Equal(t, 15, d.Day)
	assert.Equal(t, "15 Jan 2024", d.String())
}

func TestParseDate_MonthYearDefaultsDayOne(t *testing.T) {
	d := ParseDate("September 2021")
	assert.Equal(t, DateKnown, d.Kind)
	assert.Equal(t, time.September, d.Month)
	assert.Equal(t, 1, d.Day)
}

func TestParseDate_Present(t *testing.T) {
	for _, in := range []string{"present", "Present", " PRESENT "} {
		d := ParseDate(in)
		assert.Equal(t, DatePresent, d.Kind, in)
		assert.Equal(t, in, d.Raw)
	}
}

func TestParseDate_TableDriven(t *testing.T) {
	tests := []struct {
		input string
		kind  DateKind
		year  int
		month time.Month
		day   int
	}{
		{"1 feb 2020", DateKnown, 2020, time.February, 1},
		{"29 Feb 2024", DateKnown, 2024, time.February, 29},
		{"Sept 2019", DateKnown, 2019, time.September, 1},
		{"Dec. 2022", DateKnown, 2022, time.December, 1},
		{"Summer 2023", DateUnparsed, 0, 0, 0},
		{"29 Feb 2023", DateUnparsed, 0, 0, 0},
		{"32 Jan 2024", DateUnparsed, 0, 0, 0},
		{"Ja 2024", DateUnparsed, 0, 0, 0},
		{"Jan 24", DateUnparsed, 0, 0, 0},
		{"2024", DateUnparsed, 0, 0, 0},
		{"", DateUnparsed, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := ParseDate(tt.input)
			assert.Equal(t, tt.kind, d.Kind)
			assert.Equal(t, tt.year, d.Year)
			assert.Equal(t, tt.month, d.Month)
			assert.Equal(t, tt.day, d.Day)
			assert.Equal(t, tt.input, d.Raw)
		})
	}
}

func TestSortDate_EmptyIsPresent(t *testing.T) {
	assert.Equal(t, DatePresent, SortDate("").Kind)
	assert.Equal(t, DatePresent, SortDate("   ").Kind)
	assert.Equal(t, DateKnown, SortDate("Jan 2024").Kind)
}

// =============================================================================
// ExtractYear Tests
// =============================================================================

func TestExtractYear_FullParse(t *testing.T) {
	assert.Equal(t, "2024", ExtractYear("15 Jan 2024", fixedNow))
	assert.Equal(t, "1999", ExtractYear("Mar 1999", fixedNow))
}

func TestExtractYear_FallbackToken(t *testing.T) {
	assert.Equal(t, "2023", ExtractYear("Summer 2023", fixedNow))
	assert.Equal(t, "2019", ExtractYear("Q3/2019 - internship", fixedNow))
}

func TestExtractYear_CurrentYearWhenNoToken(t *testing.T) {
	now := strconv.Itoa(fixedNow.Year())
	assert.Equal(t, now, ExtractYear("someday", fixedNow))
	assert.Equal(t, now, ExtractYear("Present", fixedNow))
	assert.Equal(t, now, ExtractYear("", fixedNow))
	assert.Equal(t, now, ExtractYear("12024", fixedNow))
	assert.Equal(t, now, ExtractYear("1998", fixedNow))
}

// =============================================================================
// Compare Tests
// =============================================================================

func TestCompare_KnownDates(t *testing.T) {
	a := ParseDate("15 Jan 2024")
	b := ParseDate("Feb 2024")
	assert.Equal(t, -1, Compare(a, b, fixedNow))
	assert.Equal(t, 1, Compare(b, a, fixedNow))
	assert.Equal(t, 0, Compare(a, ParseDate("15 january 2024"), fixedNow))
}

func TestCompare_PresentIsMostRecent(t *testing.T) {
	present := ParseDate("Present")
	for _, other := range []string{"Jan 2026", "Summer 2025", "whenever"} {
		assert.Equal(t, 1, Compare(present, ParseDate(other), fixedNow), other)
	}
}

func TestCompare_UnparsedWithoutYearIsOldest(t *testing.T) {
	assert.Equal(t, -1, Compare(ParseDate("a while ago"), ParseDate("Jan 2000"), fixedNow))
}

func TestCompare_SortsDescending(t *testing.T) {
	raw := []string{"Mar 2021", "Present", "someday", "10 Jan 2024", "Summer 2023"}
	dates := make([]Date, len(raw))
	for i, r := range raw {
		dates[i] = SortDate(r)
	}
	sort.SliceStable(dates, func(i, j int) bool {
		return Compare(dates[i], dates[j], fixedNow) > 0
	})

	var got []string
	for _, d := range dates {
		got = append(got, d.String())
	}
	assert.Equal(t, []string{"Present", "10 Jan 2024", "Summer 2023", "Mar 2021", "someday"}, got)
}
