package content

import "strings"

// Duration formats an experience range as "<start> - <end>". The start is
// used verbatim. An empty end or any casing of "present" renders as "Present".
//
// Example:
//
//	Duration("15 Jan 2024", "")          // "15 Jan 2024 - Present"
//	Duration("Mar 2021", "Dec 2023")     // "Mar 2021 - Dec 2023"
func Duration(start, end string) string {
	return start + " - " + NormalizeEnd(end)
}

// NormalizeEnd returns the stored form of a range end.
func NormalizeEnd(end string) string {
	trimmed := strings.TrimSpace(end)
	if trimmed == "" || strings.EqualFold(trimmed, "present") {
		return PresentLabel
	}
	return end
}
