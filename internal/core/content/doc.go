// Package content derives stored fields from admin input.
// This is part of the Functional Core - all functions are pure with no I/O.
//
// # Functions
//
//   - Slugify: URL-safe identifier from a title
//   - ParseDate, ExtractYear, Compare: free-text date interpretation
//   - Duration: "<start> - <end>" display range
//   - ReadTime, PlainText: reading time from rendered blog content
package content
