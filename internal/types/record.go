// Package types provides type definitions for structured data used throughout the persona-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Kind distinguishes the two flavors of user-authored content
type Kind string

// Kind constants for the two record flavors returned by the content source
const (
	// KindPost is a submission (title + body)
	KindPost Kind = "post"
	// KindComment is a comment (body only)
	KindComment Kind = "comment"
)

// TextRecord is one unit of user-authored content.
// Records are immutable once fetched; every downstream component reads them,
// none mutates them.
type TextRecord struct {
	Text      string `json:"text"`
	SourceURL string `json:"source_url"`
	ForumName string `json:"forum_name"`
	Kind      Kind   `json:"kind"`
}

// WordCount returns the number of whitespace-separated words in the record text
func (r TextRecord) WordCount() int {
	return len(strings.Fields(r.Text))
}

// TruncateRunes returns the first n runes of s. Cuts land on rune boundaries
// so the result is always valid UTF-8. n <= 0 returns s unchanged.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Corpus is the ordered combined record sequence (posts before comments)
// plus its concatenation into a single string for corpus-level analyses.
// It is derived per run and never persisted.
type Corpus struct {
	Records []TextRecord
	Text    string
}

// Empty reports whether the corpus holds no records
func (c *Corpus) Empty() bool {
	return c == nil || len(c.Records) == 0
}
