// Package corpus combines fetched records into the single analysis corpus.
package corpus

import (
	"strings"

	"github.com/jonathan/persona-agent/internal/types"
)

// Build concatenates posts and comments (posts first, original fetch order
// preserved within each kind) into a Corpus. Per-record structure is retained
// for citation lookup; the joined text feeds corpus-level analyses.
func Build(posts, comments []types.TextRecord) *types.Corpus {
	records := make([]types.TextRecord, 0, len(posts)+len(comments))
	records = append(records, posts...)
	records = append(records, comments...)

	var sb strings.Builder
	for i, rec := range records {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(rec.Text)
	}

	return &types.Corpus{
		Records: records,
		Text:    sb.String(),
	}
}

// Truncate returns the first maxChars characters of the corpus text, used to
// fit the sentiment classifier's input window. The cut lands on a rune
// boundary so the window stays valid UTF-8. maxChars <= 0 returns the full
// text.
func Truncate(c *types.Corpus, maxChars int) string {
	if c == nil {
		return ""
	}
	if maxChars <= 0 || len(c.Text) <= maxChars {
		return c.Text
	}
	return types.TruncateRunes(c.Text, maxChars)
}
