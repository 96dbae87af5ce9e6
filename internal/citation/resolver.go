// Package citation resolves trait values back to the source records that
// evidence them. Extractors share one first-match scan with an
// extractor-specific match predicate.
package citation

import (
	"strings"

	"github.com/jonathan/persona-agent/internal/types"
)

// Mode selects the match predicate applied between a target string and a
// record's text.
type Mode int

// Match modes used by the trait extractors
const (
	// MatchSubstring checks that the record text contains the target,
	// case-insensitively. Used for keyword citations.
	MatchSubstring Mode = iota
	// MatchEquals checks case-sensitive equality of record text and target.
	MatchEquals
	// MatchPrefix checks that the record's text prefix (truncated to the
	// target's analysis window) is contained in the target. Used for the
	// sentiment citation heuristic.
	MatchPrefix
)

// Resolve returns the URL of the first record matching target under the
// given mode, or types.CitationNotFound when nothing matches. It never
// errors: an absent match is an expected outcome, not a failure.
func Resolve(target string, records []types.TextRecord, mode Mode) string {
	return ResolvePrefix(target, records, mode, 0)
}

// ResolvePrefix is Resolve with an explicit truncation length for
// MatchPrefix; maxLen <= 0 means no truncation. Other modes ignore maxLen.
func ResolvePrefix(target string, records []types.TextRecord, mode Mode, maxLen int) string {
	if target == "" {
		return types.CitationNotFound
	}

	for _, rec := range records {
		if matches(target, rec.Text, mode, maxLen) {
			return rec.SourceURL
		}
	}
	return types.CitationNotFound
}

func matches(target, text string, mode Mode, maxLen int) bool {
	switch mode {
	case MatchSubstring:
		return strings.Contains(strings.ToLower(text), strings.ToLower(target))
	case MatchEquals:
		return text == target
	case MatchPrefix:
		// Rune-boundary cut, matching how the analysis window is truncated.
		prefix := types.TruncateRunes(text, maxLen)
		return prefix != "" && strings.Contains(target, prefix)
	default:
		return false
	}
}
