package citation

import (
	"testing"

	"github.com/jonathan/persona-agent/internal/corpus"
	"github.com/jonathan/persona-agent/internal/types"
	"github.com/stretchr/testify/assert"
)

func records() []types.TextRecord {
	return []types.TextRecord{
		{Text: "I love my new Vision Pro", SourceURL: "u1", ForumName: "apple"},
		{Text: "Xcode is great", SourceURL: "u2", ForumName: "apple"},
	}
}

func TestResolve_SubstringFirstMatch(t *testing.T) {
	url := Resolve("vision pro", records(), MatchSubstring)
	assert.Equal(t, "u1", url)
}

func TestResolve_SubstringCaseInsensitive(t *testing.T) {
	url := Resolve("XCODE", records(), MatchSubstring)
	assert.Equal(t, "u2", url)
}

func TestResolve_NoMatchReturnsSentinel(t *testing.T) {
	url := Resolve("android", records(), MatchSubstring)
	assert.Equal(t, types.CitationNotFound, url)
}

func TestResolve_EmptyTargetReturnsSentinel(t *testing.T) {
	url := Resolve("", records(), MatchSubstring)
	assert.Equal(t, types.CitationNotFound, url)
}

func TestResolve_EmptyRecords(t *testing.T) {
	url := Resolve("anything", nil, MatchSubstring)
	assert.Equal(t, types.CitationNotFound, url)
}

func TestResolve_EqualsIsCaseSensitive(t *testing.T) {
	assert.Equal(t, "u2", Resolve("Xcode is great", records(), MatchEquals))
	assert.Equal(t, types.CitationNotFound, Resolve("xcode is great", records(), MatchEquals))
}

func TestResolvePrefix_TruncatedRecordPrefixInTarget(t *testing.T) {
	recs := []types.TextRecord{
		{Text: "a long record about gardening tips", SourceURL: "u1"},
		{Text: "short", SourceURL: "u2"},
	}

	// Corpus truncation contains the first record's 6-char prefix.
	url := ResolvePrefix("a long corpus window", recs, MatchPrefix, 6)
	assert.Equal(t, "u1", url)
}

func TestResolvePrefix_MultiByteRecordPrefix(t *testing.T) {
	recs := []types.TextRecord{{Text: "église notes from a trip", SourceURL: "u1"}}

	// Window truncated to 3 characters the same way the record prefix is;
	// both cuts land on rune boundaries so they stay aligned.
	c := &types.Corpus{Records: recs, Text: recs[0].Text}
	window := corpus.Truncate(c, 3)

	assert.Equal(t, "égl", window)
	assert.Equal(t, "u1", ResolvePrefix(window, recs, MatchPrefix, 3))
}

func TestResolvePrefix_NoPrefixContained(t *testing.T) {
	recs := []types.TextRecord{{Text: "zebra facts", SourceURL: "u1"}}
	url := ResolvePrefix("completely unrelated text", recs, MatchPrefix, 5)
	assert.Equal(t, types.CitationNotFound, url)
}
