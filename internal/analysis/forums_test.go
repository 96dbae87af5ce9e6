package analysis

import (
	"testing"

	"github.com/jonathan/persona-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountForums_CountsAndCitesFirstRecord(t *testing.T) {
	records := []types.TextRecord{
		{Text: "I love my new Vision Pro", SourceURL: "u1", ForumName: "apple"},
		{Text: "Xcode is great", SourceURL: "u2", ForumName: "apple"},
	}

	result := CountForums(records, 3)

	require.Len(t, result.Forums, 1)
	assert.Equal(t, types.TraitForums, result.Kind)
	assert.Equal(t, "apple", result.Forums[0].Forum)
	assert.Equal(t, 2, result.Forums[0].Count)
	assert.Equal(t, "u1", result.Forums[0].Citation)
}

func TestCountForums_TiesBreakByFirstEncountered(t *testing.T) {
	records := []types.TextRecord{
		{SourceURL: "u1", ForumName: "golang"},
		{SourceURL: "u2", ForumName: "rust"},
		{SourceURL: "u3", ForumName: "rust"},
		{SourceURL: "u4", ForumName: "golang"},
	}

	result := CountForums(records, 3)

	require.Len(t, result.Forums, 2)
	// Equal counts: golang was encountered first.
	assert.Equal(t, "golang", result.Forums[0].Forum)
	assert.Equal(t, "rust", result.Forums[1].Forum)
}

func TestCountForums_TopMCap(t *testing.T) {
	records := []types.TextRecord{
		{SourceURL: "u1", ForumName: "a"},
		{SourceURL: "u2", ForumName: "a"},
		{SourceURL: "u3", ForumName: "b"},
		{SourceURL: "u4", ForumName: "c"},
		{SourceURL: "u5", ForumName: "d"},
	}

	result := CountForums(records, 3)

	require.Len(t, result.Forums, 3)
	assert.Equal(t, "a", result.Forums[0].Forum)
}

func TestCountForums_SkipsRecordsWithoutForum(t *testing.T) {
	records := []types.TextRecord{
		{SourceURL: "u1", ForumName: ""},
		{SourceURL: "u2", ForumName: "only"},
	}

	result := CountForums(records, 3)

	require.Len(t, result.Forums, 1)
	assert.Equal(t, "only", result.Forums[0].Forum)
}

func TestCountForums_EmptyRecords(t *testing.T) {
	result := CountForums(nil, 3)
	assert.Empty(t, result.Forums)
}
