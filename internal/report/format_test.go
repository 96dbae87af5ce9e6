package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jonathan/persona-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePersona() *types.Persona {
	return &types.Persona{
		Username:    "someuser",
		RunID:       "11111111-2222-3333-4444-555555555555",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Traits: []types.TraitResult{
			{
				Kind: types.TraitKeywords,
				Keywords: []types.CitedValue{
					{Value: "Vision Pro", Citation: "u1"},
					{Value: "Xcode", Citation: "u2"},
				},
			},
			{
				Kind: types.TraitEntities,
				Entities: []types.Entity{
					{Text: "Apple", Label: "ORG"},
					{Text: "Tokyo", Label: "GPE"},
				},
			},
			{
				Kind:   types.TraitForums,
				Forums: []types.ForumCount{{Forum: "apple", Count: 2, Citation: "u1"}},
			},
			{Kind: types.TraitStyle, Label: "Concise", Citation: "u1"},
			{Kind: types.TraitSentiment, Label: "Positive", Citation: "u1"},
		},
		SampleSnippets: []types.Snippet{
			{Excerpt: "I love my new Vision Pro", URL: "u1", Kind: types.KindPost},
		},
	}
}

func TestRender_AllSectionsInOrder(t *testing.T) {
	out := Render(samplePersona(), Options{EntityCap: 5})

	sections := []string{
		"Persona Report: someuser",
		"Top Interests",
		"Named Entities",
		"Frequent Forums",
		"Writing Style",
		"Sentiment",
		"Sample Evidence",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(out, section)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", section)
		assert.Greater(t, idx, last, "section %q out of order", section)
		last = idx
	}

	assert.Contains(t, out, "- Vision Pro\n  evidence: u1")
	assert.Contains(t, out, "Apple (ORG), Tokyo (GPE)")
	assert.Contains(t, out, "- apple (2 records)")
	assert.Contains(t, out, "run 11111111-2222-3333-4444-555555555555")
}

func TestRender_Deterministic(t *testing.T) {
	p := samplePersona()
	assert.Equal(t, Render(p, Options{EntityCap: 5}), Render(p, Options{EntityCap: 5}))
}

func TestRender_EmptyKeywordsKeepsHeaderNoBullets(t *testing.T) {
	p := samplePersona()
	p.Traits[0].Keywords = nil

	out := Render(p, Options{EntityCap: 5})

	require.Contains(t, out, "Top Interests")
	interests := out[strings.Index(out, "Top Interests"):strings.Index(out, "Named Entities")]
	assert.NotContains(t, interests, "- ")
	assert.Contains(t, interests, "N/A")
}

func TestRender_EntityCapAppliedAtDisplay(t *testing.T) {
	p := samplePersona()
	p.Traits[1].Entities = []types.Entity{
		{Text: "A", Label: "ORG"}, {Text: "B", Label: "ORG"}, {Text: "C", Label: "ORG"},
	}

	out := Render(p, Options{EntityCap: 2})

	assert.Contains(t, out, "A (ORG), B (ORG)")
	assert.NotContains(t, out, "C (ORG)")
}

func TestRender_MissingTraitsRenderAsNA(t *testing.T) {
	p := &types.Persona{Username: "emptyish", GeneratedAt: time.Now()}
	out := Render(p, Options{EntityCap: 5})

	// No section is ever silently omitted.
	for _, section := range []string{"Top Interests", "Named Entities", "Frequent Forums", "Writing Style", "Sentiment", "Sample Evidence"} {
		assert.Contains(t, out, section)
	}
	assert.GreaterOrEqual(t, strings.Count(out, "N/A"), 6)
}

func TestBuildSnippets_TwoPerKindTruncated(t *testing.T) {
	long := strings.Repeat("x", 150)
	posts := []types.TextRecord{
		{Text: long, SourceURL: "p1", Kind: types.KindPost},
		{Text: "short post", SourceURL: "p2", Kind: types.KindPost},
		{Text: "third post", SourceURL: "p3", Kind: types.KindPost},
	}
	comments := []types.TextRecord{
		{Text: "a comment", SourceURL: "c1", Kind: types.KindComment},
	}

	snippets := BuildSnippets(posts, comments)

	require.Len(t, snippets, 3)
	assert.Equal(t, strings.Repeat("x", 100)+"...", snippets[0].Excerpt)
	assert.Equal(t, "p2", snippets[1].URL)
	assert.Equal(t, types.KindComment, snippets[2].Kind)
}

func TestBuildSnippets_MultiByteRuneBoundary(t *testing.T) {
	// A two-byte rune straddles the 100-character cut; the excerpt must stay
	// valid UTF-8 so %q renders it as text rather than byte escapes.
	posts := []types.TextRecord{
		{Text: strings.Repeat("x", 99) + "éé more", SourceURL: "p1", Kind: types.KindPost},
	}

	snippets := BuildSnippets(posts, nil)

	require.Len(t, snippets, 1)
	assert.True(t, utf8.ValidString(snippets[0].Excerpt))
	assert.Equal(t, strings.Repeat("x", 99)+"é...", snippets[0].Excerpt)
}

func TestWrite_CreatesNamedArtifact(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, "someuser", "report body\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "someuser_persona.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "report body\n", string(data))
}

func TestWrite_BadDirectory(t *testing.T) {
	_, err := Write(filepath.Join(t.TempDir(), "missing", "nested"), "someuser", "x")

	require.Error(t, err)
	var werr *WriteError
	assert.ErrorAs(t, err, &werr)
}
