package types

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestWordCount_SplitsOnWhitespace(t *testing.T) {
	rec := TextRecord{Text: "one two\tthree\n four"}
	assert.Equal(t, 4, rec.WordCount())
}

func TestWordCount_EmptyText(t *testing.T) {
	rec := TextRecord{Text: "   "}
	assert.Equal(t, 0, rec.WordCount())
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "abc", 10, "abc"},
		{"exact limit", "abc", 3, "abc"},
		{"ascii cut", "abcdef", 4, "abcd"},
		{"multi-byte cut", "aébc", 2, "aé"},
		{"all multi-byte", "日本語テキスト", 3, "日本語"},
		{"zero returns input", "abc", 0, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateRunes(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestCorpusEmpty(t *testing.T) {
	var nilCorpus *Corpus
	assert.True(t, nilCorpus.Empty())
	assert.True(t, (&Corpus{}).Empty())
	assert.False(t, (&Corpus{Records: []TextRecord{{Text: "hi"}}}).Empty())
}

func TestPersonaTrait_LookupByKind(t *testing.T) {
	p := &Persona{
		Traits: []TraitResult{
			{Kind: TraitStyle, Label: "Concise"},
			{Kind: TraitSentiment, Label: "Positive"},
		},
	}

	style := p.Trait(TraitStyle)
	assert.NotNil(t, style)
	assert.Equal(t, "Concise", style.Label)

	assert.Nil(t, p.Trait(TraitForums))
}
