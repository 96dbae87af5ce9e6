// Package report assembles the persona text report and writes the single
// output artifact.
package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/persona-agent/internal/types"
)

const (
	// snippetMaxChars bounds each sample-evidence excerpt
	snippetMaxChars = 100
	// snippetsPerKind bounds how many posts and comments appear as evidence
	snippetsPerKind = 2
	// emptyMarker renders in place of an empty result set; sections are never
	// silently omitted.
	emptyMarker = "N/A"

	headerWidth = 64
)

// Options controls report rendering.
type Options struct {
	// EntityCap limits how many entities the report surfaces; the trait
	// result itself retains the full set.
	EntityCap int
}

// Render produces the deterministic text report for a persona. Section order
// is fixed: header, Top Interests, Named Entities, Frequent Forums, Writing
// Style, Sentiment, Sample Evidence, footer.
func Render(p *types.Persona, opts Options) string {
	var sb strings.Builder

	rule := strings.Repeat("=", headerWidth)
	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf(" Persona Report: %s\n", p.Username))
	sb.WriteString(rule + "\n\n")

	renderKeywords(&sb, p.Trait(types.TraitKeywords))
	renderEntities(&sb, p.Trait(types.TraitEntities), opts.EntityCap)
	renderForums(&sb, p.Trait(types.TraitForums))
	renderLabeled(&sb, "Writing Style", p.Trait(types.TraitStyle))
	renderLabeled(&sb, "Sentiment", p.Trait(types.TraitSentiment))
	renderSnippets(&sb, p.SampleSnippets)

	sb.WriteString(fmt.Sprintf("Generated %s | run %s\n",
		p.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"), p.RunID))

	return sb.String()
}

func sectionHeader(sb *strings.Builder, title string) {
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("-", len(title)) + "\n")
}

func renderKeywords(sb *strings.Builder, trait *types.TraitResult) {
	sectionHeader(sb, "Top Interests")
	if trait == nil || len(trait.Keywords) == 0 {
		sb.WriteString(emptyMarker + "\n\n")
		return
	}
	for _, kw := range trait.Keywords {
		sb.WriteString(fmt.Sprintf("- %s\n", kw.Value))
		sb.WriteString(fmt.Sprintf("  evidence: %s\n", kw.Citation))
	}
	sb.WriteString("\n")
}

func renderEntities(sb *strings.Builder, trait *types.TraitResult, maxShown int) {
	sectionHeader(sb, "Named Entities")
	if trait == nil || len(trait.Entities) == 0 {
		sb.WriteString(emptyMarker + "\n\n")
		return
	}

	entities := trait.Entities
	if maxShown > 0 && len(entities) > maxShown {
		entities = entities[:maxShown]
	}
	parts := make([]string, 0, len(entities))
	for _, ent := range entities {
		parts = append(parts, fmt.Sprintf("%s (%s)", ent.Text, ent.Label))
	}
	sb.WriteString(strings.Join(parts, ", ") + "\n\n")
}

func renderForums(sb *strings.Builder, trait *types.TraitResult) {
	sectionHeader(sb, "Frequent Forums")
	if trait == nil || len(trait.Forums) == 0 {
		sb.WriteString(emptyMarker + "\n\n")
		return
	}
	for _, f := range trait.Forums {
		sb.WriteString(fmt.Sprintf("- %s (%d records)\n", f.Forum, f.Count))
		sb.WriteString(fmt.Sprintf("  evidence: %s\n", f.Citation))
	}
	sb.WriteString("\n")
}

func renderLabeled(sb *strings.Builder, title string, trait *types.TraitResult) {
	sectionHeader(sb, title)
	if trait == nil || trait.Label == "" {
		sb.WriteString(emptyMarker + "\n\n")
		return
	}
	sb.WriteString(trait.Label + "\n")
	sb.WriteString(fmt.Sprintf("evidence: %s\n\n", trait.Citation))
}

func renderSnippets(sb *strings.Builder, snippets []types.Snippet) {
	sectionHeader(sb, "Sample Evidence")
	if len(snippets) == 0 {
		sb.WriteString(emptyMarker + "\n\n")
		return
	}
	for _, sn := range snippets {
		sb.WriteString(fmt.Sprintf("[%s] %q\n", sn.Kind, sn.Excerpt))
		sb.WriteString(fmt.Sprintf("  source: %s\n", sn.URL))
	}
	sb.WriteString("\n")
}

// BuildSnippets selects up to two posts and two comments as sample evidence,
// truncating each excerpt to 100 characters with an ellipsis.
func BuildSnippets(posts, comments []types.TextRecord) []types.Snippet {
	snippets := make([]types.Snippet, 0, 2*snippetsPerKind)
	for _, rec := range takeFirst(posts, snippetsPerKind) {
		snippets = append(snippets, snippetFromRecord(rec))
	}
	for _, rec := range takeFirst(comments, snippetsPerKind) {
		snippets = append(snippets, snippetFromRecord(rec))
	}
	return snippets
}

func takeFirst(records []types.TextRecord, n int) []types.TextRecord {
	if len(records) > n {
		return records[:n]
	}
	return records
}

func snippetFromRecord(rec types.TextRecord) types.Snippet {
	excerpt := rec.Text
	if utf8.RuneCountInString(excerpt) > snippetMaxChars {
		excerpt = types.TruncateRunes(excerpt, snippetMaxChars) + "..."
	}
	return types.Snippet{
		Excerpt: excerpt,
		URL:     rec.SourceURL,
		Kind:    rec.Kind,
	}
}
