// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/persona-agent/internal/fetch"
	"github.com/jonathan/persona-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines on rune boundaries
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = types.TruncateRunes(line, boxWidth-7) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFetchSummary outputs a human-readable summary of both fetch results.
func (p *Printer) PrintFetchSummary(posts, comments fetch.KindResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Posts:    %s\n", kindLine(posts)))
	sb.WriteString(fmt.Sprintf("Comments: %s", kindLine(comments)))

	p.printBox("FETCH SUMMARY", sb.String())
}

func kindLine(result fetch.KindResult) string {
	if !result.OK() {
		return fmt.Sprintf("failed (%v)", result.Err)
	}
	return fmt.Sprintf("%d records", len(result.Records))
}

// PrintPersona outputs a human-readable summary of the extracted traits.
func (p *Printer) PrintPersona(persona *types.Persona) {
	if persona == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("User:  %s\n", persona.Username))
	sb.WriteString(fmt.Sprintf("Run:   %s\n", persona.RunID))
	sb.WriteString("\n")

	if kw := persona.Trait(types.TraitKeywords); kw != nil && len(kw.Keywords) > 0 {
		sb.WriteString("Interests:\n")
		count := min(len(kw.Keywords), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", kw.Keywords[i].Value))
		}
		if len(kw.Keywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(kw.Keywords)-maxItemsToShow))
		}
	}

	if ents := persona.Trait(types.TraitEntities); ents != nil && len(ents.Entities) > 0 {
		sb.WriteString(fmt.Sprintf("Entities: %d found\n", len(ents.Entities)))
	}

	if forums := persona.Trait(types.TraitForums); forums != nil && len(forums.Forums) > 0 {
		sb.WriteString("Forums:\n")
		for _, f := range forums.Forums {
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", f.Forum, f.Count))
		}
	}

	if style := persona.Trait(types.TraitStyle); style != nil && style.Label != "" {
		sb.WriteString(fmt.Sprintf("Style:     %s\n", style.Label))
	}
	if sent := persona.Trait(types.TraitSentiment); sent != nil && sent.Label != "" {
		sb.WriteString(fmt.Sprintf("Sentiment: %s", sent.Label))
	}

	p.printBox("PERSONA", strings.TrimRight(sb.String(), "\n"))
}
