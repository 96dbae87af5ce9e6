// Package types provides type definitions for structured data used throughout the persona-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Snippet is a short excerpt of a record paired with its source URL,
// shown in the report's evidence section.
type Snippet struct {
	Excerpt string `json:"excerpt"`
	URL     string `json:"url"`
	Kind    Kind   `json:"kind"`
}

// Persona is the aggregated, citation-backed description of a user's
// inferred traits. Built once per run, written once, then discarded.
type Persona struct {
	Username       string        `json:"username"`
	RunID          string        `json:"run_id"`
	GeneratedAt    time.Time     `json:"generated_at"`
	Traits         []TraitResult `json:"traits"`
	SampleSnippets []Snippet     `json:"sample_snippets"`
}

// Trait returns the result for the given kind, or nil if absent
func (p *Persona) Trait(kind TraitKind) *TraitResult {
	for i := range p.Traits {
		if p.Traits[i].Kind == kind {
			return &p.Traits[i]
		}
	}
	return nil
}
