// Package types provides type definitions for structured data used throughout the persona-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CitationNotFound is the sentinel used when no record evidences a trait value.
// Every non-empty trait carries either a real URL or this marker, never an
// empty citation.
const CitationNotFound = "citation not found"

// TraitKind identifies which analysis produced a TraitResult
type TraitKind string

// TraitKind constants, in report section order
const (
	TraitKeywords  TraitKind = "keywords"
	TraitEntities  TraitKind = "entities"
	TraitForums    TraitKind = "forums"
	TraitStyle     TraitKind = "style"
	TraitSentiment TraitKind = "sentiment"
)

// CitedValue is a single trait value paired with its supporting citation URL
// (or the CitationNotFound sentinel).
type CitedValue struct {
	Value    string `json:"value"`
	Citation string `json:"citation"`
}

// Entity is a named mention extracted from the corpus
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"` // ORG, GPE, or PERSON
}

// ForumCount is a forum name with its occurrence count across all records
type ForumCount struct {
	Forum    string `json:"forum"`
	Count    int    `json:"count"`
	Citation string `json:"citation"`
}

// TraitResult is the output of one extractor. Exactly one of the variant
// fields is populated, selected by Kind.
type TraitResult struct {
	Kind TraitKind `json:"kind"`

	// TraitKeywords: ranked interest phrases surviving the deny-list
	Keywords []CitedValue `json:"keywords,omitempty"`

	// TraitEntities: full deduplicated entity set (the report caps display)
	Entities []Entity `json:"entities,omitempty"`

	// TraitForums: top forums by record count
	Forums []ForumCount `json:"forums,omitempty"`

	// TraitStyle / TraitSentiment: single label plus citation
	Label    string `json:"label,omitempty"`
	Citation string `json:"citation,omitempty"`
}
