package analysis

import (
	"github.com/jonathan/persona-agent/internal/types"
)

// Writing style labels
const (
	StyleConcise  = "Concise"
	StyleDetailed = "Detailed"
)

// ClassifyStyle labels the user's writing style from the mean word count per
// record: strictly below threshold is Concise, otherwise Detailed. The
// citation is the first record of the combined sequence (posts precede
// comments).
func ClassifyStyle(records []types.TextRecord, threshold float64) types.TraitResult {
	result := types.TraitResult{Kind: types.TraitStyle}
	if len(records) == 0 {
		result.Label = StyleConcise
		result.Citation = types.CitationNotFound
		return result
	}

	total := 0
	for _, rec := range records {
		total += rec.WordCount()
	}
	mean := float64(total) / float64(len(records))

	if mean < threshold {
		result.Label = StyleConcise
	} else {
		result.Label = StyleDetailed
	}
	result.Citation = records[0].SourceURL
	if result.Citation == "" {
		result.Citation = types.CitationNotFound
	}
	return result
}
