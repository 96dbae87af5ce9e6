// Package analysis implements the five independent trait extractors. Each
// extractor reads only the immutable corpus or record list and returns its own
// TraitResult; none shares state with another.
package analysis

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/persona-agent/internal/citation"
	"github.com/jonathan/persona-agent/internal/llm"
	"github.com/jonathan/persona-agent/internal/prompts"
	"github.com/jonathan/persona-agent/internal/schemas"
	"github.com/jonathan/persona-agent/internal/types"
)

// keywordPayload mirrors the keyword extraction response
type keywordPayload struct {
	Keywords []struct {
		Phrase string  `json:"phrase"`
		Score  float64 `json:"score"`
	} `json:"keywords"`
}

// ExtractKeywords produces up to topN ranked interest phrases from the corpus.
// Phrases on the deny list (case-insensitive exact match) are dropped; each
// survivor is resolved to a citation by case-insensitive substring match
// against the records.
func ExtractKeywords(ctx context.Context, client llm.Client, c *types.Corpus, topN int, denyList []string) (types.TraitResult, error) {
	result := types.TraitResult{Kind: types.TraitKeywords}
	if c.Empty() {
		return result, nil
	}

	template := prompts.MustGet("analysis.json", "extract-keywords")
	prompt := prompts.Format(template, map[string]string{
		"TopN":   strconv.Itoa(topN),
		"Corpus": c.Text,
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return result, &APICallError{Message: "keyword extraction", Cause: err}
	}
	if err := schemas.ValidatePayload(schemas.KeywordPayload, raw); err != nil {
		return result, &ParseError{Message: "keyword payload rejected by schema", Cause: err}
	}

	var payload keywordPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return result, &ParseError{Message: "failed to parse keyword payload", Cause: err}
	}

	denied := make(map[string]struct{}, len(denyList))
	for _, term := range denyList {
		denied[strings.ToLower(term)] = struct{}{}
	}

	for _, kw := range payload.Keywords {
		phrase := strings.TrimSpace(kw.Phrase)
		if phrase == "" {
			continue
		}
		if _, drop := denied[strings.ToLower(phrase)]; drop {
			continue
		}
		result.Keywords = append(result.Keywords, types.CitedValue{
			Value:    phrase,
			Citation: citation.Resolve(phrase, c.Records, citation.MatchSubstring),
		})
		if len(result.Keywords) >= topN {
			break
		}
	}

	return result, nil
}
