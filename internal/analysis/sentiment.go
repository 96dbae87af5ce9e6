package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/persona-agent/internal/citation"
	"github.com/jonathan/persona-agent/internal/corpus"
	"github.com/jonathan/persona-agent/internal/llm"
	"github.com/jonathan/persona-agent/internal/prompts"
	"github.com/jonathan/persona-agent/internal/schemas"
	"github.com/jonathan/persona-agent/internal/types"
)

// Sentiment labels surfaced in the report
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
	SentimentUnknown  = "Unknown"
)

// sentimentLabelMap maps the classifier's raw label space onto the report
// labels. Classifier variants use index-style labels (LABEL_0..2) or
// abbreviations; anything unmapped surfaces as Unknown rather than failing.
var sentimentLabelMap = map[string]string{
	"positive": SentimentPositive,
	"pos":      SentimentPositive,
	"label_2":  SentimentPositive,
	"neutral":  SentimentNeutral,
	"neu":      SentimentNeutral,
	"label_1":  SentimentNeutral,
	"negative": SentimentNegative,
	"neg":      SentimentNegative,
	"label_0":  SentimentNegative,
}

// sentimentPayload mirrors the sentiment classification response
type sentimentPayload struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ClassifySentiment classifies the corpus, truncated to the classifier's
// input window of maxChars, as Positive, Neutral or Negative.
//
// The citation is the first record whose text prefix (same truncation length)
// is contained in the analyzed window. This is a best-effort heuristic, not
// exact attribution: truncation boundaries need not align with record
// boundaries, and records sharing a prefix can be mis-attributed.
func ClassifySentiment(ctx context.Context, client llm.Client, c *types.Corpus, maxChars int) (types.TraitResult, error) {
	result := types.TraitResult{Kind: types.TraitSentiment}
	if c.Empty() {
		return result, nil
	}

	window := corpus.Truncate(c, maxChars)

	template := prompts.MustGet("analysis.json", "classify-sentiment")
	prompt := prompts.Format(template, map[string]string{"Text": window})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return result, &APICallError{Message: "sentiment classification", Cause: err}
	}
	if err := schemas.ValidatePayload(schemas.SentimentPayload, raw); err != nil {
		return result, &ParseError{Message: "sentiment payload rejected by schema", Cause: err}
	}

	var payload sentimentPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return result, &ParseError{Message: "failed to parse sentiment payload", Cause: err}
	}

	result.Label = MapSentimentLabel(payload.Label)
	result.Citation = citation.ResolvePrefix(window, c.Records, citation.MatchPrefix, maxChars)
	return result, nil
}

// MapSentimentLabel maps a raw classifier label onto the report label space.
// Unmapped labels yield Unknown; this never fails.
func MapSentimentLabel(raw string) string {
	if mapped, ok := sentimentLabelMap[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return mapped
	}
	return SentimentUnknown
}
