package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/persona-agent/internal/llm"
	"github.com/jonathan/persona-agent/internal/prompts"
	"github.com/jonathan/persona-agent/internal/schemas"
	"github.com/jonathan/persona-agent/internal/types"
)

// entityLabels is the accepted label set; anything else the tagger returns is
// discarded.
var entityLabels = map[string]struct{}{
	"ORG":    {},
	"GPE":    {},
	"PERSON": {},
}

// entityPayload mirrors the entity tagging response
type entityPayload struct {
	Entities []struct {
		Text  string `json:"text"`
		Label string `json:"label"`
	} `json:"entities"`
}

// ExtractEntities extracts organization, geopolitical and person mentions
// from the corpus. The full deduplicated set is returned; the report applies
// the display cap. Per-trait citations are not resolved for entities
// (corpus-level evidence covers them).
func ExtractEntities(ctx context.Context, client llm.Client, c *types.Corpus) (types.TraitResult, error) {
	result := types.TraitResult{Kind: types.TraitEntities}
	if c.Empty() {
		return result, nil
	}

	template := prompts.MustGet("analysis.json", "extract-entities")
	prompt := prompts.Format(template, map[string]string{"Corpus": c.Text})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return result, &APICallError{Message: "entity extraction", Cause: err}
	}
	if err := schemas.ValidatePayload(schemas.EntityPayload, raw); err != nil {
		return result, &ParseError{Message: "entity payload rejected by schema", Cause: err}
	}

	var payload entityPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return result, &ParseError{Message: "failed to parse entity payload", Cause: err}
	}

	// Dedupe is case-sensitive exact match on the mention text: "Apple" and
	// "apple" are kept as distinct mentions.
	seen := make(map[string]struct{}, len(payload.Entities))
	for _, ent := range payload.Entities {
		text := strings.TrimSpace(ent.Text)
		if text == "" {
			continue
		}
		label := strings.ToUpper(strings.TrimSpace(ent.Label))
		if _, ok := entityLabels[label]; !ok {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		result.Entities = append(result.Entities, types.Entity{Text: text, Label: label})
	}

	return result, nil
}
