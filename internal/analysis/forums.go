package analysis

import (
	"sort"

	"github.com/jonathan/persona-agent/internal/types"
)

// CountForums ranks forums by record count over the combined record sequence
// and keeps the top topM. Ties break by first-encountered order. Each ranked
// forum's citation is the URL of the first record (in fetch order) belonging
// to it.
func CountForums(records []types.TextRecord, topM int) types.TraitResult {
	result := types.TraitResult{Kind: types.TraitForums}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	firstURL := make(map[string]string)
	for i, rec := range records {
		forum := rec.ForumName
		if forum == "" {
			continue
		}
		if _, ok := firstSeen[forum]; !ok {
			firstSeen[forum] = i
			firstURL[forum] = rec.SourceURL
		}
		counts[forum]++
	}

	forums := make([]string, 0, len(counts))
	for forum := range counts {
		forums = append(forums, forum)
	}
	sort.Slice(forums, func(i, j int) bool {
		if counts[forums[i]] != counts[forums[j]] {
			return counts[forums[i]] > counts[forums[j]]
		}
		return firstSeen[forums[i]] < firstSeen[forums[j]]
	})

	if topM > 0 && len(forums) > topM {
		forums = forums[:topM]
	}

	for _, forum := range forums {
		url := firstURL[forum]
		if url == "" {
			url = types.CitationNotFound
		}
		result.Forums = append(result.Forums, types.ForumCount{
			Forum:    forum,
			Count:    counts[forum],
			Citation: url,
		})
	}
	return result
}
