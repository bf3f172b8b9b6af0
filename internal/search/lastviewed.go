package search

import (
	"storyscout/internal/domain"
	"storyscout/internal/index"
)

// LastViewed resolves the last-viewed history against the combined
// dataset, shown when the query is empty. A story resolves to its
// parent component; docs and other entries resolve to themselves.
// Records whose reference or story no longer exist are skipped, and
// duplicates (same reference and resolved entry) collapse to the
// first occurrence so history order is preserved.
func LastViewed(selections []domain.Selection, ds *domain.Dataset) []Result {
	if ds == nil {
		return nil
	}

	type key struct {
		refID string
		id    string
	}
	seen := make(map[key]bool)

	var results []Result
	for _, sel := range selections {
		entry, ok := ds.Entry(sel.RefID, sel.StoryID)
		if !ok {
			continue
		}
		if entry.Type == domain.TypeStory && entry.Parent != "" {
			parent, ok := ds.Entry(sel.RefID, entry.Parent)
			if !ok {
				continue
			}
			entry = parent
		}

		k := key{refID: sel.RefID, id: entry.ID}
		if seen[k] {
			continue
		}
		seen[k] = true

		results = append(results, Result{
			Item: index.Item{
				IndexEntry: entry,
				RefID:      sel.RefID,
				Status:     index.ResolveStatus(ds.Ref(sel.RefID), entry.ID),
			},
		})
	}
	return results
}
