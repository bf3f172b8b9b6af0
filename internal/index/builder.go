package index

import (
	"sort"

	"storyscout/internal/domain"
)

// Item is a flattened, search-ready projection of an index entry
type Item struct {
	domain.IndexEntry
	RefID  string
	Status domain.StatusValue // most severe status, "" when none reported
}

// Build flattens the combined dataset into one item per entry of every
// reference with a non-empty index. It is a pure function of the
// dataset and must be re-run whenever the dataset changes.
//
// Status resolution: a story-level status takes the most severe value
// across its check results; otherwise the pre-aggregated group status
// for the id applies; otherwise the item carries no status.
func Build(ds *domain.Dataset) []Item {
	if ds == nil {
		return nil
	}

	var items []Item
	for _, ref := range ds.Refs {
		if ref.Index == nil || len(ref.Index.Entries) == 0 {
			continue
		}
		// Map iteration order is random; sort by id so the flattened
		// list is stable across rebuilds of the same dataset.
		ids := make([]string, 0, len(ref.Index.Entries))
		for id := range ref.Index.Entries {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			entry := ref.Index.Entries[id]
			items = append(items, Item{
				IndexEntry: entry,
				RefID:      ref.ID,
				Status:     ResolveStatus(ref.Index, entry.ID),
			})
		}
	}
	return items
}

// ResolveStatus picks the status for one entry id within a reference
func ResolveStatus(index *domain.RefIndex, id string) domain.StatusValue {
	if index == nil {
		return ""
	}
	if checks, ok := index.StoryStatus[id]; ok && len(checks) > 0 {
		values := make([]domain.StatusValue, 0, len(checks))
		for _, result := range checks {
			values = append(values, result.Value)
		}
		return domain.MostSevere(values...)
	}
	if value, ok := index.GroupStatus[id]; ok {
		return value
	}
	return ""
}
