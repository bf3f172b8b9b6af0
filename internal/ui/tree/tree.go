// Package tree flattens the combined dataset into the visible sidebar
// rows: one header per reference, then that reference's story tree in
// path order with collapsed branches elided.
package tree

import (
	"sort"

	"storyscout/internal/domain"
	"storyscout/internal/index"
)

// Row is one visible line of the sidebar
type Row struct {
	RefID    string
	Entry    domain.IndexEntry
	Status   domain.StatusValue
	IsRef    bool // reference header row
	Depth    int
	Expanded bool
	HasKids  bool
}

// Build produces the visible rows for the dataset. expanded maps
// "refID/entryID" to the branch's expansion state; entries whose
// parent chain contains a collapsed node are hidden.
func Build(ds *domain.Dataset, expanded map[string]bool) []Row {
	if ds == nil {
		return nil
	}

	var rows []Row
	for _, ref := range ds.Refs {
		if ref.Index == nil || len(ref.Index.Entries) == 0 {
			continue
		}

		title := ref.Index.Title
		if title == "" {
			title = ref.ID
		}
		rows = append(rows, Row{
			RefID: ref.ID,
			IsRef: true,
			Entry: domain.IndexEntry{Name: title},
		})

		children := childrenByParent(ref.Index)
		rows = appendBranch(rows, ref.ID, ref.Index, children, "", 1, expanded)
	}
	return rows
}

// childrenByParent groups entry ids under their parent id, each group
// sorted by path then name for a stable tree.
func childrenByParent(refIndex *domain.RefIndex) map[string][]string {
	children := make(map[string][]string)
	for id, entry := range refIndex.Entries {
		children[entry.Parent] = append(children[entry.Parent], id)
	}
	for parent := range children {
		ids := children[parent]
		sort.Slice(ids, func(i, j int) bool {
			a, b := refIndex.Entries[ids[i]], refIndex.Entries[ids[j]]
			if a.Path != b.Path {
				return a.Path < b.Path
			}
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		})
		children[parent] = ids
	}
	return children
}

// appendBranch adds one level of the tree and recurses into expanded
// branches
func appendBranch(rows []Row, refID string, refIndex *domain.RefIndex, children map[string][]string, parent string, depth int, expanded map[string]bool) []Row {
	for _, id := range children[parent] {
		entry := refIndex.Entries[id]
		kids := len(children[id]) > 0
		open := expanded[NodeKey(refID, id)]
		rows = append(rows, Row{
			RefID:    refID,
			Entry:    entry,
			Status:   index.ResolveStatus(refIndex, id),
			Depth:    depth,
			Expanded: open,
			HasKids:  kids,
		})
		if kids && open {
			rows = appendBranch(rows, refID, refIndex, children, id, depth+1, expanded)
		}
	}
	return rows
}

// NodeKey identifies a tree node across references
func NodeKey(refID, entryID string) string {
	return refID + "/" + entryID
}
