package search

import (
	"storyscout/internal/domain"
)

// Result caps: 50 results by default, 1000 once the user asks for the
// full list.
const (
	DefaultLimit  = 50
	ExpandedLimit = 1000
)

// ExpandMarker is the "show N more results" pseudo-result appended when
// the list is truncated. ShowAll reveals the full result set.
type ExpandMarker struct {
	Total   int
	More    int
	ShowAll func()
}

// ResultSet is the sequence shown to the user: ranked, deduplicated
// results plus at most one expand marker.
type ResultSet struct {
	Results []Result
	Expand  *ExpandMarker
}

// Len returns the number of entries including the expand marker
func (rs ResultSet) Len() int {
	n := len(rs.Results)
	if rs.Expand != nil {
		n++
	}
	return n
}

// Prepare turns raw ranked matches into the displayed result sequence:
// only components, docs and stories survive; matches whose parent has
// already produced a result are dropped so multiple stories under one
// component collapse to a single entry; the list is truncated to the
// cap with an expand marker carrying the remainder.
func Prepare(matches []Result, showAll bool, reveal func()) ResultSet {
	limit := DefaultLimit
	if showAll {
		limit = ExpandedLimit
	}

	// The seen set records each accepted result's own id while the
	// skip test checks the candidate's parent id: a match is dropped
	// only when its parent itself was accepted earlier in the ranking.
	seen := make(map[string]bool)
	var distinct []Result
	for _, match := range matches {
		switch match.Item.Type {
		case domain.TypeComponent, domain.TypeDocs, domain.TypeStory:
		default:
			continue
		}
		if match.Item.Parent != "" && seen[match.Item.Parent] {
			continue
		}
		seen[match.Item.ID] = true
		distinct = append(distinct, match)
	}

	total := len(distinct)
	if total <= limit {
		return ResultSet{Results: distinct}
	}

	set := ResultSet{Results: distinct[:limit]}
	if !showAll {
		set.Expand = &ExpandMarker{
			Total:   total,
			More:    total - limit,
			ShowAll: reveal,
		}
	}
	return set
}
