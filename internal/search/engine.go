package search

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"storyscout/internal/index"
)

// Score weights: a name hit counts far more than a path hit, so
// "Button" ranks components named Button above stories that merely
// live under a Button folder.
const (
	nameWeight = 0.7
	pathWeight = 0.3
)

// Result wraps a search item with its ranking score and the matched
// character positions within the item's name.
type Result struct {
	Item        index.Item
	Score       float64
	NameMatches []int
	PathMatches []int
}

// Engine is a searchable index over a flattened item list. Build one
// per item slice and reuse it across keystrokes; rebuild only when the
// underlying list changes.
type Engine struct {
	items []index.Item
	names itemField
	paths itemField
}

// itemField adapts one string field of the item list to fuzzy.Source
type itemField struct {
	items []index.Item
	field func(index.Item) string
}

func (f itemField) String(i int) string { return f.field(f.items[i]) }
func (f itemField) Len() int            { return len(f.items) }

// NewEngine builds a searchable index over the given items
func NewEngine(items []index.Item) *Engine {
	return &Engine{
		items: items,
		names: itemField{items: items, field: func(it index.Item) string { return it.Name }},
		paths: itemField{items: items, field: func(it index.Item) string { return it.Path }},
	}
}

// Items returns the indexed item list
func (e *Engine) Items() []index.Item {
	return e.items
}

// Search returns ranked matches for the query. Matching is fuzzy and
// case-insensitive. Callers must trim the query first; Search is never
// meant to see empty or whitespace-only input and returns nothing for
// an empty string.
func (e *Engine) Search(query string) []Result {
	if query == "" || len(e.items) == 0 {
		return nil
	}

	nameMatches := fuzzy.FindFrom(query, e.names)
	pathMatches := fuzzy.FindFrom(query, e.paths)

	merged := make(map[int]*Result)
	for _, m := range nameMatches {
		merged[m.Index] = &Result{
			Item:        e.items[m.Index],
			Score:       nameWeight * float64(m.Score),
			NameMatches: m.MatchedIndexes,
		}
	}
	for _, m := range pathMatches {
		if r, ok := merged[m.Index]; ok {
			r.Score += pathWeight * float64(m.Score)
			r.PathMatches = m.MatchedIndexes
			continue
		}
		merged[m.Index] = &Result{
			Item:        e.items[m.Index],
			Score:       pathWeight * float64(m.Score),
			PathMatches: m.MatchedIndexes,
		}
	}

	indexes := make([]int, 0, len(merged))
	for idx := range merged {
		indexes = append(indexes, idx)
	}

	// Highest score first; ties keep list order so equal matches stay
	// grouped by reference.
	sort.Slice(indexes, func(i, j int) bool {
		a, b := merged[indexes[i]], merged[indexes[j]]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return indexes[i] < indexes[j]
	})

	results := make([]Result, 0, len(indexes))
	for _, idx := range indexes {
		results = append(results, *merged[idx])
	}

	return results
}
