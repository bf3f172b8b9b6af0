package views

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"storyscout/internal/domain"
	"storyscout/internal/index"
	"storyscout/internal/search"
	"storyscout/internal/ui/searchbar"
)

func resultNamed(id, name string, typ domain.ItemType) search.Result {
	return search.Result{
		Item: index.Item{
			IndexEntry: domain.IndexEntry{ID: id, Name: name, Type: typ},
			RefID:      "r1",
		},
	}
}

func TestRenderClosedMenuIsEmpty(t *testing.T) {
	t.Parallel()

	d := NewDropdownRenderer(NewStyles())
	out := d.Render(searchbar.RenderState{Open: false}, 80)
	require.Empty(t, out)
}

func TestRenderNoResults(t *testing.T) {
	t.Parallel()

	d := NewDropdownRenderer(NewStyles())
	out := d.Render(searchbar.RenderState{Open: true, Query: "zzz"}, 80)
	require.Contains(t, out, `No components found for "zzz"`)
}

func TestRenderHistoryHeader(t *testing.T) {
	t.Parallel()

	d := NewDropdownRenderer(NewStyles())
	state := searchbar.RenderState{
		Open:       true,
		IsBrowsing: true,
		Results: search.ResultSet{Results: []search.Result{
			resultNamed("button", "Button", domain.TypeComponent),
		}},
	}
	out := d.Render(state, 80)
	require.Contains(t, out, "Last viewed")
	require.Contains(t, out, "Button")
}

func TestRenderEmptyHistoryHint(t *testing.T) {
	t.Parallel()

	d := NewDropdownRenderer(NewStyles())
	out := d.Render(searchbar.RenderState{Open: true, IsBrowsing: true}, 80)
	require.Contains(t, out, "Type to search")
}

func TestRenderExpandMarkerRow(t *testing.T) {
	t.Parallel()

	var results []search.Result
	for i := 0; i < 3; i++ {
		results = append(results, resultNamed(fmt.Sprintf("c%d", i), fmt.Sprintf("Comp %d", i), domain.TypeComponent))
	}
	state := searchbar.RenderState{
		Open: true,
		Results: search.ResultSet{
			Results: results,
			Expand:  &search.ExpandMarker{Total: 13, More: 10},
		},
	}

	d := NewDropdownRenderer(NewStyles())
	out := d.Render(state, 80)
	require.Contains(t, out, "Show 10 more results")
	require.Equal(t, 4, strings.Count(out, "\n"), "three result rows plus the marker")
}
