package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"storyscout/internal/domain"
	"storyscout/internal/index"
)

func matchFor(id string, typ domain.ItemType, parent string, score float64) Result {
	return Result{
		Item: index.Item{
			IndexEntry: domain.IndexEntry{ID: id, Name: id, Type: typ, Parent: parent},
			RefID:      "r1",
		},
		Score: score,
	}
}

func TestPrepareFiltersTypes(t *testing.T) {
	t.Parallel()

	matches := []Result{
		matchFor("button", domain.TypeComponent, "", 5),
		matchFor("inputs", domain.TypeGroup, "", 4),
		matchFor("root", domain.TypeRoot, "", 3),
		matchFor("guide", domain.TypeDocs, "", 2),
		matchFor("button--primary", domain.TypeStory, "other", 1),
	}

	set := Prepare(matches, false, nil)
	require.Len(t, set.Results, 3, "groups and roots never surface as results")
	require.Equal(t, "button", set.Results[0].Item.ID)
	require.Equal(t, "guide", set.Results[1].Item.ID)
	require.Equal(t, "button--primary", set.Results[2].Item.ID)
}

func TestPrepareDropsChildrenOfAcceptedParents(t *testing.T) {
	t.Parallel()

	matches := []Result{
		matchFor("button", domain.TypeComponent, "", 5),
		matchFor("button--primary", domain.TypeStory, "button", 4),
		matchFor("button--ghost", domain.TypeStory, "button", 3),
	}

	set := Prepare(matches, false, nil)
	require.Len(t, set.Results, 1, "stories collapse into their matched component")
	require.Equal(t, "button", set.Results[0].Item.ID)
}

func TestPrepareSiblingsWithoutParentBothSurvive(t *testing.T) {
	t.Parallel()

	// When the parent itself never matched, its stories do not shield
	// each other.
	matches := []Result{
		matchFor("button--primary", domain.TypeStory, "button", 5),
		matchFor("button--ghost", domain.TypeStory, "button", 4),
	}

	set := Prepare(matches, false, nil)
	require.Len(t, set.Results, 2)
}

func TestPrepareTruncatesWithExpandMarker(t *testing.T) {
	t.Parallel()

	var matches []Result
	for i := 0; i < 70; i++ {
		matches = append(matches, matchFor(fmt.Sprintf("c%03d", i), domain.TypeComponent, "", float64(70-i)))
	}

	revealed := false
	set := Prepare(matches, false, func() { revealed = true })
	require.Len(t, set.Results, DefaultLimit)
	require.NotNil(t, set.Expand)
	require.Equal(t, 70, set.Expand.Total)
	require.Equal(t, 20, set.Expand.More)
	require.Equal(t, DefaultLimit+1, set.Len())

	set.Expand.ShowAll()
	require.True(t, revealed)
}

func TestPrepareShowAllLiftsCap(t *testing.T) {
	t.Parallel()

	var matches []Result
	for i := 0; i < 70; i++ {
		matches = append(matches, matchFor(fmt.Sprintf("c%03d", i), domain.TypeComponent, "", float64(70-i)))
	}

	set := Prepare(matches, true, nil)
	require.Len(t, set.Results, 70)
	require.Nil(t, set.Expand, "expanded mode never shows the marker")
}

func TestPrepareShowAllStillBounded(t *testing.T) {
	t.Parallel()

	var matches []Result
	for i := 0; i < ExpandedLimit+5; i++ {
		matches = append(matches, matchFor(fmt.Sprintf("c%04d", i), domain.TypeComponent, "", 1))
	}

	set := Prepare(matches, true, nil)
	require.Len(t, set.Results, ExpandedLimit)
	require.Nil(t, set.Expand)
}

func TestPrepareUnderCapHasNoMarker(t *testing.T) {
	t.Parallel()

	matches := []Result{matchFor("button", domain.TypeComponent, "", 1)}
	set := Prepare(matches, false, nil)
	require.Len(t, set.Results, 1)
	require.Nil(t, set.Expand)
}
