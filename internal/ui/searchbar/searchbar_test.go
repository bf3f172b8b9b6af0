package searchbar

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"storyscout/internal/domain"
	"storyscout/internal/index"
	"storyscout/internal/search"
)

func testItems() []index.Item {
	return []index.Item{
		{
			IndexEntry: domain.IndexEntry{ID: "button", Name: "Button", Path: "Inputs/Button", Type: domain.TypeComponent},
			RefID:      "r1",
		},
		{
			IndexEntry: domain.IndexEntry{
				ID: "button--primary", Name: "Primary", Path: "Inputs/Button/Primary",
				Type: domain.TypeStory, Parent: "button",
			},
			RefID: "r1",
		},
		{
			IndexEntry: domain.IndexEntry{ID: "checkbox", Name: "Checkbox", Path: "Inputs/Checkbox", Type: domain.TypeComponent},
			RefID:      "r1",
		},
	}
}

func manyItems(n int) []index.Item {
	items := make([]index.Item, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("Component %02d", i)
		items = append(items, index.Item{
			IndexEntry: domain.IndexEntry{
				ID:   fmt.Sprintf("comp-%02d", i),
				Name: name,
				Path: name,
				Type: domain.TypeComponent,
			},
			RefID: "r1",
		})
	}
	return items
}

func typeString(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func newFocused(t *testing.T, opts Options, items []index.Item) *Model {
	t.Helper()
	m := New(opts)
	m.SetItems(items)
	m.Focus()
	return m
}

func TestTypingOpensDropdown(t *testing.T) {
	t.Parallel()

	m := newFocused(t, Options{}, testItems())
	typeString(m, "Buttn")

	st := m.Render()
	require.True(t, st.Open)
	require.False(t, st.IsBrowsing)
	require.NotEmpty(t, st.Results.Results)
	require.Equal(t, "button", st.Results.Results[0].Item.ID)
}

func TestEmptyQueryBrowsesHistory(t *testing.T) {
	t.Parallel()

	ds := domain.NewDataset()
	ds.Add("r1", &domain.RefIndex{
		Entries: map[string]domain.IndexEntry{
			"button": {ID: "button", Name: "Button", Type: domain.TypeComponent},
			"button--primary": {
				ID: "button--primary", Name: "Primary", Type: domain.TypeStory, Parent: "button",
			},
		},
	})
	selections := []domain.Selection{{StoryID: "button--primary", RefID: "r1"}}

	m := newFocused(t, Options{
		History: func() []domain.Selection { return selections },
	}, nil)
	m.SetDataset(ds)

	st := m.Render()
	require.True(t, st.IsBrowsing)
	require.Len(t, st.Results.Results, 1)
	require.Equal(t, "button", st.Results.Results[0].Item.ID, "stories resolve to their parent")
}

func TestWhitespaceQueryStillBrowses(t *testing.T) {
	t.Parallel()

	m := newFocused(t, Options{}, testItems())
	typeString(m, "   ")

	st := m.Render()
	require.True(t, st.IsBrowsing)
	require.Empty(t, st.Results.Results)
}

func TestEscapeClearsThenCloses(t *testing.T) {
	t.Parallel()

	m := newFocused(t, Options{}, testItems())
	typeString(m, "button")
	require.Equal(t, "button", m.Value())

	// First escape clears the text but keeps focus and the menu
	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	require.Empty(t, m.Value())
	require.True(t, m.Focused())
	require.True(t, m.Render().Open)

	// Second escape closes the menu and drops focus
	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	require.False(t, m.Focused())
	require.False(t, m.Render().Open)
}

func TestEnterNavigatesAndKeepsText(t *testing.T) {
	t.Parallel()

	var gotStory, gotRef string
	m := newFocused(t, Options{
		Navigate: func(storyID, refID string) {
			gotStory, gotRef = storyID, refID
		},
	}, testItems())

	typeString(m, "Buttn")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, "button", gotStory)
	require.Equal(t, "r1", gotRef)
	require.False(t, m.Focused(), "choosing a result leaves the input")
	require.False(t, m.Render().Open)
	require.Equal(t, "Buttn", m.Value(), "the query survives the selection")
}

func TestBlurKeepsTextAndReopens(t *testing.T) {
	t.Parallel()

	m := newFocused(t, Options{}, testItems())
	typeString(m, "but")

	m.Blur()
	require.Equal(t, "but", m.Value(), "blur never erases typed text")
	require.True(t, m.Render().Open, "pending text keeps the menu open for refocus")
}

func TestBlurWithoutTextCloses(t *testing.T) {
	t.Parallel()

	m := newFocused(t, Options{}, testItems())
	m.Blur()
	require.Empty(t, m.Value())
	require.False(t, m.Render().Open)
}

func TestMouseUpWhileOpenIsNoop(t *testing.T) {
	t.Parallel()

	m := newFocused(t, Options{}, testItems())
	typeString(m, "but")

	_, handled := m.Update(tea.MouseMsg{Action: tea.MouseActionRelease})
	require.True(t, handled)
	require.Equal(t, "but", m.Value(), "clicking back into an open input keeps its text")
	require.True(t, m.Render().Open)
}

func TestArrowKeysMoveHighlight(t *testing.T) {
	t.Parallel()

	m := newFocused(t, Options{}, testItems())
	typeString(m, "Inputs")
	require.Greater(t, m.Render().Results.Len(), 1)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.Render().HighlightedIndex)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, m.Render().HighlightedIndex)
}

func TestExpandMarkerSelectionShowsAll(t *testing.T) {
	t.Parallel()

	m := newFocused(t, Options{}, manyItems(60))
	typeString(m, "Component")

	st := m.Render()
	require.Len(t, st.Results.Results, search.DefaultLimit)
	require.NotNil(t, st.Results.Expand)
	require.Equal(t, 60, st.Results.Expand.Total)
	require.Equal(t, 10, st.Results.Expand.More)

	// Choosing the marker reveals the rest instead of navigating
	m.Select(search.DefaultLimit)

	st = m.Render()
	require.Len(t, st.Results.Results, 60)
	require.Nil(t, st.Results.Expand)
	require.True(t, m.Focused(), "revealing is not a navigation")
	require.Equal(t, "Component", m.Value())
}

func TestEditingQueryResetsExpansion(t *testing.T) {
	t.Parallel()

	m := newFocused(t, Options{}, manyItems(60))
	typeString(m, "Component")
	m.Select(search.DefaultLimit)
	require.Nil(t, m.Render().Results.Expand)

	// Any edit returns to the truncated view
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	st := m.Render()
	require.Len(t, st.Results.Results, search.DefaultLimit)
	require.NotNil(t, st.Results.Expand)
}

func TestSelectResultByIndex(t *testing.T) {
	t.Parallel()

	var gotStory string
	m := newFocused(t, Options{
		Navigate: func(storyID, refID string) { gotStory = storyID },
	}, testItems())

	typeString(m, "Checkbox")
	m.Select(0)
	require.Equal(t, "checkbox", gotStory)
}

func TestInitialQuery(t *testing.T) {
	t.Parallel()

	m := New(Options{InitialQuery: "button"})
	m.SetItems(testItems())
	require.Equal(t, "button", m.Value())
}

func TestKeysIgnoredWhenUnfocused(t *testing.T) {
	t.Parallel()

	m := New(Options{})
	m.SetItems(testItems())

	_, handled := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	require.False(t, handled)
	require.Empty(t, m.Value())
}
