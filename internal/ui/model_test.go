package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"storyscout/internal/config"
	"storyscout/internal/domain"
	"storyscout/internal/eventbus"
	"storyscout/internal/history"
)

func testRefIndex() *domain.RefIndex {
	return &domain.RefIndex{
		Title: "Design System",
		Entries: map[string]domain.IndexEntry{
			"button": {ID: "button", Name: "Button", Path: "Inputs/Button", Type: domain.TypeComponent},
			"button--primary": {
				ID: "button--primary", Name: "Primary", Path: "Inputs/Button/Primary",
				Type: domain.TypeStory, Parent: "button",
			},
			"guide": {ID: "guide", Name: "Guide", Path: "Guide", Type: domain.TypeDocs},
		},
	}
}

func newTestModel(t *testing.T) (*Model, *history.Store) {
	t.Helper()
	bus := eventbus.New()
	hist := history.NewStore(bus, 5)
	m := NewModel(bus, config.DefaultConfig(), hist)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, hist
}

func loadRef(m *Model, refID string, index *domain.RefIndex) {
	m.Update(EventMsg{Event: eventbus.RefLoadedEvent{
		RefID:      refID,
		Index:      index,
		EntryCount: len(index.Entries),
	}})
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRefLoadedBuildsTree(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	loadRef(m, "r1", testRefIndex())

	require.NotEmpty(t, m.rows)
	require.True(t, m.rows[0].IsRef)
	require.Len(t, m.items, 3)
	require.Contains(t, m.statusMsg, "r1")
}

func TestRefFailedSetsStatus(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.Update(EventMsg{Event: eventbus.RefFailedEvent{RefID: "broken"}})
	require.Contains(t, m.statusMsg, "broken")
}

func TestOpenStoryRecordsHistory(t *testing.T) {
	t.Parallel()

	m, hist := newTestModel(t)
	loadRef(m, "r1", testRefIndex())

	m.openStory("button--primary", "r1")

	list := hist.List()
	require.Len(t, list, 1)
	require.Equal(t, domain.Selection{StoryID: "button--primary", RefID: "r1"}, list[0])
	require.Contains(t, m.statusMsg, "Opened")
}

func TestOpenStoryUnknownEntry(t *testing.T) {
	t.Parallel()

	m, hist := newTestModel(t)
	loadRef(m, "r1", testRefIndex())

	m.openStory("vanished", "r1")
	require.Empty(t, hist.List())
	require.Contains(t, m.statusMsg, "vanished")
}

func TestOpenStoryRevealsItInTree(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	loadRef(m, "r1", testRefIndex())

	m.openStory("button--primary", "r1")

	row, ok := m.selectedRow()
	require.True(t, ok)
	require.Equal(t, "button--primary", row.Entry.ID)
	require.True(t, m.expanded["r1/button"], "ancestors expand so the story is visible")
}

func TestSlashFocusesSearch(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	loadRef(m, "r1", testRefIndex())

	m.Update(keyMsg("/"))
	require.True(t, m.searchBar.Focused())
}

func TestSlashRespectsDisabledShortcuts(t *testing.T) {
	t.Parallel()

	bus := eventbus.New()
	cfg := config.DefaultConfig()
	cfg.EnableShortcuts = false
	m := NewModel(bus, cfg, history.NewStore(bus, 5))

	m.Update(keyMsg("/"))
	require.False(t, m.searchBar.Focused())
}

func TestNavigationMovesSelection(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	loadRef(m, "r1", testRefIndex())

	m.Update(keyMsg("j"))
	require.Equal(t, 1, m.selected)
	m.Update(keyMsg("k"))
	require.Equal(t, 0, m.selected)
	m.Update(keyMsg("k"))
	require.Equal(t, 0, m.selected, "selection never leaves the list")
}

func TestExpandAndCollapseBranch(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	loadRef(m, "r1", testRefIndex())

	// Move onto the button component row and expand it
	for i, r := range m.rows {
		if r.Entry.ID == "button" {
			m.selected = i
		}
	}
	before := len(m.rows)
	m.Update(keyMsg("l"))
	require.Greater(t, len(m.rows), before, "expanding reveals child rows")

	m.Update(keyMsg("h"))
	require.Len(t, m.rows, before)
}

func TestEnterOnLeafOpensStory(t *testing.T) {
	t.Parallel()

	m, hist := newTestModel(t)
	loadRef(m, "r1", testRefIndex())

	for i, r := range m.rows {
		if r.Entry.ID == "guide" {
			m.selected = i
		}
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, hist.List(), 1)
	require.Equal(t, "guide", hist.List()[0].StoryID)
}

func TestRefreshPublishesRequest(t *testing.T) {
	t.Parallel()

	bus := eventbus.New()
	ch := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventRefreshRequested, func(e eventbus.DomainEvent) {
		ch <- e
	})

	m := NewModel(bus, config.DefaultConfig(), history.NewStore(bus, 5))
	m.Update(keyMsg("r"))

	require.Eventually(t, func() bool { return len(ch) == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestQuitKey(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestSearchNavigationOpensStory(t *testing.T) {
	t.Parallel()

	m, hist := newTestModel(t)
	loadRef(m, "r1", testRefIndex())

	m.Update(keyMsg("/"))
	for _, r := range "Buttn" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, hist.List(), 1)
	require.Equal(t, "button", hist.List()[0].StoryID)
	require.False(t, m.searchBar.Focused())
}

func TestViewRenders(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	loadRef(m, "r1", testRefIndex())

	out := m.View()
	require.Contains(t, out, "storyscout")
	require.Contains(t, out, "Design System")
}
