package ui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"storyscout/internal/config"
	"storyscout/internal/domain"
	"storyscout/internal/eventbus"
	"storyscout/internal/history"
	"storyscout/internal/index"
	"storyscout/internal/ui/searchbar"
	"storyscout/internal/ui/tree"
	"storyscout/internal/ui/views"
)

// Model is the main application model
type Model struct {
	bus eventbus.EventBus
	cfg *config.Config

	dataset *domain.Dataset
	items   []index.Item
	rows    []tree.Row

	expanded map[string]bool
	selected int
	offset   int

	width  int
	height int

	keys      keyMap
	help      help.Model
	searchBar *searchbar.Model
	renderer  *views.Renderer
	histStore *history.Store
	pager     *PagerOps

	statusMsg string
}

// NewModel creates the application model
func NewModel(bus eventbus.EventBus, cfg *config.Config, histStore *history.Store) *Model {
	m := &Model{
		bus:       bus,
		cfg:       cfg,
		dataset:   domain.NewDataset(),
		expanded:  make(map[string]bool),
		keys:      defaultKeyMap(),
		help:      help.New(),
		renderer:  views.NewRenderer(),
		histStore: histStore,
		pager:     NewPagerOps(),
	}

	shortcut := ""
	if cfg.EnableShortcuts {
		shortcut = "/"
	}
	m.searchBar = searchbar.New(searchbar.Options{
		InitialQuery:  cfg.InitialQuery,
		ShortcutLabel: shortcut,
		History:       histStore.List,
		Navigate:      m.openStory,
	})
	return m
}

// Pager exposes the pager ops so main can wire the program reference
func (m *Model) Pager() *PagerOps {
	return m.pager
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampViewport()
		return m, nil

	case EventMsg:
		return m.handleEvent(msg.Event)

	case detailPagerMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Detail view failed: %v", msg.err)
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Help view failed: %v", msg.err)
		}
		return m, nil

	case tea.MouseMsg:
		if _, handled := m.searchBar.Update(msg); handled {
			return m, nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	switch ev := event.(type) {
	case eventbus.RefLoadedEvent:
		m.dataset.Add(ev.RefID, ev.Index)
		m.rebuildIndex()
		m.statusMsg = fmt.Sprintf("Loaded %s (%d entries)", ev.RefID, ev.EntryCount)

	case eventbus.RefFailedEvent:
		m.statusMsg = fmt.Sprintf("Failed to load %s: %v", ev.RefID, ev.Err)
		log.Printf("ref %s failed: %v", ev.RefID, ev.Err)

	case eventbus.ScanCompletedEvent:
		m.statusMsg = fmt.Sprintf("Scan finished, %d indexes found", ev.RefsFound)

	case eventbus.ErrorEvent:
		m.statusMsg = ev.Message

	case eventbus.ConfigSavedEvent:
		m.statusMsg = "Configuration saved"
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c quits even while typing in the search input
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.searchBar.Focused() {
		cmd, handled := m.searchBar.Update(msg)
		if handled {
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		if !m.cfg.EnableShortcuts {
			return m, nil
		}
		return m, m.searchBar.Focus()

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.Collapse):
		m.collapseSelected()

	case key.Matches(msg, m.keys.Expand):
		m.expandSelected()

	case key.Matches(msg, m.keys.Open):
		m.openSelected()

	case key.Matches(msg, m.keys.Refresh):
		m.statusMsg = "Reloading references..."
		m.bus.Publish(eventbus.RefreshRequestedEvent{})

	case key.Matches(msg, m.keys.Detail):
		return m, m.detailCmd()

	case key.Matches(msg, m.keys.Help):
		return m, m.helpCmd()

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	return m.renderer.Render(views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Search:         m.searchBar.Render(),
		SearchInput:    m.searchBar.TextInput().View(),
		Rows:           m.rows,
		SelectedIndex:  m.selected,
		ViewportOffset: m.offset,
		ViewportHeight: m.viewportHeight(),
		StatusMessage:  m.statusMsg,
		ShowBadges:     m.cfg.UISettings.ShowStatusBadges,
		ShowFullPaths:  m.cfg.UISettings.ShowFullPaths,
		HelpView:       m.help.View(m.keys),
	})
}

// rebuildIndex re-flattens the dataset after a reference changes
func (m *Model) rebuildIndex() {
	m.items = index.Build(m.dataset)
	m.searchBar.SetItems(m.items)
	m.searchBar.SetDataset(m.dataset)
	m.rows = tree.Build(m.dataset, m.expanded)
	m.clampViewport()
	m.bus.Publish(eventbus.IndexBuiltEvent{ItemCount: len(m.items)})
}

func (m *Model) viewportHeight() int {
	// title, search box, status bar, help line
	h := m.height - 6
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) moveSelection(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	m.clampViewport()
}

func (m *Model) clampViewport() {
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	vh := m.viewportHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+vh {
		m.offset = m.selected - vh + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) selectedRow() (tree.Row, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return tree.Row{}, false
	}
	return m.rows[m.selected], true
}

func (m *Model) collapseSelected() {
	row, ok := m.selectedRow()
	if !ok || row.IsRef {
		return
	}
	nodeKey := tree.NodeKey(row.RefID, row.Entry.ID)
	if row.HasKids && m.expanded[nodeKey] {
		delete(m.expanded, nodeKey)
		m.rows = tree.Build(m.dataset, m.expanded)
		m.clampViewport()
		return
	}
	// Already collapsed or a leaf: jump to the parent row
	if row.Entry.Parent != "" {
		for i, r := range m.rows {
			if r.RefID == row.RefID && r.Entry.ID == row.Entry.Parent {
				m.selected = i
				m.clampViewport()
				return
			}
		}
	}
}

func (m *Model) expandSelected() {
	row, ok := m.selectedRow()
	if !ok || row.IsRef || !row.HasKids {
		return
	}
	m.expanded[tree.NodeKey(row.RefID, row.Entry.ID)] = true
	m.rows = tree.Build(m.dataset, m.expanded)
	m.clampViewport()
}

func (m *Model) openSelected() {
	row, ok := m.selectedRow()
	if !ok || row.IsRef {
		return
	}
	if row.HasKids {
		nodeKey := tree.NodeKey(row.RefID, row.Entry.ID)
		if m.expanded[nodeKey] {
			delete(m.expanded, nodeKey)
		} else {
			m.expanded[nodeKey] = true
		}
		m.rows = tree.Build(m.dataset, m.expanded)
		m.clampViewport()
		return
	}
	m.openStory(row.Entry.ID, row.RefID)
}

// openStory records and announces a navigation. It is also the search
// bar's navigate callback.
func (m *Model) openStory(storyID, refID string) {
	entry, ok := m.dataset.Entry(refID, storyID)
	if !ok {
		m.statusMsg = fmt.Sprintf("Unknown story %s in %s", storyID, refID)
		return
	}
	m.histStore.Add(domain.Selection{StoryID: storyID, RefID: refID})
	m.bus.Publish(eventbus.StorySelectedEvent{StoryID: storyID, RefID: refID})
	m.statusMsg = fmt.Sprintf("Opened %s", entry.Name)
	m.revealInTree(storyID, refID)
}

// revealInTree expands the story's ancestor chain and moves the tree
// selection onto it
func (m *Model) revealInTree(storyID, refID string) {
	refIndex := m.dataset.Ref(refID)
	if refIndex == nil {
		return
	}
	parent := ""
	if entry, ok := refIndex.Entries[storyID]; ok {
		parent = entry.Parent
	}
	for parent != "" {
		m.expanded[tree.NodeKey(refID, parent)] = true
		entry, ok := refIndex.Entries[parent]
		if !ok {
			break
		}
		parent = entry.Parent
	}
	m.rows = tree.Build(m.dataset, m.expanded)
	for i, r := range m.rows {
		if !r.IsRef && r.RefID == refID && r.Entry.ID == storyID {
			m.selected = i
			break
		}
	}
	m.clampViewport()
}

func (m *Model) detailCmd() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok || row.IsRef {
		return nil
	}
	content := renderDetailContent(row.Entry, row.RefID, m.dataset.Ref(row.RefID))
	return func() tea.Msg {
		err := m.pager.ShowInPager(content)
		return detailPagerMsg{storyID: row.Entry.ID, err: err}
	}
}

func (m *Model) helpCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.pager.ShowInPager(renderHelpContent())
		return helpPagerMsg{err: err}
	}
}
