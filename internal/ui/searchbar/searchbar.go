// Package searchbar drives the sidebar's fuzzy-search dropdown: it
// owns the text input, wires a combo.Container with the transition
// rules the explorer needs, and recomputes the visible result sequence
// on every event. When the query is empty the dropdown browses the
// last-viewed history instead of search results.
package searchbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storyscout/internal/domain"
	"storyscout/internal/index"
	"storyscout/internal/search"
	"storyscout/internal/ui/combo"
)

// RenderState is the widget's per-update output: everything a view
// needs to draw the input and the dropdown.
type RenderState struct {
	Query            string
	Results          search.ResultSet
	IsBrowsing       bool // true when showing last-viewed history
	HighlightedIndex int
	Open             bool
	Focused          bool
	ShortcutLabel    string
}

// Options configures a new search bar
type Options struct {
	// InitialQuery pre-seeds the input text.
	InitialQuery string
	// ShortcutLabel is the display-only hint for the focus shortcut
	// ("" hides it).
	ShortcutLabel string
	// History returns the last-viewed selections, most recent first.
	History func() []domain.Selection
	// Navigate is called with (storyID, refID) when a result is
	// chosen. A nil callback makes selection a no-op.
	Navigate func(storyID, refID string)
}

// Model is the search bar widget state
type Model struct {
	input     textinput.Model
	container *combo.Container
	engine    *search.Engine
	dataset   *domain.Dataset
	opts      Options

	showAll bool
	focused bool
	render  RenderState
}

// New creates a search bar
func New(opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Find components"
	ti.Prompt = ""
	ti.SetValue(opts.InitialQuery)
	ti.CursorEnd()

	m := &Model{
		input:  ti,
		opts:   opts,
		engine: search.NewEngine(nil),
	}
	m.container = combo.New(opts.InitialQuery, m.reduce)
	m.recompute()
	return m
}

// SetItems replaces the searchable item list. The engine re-indexes
// here and only here, not on every keystroke.
func (m *Model) SetItems(items []index.Item) {
	m.engine = search.NewEngine(items)
	m.recompute()
}

// SetDataset sets the combined dataset used to resolve history records
func (m *Model) SetDataset(ds *domain.Dataset) {
	m.dataset = ds
	m.recompute()
}

// Render returns the current render state
func (m *Model) Render() RenderState {
	return m.render
}

// Focused reports whether the input has keyboard focus
func (m *Model) Focused() bool {
	return m.focused
}

// Value returns the current input text
func (m *Model) Value() string {
	return m.input.Value()
}

// TextInput exposes the underlying input model for rendering
func (m *Model) TextInput() *textinput.Model {
	return &m.input
}

// Focus gives the input keyboard focus and opens the dropdown
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	cmd := m.input.Focus()
	m.container.InputChange(m.input.Value())
	m.recompute()
	return cmd
}

// Blur is called when focus leaves the input
func (m *Model) Blur() {
	m.container.Blur()
	m.sync()
	m.recompute()
}

// Update routes terminal events to the widget. It returns a command
// for cursor blinking and reports whether the event was consumed.
func (m *Model) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return nil, false
		}
		return m.handleKey(msg), true

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && m.focused {
			m.container.MouseUp()
			m.sync()
			m.recompute()
			return nil, true
		}
	}
	return nil, false
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.container.Escape()
		m.sync()
		m.recompute()
		return nil

	case "enter":
		m.container.SelectHighlighted()
		m.sync()
		m.recompute()
		return nil

	case "down", "ctrl+n":
		m.container.HighlightNext()
		m.recompute()
		return nil

	case "up", "ctrl+p":
		m.container.HighlightPrev()
		m.recompute()
		return nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != m.container.State().InputValue {
			m.container.InputChange(m.input.Value())
		}
		m.recompute()
		return cmd
	}
}

// Select activates the entry at the given index, as a mouse click on a
// dropdown row would.
func (m *Model) Select(idx int) {
	m.container.SetHighlighted(idx)
	m.container.SelectHighlighted()
	m.sync()
	m.recompute()
}

// reduce is the transition override consulted by the container on
// every proposed state change.
func (m *Model) reduce(current combo.State, change combo.Change) (combo.State, bool) {
	switch change.Trigger {
	case combo.TriggerInputBlur:
		// Keep the text the user typed; reopen the menu when there is
		// text and nothing selected, so refocusing shows results again.
		next := change.Next
		next.InputValue = current.InputValue
		next.IsOpen = current.InputValue != "" && current.SelectedIndex < 0
		next.SelectedIndex = -1
		return next, true

	case combo.TriggerInputMouseUp:
		// Refocusing the input must not reset the field.
		if current.IsOpen {
			return current, true
		}
		return change.Next, true

	case combo.TriggerEscape:
		if current.InputValue != "" {
			// First escape clears the text but keeps the menu open.
			next := change.Next
			next.InputValue = ""
			next.IsOpen = true
			next.SelectedIndex = -1
			return next, true
		}
		// Second escape drops focus and closes the menu.
		m.focused = false
		return change.Next, true

	case combo.TriggerSelectItem:
		if marker := m.expandAt(current.HighlightedIndex); marker != nil {
			// The marker is not a real selection: reveal and veto.
			if marker.ShowAll != nil {
				marker.ShowAll()
			}
			return current, false
		}
		result, ok := m.resultAt(current.HighlightedIndex)
		if !ok {
			return current, false
		}
		if m.opts.Navigate != nil {
			m.opts.Navigate(result.Item.ID, result.Item.RefID)
		}
		m.focused = false
		m.showAll = false
		next := change.Next
		next.InputValue = current.InputValue
		return next, true

	case combo.TriggerInputChange:
		m.showAll = false
		return change.Next, true
	}

	return change.Next, true
}

// resultAt returns the search result at a dropdown index
func (m *Model) resultAt(idx int) (search.Result, bool) {
	if idx < 0 || idx >= len(m.render.Results.Results) {
		return search.Result{}, false
	}
	return m.render.Results.Results[idx], true
}

// expandAt returns the expand marker if the dropdown index points at it
func (m *Model) expandAt(idx int) *search.ExpandMarker {
	if m.render.Results.Expand != nil && idx == len(m.render.Results.Results) {
		return m.render.Results.Expand
	}
	return nil
}

// sync pushes container state back into the text input
func (m *Model) sync() {
	st := m.container.State()
	if m.input.Value() != st.InputValue {
		m.input.SetValue(st.InputValue)
		m.input.CursorEnd()
	}
	if !m.focused && m.input.Focused() {
		m.input.Blur()
	}
}

// recompute rebuilds the result sequence from the current input
func (m *Model) recompute() {
	st := m.container.State()
	query := strings.TrimSpace(st.InputValue)

	var set search.ResultSet
	browsing := false
	if query == "" {
		// Empty query browses history; the engine is never invoked.
		if m.opts.History != nil {
			set.Results = search.LastViewed(m.opts.History(), m.dataset)
		}
		browsing = true
	} else {
		set = search.Prepare(m.engine.Search(query), m.showAll, func() {
			// The widget recomputes after every container event, so
			// flipping the flag is enough here.
			m.showAll = true
		})
	}

	m.container.SetItemCount(set.Len())
	st = m.container.State()

	m.render = RenderState{
		Query:            query,
		Results:          set,
		IsBrowsing:       browsing,
		HighlightedIndex: st.HighlightedIndex,
		Open:             st.IsOpen,
		Focused:          m.focused,
		ShortcutLabel:    m.opts.ShortcutLabel,
	}
}
