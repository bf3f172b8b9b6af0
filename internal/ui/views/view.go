package views

import (
	"fmt"
	"strings"

	"storyscout/internal/domain"
	"storyscout/internal/ui/searchbar"
	"storyscout/internal/ui/tree"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Search         searchbar.RenderState
	SearchInput    string // rendered text input
	Rows           []tree.Row
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	StatusMessage  string
	ShowBadges     bool
	ShowFullPaths  bool
	HelpView       string
}

// Renderer handles all view rendering
type Renderer struct {
	styles   *Styles
	dropdown *DropdownRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:   styles,
		dropdown: NewDropdownRenderer(styles),
	}
}

// Dropdown exposes the dropdown renderer
func (r *Renderer) Dropdown() *DropdownRenderer {
	return r.dropdown
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.styles.Title.Render("storyscout"))
	content.WriteString("\n")

	content.WriteString(r.renderSearch(state))
	content.WriteString("\n")

	if state.Search.Open && state.Search.Focused {
		content.WriteString(r.dropdown.Render(state.Search, state.Width))
	} else {
		content.WriteString(r.renderTree(state))
	}

	if state.StatusMessage != "" {
		content.WriteString(r.styles.StatusBar.Render(state.StatusMessage))
		content.WriteString("\n")
	}
	if state.HelpView != "" {
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	return r.styles.Main.Render(content.String())
}

// renderSearch draws the search input box with its shortcut hint
func (r *Renderer) renderSearch(state ViewState) string {
	box := r.styles.SearchBox
	if state.Search.Focused {
		box = r.styles.SearchFocused
	}

	line := state.SearchInput
	if !state.Search.Focused && state.Search.ShortcutLabel != "" {
		line += "  " + r.styles.Shortcut.Render(state.Search.ShortcutLabel)
	}

	width := state.Width - 4
	if width > 0 {
		box = box.Width(width)
	}
	return box.Render(line)
}

// renderTree draws the visible slice of the story tree
func (r *Renderer) renderTree(state ViewState) string {
	if len(state.Rows) == 0 {
		return r.styles.Dim.Render("  No stories loaded") + "\n"
	}

	start := state.ViewportOffset
	if start > len(state.Rows) {
		start = len(state.Rows)
	}
	end := len(state.Rows)
	if state.ViewportHeight > 0 && start+state.ViewportHeight < end {
		end = start + state.ViewportHeight
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(r.renderRow(state, i))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow draws one sidebar row
func (r *Renderer) renderRow(state ViewState, i int) string {
	row := state.Rows[i]

	if row.IsRef {
		header := fmt.Sprintf("▾ %s", row.Entry.Name)
		if i == state.SelectedIndex {
			return r.styles.SelectionBg.Render(header)
		}
		return r.styles.RefHeader.Render(header)
	}

	indent := strings.Repeat("  ", row.Depth)
	glyph := typeGlyph(row.Entry.Type)
	if row.HasKids {
		if row.Expanded {
			glyph = "▾"
		} else {
			glyph = "▸"
		}
	}

	line := fmt.Sprintf("%s%s %s", indent, glyph, row.Entry.Name)
	if state.ShowFullPaths && row.Entry.Path != "" {
		line += "  " + r.styles.ResultPath.Render(row.Entry.Path)
	}
	if state.ShowBadges {
		if badge := r.dropdown.StatusBadge(row.Status); badge != "" {
			line += " " + badge
		}
	}

	if i == state.SelectedIndex {
		return r.styles.SelectionBg.Render(line)
	}
	if row.Entry.Type == domain.TypeGroup || row.Entry.Type == domain.TypeRoot {
		return r.styles.TreeGroup.Render(line)
	}
	return line
}
