package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"storyscout/internal/domain"
	"storyscout/internal/search"
	"storyscout/internal/ui/searchbar"
)

// DropdownRenderer draws the search result menu
type DropdownRenderer struct {
	styles *Styles
}

// NewDropdownRenderer creates a dropdown renderer
func NewDropdownRenderer(styles *Styles) *DropdownRenderer {
	return &DropdownRenderer{styles: styles}
}

// Render draws the dropdown for the given widget state. Returns ""
// when the menu is closed.
func (d *DropdownRenderer) Render(state searchbar.RenderState, width int) string {
	if !state.Open {
		return ""
	}

	var b strings.Builder

	if state.IsBrowsing {
		if len(state.Results.Results) == 0 {
			b.WriteString(d.styles.Dim.Render("  Type to search, or browse a story to build history"))
			b.WriteString("\n")
			return b.String()
		}
		b.WriteString(d.styles.Dim.Render("  Last viewed"))
		b.WriteString("\n")
	} else if state.Results.Len() == 0 {
		b.WriteString(d.styles.Dim.Render(fmt.Sprintf("  No components found for %q", state.Query)))
		b.WriteString("\n")
		return b.String()
	}

	for i, result := range state.Results.Results {
		b.WriteString(d.renderRow(result, i == state.HighlightedIndex, width))
		b.WriteString("\n")
	}

	if marker := state.Results.Expand; marker != nil {
		row := fmt.Sprintf("  Show %d more results", marker.More)
		if state.HighlightedIndex == len(state.Results.Results) {
			b.WriteString(d.styles.SelectionBg.Render(row))
		} else {
			b.WriteString(d.styles.ExpandRow.Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderRow draws a single result line: type glyph, name with matched
// characters emphasized, dimmed path, status badge.
func (d *DropdownRenderer) renderRow(result search.Result, highlighted bool, width int) string {
	glyph := typeGlyph(result.Item.Type)
	name := d.emphasize(result.Item.Name, result.NameMatches)
	line := fmt.Sprintf(" %s %s", glyph, name)

	if path := result.Item.Path; path != "" {
		// Trim the path to what fits; the name always wins.
		budget := width - lipgloss.Width(line) - 4
		if budget > 3 {
			if len(path) > budget {
				path = path[:budget-1] + "…"
			}
			line += "  " + d.styles.ResultPath.Render(path)
		}
	}
	if badge := d.StatusBadge(result.Item.Status); badge != "" {
		line += " " + badge
	}

	if highlighted {
		return d.styles.SelectionBg.Render(line)
	}
	return line
}

// emphasize renders a name with the matched character positions bold
func (d *DropdownRenderer) emphasize(name string, positions []int) string {
	if len(positions) == 0 {
		return name
	}
	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}

	var b strings.Builder
	for i, r := range []rune(name) {
		if matched[i] {
			b.WriteString(d.styles.MatchChar.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StatusBadge returns the colored badge for a status value, or ""
func (d *DropdownRenderer) StatusBadge(status domain.StatusValue) string {
	switch status {
	case domain.StatusError:
		return d.styles.StatusError.Render("●")
	case domain.StatusWarn:
		return d.styles.StatusWarn.Render("●")
	case domain.StatusPending:
		return d.styles.StatusPending.Render("◌")
	case domain.StatusSuccess:
		return d.styles.StatusSuccess.Render("●")
	default:
		return ""
	}
}

// typeGlyph maps an item type to its tree glyph
func typeGlyph(t domain.ItemType) string {
	switch t {
	case domain.TypeComponent:
		return "▣"
	case domain.TypeDocs:
		return "✎"
	case domain.TypeStory:
		return "□"
	case domain.TypeGroup, domain.TypeRoot:
		return "▸"
	default:
		return " "
	}
}
