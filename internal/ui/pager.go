package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"storyscout/internal/domain"
)

// PagerOps shows long-form content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager displays content in the ov pager, releasing the terminal
// for the duration.
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	reader := strings.NewReader(content)
	root, err := oviewer.NewRoot(reader)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// renderDetailContent builds the pager page for one story entry
func renderDetailContent(entry domain.IndexEntry, refID string, refIndex *domain.RefIndex) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(entry.Name))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("Path"), descStyle.Render(entry.Path)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("Type"), descStyle.Render(string(entry.Type))))
	b.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("ID"), descStyle.Render(entry.ID)))
	b.WriteString(fmt.Sprintf("  %s   %s\n", keyStyle.Render("Ref"), descStyle.Render(refID)))

	if refIndex != nil {
		if checks, ok := refIndex.StoryStatus[entry.ID]; ok && len(checks) > 0 {
			b.WriteString("\n")
			b.WriteString(sectionStyle.Render("Status checks"))
			b.WriteString("\n")

			names := make([]string, 0, len(checks))
			for name := range checks {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				result := checks[name]
				line := fmt.Sprintf("  %s: %s", name, result.Value)
				if result.Title != "" {
					line += " - " + result.Title
				}
				b.WriteString(descStyle.Render(line))
				b.WriteString("\n")
				if result.Description != "" {
					b.WriteString(descStyle.Render("    " + result.Description))
					b.WriteString("\n")
				}
			}
		}
	}

	return b.String()
}

// renderHelpContent generates the help page shown in the pager
func renderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("Storyscout Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("↑/↓, j/k"), descStyle.Render("Navigate up/down")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("←/→, h/l"), descStyle.Render("Collapse/expand branches")))
	help.WriteString(fmt.Sprintf("  %s     %s\n", keyStyle.Render("Enter"), descStyle.Render("Open story or toggle branch")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("/"), descStyle.Render("Focus the search input")))
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("Esc"), descStyle.Render("Clear search, then close it")))
	help.WriteString(fmt.Sprintf("  %s     %s\n", keyStyle.Render("Enter"), descStyle.Render("Open the highlighted result")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("i"), descStyle.Render("Story detail")))
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("r"), descStyle.Render("Reload references")))
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("?"), descStyle.Render("This help")))
	help.WriteString(fmt.Sprintf("  %s         %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	return help.String()
}
