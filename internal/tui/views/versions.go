package views

import (
	"fmt"

	"mcw/internal/core"
	"mcw/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PickVersionMsg is sent when the user picks a version to install
type PickVersionMsg struct {
	Project domain.Project
	Version domain.Version
}

// BackMsg is sent to return to the previous view
type BackMsg struct{}

// Versions is the version picker. It opens on the best-ranked subset of a
// project's versions and can be toggled to the full compatible list.
type Versions struct {
	project     domain.Project
	gameVersion string
	selection   core.Selection
	all         []domain.Version
	showAll     bool
	selected    int
	width       int
	height      int
}

// NewVersions creates a version picker over a ranked selection. all holds
// every version that survived loader and score filtering, best first.
func NewVersions(project domain.Project, gameVersion string, selection core.Selection, all []domain.Version) Versions {
	return Versions{
		project:     project,
		gameVersion: gameVersion,
		selection:   selection,
		all:         all,
		width:       80,
		height:      24,
	}
}

// visible returns the list currently shown
func (m Versions) visible() []domain.Version {
	if m.showAll {
		return m.all
	}
	return m.selection.Best
}

// Selected returns the currently selected index
func (m Versions) Selected() int {
	return m.selected
}

// ShowingAll reports whether the full list is shown
func (m Versions) ShowingAll() bool {
	return m.showAll
}

// VisibleCount returns the number of versions currently listed
func (m Versions) VisibleCount() int {
	return len(m.visible())
}

// SelectedVersion returns the currently selected version
func (m Versions) SelectedVersion() *domain.Version {
	list := m.visible()
	if len(list) == 0 || m.selected >= len(list) {
		return nil
	}
	return &list[m.selected]
}

// Init implements tea.Model
func (m Versions) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Versions) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m Versions) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return BackMsg{} }

	case "a":
		m.showAll = !m.showAll
		m.selected = 0
		return m, nil

	case "up", "k":
		if n := m.VisibleCount(); n > 0 {
			m.selected--
			if m.selected < 0 {
				m.selected = n - 1
			}
		}
		return m, nil

	case "down", "j":
		if n := m.VisibleCount(); n > 0 {
			m.selected++
			if m.selected >= n {
				m.selected = 0
			}
		}
		return m, nil

	case "enter", " ":
		version := m.SelectedVersion()
		if version != nil {
			return m, func() tea.Msg {
				return PickVersionMsg{Project: m.project, Version: *version}
			}
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m Versions) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("69")).
		MarginBottom(1)

	noticeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	itemStyle := lipgloss.NewStyle().
		PaddingLeft(2)

	selectedStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color("205")).
		Bold(true)

	detailStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		PaddingLeft(4)

	output := titleStyle.Render(fmt.Sprintf("Versions of %s", m.project.Title)) + "\n"

	if m.selection.FallbackNotice() {
		output += noticeStyle.Render(fmt.Sprintf(
			"No exact %s build; showing the closest compatible versions.", m.gameVersion)) + "\n\n"
	}

	list := m.visible()
	if len(list) == 0 {
		output += itemStyle.Render("No compatible versions.") + "\n"
		return output
	}

	if m.showAll {
		output += fmt.Sprintf("All %d compatible versions:\n\n", len(list))
	} else {
		output += fmt.Sprintf("Best %d of %d compatible versions:\n\n", len(list), len(m.all))
	}

	for i, v := range list {
		cursor := "  "
		style := itemStyle
		if i == m.selected {
			cursor = "▸ "
			style = selectedStyle
		}

		label := core.StripVersionFromTitle(v.Name, m.gameVersion)
		number := core.StripVersionFromNumber(v.VersionNumber, m.gameVersion)
		line := fmt.Sprintf("%s%s  %s  [%s]", cursor, number, label, v.Maturity)
		output += style.Render(line) + "\n"

		if i == m.selected {
			output += detailStyle.Render(fmt.Sprintf("game versions: %v", v.GameVersions)) + "\n"
			output += detailStyle.Render(fmt.Sprintf("published: %s", v.PublishedAt.Format("2006-01-02"))) + "\n"
		}
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)
	output += helpStyle.Render("↑/↓: navigate  enter: install  a: toggle full list  esc: back")

	return output
}
