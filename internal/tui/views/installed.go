package views

import (
	"fmt"

	"mcw/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToggleModMsg is sent to enable/disable an installed mod
type ToggleModMsg struct {
	Record domain.InstalledRecord
}

// UninstallModMsg is sent to uninstall a mod
type UninstallModMsg struct {
	Record domain.InstalledRecord
}

// CheckUpdatesMsg is sent to run an update check over the installed list
type CheckUpdatesMsg struct{}

// Installed is the installed mods view
type Installed struct {
	records  []domain.InstalledRecord
	selected int
	width    int
	height   int
}

// NewInstalled creates a new installed mods view
func NewInstalled(records []domain.InstalledRecord) Installed {
	return Installed{
		records: records,
		width:   80,
		height:  24,
	}
}

// Selected returns the currently selected index
func (m Installed) Selected() int {
	return m.selected
}

// RecordCount returns the number of installed mods
func (m Installed) RecordCount() int {
	return len(m.records)
}

// SelectedRecord returns the currently selected record
func (m Installed) SelectedRecord() *domain.InstalledRecord {
	if len(m.records) == 0 || m.selected >= len(m.records) {
		return nil
	}
	return &m.records[m.selected]
}

// Init implements tea.Model
func (m Installed) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Installed) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m Installed) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "u" {
		return m, func() tea.Msg { return CheckUpdatesMsg{} }
	}

	if len(m.records) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.selected--
		if m.selected < 0 {
			m.selected = len(m.records) - 1
		}
		return m, nil

	case "down", "j":
		m.selected++
		if m.selected >= len(m.records) {
			m.selected = 0
		}
		return m, nil

	case " ":
		rec := m.SelectedRecord()
		if rec != nil {
			return m, func() tea.Msg {
				return ToggleModMsg{Record: *rec}
			}
		}
		return m, nil

	case "d", "delete":
		rec := m.SelectedRecord()
		if rec != nil {
			return m, func() tea.Msg {
				return UninstallModMsg{Record: *rec}
			}
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m Installed) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("69")).
		MarginBottom(1)

	itemStyle := lipgloss.NewStyle().
		PaddingLeft(2)

	selectedStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color("205")).
		Bold(true)

	disabledStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color("241")).
		Strikethrough(true)

	output := titleStyle.Render("Installed Mods") + "\n"

	if len(m.records) == 0 {
		output += itemStyle.Render("No mods installed yet.") + "\n"
		return output
	}

	for i, rec := range m.records {
		cursor := "  "
		style := itemStyle
		if !rec.Enabled {
			style = disabledStyle
		}
		if i == m.selected {
			cursor = "▸ "
			style = selectedStyle
		}

		state := "enabled"
		if !rec.Enabled {
			state = "disabled"
		}
		line := fmt.Sprintf("%s%s (%s, %s)", cursor, rec.Filename, rec.Provider, state)
		output += style.Render(line) + "\n"
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)
	output += helpStyle.Render("space: toggle  d: uninstall  u: check updates")

	return output
}
