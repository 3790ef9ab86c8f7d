package views

import (
	"fmt"

	"mcw/internal/domain"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SearchResultsMsg contains search results
type SearchResultsMsg struct {
	Projects []domain.Project
}

// SearchErrorMsg indicates a search error
type SearchErrorMsg struct {
	Err error
}

// SearchSubmitMsg is sent when the user submits a search query
type SearchSubmitMsg struct {
	Query string
}

// SelectProjectMsg is sent when the user picks a project to inspect
type SelectProjectMsg struct {
	Project domain.Project
}

// Search is the catalog browsing view
type Search struct {
	gameVersion   string
	loader        string
	searchInput   textinput.Model
	searchFocused bool
	results       []domain.Project
	selected      int
	loading       bool
	err           error
	width         int
	height        int
}

// NewSearch creates a new search view for the given request defaults
func NewSearch(gameVersion, loader string) Search {
	ti := textinput.New()
	ti.Placeholder = "Search mods..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	return Search{
		gameVersion:   gameVersion,
		loader:        loader,
		searchInput:   ti,
		searchFocused: true,
		width:         80,
		height:        24,
	}
}

// SearchQuery returns the current search query
func (m Search) SearchQuery() string {
	return m.searchInput.Value()
}

// IsSearchFocused returns whether the search input is focused
func (m Search) IsSearchFocused() bool {
	return m.searchFocused
}

// ResultCount returns the number of search results
func (m Search) ResultCount() int {
	return len(m.results)
}

// Selected returns the currently selected result index
func (m Search) Selected() int {
	return m.selected
}

// SelectedProject returns the currently selected project
func (m Search) SelectedProject() *domain.Project {
	if len(m.results) == 0 || m.selected >= len(m.results) {
		return nil
	}
	return &m.results[m.selected]
}

// Init implements tea.Model
func (m Search) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Search) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SearchResultsMsg:
		m.results = msg.Projects
		m.loading = false
		m.selected = 0
		m.err = nil
		return m, nil

	case SearchErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil
	}

	if m.searchFocused {
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Search) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.Type {
		case tea.KeyEsc:
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil

		case tea.KeyEnter:
			query := m.SearchQuery()
			if query == "" {
				return m, nil
			}
			m.loading = true
			m.searchFocused = false
			m.searchInput.Blur()
			return m, func() tea.Msg {
				return SearchSubmitMsg{Query: query}
			}

		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "/":
		m.searchFocused = true
		m.searchInput.Focus()
		return m, nil

	case "up", "k":
		if len(m.results) > 0 {
			m.selected--
			if m.selected < 0 {
				m.selected = len(m.results) - 1
			}
		}
		return m, nil

	case "down", "j":
		if len(m.results) > 0 {
			m.selected++
			if m.selected >= len(m.results) {
				m.selected = 0
			}
		}
		return m, nil

	case "enter", " ":
		project := m.SelectedProject()
		if project != nil {
			return m, func() tea.Msg {
				return SelectProjectMsg{Project: *project}
			}
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m Search) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("69")).
		MarginBottom(1)

	requestStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	itemStyle := lipgloss.NewStyle().
		PaddingLeft(2)

	selectedStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color("205")).
		Bold(true)

	detailStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		PaddingLeft(4)

	loadingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	request := "any version"
	if m.gameVersion != "" {
		request = m.gameVersion
	}
	if m.loader != "" {
		request += " / " + m.loader
	}

	output := titleStyle.Render("Browse Mods") + "\n"
	output += requestStyle.Render(fmt.Sprintf("Target: %s", request)) + "\n\n"

	searchLabel := "Search: "
	if m.searchFocused {
		searchLabel = "Search (esc to exit): "
	}
	output += searchLabel + m.searchInput.View() + "\n\n"

	if m.loading {
		output += loadingStyle.Render("Searching...") + "\n"
		return output
	}

	if m.err != nil {
		output += errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
		return output
	}

	if len(m.results) == 0 {
		if m.SearchQuery() != "" {
			output += itemStyle.Render("No mods found.") + "\n"
		} else {
			output += itemStyle.Render("Enter a search term and press Enter.") + "\n"
		}
	} else {
		output += fmt.Sprintf("Found %d projects:\n\n", len(m.results))

		for i, project := range m.results {
			cursor := "  "
			style := itemStyle

			if i == m.selected {
				cursor = "▸ "
				style = selectedStyle
			}

			line := fmt.Sprintf("%s%s (%s)", cursor, project.Title, project.Provider)
			output += style.Render(line) + "\n"

			if i == m.selected {
				if project.Author != "" {
					output += detailStyle.Render(fmt.Sprintf("by %s", project.Author)) + "\n"
				}
				if project.Description != "" {
					output += detailStyle.Render(project.Description) + "\n"
				}
				output += detailStyle.Render(fmt.Sprintf("Downloads: %d", project.Downloads)) + "\n"
				output += "\n"
			}
		}
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)

	if m.searchFocused {
		output += helpStyle.Render("enter: search  esc: exit search")
	} else {
		output += helpStyle.Render("/: search  ↑/↓: navigate  enter: versions")
	}

	return output
}
