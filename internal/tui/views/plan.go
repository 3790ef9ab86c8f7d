package views

import (
	"fmt"

	"mcw/internal/core"
	"mcw/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmInstallMsg is sent when the user confirms the plan
type ConfirmInstallMsg struct {
	Plan            *core.InstallPlan
	IncludeOptional bool
}

// Plan is the install confirmation view: the chosen target, every resolved
// dependency grouped by classification, and the warnings the resolver
// collected on the way.
type Plan struct {
	plan            *core.InstallPlan
	gameVersion     string
	includeOptional bool
	width           int
	height          int
}

// NewPlan creates a plan confirmation view
func NewPlan(plan *core.InstallPlan, gameVersion string) Plan {
	return Plan{
		plan:        plan,
		gameVersion: gameVersion,
		width:       80,
		height:      24,
	}
}

// IncludeOptional reports whether optional dependencies are selected
func (m Plan) IncludeOptional() bool {
	return m.includeOptional
}

// Init implements tea.Model
func (m Plan) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Plan) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m Plan) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return BackMsg{} }

	case "o":
		m.includeOptional = !m.includeOptional
		return m, nil

	case "enter", "y":
		plan := m.plan
		include := m.includeOptional
		return m, func() tea.Msg {
			return ConfirmInstallMsg{Plan: plan, IncludeOptional: include}
		}
	}

	return m, nil
}

// View implements tea.Model
func (m Plan) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("69")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true)

	itemStyle := lipgloss.NewStyle().
		PaddingLeft(2)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		PaddingLeft(2)

	warnStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		PaddingLeft(2)

	target := m.plan.Target
	output := titleStyle.Render(fmt.Sprintf("Install %s", m.plan.Project.Title)) + "\n"
	output += itemStyle.Render(fmt.Sprintf("version %s",
		core.StripVersionFromNumber(target.VersionNumber, m.gameVersion))) + "\n"
	if m.plan.Selection.FallbackNotice() {
		output += warnStyle.Render(fmt.Sprintf(
			"closest match for %s, not an exact build", m.gameVersion)) + "\n"
	}
	output += "\n"

	var required, optional, installed []domain.ResolvedDependency
	for _, n := range m.plan.Deps.Nodes {
		switch {
		case n.AlreadyInstalled:
			installed = append(installed, n)
		case n.Kind == domain.DependencyOptional:
			optional = append(optional, n)
		default:
			required = append(required, n)
		}
	}

	if len(required) > 0 {
		output += sectionStyle.Render("Required dependencies:") + "\n"
		for _, n := range required {
			output += itemStyle.Render("+ "+n.Project.Title) + "\n"
		}
		output += "\n"
	}

	if len(optional) > 0 {
		marker := "[ ]"
		if m.includeOptional {
			marker = "[x]"
		}
		output += sectionStyle.Render(fmt.Sprintf("Optional dependencies %s:", marker)) + "\n"
		for _, n := range optional {
			output += itemStyle.Render("? "+n.Project.Title) + "\n"
		}
		output += "\n"
	}

	if len(installed) > 0 {
		output += sectionStyle.Render("Already installed:") + "\n"
		for _, n := range installed {
			output += dimStyle.Render("= " + n.Project.Title) + "\n"
		}
		output += "\n"
	}

	if len(m.plan.Deps.Warnings) > 0 {
		output += sectionStyle.Render("Warnings:") + "\n"
		for _, w := range m.plan.Deps.Warnings {
			output += warnStyle.Render("! "+w.Error()) + "\n"
		}
		output += "\n"
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)
	output += helpStyle.Render("enter: install  o: toggle optional  esc: back")

	return output
}
