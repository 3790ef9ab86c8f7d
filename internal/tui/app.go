package tui

import (
	"context"
	"fmt"

	"mcw/internal/core"
	"mcw/internal/domain"
	"mcw/internal/source"
	"mcw/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewType represents the screens of the TUI
type ViewType int

const (
	ViewSearch ViewType = iota
	ViewVersions
	ViewPlan
	ViewInstalled
)

// ErrorMsg is sent when a background operation fails
type ErrorMsg struct {
	Err error
}

// versionsLoadedMsg carries a project's ranked version list
type versionsLoadedMsg struct {
	project   domain.Project
	selection core.Selection
	all       []domain.Version
}

// planReadyMsg carries a prepared install plan
type planReadyMsg struct {
	plan *core.InstallPlan
}

// installDoneMsg signals a finished install
type installDoneMsg struct{}

// installedLoadedMsg carries the installed records list
type installedLoadedMsg struct {
	records []domain.InstalledRecord
}

// App is the main TUI application model. It owns navigation and runs the
// service calls the sub-views ask for as tea commands.
type App struct {
	service     *core.Service
	keys        *KeyMap
	currentView ViewType
	width       int
	height      int
	err         error
	status      string

	search    tea.Model
	versions  tea.Model
	plan      tea.Model
	installed tea.Model
}

// NewApp creates a new TUI application
func NewApp(service *core.Service) App {
	var gameVersion, loader string
	if service != nil {
		gameVersion = service.Config().GameVersion
		loader = service.Config().Loader
	}

	return App{
		service:     service,
		keys:        NewKeyMap(""),
		currentView: ViewSearch,
		search:      views.NewSearch(gameVersion, loader),
		width:       80,
		height:      24,
	}
}

// CurrentView returns the current view type
func (a App) CurrentView() ViewType {
	return a.currentView
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return a.search.Init()
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.updateCurrentView(msg)

	case ErrorMsg:
		a.err = msg.Err
		return a, nil

	case views.SearchSubmitMsg:
		return a, a.searchCmd(msg.Query)

	case views.SelectProjectMsg:
		return a, a.loadVersionsCmd(msg.Project)

	case versionsLoadedMsg:
		a.err = nil
		a.versions = views.NewVersions(msg.project, a.requestGameVersion(), msg.selection, msg.all)
		a.currentView = ViewVersions
		return a, nil

	case views.PickVersionMsg:
		return a, a.prepareCmd(msg.Project)

	case planReadyMsg:
		a.err = nil
		a.plan = views.NewPlan(msg.plan, a.requestGameVersion())
		a.currentView = ViewPlan
		return a, nil

	case views.ConfirmInstallMsg:
		a.status = "Installing..."
		return a, a.installCmd(msg.Plan, msg.IncludeOptional)

	case installDoneMsg:
		a.status = "Installed."
		return a, a.loadInstalledCmd()

	case installedLoadedMsg:
		a.err = nil
		a.installed = views.NewInstalled(msg.records)
		a.currentView = ViewInstalled
		return a, nil

	case views.ToggleModMsg:
		return a, a.toggleCmd(msg.Record)

	case views.UninstallModMsg:
		return a, a.uninstallCmd(msg.Record)

	case views.BackMsg:
		a.goBack()
		return a, nil
	}

	return a.updateCurrentView(msg)
}

func (a *App) goBack() {
	switch a.currentView {
	case ViewVersions, ViewInstalled:
		a.currentView = ViewSearch
	case ViewPlan:
		a.currentView = ViewVersions
	}
}

// requestGameVersion returns the configured game version, or empty
func (a App) requestGameVersion() string {
	if a.service == nil {
		return ""
	}
	return a.service.Config().GameVersion
}

func (a App) requestLoader() string {
	if a.service == nil {
		return ""
	}
	return a.service.Config().Loader
}

func (a App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit is global except while typing a search query
	typing := false
	if s, ok := a.search.(views.Search); ok {
		typing = a.currentView == ViewSearch && s.IsSearchFocused()
	}
	if a.keys.IsQuit(msg) && !typing {
		return a, tea.Quit
	}

	if msg.String() == "i" && a.currentView == ViewSearch && !typing {
		return a, a.loadInstalledCmd()
	}

	return a.updateCurrentView(msg)
}

func (a App) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case ViewSearch:
		a.search, cmd = a.search.Update(msg)
	case ViewVersions:
		if a.versions != nil {
			a.versions, cmd = a.versions.Update(msg)
		}
	case ViewPlan:
		if a.plan != nil {
			a.plan, cmd = a.plan.Update(msg)
		}
	case ViewInstalled:
		if a.installed != nil {
			a.installed, cmd = a.installed.Update(msg)
		}
	}

	return a, cmd
}

// View implements tea.Model
func (a App) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	header := titleStyle.Render("mcw - Minecraft Mod Manager")

	content := a.renderCurrentView()

	if a.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		content = errStyle.Render(fmt.Sprintf("Error: %v", a.err)) + "\n\n" + content
	}

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)
	footer := footerStyle.Render(a.status + "  q: quit")

	return fmt.Sprintf("%s\n%s\n\n%s", header, content, footer)
}

func (a App) renderCurrentView() string {
	switch a.currentView {
	case ViewSearch:
		return a.search.View()
	case ViewVersions:
		if a.versions != nil {
			return a.versions.View()
		}
	case ViewPlan:
		if a.plan != nil {
			return a.plan.View()
		}
	case ViewInstalled:
		if a.installed != nil {
			return a.installed.View()
		}
	}
	return ""
}

// searchCmd queries the default catalog
func (a App) searchCmd(query string) tea.Cmd {
	svc := a.service
	gameVersion := a.requestGameVersion()
	loader := a.requestLoader()
	return func() tea.Msg {
		provider := domain.Provider(svc.Config().DefaultCatalog)
		projects, err := svc.Search(context.Background(), provider, source.SearchQuery{
			Query:       query,
			GameVersion: gameVersion,
			Loader:      loader,
			Type:        domain.ProjectMod,
		})
		if err != nil {
			return views.SearchErrorMsg{Err: err}
		}
		return views.SearchResultsMsg{Projects: projects}
	}
}

// loadVersionsCmd fetches and ranks a project's versions
func (a App) loadVersionsCmd(project domain.Project) tea.Cmd {
	svc := a.service
	gameVersion := a.requestGameVersion()
	loader := a.requestLoader()
	return func() tea.Msg {
		catalog, err := svc.GetCatalog(project.Provider)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		candidates, err := catalog.GetVersions(context.Background(), project.ID, gameVersion, loader)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		sel := core.SelectVersions(candidates, gameVersion, loader, project.Type)

		// Full list for the toggle: everything compatible, display order
		var all []domain.Version
		for _, v := range candidates {
			if !domain.LoaderMatches(v.Loaders, loader, project.Type) {
				continue
			}
			if core.ScoreGameVersions(v.GameVersions, gameVersion) == 0 {
				continue
			}
			all = append(all, v)
		}
		core.SortVersions(all)

		return versionsLoadedMsg{project: project, selection: sel, all: all}
	}
}

// prepareCmd builds the install plan for the project's best version
func (a App) prepareCmd(project domain.Project) tea.Cmd {
	svc := a.service
	gameVersion := a.requestGameVersion()
	loader := a.requestLoader()
	return func() tea.Msg {
		plan, err := svc.Installer().Prepare(context.Background(), core.InstallRequest{
			Provider:    project.Provider,
			ProjectID:   project.ID,
			GameVersion: gameVersion,
			Loader:      loader,
		})
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return planReadyMsg{plan: plan}
	}
}

func (a App) installCmd(plan *core.InstallPlan, includeOptional bool) tea.Cmd {
	svc := a.service
	return func() tea.Msg {
		if err := svc.Installer().Execute(context.Background(), plan, includeOptional, nil); err != nil {
			return ErrorMsg{Err: err}
		}
		return installDoneMsg{}
	}
}

func (a App) loadInstalledCmd() tea.Cmd {
	svc := a.service
	return func() tea.Msg {
		records, err := svc.InstalledMods()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return installedLoadedMsg{records: records}
	}
}

func (a App) toggleCmd(rec domain.InstalledRecord) tea.Cmd {
	svc := a.service
	return func() tea.Msg {
		if err := svc.DB().SetEnabled(rec.Filename, !rec.Enabled); err != nil {
			return ErrorMsg{Err: err}
		}
		records, err := svc.InstalledMods()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return installedLoadedMsg{records: records}
	}
}

func (a App) uninstallCmd(rec domain.InstalledRecord) tea.Cmd {
	svc := a.service
	return func() tea.Msg {
		if err := svc.Installer().Uninstall(&rec); err != nil {
			return ErrorMsg{Err: err}
		}
		records, err := svc.InstalledMods()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return installedLoadedMsg{records: records}
	}
}

// Run starts the TUI application
func Run(service *core.Service) error {
	app := NewApp(service)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
