package tui_test

import (
	"errors"
	"testing"

	"mcw/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_InitialState(t *testing.T) {
	app := tui.NewApp(nil)

	assert.Equal(t, tui.ViewSearch, app.CurrentView())
	out := app.View()
	assert.Contains(t, out, "mcw")
	assert.Contains(t, out, "q: quit")
}

func TestApp_QuitKey(t *testing.T) {
	app := tui.NewApp(nil)

	// The search input starts focused; blur it first
	newModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated := newModel.(tui.App)

	_, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitIgnoredWhileTyping(t *testing.T) {
	app := tui.NewApp(nil)

	// Input is focused on start, so "q" is part of the query
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil {
		assert.NotEqual(t, tea.QuitMsg{}, cmd())
	}
}

func TestApp_ErrorShownInView(t *testing.T) {
	app := tui.NewApp(nil)

	newModel, _ := app.Update(tui.ErrorMsg{Err: errors.New("catalog unreachable")})
	updated := newModel.(tui.App)

	assert.Contains(t, updated.View(), "catalog unreachable")
}

func TestApp_WindowResize(t *testing.T) {
	app := tui.NewApp(nil)

	newModel, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	updated := newModel.(tui.App)

	assert.Equal(t, tui.ViewSearch, updated.CurrentView())
}

func TestApp_InstalledKeyReturnsCommand(t *testing.T) {
	app := tui.NewApp(nil)

	newModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated := newModel.(tui.App)

	// "i" schedules the installed-mods load as a command; it is not run here
	_, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	assert.NotNil(t, cmd)
}
