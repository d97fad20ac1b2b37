package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/models"
	"github.com/julianstephens/fitlife/internal/tui/state"
)

// HandleGlobalKeys handles global key presses. Apart from ctrl+c they only
// apply on the list, so forms and the search box keep their keystrokes.
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return true, tea.Quit
	}
	if m.State != constants.StateList {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.Keys.Tab):
		m.SelectTab(m.Tab.Next())
		return true, nil
	case key.Matches(msg, m.Keys.ShiftTab):
		m.SelectTab(m.Tab.Prev())
		return true, nil
	case key.Matches(msg, m.Keys.Today):
		m.SelectTab(models.TabToday)
		return true, nil
	case key.Matches(msg, m.Keys.Sched):
		m.SelectTab(models.TabScheduled)
		return true, nil
	case key.Matches(msg, m.Keys.All):
		m.SelectTab(models.TabAll)
		return true, nil
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	case key.Matches(msg, m.Keys.Search):
		return true, StartSearch(m)
	}
	return false, nil
}
