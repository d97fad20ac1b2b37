package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/tui/state"
)

func StartSearch(m *state.Model) tea.Cmd {
	m.State = constants.StateSearch
	return m.Search.Focus()
}

// HandleSearchState feeds keystrokes to the search box and re-filters the
// list as the query changes. Enter keeps the query, esc clears it.
func HandleSearchState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.Keys.Clear):
			m.Search.SetValue("")
			m.Search.Blur()
			m.State = constants.StateList
			m.Refresh()
			return nil
		case key.Matches(msg, m.Keys.Accept):
			m.Search.Blur()
			m.State = constants.StateList
			return nil
		}
	}

	prev := m.Search.Value()
	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	if m.Search.Value() != prev {
		m.Refresh()
	}
	return cmd
}
