package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/tui/handlers"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.state

	if handled, cmd := handlers.HandleSystemMessages(s, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleConfirmationMessages(s, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleListMessages(s, msg); handled {
		return m, cmd
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := handlers.HandleGlobalKeys(s, msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch s.State {
	case constants.StateList:
		cmd = handlers.HandleListState(s, msg)
	case constants.StateSearch:
		cmd = handlers.HandleSearchState(s, msg)
	case constants.StateAddReminder, constants.StateEditReminder:
		cmd = handlers.HandleReminderFormState(s, msg)
	case constants.StateConfirmation:
		cmd = handlers.HandleConfirmationState(s, msg)
	case constants.StateAlert:
		cmd = handlers.HandleAlertState(s, msg)
	}
	return m, cmd
}
