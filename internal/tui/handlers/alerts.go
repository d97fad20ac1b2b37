package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/tui/state"
)

// HandleAlertState dismisses the alert on any key and returns to where the
// user was, or to the list when that screen is gone.
func HandleAlertState(m *state.Model, msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); !ok {
		return nil
	}

	m.Alert = ""
	next := m.PreviousState
	switch next {
	case constants.StateAddReminder, constants.StateEditReminder, constants.StateConfirmation:
		if m.Form == nil {
			next = constants.StateList
		}
	case constants.StateAlert:
		next = constants.StateList
	}
	m.State = next
	return nil
}
