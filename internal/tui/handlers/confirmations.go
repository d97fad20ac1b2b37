package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/tui/state"
)

// NewConfirmationForm builds the yes/no dialog bound to cf.
func NewConfirmationForm(m *state.Model, cf *state.ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(cf.Title).
				Description(cf.Message).
				Affirmative("Yes").
				Negative("No").
				Value(&cf.Confirmed),
		),
	).WithTheme(m.Theme).WithShowHelp(false)
}

// HandleConfirmationMessages handles messages related to confirmations
func HandleConfirmationMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case constants.ConfirmationMsg:
		m.ConfirmationForm = &state.ConfirmationFormModel{
			Title:   msg.Title,
			Message: msg.Message,
		}
		m.PendingAction = msg.Action
		m.PendingCancel = msg.Cancel
		m.Form = NewConfirmationForm(m, m.ConfirmationForm)
		m.State = constants.StateConfirmation
		return true, m.Form.Init()
	}
	return false, nil
}

// HandleConfirmationState handles the generic confirmation state
func HandleConfirmationState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		resolveConfirmation(m, false)
		return nil
	}

	var cmds []tea.Cmd
	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		cmds = append(cmds, resolveConfirmation(m, m.ConfirmationForm.Confirmed))
	case huh.StateAborted:
		resolveConfirmation(m, false)
	}
	return tea.Batch(cmds...)
}

// resolveConfirmation leaves the dialog and runs the pending action or its
// cancel hook. The state is reset first so the action may move elsewhere.
func resolveConfirmation(m *state.Model, confirmed bool) tea.Cmd {
	action, cancel := m.PendingAction, m.PendingCancel
	m.PendingAction = nil
	m.PendingCancel = nil
	m.ConfirmationForm = nil
	m.Form = nil
	m.State = constants.StateList

	if !confirmed {
		if cancel != nil {
			cancel()
		}
		return nil
	}
	if action != nil {
		return action()
	}
	return nil
}
