package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/logger"
	"github.com/julianstephens/fitlife/internal/reminders"
	"github.com/julianstephens/fitlife/internal/swipe"
	"github.com/julianstephens/fitlife/internal/tui/components/reminderlist"
	"github.com/julianstephens/fitlife/internal/tui/state"
)

func HandleListState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return cmd
}

// HandleListMessages turns row gestures into confirmations.
func HandleListMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case reminderlist.AddReminderMsg:
		return true, StartAdd(m)

	case reminderlist.SwipeMsg:
		row := m.Row(msg.ID)
		if row.Disabled() {
			return true, nil
		}
		if row.Nudge(msg.Delta) == swipe.ActionDelete {
			return true, confirmDelete(m, msg.ID)
		}
		return true, nil

	case reminderlist.TapMsg:
		row := m.Row(msg.ID)
		if row.Disabled() {
			return true, nil
		}
		row.Release()
		switch row.Tap(row.Revealed()) {
		case swipe.ActionDelete:
			return true, confirmDelete(m, msg.ID)
		case swipe.ActionEdit:
			return true, confirmEdit(m, msg.ID)
		}
		return true, nil

	case reminderlist.CloseRowMsg:
		closeRow(m, msg.ID)
		return true, nil

	case reminderlist.SelectionChangedMsg:
		closeRow(m, msg.From)
		return true, nil
	}
	return false, nil
}

func closeRow(m *state.Model, id string) {
	if row, ok := m.Rows[id]; ok && !row.Disabled() {
		row.Close()
	}
}

func confirmDelete(m *state.Model, id string) tea.Cmd {
	r, ok := m.Manager.Store().Get(id)
	row := m.Row(id)
	if !ok {
		row.Resolve(false)
		return nil
	}
	return func() tea.Msg {
		return constants.ConfirmationMsg{
			Title:   "Delete reminder",
			Message: fmt.Sprintf("Delete %q? Its notification will be cancelled.", r.Title),
			Action: func() tea.Cmd {
				if row.Resolve(true) != swipe.ActionDelete {
					return nil
				}
				return DeleteReminder(m, id)
			},
			Cancel: func() { row.Resolve(false) },
		}
	}
}

func confirmEdit(m *state.Model, id string) tea.Cmd {
	r, ok := m.Manager.Store().Get(id)
	row := m.Row(id)
	if !ok {
		row.Resolve(false)
		return nil
	}
	return func() tea.Msg {
		return constants.ConfirmationMsg{
			Title:   "Edit reminder",
			Message: fmt.Sprintf("Edit %q?", r.Title),
			Action: func() tea.Cmd {
				if row.Resolve(true) != swipe.ActionEdit {
					return nil
				}
				current, ok := m.Manager.Store().Get(id)
				if !ok {
					m.Refresh()
					return nil
				}
				return StartEdit(m, reminders.EditRequest{
					Reminder: current,
					Index:    m.Manager.Store().IndexOf(id),
				})
			},
			Cancel: func() { row.Resolve(false) },
		}
	}
}

// DeleteReminder removes the reminder and cancels its notification.
func DeleteReminder(m *state.Model, id string) tea.Cmd {
	removed, err := m.Manager.Delete(id)
	if err != nil {
		m.SetAlert("Failed to delete reminder", err)
		m.Refresh()
		return nil
	}
	logger.Debug("Deleted reminder", "id", removed.ID)
	m.Refresh()
	return nil
}
