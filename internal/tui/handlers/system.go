package handlers

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/logger"
	"github.com/julianstephens/fitlife/internal/reminders"
	"github.com/julianstephens/fitlife/internal/tui/state"
)

// ClockMsg redraws the header clock.
type ClockMsg time.Time

// ReconciledMsg reports a finished reconcile pass.
type ReconciledMsg struct {
	Commands int
	Failed   int
	Err      error
}

func TickClock() tea.Cmd {
	return tea.Tick(constants.ClockRefresh, func(t time.Time) tea.Msg {
		return ClockMsg(t)
	})
}

// Reconcile aligns scheduled notifications with the list in the background
// and waits for the resulting commands.
func Reconcile(mgr *reminders.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*constants.NotifyTaskTimeout)
		defer cancel()

		tasks, err := mgr.Reconcile(ctx)
		if err != nil {
			return ReconciledMsg{Err: err}
		}
		msg := ReconciledMsg{Commands: len(tasks)}
		for _, task := range tasks {
			if err := task.Wait(ctx); err != nil {
				msg.Failed++
			}
		}
		return msg
	}
}

// HandleSystemMessages handles window, clock, focus and reconcile messages.
func HandleSystemMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		if m.Form != nil {
			m.Form = m.Form.WithWidth(msg.Width - 4)
		}
		return true, nil

	case ClockMsg:
		prev := m.Now
		m.Now = m.Manager.Now()
		if prev.Truncate(time.Minute) != m.Now.Truncate(time.Minute) {
			m.Refresh()
		}
		return true, TickClock()

	case tea.FocusMsg:
		return true, Reconcile(m.Manager)

	case ReconciledMsg:
		if msg.Err != nil {
			m.SetAlert("Failed to sync notifications", msg.Err)
			return true, nil
		}
		if msg.Failed > 0 {
			logger.Warn("Some notification commands failed", "failed", msg.Failed, "total", msg.Commands)
			m.SetAlert("Failed to sync notifications", fmt.Errorf("%d of %d commands failed", msg.Failed, msg.Commands))
		}
		return true, nil
	}
	return false, nil
}
