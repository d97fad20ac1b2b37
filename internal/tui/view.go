package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/models"
)

const clockFormat = "Mon " + constants.DisplayDateFormat + " 15:04:05"

func (m Model) View() string {
	s := m.state
	if s.Quitting {
		return ""
	}

	var content string
	switch s.State {
	case constants.StateAddReminder, constants.StateEditReminder:
		content = m.viewForm()
	case constants.StateConfirmation:
		content = m.viewDialog(dialogStyle, s.Form.View())
	case constants.StateAlert:
		content = m.viewDialog(alertStyle, fmt.Sprintf("%s\n\n%s", dangerStyle.Render(s.Alert), "Press any key to continue."))
	default:
		content = s.List.View()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewTabs(),
		s.Search.View(),
		"",
		content,
		s.Help.View(m),
	)
	return docStyle.Render(ui)
}

func (m Model) viewHeader() string {
	s := m.state
	title := headerStyle.Render(constants.AppName + " reminders")
	clock := clockStyle.Render(s.Now.Format(clockFormat))
	gap := s.Width - 4 - lipgloss.Width(title) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, lipgloss.NewStyle().Width(gap).Render(""), clock)
}

func (m Model) viewTabs() string {
	s := m.state
	tabs := make([]string, 0, len(models.Tabs))
	for _, tab := range models.Tabs {
		label := fmt.Sprintf("%s (%d)", tab.Title(), s.Count(tab))
		if tab == s.Tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewForm() string {
	s := m.state
	if s.Form == nil {
		return ""
	}
	if s.FormError == "" {
		return s.Form.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, dangerStyle.Render("✗ "+s.FormError), s.Form.View())
}

func (m Model) viewDialog(style lipgloss.Style, body string) string {
	s := m.state
	width := max(s.Width-4, lipgloss.Width(body)+6)
	height := max(s.Height-10, lipgloss.Height(body)+4)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, style.Render(body))
}
