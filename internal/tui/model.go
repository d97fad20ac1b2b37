package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/tui/handlers"
	"github.com/julianstephens/fitlife/internal/tui/state"
)

type Options = state.Options

// Model is the bubbletea model for the reminders screen. Handlers mutate the
// shared state through the pointer.
type Model struct {
	state *state.Model
}

func New(opts Options) Model {
	return Model{state: state.New(opts)}
}

// State exposes the shared state, mainly for tests.
func (m Model) State() *state.Model {
	return m.state
}

func (m Model) ShortHelp() []key.Binding {
	s := m.state
	switch s.State {
	case constants.StateList:
		list := s.List.Keys()
		return []key.Binding{s.Keys.Tab, s.Keys.Search, list.Add, list.SwipeLeft, list.SwipeRight, list.Tap, s.Keys.Quit, s.Keys.Help}
	case constants.StateSearch:
		return []key.Binding{s.Keys.Accept, s.Keys.Clear}
	}
	return nil
}

func (m Model) FullHelp() [][]key.Binding {
	s := m.state
	if s.State != constants.StateList {
		return [][]key.Binding{m.ShortHelp()}
	}
	list := s.List.Keys()
	global := []key.Binding{s.Keys.Tab, s.Keys.ShiftTab, s.Keys.Today, s.Keys.Sched, s.Keys.All, s.Keys.Quit, s.Keys.Help}
	navigation := []key.Binding{s.Keys.Up, s.Keys.Down, s.Keys.Search}
	actions := []key.Binding{list.Add, list.SwipeLeft, list.SwipeRight, list.Tap, list.Close}
	return [][]key.Binding{global, navigation, actions}
}

// Init starts the header clock and reconciles notifications, as the screen
// has just gained focus.
func (m Model) Init() tea.Cmd {
	return tea.Batch(handlers.TickClock(), handlers.Reconcile(m.state.Manager))
}
