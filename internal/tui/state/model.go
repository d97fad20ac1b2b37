package state

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/logger"
	"github.com/julianstephens/fitlife/internal/models"
	"github.com/julianstephens/fitlife/internal/reminders"
	"github.com/julianstephens/fitlife/internal/swipe"
	"github.com/julianstephens/fitlife/internal/tui/components/reminderlist"
)

// ReminderFormModel holds the values bound to the add/edit huh form.
type ReminderFormModel struct {
	Title       string
	Description string
	DateOn      bool
	Date        string
	TimeOn      bool
	Time        string
	Repeat      models.Repeat
}

type ConfirmationFormModel struct {
	Title     string
	Message   string
	Confirmed bool
}

// Options configures a new Model.
type Options struct {
	Manager *reminders.Manager
	Theme   string
	Swipe   swipe.Config
}

// Model represents the shared state for the TUI
type Model struct {
	Manager          *reminders.Manager
	Swipe            swipe.Config
	Theme            *huh.Theme
	State            constants.SessionState
	PreviousState    constants.SessionState
	Keys             KeyMap
	Help             help.Model
	Search           textinput.Model
	Tab              models.Tab
	List             reminderlist.Model
	Rows             map[string]*swipe.Row
	Form             *huh.Form
	ReminderForm     *ReminderFormModel
	EditRequest      *reminders.EditRequest // nil when adding
	ConfirmationForm *ConfirmationFormModel
	PendingAction    func() tea.Cmd
	PendingCancel    func()
	FormError        string
	Alert            string
	Now              time.Time
	Quitting         bool
	Width            int
	Height           int
}

// New creates a new state Model
func New(opts Options) *Model {
	if opts.Manager == nil {
		opts.Manager = reminders.NewManager(nil, reminders.Options{})
	}
	if opts.Swipe.Validate() != nil {
		opts.Swipe = swipe.DefaultConfig()
	}

	search := textinput.New()
	search.Placeholder = "Search by title"
	search.Prompt = "🔍 "
	search.CharLimit = 120

	m := &Model{
		Manager: opts.Manager,
		Swipe:   opts.Swipe,
		Theme:   Theme(opts.Theme),
		State:   constants.StateList,
		Keys:    DefaultKeyMap(),
		Help:    help.New(),
		Search:  search,
		Tab:     models.TabToday,
		Rows:    map[string]*swipe.Row{},
		Now:     opts.Manager.Now(),
	}
	m.List = reminderlist.New(m.row, 0, 0)
	m.Refresh()
	return m
}

// Theme maps a configured theme name to its huh theme.
func Theme(name string) *huh.Theme {
	switch name {
	case "dracula":
		return huh.ThemeDracula()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	case "base16":
		return huh.ThemeBase16()
	case "base":
		return huh.ThemeBase()
	default:
		return huh.ThemeCharm()
	}
}

func (m *Model) row(id string) *swipe.Row {
	return m.Rows[id]
}

// Row returns the gesture state for id, creating it on first use.
func (m *Model) Row(id string) *swipe.Row {
	r, ok := m.Rows[id]
	if !ok {
		r = swipe.NewRow(m.Swipe)
		m.Rows[id] = r
	}
	return r
}

// Refresh rebuilds the visible list from the store using the current tab and
// search query, and drops gesture state for reminders that no longer exist.
func (m *Model) Refresh() {
	store := m.Manager.Store()
	visible := store.Visible(m.Tab, m.Search.Value(), m.Now)
	items := make([]reminderlist.Item, len(visible))
	for i, r := range visible {
		items[i] = reminderlist.Item{Reminder: r, Index: store.IndexOf(r.ID)}
	}
	m.List.SetReminders(items)

	for id := range m.Rows {
		if _, ok := store.Get(id); !ok {
			delete(m.Rows, id)
		}
	}
}

func (m *Model) SelectTab(tab models.Tab) {
	if tab == m.Tab {
		return
	}
	m.closeRows()
	m.Tab = tab
	m.Refresh()
}

// Count returns how many reminders tab shows for the current query.
func (m *Model) Count(tab models.Tab) int {
	return len(m.Manager.Store().Visible(tab, m.Search.Value(), m.Now))
}

// closeRows snaps every row without a pending confirmation shut.
func (m *Model) closeRows() {
	for _, r := range m.Rows {
		if !r.Disabled() {
			r.Close()
		}
	}
}

// SetAlert shows err once in the alert dialog and logs it.
func (m *Model) SetAlert(msg string, err error) {
	logger.Error(msg, "error", err)
	m.Alert = msg + ": " + err.Error()
	if m.State != constants.StateAlert {
		m.PreviousState = m.State
	}
	m.State = constants.StateAlert
}

func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
	m.Help.Width = width
	m.Search.Width = max(width-8, 10)
	// header, tabs, search, help and padding
	m.List.SetSize(max(width-4, 0), max(height-9, 0))
}
