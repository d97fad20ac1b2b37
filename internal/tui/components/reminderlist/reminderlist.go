package reminderlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/models"
	"github.com/julianstephens/fitlife/internal/swipe"
)

type AddReminderMsg struct{}

// SwipeMsg drags the row for ID by Delta (fraction of the row width,
// negative is left).
type SwipeMsg struct {
	ID    string
	Delta float64
}

// TapMsg releases the row for ID and presses whichever panel it uncovered.
type TapMsg struct {
	ID string
}

type CloseRowMsg struct {
	ID string
}

// SelectionChangedMsg is sent when the cursor leaves a row.
type SelectionChangedMsg struct {
	From string
	To   string
}

type Item struct {
	Reminder models.Reminder
	// Index is the position in the full list, not the filtered one.
	Index int
}

func (i Item) Title() string { return i.Reminder.Title }

func (i Item) Description() string {
	var parts []string
	if when := When(i.Reminder); when != "" {
		parts = append(parts, when)
	}
	if !i.Reminder.Repeat.IsNone() {
		parts = append(parts, "↻ "+i.Reminder.Repeat.Label())
	}
	if i.Reminder.Description != "" {
		parts = append(parts, i.Reminder.Description)
	}
	if len(parts) == 0 {
		return "No date"
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return i.Reminder.Title }

// When renders the date and time of r for display.
func When(r models.Reminder) string {
	switch {
	case r.HasDate() && r.HasTime():
		return fmt.Sprintf("%s %s", r.DisplayDate(), r.Time)
	case r.HasDate():
		return r.DisplayDate()
	}
	return ""
}

type KeyMap struct {
	Add        key.Binding
	SwipeLeft  key.Binding
	SwipeRight key.Binding
	Tap        key.Binding
	Close      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "+"),
			key.WithHelp("a", "add"),
		),
		SwipeLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "swipe left (delete)"),
		),
		SwipeRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "swipe right (edit)"),
		),
		Tap: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "release/tap"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close row"),
		),
	}
}

// RowSource looks up the gesture state of a row. It may return nil for rows
// that were never touched.
type RowSource func(id string) *swipe.Row

type Model struct {
	list list.Model
	keys KeyMap
}

func New(rows RowSource, width, height int) Model {
	l := list.New(nil, newDelegate(rows), width, height)
	l.Title = "Reminders"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("reminder", "reminders")

	// h and l belong to the swipe gesture here, and quitting is handled globally.
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page"))
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next page"))
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.SwipeLeft, keys.SwipeRight, keys.Tap}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.SwipeLeft, keys.SwipeRight, keys.Tap, keys.Close}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// SetReminders replaces the rows. The cursor stays on the same reminder when
// it is still listed.
func (m *Model) SetReminders(items []Item) {
	selected := m.SelectedID()
	listItems := make([]list.Item, len(items))
	cursor := 0
	for i, it := range items {
		listItems[i] = it
		if it.Reminder.ID == selected {
			cursor = i
		}
	}
	m.list.SetItems(listItems)
	if len(listItems) > 0 {
		m.list.Select(cursor)
	}
}

func (m Model) Items() []Item {
	items := make([]Item, 0, len(m.list.Items()))
	for _, li := range m.list.Items() {
		if it, ok := li.(Item); ok {
			items = append(items, it)
		}
	}
	return items
}

func (m Model) Selected() (Item, bool) {
	it, ok := m.list.SelectedItem().(Item)
	return it, ok
}

func (m Model) SelectedID() string {
	if it, ok := m.Selected(); ok {
		return it.Reminder.ID
	}
	return ""
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddReminderMsg{} }
		case key.Matches(msg, m.keys.SwipeLeft):
			return m, m.rowCmd(func(id string) tea.Msg {
				return SwipeMsg{ID: id, Delta: -constants.SwipeStep}
			})
		case key.Matches(msg, m.keys.SwipeRight):
			return m, m.rowCmd(func(id string) tea.Msg {
				return SwipeMsg{ID: id, Delta: constants.SwipeStep}
			})
		case key.Matches(msg, m.keys.Tap):
			return m, m.rowCmd(func(id string) tea.Msg { return TapMsg{ID: id} })
		case key.Matches(msg, m.keys.Close):
			return m, m.rowCmd(func(id string) tea.Msg { return CloseRowMsg{ID: id} })
		}
	}

	before := m.SelectedID()
	m.list, cmd = m.list.Update(msg)
	if after := m.SelectedID(); after != before && before != "" {
		changed := func() tea.Msg { return SelectionChangedMsg{From: before, To: after} }
		return m, tea.Batch(cmd, changed)
	}
	return m, cmd
}

func (m Model) rowCmd(build func(id string) tea.Msg) tea.Cmd {
	id := m.SelectedID()
	if id == "" {
		return nil
	}
	return func() tea.Msg { return build(id) }
}

func (m Model) View() string {
	if m.Len() == 0 {
		return emptyStyle.Render("No reminders here. Press a to add one.")
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Width() int {
	return m.list.Width()
}
