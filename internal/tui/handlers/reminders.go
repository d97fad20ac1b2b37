package handlers

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/form"
	"github.com/julianstephens/fitlife/internal/logger"
	"github.com/julianstephens/fitlife/internal/models"
	"github.com/julianstephens/fitlife/internal/reminders"
	"github.com/julianstephens/fitlife/internal/tui/state"
	"github.com/julianstephens/fitlife/internal/utils"
)

// StartAdd opens an empty reminder form with both toggles off.
func StartAdd(m *state.Model) tea.Cmd {
	f := form.NewAdd(m.Manager.Now())
	m.EditRequest = nil
	return openReminderForm(m, f, constants.StateAddReminder)
}

// StartEdit opens the form pre-filled from req.
func StartEdit(m *state.Model, req reminders.EditRequest) tea.Cmd {
	f := form.NewEdit(req, m.Manager.Now())
	m.EditRequest = &req
	return openReminderForm(m, f, constants.StateEditReminder)
}

func openReminderForm(m *state.Model, f *form.Form, s constants.SessionState) tea.Cmd {
	m.ReminderForm = &state.ReminderFormModel{
		Title:       f.Title,
		Description: f.Description,
		DateOn:      f.DateOn,
		Date:        f.Date.Format(constants.DisplayDateFormat),
		TimeOn:      f.TimeOn,
		Time:        f.Time.Format(constants.TimeFormat),
		Repeat:      f.Repeat,
	}
	m.FormError = ""
	m.Form = NewReminderForm(m)
	m.State = s
	return m.Form.Init()
}

// NewReminderForm builds the huh form bound to m.ReminderForm. The date
// fields only show when a date or time is switched on.
func NewReminderForm(m *state.Model) *huh.Form {
	fm := m.ReminderForm
	heading := "New reminder"
	if m.EditRequest != nil {
		heading = "Edit reminder"
	}

	repeatOptions := make([]huh.Option[models.Repeat], len(models.RepeatOptions))
	for i, r := range models.RepeatOptions {
		repeatOptions[i] = huh.NewOption(r.Label(), r)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(heading),
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(validateTitle),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&fm.Description),
			huh.NewConfirm().
				Title("Set a date?").
				Value(&fm.DateOn),
			huh.NewConfirm().
				Title("Set a time?").
				Description("Turning the time on also sets a date.").
				Value(&fm.TimeOn),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Description("DD/MM/YYYY").
				Value(&fm.Date).
				Validate(validateDate),
			huh.NewSelect[models.Repeat]().
				Title("Repeat").
				Options(repeatOptions...).
				Value(&fm.Repeat),
		).WithHideFunc(func() bool { return !fm.DateOn && !fm.TimeOn }),
		huh.NewGroup(
			huh.NewInput().
				Title("Time").
				Description("HH:MM").
				Value(&fm.Time).
				Validate(validateTime),
		).WithHideFunc(func() bool { return !fm.TimeOn }),
	).WithTheme(m.Theme)
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return models.ErrBlankTitle
	}
	return nil
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("enter a date as DD/MM/YYYY")
	}
	_, err := utils.NormalizeDate(s)
	return err
}

func validateTime(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("enter a time as HH:MM")
	}
	_, err := utils.NormalizeTime(s)
	return err
}

// HandleReminderFormState drives the add/edit form and submits it on completion.
func HandleReminderFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		closeReminderForm(m)
		return nil
	}

	var cmds []tea.Cmd
	f, cmd := m.Form.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		cmds = append(cmds, submitReminderForm(m))
	case huh.StateAborted:
		closeReminderForm(m)
	}
	return tea.Batch(cmds...)
}

// BuildForm replays the bound values onto a form.Form so the toggle and
// picker rules apply.
func BuildForm(m *state.Model, now time.Time) (*form.Form, error) {
	var f *form.Form
	if m.EditRequest != nil {
		f = form.NewEdit(*m.EditRequest, now)
	} else {
		f = form.NewAdd(now)
	}

	fm := m.ReminderForm
	f.SetTitle(fm.Title)
	f.Description = fm.Description
	f.Repeat = fm.Repeat
	if f.DateOn != fm.DateOn {
		f.ToggleDate()
	}
	if f.TimeOn != fm.TimeOn {
		f.ToggleTime()
	}
	if f.DateOn && !keepsOriginalDate(m, fm.Date) {
		if err := f.PickDateInput(fm.Date, now); err != nil {
			return f, err
		}
	}
	if f.TimeOn {
		if err := f.PickTimeInput(fm.Time); err != nil {
			return f, err
		}
	}
	return f, nil
}

// keepsOriginalDate reports whether an edit leaves the record's date as it
// was. An untouched date is not checked against today.
func keepsOriginalDate(m *state.Model, input string) bool {
	if m.EditRequest == nil || m.EditRequest.Reminder.Date == "" {
		return false
	}
	normalized, err := utils.NormalizeDate(input)
	return err == nil && normalized == m.EditRequest.Reminder.Date
}

func submitReminderForm(m *state.Model) tea.Cmd {
	now := m.Manager.Now()
	f, err := BuildForm(m, now)
	var sub reminders.Submission
	if err == nil {
		sub, err = f.Submit()
	}
	if err != nil {
		// Stay in the form. A rejected date snaps back to today.
		m.FormError = err.Error()
		if errors.Is(err, form.ErrPastDate) {
			m.ReminderForm.Date = now.Format(constants.DisplayDateFormat)
		}
		m.ReminderForm.DateOn = f.DateOn
		m.ReminderForm.TimeOn = f.TimeOn
		m.Form = NewReminderForm(m)
		return m.Form.Init()
	}

	saved, err := m.Manager.Submit(sub)
	closeReminderForm(m)
	if err != nil {
		m.SetAlert("Failed to save reminder", err)
		m.Refresh()
		return nil
	}
	logger.Debug("Saved reminder", "id", saved.ID, "mode", sub.Mode.String())
	m.Refresh()
	return nil
}

func closeReminderForm(m *state.Model) {
	m.Form = nil
	m.ReminderForm = nil
	m.EditRequest = nil
	m.FormError = ""
	m.State = constants.StateList
}
