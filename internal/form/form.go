// Package form holds the state of the add/edit reminder form: text fields,
// the date and time toggles and their pickers, and the repeat choice.
package form

import (
	"errors"
	"strings"
	"time"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/models"
	"github.com/julianstephens/fitlife/internal/reminders"
	"github.com/julianstephens/fitlife/internal/utils"
)

var (
	// ErrPastDate is returned when a picked date lies before today.
	ErrPastDate = errors.New("please choose a date that is not in the past")
	// ErrCancelled is returned by Submit after Cancel.
	ErrCancelled = errors.New("form cancelled")
)

type Form struct {
	Mode  reminders.Mode
	Index int

	Title       string
	Description string
	Repeat      models.Repeat

	DateOn bool
	Date   time.Time
	TimeOn bool
	Time   time.Time

	// Err is the last validation error, shown next to the fields.
	Err error

	original  models.Reminder
	cancelled bool
}

// NewAdd returns an empty form with both toggles off and the pickers at now.
func NewAdd(now time.Time) *Form {
	return &Form{
		Mode:   reminders.ModeAdd,
		Index:  -1,
		Repeat: models.RepeatNone,
		Date:   now,
		Time:   now,
	}
}

// NewEdit pre-fills the form from the reminder being edited. Toggles start on
// for whichever of date and time the record carries.
func NewEdit(req reminders.EditRequest, now time.Time) *Form {
	r := req.Reminder
	f := &Form{
		Mode:        reminders.ModeEdit,
		Index:       req.Index,
		Title:       r.Title,
		Description: r.Description,
		Repeat:      r.Repeat,
		Date:        now,
		Time:        now,
		original:    r,
	}
	if f.Repeat == "" {
		f.Repeat = models.RepeatNone
	}
	if d, err := utils.ParseDateInLocation(r.Date, now.Location()); err == nil {
		f.DateOn = true
		f.Date = d
	}
	if t, err := utils.ParseTime(r.Time); err == nil && f.DateOn {
		f.TimeOn = true
		f.Time = t
	}
	return f
}

func (f *Form) SetTitle(title string) {
	f.Title = title
	if f.Err != nil && errors.Is(f.Err, models.ErrBlankTitle) && f.CanSubmit() {
		f.Err = nil
	}
}

// ToggleDate flips the date switch. Turning the date off also turns the time
// off, since a time is meaningless without a day.
func (f *Form) ToggleDate() {
	f.DateOn = !f.DateOn
	if !f.DateOn {
		f.TimeOn = false
	}
}

// ToggleTime flips the time switch. Turning it on forces the date on;
// turning it off leaves the date alone.
func (f *Form) ToggleTime() {
	f.TimeOn = !f.TimeOn
	if f.TimeOn {
		f.DateOn = true
	}
}

// PickDate sets the date picker. A day before now's day is rejected and the
// picker snaps back to now.
func (f *Form) PickDate(d, now time.Time) error {
	if d.In(now.Location()).Before(utils.StartOfDay(now)) {
		f.Date = now
		f.Err = ErrPastDate
		return ErrPastDate
	}
	f.Date = d
	if errors.Is(f.Err, ErrPastDate) {
		f.Err = nil
	}
	return nil
}

// PickDateInput parses a typed date (DD/MM/YYYY or YYYY-MM-DD) and picks it.
func (f *Form) PickDateInput(input string, now time.Time) error {
	normalized, err := utils.NormalizeDate(input)
	if err != nil {
		f.Err = err
		return err
	}
	if normalized == "" {
		return nil
	}
	d, err := utils.ParseDateInLocation(normalized, now.Location())
	if err != nil {
		f.Err = err
		return err
	}
	return f.PickDate(d, now)
}

func (f *Form) PickTime(t time.Time) {
	f.Time = t
}

// PickTimeInput parses a typed H:MM or HH:MM time and picks it.
func (f *Form) PickTimeInput(input string) error {
	normalized, err := utils.NormalizeTime(input)
	if err != nil {
		f.Err = err
		return err
	}
	if normalized == "" {
		return nil
	}
	t, err := utils.ParseTime(normalized)
	if err != nil {
		f.Err = err
		return err
	}
	f.PickTime(t)
	return nil
}

// CanSubmit reports whether the submit control is enabled.
func (f *Form) CanSubmit() bool {
	return !f.cancelled && strings.TrimSpace(f.Title) != ""
}

// DateValue is the normalized date the record will carry, empty when the toggle is off.
func (f *Form) DateValue() string {
	if !f.DateOn {
		return ""
	}
	return f.Date.Format(constants.DateFormat)
}

// TimeValue is the normalized time the record will carry, empty when the toggle is off.
func (f *Form) TimeValue() string {
	if !f.TimeOn {
		return ""
	}
	return f.Time.Format(constants.TimeFormat)
}

// Reminder assembles the record the form currently describes.
func (f *Form) Reminder() models.Reminder {
	r := f.original
	r.Title = strings.TrimSpace(f.Title)
	r.Description = strings.TrimSpace(f.Description)
	r.Date = f.DateValue()
	r.Time = f.TimeValue()
	r.Repeat = f.Repeat
	if r.Repeat == "" || !f.DateOn {
		r.Repeat = models.RepeatNone
	}
	return r
}

// Submit returns the whole record plus, when editing, the index it was
// opened from. A blank title blocks submission and sets Err.
func (f *Form) Submit() (reminders.Submission, error) {
	if f.cancelled {
		return reminders.Submission{}, ErrCancelled
	}
	if !f.CanSubmit() {
		f.Err = models.ErrBlankTitle
		return reminders.Submission{}, models.ErrBlankTitle
	}
	r := f.Reminder()
	if err := r.Validate(); err != nil {
		f.Err = err
		return reminders.Submission{}, err
	}
	f.Err = nil
	if f.Mode == reminders.ModeEdit {
		return reminders.NewEdit(r, f.Index), nil
	}
	return reminders.NewAdd(r), nil
}

// Cancel discards the form. Nothing is handed back to the list.
func (f *Form) Cancel() {
	f.cancelled = true
}

func (f *Form) Cancelled() bool {
	return f.cancelled
}
