package reminders

import "github.com/julianstephens/fitlife/internal/models"

// Mode says whether a form submission creates or edits a reminder.
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "add"
}

// Submission is what the add/edit form hands back to the list: the whole record
// and, for edits, the position the record was opened from.
type Submission struct {
	Mode     Mode
	Reminder models.Reminder
	Index    int
}

// EditRequest carries a reminder and its list position into the edit form.
type EditRequest struct {
	Reminder models.Reminder
	Index    int
}

// NewAdd wraps a freshly created record.
func NewAdd(r models.Reminder) Submission {
	return Submission{Mode: ModeAdd, Reminder: r, Index: -1}
}

// NewEdit wraps an edited record together with its originating index.
func NewEdit(r models.Reminder, index int) Submission {
	return Submission{Mode: ModeEdit, Reminder: r, Index: index}
}
