package notifier

import (
	"fmt"
	"time"

	"github.com/julianstephens/fitlife/internal/models"
)

// FromReminder builds the local notification for r. ok is false when r has no
// date and time, or when it never fires again after now.
func FromReminder(r models.Reminder, loc *time.Location, now time.Time) (n models.Notification, ok bool, err error) {
	if !r.HasTrigger() {
		return models.Notification{}, false, nil
	}
	if loc == nil {
		loc = time.Local
	}

	anchor, err := r.TriggerAt(loc)
	if err != nil {
		return models.Notification{}, false, fmt.Errorf("reminder %s: %w", r.ID, err)
	}

	trigger, err := r.Repeat.Next(anchor, now)
	if err != nil {
		return models.Notification{}, false, fmt.Errorf("reminder %s: %w", r.ID, err)
	}
	if trigger.IsZero() {
		return models.Notification{}, false, nil
	}

	repeat := r.Repeat
	if repeat == "" {
		repeat = models.RepeatNone
	}
	n = models.Notification{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Body:      r.Summary(),
		TriggerAt: trigger,
		Repeat:    repeat,
		CreatedAt: now,
	}
	if !repeat.IsNone() {
		n.Anchor = anchor
	}
	return n, true, nil
}

// Desired returns the notifications that should be pending for reminders.
// Reminders that cannot produce one are skipped and reported through skip.
func Desired(reminders []models.Reminder, loc *time.Location, now time.Time, skip func(models.Reminder, error)) []models.Notification {
	var out []models.Notification
	for _, r := range reminders {
		n, ok, err := FromReminder(r, loc, now)
		if err != nil {
			if skip != nil {
				skip(r, err)
			}
			continue
		}
		if ok {
			out = append(out, n)
		}
	}
	return out
}

// KeepDue puts back pending entries that are due but not yet delivered, so a
// reconcile between the trigger and the next delivery run leaves them alone.
// An entry is kept only while its reminder exists and still fires at that
// trigger.
func KeepDue(desired, pending []models.Notification, reminders []models.Reminder, loc *time.Location, now time.Time) []models.Notification {
	byID := make(map[string]models.Reminder, len(reminders))
	for _, r := range reminders {
		byID[r.ID] = r
	}
	at := make(map[string]int, len(desired))
	out := append([]models.Notification(nil), desired...)
	for i, n := range out {
		at[n.ID] = i
	}

	for _, p := range pending {
		if !p.IsDue(now) {
			continue
		}
		r, ok := byID[p.ID]
		if !ok {
			continue
		}
		n, ok, err := FromReminder(r, loc, p.TriggerAt)
		if err != nil || !ok || !p.SameSchedule(n) {
			continue
		}
		if i, found := at[p.ID]; found {
			out[i] = p
		} else {
			out = append(out, p)
		}
	}
	return out
}
