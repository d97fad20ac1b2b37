package notifier

import (
	"testing"
	"time"

	"github.com/julianstephens/fitlife/internal/models"
)

func TestFromReminder(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		r       models.Reminder
		wantOK  bool
		wantAt  time.Time
		wantErr bool
	}{
		{
			name:   "date and time",
			r:      models.Reminder{ID: "1", Title: "Run", Date: "2026-10-18", Time: "07:30"},
			wantOK: true,
			wantAt: time.Date(2026, 10, 18, 7, 30, 0, 0, time.UTC),
		},
		{
			name: "date only",
			r:    models.Reminder{ID: "2", Title: "Run", Date: "2026-10-18"},
		},
		{
			name: "no date",
			r:    models.Reminder{ID: "3", Title: "Run"},
		},
		{
			name: "one-shot in the past",
			r:    models.Reminder{ID: "4", Title: "Run", Date: "2026-10-16", Time: "07:00"},
		},
		{
			name:   "daily rolls forward",
			r:      models.Reminder{ID: "5", Title: "Stretch", Date: "2026-10-01", Time: "08:00", Repeat: models.RepeatDaily},
			wantOK: true,
			wantAt: time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC),
		},
		{
			name:    "bad time",
			r:       models.Reminder{ID: "6", Title: "Run", Date: "2026-10-18", Time: "25:99"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok, err := FromReminder(tt.r, time.UTC, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromReminder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if ok != tt.wantOK {
				t.Fatalf("FromReminder() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if n.ID != tt.r.ID {
				t.Errorf("ID = %q, want %q", n.ID, tt.r.ID)
			}
			if !n.TriggerAt.Equal(tt.wantAt) {
				t.Errorf("TriggerAt = %v, want %v", n.TriggerAt, tt.wantAt)
			}
		})
	}
}

func TestFromReminder_Body(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	r := models.Reminder{ID: "1", Title: "Run", Description: "5k easy", Date: "2026-10-18", Time: "07:30"}
	n, ok, err := FromReminder(r, time.UTC, now)
	if err != nil || !ok {
		t.Fatalf("FromReminder() = %v, %v", ok, err)
	}
	if n.Title != "Run" || n.Body != "5k easy" {
		t.Errorf("title/body = %q/%q", n.Title, n.Body)
	}
	if n.Repeat != models.RepeatNone || !n.Anchor.IsZero() {
		t.Errorf("one-shot should have no anchor, got repeat=%q anchor=%v", n.Repeat, n.Anchor)
	}
}

func TestDesired_SkipsInvalid(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	reminders := []models.Reminder{
		{ID: "a", Title: "A", Date: "2026-10-18", Time: "07:00"},
		{ID: "b", Title: "B", Date: "2026-10-18", Time: "nope"},
		{ID: "c", Title: "C"},
	}
	var skipped []string
	got := Desired(reminders, time.UTC, now, func(r models.Reminder, err error) {
		skipped = append(skipped, r.ID)
	})
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Desired() = %+v", got)
	}
	if len(skipped) != 1 || skipped[0] != "b" {
		t.Errorf("skipped = %v, want [b]", skipped)
	}
}

func TestKeepDue(t *testing.T) {
	scheduledAt := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	now := scheduledAt.Add(10 * time.Minute)
	stretch := models.Reminder{ID: "a", Title: "Stretch", Date: "2026-10-17", Time: "09:05"}

	entry, ok, err := FromReminder(stretch, time.UTC, scheduledAt)
	if err != nil || !ok {
		t.Fatalf("FromReminder() = %v, %v", ok, err)
	}

	moved := stretch
	moved.Time = "09:08"
	renamed := stretch
	renamed.Title = "Yoga"

	tests := []struct {
		name      string
		reminders []models.Reminder
		pending   []models.Notification
		now       time.Time
		want      int
	}{
		{"due and unchanged", []models.Reminder{stretch}, []models.Notification{entry}, now, 1},
		{"not due yet", []models.Reminder{stretch}, []models.Notification{entry}, scheduledAt, 0},
		{"reminder deleted", nil, []models.Notification{entry}, now, 0},
		{"trigger moved", []models.Reminder{moved}, []models.Notification{entry}, now, 0},
		{"title changed", []models.Reminder{renamed}, []models.Notification{entry}, now, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desired := Desired(tt.reminders, time.UTC, tt.now, nil)
			got := KeepDue(desired, tt.pending, tt.reminders, time.UTC, tt.now)
			if len(got) != tt.want {
				t.Fatalf("KeepDue() = %+v, want %d entries", got, tt.want)
			}
			if tt.want == 1 && !got[0].TriggerAt.Equal(entry.TriggerAt) {
				t.Errorf("kept trigger = %v, want %v", got[0].TriggerAt, entry.TriggerAt)
			}
			if cmds := Plan(got, tt.pending); tt.want == 1 && len(cmds) != 0 {
				t.Errorf("Plan() = %+v, want no commands", cmds)
			}
		})
	}
}
