package notifier

import (
	"sort"

	"github.com/julianstephens/fitlife/internal/models"
)

// CommandKind is the side effect a queued command performs.
type CommandKind string

const (
	KindSchedule CommandKind = "schedule"
	KindCancel   CommandKind = "cancel"
)

type Command struct {
	Kind         CommandKind
	ID           string
	Notification models.Notification
}

func ScheduleCommand(n models.Notification) Command {
	return Command{Kind: KindSchedule, ID: n.ID, Notification: n}
}

func CancelCommand(id string) Command {
	return Command{Kind: KindCancel, ID: id}
}

// Plan returns the commands that turn pending into desired: stale entries are
// cancelled, changed entries are cancelled then rescheduled, missing entries
// are scheduled. Commands come out ordered by id.
func Plan(desired, pending []models.Notification) []Command {
	want := make(map[string]models.Notification, len(desired))
	for _, n := range desired {
		want[n.ID] = n
	}
	have := make(map[string]models.Notification, len(pending))
	for _, n := range pending {
		have[n.ID] = n
	}

	ids := make([]string, 0, len(want)+len(have))
	for id := range want {
		ids = append(ids, id)
	}
	for id := range have {
		if _, ok := want[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var cmds []Command
	for _, id := range ids {
		w, wanted := want[id]
		h, scheduled := have[id]
		switch {
		case !wanted:
			cmds = append(cmds, CancelCommand(id))
		case !scheduled:
			cmds = append(cmds, ScheduleCommand(w))
		case !h.SameSchedule(w):
			cmds = append(cmds, CancelCommand(id), ScheduleCommand(w))
		}
	}
	return cmds
}
