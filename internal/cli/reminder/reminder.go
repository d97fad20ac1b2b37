// Package reminder holds the `fitlife reminder` subcommands.
package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/form"
	"github.com/julianstephens/fitlife/internal/models"
	"github.com/julianstephens/fitlife/internal/reminders"
)

// resolve finds a reminder by id or by its 1-based position in the list.
func resolve(ctx *cli.Context, ref string) (models.Reminder, int, error) {
	store := ctx.Manager.Store()
	if r, ok := store.Get(ref); ok {
		return r, store.IndexOf(ref), nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		r, ok := store.At(n - 1)
		if !ok {
			return models.Reminder{}, -1, fmt.Errorf("%w: %d (list has %d reminders)", reminders.ErrIndexOutOfRange, n, store.Len())
		}
		return r, n - 1, nil
	}
	return models.Reminder{}, -1, fmt.Errorf("%w: %s", reminders.ErrNotFound, ref)
}

// fill applies typed date, time and repeat values to f the way the form's
// controls would: a time switches the date on, a missing date defaults to today.
func fill(f *form.Form, date, clock, repeat string, now time.Time) error {
	if date != "" {
		if !f.DateOn {
			f.ToggleDate()
		}
		if err := f.PickDateInput(date, now); err != nil {
			return err
		}
	}
	if clock != "" {
		if !f.TimeOn {
			f.ToggleTime()
		}
		if err := f.PickTimeInput(clock); err != nil {
			return err
		}
	}
	if repeat != "" {
		rep, err := models.ParseRepeat(repeat)
		if err != nil {
			return err
		}
		f.Repeat = rep
	}
	return nil
}

func describe(r models.Reminder) string {
	var b strings.Builder
	b.WriteString(r.Title)
	if w := when(r); w != "" {
		b.WriteString(" (" + w + ")")
	}
	return b.String()
}

func when(r models.Reminder) string {
	parts := []string{}
	if d := r.DisplayDate(); d != "" {
		parts = append(parts, d)
	}
	if r.Time != "" {
		parts = append(parts, r.Time)
	}
	if !r.Repeat.IsNone() {
		parts = append(parts, r.Repeat.Label())
	}
	return strings.Join(parts, " ")
}
