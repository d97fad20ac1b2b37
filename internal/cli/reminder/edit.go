package reminder

import (
	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/form"
	"github.com/julianstephens/fitlife/internal/reminders"
)

// EditCmd changes a reminder. Flags left empty keep the current value.
type EditCmd struct {
	Ref         string `arg:"" help:"Reminder ID or list position."`
	Title       string `help:"New title."`
	Description string `short:"d" help:"New description."`
	Date        string `short:"D" help:"New date (DD/MM/YYYY or YYYY-MM-DD)."`
	Time        string `short:"t" help:"New time (HH:MM)."`
	Repeat      string `short:"r" help:"New repeat rule."`
	ClearDate   bool   `help:"Remove the date (and the time with it)."`
	ClearTime   bool   `help:"Remove the time, keeping the date."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	r, index, err := resolve(ctx, c.Ref)
	if err != nil {
		return err
	}

	now := ctx.Now()
	f := form.NewEdit(reminders.EditRequest{Reminder: r, Index: index}, now)
	if c.Title != "" {
		f.SetTitle(c.Title)
	}
	if c.Description != "" {
		f.Description = c.Description
	}
	if c.ClearDate && f.DateOn {
		f.ToggleDate()
	}
	if c.ClearTime && f.TimeOn {
		f.ToggleTime()
	}
	if err := fill(f, c.Date, c.Time, c.Repeat, now); err != nil {
		return err
	}

	sub, err := f.Submit()
	if err != nil {
		return err
	}
	updated, err := ctx.Manager.Submit(sub)
	if err != nil {
		return err
	}
	ctx.Printf("Updated reminder: %s\n", describe(updated))
	return nil
}
