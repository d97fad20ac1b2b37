package reminder

import (
	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/form"
)

type AddCmd struct {
	Title       string `arg:"" help:"Reminder title."`
	Description string `short:"d" help:"Optional description."`
	Date        string `short:"D" help:"Date (DD/MM/YYYY or YYYY-MM-DD). Must not be in the past."`
	Time        string `short:"t" help:"Time (HH:MM). Without --date the reminder is for today."`
	Repeat      string `short:"r" help:"Repeat rule (none|daily|weekdays|weekends|weekly|biweekly|monthly|quarterly|semiannual|yearly)." default:"none"`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	f := form.NewAdd(now)
	f.SetTitle(c.Title)
	f.Description = c.Description
	if err := fill(f, c.Date, c.Time, c.Repeat, now); err != nil {
		return err
	}

	sub, err := f.Submit()
	if err != nil {
		return err
	}
	added, err := ctx.Manager.Submit(sub)
	if err != nil {
		return err
	}
	ctx.Printf("Added reminder: %s\n", describe(added))
	ctx.Printf("  ID: %s\n", added.ID)
	return nil
}
