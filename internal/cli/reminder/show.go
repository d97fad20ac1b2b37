package reminder

import (
	"errors"

	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/storage"
)

type ShowCmd struct {
	Ref string `arg:"" help:"Reminder ID or list position."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	r, index, err := resolve(ctx, c.Ref)
	if err != nil {
		return err
	}

	ctx.Printf("#%d %s\n", index+1, r.Title)
	ctx.Printf("  ID:          %s\n", r.ID)
	if r.Description != "" {
		ctx.Printf("  Description: %s\n", r.Description)
	}
	if r.HasDate() {
		ctx.Printf("  Date:        %s\n", r.DisplayDate())
	}
	if r.HasTime() {
		ctx.Printf("  Time:        %s\n", r.Time)
	}
	if !r.Repeat.IsNone() {
		ctx.Printf("  Repeat:      %s\n", r.Repeat.Label())
	}

	n, err := ctx.Store.GetNotification(r.ID)
	switch {
	case err == nil:
		ctx.Printf("  Notifies at: %s\n", n.TriggerAt.In(ctx.Config.Location()).Format(constants.DisplayDateFormat+" "+constants.TimeFormat))
	case errors.Is(err, storage.ErrNotFound):
		ctx.Println("  Notifies at: -")
	default:
		return err
	}
	return nil
}
