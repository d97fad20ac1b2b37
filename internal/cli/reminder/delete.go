package reminder

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fitlife/internal/cli"
)

type DeleteCmd struct {
	Ref string `arg:"" help:"Reminder ID or list position."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

// confirmFunc asks the user before deleting.
var confirmFunc = func(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	r, _, err := resolve(ctx, c.Ref)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirmFunc(fmt.Sprintf("Delete reminder %q?", r.Title))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	removed, err := ctx.Manager.Delete(r.ID)
	if err != nil {
		return err
	}
	ctx.Printf("Deleted reminder: %s\n", describe(removed))
	return nil
}
