package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitlife/internal/cli"
	"github.com/julianstephens/fitlife/internal/tui"
)

type TuiCmd struct{}

// runProgram is swapped in tests.
var runProgram = func(m tea.Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	m := tui.New(tuiOptions(ctx))
	if err := runProgram(m, tea.WithAltScreen(), tea.WithReportFocus()); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}

func tuiOptions(ctx *cli.Context) tui.Options {
	return tui.Options{
		Manager: ctx.Manager,
		Theme:   ctx.Config.Theme,
		Swipe:   ctx.Config.SwipeConfig(),
	}
}
