package system

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitlife/internal/tui"
)

func TestTuiCmd_RunsProgramWithManager(t *testing.T) {
	ctx, _ := setupStartedContext(t)
	ctx.Config.Theme = "dracula"

	orig := runProgram
	t.Cleanup(func() { runProgram = orig })

	var got tui.Model
	var optCount int
	runProgram = func(m tea.Model, opts ...tea.ProgramOption) error {
		got = m.(tui.Model)
		optCount = len(opts)
		return nil
	}

	cmd := &TuiCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got.State().Manager != ctx.Manager {
		t.Error("TUI not wired to the context's manager")
	}
	if got.State().Swipe != ctx.Config.SwipeConfig() {
		t.Errorf("Swipe = %+v, want %+v", got.State().Swipe, ctx.Config.SwipeConfig())
	}
	if optCount != 2 {
		t.Errorf("program options = %d, want alt screen and focus reporting", optCount)
	}
}

func TestTuiCmd_WrapsProgramError(t *testing.T) {
	ctx, _ := setupStartedContext(t)

	orig := runProgram
	t.Cleanup(func() { runProgram = orig })
	boom := errors.New("terminal gone")
	runProgram = func(tea.Model, ...tea.ProgramOption) error { return boom }

	if err := (&TuiCmd{}).Run(ctx); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want wrapped %v", err, boom)
	}
}
