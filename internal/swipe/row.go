// Package swipe models a list row that can be dragged sideways to reveal a
// delete action (drag left) or an edit action (drag right).
package swipe

import (
	"fmt"

	"github.com/julianstephens/fitlife/internal/constants"
)

// Side is the action panel a drag has uncovered.
type Side int

const (
	SideNone Side = iota
	// SideDelete is revealed by dragging left.
	SideDelete
	// SideEdit is revealed by dragging right.
	SideEdit
)

func (s Side) String() string {
	switch s {
	case SideDelete:
		return "delete"
	case SideEdit:
		return "edit"
	default:
		return "none"
	}
}

// Action is what the row asks its owner to confirm.
type Action int

const (
	ActionNone Action = iota
	ActionDelete
	ActionEdit
)

func (a Action) String() string {
	switch a {
	case ActionDelete:
		return "delete"
	case ActionEdit:
		return "edit"
	default:
		return "none"
	}
}

// Config holds the drag thresholds as fractions of the row width.
type Config struct {
	RevealFraction float64
	DeleteFraction float64
}

func DefaultConfig() Config {
	return Config{
		RevealFraction: constants.DefaultSwipeRevealFraction,
		DeleteFraction: constants.DefaultSwipeDeleteFraction,
	}
}

func (c Config) Validate() error {
	if c.RevealFraction <= 0 || c.RevealFraction >= 1 {
		return fmt.Errorf("swipe reveal fraction must be between 0 and 1, got %v", c.RevealFraction)
	}
	if c.DeleteFraction <= c.RevealFraction || c.DeleteFraction > 1 {
		return fmt.Errorf("swipe delete fraction must be between the reveal fraction and 1, got %v", c.DeleteFraction)
	}
	return nil
}

// Row is the gesture state of one list row. Offset is signed: negative
// values are drags to the left.
type Row struct {
	cfg     Config
	offset  float64
	open    Side
	pending Action
}

func NewRow(cfg Config) *Row {
	if cfg.Validate() != nil {
		cfg = DefaultConfig()
	}
	return &Row{cfg: cfg}
}

func (r *Row) Offset() float64 { return r.offset }

// Pending is the action awaiting confirmation, ActionNone when there is none.
func (r *Row) Pending() Action { return r.pending }

// Disabled reports whether the row ignores gestures. It is true while a
// confirmation is pending.
func (r *Row) Disabled() bool { return r.pending != ActionNone }

// Revealed returns the action panel currently uncovered.
func (r *Row) Revealed() Side {
	if r.open != SideNone {
		return r.open
	}
	switch {
	case r.offset <= -r.cfg.RevealFraction:
		return SideDelete
	case r.offset >= r.cfg.RevealFraction:
		return SideEdit
	}
	return SideNone
}

// Drag moves the row to offset (fraction of row width, negative is left).
// Crossing the delete threshold to the left requests delete confirmation
// without a tap; the edit side never triggers by drag alone.
func (r *Row) Drag(offset float64) Action {
	if r.Disabled() {
		return ActionNone
	}
	r.offset = clamp(offset)
	r.open = SideNone

	if r.offset <= -r.cfg.DeleteFraction {
		r.pending = ActionDelete
		return ActionDelete
	}
	return ActionNone
}

// Nudge drags by delta from the current offset.
func (r *Row) Nudge(delta float64) Action {
	return r.Drag(r.offset + delta)
}

// Release ends a drag. A panel past the reveal threshold stays open,
// anything short of it springs closed.
func (r *Row) Release() {
	if r.Disabled() {
		return
	}
	switch side := r.Revealed(); side {
	case SideDelete:
		r.open = side
		r.offset = -r.cfg.RevealFraction
	case SideEdit:
		r.open = side
		r.offset = r.cfg.RevealFraction
	default:
		r.Close()
	}
}

// Tap presses the button on side. Only an uncovered button responds.
func (r *Row) Tap(side Side) Action {
	if r.Disabled() || side == SideNone || r.Revealed() != side {
		return ActionNone
	}
	switch side {
	case SideDelete:
		r.pending = ActionDelete
	case SideEdit:
		r.pending = ActionEdit
	}
	return r.pending
}

// Resolve settles the pending confirmation and closes the row. It returns
// the action to perform, or ActionNone when it was declined.
func (r *Row) Resolve(confirmed bool) Action {
	action := r.pending
	r.pending = ActionNone
	r.Close()
	if !confirmed {
		return ActionNone
	}
	return action
}

// Close snaps the row shut. A pending confirmation is left untouched.
func (r *Row) Close() {
	r.offset = 0
	r.open = SideNone
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
