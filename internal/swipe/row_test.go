package swipe

import "testing"

func TestDrag_RevealAndAutoDelete(t *testing.T) {
	tests := []struct {
		name       string
		offset     float64
		wantAction Action
		wantSide   Side
	}{
		{"small left", -0.1, ActionNone, SideNone},
		{"reveal delete", -0.3, ActionNone, SideDelete},
		{"just under threshold", -0.64, ActionNone, SideDelete},
		{"past delete threshold", -0.7, ActionDelete, SideDelete},
		{"full swipe", -1.5, ActionDelete, SideDelete},
		{"reveal edit", 0.3, ActionNone, SideEdit},
		{"full right never auto-edits", 1, ActionNone, SideEdit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := NewRow(DefaultConfig())
			if got := row.Drag(tt.offset); got != tt.wantAction {
				t.Errorf("Drag(%v) = %s, want %s", tt.offset, got, tt.wantAction)
			}
			if got := row.Revealed(); got != tt.wantSide {
				t.Errorf("Revealed() = %s, want %s", got, tt.wantSide)
			}
		})
	}
}

func TestRelease(t *testing.T) {
	row := NewRow(DefaultConfig())

	row.Drag(-0.1)
	row.Release()
	if row.Revealed() != SideNone || row.Offset() != 0 {
		t.Errorf("short drag should spring closed, side=%s offset=%v", row.Revealed(), row.Offset())
	}

	row.Drag(-0.5)
	row.Release()
	if row.Revealed() != SideDelete || row.Offset() != -0.2 {
		t.Errorf("long drag should rest open, side=%s offset=%v", row.Revealed(), row.Offset())
	}
}

func TestTap_RequiresRevealedSide(t *testing.T) {
	row := NewRow(DefaultConfig())
	if got := row.Tap(SideEdit); got != ActionNone {
		t.Errorf("Tap on closed row = %s", got)
	}

	row.Drag(0.4)
	row.Release()
	if got := row.Tap(SideDelete); got != ActionNone {
		t.Errorf("Tap on hidden delete = %s", got)
	}
	if got := row.Tap(SideEdit); got != ActionEdit {
		t.Errorf("Tap(edit) = %s, want edit", got)
	}
	if row.Pending() != ActionEdit {
		t.Errorf("Pending() = %s, want edit", row.Pending())
	}
}

func TestPendingConfirmationDisablesRow(t *testing.T) {
	row := NewRow(DefaultConfig())
	if got := row.Drag(-0.9); got != ActionDelete {
		t.Fatalf("Drag() = %s, want delete", got)
	}
	if !row.Disabled() {
		t.Fatal("row should be disabled while confirmation is pending")
	}

	// Repeated swipes do not queue further confirmations.
	if got := row.Drag(-1); got != ActionNone {
		t.Errorf("second Drag() = %s, want none", got)
	}
	if got := row.Nudge(0.5); got != ActionNone {
		t.Errorf("Nudge() = %s, want none", got)
	}
	if got := row.Tap(SideDelete); got != ActionNone {
		t.Errorf("Tap() = %s, want none", got)
	}
	if row.Pending() != ActionDelete {
		t.Errorf("Pending() = %s, want delete", row.Pending())
	}
}

func TestResolve(t *testing.T) {
	row := NewRow(DefaultConfig())
	row.Drag(-0.9)
	if got := row.Resolve(false); got != ActionNone {
		t.Errorf("Resolve(false) = %s, want none", got)
	}
	if row.Disabled() || row.Offset() != 0 || row.Revealed() != SideNone {
		t.Errorf("declined row not reset: disabled=%v offset=%v", row.Disabled(), row.Offset())
	}

	row.Drag(0.5)
	row.Release()
	row.Tap(SideEdit)
	if got := row.Resolve(true); got != ActionEdit {
		t.Errorf("Resolve(true) = %s, want edit", got)
	}
	if row.Disabled() {
		t.Error("row still disabled after resolve")
	}
}

func TestNudge_KeyboardSteps(t *testing.T) {
	row := NewRow(DefaultConfig())
	step := 0.25

	if got := row.Nudge(-step); got != ActionNone || row.Revealed() != SideDelete {
		t.Fatalf("first step: action=%s side=%s", got, row.Revealed())
	}
	if got := row.Nudge(-step); got != ActionNone {
		t.Fatalf("second step: action=%s", got)
	}
	if got := row.Nudge(-step); got != ActionDelete {
		t.Errorf("third step: action=%s, want delete", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		cfg     Config
		wantErr bool
	}{
		{DefaultConfig(), false},
		{Config{RevealFraction: 0, DeleteFraction: 0.5}, true},
		{Config{RevealFraction: 0.5, DeleteFraction: 0.4}, true},
		{Config{RevealFraction: 0.3, DeleteFraction: 1.2}, true},
		{Config{RevealFraction: 0.1, DeleteFraction: 0.9}, false},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.cfg, err, tt.wantErr)
		}
	}

	row := NewRow(Config{RevealFraction: 2})
	if row.cfg != DefaultConfig() {
		t.Errorf("invalid config should fall back to defaults, got %+v", row.cfg)
	}
}
