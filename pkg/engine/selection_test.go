package engine

import "testing"

func TestSelection_ToggleField(t *testing.T) {
	s := NewSelection()

	if !s.ToggleField("f1") {
		t.Fatal("toggle in forward mode should apply")
	}
	if !s.FieldSelected("f1") {
		t.Error("f1 should be selected")
	}
	s.ToggleField("f1")
	if s.FieldSelected("f1") {
		t.Error("second toggle should deselect f1")
	}
}

func TestSelection_WrongModeTogglesAreNoOps(t *testing.T) {
	s := NewSelection()

	if s.ToggleIndicator("i1") {
		t.Error("indicator toggle in forward mode should be a no-op")
	}
	if s.IndicatorSelected("i1") {
		t.Error("i1 must not be selected")
	}

	s.SetMode(ModeReverse)
	if s.ToggleField("f1") {
		t.Error("field toggle in reverse mode should be a no-op")
	}
	if s.FieldSelected("f1") {
		t.Error("f1 must not be selected")
	}
}

func TestSelection_SetModeClearsUnusedSet(t *testing.T) {
	s := NewSelection()
	s.ToggleField("f1")
	s.ToggleField("f2")

	if !s.SetMode(ModeReverse) {
		t.Fatal("mode change expected")
	}
	if s.SelectedFieldCount() != 0 {
		t.Error("entering reverse mode should clear the field set")
	}
	if s.SelectedIndicatorCount() != 0 {
		t.Error("indicator set should be untouched (and empty)")
	}

	s.ToggleIndicator("i1")
	s.SetMode(ModeForward)
	if s.SelectedIndicatorCount() != 0 {
		t.Error("entering forward mode should clear the indicator set")
	}
}

func TestSelection_SetModeSameIsNoOp(t *testing.T) {
	s := NewSelection()
	s.ToggleField("f1")

	if s.SetMode(ModeForward) {
		t.Error("setting the current mode should report no change")
	}
	if !s.FieldSelected("f1") {
		t.Error("selection must survive a same-mode SetMode")
	}
}

func TestSelection_Reset(t *testing.T) {
	s := NewSelection()

	if s.Reset() {
		t.Error("reset of empty selection should be a no-op")
	}

	s.ToggleField("f1")
	if !s.Reset() {
		t.Error("reset should report a change")
	}
	if s.SelectedFieldCount() != 0 {
		t.Error("reset should clear selected fields")
	}

	s.SetMode(ModeReverse)
	s.ToggleIndicator("i1")
	if !s.Reset() {
		t.Error("reset should clear the reverse-mode set")
	}
	if s.SelectedIndicatorCount() != 0 {
		t.Error("indicator set should be empty after reset")
	}
}
