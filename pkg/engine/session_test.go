package engine

import (
	"testing"

	"github.com/fieldlens/fieldlens/pkg/model"
)

func sessionFixture() *Session {
	idx := BuildIndex([]model.Triple{
		triple("f1", "i1", "U1"),
		triple("f2", "i1", "U1"),
		triple("f1", "i2", "U2"),
	})
	return NewSession(idx)
}

func TestSession_ExploreScenario(t *testing.T) {
	s := sessionFixture()

	// Selecting f1: i2 unlocks, i1 is halfway there.
	v := s.ToggleField("f1")
	if v.Mode != ModeForward || v.Forward == nil {
		t.Fatal("expected a forward view")
	}
	if len(v.Forward.Computable) != 1 || v.Forward.Computable[0].ID != "i2" {
		t.Fatalf("computable = %v, want [i2]", v.Forward.Computable)
	}
	if len(v.Forward.Incomplete) != 1 {
		t.Fatalf("incomplete = %v, want [i1]", v.Forward.Incomplete)
	}
	i1 := v.Forward.Incomplete[0]
	if i1.ID != "i1" || i1.Ratio != 0.5 {
		t.Errorf("i1 ratio = %v, want 0.5", i1.Ratio)
	}
	if len(i1.Missing) != 1 || i1.Missing[0] != "f2" {
		t.Errorf("i1 missing = %v, want [f2]", i1.Missing)
	}

	// Adding f2: i1 unlocks and appends after i2, which was tracked first.
	v = s.ToggleField("f2")
	if len(v.Forward.Computable) != 2 {
		t.Fatalf("computable = %v, want two entries", v.Forward.Computable)
	}
	if v.Forward.Computable[0].ID != "i2" || v.Forward.Computable[1].ID != "i1" {
		t.Errorf("stable order = [%s %s], want [i2 i1]",
			v.Forward.Computable[0].ID, v.Forward.Computable[1].ID)
	}
}

func TestSession_FieldRowsCarryCountsAndFlags(t *testing.T) {
	s := sessionFixture()
	v := s.ToggleField("f1")

	byID := map[model.FieldID]FieldRow{}
	for _, row := range v.Forward.Fields {
		byID[row.ID] = row
	}
	if byID["f1"].IndicatorCount != 2 || !byID["f1"].Selected {
		t.Errorf("f1 row = %+v, want count 2 selected", byID["f1"])
	}
	if byID["f2"].IndicatorCount != 1 || byID["f2"].Selected {
		t.Errorf("f2 row = %+v, want count 1 unselected", byID["f2"])
	}

	// Default sort: count descending, so f1 leads.
	if v.Forward.Fields[0].ID != "f1" {
		t.Errorf("first field = %s, want f1", v.Forward.Fields[0].ID)
	}
}

func TestSession_SetSortKey(t *testing.T) {
	s := sessionFixture()

	v := s.SetSortKey(ByName)
	if v.Sort.Key != ByName || v.Sort.Direction != Ascending {
		t.Errorf("sort = %+v, want ByName Ascending", v.Sort)
	}
	if v.Forward.Fields[0].ID != "f1" || v.Forward.Fields[1].ID != "f2" {
		t.Errorf("name order wrong: %v", v.Forward.Fields)
	}

	v = s.SetSortKey(ByName)
	if v.Sort.Direction != Descending {
		t.Errorf("repeat toggle should flip direction, got %+v", v.Sort)
	}
	if v.Forward.Fields[0].ID != "f2" {
		t.Errorf("descending name order wrong: %v", v.Forward.Fields)
	}
}

func TestSession_ReverseMode(t *testing.T) {
	s := sessionFixture()
	s.ToggleField("f1")

	v := s.SetMode(ModeReverse)
	if v.Mode != ModeReverse || v.Reverse == nil || v.Forward != nil {
		t.Fatal("expected a tagged reverse view")
	}
	// Entering reverse mode cleared the field selection.
	if s.SelectedCount() != 0 {
		t.Errorf("selected count = %d, want 0", s.SelectedCount())
	}
	if len(v.Reverse.Indicators) != 2 {
		t.Fatalf("indicator rows = %v, want 2", v.Reverse.Indicators)
	}
	if v.Reverse.RequiredFields != nil {
		t.Error("no selection should give an empty frequency table")
	}

	v = s.ToggleIndicator("i1")
	rf := v.Reverse.RequiredFields
	if len(rf) != 2 || rf[0].Field != "f1" || rf[1].Field != "f2" {
		t.Errorf("required fields = %v, want [f1 f2] at count 1", rf)
	}
}

func TestSession_WrongModeActionsAreNoOps(t *testing.T) {
	s := sessionFixture()

	v := s.ToggleIndicator("i1")
	if v.Mode != ModeForward {
		t.Error("mode should be unchanged")
	}
	if s.SelectedCount() != 0 {
		t.Error("indicator toggle in forward mode must not select anything")
	}

	s.SetMode(ModeReverse)
	s.ToggleField("f1")
	if s.SelectedCount() != 0 {
		t.Error("field toggle in reverse mode must not select anything")
	}
}

func TestSession_StableOrderSurvivesModeSwitch(t *testing.T) {
	s := sessionFixture()
	s.ToggleField("f1") // i2 computable, tracked

	s.SetMode(ModeReverse)
	v := s.SetMode(ModeForward)

	// Field selection was cleared entering reverse mode, so nothing is
	// computable; the tracker reconciles to empty rather than erroring.
	if len(v.Forward.Computable) != 0 {
		t.Errorf("computable = %v, want empty after selections were cleared", v.Forward.Computable)
	}
}

func TestSession_ReplaceIndexResetsOrderAndPrunesSelection(t *testing.T) {
	s := sessionFixture()
	s.ToggleField("f1")
	s.ToggleField("f2") // i2 then i1 tracked

	next := BuildIndex([]model.Triple{
		triple("f2", "iNew", "U9"),
		triple("f9", "i1", "U1"),
	})
	v := s.ReplaceIndex(next)

	// f1 vanished from the dataset and was pruned; f2 survives, which
	// makes iNew computable. The old stable order is gone.
	if len(v.Forward.Computable) != 1 || v.Forward.Computable[0].ID != "iNew" {
		t.Errorf("computable = %v, want [iNew]", v.Forward.Computable)
	}
	if s.FieldSelected("f1") {
		t.Error("stale field f1 should have been pruned")
	}
	if !s.FieldSelected("f2") {
		t.Error("surviving field f2 should stay selected")
	}
}

func TestSession_ResetClearsActiveMode(t *testing.T) {
	s := sessionFixture()
	s.ToggleField("f1")

	v := s.Reset()
	if s.SelectedCount() != 0 {
		t.Error("reset should clear the field selection")
	}
	if len(v.Forward.Computable) != 0 {
		t.Errorf("computable = %v, want empty after reset", v.Forward.Computable)
	}
}

func TestSession_IncompleteSortedByRatioThenName(t *testing.T) {
	idx := BuildIndex([]model.Triple{
		// iHalf: 1 of 2 satisfied -> 0.5
		triple("f1", "iHalf", ""),
		triple("f2", "iHalf", ""),
		// iLow: 1 of 3 satisfied -> 1/3
		triple("f1", "iLow", ""),
		triple("f3", "iLow", ""),
		triple("f4", "iLow", ""),
		// iAlsoHalf: 1 of 2 satisfied -> 0.5, name before iHalf
		triple("f1", "iAlsoHalf", ""),
		triple("f5", "iAlsoHalf", ""),
	})
	s := NewSession(idx)

	v := s.ToggleField("f1")
	inc := v.Forward.Incomplete
	if len(inc) != 3 {
		t.Fatalf("incomplete = %v, want 3 entries", inc)
	}
	if inc[0].ID != "iAlsoHalf" || inc[1].ID != "iHalf" || inc[2].ID != "iLow" {
		t.Errorf("order = [%s %s %s], want [iAlsoHalf iHalf iLow]",
			inc[0].ID, inc[1].ID, inc[2].ID)
	}
}
