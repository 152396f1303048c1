package engine

import (
	"testing"

	"github.com/fieldlens/fieldlens/pkg/model"
)

func TestAggregateRequiredFields_CountDescNameAsc(t *testing.T) {
	idx := BuildIndex([]model.Triple{
		triple("a", "I1", ""),
		triple("b", "I1", ""),
		triple("b", "I2", ""),
		triple("c", "I2", ""),
	})

	got := AggregateRequiredFields(idx, idSet("I1", "I2"))

	want := []FieldCount{
		{Field: "b", Count: 2},
		{Field: "a", Count: 1},
		{Field: "c", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAggregateRequiredFields_EmptySelection(t *testing.T) {
	idx := BuildIndex([]model.Triple{triple("a", "I1", "")})

	if got := AggregateRequiredFields(idx, nil); got != nil {
		t.Errorf("expected empty table for no selection, got %v", got)
	}
	if got := AggregateRequiredFields(idx, map[model.IndicatorID]struct{}{}); got != nil {
		t.Errorf("expected empty table for empty selection, got %v", got)
	}
}

func TestAggregateRequiredFields_UnknownIndicatorIgnored(t *testing.T) {
	idx := BuildIndex([]model.Triple{triple("a", "I1", "")})

	got := AggregateRequiredFields(idx, idSet("I1", "ghost"))
	if len(got) != 1 || got[0].Field != "a" || got[0].Count != 1 {
		t.Errorf("got %v, want [{a 1}]", got)
	}
}

func TestAggregateRequiredFields_SingleIndicator(t *testing.T) {
	idx := BuildIndex([]model.Triple{
		triple("x", "I1", ""),
		triple("y", "I1", ""),
	})

	got := AggregateRequiredFields(idx, idSet("I1"))
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	// Equal counts: name ascending.
	if got[0].Field != "x" || got[1].Field != "y" {
		t.Errorf("got %v, want x before y", got)
	}
}
